// Package queries contains the read side of the application. Query handlers
// bypass the domain model and read projection rows straight from the
// database with raw SQL, so listings stay cheap regardless of aggregate size.
package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetBuyerOrdersQueryIsNotConstructed = errors.New(
	"GetBuyerOrdersQuery must be created via NewGetBuyerOrdersQuery constructor",
)

// GetBuyerOrdersQuery retrieves the order history of one buyer, newest first.
type GetBuyerOrdersQuery struct {
	guard guard.ConstructorGuard

	buyerID kernel.UUID
}

// NewGetBuyerOrdersQuery creates a query for the given buyer.
func NewGetBuyerOrdersQuery(buyerID kernel.UUID) (GetBuyerOrdersQuery, error) {
	if err := buyerID.Validate(); err != nil {
		return GetBuyerOrdersQuery{}, err
	}

	return GetBuyerOrdersQuery{
		guard:   guard.NewConstructorGuard(),
		buyerID: buyerID,
	}, nil
}

// BuyerID returns the buyer whose orders are listed.
func (q GetBuyerOrdersQuery) BuyerID() kernel.UUID {
	return q.buyerID
}

// Validate ensures the query was created through the constructor.
func (q GetBuyerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetBuyerOrdersQueryIsNotConstructed)
}

// GetBuyerOrdersQueryResponse is one row of a buyer's order history.
type GetBuyerOrdersQueryResponse struct {
	ID            kernel.UUID
	OrderNumber   string
	Status        string
	GrandTotal    string
	SubOrderCount int
	CreatedAt     time.Time
}
