package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetSubOrderHistoryQueryIsNotConstructed = errors.New(
	"GetSubOrderHistoryQuery must be created via NewGetSubOrderHistoryQuery constructor",
)

// GetSubOrderHistoryQuery retrieves the buyer-facing tracking timeline of a
// sub-order: every recorded status change in chronological order.
type GetSubOrderHistoryQuery struct {
	guard guard.ConstructorGuard

	subOrderID kernel.UUID
}

// NewGetSubOrderHistoryQuery creates a timeline query for the given sub-order.
func NewGetSubOrderHistoryQuery(subOrderID kernel.UUID) (GetSubOrderHistoryQuery, error) {
	if err := subOrderID.Validate(); err != nil {
		return GetSubOrderHistoryQuery{}, err
	}

	return GetSubOrderHistoryQuery{
		guard:      guard.NewConstructorGuard(),
		subOrderID: subOrderID,
	}, nil
}

// SubOrderID returns the sub-order whose timeline is requested.
func (q GetSubOrderHistoryQuery) SubOrderID() kernel.UUID {
	return q.subOrderID
}

// Validate ensures the query was created through the constructor.
func (q GetSubOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetSubOrderHistoryQueryIsNotConstructed)
}

// GetSubOrderHistoryQueryResponse is one step of the tracking timeline.
type GetSubOrderHistoryQueryResponse struct {
	PreviousStatus string
	NewStatus      string
	TrackingNumber string
	Carrier        string
	Notes          string
	ChangedAt      time.Time
}
