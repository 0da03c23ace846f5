package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrGetStoreSubOrdersQueryIsNotConstructed = errors.New(
	"GetStoreSubOrdersQuery must be created via NewGetStoreSubOrdersQuery constructor",
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// GetStoreSubOrdersQuery lists a store's sub-orders, optionally filtered by
// status, with offset pagination.
type GetStoreSubOrdersQuery struct {
	guard guard.ConstructorGuard

	storeID  kernel.UUID
	status   *order.SubOrderStatus
	page     int
	pageSize int
}

// NewGetStoreSubOrdersQuery creates a query for the given store. status is
// optional; page is 1-based and pageSize falls back to the default when zero.
func NewGetStoreSubOrdersQuery(
	storeID kernel.UUID,
	status *order.SubOrderStatus,
	page int,
	pageSize int,
) (GetStoreSubOrdersQuery, error) {
	if err := storeID.Validate(); err != nil {
		return GetStoreSubOrdersQuery{}, err
	}
	if status != nil {
		if err := status.Validate(); err != nil {
			return GetStoreSubOrdersQuery{}, err
		}
	}
	if page < 1 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	if pageSize < 1 || pageSize > maxPageSize {
		return GetStoreSubOrdersQuery{}, errs.NewValueIsOutOfRangeError(
			"page size", pageSize, 1, maxPageSize)
	}

	return GetStoreSubOrdersQuery{
		guard:    guard.NewConstructorGuard(),
		storeID:  storeID,
		status:   status,
		page:     page,
		pageSize: pageSize,
	}, nil
}

// StoreID returns the store whose sub-orders are listed.
func (q GetStoreSubOrdersQuery) StoreID() kernel.UUID {
	return q.storeID
}

// Status returns the optional status filter.
func (q GetStoreSubOrdersQuery) Status() *order.SubOrderStatus {
	return q.status
}

// Page returns the 1-based page number.
func (q GetStoreSubOrdersQuery) Page() int {
	return q.page
}

// PageSize returns the page size.
func (q GetStoreSubOrdersQuery) PageSize() int {
	return q.pageSize
}

// Validate ensures the query was created through the constructor.
func (q GetStoreSubOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetStoreSubOrdersQueryIsNotConstructed)
}

// GetStoreSubOrdersQueryResponse is one row of a store's sub-order listing.
type GetStoreSubOrdersQueryResponse struct {
	ID             kernel.UUID
	SubOrderNumber string
	Status         string
	Total          string
	TrackingNumber string
	Carrier        string
	ItemCount      int
	PaidAt         *time.Time
	ShippedAt      *time.Time
}
