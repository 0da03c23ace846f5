package ports

import (
	"context"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/returncase"
)

// OrderEventPublisher publishes integration events for other services
// (search indexing, analytics, seller dashboards). Publishing happens after
// the local transaction commits; a publish failure is logged, not propagated.
type OrderEventPublisher interface {
	// PublishOrderPlaced announces a newly placed order.
	PublishOrderPlaced(ctx context.Context, aggregate *order.Order) error

	// PublishSubOrderStatusChanged announces a sub-order status change.
	PublishSubOrderStatusChanged(ctx context.Context, subOrder *order.SellerSubOrder, previous order.SubOrderStatus) error

	// PublishCaseResolved announces a resolved return case.
	PublishCaseResolved(ctx context.Context, aggregate *returncase.ReturnRequest) error
}
