package ports

import (
	"context"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// The aggregate is stored with its sub-orders and items; loading an order
// rehydrates the whole tree.
type OrderRepository interface {
	// Add persists a new order aggregate with all of its sub-orders and items.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. The write is
	// guarded by the aggregate's version; a stale version fails the update.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, including
	// all sub-orders and their items.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetBySubOrder retrieves the order aggregate containing the given
	// sub-order. Used when a workflow holds a sub-order reference but needs
	// the whole aggregate, such as the refund cascade.
	GetBySubOrder(ctx context.Context, subOrderID kernel.UUID) (*order.Order, error)
}

// SubOrderRepository defines the persistence contract for seller sub-orders
// addressed directly, outside their parent order. Fulfillment and return
// workflows operate per sub-order and never need the sibling sub-orders.
type SubOrderRepository interface {
	// Get retrieves a sub-order with its items by unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.SellerSubOrder, error)

	// Update persists changes to a sub-order and its items. The write is
	// guarded by the sub-order's version; a stale version fails the update.
	Update(ctx context.Context, subOrder *order.SellerSubOrder) error

	// GetAllShippedBefore retrieves sub-orders that have been in status
	// Shipped since before the cutoff. Used by the automatic delivery
	// confirmation job.
	GetAllShippedBefore(ctx context.Context, cutoff time.Time) ([]*order.SellerSubOrder, error)
}
