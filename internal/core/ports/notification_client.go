package ports

import (
	"context"

	"marketplace/internal/core/domain/model/order"
)

// NotificationClient defines the contract with the external notification
// service. Notification failures never fail the business operation; callers
// log and continue.
type NotificationClient interface {
	// SendOrderConfirmation notifies the buyer that their order was placed
	// and paid.
	SendOrderConfirmation(ctx context.Context, aggregate *order.Order) error

	// SendShippingNotification notifies the buyer that a sub-order was
	// handed to a carrier.
	SendShippingNotification(ctx context.Context, subOrder *order.SellerSubOrder) error
}
