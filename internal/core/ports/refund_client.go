package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
)

// Refund is the payment collaborator's view of a refund, as returned by the
// refund service.
type Refund struct {
	ID                   kernel.UUID
	PaymentTransactionID string
	Amount               kernel.Money
	IsFull               bool
}

// RefundClient defines the contract with the external refund service. The
// refund service owns money movement; this module only records the resulting
// refund identity and amount. Creation calls carry the resolution reason and
// the initiating party for the refund service's own audit trail.
type RefundClient interface {
	// GetRefund retrieves an existing refund by identity. Returns an
	// ObjectNotFoundError when the refund service does not know the ID.
	GetRefund(ctx context.Context, refundID kernel.UUID) (Refund, error)

	// ProcessFullRefund creates a refund of the given amount, covering the
	// sub-order's full total, against the given order's payment transaction.
	ProcessFullRefund(
		ctx context.Context,
		orderID kernel.UUID,
		paymentTransactionID string,
		amount kernel.Money,
		reason string,
		initiator string,
	) (Refund, error)

	// ProcessPartialRefund creates a refund of the given amount against the
	// given order's payment transaction, attributed to one seller.
	ProcessPartialRefund(
		ctx context.Context,
		orderID kernel.UUID,
		paymentTransactionID string,
		sellerID kernel.UUID,
		amount kernel.Money,
		reason string,
		initiator string,
	) (Refund, error)
}
