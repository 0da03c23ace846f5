package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Order is the aggregate root for a buyer's full checkout. It owns one
// sub-order per distinct seller and carries the aggregate monetary totals and
// the delivery address snapshot captured at creation time.
//
// Invariants:
//   - grand total equals items subtotal plus shipping total
//   - items subtotal equals the sum of the sub-orders' subtotals
//   - the shipping shares of the sub-orders sum to the shipping total
//   - status changes only through the order transition table, and Paid/Failed
//     outcomes cascade to every child sub-order atomically
type Order struct {
	id                   kernel.UUID
	buyerID              kernel.UUID
	orderNumber          string
	paymentTransactionID string

	itemsSubtotal kernel.Money
	shippingTotal kernel.Money
	grandTotal    kernel.Money

	address kernel.Address
	status  Status

	createdAt  time.Time
	paidAt     *time.Time
	failedAt   *time.Time
	refundedAt *time.Time

	subOrders []*SellerSubOrder

	version       int
	isConstructed bool
}

// NumberFromID derives the stable human-facing order number from the order's
// identity: "ORD-" plus the first eight hex characters of the UUID, uppercased.
func NumberFromID(id kernel.UUID) string {
	return "ORD-" + strings.ToUpper(id.String()[:8])
}

// NewOrder creates an order in status New from its sub-orders. The monetary
// totals are computed from the children; the shipping total must equal the
// sum of the sub-orders' shipping shares.
func NewOrder(
	id kernel.UUID,
	buyerID kernel.UUID,
	paymentTransactionID string,
	address kernel.Address,
	shippingTotal kernel.Money,
	subOrders []*SellerSubOrder,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        StatusNew,
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setBuyerID(buyerID),
		o.setPaymentTransactionID(paymentTransactionID),
		o.setAddress(address),
		o.setSubOrders(subOrders),
	); err != nil {
		return nil, err
	}

	o.orderNumber = NumberFromID(id)
	o.shippingTotal = shippingTotal
	o.itemsSubtotal = kernel.ZeroMoney()
	shippingSum := kernel.ZeroMoney()
	for _, sub := range o.subOrders {
		o.itemsSubtotal = o.itemsSubtotal.Add(sub.Subtotal())
		shippingSum = shippingSum.Add(sub.Shipping())
	}
	o.grandTotal = o.itemsSubtotal.Add(o.shippingTotal)

	if !shippingSum.IsEqual(shippingTotal) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"shipping total is invalid",
			fmt.Errorf("sub-order shipping shares sum to %s, expected %s", shippingSum, shippingTotal),
		)
	}

	return o, nil
}

// RestoreOrder reconstructs an order aggregate from persistence.
func RestoreOrder(
	id kernel.UUID,
	buyerID kernel.UUID,
	paymentTransactionID string,
	address kernel.Address,
	shippingTotal kernel.Money,
	subOrders []*SellerSubOrder,
	status Status,
	createdAt time.Time,
	paidAt, failedAt, refundedAt *time.Time,
	version int,
) (*Order, error) {
	o, err := NewOrder(id, buyerID, paymentTransactionID, address, shippingTotal, subOrders, createdAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}

	o.status = status
	o.paidAt = paidAt
	o.failedAt = failedAt
	o.refundedAt = refundedAt
	o.version = version
	return o, nil
}

// Validate ensures the order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// BuyerID returns the identity of the buyer who placed the order.
func (o *Order) BuyerID() kernel.UUID {
	return o.buyerID
}

// OrderNumber returns the stable human-facing order number.
func (o *Order) OrderNumber() string {
	return o.orderNumber
}

// PaymentTransactionID returns the payment transaction reference supplied at
// checkout.
func (o *Order) PaymentTransactionID() string {
	return o.paymentTransactionID
}

// ItemsSubtotal returns the sum of all items' line totals across sub-orders.
func (o *Order) ItemsSubtotal() kernel.Money {
	return o.itemsSubtotal
}

// ShippingTotal returns the order-level shipping cost.
func (o *Order) ShippingTotal() kernel.Money {
	return o.shippingTotal
}

// GrandTotal returns items subtotal plus shipping total.
func (o *Order) GrandTotal() kernel.Money {
	return o.grandTotal
}

// Address returns the delivery address snapshot captured at creation time.
func (o *Order) Address() kernel.Address {
	return o.address
}

// Status returns the current order status.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// PaidAt returns when the payment succeeded, if it did.
func (o *Order) PaidAt() *time.Time { return o.paidAt }

// FailedAt returns when the payment failed, if it did.
func (o *Order) FailedAt() *time.Time { return o.failedAt }

// RefundedAt returns when the order was fully refunded, if it was.
func (o *Order) RefundedAt() *time.Time { return o.refundedAt }

// Version returns the optimistic-concurrency token loaded from persistence.
func (o *Order) Version() int { return o.version }

// SubOrders returns the order's seller sub-orders in creation order.
func (o *Order) SubOrders() []*SellerSubOrder {
	return o.subOrders
}

// SubOrder finds a child sub-order by identity.
func (o *Order) SubOrder(subOrderID kernel.UUID) (*SellerSubOrder, error) {
	for _, sub := range o.subOrders {
		if sub.ID().IsEqual(subOrderID) {
			return sub, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("subOrderId", subOrderID.String())
}

// Items returns every item of the order across all sub-orders, preserving
// sub-order creation order.
func (o *Order) Items() []*SubOrderItem {
	var items []*SubOrderItem
	for _, sub := range o.subOrders {
		items = append(items, sub.Items()...)
	}
	return items
}

// IsOwnedByBuyer reports whether the given buyer placed this order.
func (o *Order) IsOwnedByBuyer(buyerID kernel.UUID) bool {
	return o.buyerID.IsEqual(buyerID)
}

// ApplyPaymentOutcome records the payment result and cascades the same
// outcome to every child sub-order with matching timestamps. The order must
// be in status New: a second payment callback for an already-decided order
// indicates an upstream defect and is reported, not absorbed.
//
// The cascade is all-or-nothing; on any child failure the aggregate is left
// for the caller to discard unpersisted.
func (o *Order) ApplyPaymentOutcome(succeeded bool, now time.Time) error {
	if o.status != StatusNew {
		return errs.NewBusinessRuleErrorWithCause(
			"payment outcome already decided",
			fmt.Errorf("order %s is %s, expected New", o.orderNumber, o.status),
		)
	}

	orderTarget, subTarget := StatusPaid, SubOrderPaid
	if !succeeded {
		orderTarget, subTarget = StatusFailed, SubOrderFailed
	}

	newStatus, err := o.status.TransitionTo(orderTarget)
	if err != nil {
		return err
	}

	for _, sub := range o.subOrders {
		if err := sub.TransitionTo(subTarget, now); err != nil {
			return err
		}
	}

	o.status = newStatus
	if succeeded {
		o.paidAt = &now
	} else {
		o.failedAt = &now
	}
	return nil
}

// Refund moves a Paid order to Refunded. Called when the last sub-order of
// the order becomes refunded.
func (o *Order) Refund(now time.Time) error {
	newStatus, err := o.status.TransitionTo(StatusRefunded)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.refundedAt = &now
	return nil
}

// AllOtherSubOrdersRefunded reports whether every sub-order except the given
// one is already Refunded. The excluded sub-order is the one currently being
// refunded in the same unit of work; excluding it avoids requiring its
// Refunded state to be persisted before the check runs.
func (o *Order) AllOtherSubOrdersRefunded(excludeSubOrderID kernel.UUID) bool {
	for _, sub := range o.subOrders {
		if sub.ID().IsEqual(excludeSubOrderID) {
			continue
		}
		if sub.Status() != SubOrderRefunded {
			return false
		}
	}
	return true
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}
	o.buyerID = buyerID
	return nil
}

func (o *Order) setPaymentTransactionID(paymentTransactionID string) error {
	if paymentTransactionID == "" {
		return errs.NewValueIsRequiredError("payment transaction reference")
	}
	o.paymentTransactionID = paymentTransactionID
	return nil
}

func (o *Order) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.address = address
	return nil
}

func (o *Order) setSubOrders(subOrders []*SellerSubOrder) error {
	if len(subOrders) == 0 {
		return errs.NewValueIsRequiredError("sub-orders")
	}
	for _, sub := range subOrders {
		if err := sub.Validate(); err != nil {
			return err
		}
	}
	o.subOrders = subOrders
	return nil
}
