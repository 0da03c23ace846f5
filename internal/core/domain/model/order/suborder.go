package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrSubOrderIsNotConstructed is returned when a SellerSubOrder instance was
// not created through NewSellerSubOrder or RestoreSellerSubOrder.
var ErrSubOrderIsNotConstructed = errors.New("SellerSubOrder must be created via NewSellerSubOrder constructor")

// SellerSubOrder is the portion of an order fulfilled by a single seller.
// It owns the sub-order's items and is the unit sellers operate on: they
// progress its status explicitly (Preparing, Shipped, ...) or implicitly by
// updating item statuses, from which the sub-order status is re-derived.
//
// Invariants:
//   - subtotal equals the sum of the items' line totals
//   - total equals subtotal plus the sub-order's shipping share
//   - status changes only through the sub-order transition table or the
//     item-status derivation rules
//   - tracking number and carrier are present only once Shipped
type SellerSubOrder struct {
	id             kernel.UUID
	orderID        kernel.UUID
	storeID        kernel.UUID
	storeName      string
	seq            int
	subOrderNumber string

	subtotal kernel.Money
	shipping kernel.Money
	total    kernel.Money

	status         SubOrderStatus
	carrier        string
	trackingNumber string

	paidAt      *time.Time
	preparingAt *time.Time
	shippedAt   *time.Time
	deliveredAt *time.Time
	cancelledAt *time.Time
	refundedAt  *time.Time
	failedAt    *time.Time

	items []*SubOrderItem

	version       int
	isConstructed bool
}

// NewSellerSubOrder creates a sub-order in status New with the given items.
// seq is the 1-based per-seller sequence inside the parent order; the
// sub-order number is derived from the parent order number and seq.
// The subtotal is computed from the items and must not be supplied.
func NewSellerSubOrder(
	id kernel.UUID,
	orderID kernel.UUID,
	storeID kernel.UUID,
	storeName string,
	seq int,
	orderNumber string,
	shipping kernel.Money,
	items []*SubOrderItem,
) (*SellerSubOrder, error) {
	s := &SellerSubOrder{
		status:        SubOrderNew,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setOrderID(orderID),
		s.setStore(storeID, storeName),
		s.setSequence(seq, orderNumber),
		s.setItems(items),
	); err != nil {
		return nil, err
	}

	s.shipping = shipping
	s.subtotal = kernel.ZeroMoney()
	for _, item := range s.items {
		s.subtotal = s.subtotal.Add(item.LineTotal())
	}
	s.total = s.subtotal.Add(s.shipping)

	return s, nil
}

// RestoreSellerSubOrder reconstructs a sub-order from persistence.
func RestoreSellerSubOrder(
	id kernel.UUID,
	orderID kernel.UUID,
	storeID kernel.UUID,
	storeName string,
	seq int,
	orderNumber string,
	shipping kernel.Money,
	items []*SubOrderItem,
	status SubOrderStatus,
	carrier, trackingNumber string,
	paidAt, preparingAt, shippedAt, deliveredAt, cancelledAt, refundedAt, failedAt *time.Time,
	version int,
) (*SellerSubOrder, error) {
	s, err := NewSellerSubOrder(id, orderID, storeID, storeName, seq, orderNumber, shipping, items)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}

	s.status = status
	s.carrier = carrier
	s.trackingNumber = trackingNumber
	s.paidAt = paidAt
	s.preparingAt = preparingAt
	s.shippedAt = shippedAt
	s.deliveredAt = deliveredAt
	s.cancelledAt = cancelledAt
	s.refundedAt = refundedAt
	s.failedAt = failedAt
	s.version = version
	return s, nil
}

// Validate ensures the sub-order was created through a constructor.
func (s *SellerSubOrder) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrSubOrderIsNotConstructed
	}
	return nil
}

// ID returns the sub-order's unique identifier.
func (s *SellerSubOrder) ID() kernel.UUID {
	return s.id
}

// OrderID returns the identity of the parent order.
func (s *SellerSubOrder) OrderID() kernel.UUID {
	return s.orderID
}

// StoreID returns the identity of the fulfilling seller's store.
func (s *SellerSubOrder) StoreID() kernel.UUID {
	return s.storeID
}

// StoreName returns the store name snapshot taken at checkout.
func (s *SellerSubOrder) StoreName() string {
	return s.storeName
}

// Seq returns the 1-based per-seller sequence inside the parent order.
func (s *SellerSubOrder) Seq() int {
	return s.seq
}

// SubOrderNumber returns the human-facing sub-order number, derived from the
// parent order number plus the sequence.
func (s *SellerSubOrder) SubOrderNumber() string {
	return s.subOrderNumber
}

// Subtotal returns the sum of the items' line totals.
func (s *SellerSubOrder) Subtotal() kernel.Money {
	return s.subtotal
}

// Shipping returns this sub-order's share of the order shipping total.
func (s *SellerSubOrder) Shipping() kernel.Money {
	return s.shipping
}

// Total returns subtotal plus shipping.
func (s *SellerSubOrder) Total() kernel.Money {
	return s.total
}

// Status returns the current sub-order status.
func (s *SellerSubOrder) Status() SubOrderStatus {
	return s.status
}

// Carrier returns the shipping carrier, set at the Shipped transition.
func (s *SellerSubOrder) Carrier() string {
	return s.carrier
}

// TrackingNumber returns the tracking number, set at the Shipped transition.
func (s *SellerSubOrder) TrackingNumber() string {
	return s.trackingNumber
}

// Items returns the sub-order's items.
func (s *SellerSubOrder) Items() []*SubOrderItem {
	return s.items
}

// Item finds an item of this sub-order by identity.
func (s *SellerSubOrder) Item(itemID kernel.UUID) (*SubOrderItem, error) {
	for _, item := range s.items {
		if item.ID().IsEqual(itemID) {
			return item, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("itemId", itemID.String())
}

// PaidAt returns when the sub-order entered Paid, if it did.
func (s *SellerSubOrder) PaidAt() *time.Time { return s.paidAt }

// PreparingAt returns when the sub-order entered Preparing, if it did.
func (s *SellerSubOrder) PreparingAt() *time.Time { return s.preparingAt }

// ShippedAt returns when the sub-order entered Shipped, if it did.
func (s *SellerSubOrder) ShippedAt() *time.Time { return s.shippedAt }

// DeliveredAt returns when the sub-order entered Delivered, if it did.
func (s *SellerSubOrder) DeliveredAt() *time.Time { return s.deliveredAt }

// CancelledAt returns when the sub-order entered Cancelled, if it did.
func (s *SellerSubOrder) CancelledAt() *time.Time { return s.cancelledAt }

// RefundedAt returns when the sub-order entered Refunded, if it did.
func (s *SellerSubOrder) RefundedAt() *time.Time { return s.refundedAt }

// FailedAt returns when the sub-order entered Failed, if it did.
func (s *SellerSubOrder) FailedAt() *time.Time { return s.failedAt }

// Version returns the optimistic-concurrency token loaded from persistence.
func (s *SellerSubOrder) Version() int { return s.version }

// IsOwnedByStore reports whether the given store fulfills this sub-order.
func (s *SellerSubOrder) IsOwnedByStore(storeID kernel.UUID) bool {
	return s.storeID.IsEqual(storeID)
}

// AllowsItemUpdates reports whether individual items may still be progressed.
// Items cannot be updated once the sub-order is shipped, delivered, or
// cancelled at the sub-order level.
func (s *SellerSubOrder) AllowsItemUpdates() bool {
	return s.status == SubOrderPaid || s.status == SubOrderPreparing
}

// TransitionTo moves the sub-order to a new status, validating against the
// sub-order transition table and stamping the per-status timestamp with now.
// Use Ship for the Shipped transition, which requires tracking metadata.
func (s *SellerSubOrder) TransitionTo(target SubOrderStatus, now time.Time) error {
	if target == SubOrderShipped && s.trackingNumber == "" {
		return errs.NewValueIsRequiredError("tracking number and carrier are required to ship")
	}

	newStatus, err := s.status.TransitionTo(target)
	if err != nil {
		return err
	}

	s.applyStatus(newStatus, now)
	return nil
}

// Ship moves the sub-order to Shipped, recording the tracking number and
// carrier. Both are required.
func (s *SellerSubOrder) Ship(trackingNumber, carrier string, now time.Time) error {
	if err := errors.Join(
		requireField(trackingNumber, "tracking number"),
		requireField(carrier, "carrier"),
	); err != nil {
		return err
	}

	newStatus, err := s.status.TransitionTo(SubOrderShipped)
	if err != nil {
		return err
	}

	s.trackingNumber = trackingNumber
	s.carrier = carrier
	s.applyStatus(newStatus, now)
	return nil
}

// ApplyItemTransition progresses one item and stamps its timestamp. The
// caller is expected to invoke DeriveStatusFromItems afterwards.
func (s *SellerSubOrder) ApplyItemTransition(itemID kernel.UUID, target ItemStatus, now time.Time) error {
	item, err := s.Item(itemID)
	if err != nil {
		return err
	}
	return item.TransitionTo(target, now)
}

// DeriveStatusFromItems recomputes the sub-order status from the full item
// set. The derivation is recomputed from scratch on every call, never kept as
// an incremental counter. Precedence:
//
//  1. all items Cancelled            -> Cancelled
//  2. all non-Cancelled Delivered    -> Delivered
//  3. any item Shipped or Delivered  -> Shipped (unless already Shipped, so
//     tracking info set by an explicit Ship is never clobbered)
//  4. any item Preparing             -> Preparing (unless already Preparing)
//
// Derived changes bypass the explicit transition table: once item-level
// updates are in use, the item set is the sole authority for the sub-order
// status. Returns whether the status changed.
func (s *SellerSubOrder) DeriveStatusFromItems(now time.Time) bool {
	if len(s.items) == 0 {
		return false
	}

	allCancelled := true
	allDelivered := true
	anyShippedOrDelivered := false
	anyPreparing := false

	for _, item := range s.items {
		switch item.Status() {
		case ItemCancelled:
			// Cancelled items are excluded from the delivered check.
		case ItemDelivered:
			allCancelled = false
			anyShippedOrDelivered = true
		case ItemShipped:
			allCancelled = false
			allDelivered = false
			anyShippedOrDelivered = true
		case ItemPreparing:
			allCancelled = false
			allDelivered = false
			anyPreparing = true
		default:
			allCancelled = false
			allDelivered = false
		}
	}

	var target SubOrderStatus
	switch {
	case allCancelled:
		target = SubOrderCancelled
	case allDelivered:
		target = SubOrderDelivered
	case anyShippedOrDelivered:
		target = SubOrderShipped
	case anyPreparing:
		target = SubOrderPreparing
	default:
		return false
	}

	if target == s.status {
		return false
	}

	s.applyStatus(target, now)
	return true
}

// applyStatus records the new status and its timestamp without consulting the
// transition table. Callers are responsible for legality.
func (s *SellerSubOrder) applyStatus(newStatus SubOrderStatus, now time.Time) {
	s.status = newStatus
	switch newStatus {
	case SubOrderPaid:
		s.paidAt = &now
	case SubOrderPreparing:
		s.preparingAt = &now
	case SubOrderShipped:
		s.shippedAt = &now
	case SubOrderDelivered:
		s.deliveredAt = &now
	case SubOrderCancelled:
		s.cancelledAt = &now
	case SubOrderRefunded:
		s.refundedAt = &now
	case SubOrderFailed:
		s.failedAt = &now
	}
}

func (s *SellerSubOrder) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *SellerSubOrder) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	s.orderID = orderID
	return nil
}

func (s *SellerSubOrder) setStore(storeID kernel.UUID, storeName string) error {
	if err := storeID.Validate(); err != nil {
		return err
	}
	if storeName == "" {
		return errs.NewValueIsRequiredError("store name")
	}
	s.storeID = storeID
	s.storeName = storeName
	return nil
}

func (s *SellerSubOrder) setSequence(seq int, orderNumber string) error {
	if seq <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"sequence is invalid",
			fmt.Errorf("%d is not greater than 0", seq),
		)
	}
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	s.seq = seq
	s.subOrderNumber = fmt.Sprintf("%s-%d", orderNumber, seq)
	return nil
}

func (s *SellerSubOrder) setItems(items []*SubOrderItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("sub-order items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	s.items = items
	return nil
}

func requireField(value, name string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	return nil
}
