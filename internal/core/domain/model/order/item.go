package order

import (
	"errors"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrItemIsNotConstructed is returned when a SubOrderItem instance was not
// created through NewSubOrderItem or RestoreSubOrderItem.
var ErrItemIsNotConstructed = errors.New("SubOrderItem must be created via NewSubOrderItem constructor")

// SubOrderItem is a single product line inside a seller sub-order. It is
// created once at order placement; quantity and unit price are immutable
// thereafter. Refund amounts are computed from Cancelled items, never by
// mutating quantity.
type SubOrderItem struct {
	id          kernel.UUID
	productID   kernel.UUID
	productName string
	unitPrice   kernel.Money
	quantity    int

	status      ItemStatus
	preparingAt *time.Time
	shippedAt   *time.Time
	deliveredAt *time.Time
	cancelledAt *time.Time

	isConstructed bool
}

// NewSubOrderItem creates an item in status New.
// Quantity must be positive and the product name must be present.
func NewSubOrderItem(
	id kernel.UUID,
	productID kernel.UUID,
	productName string,
	unitPrice kernel.Money,
	quantity int,
) (*SubOrderItem, error) {
	item := &SubOrderItem{
		status:        ItemNew,
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setProduct(productID, productName),
		item.setPricing(unitPrice, quantity),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreSubOrderItem reconstructs an item from persistence, including its
// status and per-status timestamps.
func RestoreSubOrderItem(
	id kernel.UUID,
	productID kernel.UUID,
	productName string,
	unitPrice kernel.Money,
	quantity int,
	status ItemStatus,
	preparingAt, shippedAt, deliveredAt, cancelledAt *time.Time,
) (*SubOrderItem, error) {
	item, err := NewSubOrderItem(id, productID, productName, unitPrice, quantity)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}

	item.status = status
	item.preparingAt = preparingAt
	item.shippedAt = shippedAt
	item.deliveredAt = deliveredAt
	item.cancelledAt = cancelledAt
	return item, nil
}

// Validate ensures the item was created through a constructor.
func (i *SubOrderItem) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the item's unique identifier.
func (i *SubOrderItem) ID() kernel.UUID {
	return i.id
}

// ProductID returns the identity of the purchased product.
func (i *SubOrderItem) ProductID() kernel.UUID {
	return i.productID
}

// ProductName returns the product name snapshot taken at checkout.
func (i *SubOrderItem) ProductName() string {
	return i.productName
}

// UnitPrice returns the per-unit price.
func (i *SubOrderItem) UnitPrice() kernel.Money {
	return i.unitPrice
}

// Quantity returns the purchased quantity.
func (i *SubOrderItem) Quantity() int {
	return i.quantity
}

// Status returns the current item status.
func (i *SubOrderItem) Status() ItemStatus {
	return i.status
}

// LineTotal returns unit price times quantity.
func (i *SubOrderItem) LineTotal() kernel.Money {
	return i.unitPrice.MulInt(i.quantity)
}

// PreparingAt returns when the item entered Preparing, if it did.
func (i *SubOrderItem) PreparingAt() *time.Time {
	return i.preparingAt
}

// ShippedAt returns when the item entered Shipped, if it did.
func (i *SubOrderItem) ShippedAt() *time.Time {
	return i.shippedAt
}

// DeliveredAt returns when the item entered Delivered, if it did.
func (i *SubOrderItem) DeliveredAt() *time.Time {
	return i.deliveredAt
}

// CancelledAt returns when the item entered Cancelled, if it did.
func (i *SubOrderItem) CancelledAt() *time.Time {
	return i.cancelledAt
}

// TransitionTo moves the item to a new status, validating against the item
// transition table and stamping the per-status timestamp with now.
func (i *SubOrderItem) TransitionTo(target ItemStatus, now time.Time) error {
	newStatus, err := i.status.TransitionTo(target)
	if err != nil {
		return err
	}

	i.status = newStatus
	switch newStatus {
	case ItemPreparing:
		i.preparingAt = &now
	case ItemShipped:
		i.shippedAt = &now
	case ItemDelivered:
		i.deliveredAt = &now
	case ItemCancelled:
		i.cancelledAt = &now
	}
	return nil
}

func (i *SubOrderItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *SubOrderItem) setProduct(productID kernel.UUID, productName string) error {
	if err := productID.Validate(); err != nil {
		return err
	}
	if productName == "" {
		return errs.NewValueIsRequiredError("product name")
	}
	i.productID = productID
	i.productName = productName
	return nil
}

func (i *SubOrderItem) setPricing(unitPrice kernel.Money, quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	i.unitPrice = unitPrice
	i.quantity = quantity
	return nil
}
