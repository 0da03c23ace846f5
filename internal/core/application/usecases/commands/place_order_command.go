package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrPlaceOrderCommandIsNotConstructed = errors.New(
		"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
	)
)

// PlaceOrderCommand represents a request to place a new multi-seller order.
// Carries the purchase lines, the checkout shipping total, the delivery
// address and the payment transaction already authorized upstream.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewPlaceOrderCommand(orderID, buyerID, "txn_3OqXz2", address, shippingTotal, lines)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, publisher, logger)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to place order: %w", err)
//	}
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID              kernel.UUID
	buyerID              kernel.UUID
	paymentTransactionID string
	address              kernel.Address
	shippingTotal        kernel.Money
	lines                []services.OrderLine

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand creates a command to place a new order.
// Validates identities, the delivery address, and that at least one purchase
// line is present. Line contents are validated by the aggregate builder.
func NewPlaceOrderCommand(
	orderID kernel.UUID,
	buyerID kernel.UUID,
	paymentTransactionID string,
	address kernel.Address,
	shippingTotal kernel.Money,
	lines []services.OrderLine,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setBuyerID(buyerID),
		cmd.setPaymentTransactionID(paymentTransactionID),
		cmd.setAddress(address),
		cmd.setLines(lines),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	cmd.shippingTotal = shippingTotal
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

// OrderID returns the identity for the new order.
func (c PlaceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BuyerID returns the buyer placing the order.
func (c PlaceOrderCommand) BuyerID() kernel.UUID {
	return c.buyerID
}

// PaymentTransactionID returns the upstream payment transaction reference.
func (c PlaceOrderCommand) PaymentTransactionID() string {
	return c.paymentTransactionID
}

// Address returns the delivery address.
func (c PlaceOrderCommand) Address() kernel.Address {
	return c.address
}

// ShippingTotal returns the checkout shipping total to apportion.
func (c PlaceOrderCommand) ShippingTotal() kernel.Money {
	return c.shippingTotal
}

// Lines returns the flat purchase lines to group into sub-orders.
func (c PlaceOrderCommand) Lines() []services.OrderLine {
	return c.lines
}

func (c *PlaceOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PlaceOrderCommand) setBuyerID(buyerID kernel.UUID) error {
	if err := buyerID.Validate(); err != nil {
		return err
	}

	c.buyerID = buyerID
	return nil
}

func (c *PlaceOrderCommand) setPaymentTransactionID(paymentTransactionID string) error {
	if paymentTransactionID == "" {
		return errs.NewValueIsRequiredError("payment transaction id")
	}

	c.paymentTransactionID = paymentTransactionID
	return nil
}

func (c *PlaceOrderCommand) setAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}

	c.address = address
	return nil
}

func (c *PlaceOrderCommand) setLines(lines []services.OrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("order lines")
	}

	c.lines = lines
	return nil
}
