package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateSubOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateSubOrderStatusCommand must be created via NewUpdateSubOrderStatusCommand constructor",
)

// UpdateSubOrderStatusCommand represents a seller's request to move their
// sub-order to a new fulfillment status. Moving to Shipped requires a
// tracking number and carrier; for other targets they are ignored.
type UpdateSubOrderStatusCommand struct { //nolint:recvcheck //using for validation
	subOrderID     kernel.UUID
	storeID        kernel.UUID
	target         order.SubOrderStatus
	trackingNumber string
	carrier        string
	notes          string

	guard guard.ConstructorGuard
}

// NewUpdateSubOrderStatusCommand creates a command to change a sub-order's
// status on behalf of the given store. Whether the transition itself is
// legal is decided by the aggregate, not here.
func NewUpdateSubOrderStatusCommand(
	subOrderID kernel.UUID,
	storeID kernel.UUID,
	target order.SubOrderStatus,
	trackingNumber string,
	carrier string,
	notes string,
) (UpdateSubOrderStatusCommand, error) {
	cmd := UpdateSubOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		subOrderID.Validate(),
		storeID.Validate(),
		target.Validate(),
	); err != nil {
		return UpdateSubOrderStatusCommand{}, err
	}

	cmd.subOrderID = subOrderID
	cmd.storeID = storeID
	cmd.target = target
	cmd.trackingNumber = trackingNumber
	cmd.carrier = carrier
	cmd.notes = notes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateSubOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateSubOrderStatusCommandIsNotConstructed)
}

// SubOrderID returns the sub-order to update.
func (c UpdateSubOrderStatusCommand) SubOrderID() kernel.UUID {
	return c.subOrderID
}

// StoreID returns the acting store's identity.
func (c UpdateSubOrderStatusCommand) StoreID() kernel.UUID {
	return c.storeID
}

// Target returns the requested status.
func (c UpdateSubOrderStatusCommand) Target() order.SubOrderStatus {
	return c.target
}

// TrackingNumber returns the carrier tracking number for shipments.
func (c UpdateSubOrderStatusCommand) TrackingNumber() string {
	return c.trackingNumber
}

// Carrier returns the carrier name for shipments.
func (c UpdateSubOrderStatusCommand) Carrier() string {
	return c.carrier
}

// Notes returns optional free-form context recorded in the status history.
func (c UpdateSubOrderStatusCommand) Notes() string {
	return c.notes
}
