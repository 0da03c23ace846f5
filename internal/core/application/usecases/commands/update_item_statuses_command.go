package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateItemStatusesCommandIsNotConstructed = errors.New(
	"UpdateItemStatusesCommand must be created via NewUpdateItemStatusesCommand constructor",
)

// ItemStatusUpdate names one item-level transition requested by the seller.
type ItemStatusUpdate struct {
	ItemID kernel.UUID
	Target order.ItemStatus
}

// UpdateItemStatusesCommand represents a seller's request to move individual
// items of a sub-order to new statuses. After the items are updated, the
// sub-order's own status is derived from them.
type UpdateItemStatusesCommand struct { //nolint:recvcheck //using for validation
	subOrderID kernel.UUID
	storeID    kernel.UUID
	updates    []ItemStatusUpdate

	guard guard.ConstructorGuard
}

// NewUpdateItemStatusesCommand creates a command for per-item status updates.
// Requires at least one update; each update's identity and target status must
// be valid.
func NewUpdateItemStatusesCommand(
	subOrderID kernel.UUID,
	storeID kernel.UUID,
	updates []ItemStatusUpdate,
) (UpdateItemStatusesCommand, error) {
	cmd := UpdateItemStatusesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		subOrderID.Validate(),
		storeID.Validate(),
		cmd.setUpdates(updates),
	); err != nil {
		return UpdateItemStatusesCommand{}, err
	}

	cmd.subOrderID = subOrderID
	cmd.storeID = storeID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateItemStatusesCommand) Validate() error {
	return c.guard.Validate(ErrUpdateItemStatusesCommandIsNotConstructed)
}

// SubOrderID returns the sub-order whose items are updated.
func (c UpdateItemStatusesCommand) SubOrderID() kernel.UUID {
	return c.subOrderID
}

// StoreID returns the acting store's identity.
func (c UpdateItemStatusesCommand) StoreID() kernel.UUID {
	return c.storeID
}

// Updates returns the requested item transitions.
func (c UpdateItemStatusesCommand) Updates() []ItemStatusUpdate {
	return c.updates
}

func (c *UpdateItemStatusesCommand) setUpdates(updates []ItemStatusUpdate) error {
	if len(updates) == 0 {
		return errs.NewValueIsRequiredError("item updates")
	}

	for _, update := range updates {
		if err := update.ItemID.Validate(); err != nil {
			return err
		}
		if err := update.Target.Validate(); err != nil {
			return err
		}
	}

	c.updates = updates
	return nil
}
