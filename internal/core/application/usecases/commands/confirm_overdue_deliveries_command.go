package commands

import (
	"errors"

	"marketplace/internal/pkg/guard"
)

var ErrConfirmOverdueDeliveriesCommandIsNotConstructed = errors.New(
	"ConfirmOverdueDeliveriesCommand must be created via NewConfirmOverdueDeliveriesCommand constructor",
)

// ConfirmOverdueDeliveriesCommand triggers automatic delivery confirmation
// for sub-orders that have been Shipped longer than the configured grace
// period. Carries no parameters; the cutoff is computed by the handler.
type ConfirmOverdueDeliveriesCommand struct {
	guard guard.ConstructorGuard
}

// NewConfirmOverdueDeliveriesCommand creates the confirmation trigger command.
func NewConfirmOverdueDeliveriesCommand() ConfirmOverdueDeliveriesCommand {
	return ConfirmOverdueDeliveriesCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c ConfirmOverdueDeliveriesCommand) Validate() error {
	return c.guard.Validate(ErrConfirmOverdueDeliveriesCommandIsNotConstructed)
}
