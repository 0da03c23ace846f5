package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrApplyPaymentOutcomeCommandIsNotConstructed = errors.New(
	"ApplyPaymentOutcomeCommand must be created via NewApplyPaymentOutcomeCommand constructor",
)

// ApplyPaymentOutcomeCommand represents the payment service's verdict for an
// order: the payment either succeeded or failed.
type ApplyPaymentOutcomeCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	succeeded bool

	guard guard.ConstructorGuard
}

// NewApplyPaymentOutcomeCommand creates a command recording the payment
// outcome for the given order.
func NewApplyPaymentOutcomeCommand(orderID kernel.UUID, succeeded bool) (ApplyPaymentOutcomeCommand, error) {
	cmd := ApplyPaymentOutcomeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := orderID.Validate(); err != nil {
		return ApplyPaymentOutcomeCommand{}, err
	}

	cmd.orderID = orderID
	cmd.succeeded = succeeded
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyPaymentOutcomeCommand) Validate() error {
	return c.guard.Validate(ErrApplyPaymentOutcomeCommandIsNotConstructed)
}

// OrderID returns the order the outcome applies to.
func (c ApplyPaymentOutcomeCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Succeeded reports whether the payment succeeded.
func (c ApplyPaymentOutcomeCommand) Succeeded() bool {
	return c.succeeded
}
