package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/returncase"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrResolveCaseCommandIsNotConstructed = errors.New(
	"ResolveCaseCommand must be created via NewResolveCaseCommand constructor",
)

// ResolveCaseCommand represents a seller's request to settle a return case.
//
// The refund can come from two places: an existing refund may be linked by
// its identity, or the handler creates a new one through the refund service.
// A partial refund created here needs an explicit amount.
type ResolveCaseCommand struct { //nolint:recvcheck //using for validation
	caseID           kernel.UUID
	storeID          kernel.UUID
	resolution       returncase.ResolutionType
	resolutionReason string
	refundID         *kernel.UUID
	refundAmount     *kernel.Money

	guard guard.ConstructorGuard
}

// NewResolveCaseCommand creates a command to resolve a case.
// refundID links an existing refund instead of creating one; a partial refund
// that is not linked requires a positive refundAmount.
func NewResolveCaseCommand(
	caseID kernel.UUID,
	storeID kernel.UUID,
	resolution returncase.ResolutionType,
	resolutionReason string,
	refundID *kernel.UUID,
	refundAmount *kernel.Money,
) (ResolveCaseCommand, error) {
	cmd := ResolveCaseCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		caseID.Validate(),
		storeID.Validate(),
		resolution.Validate(),
		validateRefundInput(resolution, refundID, refundAmount),
	); err != nil {
		return ResolveCaseCommand{}, err
	}

	cmd.caseID = caseID
	cmd.storeID = storeID
	cmd.resolution = resolution
	cmd.resolutionReason = resolutionReason
	cmd.refundID = refundID
	cmd.refundAmount = refundAmount
	return cmd, nil
}

func validateRefundInput(
	resolution returncase.ResolutionType,
	refundID *kernel.UUID,
	refundAmount *kernel.Money,
) error {
	if refundID != nil {
		return refundID.Validate()
	}
	if resolution == returncase.ResolutionPartialRefund &&
		(refundAmount == nil || !refundAmount.IsPositive()) {
		return errs.NewValueIsRequiredError("refund amount is required for a partial refund")
	}
	return nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveCaseCommand) Validate() error {
	return c.guard.Validate(ErrResolveCaseCommandIsNotConstructed)
}

// CaseID returns the case to resolve.
func (c ResolveCaseCommand) CaseID() kernel.UUID {
	return c.caseID
}

// StoreID returns the acting store's identity.
func (c ResolveCaseCommand) StoreID() kernel.UUID {
	return c.storeID
}

// Resolution returns how the case is settled.
func (c ResolveCaseCommand) Resolution() returncase.ResolutionType {
	return c.resolution
}

// ResolutionReason returns the explanation recorded with the resolution.
func (c ResolveCaseCommand) ResolutionReason() string {
	return c.resolutionReason
}

// RefundID returns the identity of an existing refund to link, if any.
func (c ResolveCaseCommand) RefundID() *kernel.UUID {
	return c.refundID
}

// RefundAmount returns the amount for a partial refund created here, if any.
func (c ResolveCaseCommand) RefundAmount() *kernel.Money {
	return c.refundAmount
}
