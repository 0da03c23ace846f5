package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/returncase"
	"marketplace/internal/pkg/guard"
)

var ErrUpdateCaseStatusCommandIsNotConstructed = errors.New(
	"UpdateCaseStatusCommand must be created via NewUpdateCaseStatusCommand constructor",
)

// UpdateCaseStatusCommand represents a seller's request to move a return
// case through the review workflow, optionally recording notes.
type UpdateCaseStatusCommand struct { //nolint:recvcheck //using for validation
	caseID      kernel.UUID
	storeID     kernel.UUID
	target      returncase.Status
	sellerNotes string

	guard guard.ConstructorGuard
}

// NewUpdateCaseStatusCommand creates a command to change a case's review
// status on behalf of the given store.
func NewUpdateCaseStatusCommand(
	caseID kernel.UUID,
	storeID kernel.UUID,
	target returncase.Status,
	sellerNotes string,
) (UpdateCaseStatusCommand, error) {
	cmd := UpdateCaseStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		caseID.Validate(),
		storeID.Validate(),
		target.Validate(),
	); err != nil {
		return UpdateCaseStatusCommand{}, err
	}

	cmd.caseID = caseID
	cmd.storeID = storeID
	cmd.target = target
	cmd.sellerNotes = sellerNotes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCaseStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCaseStatusCommandIsNotConstructed)
}

// CaseID returns the case to update.
func (c UpdateCaseStatusCommand) CaseID() kernel.UUID {
	return c.caseID
}

// StoreID returns the acting store's identity.
func (c UpdateCaseStatusCommand) StoreID() kernel.UUID {
	return c.storeID
}

// Target returns the requested review status.
func (c UpdateCaseStatusCommand) Target() returncase.Status {
	return c.target
}

// SellerNotes returns the seller's notes for this update.
func (c UpdateCaseStatusCommand) SellerNotes() string {
	return c.sellerNotes
}
