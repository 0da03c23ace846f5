package commands

import (
	"context"

	"marketplace/internal/pkg/errs"
)

// UpdateCaseStatusCommandHandler handles seller-driven review transitions on
// return cases: taking a case under review, approving or rejecting it.
// Completion happens through case resolution, not here.
type UpdateCaseStatusCommandHandler struct {
	uowFactory CaseUoWFactory
}

// NewUpdateCaseStatusCommandHandler creates a handler for case review
// transitions.
func NewUpdateCaseStatusCommandHandler(uowFactory CaseUoWFactory) UpdateCaseStatusCommandHandler {
	return UpdateCaseStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the review transition command.
// Verifies store ownership and applies the transition through the aggregate.
func (h UpdateCaseStatusCommandHandler) Handle(ctx context.Context, cmd UpdateCaseStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	caseRepo := uow.ReturnCaseRepository()

	aggregate, err := caseRepo.Get(ctx, cmd.CaseID())
	if err != nil {
		return err
	}

	if !aggregate.IsOwnedByStore(cmd.StoreID()) {
		return errs.NewNotAuthorizedError(cmd.StoreID().String(), aggregate.CaseNumber())
	}

	if err = aggregate.UpdateStatus(cmd.Target(), cmd.SellerNotes()); err != nil {
		return err
	}

	if err = caseRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
