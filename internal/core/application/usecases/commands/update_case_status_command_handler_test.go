package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/returncase"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func fixtureCase(t *testing.T, storeID kernel.UUID) *returncase.ReturnRequest {
	t.Helper()
	r, err := returncase.NewReturnRequest(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), storeID,
		returncase.TypeReturn, "arrived damaged",
		[]returncase.CaseItem{mustCaseItem(t, kernel.NewUUID())}, time.Now())
	require.NoError(t, err)
	return r
}

func TestUpdateCaseStatusCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	aggregate := fixtureCase(t, storeID)
	cmd, _ := commands.NewUpdateCaseStatusCommand(
		aggregate.ID(), storeID, returncase.StatusUnderReview, "checking photos")

	caseRepo := new(MockReturnCaseRepository)
	uow := new(MockCaseUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ReturnCaseRepository").Return(caseRepo).Once(),
		caseRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		caseRepo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCaseUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateCaseStatusCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.Equal(t, returncase.StatusUnderReview, aggregate.Status())
	require.Equal(t, "checking photos", aggregate.SellerNotes())
	caseRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestUpdateCaseStatusCommandHandler_Handle_NotAuthorized(t *testing.T) {
	ctx := t.Context()
	aggregate := fixtureCase(t, kernel.NewUUID())
	cmd, _ := commands.NewUpdateCaseStatusCommand(
		aggregate.ID(), kernel.NewUUID(), returncase.StatusApproved, "")

	caseRepo := new(MockReturnCaseRepository)
	uow := new(MockCaseUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ReturnCaseRepository").Return(caseRepo).Once(),
		caseRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCaseUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateCaseStatusCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrNotAuthorized)
	require.Equal(t, returncase.StatusRequested, aggregate.Status())
}

func TestUpdateCaseStatusCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	storeID := kernel.NewUUID()
	aggregate := fixtureCase(t, storeID)
	require.NoError(t, aggregate.UpdateStatus(returncase.StatusRejected, "no defect"))

	cmd, _ := commands.NewUpdateCaseStatusCommand(
		aggregate.ID(), storeID, returncase.StatusApproved, "")

	caseRepo := new(MockReturnCaseRepository)
	uow := new(MockCaseUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ReturnCaseRepository").Return(caseRepo).Once(),
		caseRepo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCaseUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateCaseStatusCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	caseRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
