package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/returncase"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// ResolveCaseCommandHandler settles return cases.
//
// Resolution is the only operation that talks to the refund service. The
// refund is settled (verified or created) before any local write, so a
// refund failure leaves the case untouched. On a full refund the sub-order
// becomes Refunded, and when it was the order's last non-refunded sub-order
// the whole order becomes Refunded too.
//
// Example:
//
//	handler := NewResolveCaseCommandHandler(uowFactory, refunds, clock, publisher, logger)
//	cmd, _ := NewResolveCaseCommand(caseID, storeID, returncase.ResolutionFullRefund, "defective", nil, nil)
//
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrCollaboratorFailed) {
//	    // Refund service failed; nothing was written locally
//	}
type ResolveCaseCommandHandler struct {
	uowFactory   ResolutionUoWFactory
	refundClient ports.RefundClient
	clock        ports.Clock
	publisher    ports.OrderEventPublisher
	logger       *slog.Logger
}

// NewResolveCaseCommandHandler creates a handler for case resolution.
func NewResolveCaseCommandHandler(
	uowFactory ResolutionUoWFactory,
	refundClient ports.RefundClient,
	clock ports.Clock,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) ResolveCaseCommandHandler {
	return ResolveCaseCommandHandler{
		uowFactory:   uowFactory,
		refundClient: refundClient,
		clock:        clock,
		publisher:    publisher,
		logger:       logger.With("component", "resolve_case"),
	}
}

// Handle processes the resolution command.
func (h ResolveCaseCommandHandler) Handle(ctx context.Context, cmd ResolveCaseCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := h.clock.Now()

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

	if aggregate.Status() == returncase.StatusCompleted {
		return errs.NewBusinessRuleError("case is already resolved")
	}
	if aggregate.Status() == returncase.StatusRejected {
		return errs.NewInvalidStateTransitionError("return case",
			aggregate.Status().String(), returncase.StatusCompleted.String())
	}

	orderRepo := uow.OrderRepository()

	parent, err := orderRepo.GetBySubOrder(ctx, aggregate.SubOrderID())
	if err != nil {
		return err
	}

	subOrder, err := parent.SubOrder(aggregate.SubOrderID())
	if err != nil {
		return err
	}

	refundID, refundAmount, err := h.settleRefund(ctx, cmd, parent, subOrder.Total())
	if err != nil {
		return err
	}

	if err = aggregate.Resolve(cmd.Resolution(), cmd.ResolutionReason(), refundID, refundAmount, now); err != nil {
		return err
	}

	previous := subOrder.Status()
	cascaded := cmd.Resolution().ImpliesSubOrderRefund()

	if cascaded {
		if err = h.cascadeRefund(ctx, uow, parent, subOrder, now); err != nil {
			return err
		}
	}

	if err = caseRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if cascaded {
		recordSubOrderHistory(ctx, uow, h.logger, subOrder,
			previous, "refunded through case resolution", now)
	}

	if err = h.publisher.PublishCaseResolved(ctx, aggregate); err != nil {
		h.logger.WarnContext(ctx, "failed to publish case resolved event",
			"caseNumber", aggregate.CaseNumber(), "error", err)
	}

	return nil
}

// settleRefund returns the refund identity and amount to record on the case.
// A linked refund is verified with the refund service; otherwise a new one is
// created there. No refund service call happens for a no-refund resolution.
func (h ResolveCaseCommandHandler) settleRefund(
	ctx context.Context,
	cmd ResolveCaseCommand,
	parent *order.Order,
	subOrderTotal kernel.Money,
) (*kernel.UUID, *kernel.Money, error) {
	if cmd.Resolution() == returncase.ResolutionNoRefund {
		return nil, nil, nil
	}

	var (
		refund ports.Refund
		err    error
	)

	switch {
	case cmd.RefundID() != nil:
		refund, err = h.refundClient.GetRefund(ctx, *cmd.RefundID())
	case cmd.Resolution() == returncase.ResolutionFullRefund:
		refund, err = h.refundClient.ProcessFullRefund(ctx,
			parent.ID(), parent.PaymentTransactionID(), subOrderTotal,
			cmd.ResolutionReason(), cmd.StoreID().String())
	default:
		refund, err = h.refundClient.ProcessPartialRefund(ctx,
			parent.ID(), parent.PaymentTransactionID(), cmd.StoreID(), *cmd.RefundAmount(),
			cmd.ResolutionReason(), cmd.StoreID().String())
	}
	if err != nil {
		return nil, nil, err
	}

	id := refund.ID
	amount := refund.Amount
	return &id, &amount, nil
}

// cascadeRefund marks the sub-order refunded inside the order aggregate and
// refunds the whole order when this was its last non-refunded sub-order.
func (h ResolveCaseCommandHandler) cascadeRefund(
	ctx context.Context,
	uow ResolutionUoW,
	parent *order.Order,
	subOrder *order.SellerSubOrder,
	now time.Time,
) error {
	if err := subOrder.TransitionTo(order.SubOrderRefunded, now); err != nil {
		return err
	}

	if parent.AllOtherSubOrdersRefunded(subOrder.ID()) {
		if err := parent.Refund(now); err != nil {
			return err
		}
	}

	return uow.OrderRepository().Update(ctx, parent)
}
