package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/ports"
)

// ApplyPaymentOutcomeCommandHandler applies the payment service's verdict to
// an order. On success the order and every sub-order become Paid; on failure
// they become Failed. The outcome can only be applied once.
type ApplyPaymentOutcomeCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
	notifier   ports.NotificationClient
	logger     *slog.Logger
}

// NewApplyPaymentOutcomeCommandHandler creates a handler for payment outcome
// processing. The notifier is used for the buyer's order confirmation; a
// notification failure never fails the outcome.
func NewApplyPaymentOutcomeCommandHandler(
	uowFactory OrderUoWFactory,
	clock ports.Clock,
	notifier ports.NotificationClient,
	logger *slog.Logger,
) ApplyPaymentOutcomeCommandHandler {
	return ApplyPaymentOutcomeCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		notifier:   notifier,
		logger:     logger.With("component", "apply_payment_outcome"),
	}
}

// Handle processes the payment outcome command.
// Loads the order, applies the outcome with its cascade to all sub-orders,
// and persists the aggregate in one transaction.
func (h ApplyPaymentOutcomeCommandHandler) Handle(ctx context.Context, cmd ApplyPaymentOutcomeCommand) error {
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

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.ApplyPaymentOutcome(cmd.Succeeded(), h.clock.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if cmd.Succeeded() {
		if err = h.notifier.SendOrderConfirmation(ctx, aggregate); err != nil {
			h.logger.WarnContext(ctx, "failed to send order confirmation",
				"orderNumber", aggregate.OrderNumber(), "error", err)
		}
	}

	return nil
}
