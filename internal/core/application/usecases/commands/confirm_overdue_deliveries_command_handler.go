package commands

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
)

// ConfirmOverdueDeliveriesCommandHandler marks long-shipped sub-orders as
// Delivered. Buyers often never confirm receipt; after the configured number
// of days in Shipped the system confirms on their behalf so the return
// window can start and close.
type ConfirmOverdueDeliveriesCommandHandler struct {
	uowFactory      FulfillmentUoWFactory
	clock           ports.Clock
	autoConfirmDays int
	publisher       ports.OrderEventPublisher
	logger          *slog.Logger
}

// NewConfirmOverdueDeliveriesCommandHandler creates a handler for automatic
// delivery confirmation. autoConfirmDays is how long a sub-order may sit in
// Shipped before it is confirmed automatically.
func NewConfirmOverdueDeliveriesCommandHandler(
	uowFactory FulfillmentUoWFactory,
	clock ports.Clock,
	autoConfirmDays int,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) ConfirmOverdueDeliveriesCommandHandler {
	return ConfirmOverdueDeliveriesCommandHandler{
		uowFactory:      uowFactory,
		clock:           clock,
		autoConfirmDays: autoConfirmDays,
		publisher:       publisher,
		logger:          logger.With("component", "confirm_overdue_deliveries"),
	}
}

// Handle processes the confirmation command.
// Confirms every overdue sub-order in one transaction, then appends a
// best-effort history entry for each.
func (h ConfirmOverdueDeliveriesCommandHandler) Handle(ctx context.Context, cmd ConfirmOverdueDeliveriesCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := h.clock.Now()
	cutoff := now.AddDate(0, 0, -h.autoConfirmDays)

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	subOrderRepo := uow.SubOrderRepository()

	overdue, err := subOrderRepo.GetAllShippedBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	for _, subOrder := range overdue {
		if err = subOrder.TransitionTo(order.SubOrderDelivered, now); err != nil {
			return err
		}

		if err = subOrderRepo.Update(ctx, subOrder); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, subOrder := range overdue {
		recordSubOrderHistory(ctx, uow, h.logger, subOrder,
			order.SubOrderShipped, "delivery confirmed automatically", now)

		if err = h.publisher.PublishSubOrderStatusChanged(ctx, subOrder, order.SubOrderShipped); err != nil {
			h.logger.WarnContext(ctx, "failed to publish status change event",
				"subOrderNumber", subOrder.SubOrderNumber(), "error", err)
		}
	}

	if len(overdue) > 0 {
		h.logger.InfoContext(ctx, "confirmed overdue deliveries", "count", len(overdue))
	}

	return nil
}
