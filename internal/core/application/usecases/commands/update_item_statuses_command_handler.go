package commands

import (
	"context"
	"fmt"
	"log/slog"

	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// UpdateItemStatusesCommandHandler handles item-level fulfillment updates.
// Sellers use this when parts of a sub-order ship separately; the sub-order
// status is derived from the item statuses after every batch.
type UpdateItemStatusesCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	clock      ports.Clock
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewUpdateItemStatusesCommandHandler creates a handler for item status
// updates.
func NewUpdateItemStatusesCommandHandler(
	uowFactory FulfillmentUoWFactory,
	clock ports.Clock,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) UpdateItemStatusesCommandHandler {
	return UpdateItemStatusesCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		publisher:  publisher,
		logger:     logger.With("component", "update_item_statuses"),
	}
}

// Handle processes the item updates command.
// Applies every requested item transition, derives the sub-order status from
// the items, and appends a best-effort history entry when the derived status
// changed. The whole batch is atomic: one invalid transition rejects the batch.
func (h UpdateItemStatusesCommandHandler) Handle(ctx context.Context, cmd UpdateItemStatusesCommand) error {
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

	subOrderRepo := uow.SubOrderRepository()

	subOrder, err := subOrderRepo.Get(ctx, cmd.SubOrderID())
	if err != nil {
		return err
	}

	if !subOrder.IsOwnedByStore(cmd.StoreID()) {
		return errs.NewNotAuthorizedError(cmd.StoreID().String(), subOrder.SubOrderNumber())
	}

	if !subOrder.AllowsItemUpdates() {
		return errs.NewBusinessRuleErrorWithCause(
			"item updates are only accepted while the sub-order is Paid or Preparing",
			fmt.Errorf("sub-order %s is %s", subOrder.SubOrderNumber(), subOrder.Status()),
		)
	}

	previous := subOrder.Status()

	for _, update := range cmd.Updates() {
		if err = subOrder.ApplyItemTransition(update.ItemID, update.Target, now); err != nil {
			return err
		}
	}

	subOrder.DeriveStatusFromItems(now)

	if err = subOrderRepo.Update(ctx, subOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if subOrder.Status() != previous {
		recordSubOrderHistory(ctx, uow, h.logger, subOrder, previous, "derived from item statuses", now)

		if err = h.publisher.PublishSubOrderStatusChanged(ctx, subOrder, previous); err != nil {
			h.logger.WarnContext(ctx, "failed to publish status change event",
				"subOrderNumber", subOrder.SubOrderNumber(), "error", err)
		}
	}

	return nil
}
