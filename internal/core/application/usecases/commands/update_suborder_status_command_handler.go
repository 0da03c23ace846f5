package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"
)

// UpdateSubOrderStatusCommandHandler handles seller-driven sub-order status
// changes. Every accepted change is followed by an append-only history entry;
// the history write is best-effort and never fails the transition.
//
// Example:
//
//	handler := NewUpdateSubOrderStatusCommandHandler(uowFactory, clock, publisher, notifier, logger)
//	cmd, _ := NewUpdateSubOrderStatusCommand(subOrderID, storeID, order.SubOrderShipped, "TRK-001", "DHL", "")
//
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrNotAuthorized) {
//	    // Sub-order belongs to another store
//	}
type UpdateSubOrderStatusCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	clock      ports.Clock
	publisher  ports.OrderEventPublisher
	notifier   ports.NotificationClient
	logger     *slog.Logger
}

// NewUpdateSubOrderStatusCommandHandler creates a handler for sub-order
// status updates. The publisher and notifier are post-commit collaborators;
// their failures are logged, never propagated.
func NewUpdateSubOrderStatusCommandHandler(
	uowFactory FulfillmentUoWFactory,
	clock ports.Clock,
	publisher ports.OrderEventPublisher,
	notifier ports.NotificationClient,
	logger *slog.Logger,
) UpdateSubOrderStatusCommandHandler {
	return UpdateSubOrderStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		publisher:  publisher,
		notifier:   notifier,
		logger:     logger.With("component", "update_suborder_status"),
	}
}

// Handle processes the status update command.
// Verifies store ownership, applies the transition through the aggregate,
// and persists it. A transition to Refunded goes through the parent order so
// that refunding the last non-refunded sub-order refunds the order itself.
func (h UpdateSubOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateSubOrderStatusCommand) error {
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

	var (
		subOrder *order.SellerSubOrder
		previous order.SubOrderStatus
		err      error
	)

	if cmd.Target() == order.SubOrderRefunded {
		subOrder, previous, err = h.refundThroughParent(ctx, uow, cmd, now)
	} else {
		subOrder, previous, err = h.applyTransition(ctx, uow, cmd, now)
	}
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	recordSubOrderHistory(ctx, uow, h.logger, subOrder, previous, cmd.Notes(), now)

	if err = h.publisher.PublishSubOrderStatusChanged(ctx, subOrder, previous); err != nil {
		h.logger.WarnContext(ctx, "failed to publish status change event",
			"subOrderNumber", subOrder.SubOrderNumber(), "error", err)
	}

	if subOrder.Status() == order.SubOrderShipped {
		if err = h.notifier.SendShippingNotification(ctx, subOrder); err != nil {
			h.logger.WarnContext(ctx, "failed to send shipping notification",
				"subOrderNumber", subOrder.SubOrderNumber(), "error", err)
		}
	}

	return nil
}

// applyTransition loads the sub-order, applies the requested transition, and
// persists the sub-order.
func (h UpdateSubOrderStatusCommandHandler) applyTransition(
	ctx context.Context,
	uow FulfillmentUoW,
	cmd UpdateSubOrderStatusCommand,
	now time.Time,
) (*order.SellerSubOrder, order.SubOrderStatus, error) {
	subOrderRepo := uow.SubOrderRepository()

	subOrder, err := subOrderRepo.Get(ctx, cmd.SubOrderID())
	if err != nil {
		return nil, order.SubOrderUnknown, err
	}

	if !subOrder.IsOwnedByStore(cmd.StoreID()) {
		return nil, order.SubOrderUnknown,
			errs.NewNotAuthorizedError(cmd.StoreID().String(), subOrder.SubOrderNumber())
	}

	previous := subOrder.Status()

	if cmd.Target() == order.SubOrderShipped {
		err = subOrder.Ship(cmd.TrackingNumber(), cmd.Carrier(), now)
	} else {
		err = subOrder.TransitionTo(cmd.Target(), now)
	}
	if err != nil {
		return nil, order.SubOrderUnknown, err
	}

	if err = subOrderRepo.Update(ctx, subOrder); err != nil {
		return nil, order.SubOrderUnknown, err
	}

	return subOrder, previous, nil
}

// refundThroughParent marks the sub-order refunded inside the order aggregate
// and refunds the whole order when this was its last non-refunded sub-order.
// The parent aggregate is written once, carrying both changes.
func (h UpdateSubOrderStatusCommandHandler) refundThroughParent(
	ctx context.Context,
	uow FulfillmentUoW,
	cmd UpdateSubOrderStatusCommand,
	now time.Time,
) (*order.SellerSubOrder, order.SubOrderStatus, error) {
	orderRepo := uow.OrderRepository()

	parent, err := orderRepo.GetBySubOrder(ctx, cmd.SubOrderID())
	if err != nil {
		return nil, order.SubOrderUnknown, err
	}

	subOrder, err := parent.SubOrder(cmd.SubOrderID())
	if err != nil {
		return nil, order.SubOrderUnknown, err
	}

	if !subOrder.IsOwnedByStore(cmd.StoreID()) {
		return nil, order.SubOrderUnknown,
			errs.NewNotAuthorizedError(cmd.StoreID().String(), subOrder.SubOrderNumber())
	}

	previous := subOrder.Status()

	if err = subOrder.TransitionTo(order.SubOrderRefunded, now); err != nil {
		return nil, order.SubOrderUnknown, err
	}

	if parent.AllOtherSubOrdersRefunded(subOrder.ID()) {
		if err = parent.Refund(now); err != nil {
			return nil, order.SubOrderUnknown, err
		}
	}

	if err = orderRepo.Update(ctx, parent); err != nil {
		return nil, order.SubOrderUnknown, err
	}

	return subOrder, previous, nil
}
