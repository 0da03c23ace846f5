package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/services"
	"marketplace/internal/core/ports"
)

// PlaceOrderCommandHandler handles the business logic for order placement.
// Groups purchase lines into one sub-order per store, apportions shipping,
// and persists the whole aggregate atomically.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, publisher, logger)
//	cmd, _ := NewPlaceOrderCommand(orderID, buyerID, "txn_3OqXz2", address, shipping, lines)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order placement failed: %w", err)
//	}
//	// Order is now placed in status New awaiting the payment outcome
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
}

// NewPlaceOrderCommandHandler creates a handler for order placement operations.
// Requires an OrderUoWFactory for transactional persistence and a publisher
// for the order-placed integration event.
func NewPlaceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.OrderEventPublisher,
	logger *slog.Logger,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "place_order"),
	}
}

// Handle processes the order placement command.
// Builds the aggregate through the OrderAggregateBuilder so either every
// line is placed or nothing is. The order-placed event is published after
// commit; a publish failure is logged and does not fail the placement.
func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	aggregate, err := services.NewOrderAggregateBuilder().Build(
		cmd.OrderID(), cmd.BuyerID(), cmd.PaymentTransactionID(),
		cmd.Address(), cmd.ShippingTotal(), cmd.Lines(), time.Now().UTC())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.publisher.PublishOrderPlaced(ctx, aggregate); err != nil {
		h.logger.WarnContext(ctx, "failed to publish order placed event",
			"orderNumber", aggregate.OrderNumber(), "error", err)
	}

	return nil
}
