package commands

import (
	"context"
	"log/slog"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/shipping"
)

// recordSubOrderHistory appends the audit record for an accepted sub-order
// transition. The write is best-effort: a failure is logged and swallowed,
// the committed transition stands. The audit trail is advisory, not
// authoritative.
func recordSubOrderHistory(
	ctx context.Context,
	repoFactory ShippingHistoryRepoFactory,
	logger *slog.Logger,
	subOrder *order.SellerSubOrder,
	previous order.SubOrderStatus,
	notes string,
	now time.Time,
) {
	entry, err := shipping.NewHistoryEntry(
		kernel.NewUUID(), subOrder.ID(), previous, subOrder.Status(),
		subOrder.TrackingNumber(), subOrder.Carrier(), notes, now)
	if err == nil {
		err = repoFactory.ShippingHistoryRepository().Add(ctx, entry)
	}
	if err != nil {
		logger.WarnContext(ctx, "failed to record status history",
			"subOrderNumber", subOrder.SubOrderNumber(), "error", err)
	}
}
