package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/shipping"
)

// ShippingHistoryRepository defines the persistence contract for the
// append-only sub-order status history. Entries are only ever added.
type ShippingHistoryRepository interface {
	// Add persists a new history entry.
	Add(ctx context.Context, entry *shipping.HistoryEntry) error

	// GetBySubOrder retrieves all history entries for a sub-order, oldest
	// first. Used for buyer-facing tracking timelines.
	GetBySubOrder(ctx context.Context, subOrderID kernel.UUID) ([]*shipping.HistoryEntry, error)
}
