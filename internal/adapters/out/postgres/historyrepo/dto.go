// Package historyrepo provides data transfer objects and mapping functions
// for the append-only sub-order status history.
package historyrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/shipping"

	"github.com/google/uuid"
)

// HistoryEntryDTO represents the database structure for persisting status
// history entries.
type HistoryEntryDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	SubOrderID     uuid.UUID `gorm:"type:uuid;index"`
	PreviousStatus int
	NewStatus      int
	TrackingNumber string
	Carrier        string
	Notes          string
	ChangedAt      time.Time `gorm:"index"`
}

// TableName specifies the database table name for history entries.
func (HistoryEntryDTO) TableName() string {
	return "suborder_status_history"
}

func fromDomain(entry *shipping.HistoryEntry) HistoryEntryDTO {
	return HistoryEntryDTO{
		ID:             entry.ID().Bytes(),
		SubOrderID:     entry.SubOrderID().Bytes(),
		PreviousStatus: int(entry.PreviousStatus()),
		NewStatus:      int(entry.NewStatus()),
		TrackingNumber: entry.TrackingNumber(),
		Carrier:        entry.Carrier(),
		Notes:          entry.Notes(),
		ChangedAt:      entry.ChangedAt(),
	}
}

func toDomain(dto HistoryEntryDTO) (*shipping.HistoryEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	subOrderID, err := kernel.UUIDFromBytes(dto.SubOrderID[:])
	if err != nil {
		return nil, err
	}

	return shipping.RestoreHistoryEntry(id, subOrderID,
		order.SubOrderStatus(dto.PreviousStatus), order.SubOrderStatus(dto.NewStatus),
		dto.TrackingNumber, dto.Carrier, dto.Notes, dto.ChangedAt)
}
