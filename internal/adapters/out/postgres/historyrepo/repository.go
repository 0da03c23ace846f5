package historyrepo

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/shipping"

	"gorm.io/gorm"
)

// GormShippingHistoryRepository implements ShippingHistoryRepository using
// GORM. The history is append-only, so there is no update operation.
type GormShippingHistoryRepository struct {
	db *gorm.DB
}

// NewGormShippingHistoryRepository creates a new GORM history repository.
func NewGormShippingHistoryRepository(db *gorm.DB) *GormShippingHistoryRepository {
	return &GormShippingHistoryRepository{db: db}
}

// Add appends a history entry.
func (r *GormShippingHistoryRepository) Add(ctx context.Context, entry *shipping.HistoryEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entry)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetBySubOrder retrieves the status history of a sub-order in chronological
// order.
func (r *GormShippingHistoryRepository) GetBySubOrder(ctx context.Context, subOrderID kernel.UUID) ([]*shipping.HistoryEntry, error) {
	if err := subOrderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []HistoryEntryDTO
	err := r.db.WithContext(ctx).
		Where("sub_order_id = ?", subOrderID.Bytes()).
		Order("changed_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*shipping.HistoryEntry, 0, len(dtos))
	for _, dto := range dtos {
		entry, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
