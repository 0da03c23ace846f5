package orderrepo

import (
	"context"
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormSubOrderRepository implements SubOrderRepository using GORM. It
// addresses sub-orders directly for fulfillment workflows that act on a
// single seller's slice of an order.
type GormSubOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormSubOrderRepository creates a new GORM sub-order repository.
func NewGormSubOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormSubOrderRepository {
	return &GormSubOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Get retrieves a sub-order by ID with its items.
func (r *GormSubOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.SellerSubOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SubOrderDTO
	err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("sub-order", id.String())
		}
		return nil, err
	}

	return subOrderToDomain(dto)
}

// Update saves an existing sub-order with its items. The write is guarded by
// the version loaded with the sub-order.
func (r *GormSubOrderRepository) Update(ctx context.Context, subOrder *order.SellerSubOrder) error {
	if err := subOrder.Validate(); err != nil {
		return err
	}

	dto := subOrderFromDomain(subOrder)
	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Model(&SubOrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("sub-order", gorm.ErrRecordNotFound)
	}

	r.tracker.TrackAggregate(subOrder.ID(), subOrder)
	return nil
}

// GetAllShippedBefore retrieves sub-orders still in the Shipped status whose
// shipment happened before the cutoff. Used by the automatic delivery
// confirmation job.
func (r *GormSubOrderRepository) GetAllShippedBefore(ctx context.Context, cutoff time.Time) ([]*order.SellerSubOrder, error) {
	var dtos []SubOrderDTO
	err := r.db.WithContext(ctx).Preload("Items").
		Where("status = ? AND shipped_at < ?", int(order.SubOrderShipped), cutoff).
		Order("shipped_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	subOrders := make([]*order.SellerSubOrder, 0, len(dtos))
	for _, dto := range dtos {
		subOrder, convErr := subOrderToDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		subOrders = append(subOrders, subOrder)
	}

	return subOrders, nil
}
