package caserepo

import (
	"context"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/returncase"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReturnCaseRepository implements ReturnCaseRepository using GORM.
type GormReturnCaseRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormReturnCaseRepository creates a new GORM return case repository.
func NewGormReturnCaseRepository(db *gorm.DB, tracker aggregateTracker) *GormReturnCaseRepository {
	return &GormReturnCaseRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new return case with its covered items.
func (r *GormReturnCaseRepository) Add(ctx context.Context, aggregate *returncase.ReturnRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing return case. The write is guarded by the version
// loaded with the case. The covered items never change after creation, so
// only the case row is updated.
func (r *GormReturnCaseRepository) Update(ctx context.Context, aggregate *returncase.ReturnRequest) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Items = nil
	loadedVersion := dto.Version
	dto.Version = loadedVersion + 1

	result := r.db.WithContext(ctx).Model(&CaseDTO{}).
		Where("id = ? AND version = ?", dto.ID, loadedVersion).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("return case", gorm.ErrRecordNotFound)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a return case by ID with its covered items.
func (r *GormReturnCaseRepository) Get(ctx context.Context, id kernel.UUID) (*returncase.ReturnRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CaseDTO
	err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("return case", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetOpenByItemIDs retrieves every non-terminal case covering any of the
// given items. Used to enforce that an item is covered by at most one open
// case.
func (r *GormReturnCaseRepository) GetOpenByItemIDs(ctx context.Context, itemIDs []kernel.UUID) ([]*returncase.ReturnRequest, error) {
	if len(itemIDs) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		if err := itemID.Validate(); err != nil {
			return nil, err
		}
		ids = append(ids, itemID.Bytes())
	}

	var dtos []CaseDTO
	err := r.db.WithContext(ctx).Preload("Items").
		Where("id IN (?) AND status NOT IN ?",
			r.db.Model(&CaseItemDTO{}).Select("case_id").Where("item_id IN ?", ids),
			[]int{int(returncase.StatusRejected), int(returncase.StatusCompleted)}).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	cases := make([]*returncase.ReturnRequest, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		cases = append(cases, aggregate)
	}

	return cases, nil
}
