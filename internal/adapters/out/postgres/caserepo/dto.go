// Package caserepo provides data transfer objects and mapping functions for
// return case persistence.
package caserepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/returncase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CaseDTO represents the database structure for persisting return cases.
type CaseDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	CaseNumber       string    `gorm:"uniqueIndex"`
	SubOrderID       uuid.UUID `gorm:"type:uuid;index"`
	BuyerID          uuid.UUID `gorm:"type:uuid;index"`
	StoreID          uuid.UUID `gorm:"type:uuid;index"`
	CaseType         int
	Reason           string
	Status           int `gorm:"index"`
	SellerNotes      string
	ResolutionType   int
	ResolutionReason string
	RefundID         *uuid.UUID       `gorm:"type:uuid"`
	RefundAmount     *decimal.Decimal `gorm:"type:numeric(12,2)"`
	RequestedAt      time.Time
	ResolvedAt       *time.Time
	Version          int
	Items            []CaseItemDTO `gorm:"foreignKey:CaseID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for return case entities.
func (CaseDTO) TableName() string {
	return "return_cases"
}

// CaseItemDTO represents the database structure for persisting the items a
// return case covers.
type CaseItemDTO struct {
	ID       uint      `gorm:"primaryKey;autoIncrement"`
	CaseID   uuid.UUID `gorm:"type:uuid;index"`
	ItemID   uuid.UUID `gorm:"type:uuid;index"`
	Quantity int
}

// TableName specifies the database table name for case item entities.
func (CaseItemDTO) TableName() string {
	return "return_case_items"
}

func fromDomain(aggregate *returncase.ReturnRequest) CaseDTO {
	items := make([]CaseItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, CaseItemDTO{
			CaseID:   aggregate.ID().Bytes(),
			ItemID:   item.ItemID().Bytes(),
			Quantity: item.Quantity(),
		})
	}

	var refundID *uuid.UUID
	if aggregate.RefundID() != nil {
		id := aggregate.RefundID().Bytes()
		refundID = &id
	}

	var refundAmount *decimal.Decimal
	if aggregate.RefundAmount() != nil {
		amount := aggregate.RefundAmount().Decimal()
		refundAmount = &amount
	}

	return CaseDTO{
		ID:               aggregate.ID().Bytes(),
		CaseNumber:       aggregate.CaseNumber(),
		SubOrderID:       aggregate.SubOrderID().Bytes(),
		BuyerID:          aggregate.BuyerID().Bytes(),
		StoreID:          aggregate.StoreID().Bytes(),
		CaseType:         int(aggregate.CaseType()),
		Reason:           aggregate.Reason(),
		Status:           int(aggregate.Status()),
		SellerNotes:      aggregate.SellerNotes(),
		ResolutionType:   int(aggregate.ResolutionType()),
		ResolutionReason: aggregate.ResolutionReason(),
		RefundID:         refundID,
		RefundAmount:     refundAmount,
		RequestedAt:      aggregate.RequestedAt(),
		ResolvedAt:       aggregate.ResolvedAt(),
		Version:          aggregate.Version(),
		Items:            items,
	}
}

func toDomain(dto CaseDTO) (*returncase.ReturnRequest, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	subOrderID, err := kernel.UUIDFromBytes(dto.SubOrderID[:])
	if err != nil {
		return nil, err
	}

	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}

	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}

	items := make([]returncase.CaseItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemID, itemErr := kernel.UUIDFromBytes(itemDTO.ItemID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		item, itemErr := returncase.NewCaseItem(itemID, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var refundID *kernel.UUID
	if dto.RefundID != nil {
		converted, refundErr := kernel.UUIDFromBytes(dto.RefundID[:])
		if refundErr != nil {
			return nil, refundErr
		}
		refundID = &converted
	}

	var refundAmount *kernel.Money
	if dto.RefundAmount != nil {
		converted, amountErr := kernel.NewMoney(*dto.RefundAmount)
		if amountErr != nil {
			return nil, amountErr
		}
		refundAmount = &converted
	}

	return returncase.RestoreReturnRequest(id, subOrderID, buyerID, storeID,
		returncase.CaseType(dto.CaseType), dto.Reason, items,
		returncase.Status(dto.Status), dto.SellerNotes,
		returncase.ResolutionType(dto.ResolutionType), dto.ResolutionReason,
		refundID, refundAmount, dto.RequestedAt, dto.ResolvedAt, dto.Version)
}
