package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/returncase"
)

// ReturnCaseRepository defines the persistence contract for return cases.
type ReturnCaseRepository interface {
	// Add persists a new return case with its item references.
	Add(ctx context.Context, aggregate *returncase.ReturnRequest) error

	// Update persists changes to an existing return case. The write is
	// guarded by the case's version; a stale version fails the update.
	Update(ctx context.Context, aggregate *returncase.ReturnRequest) error

	// Get retrieves a return case by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*returncase.ReturnRequest, error)

	// GetOpenByItemIDs retrieves non-terminal cases that reference any of
	// the given sub-order items. Used to enforce the one-open-case-per-item
	// rule when a buyer opens a new case.
	GetOpenByItemIDs(ctx context.Context, itemIDs []kernel.UUID) ([]*returncase.ReturnRequest, error)
}
