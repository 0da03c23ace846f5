// Package shipping holds the append-only status history recorded for every
// sub-order status change. History entries are written in the same
// transaction as the change they describe and are never updated or deleted.
package shipping

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// ErrHistoryEntryIsNotConstructed is returned when a HistoryEntry instance
// was not created through NewHistoryEntry or RestoreHistoryEntry.
var ErrHistoryEntryIsNotConstructed = errors.New(
	"HistoryEntry must be created via NewHistoryEntry constructor")

// HistoryEntry records a single sub-order status change for audit and
// buyer-facing tracking timelines.
type HistoryEntry struct {
	id             kernel.UUID
	subOrderID     kernel.UUID
	previousStatus order.SubOrderStatus
	newStatus      order.SubOrderStatus
	trackingNumber string
	carrier        string
	notes          string
	changedAt      time.Time

	isConstructed bool
}

// NewHistoryEntry creates a history record for the given sub-order status
// change. trackingNumber, carrier and notes are optional context captured
// alongside the change.
func NewHistoryEntry(
	id kernel.UUID,
	subOrderID kernel.UUID,
	previousStatus order.SubOrderStatus,
	newStatus order.SubOrderStatus,
	trackingNumber string,
	carrier string,
	notes string,
	changedAt time.Time,
) (*HistoryEntry, error) {
	if err := errors.Join(id.Validate(), subOrderID.Validate()); err != nil {
		return nil, err
	}
	if err := newStatus.Validate(); err != nil {
		return nil, err
	}
	if previousStatus == newStatus {
		return nil, errs.NewValueIsInvalidError("history entry statuses are invalid")
	}

	return &HistoryEntry{
		id:             id,
		subOrderID:     subOrderID,
		previousStatus: previousStatus,
		newStatus:      newStatus,
		trackingNumber: trackingNumber,
		carrier:        carrier,
		notes:          notes,
		changedAt:      changedAt,
		isConstructed:  true,
	}, nil
}

// RestoreHistoryEntry reconstructs a history record from persistence.
func RestoreHistoryEntry(
	id kernel.UUID,
	subOrderID kernel.UUID,
	previousStatus order.SubOrderStatus,
	newStatus order.SubOrderStatus,
	trackingNumber string,
	carrier string,
	notes string,
	changedAt time.Time,
) (*HistoryEntry, error) {
	return NewHistoryEntry(id, subOrderID, previousStatus, newStatus,
		trackingNumber, carrier, notes, changedAt)
}

// Validate ensures the entry was created through a constructor.
func (h *HistoryEntry) Validate() error {
	if h == nil || !h.isConstructed {
		return ErrHistoryEntryIsNotConstructed
	}
	return nil
}

// ID returns the entry's unique identifier.
func (h *HistoryEntry) ID() kernel.UUID { return h.id }

// SubOrderID returns the sub-order the change belongs to.
func (h *HistoryEntry) SubOrderID() kernel.UUID { return h.subOrderID }

// PreviousStatus returns the status before the change.
func (h *HistoryEntry) PreviousStatus() order.SubOrderStatus { return h.previousStatus }

// NewStatus returns the status after the change.
func (h *HistoryEntry) NewStatus() order.SubOrderStatus { return h.newStatus }

// TrackingNumber returns the tracking number captured with the change, if any.
func (h *HistoryEntry) TrackingNumber() string { return h.trackingNumber }

// Carrier returns the carrier captured with the change, if any.
func (h *HistoryEntry) Carrier() string { return h.carrier }

// Notes returns free-form context captured with the change, if any.
func (h *HistoryEntry) Notes() string { return h.notes }

// ChangedAt returns when the change happened.
func (h *HistoryEntry) ChangedAt() time.Time { return h.changedAt }
