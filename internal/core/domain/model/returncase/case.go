package returncase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

// ErrCaseIsNotConstructed is returned when a ReturnRequest instance was not
// created through NewReturnRequest or RestoreReturnRequest.
var ErrCaseIsNotConstructed = errors.New("ReturnRequest must be created via NewReturnRequest constructor")

// CaseItem references one sub-order item covered by a case, with the
// quantity in question. Quantities never exceed the purchased quantity; that
// is validated by the workflow against the sub-order at creation.
type CaseItem struct {
	itemID   kernel.UUID
	quantity int
}

// NewCaseItem creates a case item reference.
func NewCaseItem(itemID kernel.UUID, quantity int) (CaseItem, error) {
	if err := itemID.Validate(); err != nil {
		return CaseItem{}, err
	}
	if quantity <= 0 {
		return CaseItem{}, errs.NewValueIsInvalidErrorWithCause(
			"case item quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	return CaseItem{itemID: itemID, quantity: quantity}, nil
}

// ItemID returns the referenced sub-order item's identity.
func (c CaseItem) ItemID() kernel.UUID {
	return c.itemID
}

// Quantity returns the quantity covered by the case.
func (c CaseItem) Quantity() int {
	return c.quantity
}

// ReturnRequest is the aggregate root for a buyer's post-delivery return or
// dispute, scoped to one sub-order. A sub-order item may be covered by at
// most one non-terminal case at any time; the workflow enforces that at
// creation.
type ReturnRequest struct {
	id         kernel.UUID
	caseNumber string
	subOrderID kernel.UUID
	buyerID    kernel.UUID
	storeID    kernel.UUID

	caseType CaseType
	status   Status
	reason   string

	sellerNotes      string
	resolutionType   ResolutionType
	resolutionReason string
	refundID         *kernel.UUID
	refundAmount     *kernel.Money

	requestedAt time.Time
	resolvedAt  *time.Time

	items []CaseItem

	version       int
	isConstructed bool
}

// CaseNumberFromID derives the stable case number from the case identity:
// "CASE-" plus the first eight hex characters of the UUID, uppercased.
func CaseNumberFromID(id kernel.UUID) string {
	return "CASE-" + strings.ToUpper(id.String()[:8])
}

// NewReturnRequest creates a case in status Requested covering the given
// items. The storeID is denormalized from the sub-order so seller
// authorization does not need a join on every mutation.
func NewReturnRequest(
	id kernel.UUID,
	subOrderID kernel.UUID,
	buyerID kernel.UUID,
	storeID kernel.UUID,
	caseType CaseType,
	reason string,
	items []CaseItem,
	requestedAt time.Time,
) (*ReturnRequest, error) {
	r := &ReturnRequest{
		status:        StatusRequested,
		requestedAt:   requestedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setOwnership(subOrderID, buyerID, storeID),
		r.setCaseType(caseType),
		r.setReason(reason),
		r.setItems(items),
	); err != nil {
		return nil, err
	}

	r.caseNumber = CaseNumberFromID(id)
	return r, nil
}

// RestoreReturnRequest reconstructs a case from persistence.
func RestoreReturnRequest(
	id kernel.UUID,
	subOrderID kernel.UUID,
	buyerID kernel.UUID,
	storeID kernel.UUID,
	caseType CaseType,
	reason string,
	items []CaseItem,
	status Status,
	sellerNotes string,
	resolutionType ResolutionType,
	resolutionReason string,
	refundID *kernel.UUID,
	refundAmount *kernel.Money,
	requestedAt time.Time,
	resolvedAt *time.Time,
	version int,
) (*ReturnRequest, error) {
	r, err := NewReturnRequest(id, subOrderID, buyerID, storeID, caseType, reason, items, requestedAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}

	r.status = status
	r.sellerNotes = sellerNotes
	r.resolutionType = resolutionType
	r.resolutionReason = resolutionReason
	r.refundID = refundID
	r.refundAmount = refundAmount
	r.resolvedAt = resolvedAt
	r.version = version
	return r, nil
}

// Validate ensures the case was created through a constructor.
func (r *ReturnRequest) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrCaseIsNotConstructed
	}
	return nil
}

// ID returns the case's unique identifier.
func (r *ReturnRequest) ID() kernel.UUID { return r.id }

// CaseNumber returns the stable human-facing case number.
func (r *ReturnRequest) CaseNumber() string { return r.caseNumber }

// SubOrderID returns the identity of the sub-order the case is scoped to.
func (r *ReturnRequest) SubOrderID() kernel.UUID { return r.subOrderID }

// BuyerID returns the identity of the buyer who opened the case.
func (r *ReturnRequest) BuyerID() kernel.UUID { return r.buyerID }

// StoreID returns the identity of the store fulfilling the sub-order.
func (r *ReturnRequest) StoreID() kernel.UUID { return r.storeID }

// CaseType returns what the buyer asked for.
func (r *ReturnRequest) CaseType() CaseType { return r.caseType }

// Status returns the current case status.
func (r *ReturnRequest) Status() Status { return r.status }

// Reason returns the buyer's reason text.
func (r *ReturnRequest) Reason() string { return r.reason }

// SellerNotes returns the seller's notes recorded on status updates.
func (r *ReturnRequest) SellerNotes() string { return r.sellerNotes }

// ResolutionType returns how the case was settled; meaningful only once
// Completed.
func (r *ReturnRequest) ResolutionType() ResolutionType { return r.resolutionType }

// ResolutionReason returns the explanation recorded at resolution.
func (r *ReturnRequest) ResolutionReason() string { return r.resolutionReason }

// RefundID returns the linked refund identity, if any.
func (r *ReturnRequest) RefundID() *kernel.UUID { return r.refundID }

// RefundAmount returns the linked refund amount, if any.
func (r *ReturnRequest) RefundAmount() *kernel.Money { return r.refundAmount }

// RequestedAt returns when the buyer opened the case.
func (r *ReturnRequest) RequestedAt() time.Time { return r.requestedAt }

// ResolvedAt returns when the case was resolved, if it was.
func (r *ReturnRequest) ResolvedAt() *time.Time { return r.resolvedAt }

// Items returns the case's item references.
func (r *ReturnRequest) Items() []CaseItem { return r.items }

// Version returns the optimistic-concurrency token loaded from persistence.
func (r *ReturnRequest) Version() int { return r.version }

// IsOpen reports whether the case still blocks new cases for its items.
func (r *ReturnRequest) IsOpen() bool {
	return !r.status.IsTerminal()
}

// IsOwnedByStore reports whether the given store is the case's counterparty.
func (r *ReturnRequest) IsOwnedByStore(storeID kernel.UUID) bool {
	return r.storeID.IsEqual(storeID)
}

// UpdateStatus moves the case through the review workflow, validating the
// transition and recording the seller's notes.
func (r *ReturnRequest) UpdateStatus(target Status, sellerNotes string) error {
	newStatus, err := r.status.TransitionTo(target)
	if err != nil {
		return err
	}

	r.status = newStatus
	if sellerNotes != "" {
		r.sellerNotes = sellerNotes
	}
	return nil
}

// Resolve completes the case with the given resolution. Refund identity and
// amount must already be settled by the caller (linked or freshly created via
// the refund collaborator) before Resolve is invoked; Resolve itself performs
// no external calls.
//
// A Completed case cannot be resolved again, and a Rejected case cannot be
// completed at all.
func (r *ReturnRequest) Resolve(
	resolution ResolutionType,
	resolutionReason string,
	refundID *kernel.UUID,
	refundAmount *kernel.Money,
	now time.Time,
) error {
	if r.status == StatusCompleted {
		return errs.NewBusinessRuleError("case is already resolved")
	}
	if r.status == StatusRejected {
		return errs.NewInvalidStateTransitionError("return case", r.status.String(), StatusCompleted.String())
	}
	if err := resolution.Validate(); err != nil {
		return err
	}
	if resolution == ResolutionNoRefund && resolutionReason == "" {
		return errs.NewValueIsRequiredError("resolution reason is required for a no-refund resolution")
	}
	if resolution != ResolutionNoRefund && refundID == nil {
		return errs.NewValueIsRequiredError("refund identity")
	}

	r.status = StatusCompleted
	r.resolutionType = resolution
	r.resolutionReason = resolutionReason
	r.refundID = refundID
	r.refundAmount = refundAmount
	r.resolvedAt = &now
	return nil
}

func (r *ReturnRequest) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *ReturnRequest) setOwnership(subOrderID, buyerID, storeID kernel.UUID) error {
	if err := errors.Join(subOrderID.Validate(), buyerID.Validate(), storeID.Validate()); err != nil {
		return err
	}
	r.subOrderID = subOrderID
	r.buyerID = buyerID
	r.storeID = storeID
	return nil
}

func (r *ReturnRequest) setCaseType(caseType CaseType) error {
	if err := caseType.Validate(); err != nil {
		return err
	}
	r.caseType = caseType
	return nil
}

func (r *ReturnRequest) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("case reason")
	}
	r.reason = reason
	return nil
}

func (r *ReturnRequest) setItems(items []CaseItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("case items")
	}

	seen := make(map[kernel.UUID]bool, len(items))
	for _, item := range items {
		if seen[item.ItemID()] {
			return errs.NewValueIsInvalidErrorWithCause(
				"case items are invalid",
				fmt.Errorf("item %s is referenced more than once", item.ItemID()),
			)
		}
		seen[item.ItemID()] = true
	}

	r.items = items
	return nil
}
