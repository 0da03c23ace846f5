package order

import (
	"marketplace/internal/pkg/errs"
)

// ItemStatus represents the lifecycle state of a single sub-order item.
// Items may skip Preparing when the seller ships immediately.
//
// State transitions:
//
//	New ──┬──> Preparing ──┬──> Shipped ──> Delivered
//	      ├──> Shipped     └──> Cancelled
//	      └──> Cancelled
//
// Delivered and Cancelled are terminal.
type ItemStatus int

const (
	// ItemUnknown represents an invalid or undefined status.
	ItemUnknown ItemStatus = iota

	// ItemNew is the initial status assigned at checkout.
	ItemNew

	// ItemPreparing indicates the seller started fulfilling the item.
	ItemPreparing

	// ItemShipped indicates the item left the seller.
	ItemShipped

	// ItemDelivered indicates the buyer received the item. Terminal.
	ItemDelivered

	// ItemCancelled indicates the item was cancelled. Terminal. Refund
	// amounts are computed from Cancelled items, never by mutating quantity.
	ItemCancelled
)

// getItemStatusStrings returns a map of ItemStatus values to their string
// representations.
func getItemStatusStrings() map[ItemStatus]string {
	return map[ItemStatus]string{
		ItemUnknown:   "Unknown",
		ItemNew:       "New",
		ItemPreparing: "Preparing",
		ItemShipped:   "Shipped",
		ItemDelivered: "Delivered",
		ItemCancelled: "Cancelled",
	}
}

// allowedItemTransitions returns the static transition table for item statuses.
func allowedItemTransitions() map[ItemStatus][]ItemStatus {
	return map[ItemStatus][]ItemStatus{
		ItemNew:       {ItemPreparing, ItemShipped, ItemCancelled},
		ItemPreparing: {ItemShipped, ItemCancelled},
		ItemShipped:   {ItemDelivered},
		ItemDelivered: {},
		ItemCancelled: {},
	}
}

// String returns the human-readable name of the status.
func (s ItemStatus) String() string {
	if str, ok := getItemStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks that the ItemStatus is one of the defined statuses.
func (s ItemStatus) Validate() error {
	if _, ok := allowedItemTransitions()[s]; !ok {
		return errs.NewValueIsInvalidError("item status is invalid")
	}
	return nil
}

// IsTerminal reports whether no further transitions are allowed.
func (s ItemStatus) IsTerminal() bool {
	return len(allowedItemTransitions()[s]) == 0 && s.Validate() == nil
}

// CanTransitionTo reports whether the transition table allows moving from the
// current status to the target status.
func (s ItemStatus) CanTransitionTo(target ItemStatus) bool {
	for _, allowed := range allowedItemTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo validates the requested transition against the table and
// returns the new status, or an InvalidStateTransitionError.
func (s ItemStatus) TransitionTo(target ItemStatus) (ItemStatus, error) {
	if !s.CanTransitionTo(target) {
		return ItemUnknown, errs.NewInvalidStateTransitionError("sub-order item", s.String(), target.String())
	}
	return target, nil
}

// ItemStatusFromString parses an item status name as used on the wire.
func ItemStatusFromString(name string) (ItemStatus, error) {
	for status, str := range getItemStatusStrings() {
		if str == name && status != ItemUnknown {
			return status, nil
		}
	}
	return ItemUnknown, errs.NewValueIsInvalidError("item status is invalid")
}
