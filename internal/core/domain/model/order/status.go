package order

import (
	"marketplace/internal/pkg/errs"
)

// Status represents the lifecycle state of a parent order. The order status
// reflects the payment outcome and, later, whether every sub-order was
// refunded.
//
// State transitions:
//
//	New ──┬──> Paid ──> Refunded
//	      └──> Failed
//
// Failed and Refunded are terminal.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusNew is the initial status assigned at checkout, before the
	// payment outcome arrives.
	StatusNew

	// StatusPaid indicates the payment succeeded.
	StatusPaid

	// StatusFailed indicates the payment failed. Terminal.
	StatusFailed

	// StatusRefunded indicates every sub-order of the order was refunded. Terminal.
	StatusRefunded
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:  "Unknown",
		StatusNew:      "New",
		StatusPaid:     "Paid",
		StatusFailed:   "Failed",
		StatusRefunded: "Refunded",
	}
}

// allowedStatusTransitions returns the static transition table for order
// statuses. The table is rebuilt on each call so callers can never mutate
// shared state.
func allowedStatusTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusNew:      {StatusPaid, StatusFailed},
		StatusPaid:     {StatusRefunded},
		StatusFailed:   {},
		StatusRefunded: {},
	}
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks that the Status is one of the defined order statuses.
func (s Status) Validate() error {
	if _, ok := allowedStatusTransitions()[s]; !ok {
		return errs.NewValueIsInvalidError("order status is invalid")
	}
	return nil
}

// IsTerminal reports whether no further transitions are allowed.
func (s Status) IsTerminal() bool {
	return len(allowedStatusTransitions()[s]) == 0 && s.Validate() == nil
}

// CanTransitionTo reports whether the transition table allows moving from the
// current status to the target status.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range allowedStatusTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo validates the requested transition against the table and
// returns the new status, or an InvalidStateTransitionError.
func (s Status) TransitionTo(target Status) (Status, error) {
	if !s.CanTransitionTo(target) {
		return StatusUnknown, errs.NewInvalidStateTransitionError("order", s.String(), target.String())
	}
	return target, nil
}
