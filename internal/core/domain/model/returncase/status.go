package returncase

import (
	"marketplace/internal/pkg/errs"
)

// Status represents the review lifecycle of a return case.
//
// State transitions:
//
//	Requested ──┬──> UnderReview ──┬──> Approved ──> Completed
//	            ├──> Approved      └──> Rejected
//	            └──> Rejected
//
// Rejected and Completed are terminal; items of a terminal case may be the
// subject of a new case.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusRequested is the initial status when the buyer opens the case.
	StatusRequested

	// StatusUnderReview indicates the seller is examining the case.
	StatusUnderReview

	// StatusApproved indicates the seller accepted the case and resolution
	// is pending.
	StatusApproved

	// StatusRejected indicates the seller declined the case. Terminal.
	StatusRejected

	// StatusCompleted indicates the case was resolved. Terminal.
	StatusCompleted
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:     "Unknown",
		StatusRequested:   "Requested",
		StatusUnderReview: "UnderReview",
		StatusApproved:    "Approved",
		StatusRejected:    "Rejected",
		StatusCompleted:   "Completed",
	}
}

// allowedStatusTransitions returns the static transition table for case statuses.
func allowedStatusTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusRequested:   {StatusUnderReview, StatusApproved, StatusRejected},
		StatusUnderReview: {StatusApproved, StatusRejected},
		StatusApproved:    {StatusCompleted},
		StatusRejected:    {},
		StatusCompleted:   {},
	}
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks that the Status is one of the defined case statuses.
func (s Status) Validate() error {
	if _, ok := allowedStatusTransitions()[s]; !ok {
		return errs.NewValueIsInvalidError("case status is invalid")
	}
	return nil
}

// IsTerminal reports whether no further transitions are allowed. A case whose
// status is terminal no longer blocks new cases for its items.
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
		return StatusUnknown, errs.NewInvalidStateTransitionError("return case", s.String(), target.String())
	}
	return target, nil
}

// StatusFromString parses a case status name as used on the wire.
func StatusFromString(name string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == name && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidError("case status is invalid")
}
