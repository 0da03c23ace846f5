package order

import (
	"marketplace/internal/pkg/errs"
)

// SubOrderStatus represents the lifecycle state of a seller sub-order.
//
// State transitions:
//
//	New ──┬──> Paid ──┬──> Preparing ──┬──> Shipped ──> Delivered ──> Refunded
//	      │           │                └──> Cancelled ──> Refunded
//	      │           ├──> Cancelled
//	      │           └──> Refunded
//	      ├──> Failed
//	      └──> Cancelled
//
// Refunded and Failed are terminal. New->Failed exists only for the payment
// failure cascade from the parent order.
type SubOrderStatus int

const (
	// SubOrderUnknown represents an invalid or undefined status.
	SubOrderUnknown SubOrderStatus = iota

	// SubOrderNew is the initial status assigned at checkout.
	SubOrderNew

	// SubOrderPaid indicates the parent order's payment succeeded.
	SubOrderPaid

	// SubOrderPreparing indicates the seller started fulfilling the sub-order.
	SubOrderPreparing

	// SubOrderShipped indicates the sub-order left the seller. Tracking
	// number and carrier are recorded at this transition.
	SubOrderShipped

	// SubOrderDelivered indicates the buyer received the sub-order.
	SubOrderDelivered

	// SubOrderCancelled indicates the sub-order was cancelled before delivery.
	SubOrderCancelled

	// SubOrderRefunded indicates the sub-order's money was returned. Terminal.
	SubOrderRefunded

	// SubOrderFailed indicates the parent order's payment failed. Terminal.
	SubOrderFailed
)

// getSubOrderStatusStrings returns a map of SubOrderStatus values to their
// string representations.
func getSubOrderStatusStrings() map[SubOrderStatus]string {
	return map[SubOrderStatus]string{
		SubOrderUnknown:   "Unknown",
		SubOrderNew:       "New",
		SubOrderPaid:      "Paid",
		SubOrderPreparing: "Preparing",
		SubOrderShipped:   "Shipped",
		SubOrderDelivered: "Delivered",
		SubOrderCancelled: "Cancelled",
		SubOrderRefunded:  "Refunded",
		SubOrderFailed:    "Failed",
	}
}

// allowedSubOrderTransitions returns the static transition table for
// sub-order statuses.
func allowedSubOrderTransitions() map[SubOrderStatus][]SubOrderStatus {
	return map[SubOrderStatus][]SubOrderStatus{
		SubOrderNew:       {SubOrderPaid, SubOrderFailed, SubOrderCancelled},
		SubOrderPaid:      {SubOrderPreparing, SubOrderCancelled, SubOrderRefunded},
		SubOrderPreparing: {SubOrderShipped, SubOrderCancelled},
		SubOrderShipped:   {SubOrderDelivered},
		SubOrderDelivered: {SubOrderRefunded},
		SubOrderCancelled: {SubOrderRefunded},
		SubOrderRefunded:  {},
		SubOrderFailed:    {},
	}
}

// String returns the human-readable name of the status.
func (s SubOrderStatus) String() string {
	if str, ok := getSubOrderStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Validate checks that the SubOrderStatus is one of the defined statuses.
func (s SubOrderStatus) Validate() error {
	if _, ok := allowedSubOrderTransitions()[s]; !ok {
		return errs.NewValueIsInvalidError("sub-order status is invalid")
	}
	return nil
}

// IsTerminal reports whether no further transitions are allowed.
func (s SubOrderStatus) IsTerminal() bool {
	return len(allowedSubOrderTransitions()[s]) == 0 && s.Validate() == nil
}

// CanTransitionTo reports whether the transition table allows moving from the
// current status to the target status.
func (s SubOrderStatus) CanTransitionTo(target SubOrderStatus) bool {
	for _, allowed := range allowedSubOrderTransitions()[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo validates the requested transition against the table and
// returns the new status, or an InvalidStateTransitionError.
func (s SubOrderStatus) TransitionTo(target SubOrderStatus) (SubOrderStatus, error) {
	if !s.CanTransitionTo(target) {
		return SubOrderUnknown, errs.NewInvalidStateTransitionError("sub-order", s.String(), target.String())
	}
	return target, nil
}

// SubOrderStatusFromString parses a sub-order status name as used on the wire.
func SubOrderStatusFromString(name string) (SubOrderStatus, error) {
	for status, str := range getSubOrderStatusStrings() {
		if str == name && status != SubOrderUnknown {
			return status, nil
		}
	}
	return SubOrderUnknown, errs.NewValueIsInvalidError("sub-order status is invalid")
}
