package queries

import (
	"errors"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var ErrCheckReturnEligibilityQueryIsNotConstructed = errors.New(
	"CheckReturnEligibilityQuery must be created via NewCheckReturnEligibilityQuery constructor",
)

// CheckReturnEligibilityQuery answers whether a buyer can still open a return
// case against a sub-order, without creating anything. It applies the same
// preconditions the case intake enforces: buyer ownership, Delivered status,
// and the return window.
type CheckReturnEligibilityQuery struct {
	guard guard.ConstructorGuard

	buyerID          kernel.UUID
	subOrderID       kernel.UUID
	returnWindowDays int
}

// NewCheckReturnEligibilityQuery creates an eligibility check for the given
// buyer and sub-order.
func NewCheckReturnEligibilityQuery(
	buyerID kernel.UUID,
	subOrderID kernel.UUID,
	returnWindowDays int,
) (CheckReturnEligibilityQuery, error) {
	if err := errors.Join(buyerID.Validate(), subOrderID.Validate()); err != nil {
		return CheckReturnEligibilityQuery{}, err
	}
	if returnWindowDays < 1 {
		return CheckReturnEligibilityQuery{}, errs.NewValueIsRequiredError("return window days")
	}

	return CheckReturnEligibilityQuery{
		guard:            guard.NewConstructorGuard(),
		buyerID:          buyerID,
		subOrderID:       subOrderID,
		returnWindowDays: returnWindowDays,
	}, nil
}

// BuyerID returns the buyer asking for eligibility.
func (q CheckReturnEligibilityQuery) BuyerID() kernel.UUID {
	return q.buyerID
}

// SubOrderID returns the sub-order being checked.
func (q CheckReturnEligibilityQuery) SubOrderID() kernel.UUID {
	return q.subOrderID
}

// ReturnWindowDays returns the configured return window.
func (q CheckReturnEligibilityQuery) ReturnWindowDays() int {
	return q.returnWindowDays
}

// Validate ensures the query was created through the constructor.
func (q CheckReturnEligibilityQuery) Validate() error {
	return q.guard.Validate(ErrCheckReturnEligibilityQueryIsNotConstructed)
}

// CheckReturnEligibilityQueryResponse reports the eligibility verdict.
// Reason is empty when Eligible is true; WindowClosesAt is set whenever the
// sub-order has been delivered.
type CheckReturnEligibilityQueryResponse struct {
	Eligible       bool
	Reason         string
	WindowClosesAt *time.Time
}
