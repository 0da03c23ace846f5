package queries

import (
	"context"
	"database/sql"
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/returncase"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckReturnEligibilityQueryHandler evaluates the return preconditions
// against the current database state.
type CheckReturnEligibilityQueryHandler struct {
	db    *gorm.DB
	clock ports.Clock
}

// NewCheckReturnEligibilityQueryHandler creates a handler for return
// eligibility checks.
func NewCheckReturnEligibilityQueryHandler(db *gorm.DB, clock ports.Clock) CheckReturnEligibilityQueryHandler {
	return CheckReturnEligibilityQueryHandler{db: db, clock: clock}
}

// Handle evaluates eligibility. A sub-order the buyer does not own fails with
// a NotAuthorized error; an unknown sub-order fails with ObjectNotFound. Every
// other outcome is reported in the response, not as an error.
func (h CheckReturnEligibilityQueryHandler) Handle(
	ctx context.Context,
	query CheckReturnEligibilityQuery,
) (CheckReturnEligibilityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return CheckReturnEligibilityQueryResponse{}, err
	}

	var buyerID uuid.UUID
	var status int
	var deliveredAt sql.NullTime

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.buyer_id,
			s.status,
			s.delivered_at
		FROM sub_orders s
		JOIN orders o ON o.id = s.order_id
		WHERE s.id = ?
	`, query.SubOrderID().Bytes()).Row()

	err := row.Scan(&buyerID, &status, &deliveredAt)
	if errors.Is(err, sql.ErrNoRows) {
		return CheckReturnEligibilityQueryResponse{},
			errs.NewObjectNotFoundError("sub-order", query.SubOrderID().String())
	}
	if err != nil {
		return CheckReturnEligibilityQueryResponse{}, err
	}

	owner, err := kernel.UUIDFromBytes(buyerID[:])
	if err != nil {
		return CheckReturnEligibilityQueryResponse{}, err
	}
	if !owner.IsEqual(query.BuyerID()) {
		return CheckReturnEligibilityQueryResponse{}, errs.NewNotAuthorizedError(
			query.BuyerID().String(), query.SubOrderID().String())
	}

	if order.SubOrderStatus(status) != order.SubOrderDelivered || !deliveredAt.Valid {
		return CheckReturnEligibilityQueryResponse{
			Eligible: false,
			Reason:   "cases can only be opened against delivered sub-orders",
		}, nil
	}

	windowClosesAt := deliveredAt.Time.AddDate(0, 0, query.ReturnWindowDays())
	if h.clock.Now().After(windowClosesAt) {
		return CheckReturnEligibilityQueryResponse{
			Eligible:       false,
			Reason:         "the return window has expired",
			WindowClosesAt: &windowClosesAt,
		}, nil
	}

	var totalItems, coveredItems int
	row = h.db.WithContext(ctx).Raw(`
		SELECT
			(SELECT COUNT(*)
			 FROM sub_order_items i
			 WHERE i.sub_order_id = ?),
			(SELECT COUNT(DISTINCT ci.item_id)
			 FROM return_case_items ci
			 JOIN return_cases c ON c.id = ci.case_id
			 WHERE c.sub_order_id = ? AND c.status NOT IN (?, ?))
	`, query.SubOrderID().Bytes(), query.SubOrderID().Bytes(),
		int(returncase.StatusRejected), int(returncase.StatusCompleted)).Row()

	if err = row.Scan(&totalItems, &coveredItems); err != nil {
		return CheckReturnEligibilityQueryResponse{}, err
	}

	if totalItems > 0 && coveredItems >= totalItems {
		return CheckReturnEligibilityQueryResponse{
			Eligible:       false,
			Reason:         "every item is already covered by an open case",
			WindowClosesAt: &windowClosesAt,
		}, nil
	}

	return CheckReturnEligibilityQueryResponse{
		Eligible:       true,
		WindowClosesAt: &windowClosesAt,
	}, nil
}
