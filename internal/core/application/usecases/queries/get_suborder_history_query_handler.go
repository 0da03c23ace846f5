package queries

import (
	"context"

	"marketplace/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GetSubOrderHistoryQueryHandler reads the tracking timeline from the
// append-only status history table.
type GetSubOrderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetSubOrderHistoryQueryHandler creates a handler for tracking timelines.
func NewGetSubOrderHistoryQueryHandler(db *gorm.DB) GetSubOrderHistoryQueryHandler {
	return GetSubOrderHistoryQueryHandler{db: db}
}

// Handle executes the query. An unknown sub-order simply yields an empty
// timeline; existence checks belong to the sub-order endpoints.
func (h GetSubOrderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetSubOrderHistoryQuery,
) ([]GetSubOrderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			previous_status,
			new_status,
			tracking_number,
			carrier,
			notes,
			changed_at
		FROM suborder_status_history
		WHERE sub_order_id = ?
		ORDER BY changed_at
	`, query.SubOrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	timeline := make([]GetSubOrderHistoryQueryResponse, 0)
	for rows.Next() {
		var resp GetSubOrderHistoryQueryResponse
		var previousStatus, newStatus int

		err = rows.Scan(
			&previousStatus,
			&newStatus,
			&resp.TrackingNumber,
			&resp.Carrier,
			&resp.Notes,
			&resp.ChangedAt,
		)
		if err != nil {
			return nil, err
		}

		resp.PreviousStatus = order.SubOrderStatus(previousStatus).String()
		resp.NewStatus = order.SubOrderStatus(newStatus).String()
		timeline = append(timeline, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return timeline, nil
}
