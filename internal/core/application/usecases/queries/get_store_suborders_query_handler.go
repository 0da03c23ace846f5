package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetStoreSubOrdersQueryHandler lists a store's sub-orders from the database.
type GetStoreSubOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetStoreSubOrdersQueryHandler creates a handler for store sub-order
// listings.
func NewGetStoreSubOrdersQueryHandler(db *gorm.DB) GetStoreSubOrdersQueryHandler {
	return GetStoreSubOrdersQueryHandler{db: db}
}

// Handle executes the listing. Rows come back newest first; the optional
// status filter narrows the result before pagination is applied.
func (h GetStoreSubOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetStoreSubOrdersQuery,
) ([]GetStoreSubOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sql := `
		SELECT
			s.id,
			s.sub_order_number,
			s.status,
			s.total,
			s.tracking_number,
			s.carrier,
			s.paid_at,
			s.shipped_at,
			COUNT(i.id) AS item_count
		FROM sub_orders s
		LEFT JOIN sub_order_items i ON i.sub_order_id = s.id
		WHERE s.store_id = ?`
	args := []any{query.StoreID().Bytes()}

	if query.Status() != nil {
		sql += " AND s.status = ?"
		args = append(args, int(*query.Status()))
	}

	sql += `
		GROUP BY s.id
		ORDER BY s.paid_at DESC NULLS LAST, s.sub_order_number
		LIMIT ? OFFSET ?`
	args = append(args, query.PageSize(), (query.Page()-1)*query.PageSize())

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subOrders := make([]GetStoreSubOrdersQueryResponse, 0)
	for rows.Next() {
		var resp GetStoreSubOrdersQueryResponse
		var id uuid.UUID
		var status int
		var total decimal.Decimal

		err = rows.Scan(
			&id,
			&resp.SubOrderNumber,
			&status,
			&total,
			&resp.TrackingNumber,
			&resp.Carrier,
			&resp.PaidAt,
			&resp.ShippedAt,
			&resp.ItemCount,
		)
		if err != nil {
			return nil, err
		}

		subOrderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = subOrderID
		resp.Status = order.SubOrderStatus(status).String()
		resp.Total = total.StringFixed(2)
		subOrders = append(subOrders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return subOrders, nil
}
