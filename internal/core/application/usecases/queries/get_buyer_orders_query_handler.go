package queries

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetBuyerOrdersQueryHandler lists a buyer's orders from the database.
type GetBuyerOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetBuyerOrdersQueryHandler creates a handler for buyer order listings.
func NewGetBuyerOrdersQueryHandler(db *gorm.DB) GetBuyerOrdersQueryHandler {
	return GetBuyerOrdersQueryHandler{db: db}
}

// Handle executes the listing. Orders come back newest first with their
// sub-order counts.
func (h GetBuyerOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetBuyerOrdersQuery,
) ([]GetBuyerOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetBuyerOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.order_number,
			o.status,
			o.grand_total,
			o.created_at,
			COUNT(s.id) AS sub_order_count
		FROM orders o
		LEFT JOIN sub_orders s ON s.order_id = o.id
		WHERE o.buyer_id = ?
		GROUP BY o.id
		ORDER BY o.created_at DESC
	`, query.BuyerID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetBuyerOrdersQueryResponse
		var id uuid.UUID
		var status int
		var grandTotal decimal.Decimal

		err = rows.Scan(
			&id,
			&resp.OrderNumber,
			&status,
			&grandTotal,
			&resp.CreatedAt,
			&resp.SubOrderCount,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID
		resp.Status = order.Status(status).String()
		resp.GrandTotal = grandTotal.StringFixed(2)
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
