package queries

import (
	"context"
	"encoding/csv"
	"io"
	"time"

	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// csvHeader is the first record of every export.
var csvHeader = []string{
	"order_number", "buyer_id", "status", "items_subtotal",
	"shipping_total", "grand_total", "created_at",
}

// ExportOrdersCSVQueryHandler streams an order export as CSV. Rows are
// written as they are scanned, so exports never buffer the whole result set.
type ExportOrdersCSVQueryHandler struct {
	db *gorm.DB
}

// NewExportOrdersCSVQueryHandler creates a handler for CSV order exports.
func NewExportOrdersCSVQueryHandler(db *gorm.DB) ExportOrdersCSVQueryHandler {
	return ExportOrdersCSVQueryHandler{db: db}
}

// Handle writes the header plus one record per order in the range, oldest
// first, and returns the number of exported orders.
func (h ExportOrdersCSVQueryHandler) Handle(
	ctx context.Context,
	query ExportOrdersCSVQuery,
	out io.Writer,
) (int, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			order_number,
			buyer_id,
			status,
			items_subtotal,
			shipping_total,
			grand_total,
			created_at
		FROM orders
		WHERE created_at >= ? AND created_at < ?
		ORDER BY created_at
	`, query.From(), query.To()).Rows()
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	writer := csv.NewWriter(out)
	if err = writer.Write(csvHeader); err != nil {
		return 0, err
	}

	exported := 0
	for rows.Next() {
		var orderNumber string
		var buyerID uuid.UUID
		var status int
		var itemsSubtotal, shippingTotal, grandTotal decimal.Decimal
		var createdAt time.Time

		err = rows.Scan(
			&orderNumber,
			&buyerID,
			&status,
			&itemsSubtotal,
			&shippingTotal,
			&grandTotal,
			&createdAt,
		)
		if err != nil {
			return exported, err
		}

		record := []string{
			orderNumber,
			buyerID.String(),
			order.Status(status).String(),
			itemsSubtotal.StringFixed(2),
			shippingTotal.StringFixed(2),
			grandTotal.StringFixed(2),
			createdAt.UTC().Format(time.RFC3339),
		}
		if err = writer.Write(record); err != nil {
			return exported, err
		}
		exported++
	}

	if err = rows.Err(); err != nil {
		return exported, err
	}

	writer.Flush()
	return exported, writer.Error()
}
