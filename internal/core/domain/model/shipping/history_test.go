package shipping_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/shipping"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHistoryEntry(t *testing.T) {
	now := time.Now()

	t.Run("should create entry with shipping context", func(t *testing.T) {
		entry, err := shipping.NewHistoryEntry(
			kernel.NewUUID(), kernel.NewUUID(),
			order.SubOrderPreparing, order.SubOrderShipped,
			"TRK-001", "DHL", "handed over at depot", now,
		)

		require.NoError(t, err)
		assert.Equal(t, order.SubOrderPreparing, entry.PreviousStatus())
		assert.Equal(t, order.SubOrderShipped, entry.NewStatus())
		assert.Equal(t, "TRK-001", entry.TrackingNumber())
		assert.Equal(t, "DHL", entry.Carrier())
		assert.Equal(t, "handed over at depot", entry.Notes())
		assert.Equal(t, now, entry.ChangedAt())
		assert.NoError(t, entry.Validate())
	})

	t.Run("should reject a change to the same status", func(t *testing.T) {
		_, err := shipping.NewHistoryEntry(
			kernel.NewUUID(), kernel.NewUUID(),
			order.SubOrderPaid, order.SubOrderPaid,
			"", "", "", now,
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject an invalid new status", func(t *testing.T) {
		_, err := shipping.NewHistoryEntry(
			kernel.NewUUID(), kernel.NewUUID(),
			order.SubOrderPaid, order.SubOrderUnknown,
			"", "", "", now,
		)

		require.Error(t, err)
	})

	t.Run("should fail validation when default constructed", func(t *testing.T) {
		var entry shipping.HistoryEntry

		assert.ErrorIs(t, entry.Validate(), shipping.ErrHistoryEntryIsNotConstructed)
	})
}
