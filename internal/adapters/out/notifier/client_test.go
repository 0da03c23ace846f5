package notifier_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"marketplace/internal/adapters/out/notifier"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildOrder(t *testing.T) *order.Order {
	t.Helper()

	address, err := kernel.NewAddress(
		"Dana Meyer", "12 Harbor Way", "", "Portland", "OR", "97201", "US", "+1-503-555-0142")
	require.NoError(t, err)

	price, err := kernel.NewMoneyFromString("19.90")
	require.NoError(t, err)
	shipping, err := kernel.NewMoneyFromString("5.00")
	require.NoError(t, err)

	lines := []services.OrderLine{{
		ProductID:   kernel.NewUUID(),
		ProductName: "Ceramic Mug",
		UnitPrice:   price,
		Quantity:    1,
		StoreID:     kernel.NewUUID(),
		StoreName:   "Test Store",
	}}

	aggregate, err := services.NewOrderAggregateBuilder().Build(
		kernel.NewUUID(), kernel.NewUUID(), "txn_notify", address, shipping, lines, time.Now())
	require.NoError(t, err)

	return aggregate
}

func TestClient_SendOrderConfirmation(t *testing.T) {
	aggregate := buildOrder(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/notifications", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "order_confirmation", body["type"])
		assert.Equal(t, aggregate.BuyerID().String(), body["recipientId"])
		assert.Equal(t, aggregate.OrderNumber(), body["orderNumber"])

		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := notifier.NewClient(server.URL)
	require.NoError(t, client.SendOrderConfirmation(t.Context(), aggregate))
}

func TestClient_SendShippingNotification(t *testing.T) {
	aggregate := buildOrder(t)
	subOrder := aggregate.SubOrders()[0]
	require.NoError(t, aggregate.ApplyPaymentOutcome(true, time.Now()))
	require.NoError(t, subOrder.TransitionTo(order.SubOrderPreparing, time.Now()))
	require.NoError(t, subOrder.Ship("TRK-42", "DHL", time.Now()))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "shipping_update", body["type"])
		assert.Equal(t, subOrder.SubOrderNumber(), body["subOrderNumber"])
		assert.Equal(t, "TRK-42", body["trackingNumber"])
		assert.Equal(t, "DHL", body["carrier"])

		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := notifier.NewClient(server.URL)
	require.NoError(t, client.SendShippingNotification(t.Context(), subOrder))
}

func TestClient_Send_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := notifier.NewClient(server.URL)
	err := client.SendOrderConfirmation(t.Context(), buildOrder(t))
	require.ErrorIs(t, err, errs.ErrCollaboratorFailed)
}
