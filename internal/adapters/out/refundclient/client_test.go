package refundclient_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"marketplace/internal/adapters/out/refundclient"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetRefund(t *testing.T) {
	refundID := kernel.NewUUID()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/refunds/"+refundID.String(), r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":                   refundID.String(),
			"paymentTransactionId": "txn_3OqXz2",
			"amount":               "42.50",
			"full":                 true,
		})
	}))
	defer server.Close()

	client := refundclient.NewClient(server.URL)
	refund, err := client.GetRefund(t.Context(), refundID)
	require.NoError(t, err)

	assert.Equal(t, refundID, refund.ID)
	assert.Equal(t, "txn_3OqXz2", refund.PaymentTransactionID)
	assert.Equal(t, "42.50", refund.Amount.String())
	assert.True(t, refund.IsFull)
}

func TestClient_GetRefund_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := refundclient.NewClient(server.URL)
	_, err := client.GetRefund(t.Context(), kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestClient_ProcessPartialRefund(t *testing.T) {
	refundID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	sellerID := kernel.NewUUID()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/refunds", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, orderID.String(), body["orderId"])
		assert.Equal(t, "txn_3OqXz2", body["paymentTransactionId"])
		assert.Equal(t, sellerID.String(), body["sellerId"])
		assert.Equal(t, false, body["full"])
		assert.Equal(t, "partial damage", body["reason"])
		assert.Equal(t, sellerID.String(), body["initiator"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":                   refundID.String(),
			"paymentTransactionId": "txn_3OqXz2",
			"amount":               "10.00",
			"full":                 false,
		})
	}))
	defer server.Close()

	amount, err := kernel.NewMoneyFromString("10.00")
	require.NoError(t, err)

	client := refundclient.NewClient(server.URL)
	refund, err := client.ProcessPartialRefund(t.Context(),
		orderID, "txn_3OqXz2", sellerID, amount, "partial damage", sellerID.String())
	require.NoError(t, err)

	assert.Equal(t, refundID, refund.ID)
	assert.False(t, refund.IsFull)
	assert.True(t, amount.IsEqual(refund.Amount))
}

func TestClient_ProcessFullRefund_OmitsSellerID(t *testing.T) {
	refundID := kernel.NewUUID()
	orderID := kernel.NewUUID()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, orderID.String(), body["orderId"])
		assert.Equal(t, true, body["full"])
		assert.NotContains(t, body, "sellerId")
		assert.Equal(t, "defective goods", body["reason"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":                   refundID.String(),
			"paymentTransactionId": "txn_3OqXz2",
			"amount":               "42.50",
			"full":                 true,
		})
	}))
	defer server.Close()

	amount, err := kernel.NewMoneyFromString("42.50")
	require.NoError(t, err)

	client := refundclient.NewClient(server.URL)
	refund, err := client.ProcessFullRefund(t.Context(),
		orderID, "txn_3OqXz2", amount, "defective goods", kernel.NewUUID().String())
	require.NoError(t, err)

	assert.Equal(t, refundID, refund.ID)
	assert.True(t, refund.IsFull)
}

func TestClient_ProcessFullRefund_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	amount, err := kernel.NewMoneyFromString("42.50")
	require.NoError(t, err)

	client := refundclient.NewClient(server.URL)
	_, err = client.ProcessFullRefund(t.Context(),
		kernel.NewUUID(), "txn_3OqXz2", amount, "defective goods", "store")
	require.ErrorIs(t, err, errs.ErrCollaboratorFailed)
}

func TestClient_ProcessFullRefund_RejectsNonPositiveAmount(t *testing.T) {
	client := refundclient.NewClient("http://localhost")

	_, err := client.ProcessFullRefund(t.Context(),
		kernel.NewUUID(), "txn_3OqXz2", kernel.ZeroMoney(), "defective goods", "store")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestClient_ProcessFullRefund_RequiresTransactionID(t *testing.T) {
	amount, err := kernel.NewMoneyFromString("5.00")
	require.NoError(t, err)

	client := refundclient.NewClient("http://localhost")
	_, err = client.ProcessFullRefund(t.Context(),
		kernel.NewUUID(), "", amount, "defective goods", "store")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
