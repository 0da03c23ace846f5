// Package notifier talks to the external notification service over JSON
// HTTP. Every notification is best-effort: callers log failures and continue.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

const defaultTimeout = 5 * time.Second

// Client implements ports.NotificationClient against the notification
// service REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a notification service client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// notification is the wire format of one notification request. The
// notification service resolves the recipient from the order when no
// recipient is given.
type notification struct {
	Type           string `json:"type"`
	RecipientID    string `json:"recipientId,omitempty"`
	OrderID        string `json:"orderId"`
	OrderNumber    string `json:"orderNumber,omitempty"`
	SubOrderNumber string `json:"subOrderNumber,omitempty"`
	TrackingNumber string `json:"trackingNumber,omitempty"`
	Carrier        string `json:"carrier,omitempty"`
}

// SendOrderConfirmation notifies the buyer that their order was placed and
// paid.
func (c *Client) SendOrderConfirmation(ctx context.Context, aggregate *order.Order) error {
	return c.send(ctx, notification{
		Type:        "order_confirmation",
		RecipientID: aggregate.BuyerID().String(),
		OrderID:     aggregate.ID().String(),
		OrderNumber: aggregate.OrderNumber(),
	})
}

// SendShippingNotification notifies the buyer that a sub-order was handed to
// a carrier.
func (c *Client) SendShippingNotification(ctx context.Context, subOrder *order.SellerSubOrder) error {
	return c.send(ctx, notification{
		Type:           "shipping_update",
		OrderID:        subOrder.OrderID().String(),
		SubOrderNumber: subOrder.SubOrderNumber(),
		TrackingNumber: subOrder.TrackingNumber(),
		Carrier:        subOrder.Carrier(),
	})
}

func (c *Client) send(ctx context.Context, payload notification) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errs.NewCollaboratorError("notification service", err)
	}

	url := c.baseURL + "/notifications"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return errs.NewCollaboratorError("notification service", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.NewCollaboratorError("notification service", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
		return errs.NewCollaboratorError("notification service",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	return nil
}
