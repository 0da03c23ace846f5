// Package refundclient talks to the external refund service over JSON HTTP.
// The refund service owns money movement; this adapter only asks it to move
// money and reports the resulting refund identity and amount.
package refundclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/ports"
	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const defaultTimeout = 10 * time.Second

// Client implements ports.RefundClient against the refund service REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a refund service client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// refundDocument is the refund service's wire representation of a refund.
type refundDocument struct {
	ID                   string          `json:"id"`
	PaymentTransactionID string          `json:"paymentTransactionId"`
	Amount               decimal.Decimal `json:"amount"`
	Full                 bool            `json:"full"`
}

// createRefundRequest is the body of a refund creation call.
type createRefundRequest struct {
	OrderID              string          `json:"orderId"`
	PaymentTransactionID string          `json:"paymentTransactionId"`
	SellerID             string          `json:"sellerId,omitempty"`
	Amount               decimal.Decimal `json:"amount"`
	Full                 bool            `json:"full"`
	Reason               string          `json:"reason,omitempty"`
	Initiator            string          `json:"initiator,omitempty"`
}

// GetRefund retrieves an existing refund by identity.
func (c *Client) GetRefund(ctx context.Context, refundID kernel.UUID) (ports.Refund, error) {
	if err := refundID.Validate(); err != nil {
		return ports.Refund{}, err
	}

	url := fmt.Sprintf("%s/refunds/%s", c.baseURL, refundID.String())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ports.Refund{}, errs.NewCollaboratorError("refund service", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.Refund{}, errs.NewCollaboratorError("refund service", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ports.Refund{}, errs.NewObjectNotFoundError("refund", refundID.String())
	}
	if resp.StatusCode != http.StatusOK {
		return ports.Refund{}, errs.NewCollaboratorError("refund service",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	return c.decodeRefund(resp)
}

// ProcessFullRefund creates a refund covering the sub-order's full total.
func (c *Client) ProcessFullRefund(
	ctx context.Context,
	orderID kernel.UUID,
	paymentTransactionID string,
	amount kernel.Money,
	reason string,
	initiator string,
) (ports.Refund, error) {
	return c.createRefund(ctx, createRefundRequest{
		OrderID:              orderID.String(),
		PaymentTransactionID: paymentTransactionID,
		Amount:               amount.Decimal(),
		Full:                 true,
		Reason:               reason,
		Initiator:            initiator,
	}, amount)
}

// ProcessPartialRefund creates a refund of the given partial amount,
// attributed to one seller.
func (c *Client) ProcessPartialRefund(
	ctx context.Context,
	orderID kernel.UUID,
	paymentTransactionID string,
	sellerID kernel.UUID,
	amount kernel.Money,
	reason string,
	initiator string,
) (ports.Refund, error) {
	return c.createRefund(ctx, createRefundRequest{
		OrderID:              orderID.String(),
		PaymentTransactionID: paymentTransactionID,
		SellerID:             sellerID.String(),
		Amount:               amount.Decimal(),
		Full:                 false,
		Reason:               reason,
		Initiator:            initiator,
	}, amount)
}

func (c *Client) createRefund(
	ctx context.Context,
	request createRefundRequest,
	amount kernel.Money,
) (ports.Refund, error) {
	if request.PaymentTransactionID == "" {
		return ports.Refund{}, errs.NewValueIsRequiredError("payment transaction id")
	}
	if !amount.IsPositive() {
		return ports.Refund{}, errs.NewValueIsInvalidError("refund amount is invalid")
	}

	body, err := json.Marshal(request)
	if err != nil {
		return ports.Refund{}, errs.NewCollaboratorError("refund service", err)
	}

	url := c.baseURL + "/refunds"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return ports.Refund{}, errs.NewCollaboratorError("refund service", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.Refund{}, errs.NewCollaboratorError("refund service", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return ports.Refund{}, errs.NewCollaboratorError("refund service",
			fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	return c.decodeRefund(resp)
}

func (c *Client) decodeRefund(resp *http.Response) (ports.Refund, error) {
	var doc refundDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return ports.Refund{}, errs.NewCollaboratorError("refund service", err)
	}

	id, err := kernel.UUIDFromString(doc.ID)
	if err != nil {
		return ports.Refund{}, errs.NewCollaboratorError("refund service", err)
	}

	amount, err := kernel.NewMoney(doc.Amount)
	if err != nil {
		return ports.Refund{}, errs.NewCollaboratorError("refund service", err)
	}

	return ports.Refund{
		ID:                   id,
		PaymentTransactionID: doc.PaymentTransactionID,
		Amount:               amount,
		IsFull:               doc.Full,
	}, nil
}
