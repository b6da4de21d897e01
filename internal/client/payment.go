package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/SamuelSnowball/Bookstore/internal/domain"
)

// PaymentClient talks to the payment service, which fronts the hosted
// payment processor.
type PaymentClient struct {
	rest *Client
}

func NewPaymentClient(rest *Client) *PaymentClient {
	return &PaymentClient{rest: rest}
}

// CreateCheckoutSession asks the payment service for a hosted-payment
// session and returns its client secret.
func (c *PaymentClient) CreateCheckoutSession(ctx context.Context, token string, req domain.PaymentRequest) (string, error) {
	var resp struct {
		ClientSecret string `json:"clientSecret"`
	}
	if err := c.rest.do(ctx, http.MethodPost, "/payment/create-checkout-session", token, nil, req, &resp); err != nil {
		return "", err
	}
	return resp.ClientSecret, nil
}

// GetSessionStatus sends no Authorization header; the session id itself is
// the credential.
func (c *PaymentClient) GetSessionStatus(ctx context.Context, sessionID string) (domain.SessionState, error) {
	query := url.Values{"session_id": {sessionID}}
	var state domain.SessionState
	if err := c.rest.do(ctx, http.MethodGet, "/payment/session-status", "", query, nil, &state); err != nil {
		return domain.SessionState{}, err
	}
	return state, nil
}

// CompleteOrder finalizes the order behind a paid session and returns the
// order id.
func (c *PaymentClient) CompleteOrder(ctx context.Context, token, sessionID string) (int, error) {
	query := url.Values{"session_id": {sessionID}}
	var resp struct {
		OrderID int    `json:"orderId"`
		Message string `json:"message"`
	}
	if err := c.rest.do(ctx, http.MethodPost, "/payment/complete-order", token, query, nil, &resp); err != nil {
		return 0, err
	}
	return resp.OrderID, nil
}
