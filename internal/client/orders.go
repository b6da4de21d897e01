package client

import (
	"context"
	"net/http"

	"github.com/SamuelSnowball/Bookstore/internal/domain"
)

// OrderClient talks to the order service.
type OrderClient struct {
	rest *Client
}

func NewOrderClient(rest *Client) *OrderClient {
	return &OrderClient{rest: rest}
}

// CreateFromCart converts the authenticated user's cart into a persisted
// order and returns its id. The order service replies with the bare id.
func (c *OrderClient) CreateFromCart(ctx context.Context, token string) (int, error) {
	var orderID int
	if err := c.rest.do(ctx, http.MethodPost, "/orders/create-from-cart", token, nil, nil, &orderID); err != nil {
		return 0, err
	}
	return orderID, nil
}

func (c *OrderClient) GetOrders(ctx context.Context, token string) ([]domain.OrderSummary, error) {
	var orders []domain.OrderSummary
	if err := c.rest.do(ctx, http.MethodGet, "/orders", token, nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}
