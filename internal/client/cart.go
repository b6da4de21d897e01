package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/SamuelSnowball/Bookstore/internal/domain"
)

// CartClient talks to the cart endpoints of the order service.
type CartClient struct {
	rest *Client
}

func NewCartClient(rest *Client) *CartClient {
	return &CartClient{rest: rest}
}

func (c *CartClient) GetCart(ctx context.Context, token string) ([]domain.CartItem, error) {
	var items []domain.CartItem
	if err := c.rest.do(ctx, http.MethodGet, "/cart", token, nil, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *CartClient) AddItem(ctx context.Context, token string, bookID, quantity int) error {
	payload := map[string]int{"bookId": bookID, "quantity": quantity}
	return c.rest.do(ctx, http.MethodPost, "/cart", token, nil, payload, nil)
}

func (c *CartClient) UpdateQuantity(ctx context.Context, token string, cartItemID, quantity int) error {
	payload := map[string]int{"quantity": quantity}
	return c.rest.do(ctx, http.MethodPut, fmt.Sprintf("/cart/%d", cartItemID), token, nil, payload, nil)
}

func (c *CartClient) RemoveItem(ctx context.Context, token string, cartItemID int) error {
	return c.rest.do(ctx, http.MethodDelete, fmt.Sprintf("/cart/%d", cartItemID), token, nil, nil, nil)
}
