package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/SamuelSnowball/Bookstore/internal/domain"
)

// AddressClient talks to the address endpoints of the entity service.
type AddressClient struct {
	rest *Client
}

func NewAddressClient(rest *Client) *AddressClient {
	return &AddressClient{rest: rest}
}

func (c *AddressClient) ListAddresses(ctx context.Context, token string) ([]domain.Address, error) {
	var addresses []domain.Address
	if err := c.rest.do(ctx, http.MethodGet, "/address", token, nil, nil, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// GetDefaultAddress returns nil without error when the user has no default
// address; the upstream signals that with 404.
func (c *AddressClient) GetDefaultAddress(ctx context.Context, token string) (*domain.Address, error) {
	var address domain.Address
	err := c.rest.do(ctx, http.MethodGet, "/address/default", token, nil, nil, &address)
	if err != nil {
		var upstream *UpstreamError
		if errors.As(err, &upstream) && upstream.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &address, nil
}

func (c *AddressClient) CreateAddress(ctx context.Context, token string, address domain.Address) (*domain.Address, error) {
	var created domain.Address
	if err := c.rest.do(ctx, http.MethodPost, "/address", token, nil, address, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *AddressClient) UpdateAddress(ctx context.Context, token string, addressID int, address domain.Address) error {
	return c.rest.do(ctx, http.MethodPut, fmt.Sprintf("/address/%d", addressID), token, nil, address, nil)
}

func (c *AddressClient) DeleteAddress(ctx context.Context, token string, addressID int) error {
	return c.rest.do(ctx, http.MethodDelete, fmt.Sprintf("/address/%d", addressID), token, nil, nil, nil)
}

func (c *AddressClient) SetDefaultAddress(ctx context.Context, token string, addressID int) error {
	return c.rest.do(ctx, http.MethodPatch, fmt.Sprintf("/address/%d/set-default", addressID), token, nil, nil, nil)
}
