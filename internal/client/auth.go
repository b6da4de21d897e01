package client

import (
	"context"
	"net/http"
)

// AuthClient exchanges credentials for a bearer token at the auth gateway.
type AuthClient struct {
	rest *Client
}

func NewAuthClient(rest *Client) *AuthClient {
	return &AuthClient{rest: rest}
}

type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	UserID   int    `json:"userId"`
}

func (c *AuthClient) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	payload := map[string]string{"username": username, "password": password}
	var result LoginResult
	if err := c.rest.do(ctx, http.MethodPost, "/api/auth/login", "", nil, payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
