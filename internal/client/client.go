package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// UpstreamError is a non-2xx reply from a collaborating service. Error()
// returns the upstream message verbatim so it can be surfaced to the user
// unchanged.
type UpstreamError struct {
	Service    string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return e.Message
}

// Client is the shared REST core used by every service client: one base URL,
// one timeout, one circuit breaker.
type Client struct {
	name    string
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*restResponse]
	logger  *zap.Logger
}

type restResponse struct {
	status int
	body   []byte
}

func New(name, baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	settings := gobreaker.Settings{
		Name:    name,
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	}

	return &Client{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: gobreaker.NewCircuitBreaker[*restResponse](settings),
		logger:  logger,
	}
}

// do issues one JSON request. An empty token means no Authorization header.
// Transport faults and 5xx replies count against the breaker; 4xx replies are
// business failures and do not.
func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", path, err)
		}
		body = bytes.NewReader(data)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.breaker.Execute(func() (*restResponse, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		r := &restResponse{status: resp.StatusCode, body: data}
		if resp.StatusCode >= http.StatusInternalServerError {
			return r, &UpstreamError{
				Service:    c.name,
				StatusCode: resp.StatusCode,
				Message:    upstreamMessage(data, resp.StatusCode),
			}
		}
		return r, nil
	})
	if err != nil {
		c.logger.Warn("upstream call failed",
			zap.String("service", c.name),
			zap.String("path", path),
			zap.Error(err))
		return err
	}

	if res.status >= http.StatusBadRequest {
		return &UpstreamError{
			Service:    c.name,
			StatusCode: res.status,
			Message:    upstreamMessage(res.body, res.status),
		}
	}

	if out != nil && len(res.body) > 0 {
		if err := json.Unmarshal(res.body, out); err != nil {
			return fmt.Errorf("failed to decode %s response: %w", path, err)
		}
	}
	return nil
}

// upstreamMessage digs the human-readable message out of an error body,
// falling back to the HTTP status text.
func upstreamMessage(body []byte, status int) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return http.StatusText(status)
}
