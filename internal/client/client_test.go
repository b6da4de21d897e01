package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SamuelSnowball/Bookstore/internal/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New("test-service", server.URL, 5*time.Second, zap.NewNop())
}

func TestCartClient_GetCartSendsBearerToken(t *testing.T) {
	var gotAuth string
	rest := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"cartItemId":5,"bookId":1,"bookQuantity":2,"title":"The Forgotten Chronicles","price":15}]`))
	})

	items, err := NewCartClient(rest).GetCart(context.Background(), "tok-abc")

	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-abc", gotAuth)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].CartItemID)
	assert.Equal(t, "The Forgotten Chronicles", items[0].Title)
	require.NotNil(t, items[0].Price)
	assert.Equal(t, 15.0, *items[0].Price)
}

func TestPaymentClient_CreateCheckoutSession(t *testing.T) {
	var gotBody map[string]any
	rest := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payment/create-checkout-session", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"clientSecret":"cs_test_secret"}`))
	})

	secret, err := NewPaymentClient(rest).CreateCheckoutSession(context.Background(), "tok-abc", domain.PaymentRequest{
		OrderID:     42,
		TotalAmount: 15,
		Items: []domain.PaymentItem{
			{BookID: 1, Title: "The Forgotten Chronicles", Price: 15, Quantity: 1},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "cs_test_secret", secret)
	assert.Equal(t, 42.0, gotBody["orderId"])
	assert.Equal(t, 15.0, gotBody["totalAmount"])
}

func TestPaymentClient_GetSessionStatusIsUnauthenticated(t *testing.T) {
	rest := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, "cs_test_1", r.URL.Query().Get("session_id"))
		w.Write([]byte(`{"status":"complete","payment_status":"paid","payment_intent_id":"pi_123"}`))
	})

	state, err := NewPaymentClient(rest).GetSessionStatus(context.Background(), "cs_test_1")

	require.NoError(t, err)
	assert.Equal(t, "complete", state.Status)
	assert.Equal(t, "paid", state.PaymentStatus)
	assert.Equal(t, "pi_123", state.PaymentIntentID)
}

func TestPaymentClient_CompleteOrder(t *testing.T) {
	rest := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payment/complete-order", r.URL.Path)
		assert.Equal(t, "cs_test_1", r.URL.Query().Get("session_id"))
		w.Write([]byte(`{"orderId":42,"message":"Order completed"}`))
	})

	orderID, err := NewPaymentClient(rest).CompleteOrder(context.Background(), "tok-abc", "cs_test_1")

	require.NoError(t, err)
	assert.Equal(t, 42, orderID)
}

func TestClient_UpstreamErrorMessagePassesThroughVerbatim(t *testing.T) {
	rest := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Cart is empty"}`))
	})

	_, err := NewCartClient(rest).GetCart(context.Background(), "tok-abc")

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusBadRequest, upstream.StatusCode)
	assert.Equal(t, "Cart is empty", upstream.Message)
	assert.Equal(t, "Cart is empty", err.Error())
}

func TestClient_ServerErrorFallsBackToStatusText(t *testing.T) {
	rest := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("not json"))
	})

	_, err := NewOrderClient(rest).CreateFromCart(context.Background(), "tok-abc")

	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusBadGateway, upstream.StatusCode)
	assert.Equal(t, http.StatusText(http.StatusBadGateway), upstream.Message)
}

func TestOrderClient_CreateFromCartReturnsBareID(t *testing.T) {
	rest := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders/create-from-cart", r.URL.Path)
		w.Write([]byte(`42`))
	})

	orderID, err := NewOrderClient(rest).CreateFromCart(context.Background(), "tok-abc")

	require.NoError(t, err)
	assert.Equal(t, 42, orderID)
}

func TestAddressClient_GetDefaultAddressNotFound(t *testing.T) {
	rest := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"No default address"}`))
	})

	address, err := NewAddressClient(rest).GetDefaultAddress(context.Background(), "tok-abc")

	require.NoError(t, err)
	assert.Nil(t, address)
}

func TestClient_BreakerOpensAfterConsecutiveServerErrors(t *testing.T) {
	rest := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	cart := NewCartClient(rest)

	for i := 0; i < 6; i++ {
		_, err := cart.GetCart(context.Background(), "tok-abc")
		require.Error(t, err)
	}

	_, err := cart.GetCart(context.Background(), "tok-abc")
	require.Error(t, err)
	var upstream *UpstreamError
	assert.False(t, errors.As(err, &upstream), "open breaker should fail fast, not reach upstream")
}
