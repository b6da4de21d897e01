package checkout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SamuelSnowball/Bookstore/internal/client"
	"github.com/SamuelSnowball/Bookstore/internal/domain"
	"github.com/SamuelSnowball/Bookstore/pkg/metrics"
)

// Registered once per test binary; prometheus panics on double registration.
var testMetrics = metrics.NewCheckoutMetrics()

func price(v float64) *float64 {
	return &v
}

func newTestOrchestrator(cart *MockCartReader, orders *MockOrderInitiator, payments *MockSessionCreator, recorder *MockRecorder) *Orchestrator {
	return NewOrchestrator(cart, orders, payments, recorder, testMetrics, zap.NewNop())
}

func TestActivation_HappyPath(t *testing.T) {
	log := &callLog{}
	cart := &MockCartReader{
		Items: []domain.CartItem{
			{BookID: 1, Title: "The Forgotten Chronicles", Price: price(15), BookQuantity: 1},
		},
		log: log,
	}
	orders := &MockOrderInitiator{OrderID: 42, log: log}
	payments := &MockSessionCreator{ClientSecret: "cs_test_secret", log: log}
	recorder := &MockRecorder{}

	orchestrator := newTestOrchestrator(cart, orders, payments, recorder)
	result := orchestrator.NewActivation().Run(context.Background(), "token-1")

	require.Equal(t, domain.PhaseReady, result.Phase)
	assert.Equal(t, 15.0, result.CartTotal)
	assert.Equal(t, "cs_test_secret", result.ClientSecret)

	require.NotNil(t, payments.Request)
	assert.Equal(t, 42, payments.Request.OrderID)
	assert.Equal(t, 15.0, payments.Request.TotalAmount)
	assert.Equal(t, []domain.PaymentItem{
		{BookID: 1, Title: "The Forgotten Chronicles", Price: 15, Quantity: 1},
	}, payments.Request.Items)

	// Strictly sequential: cart before order, order before session.
	assert.Equal(t, []string{"fetch_cart", "create_order", "create_session"}, log.calls)
}

func TestActivation_DuplicateRunDoesNotRepeatCalls(t *testing.T) {
	cart := &MockCartReader{
		Items: []domain.CartItem{{BookID: 1, Price: price(10), BookQuantity: 2}},
	}
	orders := &MockOrderInitiator{OrderID: 7}
	payments := &MockSessionCreator{ClientSecret: "cs_once"}

	orchestrator := newTestOrchestrator(cart, orders, payments, &MockRecorder{})
	activation := orchestrator.NewActivation()

	first := activation.Run(context.Background(), "token-1")
	second := activation.Run(context.Background(), "token-1")

	assert.Equal(t, first, second)
	assert.Equal(t, 1, cart.Calls)
	assert.Equal(t, 1, orders.Calls)
	assert.Equal(t, 1, payments.Calls)
}

func TestActivation_NoToken(t *testing.T) {
	cart := &MockCartReader{}
	orders := &MockOrderInitiator{}
	payments := &MockSessionCreator{}

	orchestrator := newTestOrchestrator(cart, orders, payments, &MockRecorder{})
	result := orchestrator.NewActivation().Run(context.Background(), "")

	require.Equal(t, domain.PhaseError, result.Phase)
	assert.Equal(t, "Not authenticated", result.Err)
	assert.Zero(t, cart.Calls)
	assert.Zero(t, orders.Calls)
	assert.Zero(t, payments.Calls)
}

func TestActivation_EmptyCartShortCircuits(t *testing.T) {
	cart := &MockCartReader{Items: nil}
	orders := &MockOrderInitiator{}
	payments := &MockSessionCreator{}

	orchestrator := newTestOrchestrator(cart, orders, payments, &MockRecorder{})
	result := orchestrator.NewActivation().Run(context.Background(), "token-1")

	require.Equal(t, domain.PhaseError, result.Phase)
	assert.Equal(t, "Cart is empty", result.Err)
	assert.Zero(t, orders.Calls)
	assert.Zero(t, payments.Calls)
}

func TestActivation_UpstreamMessageSurfacedVerbatim(t *testing.T) {
	cart := &MockCartReader{
		Items: []domain.CartItem{{BookID: 1, Price: price(5), BookQuantity: 1}},
	}
	orders := &MockOrderInitiator{
		Err: &client.UpstreamError{Service: "order-service", StatusCode: 500, Message: "order store unavailable"},
	}
	payments := &MockSessionCreator{}

	orchestrator := newTestOrchestrator(cart, orders, payments, &MockRecorder{})
	result := orchestrator.NewActivation().Run(context.Background(), "token-1")

	require.Equal(t, domain.PhaseError, result.Phase)
	assert.Equal(t, "order store unavailable", result.Err)
	assert.Zero(t, payments.Calls)
}

func TestActivation_SessionFailureIsTerminal(t *testing.T) {
	cart := &MockCartReader{
		Items: []domain.CartItem{{BookID: 1, Price: price(5), BookQuantity: 1}},
	}
	orders := &MockOrderInitiator{OrderID: 9}
	payments := &MockSessionCreator{
		Err: &client.UpstreamError{Service: "payment-service", StatusCode: 502, Message: "stripe unreachable"},
	}

	orchestrator := newTestOrchestrator(cart, orders, payments, &MockRecorder{})
	activation := orchestrator.NewActivation()
	result := activation.Run(context.Background(), "token-1")

	require.Equal(t, domain.PhaseError, result.Phase)
	assert.Equal(t, "stripe unreachable", result.Err)

	// Terminal: a retriggered activation keeps the error and stays quiet.
	again := activation.Run(context.Background(), "token-1")
	assert.Equal(t, result, again)
	assert.Equal(t, 1, payments.Calls)
}

func TestActivation_RecorderFailureDoesNotChangeOutcome(t *testing.T) {
	cart := &MockCartReader{
		Items: []domain.CartItem{{BookID: 3, Title: "A Book", Price: price(8), BookQuantity: 2}},
	}
	orders := &MockOrderInitiator{OrderID: 11}
	payments := &MockSessionCreator{ClientSecret: "cs_ok"}
	recorder := &MockRecorder{SaveErr: assert.AnError}

	orchestrator := newTestOrchestrator(cart, orders, payments, recorder)
	result := orchestrator.NewActivation().Run(context.Background(), "token-1")

	require.Equal(t, domain.PhaseReady, result.Phase)
	assert.Equal(t, 16.0, result.CartTotal)
	require.Len(t, recorder.Activations, 2)
	assert.Equal(t, domain.ActivationStateOrderCreated, recorder.Activations[0].State)
	assert.Equal(t, domain.ActivationStateSessionCreated, recorder.Activations[1].State)
}
