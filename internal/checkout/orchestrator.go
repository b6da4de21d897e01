package checkout

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SamuelSnowball/Bookstore/internal/client"
	"github.com/SamuelSnowball/Bookstore/internal/domain"
	"github.com/SamuelSnowball/Bookstore/pkg/metrics"
)

// CartReader fetches the authenticated user's cart.
type CartReader interface {
	GetCart(ctx context.Context, token string) ([]domain.CartItem, error)
}

// OrderInitiator converts the cart into a persisted order.
type OrderInitiator interface {
	CreateFromCart(ctx context.Context, token string) (int, error)
}

// SessionCreator requests a hosted-payment session for an order and returns
// its client secret.
type SessionCreator interface {
	CreateCheckoutSession(ctx context.Context, token string, req domain.PaymentRequest) (string, error)
}

// ActivationRecorder persists the trace of an activation. Recording is best
// effort and never changes the activation's outcome.
type ActivationRecorder interface {
	SaveActivation(ctx context.Context, record *domain.ActivationRecord) error
}

// Orchestrator sequences cart fetch, order creation and session creation.
// It is stateless; per-run state lives on the Activation it hands out.
type Orchestrator struct {
	cart     CartReader
	orders   OrderInitiator
	payments SessionCreator
	recorder ActivationRecorder
	metrics  *metrics.CheckoutMetrics
	logger   *zap.Logger
}

func NewOrchestrator(
	cart CartReader,
	orders OrderInitiator,
	payments SessionCreator,
	recorder ActivationRecorder,
	checkoutMetrics *metrics.CheckoutMetrics,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		cart:     cart,
		orders:   orders,
		payments: payments,
		recorder: recorder,
		metrics:  checkoutMetrics,
		logger:   logger,
	}
}

// Activation is one run of the checkout flow. The guard makes the flow fire
// at most once per activation: a second Run returns the stored result and
// performs no network calls.
type Activation struct {
	orchestrator *Orchestrator
	id           string

	mu     sync.Mutex
	guard  Guard
	result domain.CheckoutResult
}

func (o *Orchestrator) NewActivation() *Activation {
	return &Activation{
		orchestrator: o,
		id:           uuid.New().String(),
		result:       domain.CheckoutLoading(),
	}
}

// Run drives the activation to a terminal state and returns it. Without a
// token it fails before the guard is consumed and before any network call.
func (a *Activation) Run(ctx context.Context, token string) domain.CheckoutResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	if token == "" {
		a.result = domain.CheckoutError(domain.ErrNotAuthenticated.Error())
		return a.result
	}

	if !a.guard.FirstAttempt() {
		return a.result
	}

	a.result = a.orchestrator.run(ctx, a.id, token)
	return a.result
}

// Result returns the activation's current result without triggering it.
func (a *Activation) Result() domain.CheckoutResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.result
}

func (o *Orchestrator) run(ctx context.Context, activationID, token string) domain.CheckoutResult {
	start := time.Now()

	items, err := o.cart.GetCart(ctx, token)
	if err != nil {
		return o.fail(activationID, "fetch_cart", err)
	}
	if len(items) == 0 {
		return o.fail(activationID, "empty_cart", domain.ErrEmptyCart)
	}

	cartTotal := domain.CartTotal(items)

	orderID, err := o.orders.CreateFromCart(ctx, token)
	if err != nil {
		return o.fail(activationID, "create_order", err)
	}

	o.record(ctx, &domain.ActivationRecord{
		ActivationID: activationID,
		OrderID:      orderID,
		CartTotal:    cartTotal,
		State:        domain.ActivationStateOrderCreated,
		CreatedAt:    start,
		UpdatedAt:    time.Now(),
	})

	clientSecret, err := o.payments.CreateCheckoutSession(ctx, token, domain.PaymentRequest{
		OrderID:     orderID,
		TotalAmount: cartTotal,
		Items:       domain.PaymentItems(items),
	})
	if err != nil {
		return o.fail(activationID, "create_session", err)
	}

	o.record(ctx, &domain.ActivationRecord{
		ActivationID: activationID,
		OrderID:      orderID,
		CartTotal:    cartTotal,
		State:        domain.ActivationStateSessionCreated,
		CreatedAt:    start,
		UpdatedAt:    time.Now(),
	})

	o.metrics.Activations.WithLabelValues("checkout", "ready").Inc()
	o.metrics.DurationMS.WithLabelValues("checkout").Observe(float64(time.Since(start).Milliseconds()))

	o.logger.Info("Checkout session created",
		zap.String("activation_id", activationID),
		zap.Int("order_id", orderID),
		zap.Float64("cart_total", cartTotal))

	return domain.CheckoutReady(cartTotal, clientSecret)
}

func (o *Orchestrator) fail(activationID, stage string, err error) domain.CheckoutResult {
	o.metrics.Activations.WithLabelValues("checkout", "error").Inc()
	o.metrics.StageFailures.WithLabelValues(stage).Inc()

	o.logger.Error("Checkout activation failed",
		zap.String("activation_id", activationID),
		zap.String("stage", stage),
		zap.Error(err))

	return domain.CheckoutError(userMessage(err))
}

func (o *Orchestrator) record(ctx context.Context, record *domain.ActivationRecord) {
	if err := o.recorder.SaveActivation(ctx, record); err != nil {
		o.logger.Error("Failed to save activation record",
			zap.String("activation_id", record.ActivationID),
			zap.Int("order_id", record.OrderID),
			zap.Error(err))
	}
}

// userMessage converts a failure into the single user-facing error string.
// Upstream messages pass through verbatim.
func userMessage(err error) string {
	var upstream *client.UpstreamError
	if errors.As(err, &upstream) {
		return upstream.Message
	}
	return err.Error()
}
