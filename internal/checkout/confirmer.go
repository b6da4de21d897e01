package checkout

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/SamuelSnowball/Bookstore/internal/domain"
	"github.com/SamuelSnowball/Bookstore/internal/events"
	"github.com/SamuelSnowball/Bookstore/internal/repository"
	"github.com/SamuelSnowball/Bookstore/pkg/metrics"
)

// SessionStatusGetter queries the payment processor's view of a session.
type SessionStatusGetter interface {
	GetSessionStatus(ctx context.Context, sessionID string) (domain.SessionState, error)
}

// OrderFinalizer marks the order behind a paid session as complete.
type OrderFinalizer interface {
	CompleteOrder(ctx context.Context, token, sessionID string) (int, error)
}

// FinalizationRecorder writes the at-most-once finalization marker.
type FinalizationRecorder interface {
	MarkFinalized(ctx context.Context, record *domain.FinalizationRecord) error
}

// CompletedPublisher announces a finalized checkout.
type CompletedPublisher interface {
	PublishCheckoutCompleted(event events.CheckoutCompletedEvent) error
}

// FailedPublisher announces a checkout whose payment did not complete.
type FailedPublisher interface {
	PublishPaymentFailed(event events.PaymentFailedEvent) error
}

// Confirmer resolves the payment outcome after the user returns from the
// hosted payment page, finalizing the order at most once per confirmation.
type Confirmer struct {
	sessions     SessionStatusGetter
	orders       OrderFinalizer
	recorder     FinalizationRecorder
	completed    CompletedPublisher
	compensation FailedPublisher
	metrics      *metrics.CheckoutMetrics
	logger       *zap.Logger
}

func NewConfirmer(
	sessions SessionStatusGetter,
	orders OrderFinalizer,
	recorder FinalizationRecorder,
	completed CompletedPublisher,
	compensation FailedPublisher,
	checkoutMetrics *metrics.CheckoutMetrics,
	logger *zap.Logger,
) *Confirmer {
	return &Confirmer{
		sessions:     sessions,
		orders:       orders,
		recorder:     recorder,
		completed:    completed,
		compensation: compensation,
		metrics:      checkoutMetrics,
		logger:       logger,
	}
}

// Confirmation is one run of the confirmation flow, latched like a checkout
// activation.
type Confirmation struct {
	confirmer *Confirmer

	mu      sync.Mutex
	guard   Guard
	outcome domain.ConfirmationOutcome
}

func (c *Confirmer) NewConfirmation() *Confirmation {
	return &Confirmation{confirmer: c}
}

// Run determines the payment outcome for the session in the return URL.
// Without a session id nothing is queried. A duplicate trigger returns the
// stored outcome untouched.
func (c *Confirmation) Run(ctx context.Context, sessionID, token string) domain.ConfirmationOutcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	if sessionID == "" {
		c.outcome = domain.ConfirmationOutcome{Processed: false}
		return c.outcome
	}

	if !c.guard.FirstAttempt() {
		return c.outcome
	}

	c.outcome = c.confirmer.run(ctx, sessionID, token)
	return c.outcome
}

func (c *Confirmer) run(ctx context.Context, sessionID, token string) domain.ConfirmationOutcome {
	start := time.Now()

	state, err := c.sessions.GetSessionStatus(ctx, sessionID)
	if err != nil {
		c.metrics.Activations.WithLabelValues("confirmation", "failed").Inc()
		c.metrics.StageFailures.WithLabelValues("poll_status").Inc()
		c.logger.Error("Failed to query session status",
			zap.String("session_id", sessionID),
			zap.Error(err))
		return domain.ConfirmationOutcome{Processed: true, Success: false}
	}

	outcome := domain.ConfirmationOutcome{
		Processed:       true,
		Success:         state.Status == domain.SessionStatusComplete,
		PaymentIntentID: state.PaymentIntentID,
	}

	if state.Status == domain.SessionStatusComplete && state.PaymentStatus == domain.PaymentStatusPaid {
		// Finalization is fire-and-forget from the user's point of view: a
		// failure here must not tell a paying customer their payment failed.
		orderID, err := c.orders.CompleteOrder(ctx, token, sessionID)
		if err != nil {
			c.metrics.StageFailures.WithLabelValues("finalize").Inc()
			c.logger.Error("Failed to finalize order",
				zap.String("session_id", sessionID),
				zap.Error(err))
		} else {
			outcome.OrderID = orderID
			c.recordFinalized(ctx, sessionID, orderID, state.PaymentIntentID)
			c.publishCompleted(sessionID, orderID, state.PaymentIntentID)
		}
	} else if !outcome.Success {
		c.publishFailed(sessionID, state.Status)
	}

	result := "failed"
	if outcome.Success {
		result = "succeeded"
	}
	c.metrics.Activations.WithLabelValues("confirmation", result).Inc()
	c.metrics.DurationMS.WithLabelValues("confirmation").Observe(float64(time.Since(start).Milliseconds()))

	return outcome
}

func (c *Confirmer) recordFinalized(ctx context.Context, sessionID string, orderID int, paymentIntentID string) {
	err := c.recorder.MarkFinalized(ctx, &domain.FinalizationRecord{
		SessionID:       sessionID,
		OrderID:         orderID,
		PaymentIntentID: paymentIntentID,
		FinalizedAt:     time.Now(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyFinalized) {
			c.logger.Warn("Session finalized by another process",
				zap.String("session_id", sessionID),
				zap.Int("order_id", orderID))
			return
		}
		c.logger.Error("Failed to record finalization",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}
}

func (c *Confirmer) publishCompleted(sessionID string, orderID int, paymentIntentID string) {
	err := c.completed.PublishCheckoutCompleted(events.CheckoutCompletedEvent{
		EventID:         uuid.New().String(),
		SessionID:       sessionID,
		OrderID:         orderID,
		PaymentIntentID: paymentIntentID,
		Timestamp:       time.Now(),
	})
	if err != nil {
		c.logger.Error("Failed to publish checkout completed event",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}
}

func (c *Confirmer) publishFailed(sessionID, status string) {
	err := c.compensation.PublishPaymentFailed(events.PaymentFailedEvent{
		EventID:   uuid.New().String(),
		SessionID: sessionID,
		Status:    status,
		Reason:    "payment not complete",
		Timestamp: time.Now(),
	})
	if err != nil {
		c.logger.Error("Failed to publish payment failed event",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}
}
