package domain

import (
	"errors"
	"time"
)

// Terminal business errors of a checkout activation. Their messages are the
// user-facing error strings.
var (
	ErrNotAuthenticated = errors.New("Not authenticated")
	ErrEmptyCart        = errors.New("Cart is empty")
)

// CheckoutPhase discriminates the result exposed to callers of a checkout
// activation.
type CheckoutPhase string

const (
	PhaseLoading CheckoutPhase = "loading"
	PhaseError   CheckoutPhase = "error"
	PhaseReady   CheckoutPhase = "ready"
)

// CheckoutResult is the tagged result of one checkout activation. Exactly one
// of the Error and Ready payloads is meaningful, selected by Phase.
type CheckoutResult struct {
	Phase        CheckoutPhase `json:"phase"`
	Err          string        `json:"error,omitempty"`
	CartTotal    float64       `json:"cartTotal,omitempty"`
	ClientSecret string        `json:"clientSecret,omitempty"`
}

func CheckoutLoading() CheckoutResult {
	return CheckoutResult{Phase: PhaseLoading}
}

func CheckoutError(msg string) CheckoutResult {
	return CheckoutResult{Phase: PhaseError, Err: msg}
}

func CheckoutReady(cartTotal float64, clientSecret string) CheckoutResult {
	return CheckoutResult{Phase: PhaseReady, CartTotal: cartTotal, ClientSecret: clientSecret}
}

// ConfirmationOutcome is the terminal result of one payment confirmation.
// Processed is false when no session id was present, so nothing was queried.
// Success tracks the session status alone; a failed finalization does not
// flip it.
type ConfirmationOutcome struct {
	Processed       bool   `json:"processed"`
	Success         bool   `json:"isSuccess"`
	PaymentIntentID string `json:"paymentIntentId,omitempty"`
	OrderID         int    `json:"orderId,omitempty"`
}

// ActivationState tracks how far a persisted checkout activation got.
type ActivationState string

const (
	ActivationStateOrderCreated   ActivationState = "ORDER_CREATED"
	ActivationStateSessionCreated ActivationState = "SESSION_CREATED"
)

// ActivationRecord is the persisted trace of a checkout activation that
// reached order creation.
type ActivationRecord struct {
	ActivationID string          `json:"activation_id"`
	OrderID      int             `json:"order_id"`
	CartTotal    float64         `json:"cart_total"`
	State        ActivationState `json:"state"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// FinalizationRecord marks a payment session whose order was finalized. At
// most one such record can exist per session.
type FinalizationRecord struct {
	SessionID       string    `json:"session_id"`
	OrderID         int       `json:"order_id"`
	PaymentIntentID string    `json:"payment_intent_id"`
	FinalizedAt     time.Time `json:"finalized_at"`
}
