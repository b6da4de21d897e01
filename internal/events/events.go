package events

import (
	"time"

	"github.com/SamuelSnowball/Bookstore/internal/domain"
)

type CheckoutCompletedEvent struct {
	EventID         string               `json:"event_id"`
	SessionID       string               `json:"session_id"`
	OrderID         int                  `json:"order_id"`
	PaymentIntentID string               `json:"payment_intent_id"`
	TotalAmount     float64              `json:"total_amount"`
	Items           []domain.PaymentItem `json:"items,omitempty"`
	Timestamp       time.Time            `json:"timestamp"`
	RequestID       string               `json:"request_id,omitempty"`
}

type PaymentFailedEvent struct {
	EventID   string    `json:"event_id"`
	SessionID string    `json:"session_id"`
	Status    string    `json:"status"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}
