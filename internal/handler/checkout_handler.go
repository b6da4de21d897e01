package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/SamuelSnowball/Bookstore/internal/checkout"
	"github.com/SamuelSnowball/Bookstore/internal/domain"
	"github.com/SamuelSnowball/Bookstore/internal/repository"
)

// ActivationStore reads back persisted activation traces.
type ActivationStore interface {
	GetActivation(ctx context.Context, activationID string) (*domain.ActivationRecord, error)
}

type CheckoutHandler struct {
	orchestrator *checkout.Orchestrator
	confirmer    *checkout.Confirmer
	activations  ActivationStore
	logger       *zap.Logger
}

func NewCheckoutHandler(orchestrator *checkout.Orchestrator, confirmer *checkout.Confirmer, activations ActivationStore, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		orchestrator: orchestrator,
		confirmer:    confirmer,
		activations:  activations,
		logger:       logger,
	}
}

// CreateSession runs one checkout activation for the caller and returns
// either a ready session (client secret plus cart total) or its terminal
// error.
func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	token := bearerToken(c)
	requestID := c.GetString("request_id")

	activation := h.orchestrator.NewActivation()
	result := activation.Run(c.Request.Context(), token)

	switch result.Phase {
	case domain.PhaseReady:
		c.JSON(http.StatusOK, result)
	case domain.PhaseError:
		h.logger.Warn("Checkout session not created",
			zap.String("request_id", requestID),
			zap.String("error", result.Err))
		c.JSON(checkoutErrorStatus(result.Err), result)
	default:
		// Run always returns a terminal result; loading here is a bug.
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "checkout did not complete",
			"request_id": requestID,
		})
	}
}

// Complete resolves the payment outcome for the session id in the return
// URL query.
func (h *CheckoutHandler) Complete(c *gin.Context) {
	sessionID := c.Query("session_id")
	token := bearerToken(c)

	confirmation := h.confirmer.NewConfirmation()
	outcome := confirmation.Run(c.Request.Context(), sessionID, token)

	if !outcome.Processed {
		c.JSON(http.StatusBadRequest, gin.H{"error": "session_id is required"})
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// GetActivation returns the persisted trace of a checkout activation.
func (h *CheckoutHandler) GetActivation(c *gin.Context) {
	activationID := c.Param("activationId")

	record, err := h.activations.GetActivation(c.Request.Context(), activationID)
	if err != nil {
		if errors.Is(err, repository.ErrActivationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "activation not found"})
			return
		}
		h.logger.Error("Failed to load activation",
			zap.String("activation_id", activationID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load activation"})
		return
	}
	c.JSON(http.StatusOK, record)
}

func checkoutErrorStatus(msg string) int {
	switch msg {
	case domain.ErrNotAuthenticated.Error():
		return http.StatusUnauthorized
	case domain.ErrEmptyCart.Error():
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

// bearerToken extracts the credential from the Authorization header; empty
// when absent. Validation belongs to the upstream services.
func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if auth == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
}
