package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/metrics"
	checkoutsvc "storefront/internal/service/checkout"
)

// createPaymentRequest mirrors the checkout body; every field is optional.
type createPaymentRequest struct {
	Product  *string `json:"product"`
	Amount   *int64  `json:"amount"`
	Currency *string `json:"currency"`
}

func preflightHandler(c *gin.Context) {
	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Access-Control-Allow-Headers", strings.Join(checkoutAllowHeaders, ", "))
	c.Status(http.StatusOK)
}

func (h *handlers) createPayment(c *gin.Context) {
	in := checkoutsvc.Input{
		BearerToken: bearerToken(c),
		Origin:      h.origin(c),
	}

	// Malformed or empty bodies fall back to the demo product.
	raw, err := io.ReadAll(c.Request.Body)
	if err == nil && len(raw) > 0 {
		var req createPaymentRequest
		if err := json.Unmarshal(raw, &req); err == nil {
			if req.Product != nil {
				in.Product = *req.Product
			}
			if req.Amount != nil {
				in.AmountCents = *req.Amount
				in.HasAmount = true
			}
			if req.Currency != nil {
				in.Currency = *req.Currency
			}
		} else {
			h.logger.Printf("create-payment: ignoring malformed body: %v", err)
		}
	}

	session, err := h.deps.CheckoutSvc.Create(c.Request.Context(), in)
	h.respondCheckout(c, session, err)
}

// respondCheckout writes the checkout result unless the client already went away.
func (h *handlers) respondCheckout(c *gin.Context, session *domain.CheckoutSession, err error) {
	c.Header("Access-Control-Allow-Origin", "*")
	if c.Request.Context().Err() != nil {
		h.deps.Metrics.ObserveCheckout(metrics.OutcomeAbandoned)
		c.Abort()
		return
	}
	switch {
	case err == nil:
		h.deps.Metrics.ObserveCheckout(metrics.OutcomeCreated)
		c.JSON(http.StatusOK, gin.H{"url": session.URL})
	case errors.Is(err, checkoutsvc.ErrInvalidAmount):
		h.deps.Metrics.ObserveCheckout(metrics.OutcomeRejected)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, checkoutsvc.ErrNotConfigured):
		h.deps.Metrics.ObserveCheckout(metrics.OutcomeNotConfigured)
		h.logger.Printf("create-payment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": checkoutsvc.ErrNotConfigured.Error()})
	default:
		h.deps.Metrics.ObserveCheckout(metrics.OutcomeProviderFailed)
		h.logger.Printf("create-payment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func bearerToken(c *gin.Context) string {
	auth := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

func (h *handlers) origin(c *gin.Context) string {
	if o := strings.TrimSpace(c.GetHeader("Origin")); o != "" {
		return o
	}
	return h.deps.PublicURL
}
