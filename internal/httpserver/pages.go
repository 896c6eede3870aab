package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/service/outcome"
	shippingsvc "storefront/internal/service/shipping"
)

type shippingPage struct {
	Form      shippingsvc.Form
	SessionID string
	Error     string
}

func (h *handlers) paymentSuccess(c *gin.Context) {
	view := outcome.ForSuccess(c.Request.URL.Query())
	if view.Redirecting {
		c.Header("Refresh", fmt.Sprintf("%d; url=%s", int(view.Delay/time.Second), view.RedirectTo))
	}
	c.HTML(http.StatusOK, "success.tmpl", view)
}

func (h *handlers) paymentCanceled(c *gin.Context) {
	c.HTML(http.StatusOK, "canceled.tmpl", outcome.ForCanceled())
}

func (h *handlers) shippingForm(c *gin.Context) {
	c.HTML(http.StatusOK, "shipping.tmpl", shippingPage{
		Form:      shippingsvc.NewForm(),
		SessionID: c.Query(outcome.SessionIDParam),
	})
}

func (h *handlers) submitShipping(c *gin.Context) {
	sessionID := c.PostForm(outcome.SessionIDParam)
	if sessionID == "" {
		sessionID = c.Query(outcome.SessionIDParam)
	}
	var form shippingsvc.Form
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "shipping.tmpl", shippingPage{
			Form:      shippingsvc.NewForm(),
			SessionID: sessionID,
			Error:     "Could not read the submitted form.",
		})
		return
	}

	capture := h.deps.ShippingSvc.NewCapture(sessionID)
	target, err := capture.Submit(c.Request.Context(), form)
	if err != nil {
		page := shippingPage{Form: capture.Form(), SessionID: sessionID}
		var verr *shippingsvc.ValidationError
		if errors.As(err, &verr) {
			page.Error = "Please fill in all required fields."
			c.HTML(http.StatusUnprocessableEntity, "shipping.tmpl", page)
			return
		}
		h.logger.Printf("shipping details: session_id=%q error=%v", sessionID, err)
		page.Error = "We couldn't save your shipping details. Please try again."
		c.HTML(http.StatusInternalServerError, "shipping.tmpl", page)
		return
	}
	c.Redirect(http.StatusSeeOther, target)
}

func (h *handlers) shippingRecord(c *gin.Context) {
	rec, err := h.deps.ShippingSvc.Latest(c.Request.Context(), c.Query(outcome.SessionIDParam))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(c, "no shipping details saved")
			return
		}
		h.logger.Printf("shipping record: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load shipping details"})
		return
	}
	c.JSON(http.StatusOK, rec)
}
