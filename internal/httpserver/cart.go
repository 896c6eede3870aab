package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
)

type cartLineRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type cartRequest struct {
	Items []cartLineRequest `json:"items"`
}

func (h *handlers) cartSummary(c *gin.Context) {
	summary, ok := h.priceCart(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *handlers) cartCheckout(c *gin.Context) {
	summary, ok := h.priceCart(c)
	if !ok {
		return
	}
	if len(summary.Items) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "cart is empty"})
		return
	}
	session, err := h.deps.CheckoutSvc.ForCart(c.Request.Context(), summary, bearerToken(c), h.origin(c))
	h.respondCheckout(c, session, err)
}

// priceCart rebuilds the posted cart from catalog prices. It writes the error
// response itself and returns false on failure.
func (h *handlers) priceCart(c *gin.Context) (domain.CartSummary, bool) {
	var req cartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart payload"})
		return domain.CartSummary{}, false
	}

	cart := cartsvc.New()
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			continue
		}
		p, err := h.deps.ProductSvc.Get(c.Request.Context(), line.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unknown product: " + line.ProductID})
				return domain.CartSummary{}, false
			}
			h.logger.Printf("cart pricing product=%s error=%v", line.ProductID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to price cart"})
			return domain.CartSummary{}, false
		}
		if err := cart.Add(*p, line.Quantity); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return domain.CartSummary{}, false
		}
	}
	return cart.Summary(), true
}
