package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	reviewsvc "storefront/internal/service/review"
)

func (h *handlers) listProducts(c *gin.Context) {
	products := h.deps.ProductSvc.List(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *handlers) getProduct(c *gin.Context) {
	detail, err := h.deps.ProductSvc.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(c, "product not found")
			return
		}
		h.logger.Printf("product detail id=%s error=%v", c.Param("id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load product"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *handlers) listReviews(c *gin.Context) {
	id := c.Param("id")
	if !h.productExists(c, id) {
		return
	}
	c.JSON(http.StatusOK, h.deps.ReviewSvc.List(c.Request.Context(), id))
}

func (h *handlers) submitReview(c *gin.Context) {
	id := c.Param("id")
	if !h.productExists(c, id) {
		return
	}
	var in reviewsvc.SubmitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review payload"})
		return
	}
	summary, err := h.deps.ReviewSvc.Submit(c.Request.Context(), id, in)
	if err != nil {
		if errors.Is(err, reviewsvc.ErrIncompleteReview) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		h.logger.Printf("submit review product=%s error=%v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save review"})
		return
	}
	c.JSON(http.StatusCreated, summary)
}

// productExists writes a 404 and returns false when id names no product.
func (h *handlers) productExists(c *gin.Context, id string) bool {
	_, err := h.deps.ProductSvc.Get(c.Request.Context(), id)
	if err == nil {
		return true
	}
	if errors.Is(err, domain.ErrNotFound) {
		notFound(c, "product not found")
		return false
	}
	h.logger.Printf("product lookup id=%s error=%v", id, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load product"})
	return false
}
