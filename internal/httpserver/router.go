package httpserver

import (
	"context"
	"embed"
	"html/template"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/metrics"
	checkoutsvc "storefront/internal/service/checkout"
	reviewsvc "storefront/internal/service/review"
	shippingsvc "storefront/internal/service/shipping"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// checkoutAllowHeaders are the request headers browsers may send to the checkout endpoints.
var checkoutAllowHeaders = []string{"authorization", "x-client-info", "apikey", "content-type"}

type productService interface {
	List(ctx context.Context) []domain.Product
	Get(ctx context.Context, id string) (*domain.Product, error)
	Detail(ctx context.Context, id string) (*domain.ProductDetail, error)
}

type reviewService interface {
	List(ctx context.Context, productID string) domain.ReviewSummary
	Submit(ctx context.Context, productID string, in reviewsvc.SubmitInput) (domain.ReviewSummary, error)
}

type checkoutService interface {
	Create(ctx context.Context, in checkoutsvc.Input) (*domain.CheckoutSession, error)
	ForCart(ctx context.Context, summary domain.CartSummary, bearerToken, origin string) (*domain.CheckoutSession, error)
}

type shippingService interface {
	NewCapture(sessionID string) *shippingsvc.Capture
	Latest(ctx context.Context, sessionID string) (*domain.ShippingDetails, error)
}

// Deps groups the services the router dispatches to.
type Deps struct {
	ProductSvc  productService
	ReviewSvc   reviewService
	CheckoutSvc checkoutService
	ShippingSvc shippingService
	Metrics     *metrics.ServerMetrics
	// PublicURL is used as checkout origin when a request carries no Origin header.
	PublicURL string
}

// buildRouter wires routes for the API and the payment outcome pages.
func buildRouter(logger *log.Logger, db pinger, deps Deps) (*gin.Engine, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewServerMetrics("api")
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery(), deps.Metrics.Middleware())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:           true,
		AllowMethods:              []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:              checkoutAllowHeaders,
		OptionsResponseStatusCode: http.StatusOK,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	h := &handlers{deps: deps, logger: logger}

	api := router.Group("/api")
	api.GET("/products", h.listProducts)
	api.GET("/products/:id", h.getProduct)
	api.GET("/products/:id/reviews", h.listReviews)
	api.POST("/products/:id/reviews", h.submitReview)
	api.POST("/cart/summary", h.cartSummary)
	api.POST("/cart/checkout", h.cartCheckout)
	api.GET("/shipping-details", h.shippingRecord)

	for _, path := range []string{"/functions/v1/create-payment", "/api/checkout"} {
		router.OPTIONS(path, preflightHandler)
		router.POST(path, h.createPayment)
	}

	router.GET("/payment-success", h.paymentSuccess)
	router.GET("/payment-canceled", h.paymentCanceled)
	router.GET("/shipping-details", h.shippingForm)
	router.POST("/shipping-details", h.submitShipping)

	return router, nil
}

type handlers struct {
	deps   Deps
	logger *log.Logger
}

func notFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"error": msg, "home": "/"})
}
