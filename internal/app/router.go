package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"corporate/internal/handler"
	"corporate/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	QuotationHandler *handler.QuotationHandler
	TripHandler      *handler.TripHandler
	WebhookHandler   *handler.WebhookHandler
	RedisClient      *redis.Client
	NewRelicApp      *newrelic.Application
	APIKey           string
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Partner API routes: authenticated, localized, idempotent.
	v1 := router.Group("/api/v1")
	v1.Use(middleware.APIKeyMiddleware(deps.APIKey))
	v1.Use(middleware.LanguageMiddleware())
	v1.Use(middleware.IdempotencyMiddleware(deps.RedisClient))
	{
		v1.POST("/quotation/api-corporate", deps.QuotationHandler.CreateQuotation)
		v1.POST("/trip/api-corporate", deps.TripHandler.CreateTrip)
		v1.GET("/trip/api-status-by-corporate/:id", deps.TripHandler.GetStatus)
		v1.POST("/trip/external-cancel-trip", deps.TripHandler.CancelTrip)
		v1.POST("/payment-trip/pay-payment-b2b", deps.TripHandler.ForceComplete)
	}

	// Webhook routes: trip mutations that forward lifecycle events.
	webhook := router.Group("/webhook")
	webhook.Use(middleware.APIKeyMiddleware(deps.APIKey))
	{
		webhook.POST("/trip/:id/status", deps.WebhookHandler.UpdateTripStatus)
		webhook.POST("/trip/:id/cancel", deps.WebhookHandler.CancelTrip)
		webhook.POST("/trip/:id/reassign", deps.WebhookHandler.ReassignTrip)
		webhook.POST("/test", deps.WebhookHandler.Test)
	}

	return router
}
