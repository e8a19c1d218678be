package main

import (
	"collections-center/internal/httpapi"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, h httpapi.Handlers) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	collections := r.Group("/collections")
	{
		collections.POST("/verify", h.Verify)
		collections.POST("/initiate-call", h.InitiateCall)
		collections.GET("/status", h.CallStatus)
		collections.DELETE("/call", h.EndCall)
		collections.POST("/payment", h.SubmitPayment)
		collections.GET("/payment-options", h.PaymentOptions)
	}

	r.POST("/livekit/token", h.IssueToken)

	// Portal sessions drive the self-service flow state machine.
	portal := r.Group("/portal/sessions")
	{
		portal.POST("", h.CreatePortalSession)
		portal.GET("/:id", h.GetPortalSession)
		portal.POST("/:id/call/start", h.PortalStartCall)
		portal.POST("/:id/call/end", h.PortalEndCall)
		portal.POST("/:id/payment/start", h.PortalStartPayment)
		portal.POST("/:id/payment/cancel", h.PortalCancelPayment)
		portal.POST("/:id/payment/complete", h.PortalCompletePayment)
	}
}
