package router

import (
	"github.com/gin-gonic/gin"

	"payproof/internal/auth"
	"payproof/internal/handler"
	"payproof/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	tokens *auth.TokenService,
	allowedOrigins []string,
	resultH *handler.ResultHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Protected routes - require valid bearer token
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(tokens))

	docs := protected.Group("/documents")
	docs.POST("/parse", resultH.Parse)
	docs.GET("", resultH.List)
	docs.GET("/export", resultH.Export)
	docs.GET("/:id", resultH.GetByID)
	docs.GET("/:id/download", resultH.Download)
	docs.PATCH("/:id/review", resultH.UpdateReview)

	return r
}
