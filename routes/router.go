package routes

import (
	"context"
	"net/http"

	"github.com/PayAidPayments/payaid-crm-sub001/controllers"
	"github.com/PayAidPayments/payaid-crm-sub001/middleware"
	"github.com/PayAidPayments/payaid-crm-sub001/repository"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// Dependencies are the handlers and infrastructure the routes are built from.
type Dependencies struct {
	JWTKey      []byte
	Allocation  *controllers.AllocationController
	Sequences   *controllers.SequenceController
	SocialMedia *controllers.SocialMediaController
	// DB backs /api/db-status. The route exists only when DB is set and
	// Debug is true, and it requires a session.
	DB    *mongo.Database
	Debug bool
	// Metrics serves /metrics; the route is skipped when nil.
	Metrics http.Handler
}

// RegisterRoutes registers every route on router.
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	RegisterCRMRoutes(router, deps)
	RegisterMarketingRoutes(router, deps)

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if deps.DB != nil && deps.Debug {
		router.GET("/api/db-status", middleware.AuthMiddleware(deps.JWTKey), func(c *gin.Context) {
			ctx, cancel := context.WithTimeout(c.Request.Context(), repository.DefaultTimeout)
			defer cancel()
			c.JSON(http.StatusOK, repository.GetDatabaseStatus(ctx, deps.DB))
		})
	}

	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics))
	}
}
