package routes

import (
	"github.com/PayAidPayments/payaid-crm-sub001/middleware"
	"github.com/PayAidPayments/payaid-crm-sub001/models"

	"github.com/gin-gonic/gin"
)

// RegisterMarketingRoutes registers nurture sequence and social media routes.
func RegisterMarketingRoutes(router *gin.Engine, deps Dependencies) {
	marketingRoutes := router.Group("/api/marketing")
	marketingRoutes.Use(middleware.AuthMiddleware(deps.JWTKey), middleware.RequireModule(models.ModuleCRM))

	marketingRoutes.PUT("/sequences/:id/pause", deps.Sequences.PauseEnrollment)
	marketingRoutes.GET("/social-media/scheduled", deps.SocialMedia.GetScheduledPosts)
}
