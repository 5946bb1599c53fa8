package routes

import (
	"github.com/PayAidPayments/payaid-crm-sub001/middleware"
	"github.com/PayAidPayments/payaid-crm-sub001/models"

	"github.com/gin-gonic/gin"
)

// RegisterCRMRoutes registers the lead routes.
func RegisterCRMRoutes(router *gin.Engine, deps Dependencies) {
	leadRoutes := router.Group("/api/crm/leads")
	leadRoutes.Use(middleware.AuthMiddleware(deps.JWTKey), middleware.RequireModule(models.ModuleCRM))

	leadRoutes.GET("/:id/allocation-suggestions", deps.Allocation.GetAllocationSuggestions)
}
