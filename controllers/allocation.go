package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/PayAidPayments/payaid-crm-sub001/models"
	"github.com/PayAidPayments/payaid-crm-sub001/utils"

	"github.com/gin-gonic/gin"
)

// AllocationSuggester ranks reps for a lead.
type AllocationSuggester interface {
	GetAllocationSuggestions(ctx context.Context, contactID, tenantID string) ([]models.AllocationSuggestion, error)
}

// AllocationController serves lead allocation routes.
type AllocationController struct {
	suggester AllocationSuggester
}

// NewAllocationController returns a controller backed by suggester.
func NewAllocationController(suggester AllocationSuggester) *AllocationController {
	return &AllocationController{suggester: suggester}
}

// GetAllocationSuggestions GET /api/crm/leads/:id/allocation-suggestions
func (ac *AllocationController) GetAllocationSuggestions(c *gin.Context) {
	auth, ok := requireAuth(c)
	if !ok {
		return
	}
	contactID := c.Param("id")

	suggestions, err := ac.suggester.GetAllocationSuggestions(c.Request.Context(), contactID, auth.TenantID)
	if err != nil {
		// Typed errors (404) pass through, everything else is a 500.
		var apiErr *utils.ApiError
		if !errors.As(err, &apiErr) {
			err = utils.CreateInternalError("Failed to get allocation suggestions", err)
		}
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"suggestions": suggestions,
	})
}
