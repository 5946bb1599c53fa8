package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/PayAidPayments/payaid-crm-sub001/models"
	"github.com/PayAidPayments/payaid-crm-sub001/repository"
	"github.com/PayAidPayments/payaid-crm-sub001/utils"

	"github.com/gin-gonic/gin"
)

// EnrollmentStore writes nurture enrollment status.
type EnrollmentStore interface {
	UpdateStatus(ctx context.Context, tenantID, id string, status models.EnrollmentStatus) (*models.NurtureEnrollment, error)
}

// SequenceController serves nurture-sequence enrollment routes.
type SequenceController struct {
	enrollments EnrollmentStore
}

// NewSequenceController returns a controller writing through enrollments.
func NewSequenceController(enrollments EnrollmentStore) *SequenceController {
	return &SequenceController{enrollments: enrollments}
}

// PauseEnrollment PUT /api/marketing/sequences/:id/pause
//
// Sets the enrollment to PAUSED for action "pause" and ACTIVE for "resume".
// The write does not consult the current status.
func (sc *SequenceController) PauseEnrollment(c *gin.Context) {
	auth, ok := requireAuth(c)
	if !ok {
		return
	}
	enrollmentID := c.Param("id")

	var req models.PauseSequenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(utils.CreateBadRequestError(`action must be "pause" or "resume"`))
		return
	}

	enrollment, err := sc.enrollments.UpdateStatus(c.Request.Context(), auth.TenantID, enrollmentID, models.StatusForAction(req.Action))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Body is exactly {"error":"Enrollment not found"}.
			_ = c.Error(&utils.ApiError{StatusCode: http.StatusNotFound, Message: "Enrollment not found"})
			return
		}
		_ = c.Error(utils.CreateInternalError("Failed to update enrollment", err))
		return
	}

	utils.LogInfo(map[string]interface{}{
		"tenantId":     auth.TenantID,
		"userId":       auth.UserID,
		"enrollmentId": enrollmentID,
		"status":       enrollment.Status,
	}, "enrollment status updated")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"enrollment": gin.H{
			"id":     enrollment.ID.Hex(),
			"status": enrollment.Status,
		},
	})
}
