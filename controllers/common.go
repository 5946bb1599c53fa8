package controllers

import (
	"github.com/PayAidPayments/payaid-crm-sub001/middleware"
	"github.com/PayAidPayments/payaid-crm-sub001/models"
	"github.com/PayAidPayments/payaid-crm-sub001/utils"

	"github.com/gin-gonic/gin"
)

// requireAuth returns the caller or attaches a 401 and reports false.
func requireAuth(c *gin.Context) (models.AuthContext, bool) {
	auth, ok := middleware.GetAuthContext(c)
	if !ok {
		_ = c.Error(utils.CreateUnauthorizedError(""))
		return models.AuthContext{}, false
	}
	return auth, true
}
