package middleware

import (
	"strings"

	"github.com/PayAidPayments/payaid-crm-sub001/models"
	"github.com/PayAidPayments/payaid-crm-sub001/utils"

	"github.com/gin-gonic/gin"
)

// authContextKey holds the models.AuthContext of the caller.
const authContextKey = "auth"

// AuthMiddleware verifies the bearer token and stores the caller's
// AuthContext on the request. Requests without a valid session are aborted
// with 401.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			utils.HandleError(c, utils.CreateUnauthorizedError("Missing bearer token"))
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			utils.HandleError(c, utils.CreateUnauthorizedError("Missing bearer token"))
			return
		}

		claims, err := utils.ParseToken(token, secret)
		if err != nil {
			utils.Logger.Info().Err(err).
				Str("authorization", getShortAuthHeader(authHeader)).
				Msg("token verification failed")
			utils.HandleError(c, utils.CreateUnauthorizedError("Invalid token"))
			return
		}

		auth, err := utils.AuthContextFromClaims(claims)
		if err != nil {
			utils.HandleError(c, utils.CreateUnauthorizedError(err.Error()))
			return
		}

		SetAuthContext(c, auth)

		utils.Logger.Debug().
			Str("tenantId", auth.TenantID).
			Str("userId", auth.UserID).
			Str("path", c.Request.URL.Path).
			Msg("session verified")

		c.Next()
	}
}

// RequireModule aborts with 403 unless the caller's tenant holds a license
// for module. It must run after AuthMiddleware.
func RequireModule(module string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth, ok := GetAuthContext(c)
		if !ok {
			utils.HandleError(c, utils.CreateUnauthorizedError(""))
			return
		}
		if !auth.HasModule(module) {
			utils.Logger.Info().
				Str("tenantId", auth.TenantID).
				Str("module", module).
				Msg("module not licensed")
			utils.HandleError(c, utils.CreateModuleNotLicensedError(module))
			return
		}
		c.Next()
	}
}

// GetAuthContext returns the caller set by AuthMiddleware.
func GetAuthContext(c *gin.Context) (models.AuthContext, bool) {
	v, exists := c.Get(authContextKey)
	if !exists {
		return models.AuthContext{}, false
	}
	auth, ok := v.(models.AuthContext)
	return auth, ok
}

// SetAuthContext stores auth on c. Used by AuthMiddleware and tests.
func SetAuthContext(c *gin.Context, auth models.AuthContext) {
	c.Set(authContextKey, auth)
	c.Set(utils.TenantIDKey, auth.TenantID)
}

// getShortAuthHeader truncates an Authorization header for logging.
func getShortAuthHeader(header string) string {
	if len(header) > 15 {
		return header[:15] + "..."
	}
	return header
}
