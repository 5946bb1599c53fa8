package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PayAidPayments/payaid-crm-sub001/middleware"
	"github.com/PayAidPayments/payaid-crm-sub001/models"

	"github.com/gin-gonic/gin"
)

var (
	tenantOne = models.AuthContext{TenantID: "t1", UserID: "u1", Modules: []string{models.ModuleCRM}}
	tenantTwo = models.AuthContext{TenantID: "t2", UserID: "u2", Modules: []string{models.ModuleCRM}}
)

// newTestRouter mounts handlers behind ErrorHandler with auth pre-resolved.
// A nil auth leaves the request unauthenticated.
func newTestRouter(auth *models.AuthContext, register func(r *gin.Engine)) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.Use(func(c *gin.Context) {
		if auth != nil {
			middleware.SetAuthContext(c, *auth)
		}
		c.Next()
	})
	register(r)
	return r
}

func doRequest(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
