package middleware

import (
	"bytes"
	"io"
	"time"

	"github.com/PayAidPayments/payaid-crm-sub001/utils"

	"github.com/gin-gonic/gin"
)

// bodyLogWriter tees the response body into body.
type bodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

// Write writes b to both the response and the buffer.
func (w bodyLogWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Logger logs every request and the response written for it. Headers and
// bodies go through the same redaction as the operation log.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method
		requestID := GetRequestID(c)

		// Read the body and put it back for the handler.
		var requestBody []byte
		if c.Request.Body != nil {
			requestBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		blw := &bodyLogWriter{
			ResponseWriter: c.Writer,
			body:           bytes.NewBufferString(""),
		}
		c.Writer = blw

		utils.LogApiRequest(
			method,
			path,
			requestID,
			c.Request.URL.Query(),
			sanitizeData(decodeBody(requestBody, c.Request.Header.Get("Content-Type"))),
			sanitizeHeaders(c.Request.Header),
		)

		c.Next()

		// The tenant is only known once the auth middleware has run.
		utils.LogApiResponse(
			method,
			path,
			requestID,
			c.GetString(utils.TenantIDKey),
			c.Writer.Status(),
			time.Since(start),
			sanitizeData(decodeBody(blw.body.Bytes(), c.Writer.Header().Get("Content-Type"))),
		)
	}
}

// Recovery turns a panic into a 500 response.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		utils.Logger.Error().
			Interface("panic", recovered).
			Str("path", c.Request.URL.Path).
			Str("requestId", GetRequestID(c)).
			Str("tenantId", c.GetString(utils.TenantIDKey)).
			Msg("panic recovered")

		c.AbortWithStatusJSON(500, gin.H{
			"success": false,
			"error":   "Internal server error",
		})
	})
}
