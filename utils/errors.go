package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes returned in the "code" field of error responses.
const (
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeModuleNotLicensed = "MODULE_NOT_LICENSED"
	CodeNotFound          = "RESOURCE_NOT_FOUND"
	CodeBadRequest        = "BAD_REQUEST"
	CodeInternal          = "INTERNAL_ERROR"
)

// TenantIDKey is the gin context key holding the caller's tenant id. The auth
// middleware sets it so error logs can be correlated per tenant.
const TenantIDKey = "tenantId"

// ApiError is an error that knows the HTTP status it maps to.
type ApiError struct {
	StatusCode int
	Message    string
	ErrorCode  string
	// Details carries the underlying error text for internal failures.
	Details string
	Err     error
}

// Error implements error.
func (e *ApiError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the wrapped cause, if any.
func (e *ApiError) Unwrap() error {
	return e.Err
}

// NewApiError creates an ApiError.
func NewApiError(message string, statusCode int, errorCode string) *ApiError {
	return &ApiError{
		StatusCode: statusCode,
		Message:    message,
		ErrorCode:  errorCode,
	}
}

// CreateNotFoundError reports that message describes a missing resource.
func CreateNotFoundError(message string) *ApiError {
	return NewApiError(message, http.StatusNotFound, CodeNotFound)
}

func CreateUnauthorizedError(message string) *ApiError {
	if message == "" {
		message = "Unauthorized"
	}
	return NewApiError(message, http.StatusUnauthorized, CodeUnauthorized)
}

func CreateForbiddenError(message string) *ApiError {
	if message == "" {
		message = "Forbidden"
	}
	return NewApiError(message, http.StatusForbidden, CodeForbidden)
}

// CreateModuleNotLicensedError is returned when the tenant lacks module.
func CreateModuleNotLicensedError(module string) *ApiError {
	return NewApiError("Module not licensed: "+module, http.StatusForbidden, CodeModuleNotLicensed)
}

func CreateBadRequestError(message string) *ApiError {
	return NewApiError(message, http.StatusBadRequest, CodeBadRequest)
}

// CreateInternalError wraps err behind a caller-facing message. The cause
// text is exposed in the response as "details".
func CreateInternalError(message string, err error) *ApiError {
	apiErr := NewApiError(message, http.StatusInternalServerError, CodeInternal)
	apiErr.Err = err
	if err != nil {
		apiErr.Details = err.Error()
	}
	return apiErr
}

// HandleError logs err and writes the matching JSON response. Errors that
// are not an *ApiError become a 500.
func HandleError(c *gin.Context, err error) {
	if c == nil || err == nil {
		return
	}

	var apiErr *ApiError
	if !errors.As(err, &apiErr) {
		apiErr = CreateInternalError("Internal server error", err)
	}

	event := Logger.Warn()
	if apiErr.StatusCode >= http.StatusInternalServerError {
		event = Logger.Error()
	}
	event.Err(err).
		Str("path", c.Request.URL.Path).
		Str("method", c.Request.Method).
		Str("tenantId", c.GetString(TenantIDKey)).
		Int("status", apiErr.StatusCode).
		Msg("request failed")

	response := gin.H{"error": apiErr.Message}
	if apiErr.ErrorCode != "" && apiErr.ErrorCode != CodeInternal {
		response["code"] = apiErr.ErrorCode
	}
	if apiErr.Details != "" {
		response["details"] = apiErr.Details
	}
	c.AbortWithStatusJSON(apiErr.StatusCode, response)
}
