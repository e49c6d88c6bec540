package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes used across the API
const (
	CodeResourceNotFound   = "RESOURCE_NOT_FOUND"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeBadRequest         = "BAD_REQUEST"
	CodeOriginMismatch     = "ORIGIN_MISMATCH"
	CodeStoreUnavailable   = "STORE_UNAVAILABLE"
	CodePartialUnavailable = "PARTIAL_UNAVAILABLE"
)

// ApiError custom API error
type ApiError struct {
	StatusCode int
	Message    string
	ErrorCode  string
	Err        error
}

// Error implements the error interface
func (e *ApiError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *ApiError) Unwrap() error {
	return e.Err
}

// NewApiError creates an API error
func NewApiError(message string, statusCode int, errorCode string) *ApiError {
	return &ApiError{
		StatusCode: statusCode,
		Message:    message,
		ErrorCode:  errorCode,
	}
}

// CreateNotFoundError creates a resource-not-found error
func CreateNotFoundError(resource string) *ApiError {
	return NewApiError(resource+" no existe", http.StatusNotFound, CodeResourceNotFound)
}

// CreateUnauthorizedError creates an unauthorized error
func CreateUnauthorizedError() *ApiError {
	return NewApiError("Acceso no autorizado", http.StatusUnauthorized, CodeUnauthorized)
}

// CreateBadRequestError creates a bad-request error
func CreateBadRequestError(message string) *ApiError {
	return NewApiError(message, http.StatusBadRequest, CodeBadRequest)
}

// NewOriginMismatchError is raised when a caller tries to mutate a
// CrediExpress-origin lead through the CRM-side CRUD path.
func NewOriginMismatchError(action string) *ApiError {
	return NewApiError(
		fmt.Sprintf("No se pueden %s leads de CrediExpress desde el CRM. Edítalos desde CrediExpress.", action),
		http.StatusForbidden,
		CodeOriginMismatch,
	)
}

// NewStoreUnavailableError wraps a transient store connectivity failure.
func NewStoreUnavailableError(err error) *ApiError {
	return &ApiError{
		StatusCode: http.StatusServiceUnavailable,
		Message:    "Almacén de datos no disponible",
		ErrorCode:  CodeStoreUnavailable,
		Err:        err,
	}
}

// NewPartialUnavailableError is raised by the unified fetch when one of the
// two sources failed; side identifies which one.
func NewPartialUnavailableError(side string, err error) *ApiError {
	return &ApiError{
		StatusCode: http.StatusServiceUnavailable,
		Message:    fmt.Sprintf("No se pudieron cargar los leads de la fuente '%s'", side),
		ErrorCode:  CodePartialUnavailable,
		Err:        err,
	}
}

// HasErrorCode reports whether err (or anything it wraps) carries the code.
func HasErrorCode(err error, code string) bool {
	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode == code
	}
	return false
}

// HandleError logs the error and writes the matching response
func HandleError(c *gin.Context, err error) {
	if c == nil {
		return
	}
	errorMessage := err.Error()
	Logger.Error().Str("path", c.Request.URL.Path).Str("method", c.Request.Method).Msg("api error: " + errorMessage)

	LogError(err, map[string]interface{}{
		"path":   c.Request.URL.Path,
		"method": c.Request.Method,
	}, errorMessage)

	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		response := gin.H{"error": apiErr.Message}
		if apiErr.ErrorCode != "" {
			response["code"] = apiErr.ErrorCode
		}
		c.JSON(apiErr.StatusCode, response)
		return
	}

	// anything unexpected
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   errorMessage,
		"success": false,
	})
}

// SuccessResponse success response
func SuccessResponse(c *gin.Context, data interface{}, message string, statusCode ...int) {
	code := http.StatusOK
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	response := gin.H{"success": true}
	if data != nil {
		response["data"] = data
	}
	if message != "" {
		response["message"] = message
	}

	c.JSON(code, response)
}

// ErrorResponse error response
func ErrorResponse(c *gin.Context, message string, statusCode int) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   message,
	})
}
