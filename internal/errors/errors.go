package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/yukikurage/retro-board-api/internal/models"
)

// Error codes
const (
	ErrCodeInvalidInput       = "INVALID_INPUT"
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeInvalidEnum        = "INVALID_ENUM"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeInternalError      = "INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// APIError is the body of every failed response: {"error": "...", "code": "..."}.
type APIError struct {
	Message string `json:"error"`
	Code    string `json:"code,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, err *APIError) {
	c.AbortWithStatusJSON(statusCode, err)
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid JSON body"
	}
	RespondWithError(c, http.StatusBadRequest, NewAPIError(ErrCodeInvalidInput, message))
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RespondWithError(c, http.StatusNotFound, NewAPIError(ErrCodeNotFound, message))
}

// MissingFields sends a 422 response naming the required fields that were absent.
func MissingFields(c *gin.Context, message string) {
	RespondWithError(c, http.StatusUnprocessableEntity, NewAPIError(ErrCodeMissingField, message))
}

// InvalidEnum sends a 422 response for a value outside a closed set.
func InvalidEnum(c *gin.Context, message string) {
	RespondWithError(c, http.StatusUnprocessableEntity, NewAPIError(ErrCodeInvalidEnum, message))
}

// Unprocessable sends a 422 response for a well-formed request that cannot be applied.
func Unprocessable(c *gin.Context, message string) {
	RespondWithError(c, http.StatusUnprocessableEntity, NewAPIError(ErrCodeInvalidInput, message))
}

// InternalError sends a 500 response. message must not carry internal detail.
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, message))
}

// ServiceUnavailable sends a 503 response
func ServiceUnavailable(c *gin.Context, message string) {
	if message == "" {
		message = "Service temporarily unavailable"
	}
	RespondWithError(c, http.StatusServiceUnavailable, NewAPIError(ErrCodeServiceUnavailable, message))
}

// RespondBindError classifies a ShouldBind* failure: missing required fields
// and unknown enum values are 422, anything else is a malformed body (400).
func RespondBindError(c *gin.Context, err error) {
	var enumErr *models.EnumError
	if stderrors.As(err, &enumErr) {
		InvalidEnum(c, capitalize(enumErr.Error()))
		return
	}

	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) {
		MissingFields(c, requiredMessage(verrs))
		return
	}

	BadRequest(c, "")
}

var registerOnce sync.Once

// UseJSONFieldNames makes validation errors report the json tag of a field
// instead of its Go name.
func UseJSONFieldNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
}

func requiredMessage(verrs validator.ValidationErrors) string {
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	if len(fields) == 1 {
		return fmt.Sprintf("%s is required", fields[0])
	}
	return fmt.Sprintf("%s are required", strings.Join(fields, " and "))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
