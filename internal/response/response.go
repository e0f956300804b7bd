package response

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// Error codes returned in the error envelope
const (
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeForbidden     = "FORBIDDEN"
	ErrCodeInternal      = "INTERNAL_ERROR"
)

// AppError is a service-layer error carrying an error code for the
// handler-layer HTTP mapping. Fields holds field-keyed validation messages
// for form errors that are re-displayed to the submitter.
type AppError struct {
	Code    string
	Message string
	Details string
	Fields  map[string]string
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAppError creates a new AppError
func NewAppError(code, message, details string) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

// NewValidationError creates a validation AppError with field-keyed messages
func NewValidationError(fields map[string]string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: "Invalid form submission",
		Fields:  fields,
	}
}

// ErrorDetail is the inner error object of the envelope
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the error envelope returned by all endpoints
type ErrorResponse struct {
	Error  ErrorDetail       `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// SuccessResponse is the success envelope returned by all endpoints
type SuccessResponse struct {
	Data interface{} `json:"data"`
}

// SendSuccess writes the success envelope with the given status
func SendSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, SuccessResponse{Data: data})
}

// SendError writes the error envelope with the given status
func SendError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// SendFieldErrors writes a validation error envelope with field-keyed
// messages so the originating form can be re-rendered with them
func SendFieldErrors(c *gin.Context, status int, fields map[string]string) {
	c.JSON(status, ErrorResponse{
		Error:  ErrorDetail{Code: ErrCodeValidation, Message: "Invalid form submission"},
		Fields: fields,
	})
}
