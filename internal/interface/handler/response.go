package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Error codes returned in the error envelope
const (
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeValidationError = "VALIDATION_ERROR"
	CodeUserExists      = "USER_EXISTS"
	CodeAPIError        = "API_ERROR"
	CodeNotFound        = "NOT_FOUND"
	CodeInternalError   = "INTERNAL_ERROR"
)

// APIError is the body of every error response: {"error": {...}}
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

type errorEnvelope struct {
	Error APIError `json:"error"`
}

func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, errorEnvelope{Error: APIError{Code: code, Message: message}})
}

// respondValidation reports binding failures per field, e.g.
// {"fieldErrors": {"password": ["Must be at least 8 characters"]}}.
func respondValidation(c *gin.Context, status int, err error) {
	c.AbortWithStatusJSON(status, errorEnvelope{Error: APIError{
		Code:    CodeValidationError,
		Details: validationDetails(err),
	}})
}

func validationDetails(err error) gin.H {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return gin.H{"formErrors": []string{err.Error()}}
	}

	fields := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		name := jsonFieldName(fe.Field())
		fields[name] = append(fields[name], fieldMessage(fe))
	}
	return gin.H{"fieldErrors": fields}
}

func jsonFieldName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Required"
	case "email":
		return "Invalid email address"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s characters", fe.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters", fe.Param())
	case "datetime":
		return "Must be a date in YYYY-MM-DD format"
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	default:
		return "Invalid value"
	}
}
