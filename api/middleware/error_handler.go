// api/middleware/error_handler.go
package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10" // Import validator for binding errors

	"github.com/missiondb/mission-dashboard/api/models"
	"github.com/missiondb/mission-dashboard/internal/core"
	"github.com/missiondb/mission-dashboard/internal/logger"
	"github.com/missiondb/mission-dashboard/internal/storage" // Import internal storage errors
)

var (
	customLog = logger.NewLogger()
)

// ErrorHandler creates a Gin middleware for centralized error handling.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		// We only handle the last error for the response.
		err := c.Errors.Last().Err
		customLog.Debugf("[ErrorHandler] Detected error: %v | Type: %T", err, err)

		statusCode, body := mapError(err)
		if statusCode == http.StatusInternalServerError {
			customLog.Errorf("[ErrorHandler] %s %s failed: %v (request %s)", c.Request.Method, c.Request.URL.Path, err, GetRequestID(c))
		}

		if !c.Writer.Written() {
			c.AbortWithStatusJSON(statusCode, body)
		} else {
			customLog.Warnf("[ErrorHandler] Response already written before handling error: %v", err)
		}
	}
}

// mapError turns an error attached by a handler into a status code and body.
func mapError(err error) (int, models.ErrorResponse) {
	var (
		refErr        *storage.ReferenceError
		validationErr validator.ValidationErrors
		syntaxErr     *json.SyntaxError
		typeErr       *json.UnmarshalTypeError
	)

	switch {
	case errors.As(err, &refErr):
		return http.StatusBadRequest, models.ErrorResponse{Error: refErr.Message, Details: refErr.Details}
	case errors.Is(err, storage.ErrForeignKeyViolation):
		return http.StatusBadRequest, models.ErrorResponse{Error: "FAILURE: Invalid foreign key references."}
	case errors.As(err, &validationErr):
		details := make([]string, 0, len(validationErr))
		for _, fe := range validationErr {
			details = append(details, describeFieldError(fe))
		}
		return http.StatusBadRequest, models.ErrorResponse{Error: "Validation failed. Please check your input.", Details: details}
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		return http.StatusBadRequest, models.ErrorResponse{Error: "Invalid JSON request body: " + err.Error()}
	case errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidViewMode),
		errors.Is(err, core.ErrInvalidID),
		errors.Is(err, core.ErrInvalidRequest):
		return http.StatusBadRequest, models.ErrorResponse{Error: err.Error()}
	case errors.Is(err, storage.ErrMissionNotFound),
		errors.Is(err, storage.ErrMissionLogNotFound):
		return http.StatusNotFound, models.ErrorResponse{Error: err.Error()}
	case errors.Is(err, storage.ErrDuplicateKey):
		return http.StatusConflict, models.ErrorResponse{Error: err.Error()}
	default:
		// The raw message is passed through to the dashboard.
		return http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()}
	}
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Field()
	if field == "" {
		field = fe.StructField()
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "date":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed on '%s'", field, strings.TrimSpace(fe.Tag()))
	}
}
