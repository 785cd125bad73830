package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/logger"
)

// ErrorResponse is the error envelope returned by all endpoints.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries the machine-readable code, the human-readable message,
// and optional per-field details.
type ErrorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// parseExpenseID parses the id path parameter.
func parseExpenseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.ValidationFailed("id", "Expense ID must be a positive integer")
	}
	return uint(id), nil
}

// bindJSON rejects non-JSON content types, decodes the body into req, and
// translates binding failures into the error taxonomy.
func bindJSON(c *gin.Context, req interface{}) error {
	if c.ContentType() != "application/json" {
		return apperrors.ErrInvalidContentType
	}
	if err := c.ShouldBindJSON(req); err != nil {
		return translateBindingError(err)
	}
	return nil
}

// translateBindingError maps validator failures to field-scoped validation
// errors and everything else (malformed JSON, wrong value types) to
// ErrInvalidJSON.
func translateBindingError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			field := strings.ToLower(fe.Field())
			if _, seen := details[field]; !seen {
				details[field] = bindingErrorMessage(fe)
			}
		}
		return apperrors.WithDetails(apperrors.ErrValidation, "Validation failed", details)
	}
	return apperrors.Wrap(apperrors.ErrInvalidJSON, err)
}

func bindingErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "positive_amount":
		return fe.Field() + " must be a positive decimal"
	case "max":
		return fmt.Sprintf("%s must be %s characters or less", fe.Field(), fe.Param())
	default:
		return fe.Field() + " is invalid"
	}
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, message, and details.
// Otherwise it logs the unexpected error and returns a generic internal
// server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		body := gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		}
		if len(appErr.Details) > 0 {
			body["details"] = appErr.Details
		}
		c.JSON(appErr.StatusCode, gin.H{"error": body})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}
