package platformerrors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// HTTPErrorResponse represents the standard error response format.
type HTTPErrorResponse struct {
	Error *HTTPErrorDetail `json:"error"`
}

// HTTPErrorDetail contains error details for HTTP responses.
type HTTPErrorDetail struct {
	Message   string `json:"message"`
	Type      string `json:"type"`
	RequestID string `json:"request_id,omitempty"`
}

// WriteError writes err as an HTTP response, mapping its category to a
// status code. Plain errors are treated as internal.
func WriteError(c *gin.Context, err error, log zerolog.Logger) {
	if err == nil {
		c.JSON(http.StatusInternalServerError, HTTPErrorResponse{
			Error: &HTTPErrorDetail{
				Message: "unknown error",
				Type:    "internal_error",
			},
		})
		return
	}

	var platformErr *PlatformError
	if !errors.As(err, &platformErr) {
		log.Error().Err(err).Msg("unclassified handler error")
		c.JSON(http.StatusInternalServerError, HTTPErrorResponse{
			Error: &HTTPErrorDetail{
				Message: err.Error(),
				Type:    "internal_error",
			},
		})
		return
	}

	logError(log, platformErr)
	c.JSON(HTTPStatus(platformErr.Type), HTTPErrorResponse{
		Error: &HTTPErrorDetail{
			Message:   platformErr.Message,
			Type:      errorTypeToString(platformErr.Type),
			RequestID: platformErr.RequestID,
		},
	})
}

// WriteValidationError writes a 400 Bad Request response.
func WriteValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, HTTPErrorResponse{
		Error: &HTTPErrorDetail{
			Message: message,
			Type:    "validation_error",
		},
	})
}

func logError(log zerolog.Logger, err *PlatformError) {
	event := log.Error()
	switch err.Type {
	case ErrorTypeNotFound, ErrorTypeValidation:
		event = log.Debug()
	}
	event.
		Err(err).
		Str("layer", string(err.Layer)).
		Str("type", string(err.Type)).
		Str("request_id", err.RequestID).
		Msg(err.Message)
}

// errorTypeToString converts an ErrorType to a snake_case string for API responses.
func errorTypeToString(t ErrorType) string {
	switch t {
	case ErrorTypeNotFound:
		return "not_found_error"
	case ErrorTypeValidation:
		return "validation_error"
	case ErrorTypeConflict:
		return "conflict_error"
	case ErrorTypeUnauthorized:
		return "unauthorized_error"
	case ErrorTypeDatabaseError, ErrorTypeInternal:
		fallthrough
	default:
		return "internal_error"
	}
}
