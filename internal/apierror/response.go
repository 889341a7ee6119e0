package apierror

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the MIME type for RFC 9457 Problem Details.
const ContentTypeProblemJSON = "application/problem+json"

// WriteProblem renders a problem document with the problem+json content
// type, mirroring RetryAfter into the Retry-After header when present.
func WriteProblem(c *gin.Context, problem *ProblemDetails) {
	c.Header("Content-Type", ContentTypeProblemJSON)
	if problem.RetryAfter != nil {
		c.Header("Retry-After", strconv.Itoa(*problem.RetryAfter))
	}
	c.JSON(problem.Status, problem)
}

// GetRequestID reads the request ID placed in the gin context by the
// middleware, falling back to the raw header for requests that bypassed
// it. Returns "" when neither is set.
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return c.GetHeader("X-Request-ID")
}

// NewValidationError creates a 400 Bad Request response carrying every
// failed field, not just the first.
func NewValidationError(requestID string, errors []FieldError) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeValidation,
		Title:       TitleValidation,
		Status:      http.StatusBadRequest,
		Detail:      "One or more fields failed validation",
		RequestID:   requestID,
		UserMessage: "Please review the highlighted fields and try again",
		Errors:      errors,
	}
}

// NewNotFoundError creates a 404 Not Found response.
func NewNotFoundError(requestID, resource, key string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeNotFound,
		Title:       TitleNotFound,
		Status:      http.StatusNotFound,
		Detail:      fmt.Sprintf("%s for '%s' was not found", resource, key),
		RequestID:   requestID,
		UserMessage: fmt.Sprintf("No %s was found", resource),
	}
}

// NewConflictError creates a 409 Conflict response.
func NewConflictError(requestID, detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeConflict,
		Title:       TitleConflict,
		Status:      http.StatusConflict,
		Detail:      detail,
		RequestID:   requestID,
		UserMessage: "That change collides with data that already exists",
	}
}

// NewRateLimitError creates a 429 Too Many Requests response.
// retryAfter specifies seconds until the client should retry.
func NewRateLimitError(requestID string, retryAfter int) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeRateLimit,
		Title:       TitleRateLimit,
		Status:      http.StatusTooManyRequests,
		Detail:      fmt.Sprintf("Request limit reached. Retry in %d seconds", retryAfter),
		RequestID:   requestID,
		UserMessage: "You're sending requests too quickly. Give it a moment.",
		RetryAfter:  &retryAfter,
	}
}

// NewInternalError creates a 500 Internal Server Error response. The
// real error never reaches the client; it belongs in the server log.
func NewInternalError(requestID string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeInternal,
		Title:       TitleInternal,
		Status:      http.StatusInternalServerError,
		Detail:      "An unexpected error occurred",
		RequestID:   requestID,
		UserMessage: "Something went wrong on our side. Please try again.",
	}
}

// NewBadRequestError creates a 400 Bad Request response for malformed requests.
func NewBadRequestError(requestID, detail, userMessage string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeBadRequest,
		Title:       TitleBadRequest,
		Status:      http.StatusBadRequest,
		Detail:      detail,
		RequestID:   requestID,
		UserMessage: userMessage,
	}
}

// NewInvalidDateError creates a 400 Bad Request response for a date that is
// not in YYYY-MM-DD format.
func NewInvalidDateError(requestID, field, value string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeInvalidDate,
		Title:       TitleInvalidDate,
		Status:      http.StatusBadRequest,
		Detail:      fmt.Sprintf("Invalid date format for field '%s': '%s'", field, value),
		RequestID:   requestID,
		UserMessage: "Dates must be in YYYY-MM-DD format",
		Errors: []FieldError{
			{Field: field, Message: "must be a date in YYYY-MM-DD format", Code: "invalid_date"},
		},
	}
}

// NewFutureDateError creates a 400 Bad Request response for logging data
// against a date that has not happened yet.
func NewFutureDateError(requestID, field string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeFutureDate,
		Title:       TitleFutureDate,
		Status:      http.StatusBadRequest,
		Detail:      fmt.Sprintf("Field '%s' is a date in the future", field),
		RequestID:   requestID,
		UserMessage: "You can only log moods for today or past days",
		Action:      "pick_earlier_date",
		Errors: []FieldError{
			{Field: field, Message: "date cannot be in the future", Code: "future_date"},
		},
	}
}

// NewInvalidRatingError creates a 400 Bad Request response for a mood rating
// outside the valid scale.
func NewInvalidRatingError(requestID string, value float64) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeInvalidRating,
		Title:       TitleInvalidRating,
		Status:      http.StatusBadRequest,
		Detail:      fmt.Sprintf("Rating %.1f is outside the valid range 1-10", value),
		RequestID:   requestID,
		UserMessage: "Mood ratings must be between 1 and 10",
		Errors: []FieldError{
			{Field: "rating", Message: "must be between 1 and 10", Code: "invalid_rating"},
		},
	}
}

// NewInvalidSegmentError creates a 400 Bad Request response for an unknown
// day segment.
func NewInvalidSegmentError(requestID, value string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeInvalidSegment,
		Title:       TitleInvalidSegment,
		Status:      http.StatusBadRequest,
		Detail:      fmt.Sprintf("Unknown day segment '%s'", value),
		RequestID:   requestID,
		UserMessage: "Segment must be morning, midday, or evening",
		Errors: []FieldError{
			{Field: "segment", Message: "must be morning, midday, or evening", Code: "invalid_segment"},
		},
	}
}

// NewServiceUnavailableError creates a 503 Service Unavailable response.
// retryAfter specifies seconds until the client should retry.
func NewServiceUnavailableError(requestID string, retryAfter int) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeInternal,
		Title:       "Service Unavailable",
		Status:      http.StatusServiceUnavailable,
		Detail:      "The service is temporarily unavailable",
		RequestID:   requestID,
		UserMessage: "Service is temporarily unavailable. Please try again later.",
		RetryAfter:  &retryAfter,
	}
}
