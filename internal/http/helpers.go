package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/library/internal/logger"
	"github.com/mrlokans/library/internal/schemas"
	"github.com/mrlokans/library/internal/services"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// PaginatedResponse wraps paginated data with metadata.
type PaginatedResponse struct {
	Data    any   `json:"data"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"has_more"`
}

// --- Error Response Helpers ---

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Detail: message})
}

// respondUnprocessable sends a 422 for request shape problems.
func respondUnprocessable(c *gin.Context, message string) {
	respondError(c, http.StatusUnprocessableEntity, message)
}

// respondBindError reports a body that failed decoding or validation.
func respondBindError(c *gin.Context, err error) {
	respondUnprocessable(c, schemas.Describe(err).Error())
}

// respondServiceError maps a service error kind to its status. Unknown
// errors are logged and hidden behind a 500.
func respondServiceError(c *gin.Context, err error) {
	message, _ := services.Message(err)

	switch {
	case errors.Is(err, services.ErrInvalid):
		respondUnprocessable(c, message)
	case errors.Is(err, services.ErrNotMember):
		respondError(c, http.StatusNotFound, message)
	case errors.Is(err, services.ErrNotAcceptable),
		errors.Is(err, services.ErrConflict),
		errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrInsufficientUpdate):
		respondError(c, http.StatusNotAcceptable, message)
	default:
		respondInternalError(c, err)
	}
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error) {
	logger.FromContext(c.Request.Context()).Error("internal error",
		zap.String("path", c.FullPath()),
		zap.Error(err))
	respondError(c, http.StatusInternalServerError, "internal server error")
}

// --- Parameter Parsing ---

// parseID validates a positive integer identity.
func parseID(c *gin.Context, name, raw string) (uint, bool) {
	if raw == "" {
		respondUnprocessable(c, name+" is required")
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 63)
	if err != nil || id == 0 {
		respondUnprocessable(c, name+" must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

// parseQueryID extracts and validates an identity from the query string.
// Returns the parsed ID or responds with a 422 and returns 0, false.
func parseQueryID(c *gin.Context, name string) (uint, bool) {
	return parseID(c, name, c.Query(name))
}

// parseIDParam extracts and validates an identity from the URL path.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	return parseID(c, name, c.Param(name))
}

// parseIntQuery reads an optional non-negative integer query parameter.
func parseIntQuery(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		respondUnprocessable(c, name+" must be a non-negative integer")
		return 0, false
	}
	return v, true
}
