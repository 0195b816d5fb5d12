package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/atlas/internal/countries"
	"github.com/mrlokans/atlas/internal/favourites"
	"github.com/mrlokans/atlas/internal/media"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// PaginatedResponse wraps paginated data with metadata.
type PaginatedResponse struct {
	Data       any   `json:"data"`
	Total      int64 `json:"total"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	HasMore    bool  `json:"has_more"`
	TotalPages int   `json:"total_pages,omitempty"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondError sends an error response with the given status code.
// Use the specific helpers (respondBadRequest, respondNotFound, etc.) when possible.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// respondServiceError translates service and upstream errors into HTTP
// status codes. Unknown errors become a logged 500.
func respondServiceError(c *gin.Context, err error, context string) {
	var upstreamErr *countries.UpstreamError

	switch {
	case errors.Is(err, favourites.ErrNameRequired),
		errors.Is(err, favourites.ErrInvalidID),
		errors.Is(err, favourites.ErrNoUpdateFields):
		respondBadRequest(c, err.Error())
	case errors.Is(err, favourites.ErrNotFound):
		respondNotFound(c, "favourite")
	case errors.Is(err, countries.ErrNotFound):
		respondNotFound(c, "country")
	case errors.Is(err, favourites.ErrDuplicate):
		respondError(c, http.StatusConflict, err.Error())
	case errors.As(err, &upstreamErr):
		respondError(c, http.StatusBadGateway, "country API unavailable")
	case errors.Is(err, media.ErrUploadFailed):
		respondError(c, http.StatusBadGateway, "image hosting unavailable")
	default:
		respondInternalError(c, err, context)
	}
}

// --- Success Response Helpers ---

// respondSuccess sends a 200 OK response with a message.
func respondSuccess(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{Message: message})
}

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}
