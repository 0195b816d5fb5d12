package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/mrlokans/atlas/internal/countries"
	"github.com/mrlokans/atlas/internal/favourites"
	"github.com/mrlokans/atlas/internal/media"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"missing name", favourites.ErrNameRequired, http.StatusBadRequest, "country name is required"},
		{"invalid id", fmt.Errorf("%q: %w", "42", favourites.ErrInvalidID), http.StatusBadRequest, "must be a valid UUID"},
		{"no update fields", favourites.ErrNoUpdateFields, http.StatusBadRequest, "no fields to update"},
		{"favourite not found", favourites.ErrNotFound, http.StatusNotFound, "favourite not found"},
		{"country not found", fmt.Errorf("%q: %w", "Atlantis", countries.ErrNotFound), http.StatusNotFound, "country not found"},
		{"duplicate favourite", fmt.Errorf("%q: %w", "Japan", favourites.ErrDuplicate), http.StatusConflict, "already in favourites"},
		{"upstream failure", &countries.UpstreamError{StatusCode: 503}, http.StatusBadGateway, "country API unavailable"},
		{"upstream unreachable", &countries.UpstreamError{Err: errors.New("connection refused")}, http.StatusBadGateway, "country API unavailable"},
		{"upload failure", fmt.Errorf("%w: connection reset", media.ErrUploadFailed), http.StatusBadGateway, "image hosting unavailable"},
		{"unknown error", errors.New("disk full"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondServiceError(c, tt.err, "test")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestRespondNotFound(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondNotFound(c, "country")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"error":"country not found"`)
}

func TestRespondSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondSuccess(c, "favourite deleted")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"message":"favourite deleted"`)
}

func TestRespondCreated(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondCreated(c, gin.H{"id": "abc"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"abc"`)
}
