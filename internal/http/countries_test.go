package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/atlas/internal/countries"
)

// stubLookup serves canned country profiles. Name matching is
// case-insensitive like the real API.
type stubLookup struct {
	countries map[string]*countries.Country
	err       error
}

func (s *stubLookup) Fetch(ctx context.Context, name string) (*countries.Country, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, country := range s.countries {
		if strings.EqualFold(country.Name, name) {
			return country, nil
		}
	}
	return nil, fmt.Errorf("%q: %w", name, countries.ErrNotFound)
}

// stubComparer returns a fixed comparison result or error.
type stubComparer struct {
	result *countries.ComparisonResult
	err    error
}

func (s *stubComparer) Compare(ctx context.Context, name1, name2 string) (*countries.ComparisonResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newCountriesRouter(lookup CountryLookup, comparer CountryComparer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	controller := NewCountriesController(lookup, comparer, nil, nil)

	router := gin.New()
	router.GET("/countries/compare", controller.CompareCountries)
	router.GET("/countries/:name", controller.GetCountry)
	return router
}

func TestCountriesController_GetCountry(t *testing.T) {
	t.Run("returns the country profile", func(t *testing.T) {
		lookup := &stubLookup{countries: map[string]*countries.Country{
			"Estonia": {Name: "Estonia", Capital: "Tallinn", Population: 1331057, Region: "Europe"},
		}}
		router := newCountriesRouter(lookup, &stubComparer{})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/countries/Estonia", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response countries.Country
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.Equal(t, "Estonia", response.Name)
		assert.Equal(t, "Tallinn", response.Capital)
		assert.Equal(t, int64(1331057), response.Population)
		assert.Equal(t, "Europe", response.Region)
	})

	t.Run("handles names with spaces", func(t *testing.T) {
		lookup := &stubLookup{countries: map[string]*countries.Country{
			"United States": {Name: "United States", Capital: "Washington, D.C.", Population: 329484123, Region: "Americas"},
		}}
		router := newCountriesRouter(lookup, &stubComparer{})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/countries/United%20States", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "United States")
	})

	t.Run("returns 404 for unknown countries", func(t *testing.T) {
		router := newCountriesRouter(&stubLookup{}, &stubComparer{})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/countries/Atlantis", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "country not found")
	})

	t.Run("returns 502 when the upstream API fails", func(t *testing.T) {
		lookup := &stubLookup{err: &countries.UpstreamError{StatusCode: 500}}
		router := newCountriesRouter(lookup, &stubComparer{})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/countries/Estonia", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Contains(t, w.Body.String(), "country API unavailable")
	})
}

func TestCountriesController_CompareCountries(t *testing.T) {
	t.Run("returns the comparison result", func(t *testing.T) {
		comparer := &stubComparer{result: &countries.ComparisonResult{
			Country1:             countries.Country{Name: "China", Capital: "Beijing", Population: 1425893465, Region: "Asia"},
			Country2:             countries.Country{Name: "India", Capital: "New Delhi", Population: 1428627663, Region: "Asia"},
			PopulationDifference: 2734198,
			Message:              "India has a larger population by 2,734,198 people.",
		}}
		router := newCountriesRouter(&stubLookup{}, comparer)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/countries/compare?country1=China&country2=India", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response countries.ComparisonResult
		err := json.Unmarshal(w.Body.Bytes(), &response)
		require.NoError(t, err)
		assert.Equal(t, "China", response.Country1.Name)
		assert.Equal(t, "India", response.Country2.Name)
		assert.Equal(t, int64(2734198), response.PopulationDifference)
		assert.Equal(t, "India has a larger population by 2,734,198 people.", response.Message)
	})

	t.Run("requires both country parameters", func(t *testing.T) {
		router := newCountriesRouter(&stubLookup{}, &stubComparer{})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/countries/compare?country1=China", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "country1 and country2")
	})

	t.Run("returns 404 when either country is unknown", func(t *testing.T) {
		comparer := &stubComparer{err: fmt.Errorf("%q: %w", "Atlantis", countries.ErrNotFound)}
		router := newCountriesRouter(&stubLookup{}, comparer)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/countries/compare?country1=Atlantis&country2=France", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("returns 502 when the upstream API fails", func(t *testing.T) {
		comparer := &stubComparer{err: &countries.UpstreamError{Err: fmt.Errorf("connection refused")}}
		router := newCountriesRouter(&stubLookup{}, comparer)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/countries/compare?country1=China&country2=India", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}
