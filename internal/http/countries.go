package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/atlas/internal/audit"
	"github.com/mrlokans/atlas/internal/countries"
	"github.com/mrlokans/atlas/internal/metrics"
)

// CountryLookup fetches a single country profile by name.
type CountryLookup interface {
	Fetch(ctx context.Context, name string) (*countries.Country, error)
}

// CountryComparer compares the populations of two countries.
type CountryComparer interface {
	Compare(ctx context.Context, name1, name2 string) (*countries.ComparisonResult, error)
}

type CountriesController struct {
	lookup       CountryLookup
	comparer     CountryComparer
	auditService *audit.Service
	metrics      *metrics.Metrics
}

func NewCountriesController(lookup CountryLookup, comparer CountryComparer, auditService *audit.Service, metrics *metrics.Metrics) *CountriesController {
	return &CountriesController{
		lookup:       lookup,
		comparer:     comparer,
		auditService: auditService,
		metrics:      metrics,
	}
}

// GetCountry looks up a country profile by name.
// GET /countries/:name
func (cc *CountriesController) GetCountry(c *gin.Context) {
	name := c.Param("name")

	country, err := cc.lookup.Fetch(c.Request.Context(), name)
	if cc.metrics != nil {
		cc.metrics.IncrementCountryLookups()
		if err != nil {
			cc.metrics.IncrementLookupFailures()
		}
	}
	if cc.auditService != nil {
		cc.auditService.LogLookup(name, err)
	}
	if err != nil {
		respondServiceError(c, err, "get country")
		return
	}

	c.JSON(http.StatusOK, country)
}

// CompareCountries compares the populations of two countries.
// GET /countries/compare?country1=X&country2=Y
func (cc *CountriesController) CompareCountries(c *gin.Context) {
	name1 := c.Query("country1")
	name2 := c.Query("country2")

	if name1 == "" || name2 == "" {
		respondBadRequest(c, "country1 and country2 query parameters are required")
		return
	}

	result, err := cc.comparer.Compare(c.Request.Context(), name1, name2)
	if cc.metrics != nil {
		cc.metrics.IncrementComparisons()
	}
	if cc.auditService != nil {
		cc.auditService.LogComparison(name1, name2, err)
	}
	if err != nil {
		respondServiceError(c, err, "compare countries")
		return
	}

	c.JSON(http.StatusOK, result)
}
