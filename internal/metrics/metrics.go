package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	CountryLookups    prometheus.Counter
	LookupFailures    prometheus.Counter
	FavouritesSaved   prometheus.Counter
	FavouritesDeleted prometheus.Counter
	Comparisons       prometheus.Counter
	MediaUploads      prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		CountryLookups: promauto.NewCounter(prometheus.CounterOpts{
			Name: "atlas_country_lookups_total",
			Help: "Total number of country lookups against the upstream API",
		}),
		LookupFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "atlas_country_lookup_failures_total",
			Help: "Total number of country lookups that ended in an error",
		}),
		FavouritesSaved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "atlas_favourites_saved_total",
			Help: "Total number of favourite countries saved",
		}),
		FavouritesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "atlas_favourites_deleted_total",
			Help: "Total number of favourite countries deleted",
		}),
		Comparisons: promauto.NewCounter(prometheus.CounterOpts{
			Name: "atlas_comparisons_total",
			Help: "Total number of population comparisons served",
		}),
		MediaUploads: promauto.NewCounter(prometheus.CounterOpts{
			Name: "atlas_media_uploads_total",
			Help: "Total number of images uploaded to the media provider",
		}),
	}
}

// IncrementCountryLookups increments the country lookups counter by 1
func (m *Metrics) IncrementCountryLookups() {
	m.CountryLookups.Inc()
}

// IncrementLookupFailures increments the lookup failures counter by 1
func (m *Metrics) IncrementLookupFailures() {
	m.LookupFailures.Inc()
}

// IncrementFavouritesSaved increments the favourites saved counter by 1
func (m *Metrics) IncrementFavouritesSaved() {
	m.FavouritesSaved.Inc()
}

// IncrementFavouritesDeleted increments the favourites deleted counter by 1
func (m *Metrics) IncrementFavouritesDeleted() {
	m.FavouritesDeleted.Inc()
}

// IncrementComparisons increments the comparisons counter by 1
func (m *Metrics) IncrementComparisons() {
	m.Comparisons.Inc()
}

// IncrementMediaUploads increments the media uploads counter by 1
func (m *Metrics) IncrementMediaUploads() {
	m.MediaUploads.Inc()
}
