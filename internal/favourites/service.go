// Package favourites coordinates the favourite country lifecycle: upstream
// lookup, image hosting and storage happen as one all-or-nothing save.
package favourites

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/mrlokans/atlas/internal/audit"
	"github.com/mrlokans/atlas/internal/countries"
	favouritesdb "github.com/mrlokans/atlas/internal/database/favourites"
	"github.com/mrlokans/atlas/internal/entities"
	"github.com/mrlokans/atlas/internal/media"
	"github.com/mrlokans/atlas/internal/metrics"
	"github.com/mrlokans/atlas/internal/tasks"
)

var (
	// ErrNotFound is returned when no favourite matches the requested id.
	// It is the store sentinel, re-exported so callers only need this
	// package for error checks.
	ErrNotFound = favouritesdb.ErrNotFound

	// ErrNameRequired is returned when a save request has no country name.
	ErrNameRequired = errors.New("country name is required")

	// ErrInvalidID is returned when an id is not a valid UUID.
	ErrInvalidID = errors.New("favourite id must be a valid UUID")

	// ErrDuplicate is returned when the country is already saved.
	ErrDuplicate = errors.New("country is already in favourites")

	// ErrNoUpdateFields is returned when an update request changes nothing.
	ErrNoUpdateFields = errors.New("no fields to update")
)

// CountryFetcher supplies country snapshots at save time.
type CountryFetcher interface {
	Fetch(ctx context.Context, name string) (*countries.Country, error)
}

// Service owns the favourite country lifecycle. The stored snapshot is
// captured once at save time and never re-fetched afterwards.
type Service struct {
	store    *favouritesdb.Repository
	fetcher  CountryFetcher
	uploader media.Uploader

	taskClient *tasks.Client
	auditSvc   *audit.Service
	metrics    *metrics.Metrics
}

// NewService creates a favourites service around the given store, country
// fetcher and media uploader.
func NewService(store *favouritesdb.Repository, fetcher CountryFetcher, uploader media.Uploader) *Service {
	return &Service{
		store:    store,
		fetcher:  fetcher,
		uploader: uploader,
	}
}

// SetTaskClient enables queued destruction of replaced images.
func (s *Service) SetTaskClient(client *tasks.Client) {
	s.taskClient = client
}

// SetAuditService enables audit trail events.
func (s *Service) SetAuditService(auditSvc *audit.Service) {
	s.auditSvc = auditSvc
}

// SetMetrics enables Prometheus counters.
func (s *Service) SetMetrics(m *metrics.Metrics) {
	s.metrics = m
}

// Save looks the country up, uploads the optional image and only then
// stores the favourite. If the lookup or the upload fails nothing is
// persisted.
func (s *Service) Save(ctx context.Context, name, notes string, imageData []byte) (*entities.FavouriteCountry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	country, err := s.fetcher.Fetch(ctx, name)
	if s.metrics != nil {
		s.metrics.IncrementCountryLookups()
		if err != nil {
			s.metrics.IncrementLookupFailures()
		}
	}
	if s.auditSvc != nil {
		s.auditSvc.LogLookup(name, err)
	}
	if err != nil {
		return nil, err
	}

	// Duplicate check runs on the canonical name, so "japan" cannot be
	// saved alongside "Japan".
	if _, err := s.store.GetByName(country.Name); err == nil {
		return nil, fmt.Errorf("%q: %w", country.Name, ErrDuplicate)
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	favourite := &entities.FavouriteCountry{
		Name:       country.Name,
		Capital:    country.Capital,
		Population: country.Population,
		Region:     country.Region,
		UserNotes:  notes,
	}

	if len(imageData) > 0 {
		publicID := media.NewPublicID(country.Name)
		imageURL, err := s.uploader.Upload(ctx, imageData, publicID)
		if err != nil {
			return nil, err
		}
		favourite.ImageURL = imageURL
		favourite.ImagePublicID = publicID
		if s.metrics != nil {
			s.metrics.IncrementMediaUploads()
		}
	}

	if err := s.store.Insert(favourite); err != nil {
		return nil, err
	}

	if s.auditSvc != nil {
		s.auditSvc.LogFavouriteSaved(favourite)
	}
	if s.metrics != nil {
		s.metrics.IncrementFavouritesSaved()
	}
	return favourite, nil
}

// Get returns a single favourite by id.
func (s *Service) Get(id string) (*entities.FavouriteCountry, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return s.store.GetByID(id)
}

// List returns stored favourites newest first along with the total count.
func (s *Service) List(limit, offset int) ([]entities.FavouriteCountry, int64, error) {
	return s.store.List(limit, offset)
}

// Update changes the user-editable fields of a favourite. A nil notes
// pointer leaves the notes untouched and a pointer to the empty string
// clears them. New image data replaces the hosted image; the old asset is
// destroyed once the update is stored.
func (s *Service) Update(ctx context.Context, id string, notes *string, imageData []byte) (*entities.FavouriteCountry, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	if notes == nil && len(imageData) == 0 {
		return nil, ErrNoUpdateFields
	}

	current, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}

	patch := favouritesdb.UpdatePatch{UserNotes: notes}
	if len(imageData) > 0 {
		publicID := media.NewPublicID(current.Name)
		imageURL, err := s.uploader.Upload(ctx, imageData, publicID)
		if err != nil {
			return nil, err
		}
		patch.ImageURL = &imageURL
		patch.ImagePublicID = &publicID
		if s.metrics != nil {
			s.metrics.IncrementMediaUploads()
		}
	}

	updated, err := s.store.Update(id, patch)
	if err != nil {
		return nil, err
	}

	if len(imageData) > 0 && current.ImagePublicID != "" {
		s.destroyImage(ctx, current.ImagePublicID)
	}

	if s.auditSvc != nil {
		s.auditSvc.LogFavouriteUpdated(updated)
	}
	return updated, nil
}

// Delete removes a favourite and its hosted image. Deleting an unknown id
// returns ErrNotFound.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}

	current, err := s.store.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.store.Delete(id); err != nil {
		return err
	}

	if current.ImagePublicID != "" {
		s.destroyImage(ctx, current.ImagePublicID)
	}

	if s.auditSvc != nil {
		s.auditSvc.LogFavouriteDeleted(current.ID, current.Name)
	}
	if s.metrics != nil {
		s.metrics.IncrementFavouritesDeleted()
	}
	return nil
}

// destroyImage queues removal of a hosted image, falling back to an inline
// call when the task queue is not running. Failures are logged, never
// surfaced: the favourite operation itself already succeeded.
func (s *Service) destroyImage(ctx context.Context, publicID string) {
	if s.taskClient != nil {
		_, err := s.taskClient.Add(tasks.DestroyMediaTask{PublicID: publicID}).Save()
		if err == nil {
			return
		}
		log.Printf("Failed to queue media destroy for %q: %v", publicID, err)
	}

	err := s.uploader.Destroy(ctx, publicID)
	if err != nil {
		log.Printf("Failed to destroy media asset %q: %v", publicID, err)
	}
	if s.auditSvc != nil {
		s.auditSvc.LogMediaDestroyed(publicID, err)
	}
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%q: %w", id, ErrInvalidID)
	}
	return nil
}
