// Package favourites provides database operations for saved country records.
//
// This package implements the storage half of the FavouritesService defined
// in internal/favourites.
//
// # Usage
//
//	repo := favourites.NewRepository(db)
//	saved, total, err := repo.List(20, 0)
package favourites

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mrlokans/atlas/internal/entities"
)

// ErrNotFound is returned when no favourite matches the given id or name.
var ErrNotFound = errors.New("favourite country not found")

// UpdatePatch carries the mutable favourite fields for partial updates. A
// nil field leaves the stored value untouched; a pointer to the empty
// string clears it.
type UpdatePatch struct {
	UserNotes     *string
	ImageURL      *string
	ImagePublicID *string
}

// Repository handles all favourite country database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new favourites repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Insert stores a new favourite, assigning its id and save timestamp.
// The country snapshot and notes are stored exactly as given; duplicate
// names are permitted at this level.
func (r *Repository) Insert(favourite *entities.FavouriteCountry) error {
	favourite.ID = uuid.NewString()
	favourite.DateSaved = time.Now().UTC()
	return r.db.Create(favourite).Error
}

// GetByID returns the favourite with the given id.
func (r *Repository) GetByID(id string) (*entities.FavouriteCountry, error) {
	var favourite entities.FavouriteCountry
	err := r.db.Where("id = ?", id).First(&favourite).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &favourite, nil
}

// GetByName returns the first favourite whose country name matches,
// ignoring case.
func (r *Repository) GetByName(name string) (*entities.FavouriteCountry, error) {
	var favourite entities.FavouriteCountry
	err := r.db.Where("LOWER(name) = ?", strings.ToLower(name)).First(&favourite).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &favourite, nil
}

// List returns favourites ordered newest first along with the total count.
// A non-positive limit returns all records.
func (r *Repository) List(limit, offset int) ([]entities.FavouriteCountry, int64, error) {
	var favourites []entities.FavouriteCountry
	var total int64

	if err := r.db.Model(&entities.FavouriteCountry{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.Order("date_saved DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&favourites).Error; err != nil {
		return nil, 0, err
	}
	return favourites, total, nil
}

// Count returns the number of saved favourites.
func (r *Repository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&entities.FavouriteCountry{}).Count(&total).Error
	return total, err
}

// Update applies the patch to the stored favourite and returns the updated
// record. The country snapshot, id and save date never change.
func (r *Repository) Update(id string, patch UpdatePatch) (*entities.FavouriteCountry, error) {
	favourite, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}

	if patch.UserNotes != nil {
		favourite.UserNotes = *patch.UserNotes
	}
	if patch.ImageURL != nil {
		favourite.ImageURL = *patch.ImageURL
	}
	if patch.ImagePublicID != nil {
		favourite.ImagePublicID = *patch.ImagePublicID
	}

	if err := r.db.Save(favourite).Error; err != nil {
		return nil, err
	}
	return favourite, nil
}

// Delete removes the favourite with the given id. Deleting an id that does
// not exist returns ErrNotFound.
func (r *Repository) Delete(id string) error {
	result := r.db.Where("id = ?", id).Delete(&entities.FavouriteCountry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
