package demo

import (
	"log"

	favouritesdb "github.com/mrlokans/atlas/internal/database/favourites"
	"github.com/mrlokans/atlas/internal/entities"
)

// Seeder fills an empty database with a handful of sample favourites so the
// API has data to browse in local development. A database that already holds
// favourites is never touched.
type Seeder struct {
	repo *favouritesdb.Repository
}

func NewSeeder(repo *favouritesdb.Repository) *Seeder {
	return &Seeder{repo: repo}
}

// Seed inserts the sample favourites when the database is empty. Returns the
// number of records inserted.
func (s *Seeder) Seed() (int, error) {
	count, err := s.repo.Count()
	if err != nil {
		return 0, err
	}
	if count > 0 {
		log.Printf("Demo seed: database already has %d favourites, skipping", count)
		return 0, nil
	}

	samples := sampleFavourites()
	for i := range samples {
		if err := s.repo.Insert(&samples[i]); err != nil {
			return i, err
		}
	}

	log.Printf("Demo seed: inserted %d sample favourites", len(samples))
	return len(samples), nil
}

func sampleFavourites() []entities.FavouriteCountry {
	return []entities.FavouriteCountry{
		{
			Name:       "Japan",
			Capital:    "Tokyo",
			Population: 125836021,
			Region:     "Asia",
			UserNotes:  "Cherry blossom season, late March.",
		},
		{
			Name:       "Estonia",
			Capital:    "Tallinn",
			Population: 1331057,
			Region:     "Europe",
			UserNotes:  "Old town and the digital nomad visa.",
		},
		{
			Name:       "Brazil",
			Capital:    "Brasília",
			Population: 212559409,
			Region:     "Americas",
			UserNotes:  "",
		},
	}
}
