package entities

import (
	"time"
)

// FavouriteCountry is a saved snapshot of country data together with the
// user's own annotations.
//
// Name, Capital, Population and Region are captured once at save time and
// never refreshed from the upstream API afterwards, so a favourite keeps
// showing the figures the user originally saved. ID and DateSaved are
// assigned by the store on insert and are immutable.
type FavouriteCountry struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	Name          string    `gorm:"index;size:256" json:"name"`
	Capital       string    `gorm:"size:256" json:"capital"`
	Population    int64     `json:"population"`
	Region        string    `gorm:"size:128" json:"region"`
	UserNotes     string    `gorm:"type:text" json:"user_notes"`
	ImageURL      string    `gorm:"size:2048" json:"image_url"`
	ImagePublicID string    `gorm:"size:256" json:"-"`
	DateSaved     time.Time `gorm:"index" json:"date_saved"`
}

// TableName specifies the table name for GORM
func (FavouriteCountry) TableName() string {
	return "favourite_countries"
}
