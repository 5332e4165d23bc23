package domain

import (
	"time"

	"github.com/google/uuid"
)

type Country struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	ISOCode   string    `db:"iso_code" json:"iso_code"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type City struct {
	ID        uuid.UUID `db:"id" json:"id"`
	CountryID uuid.UUID `db:"country_id" json:"country_id"`
	Name      string    `db:"name" json:"name"`
	Slug      *string   `db:"slug" json:"slug,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CityWithCountry is the denormalized row used by destination pickers.
type CityWithCountry struct {
	City
	CountryName string `db:"country_name" json:"country_name"`
}
