package domain

import (
	"time"

	"github.com/google/uuid"
)

type Promotion struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	Title           string     `db:"title" json:"title"`
	Description     *string    `db:"description" json:"description,omitempty"`
	DiscountPercent float64    `db:"discount_percent" json:"discount_percent"`
	PackageID       *uuid.UUID `db:"package_id" json:"package_id,omitempty"`
	BannerImageURL  *string    `db:"banner_image_url" json:"banner_image_url,omitempty"`
	StartsAt        time.Time  `db:"starts_at" json:"starts_at"`
	EndsAt          time.Time  `db:"ends_at" json:"ends_at"`
	Active          bool       `db:"active" json:"active"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

func (p Promotion) CurrentlyRunning(now time.Time) bool {
	return p.Active && !now.Before(p.StartsAt) && now.Before(p.EndsAt)
}
