package domain

import (
	"time"

	"github.com/google/uuid"
)

type Provider struct {
	ID                uuid.UUID `db:"id" json:"id"`
	Name              string    `db:"name" json:"name"`
	Category          *string   `db:"category" json:"category,omitempty"`
	ContactName       *string   `db:"contact_name" json:"contact_name,omitempty"`
	Email             *string   `db:"email" json:"email,omitempty"`
	Phone             *string   `db:"phone" json:"phone,omitempty"`
	CommissionPercent *float64  `db:"commission_percent" json:"commission_percent,omitempty"`
	Active            bool      `db:"active" json:"active"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}
