package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type PackageStatus string

const (
	PackageStatusDraft    PackageStatus = "draft"
	PackageStatusActive   PackageStatus = "active"
	PackageStatusArchived PackageStatus = "archived"
)

type PackageActivity struct {
	Time        string `json:"time"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type PackageItineraryDay struct {
	DayNumber  int               `json:"day_number"`
	Title      string            `json:"title"`
	Activities []PackageActivity `json:"activities"`
}

type PackageItinerary []PackageItineraryDay

// PackageMediaRef is either an uploaded object URL or inline image bytes.
// Exactly one of URL / Data is populated depending on Kind.
type PackageMediaRef struct {
	Kind     string `json:"kind"` // "url" or "embedded"
	URL      string `json:"url,omitempty"`
	Data     []byte `json:"data,omitempty"`
	MIMEType string `json:"mime_type,omitempty"`
}

type PackageMedia []PackageMediaRef

type PackagePriceEntry struct {
	SeasonID      string  `json:"season_id"`
	OccupancyCode string  `json:"occupancy_code"`
	Price         float64 `json:"price"`
	Cost          float64 `json:"cost"`
	CurrencyCode  string  `json:"currency_code"`
}

type PackagePricing []PackagePriceEntry

type PackageAvailability []PackageAvailabilityDate

type PackageAvailabilityDate struct {
	Date     string `json:"date"` // YYYY-MM-DD
	Capacity int    `json:"capacity"`
	Status   string `json:"status"` // OPEN or CLOSED
}

type TravelPackage struct {
	ID             uuid.UUID           `db:"id" json:"id"`
	Title          string              `db:"title" json:"title"`
	Slug           string              `db:"slug" json:"slug"`
	DestinationID  *uuid.UUID          `db:"destination_id" json:"destination_id,omitempty"`
	Description    *string             `db:"description" json:"description,omitempty"`
	DurationDays   int                 `db:"duration_days" json:"duration_days"`
	DurationNights int                 `db:"duration_nights" json:"duration_nights"`
	Status         PackageStatus       `db:"status" json:"status"`
	Itinerary      PackageItinerary    `db:"itinerary" json:"itinerary"`
	Inclusions     StringList          `db:"inclusions" json:"inclusions"`
	Exclusions     StringList          `db:"exclusions" json:"exclusions"`
	Media          PackageMedia        `db:"media" json:"media"`
	Pricing        PackagePricing      `db:"pricing" json:"pricing"`
	Availability   PackageAvailability `db:"availability" json:"availability"`
	CreatedAt      time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time           `db:"updated_at" json:"updated_at"`
	UpdatedBy      *uuid.UUID          `db:"updated_by" json:"updated_by,omitempty"`
}

func (p TravelPackage) IsPublished() bool {
	return p.Status == PackageStatusActive
}

// CoverImage returns the media ref at position zero, the implicit cover.
func (p TravelPackage) CoverImage() (PackageMediaRef, bool) {
	if len(p.Media) == 0 {
		return PackageMediaRef{}, false
	}
	return p.Media[0], true
}

// StringList is a Postgres text[] column.
type StringList = pq.StringArray

func jsonValue(v any) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func jsonScan(dst any, value any) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("expected []byte for jsonb column")
	}
	return json.Unmarshal(bytes, dst)
}

func (i PackageItinerary) Value() (driver.Value, error)    { return jsonValue(i) }
func (i *PackageItinerary) Scan(value any) error           { return jsonScan(i, value) }
func (m PackageMedia) Value() (driver.Value, error)        { return jsonValue(m) }
func (m *PackageMedia) Scan(value any) error               { return jsonScan(m, value) }
func (p PackagePricing) Value() (driver.Value, error)      { return jsonValue(p) }
func (p *PackagePricing) Scan(value any) error             { return jsonScan(p, value) }
func (a PackageAvailability) Value() (driver.Value, error) { return jsonValue(a) }
func (a *PackageAvailability) Scan(value any) error        { return jsonScan(a, value) }

type PackageFilter struct {
	Status        *PackageStatus
	DestinationID *uuid.UUID
	Query         *string
	Limit         int
	Offset        int
}
