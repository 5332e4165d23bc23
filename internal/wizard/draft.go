// Package wizard holds the in-memory draft of a travel package while it is
// edited across the six-step creation flow. Step views never talk to each
// other; every mutation goes through the Controller as a whole-section
// replacement, so there is no partial-field merging to race against.
package wizard

import "github.com/google/uuid"

type General struct {
	Title          string    `json:"title"`
	Slug           string    `json:"slug"`
	DestinationID  uuid.UUID `json:"destination_id"`
	Description    string    `json:"description"`
	DurationDays   int       `json:"duration_days"`
	DurationNights int       `json:"duration_nights"`
}

type Activity struct {
	Time        string `json:"time"` // free-form, not validated
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ItineraryDay struct {
	DayNumber  int        `json:"day_number"`
	Title      string     `json:"title"`
	Activities []Activity `json:"activities"`
}

type MediaKind string

const (
	MediaKindURL      MediaKind = "url"
	MediaKindEmbedded MediaKind = "embedded"
)

// MediaRef is a tagged variant: an uploaded object URL or inline image bytes.
// Position zero in the draft's media list is the implicit cover image.
type MediaRef struct {
	Kind     MediaKind `json:"kind"`
	URL      string    `json:"url,omitempty"`
	Data     []byte    `json:"data,omitempty"`
	MIMEType string    `json:"mime_type,omitempty"`
}

func URLMedia(url string) MediaRef {
	return MediaRef{Kind: MediaKindURL, URL: url}
}

func EmbeddedMedia(data []byte, mimeType string) MediaRef {
	return MediaRef{Kind: MediaKindEmbedded, Data: data, MIMEType: mimeType}
}

type PriceEntry struct {
	SeasonID      string  `json:"season_id"`
	OccupancyCode string  `json:"occupancy_code"`
	Price         float64 `json:"price"`
	Cost          float64 `json:"cost"`
	CurrencyCode  string  `json:"currency_code"`
}

// Margin returns the margin as a percentage of the public price. It is a
// derived value, never stored; ok is false when the price is not positive.
func (p PriceEntry) Margin() (margin float64, ok bool) {
	if p.Price <= 0 {
		return 0, false
	}
	return (p.Price - p.Cost) / p.Price * 100, true
}

type AvailabilityStatus string

const (
	AvailabilityOpen   AvailabilityStatus = "OPEN"
	AvailabilityClosed AvailabilityStatus = "CLOSED"
)

type AvailabilityDate struct {
	Date     string             `json:"date"` // YYYY-MM-DD, unique per draft
	Capacity int                `json:"capacity"`
	Status   AvailabilityStatus `json:"status"`
}

// Draft is the composite package record under edition. One instance per
// editing session; it never touches storage until SaveDraft or Publish.
type Draft struct {
	General      General            `json:"general"`
	Itinerary    []ItineraryDay     `json:"itinerary"`
	Inclusions   []string           `json:"inclusions"`
	Exclusions   []string           `json:"exclusions"`
	Media        []MediaRef         `json:"media"`
	Pricing      []PriceEntry       `json:"pricing"`
	Availability []AvailabilityDate `json:"availability"`
}

// NewDraft returns the empty draft created at wizard mount.
func NewDraft() *Draft {
	return &Draft{}
}

// renumberItinerary keeps day numbers contiguous from 1 in display order.
func renumberItinerary(days []ItineraryDay) {
	for i := range days {
		days[i].DayNumber = i + 1
	}
}

// upsertPrice replaces the entry keyed by (seasonID, occupancyCode) or appends
// a new one, preserving insertion order.
func upsertPrice(entries []PriceEntry, entry PriceEntry) []PriceEntry {
	for i, e := range entries {
		if e.SeasonID == entry.SeasonID && e.OccupancyCode == entry.OccupancyCode {
			entries[i] = entry
			return entries
		}
	}
	return append(entries, entry)
}

func removePrice(entries []PriceEntry, seasonID, occupancyCode string) []PriceEntry {
	out := entries[:0]
	for _, e := range entries {
		if e.SeasonID == seasonID && e.OccupancyCode == occupancyCode {
			continue
		}
		out = append(out, e)
	}
	return out
}

func upsertAvailability(dates []AvailabilityDate, date AvailabilityDate) []AvailabilityDate {
	for i, d := range dates {
		if d.Date == date.Date {
			dates[i] = date
			return dates
		}
	}
	return append(dates, date)
}

func removeAvailability(dates []AvailabilityDate, date string) []AvailabilityDate {
	out := dates[:0]
	for _, d := range dates {
		if d.Date == date {
			continue
		}
		out = append(out, d)
	}
	return out
}
