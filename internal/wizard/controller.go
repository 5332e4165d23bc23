package wizard

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/util"
)

const (
	FirstStep = 1
	LastStep  = 6
)

var ErrTitleRequired = errors.New("package title is required")

// Submitter is the persistence boundary the controller hands the draft to.
// id is uuid.Nil on the first save; implementations return the record's id so
// repeated saves overwrite the same row.
type Submitter interface {
	SaveDraft(ctx context.Context, id uuid.UUID, draft Draft) (uuid.UUID, error)
	Publish(ctx context.Context, id uuid.UUID, draft Draft) (uuid.UUID, error)
}

// Controller is the single source of truth for one wizard session.
type Controller struct {
	draft     *Draft
	step      int
	savedID   uuid.UUID
	submitter Submitter
}

func NewController(submitter Submitter) *Controller {
	return &Controller{
		draft:     NewDraft(),
		step:      FirstStep,
		submitter: submitter,
	}
}

func (c *Controller) Draft() Draft { return *c.draft }

func (c *Controller) Step() int { return c.step }

// SavedID is the persisted draft id, uuid.Nil before the first save.
func (c *Controller) SavedID() uuid.UUID { return c.savedID }

// SetStep moves the active step pointer. Out-of-range values are ignored
// rather than corrupting state; callers clamp to bounds themselves.
func (c *Controller) SetStep(n int) {
	if n < FirstStep || n > LastStep {
		return
	}
	c.step = n
}

// ReplaceGeneral swaps the general section wholesale. The slug auto-derives
// from the title only while it is empty: once non-empty, whether derived or
// typed by the user, later title edits leave it untouched.
func (c *Controller) ReplaceGeneral(g General) {
	if g.Slug == "" && g.Title != "" {
		g.Slug = util.Slugify(g.Title)
	}
	c.draft.General = g
}

// ReplaceItinerary swaps the whole itinerary and renumbers days from 1.
func (c *Controller) ReplaceItinerary(days []ItineraryDay) {
	renumberItinerary(days)
	c.draft.Itinerary = days
}

// RemoveItineraryDay deletes the day at the given 1-based number and
// renumbers the remaining days, preserving their relative order.
func (c *Controller) RemoveItineraryDay(dayNumber int) {
	if dayNumber < 1 || dayNumber > len(c.draft.Itinerary) {
		return
	}
	days := append(c.draft.Itinerary[:dayNumber-1], c.draft.Itinerary[dayNumber:]...)
	renumberItinerary(days)
	c.draft.Itinerary = days
}

// Duplicates within a list are the caller's responsibility.
func (c *Controller) ReplaceInclusions(items []string) { c.draft.Inclusions = items }

func (c *Controller) ReplaceExclusions(items []string) { c.draft.Exclusions = items }

func (c *Controller) ReplaceMedia(refs []MediaRef) { c.draft.Media = refs }

func (c *Controller) ReplacePricing(entries []PriceEntry) {
	deduped := make([]PriceEntry, 0, len(entries))
	for _, e := range entries {
		deduped = upsertPrice(deduped, e)
	}
	c.draft.Pricing = deduped
}

// UpsertPrice sets the entry for (seasonID, occupancyCode); at most one entry
// exists per key pair, the latest value wins.
func (c *Controller) UpsertPrice(entry PriceEntry) {
	c.draft.Pricing = upsertPrice(c.draft.Pricing, entry)
}

func (c *Controller) RemovePrice(seasonID, occupancyCode string) {
	c.draft.Pricing = removePrice(c.draft.Pricing, seasonID, occupancyCode)
}

func (c *Controller) ReplaceAvailability(dates []AvailabilityDate) {
	deduped := make([]AvailabilityDate, 0, len(dates))
	for _, d := range dates {
		deduped = upsertAvailability(deduped, d)
	}
	c.draft.Availability = deduped
}

func (c *Controller) UpsertAvailability(date AvailabilityDate) {
	c.draft.Availability = upsertAvailability(c.draft.Availability, date)
}

func (c *Controller) RemoveAvailability(date string) {
	c.draft.Availability = removeAvailability(c.draft.Availability, date)
}

// SaveDraft submits the draft as non-final. Idempotent: the id returned by
// the first save is reused, so repeated calls overwrite one record. On error
// the draft is left intact for retry.
func (c *Controller) SaveDraft(ctx context.Context) (uuid.UUID, error) {
	id, err := c.submitter.SaveDraft(ctx, c.savedID, *c.draft)
	if err != nil {
		return uuid.Nil, err
	}
	c.savedID = id
	return id, nil
}

// Publish submits the draft as final. A non-empty title is the only hard
// gate; deeper validation belongs to the persistence boundary.
func (c *Controller) Publish(ctx context.Context) (uuid.UUID, error) {
	if c.draft.General.Title == "" {
		return uuid.Nil, ErrTitleRequired
	}
	id, err := c.submitter.Publish(ctx, c.savedID, *c.draft)
	if err != nil {
		return uuid.Nil, err
	}
	c.savedID = id
	return id, nil
}
