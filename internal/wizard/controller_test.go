package wizard

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
)

type fakeSubmitter struct {
	saveCalls    int
	publishCalls int
	lastID       uuid.UUID
	lastDraft    Draft
	lastFinal    bool
	assignID     uuid.UUID
	err          error
}

func (f *fakeSubmitter) SaveDraft(ctx context.Context, id uuid.UUID, draft Draft) (uuid.UUID, error) {
	f.saveCalls++
	f.lastID = id
	f.lastDraft = draft
	f.lastFinal = false
	if f.err != nil {
		return uuid.Nil, f.err
	}
	if id != uuid.Nil {
		return id, nil
	}
	return f.assignID, nil
}

func (f *fakeSubmitter) Publish(ctx context.Context, id uuid.UUID, draft Draft) (uuid.UUID, error) {
	f.publishCalls++
	f.lastID = id
	f.lastDraft = draft
	f.lastFinal = true
	if f.err != nil {
		return uuid.Nil, f.err
	}
	if id != uuid.Nil {
		return id, nil
	}
	return f.assignID, nil
}

func TestControllerSlugDerivesOnceFromTitle(t *testing.T) {
	c := NewController(&fakeSubmitter{})

	c.ReplaceGeneral(General{Title: "Café de la Playa!!"})
	if got := c.Draft().General.Slug; got != "cafe-de-la-playa" {
		t.Fatalf("derived slug = %q, want %q", got, "cafe-de-la-playa")
	}

	// Title change with the existing slug round-tripped: slug is frozen.
	g := c.Draft().General
	g.Title = "Otro Título"
	c.ReplaceGeneral(g)
	if got := c.Draft().General.Slug; got != "cafe-de-la-playa" {
		t.Fatalf("slug after title edit = %q, want unchanged", got)
	}
}

func TestControllerSlugManualEditFreezes(t *testing.T) {
	c := NewController(&fakeSubmitter{})

	c.ReplaceGeneral(General{Title: "Cancún VIP", Slug: "mi-slug"})
	if got := c.Draft().General.Slug; got != "mi-slug" {
		t.Fatalf("manual slug overwritten: got %q", got)
	}

	g := c.Draft().General
	g.Title = "Cancún VIP Premium"
	c.ReplaceGeneral(g)
	if got := c.Draft().General.Slug; got != "mi-slug" {
		t.Fatalf("manual slug lost after title edit: got %q", got)
	}

	// Clearing the slug re-enables derivation.
	g = c.Draft().General
	g.Slug = ""
	c.ReplaceGeneral(g)
	if got := c.Draft().General.Slug; got != "cancun-vip-premium" {
		t.Fatalf("cleared slug not re-derived: got %q", got)
	}
}

func TestControllerItineraryRenumbering(t *testing.T) {
	c := NewController(&fakeSubmitter{})
	c.ReplaceItinerary([]ItineraryDay{
		{Title: "Llegada"},
		{Title: "Tour de ciudad"},
		{Title: "Regreso"},
	})

	c.RemoveItineraryDay(2)

	days := c.Draft().Itinerary
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	if days[0].DayNumber != 1 || days[0].Title != "Llegada" {
		t.Fatalf("day 1 = %+v", days[0])
	}
	if days[1].DayNumber != 2 || days[1].Title != "Regreso" {
		t.Fatalf("day 2 = %+v", days[1])
	}

	// Out-of-range removals are ignored.
	c.RemoveItineraryDay(0)
	c.RemoveItineraryDay(9)
	if len(c.Draft().Itinerary) != 2 {
		t.Fatalf("out-of-range removal mutated itinerary")
	}
}

func TestControllerPriceUpsert(t *testing.T) {
	c := NewController(&fakeSubmitter{})

	c.UpsertPrice(PriceEntry{SeasonID: "1", OccupancyCode: "DBL", Price: 900, Cost: 700, CurrencyCode: "MXN"})
	c.UpsertPrice(PriceEntry{SeasonID: "1", OccupancyCode: "DBL", Price: 1000, Cost: 700, CurrencyCode: "MXN"})
	c.UpsertPrice(PriceEntry{SeasonID: "1", OccupancyCode: "SGL", Price: 1500, Cost: 1100, CurrencyCode: "MXN"})

	pricing := c.Draft().Pricing
	if len(pricing) != 2 {
		t.Fatalf("expected 2 price entries, got %d", len(pricing))
	}
	if pricing[0].Price != 1000 {
		t.Fatalf("upsert kept stale price %v", pricing[0].Price)
	}

	margin, ok := pricing[0].Margin()
	if !ok || margin != 30 {
		t.Fatalf("margin for 1000/700 = %v (ok=%v), want 30", margin, ok)
	}
	if _, ok := (PriceEntry{Price: 0, Cost: 10}).Margin(); ok {
		t.Fatalf("margin computed for zero price")
	}

	c.RemovePrice("1", "DBL")
	if len(c.Draft().Pricing) != 1 {
		t.Fatalf("remove by key failed")
	}
}

func TestControllerAvailabilityUpsert(t *testing.T) {
	c := NewController(&fakeSubmitter{})

	c.UpsertAvailability(AvailabilityDate{Date: "2026-05-01", Capacity: 20, Status: AvailabilityOpen})
	c.UpsertAvailability(AvailabilityDate{Date: "2026-05-01", Capacity: 0, Status: AvailabilityClosed})
	c.UpsertAvailability(AvailabilityDate{Date: "2026-05-08", Capacity: 10, Status: AvailabilityOpen})

	dates := c.Draft().Availability
	if len(dates) != 2 {
		t.Fatalf("expected 2 availability dates, got %d", len(dates))
	}
	if dates[0].Status != AvailabilityClosed || dates[0].Capacity != 0 {
		t.Fatalf("upsert kept stale availability %+v", dates[0])
	}

	c.RemoveAvailability("2026-05-08")
	if len(c.Draft().Availability) != 1 {
		t.Fatalf("remove by date failed")
	}
}

func TestControllerSetStepIgnoresOutOfRange(t *testing.T) {
	c := NewController(&fakeSubmitter{})
	c.SetStep(4)
	if c.Step() != 4 {
		t.Fatalf("step = %d, want 4", c.Step())
	}
	c.SetStep(0)
	c.SetStep(7)
	if c.Step() != 4 {
		t.Fatalf("out-of-range step mutated state: %d", c.Step())
	}
}

func TestControllerSaveDraftIdempotent(t *testing.T) {
	id := uuid.New()
	sub := &fakeSubmitter{assignID: id}
	c := NewController(sub)
	c.ReplaceGeneral(General{Title: "Cancún VIP"})

	first, err := c.SaveDraft(context.Background())
	if err != nil {
		t.Fatalf("first SaveDraft: %v", err)
	}
	if first != id {
		t.Fatalf("first save id = %v, want %v", first, id)
	}
	if sub.lastID != uuid.Nil {
		t.Fatalf("first save should submit with nil id, got %v", sub.lastID)
	}

	second, err := c.SaveDraft(context.Background())
	if err != nil {
		t.Fatalf("second SaveDraft: %v", err)
	}
	if second != id {
		t.Fatalf("second save id = %v, want %v", second, id)
	}
	if sub.lastID != id {
		t.Fatalf("second save should overwrite record %v, submitted %v", id, sub.lastID)
	}
}

func TestControllerPublishRequiresTitle(t *testing.T) {
	sub := &fakeSubmitter{assignID: uuid.New()}
	c := NewController(sub)

	if _, err := c.Publish(context.Background()); !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("publish without title: err = %v, want ErrTitleRequired", err)
	}
	if sub.publishCalls != 0 {
		t.Fatalf("publish reached the submitter despite failing validation")
	}

	c.ReplaceGeneral(General{Title: "Cancún VIP"})
	if _, err := c.Publish(context.Background()); err != nil {
		t.Fatalf("publish with title: %v", err)
	}
	if !sub.lastFinal {
		t.Fatalf("publish did not submit as final")
	}
}

func TestControllerFailureKeepsDraft(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("backend unavailable")}
	c := NewController(sub)
	c.ReplaceGeneral(General{Title: "Cancún VIP"})
	c.ReplaceInclusions([]string{"Vuelo"})

	if _, err := c.SaveDraft(context.Background()); err == nil {
		t.Fatalf("expected save error")
	}

	d := c.Draft()
	if d.General.Title != "Cancún VIP" || len(d.Inclusions) != 1 {
		t.Fatalf("draft mutated by failed save: %+v", d)
	}
	if c.SavedID() != uuid.Nil {
		t.Fatalf("failed save recorded an id")
	}

	// Retry after the backend recovers reuses the same draft.
	sub.err = nil
	sub.assignID = uuid.New()
	if _, err := c.SaveDraft(context.Background()); err != nil {
		t.Fatalf("retry SaveDraft: %v", err)
	}
	if sub.lastDraft.General.Title != "Cancún VIP" {
		t.Fatalf("retry submitted a different draft: %+v", sub.lastDraft.General)
	}
}

func TestControllerEndToEndCancunVIP(t *testing.T) {
	sub := &fakeSubmitter{assignID: uuid.New()}
	c := NewController(sub)

	c.ReplaceGeneral(General{Title: "Cancún VIP", DurationDays: 3, DurationNights: 2})
	c.SetStep(2)
	c.ReplaceItinerary([]ItineraryDay{
		{Title: "Llegada y check-in"},
		{Title: "Isla Mujeres"},
	})
	c.SetStep(3)
	c.ReplaceInclusions([]string{"Vuelo"})
	c.SetStep(5)
	c.UpsertPrice(PriceEntry{SeasonID: "1", OccupancyCode: "DBL", Price: 12000, Cost: 8000, CurrencyCode: "MXN"})

	if _, err := c.SaveDraft(context.Background()); err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}

	got := sub.lastDraft
	if got.General.Slug != "cancun-vip" {
		t.Fatalf("submitted slug = %q, want %q", got.General.Slug, "cancun-vip")
	}
	if len(got.Pricing) != 1 {
		t.Fatalf("submitted pricing entries = %d, want 1", len(got.Pricing))
	}
	margin, ok := got.Pricing[0].Margin()
	if !ok || math.Round(margin) != 33 {
		t.Fatalf("margin = %v (ok=%v), want ~33", margin, ok)
	}
	if len(got.Itinerary) != 2 || got.Itinerary[0].DayNumber != 1 || got.Itinerary[1].DayNumber != 2 {
		t.Fatalf("itinerary day numbers = %+v, want [1 2]", got.Itinerary)
	}
}
