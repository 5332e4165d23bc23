package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/media"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/repository/ports"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/wizard"
)

func newPackageFixture() (*PackageService, *memoryPackageRepo, *packageStorage) {
	repo := newMemoryPackageRepo()
	storage := &packageStorage{}
	svc := NewPackageService(repo, storage, media.NewImageProcessor(media.DefaultMaxDimension), PackageServiceConfig{
		Bucket:        "viajes-packages",
		PublicBaseURL: "https://cdn.example.com",
	})
	return svc, repo, storage
}

func cancunDraft() wizard.Draft {
	return wizard.Draft{
		General: wizard.General{
			Title:          "Cancún VIP",
			Slug:           "cancun-vip",
			DurationDays:   5,
			DurationNights: 4,
		},
		Pricing: []wizard.PriceEntry{
			{SeasonID: "alta", OccupancyCode: "DBL", Price: 12000, Cost: 8000, CurrencyCode: "MXN"},
		},
		Availability: []wizard.AvailabilityDate{
			{Date: "2026-04-10", Capacity: 20, Status: wizard.AvailabilityOpen},
		},
	}
}

func TestPackageService_SaveDraftThenPublishReusesRecord(t *testing.T) {
	svc, repo, _ := newPackageFixture()
	ctx := context.Background()

	id, err := svc.SaveDraft(ctx, uuid.Nil, cancunDraft())
	if err != nil {
		t.Fatalf("SaveDraft returned error: %v", err)
	}

	stored, err := repo.FindByID(ctx, id)
	if err != nil {
		t.Fatalf("draft not stored: %v", err)
	}
	if stored.Status != domain.PackageStatusDraft {
		t.Fatalf("expected draft status, got %s", stored.Status)
	}

	again, err := svc.SaveDraft(ctx, id, cancunDraft())
	if err != nil {
		t.Fatalf("second SaveDraft returned error: %v", err)
	}
	if again != id {
		t.Fatalf("second save should reuse id %s, got %s", id, again)
	}

	published, err := svc.Publish(ctx, id, cancunDraft())
	if err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if published != id {
		t.Fatalf("publish should keep id %s, got %s", id, published)
	}
	stored, _ = repo.FindByID(ctx, id)
	if stored.Status != domain.PackageStatusActive {
		t.Fatalf("expected active status after publish, got %s", stored.Status)
	}
	if len(repo.items) != 1 {
		t.Fatalf("expected one stored package, got %d", len(repo.items))
	}
}

func TestPackageService_PublishRequiresTitle(t *testing.T) {
	svc, _, _ := newPackageFixture()

	draft := cancunDraft()
	draft.General.Title = "  "
	if _, err := svc.Publish(context.Background(), uuid.Nil, draft); !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
}

func TestPackageService_SlugDerivedWhenEmpty(t *testing.T) {
	svc, repo, _ := newPackageFixture()

	draft := cancunDraft()
	draft.General.Title = "Café de la Playa"
	draft.General.Slug = ""

	id, err := svc.SaveDraft(context.Background(), uuid.Nil, draft)
	if err != nil {
		t.Fatalf("SaveDraft returned error: %v", err)
	}
	stored, _ := repo.FindByID(context.Background(), id)
	if stored.Slug != "cafe-de-la-playa" {
		t.Fatalf("expected derived slug cafe-de-la-playa, got %q", stored.Slug)
	}
}

func TestPackageService_SlugConflict(t *testing.T) {
	svc, _, _ := newPackageFixture()
	ctx := context.Background()

	if _, err := svc.Publish(ctx, uuid.Nil, cancunDraft()); err != nil {
		t.Fatalf("first publish returned error: %v", err)
	}
	if _, err := svc.Publish(ctx, uuid.Nil, cancunDraft()); !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}
}

func TestPackageService_EmbeddedMediaUploaded(t *testing.T) {
	svc, repo, storage := newPackageFixture()

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, image.NewRGBA(image.Rect(0, 0, 8, 8)), nil); err != nil {
		t.Fatalf("encoding fixture image: %v", err)
	}

	draft := cancunDraft()
	draft.Media = []wizard.MediaRef{
		wizard.URLMedia("https://cdn.example.com/existing.jpg"),
		wizard.EmbeddedMedia(buf.Bytes(), "image/jpeg"),
	}

	id, err := svc.SaveDraft(context.Background(), uuid.Nil, draft)
	if err != nil {
		t.Fatalf("SaveDraft returned error: %v", err)
	}
	if storage.uploads != 1 {
		t.Fatalf("expected one upload, got %d", storage.uploads)
	}

	stored, _ := repo.FindByID(context.Background(), id)
	if len(stored.Media) != 2 {
		t.Fatalf("expected two media refs, got %d", len(stored.Media))
	}
	for _, ref := range stored.Media {
		if ref.Kind != "url" || ref.URL == "" {
			t.Fatalf("stored media must resolve to urls, got %+v", ref)
		}
	}
	if !strings.HasPrefix(stored.Media[1].URL, "https://cdn.example.com/packages/") {
		t.Fatalf("uploaded ref should use the public base, got %q", stored.Media[1].URL)
	}
}

func TestPackageService_EmbeddedMediaSizeLimit(t *testing.T) {
	repo := newMemoryPackageRepo()
	svc := NewPackageService(repo, &packageStorage{}, media.NewImageProcessor(media.DefaultMaxDimension), PackageServiceConfig{
		Bucket:        "viajes-packages",
		MaxImageBytes: 16,
	})

	draft := cancunDraft()
	draft.Media = []wizard.MediaRef{wizard.EmbeddedMedia(make([]byte, 64), "image/jpeg")}

	if _, err := svc.SaveDraft(context.Background(), uuid.Nil, draft); !errors.Is(err, ErrImageTooLarge) {
		t.Fatalf("expected ErrImageTooLarge, got %v", err)
	}
}

func TestPackageService_LoadDraftRoundTrip(t *testing.T) {
	svc, _, _ := newPackageFixture()
	ctx := context.Background()

	draft := cancunDraft()
	draft.Itinerary = []wizard.ItineraryDay{
		{DayNumber: 1, Title: "Llegada", Activities: []wizard.Activity{{Time: "10:00", Title: "Check-in"}}},
	}
	draft.Inclusions = []string{"Desayuno"}

	id, err := svc.SaveDraft(ctx, uuid.Nil, draft)
	if err != nil {
		t.Fatalf("SaveDraft returned error: %v", err)
	}

	loaded, err := svc.LoadDraft(ctx, id)
	if err != nil {
		t.Fatalf("LoadDraft returned error: %v", err)
	}
	if loaded.General.Title != "Cancún VIP" || loaded.General.Slug != "cancun-vip" {
		t.Fatalf("general section did not round trip: %+v", loaded.General)
	}
	if len(loaded.Itinerary) != 1 || loaded.Itinerary[0].Activities[0].Title != "Check-in" {
		t.Fatalf("itinerary did not round trip: %+v", loaded.Itinerary)
	}
	if len(loaded.Pricing) != 1 || loaded.Pricing[0].SeasonID != "alta" {
		t.Fatalf("pricing did not round trip: %+v", loaded.Pricing)
	}
}

func TestPackageService_LoadDraftRejectsPublished(t *testing.T) {
	svc, _, _ := newPackageFixture()
	ctx := context.Background()

	id, err := svc.Publish(ctx, uuid.Nil, cancunDraft())
	if err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if _, err := svc.LoadDraft(ctx, id); !errors.Is(err, ErrPackageNotDraft) {
		t.Fatalf("expected ErrPackageNotDraft, got %v", err)
	}
}

type packageStorage struct {
	uploads    int
	lastObject string
}

func (s *packageStorage) Upload(_ context.Context, _ string, objectName, _ string, reader io.Reader, _ int64) (string, error) {
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", err
	}
	s.uploads++
	s.lastObject = objectName
	return objectName, nil
}

var _ ports.ObjectStorage = (*packageStorage)(nil)
