package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/media"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/repository/ports"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/util"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/wizard"
)

var (
	ErrPackageNotFound  = errors.New("package not found")
	ErrSlugTaken        = errors.New("package slug already in use")
	ErrPackageNotDraft  = errors.New("package is not a draft")
	ErrImageTooLarge    = errors.New("image exceeds the upload size limit")
	ErrTitleRequired    = wizard.ErrTitleRequired
	ErrPackagePublished = errors.New("package already published")
)

type PackageServiceConfig struct {
	Bucket        string
	PublicBaseURL string
	MaxImageBytes int64
	MaxDimension  int
}

type PackageService struct {
	packages  ports.PackageRepository
	storage   ports.ObjectStorage
	processor media.Processor

	bucket        string
	publicBase    string
	maxImageBytes int64
	maxDimension  int
}

func NewPackageService(packages ports.PackageRepository, storage ports.ObjectStorage, processor media.Processor, cfg PackageServiceConfig) *PackageService {
	maxBytes := cfg.MaxImageBytes
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	maxDim := cfg.MaxDimension
	if maxDim <= 0 {
		maxDim = media.DefaultMaxDimension
	}
	return &PackageService{
		packages:      packages,
		storage:       storage,
		processor:     processor,
		bucket:        cfg.Bucket,
		publicBase:    strings.TrimRight(cfg.PublicBaseURL, "/"),
		maxImageBytes: maxBytes,
		maxDimension:  maxDim,
	}
}

// SaveDraft persists the wizard draft without publishing it. A uuid.Nil id
// creates a new row; any other id overwrites the existing draft.
func (s *PackageService) SaveDraft(ctx context.Context, id uuid.UUID, draft wizard.Draft) (uuid.UUID, error) {
	pkg, err := s.draftToPackage(ctx, id, draft)
	if err != nil {
		return uuid.Nil, err
	}
	pkg.Status = domain.PackageStatusDraft

	saved, err := s.persist(ctx, id, pkg)
	if err != nil {
		return uuid.Nil, err
	}
	return saved.ID, nil
}

// Publish persists the draft as an active package. The title gate already
// ran in the wizard controller; slug uniqueness is enforced here.
func (s *PackageService) Publish(ctx context.Context, id uuid.UUID, draft wizard.Draft) (uuid.UUID, error) {
	if strings.TrimSpace(draft.General.Title) == "" {
		return uuid.Nil, ErrTitleRequired
	}

	pkg, err := s.draftToPackage(ctx, id, draft)
	if err != nil {
		return uuid.Nil, err
	}
	pkg.Status = domain.PackageStatusActive

	saved, err := s.persist(ctx, id, pkg)
	if err != nil {
		return uuid.Nil, err
	}
	return saved.ID, nil
}

func (s *PackageService) persist(ctx context.Context, id uuid.UUID, pkg *domain.TravelPackage) (*domain.TravelPackage, error) {
	if id == uuid.Nil {
		created, err := s.packages.Create(ctx, pkg)
		if err != nil {
			if isUniqueViolation(err) {
				return nil, ErrSlugTaken
			}
			return nil, err
		}
		return created, nil
	}

	pkg.ID = id
	updated, err := s.packages.Update(ctx, pkg)
	if err != nil {
		switch {
		case isNotFound(err):
			return nil, ErrPackageNotFound
		case isUniqueViolation(err):
			return nil, ErrSlugTaken
		default:
			return nil, err
		}
	}
	return updated, nil
}

// draftToPackage maps the wizard's section model onto the stored record,
// uploading any embedded media bytes along the way.
func (s *PackageService) draftToPackage(ctx context.Context, id uuid.UUID, draft wizard.Draft) (*domain.TravelPackage, error) {
	slug := draft.General.Slug
	if slug == "" && draft.General.Title != "" {
		slug = util.Slugify(draft.General.Title)
	}

	pkg := &domain.TravelPackage{
		Title:          strings.TrimSpace(draft.General.Title),
		Slug:           slug,
		DurationDays:   draft.General.DurationDays,
		DurationNights: draft.General.DurationNights,
		Inclusions:     domain.StringList(draft.Inclusions),
		Exclusions:     domain.StringList(draft.Exclusions),
	}
	if draft.General.DestinationID != uuid.Nil {
		destID := draft.General.DestinationID
		pkg.DestinationID = &destID
	}
	if desc := strings.TrimSpace(draft.General.Description); desc != "" {
		pkg.Description = &desc
	}

	pkg.Itinerary = make(domain.PackageItinerary, 0, len(draft.Itinerary))
	for _, day := range draft.Itinerary {
		activities := make([]domain.PackageActivity, 0, len(day.Activities))
		for _, act := range day.Activities {
			activities = append(activities, domain.PackageActivity{
				Time:        act.Time,
				Title:       act.Title,
				Description: act.Description,
			})
		}
		pkg.Itinerary = append(pkg.Itinerary, domain.PackageItineraryDay{
			DayNumber:  day.DayNumber,
			Title:      day.Title,
			Activities: activities,
		})
	}

	pkg.Media = make(domain.PackageMedia, 0, len(draft.Media))
	for i, ref := range draft.Media {
		switch ref.Kind {
		case wizard.MediaKindURL:
			pkg.Media = append(pkg.Media, domain.PackageMediaRef{Kind: "url", URL: ref.URL})
		case wizard.MediaKindEmbedded:
			url, err := s.uploadEmbedded(ctx, id, i, ref)
			if err != nil {
				return nil, err
			}
			pkg.Media = append(pkg.Media, domain.PackageMediaRef{Kind: "url", URL: url})
		}
	}

	pkg.Pricing = make(domain.PackagePricing, 0, len(draft.Pricing))
	for _, entry := range draft.Pricing {
		pkg.Pricing = append(pkg.Pricing, domain.PackagePriceEntry{
			SeasonID:      entry.SeasonID,
			OccupancyCode: entry.OccupancyCode,
			Price:         entry.Price,
			Cost:          entry.Cost,
			CurrencyCode:  entry.CurrencyCode,
		})
	}

	pkg.Availability = make(domain.PackageAvailability, 0, len(draft.Availability))
	for _, date := range draft.Availability {
		pkg.Availability = append(pkg.Availability, domain.PackageAvailabilityDate{
			Date:     date.Date,
			Capacity: date.Capacity,
			Status:   string(date.Status),
		})
	}

	return pkg, nil
}

// UploadMedia stores a single gallery image out of band and returns its
// public URL, so the wizard can hold a URL ref instead of raw bytes.
func (s *PackageService) UploadMedia(ctx context.Context, pkgID uuid.UUID, data []byte, mimeType string) (string, error) {
	return s.uploadEmbedded(ctx, pkgID, 0, wizard.EmbeddedMedia(data, mimeType))
}

func (s *PackageService) uploadEmbedded(ctx context.Context, pkgID uuid.UUID, position int, ref wizard.MediaRef) (string, error) {
	if int64(len(ref.Data)) > s.maxImageBytes {
		return "", ErrImageTooLarge
	}

	result, err := s.processor.Process(ctx, media.Upload{
		Reader:      bytes.NewReader(ref.Data),
		Size:        int64(len(ref.Data)),
		ContentType: ref.MIMEType,
	}, s.maxDimension)
	if err != nil {
		return "", err
	}

	key := pkgID.String()
	if pkgID == uuid.Nil {
		key = uuid.NewString()
	}
	objectName := fmt.Sprintf("packages/%s/%d-%d.jpg", key, position, time.Now().UnixNano())

	stored, err := s.storage.Upload(ctx, s.bucket, objectName, result.ContentType,
		bytes.NewReader(result.Bytes), int64(len(result.Bytes)))
	if err != nil {
		return "", err
	}
	if s.publicBase != "" {
		return s.publicBase + "/" + strings.TrimLeft(stored, "/"), nil
	}
	return stored, nil
}

func (s *PackageService) Get(ctx context.Context, id uuid.UUID) (*domain.TravelPackage, error) {
	pkg, err := s.packages.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}
	return pkg, nil
}

func (s *PackageService) GetBySlug(ctx context.Context, slug string) (*domain.TravelPackage, error) {
	pkg, err := s.packages.FindBySlug(ctx, slug)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}
	return pkg, nil
}

func (s *PackageService) List(ctx context.Context, filter domain.PackageFilter) ([]domain.TravelPackage, error) {
	filter.Limit, filter.Offset = normalizePagination(filter.Limit, filter.Offset)
	return s.packages.List(ctx, filter)
}

func (s *PackageService) Archive(ctx context.Context, id uuid.UUID, actorID uuid.UUID) error {
	if err := s.packages.Archive(ctx, id, actorID); err != nil {
		if isNotFound(err) {
			return ErrPackageNotFound
		}
		return err
	}
	return nil
}

// LoadDraft rebuilds a wizard draft from a stored package so editing can
// resume where it left off. Only draft-status packages can be reopened.
func (s *PackageService) LoadDraft(ctx context.Context, id uuid.UUID) (*wizard.Draft, error) {
	pkg, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg.Status != domain.PackageStatusDraft {
		return nil, ErrPackageNotDraft
	}

	draft := wizard.NewDraft()
	draft.General = wizard.General{
		Title:          pkg.Title,
		Slug:           pkg.Slug,
		DurationDays:   pkg.DurationDays,
		DurationNights: pkg.DurationNights,
	}
	if pkg.DestinationID != nil {
		draft.General.DestinationID = *pkg.DestinationID
	}
	if pkg.Description != nil {
		draft.General.Description = *pkg.Description
	}

	for _, day := range pkg.Itinerary {
		activities := make([]wizard.Activity, 0, len(day.Activities))
		for _, act := range day.Activities {
			activities = append(activities, wizard.Activity{
				Time:        act.Time,
				Title:       act.Title,
				Description: act.Description,
			})
		}
		draft.Itinerary = append(draft.Itinerary, wizard.ItineraryDay{
			DayNumber:  day.DayNumber,
			Title:      day.Title,
			Activities: activities,
		})
	}
	draft.Inclusions = []string(pkg.Inclusions)
	draft.Exclusions = []string(pkg.Exclusions)
	for _, ref := range pkg.Media {
		draft.Media = append(draft.Media, wizard.URLMedia(ref.URL))
	}
	for _, entry := range pkg.Pricing {
		draft.Pricing = append(draft.Pricing, wizard.PriceEntry{
			SeasonID:      entry.SeasonID,
			OccupancyCode: entry.OccupancyCode,
			Price:         entry.Price,
			Cost:          entry.Cost,
			CurrencyCode:  entry.CurrencyCode,
		})
	}
	for _, date := range pkg.Availability {
		draft.Availability = append(draft.Availability, wizard.AvailabilityDate{
			Date:     date.Date,
			Capacity: date.Capacity,
			Status:   wizard.AvailabilityStatus(date.Status),
		})
	}
	return draft, nil
}
