package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/repository/ports"
)

var ErrPromotionNotFound = errors.New("promotion not found")

type PromotionService struct {
	promotions ports.PromotionRepository
	packages   ports.PackageRepository
	now        func() time.Time
}

func NewPromotionService(promotions ports.PromotionRepository, packages ports.PackageRepository) *PromotionService {
	return &PromotionService{
		promotions: promotions,
		packages:   packages,
		now:        time.Now,
	}
}

type PromotionInput struct {
	Title           string
	Description     *string
	DiscountPercent float64
	PackageID       *uuid.UUID
	BannerImageURL  *string
	StartsAt        time.Time
	EndsAt          time.Time
	Active          *bool
}

func (in PromotionInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return errors.New("promotion title is required")
	}
	if in.DiscountPercent <= 0 || in.DiscountPercent > 100 {
		return errors.New("discount percent must be between 0 and 100")
	}
	if !in.EndsAt.After(in.StartsAt) {
		return errors.New("promotion must end after it starts")
	}
	return nil
}

func (s *PromotionService) Create(ctx context.Context, input PromotionInput) (*domain.Promotion, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if input.PackageID != nil {
		if _, err := s.packages.FindByID(ctx, *input.PackageID); err != nil {
			if isNotFound(err) {
				return nil, ErrPackageNotFound
			}
			return nil, err
		}
	}

	promotion := &domain.Promotion{
		Title:           strings.TrimSpace(input.Title),
		Description:     input.Description,
		DiscountPercent: input.DiscountPercent,
		PackageID:       input.PackageID,
		BannerImageURL:  input.BannerImageURL,
		StartsAt:        input.StartsAt,
		EndsAt:          input.EndsAt,
		Active:          true,
	}
	if input.Active != nil {
		promotion.Active = *input.Active
	}
	return s.promotions.Create(ctx, promotion)
}

func (s *PromotionService) Update(ctx context.Context, id uuid.UUID, input PromotionInput) (*domain.Promotion, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	promotion, err := s.promotions.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPromotionNotFound
		}
		return nil, err
	}

	promotion.Title = strings.TrimSpace(input.Title)
	promotion.Description = input.Description
	promotion.DiscountPercent = input.DiscountPercent
	promotion.PackageID = input.PackageID
	promotion.BannerImageURL = input.BannerImageURL
	promotion.StartsAt = input.StartsAt
	promotion.EndsAt = input.EndsAt
	if input.Active != nil {
		promotion.Active = *input.Active
	}
	return s.promotions.Update(ctx, promotion)
}

func (s *PromotionService) Get(ctx context.Context, id uuid.UUID) (*domain.Promotion, error) {
	promotion, err := s.promotions.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPromotionNotFound
		}
		return nil, err
	}
	return promotion, nil
}

func (s *PromotionService) List(ctx context.Context, onlyActive bool, limit, offset int) ([]domain.Promotion, error) {
	limit, offset = normalizePagination(limit, offset)
	return s.promotions.List(ctx, onlyActive, limit, offset)
}

// ListRunning filters active promotions down to those inside their window
// right now.
func (s *PromotionService) ListRunning(ctx context.Context, limit, offset int) ([]domain.Promotion, error) {
	limit, offset = normalizePagination(limit, offset)
	promotions, err := s.promotions.List(ctx, true, limit, offset)
	if err != nil {
		return nil, err
	}

	now := s.now()
	running := promotions[:0]
	for _, promotion := range promotions {
		if promotion.CurrentlyRunning(now) {
			running = append(running, promotion)
		}
	}
	return running, nil
}

func (s *PromotionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.promotions.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrPromotionNotFound
		}
		return err
	}
	return nil
}
