package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/repository/ports"
)

var ErrProviderNotFound = errors.New("provider not found")

type ProviderService struct {
	providers ports.ProviderRepository
}

func NewProviderService(providers ports.ProviderRepository) *ProviderService {
	return &ProviderService{providers: providers}
}

type ProviderInput struct {
	Name              string
	Category          *string
	ContactName       *string
	Email             *string
	Phone             *string
	CommissionPercent *float64
	Active            *bool
}

func (in ProviderInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return errors.New("provider name is required")
	}
	if in.CommissionPercent != nil && (*in.CommissionPercent < 0 || *in.CommissionPercent > 100) {
		return errors.New("commission percent must be between 0 and 100")
	}
	return nil
}

func (s *ProviderService) Create(ctx context.Context, input ProviderInput) (*domain.Provider, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	provider := &domain.Provider{
		Name:              strings.TrimSpace(input.Name),
		Category:          input.Category,
		ContactName:       input.ContactName,
		Email:             input.Email,
		Phone:             input.Phone,
		CommissionPercent: input.CommissionPercent,
		Active:            true,
	}
	if input.Active != nil {
		provider.Active = *input.Active
	}
	return s.providers.Create(ctx, provider)
}

func (s *ProviderService) Update(ctx context.Context, id uuid.UUID, input ProviderInput) (*domain.Provider, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	provider, err := s.providers.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}

	provider.Name = strings.TrimSpace(input.Name)
	provider.Category = input.Category
	provider.ContactName = input.ContactName
	provider.Email = input.Email
	provider.Phone = input.Phone
	provider.CommissionPercent = input.CommissionPercent
	if input.Active != nil {
		provider.Active = *input.Active
	}
	return s.providers.Update(ctx, provider)
}

func (s *ProviderService) Get(ctx context.Context, id uuid.UUID) (*domain.Provider, error) {
	provider, err := s.providers.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}
	return provider, nil
}

func (s *ProviderService) List(ctx context.Context, onlyActive bool, limit, offset int) ([]domain.Provider, error) {
	limit, offset = normalizePagination(limit, offset)
	return s.providers.List(ctx, onlyActive, limit, offset)
}

func (s *ProviderService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.providers.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrProviderNotFound
		}
		return err
	}
	return nil
}
