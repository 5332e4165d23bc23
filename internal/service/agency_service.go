package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/repository/ports"
)

var (
	ErrAgencyNotFound  = errors.New("agency not found")
	ErrAgencyNameTaken = errors.New("agency name already in use")
)

type AgencyService struct {
	agencies ports.AgencyRepository
}

func NewAgencyService(agencies ports.AgencyRepository) *AgencyService {
	return &AgencyService{agencies: agencies}
}

type AgencyInput struct {
	Name    string
	TaxCode *string
	Email   *string
	Phone   *string
	Address *string
	CityID  *uuid.UUID
	Active  *bool
}

func (in AgencyInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return errors.New("agency name is required")
	}
	return nil
}

func (s *AgencyService) Create(ctx context.Context, input AgencyInput) (*domain.Agency, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	agency := &domain.Agency{
		Name:    strings.TrimSpace(input.Name),
		TaxCode: input.TaxCode,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
		CityID:  input.CityID,
		Active:  true,
	}
	if input.Active != nil {
		agency.Active = *input.Active
	}

	created, err := s.agencies.Create(ctx, agency)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAgencyNameTaken
		}
		return nil, err
	}
	return created, nil
}

func (s *AgencyService) Update(ctx context.Context, id uuid.UUID, input AgencyInput) (*domain.Agency, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	agency, err := s.agencies.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAgencyNotFound
		}
		return nil, err
	}

	agency.Name = strings.TrimSpace(input.Name)
	agency.TaxCode = input.TaxCode
	agency.Email = input.Email
	agency.Phone = input.Phone
	agency.Address = input.Address
	agency.CityID = input.CityID
	if input.Active != nil {
		agency.Active = *input.Active
	}

	updated, err := s.agencies.Update(ctx, agency)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAgencyNameTaken
		}
		return nil, err
	}
	return updated, nil
}

func (s *AgencyService) Get(ctx context.Context, id uuid.UUID) (*domain.Agency, error) {
	agency, err := s.agencies.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrAgencyNotFound
		}
		return nil, err
	}
	return agency, nil
}

func (s *AgencyService) List(ctx context.Context, limit, offset int) ([]domain.Agency, error) {
	limit, offset = normalizePagination(limit, offset)
	return s.agencies.List(ctx, limit, offset)
}

func (s *AgencyService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.agencies.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrAgencyNotFound
		}
		return err
	}
	return nil
}
