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

var (
	ErrReminderNotFound = errors.New("reminder not found")
	ErrInvalidPriority  = errors.New("invalid reminder priority")
)

type ReminderService struct {
	reminders ports.ReminderRepository
}

func NewReminderService(reminders ports.ReminderRepository) *ReminderService {
	return &ReminderService{reminders: reminders}
}

type ReminderInput struct {
	Title        string
	Description  *string
	ReminderDate time.Time
	ReminderTime *string // HH:MM, empty for all-day
	Type         string
	Priority     string
	CreatedBy    uuid.UUID
}

func (in ReminderInput) toDomain() (*domain.Reminder, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, errors.New("reminder title is required")
	}
	priority := domain.ReminderPriorityMedium
	if in.Priority != "" {
		parsed, ok := domain.ParseReminderPriority(strings.ToUpper(in.Priority))
		if !ok {
			return nil, ErrInvalidPriority
		}
		priority = parsed
	}
	if in.ReminderTime != nil && *in.ReminderTime != "" {
		if _, err := time.Parse("15:04", *in.ReminderTime); err != nil {
			return nil, errors.New("reminder time must be HH:MM")
		}
	}
	kind := in.Type
	if kind == "" {
		kind = "general"
	}
	return &domain.Reminder{
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		ReminderDate: in.ReminderDate,
		ReminderTime: in.ReminderTime,
		Type:         kind,
		Priority:     priority,
		CreatedBy:    in.CreatedBy,
	}, nil
}

func (s *ReminderService) Create(ctx context.Context, input ReminderInput) (*domain.Reminder, error) {
	reminder, err := input.toDomain()
	if err != nil {
		return nil, err
	}
	return s.reminders.Create(ctx, reminder)
}

func (s *ReminderService) Update(ctx context.Context, id uuid.UUID, input ReminderInput) (*domain.Reminder, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updated, err := input.toDomain()
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID
	updated.Completed = existing.Completed
	updated.CreatedBy = existing.CreatedBy
	return s.reminders.Update(ctx, updated)
}

func (s *ReminderService) SetCompleted(ctx context.Context, id uuid.UUID, completed bool) error {
	if err := s.reminders.SetCompleted(ctx, id, completed); err != nil {
		if isNotFound(err) {
			return ErrReminderNotFound
		}
		return err
	}
	return nil
}

func (s *ReminderService) Get(ctx context.Context, id uuid.UUID) (*domain.Reminder, error) {
	reminder, err := s.reminders.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrReminderNotFound
		}
		return nil, err
	}
	return reminder, nil
}

func (s *ReminderService) ListBetween(ctx context.Context, from, to time.Time) ([]domain.Reminder, error) {
	if !to.After(from) {
		return nil, errors.New("range end must come after start")
	}
	return s.reminders.ListBetween(ctx, from, to)
}

func (s *ReminderService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.reminders.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrReminderNotFound
		}
		return err
	}
	return nil
}
