package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
)

type ReminderRepository interface {
	Create(ctx context.Context, reminder *domain.Reminder) (*domain.Reminder, error)
	Update(ctx context.Context, reminder *domain.Reminder) (*domain.Reminder, error)
	SetCompleted(ctx context.Context, id uuid.UUID, completed bool) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Reminder, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]domain.Reminder, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
