package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
)

type SaleRepository interface {
	Create(ctx context.Context, sale *domain.Sale) (*domain.Sale, error)
	Update(ctx context.Context, sale *domain.Sale) (*domain.Sale, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SaleStatus) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error)
	List(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error)
	// TripEventsBetween returns one event per sale line item whose travel
	// date falls inside [from, to).
	TripEventsBetween(ctx context.Context, from, to time.Time) ([]domain.TripEvent, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	ListBySale(ctx context.Context, saleID uuid.UUID) ([]domain.Payment, error)
}
