package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
)

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	Update(ctx context.Context, order *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	List(ctx context.Context, status *domain.OrderStatus, limit, offset int) ([]domain.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
