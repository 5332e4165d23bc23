package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
)

type PromotionRepository interface {
	Create(ctx context.Context, promotion *domain.Promotion) (*domain.Promotion, error)
	Update(ctx context.Context, promotion *domain.Promotion) (*domain.Promotion, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Promotion, error)
	List(ctx context.Context, onlyActive bool, limit, offset int) ([]domain.Promotion, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
