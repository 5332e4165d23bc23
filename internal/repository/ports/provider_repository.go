package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
)

type ProviderRepository interface {
	Create(ctx context.Context, provider *domain.Provider) (*domain.Provider, error)
	Update(ctx context.Context, provider *domain.Provider) (*domain.Provider, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Provider, error)
	List(ctx context.Context, onlyActive bool, limit, offset int) ([]domain.Provider, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
