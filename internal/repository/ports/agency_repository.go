package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
)

type AgencyRepository interface {
	Create(ctx context.Context, agency *domain.Agency) (*domain.Agency, error)
	Update(ctx context.Context, agency *domain.Agency) (*domain.Agency, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Agency, error)
	List(ctx context.Context, limit, offset int) ([]domain.Agency, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
