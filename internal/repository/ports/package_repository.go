package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
)

type PackageRepository interface {
	Create(ctx context.Context, pkg *domain.TravelPackage) (*domain.TravelPackage, error)
	Update(ctx context.Context, pkg *domain.TravelPackage) (*domain.TravelPackage, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.TravelPackage, error)
	FindBySlug(ctx context.Context, slug string) (*domain.TravelPackage, error)
	List(ctx context.Context, filter domain.PackageFilter) ([]domain.TravelPackage, error)
	Archive(ctx context.Context, id uuid.UUID, updatedBy uuid.UUID) error
}
