package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
)

type CountryRepository interface {
	Create(ctx context.Context, country *domain.Country) (*domain.Country, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Country, error)
	FindByISOCode(ctx context.Context, isoCode string) (*domain.Country, error)
	List(ctx context.Context) ([]domain.Country, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CityRepository interface {
	Create(ctx context.Context, city *domain.City) (*domain.City, error)
	Update(ctx context.Context, city *domain.City) (*domain.City, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.City, error)
	ListByCountry(ctx context.Context, countryID uuid.UUID) ([]domain.City, error)
	Search(ctx context.Context, query string, limit int) ([]domain.CityWithCountry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
