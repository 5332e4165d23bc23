package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
)

type CountryRepository struct {
	db *sqlx.DB
}

func NewCountryRepo(db *sqlx.DB) *CountryRepository {
	return &CountryRepository{db: db}
}

func (r *CountryRepository) Create(ctx context.Context, country *domain.Country) (*domain.Country, error) {
	const query = `
        INSERT INTO country (name, iso_code)
        VALUES (:name, :iso_code)
        ON CONFLICT (iso_code) DO UPDATE SET name = EXCLUDED.name
        RETURNING id, name, iso_code, created_at
    `
	rows, err := r.db.NamedQueryContext(ctx, query, country)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var out domain.Country
		if err = rows.StructScan(&out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	return nil, sql.ErrNoRows
}

func (r *CountryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Country, error) {
	var country domain.Country
	if err := r.db.GetContext(ctx, &country, `SELECT id, name, iso_code, created_at FROM country WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &country, nil
}

func (r *CountryRepository) FindByISOCode(ctx context.Context, isoCode string) (*domain.Country, error) {
	var country domain.Country
	if err := r.db.GetContext(ctx, &country, `SELECT id, name, iso_code, created_at FROM country WHERE iso_code = $1`, isoCode); err != nil {
		return nil, err
	}
	return &country, nil
}

func (r *CountryRepository) List(ctx context.Context) ([]domain.Country, error) {
	countries := []domain.Country{}
	if err := r.db.SelectContext(ctx, &countries, `SELECT id, name, iso_code, created_at FROM country ORDER BY name`); err != nil {
		return nil, err
	}
	return countries, nil
}

func (r *CountryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM country WHERE id = $1`, id)
	return err
}

type CityRepository struct {
	db *sqlx.DB
}

func NewCityRepo(db *sqlx.DB) *CityRepository {
	return &CityRepository{db: db}
}

func (r *CityRepository) Create(ctx context.Context, city *domain.City) (*domain.City, error) {
	const query = `
        INSERT INTO city (country_id, name, slug)
        VALUES (:country_id, :name, :slug)
        RETURNING id, country_id, name, slug, created_at
    `
	rows, err := r.db.NamedQueryContext(ctx, query, city)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var out domain.City
		if err = rows.StructScan(&out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	return nil, sql.ErrNoRows
}

func (r *CityRepository) Update(ctx context.Context, city *domain.City) (*domain.City, error) {
	const query = `
        UPDATE city
        SET country_id = :country_id, name = :name, slug = :slug
        WHERE id = :id
        RETURNING id, country_id, name, slug, created_at
    `
	rows, err := r.db.NamedQueryContext(ctx, query, city)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var out domain.City
		if err = rows.StructScan(&out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	return nil, sql.ErrNoRows
}

func (r *CityRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.City, error) {
	var city domain.City
	if err := r.db.GetContext(ctx, &city, `SELECT id, country_id, name, slug, created_at FROM city WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &city, nil
}

func (r *CityRepository) ListByCountry(ctx context.Context, countryID uuid.UUID) ([]domain.City, error) {
	cities := []domain.City{}
	const query = `SELECT id, country_id, name, slug, created_at FROM city WHERE country_id = $1 ORDER BY name`
	if err := r.db.SelectContext(ctx, &cities, query, countryID); err != nil {
		return nil, err
	}
	return cities, nil
}

func (r *CityRepository) Search(ctx context.Context, query string, limit int) ([]domain.CityWithCountry, error) {
	cities := []domain.CityWithCountry{}
	const stmt = `
        SELECT c.id, c.country_id, c.name, c.slug, c.created_at, co.name AS country_name
        FROM city c
        JOIN country co ON co.id = c.country_id
        WHERE c.name ILIKE '%' || $1 || '%'
        ORDER BY c.name
        LIMIT $2
    `
	if err := r.db.SelectContext(ctx, &cities, stmt, query, limit); err != nil {
		return nil, err
	}
	return cities, nil
}

func (r *CityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM city WHERE id = $1`, id)
	return err
}
