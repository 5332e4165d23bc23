package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
)

const providerColumns = `id, name, category, contact_name, email, phone, commission_percent, active, created_at, updated_at`

type ProviderRepository struct {
	db *sqlx.DB
}

func NewProviderRepo(db *sqlx.DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

func (r *ProviderRepository) Create(ctx context.Context, provider *domain.Provider) (*domain.Provider, error) {
	const query = `
        INSERT INTO provider (name, category, contact_name, email, phone, commission_percent, active)
        VALUES (:name, :category, :contact_name, :email, :phone, :commission_percent, :active)
        RETURNING ` + providerColumns

	rows, err := r.db.NamedQueryContext(ctx, query, provider)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var out domain.Provider
		if err = rows.StructScan(&out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	return nil, sql.ErrNoRows
}

func (r *ProviderRepository) Update(ctx context.Context, provider *domain.Provider) (*domain.Provider, error) {
	const query = `
        UPDATE provider
        SET name = :name,
            category = :category,
            contact_name = :contact_name,
            email = :email,
            phone = :phone,
            commission_percent = :commission_percent,
            active = :active,
            updated_at = NOW()
        WHERE id = :id
        RETURNING ` + providerColumns

	rows, err := r.db.NamedQueryContext(ctx, query, provider)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var out domain.Provider
		if err = rows.StructScan(&out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	return nil, sql.ErrNoRows
}

func (r *ProviderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Provider, error) {
	const query = `SELECT ` + providerColumns + ` FROM provider WHERE id = $1`
	var provider domain.Provider
	if err := r.db.GetContext(ctx, &provider, query, id); err != nil {
		return nil, err
	}
	return &provider, nil
}

func (r *ProviderRepository) List(ctx context.Context, onlyActive bool, limit, offset int) ([]domain.Provider, error) {
	const query = `
        SELECT ` + providerColumns + `
        FROM provider
        WHERE ($1 = false OR active = true)
        ORDER BY name
        LIMIT $2 OFFSET $3
    `
	providers := []domain.Provider{}
	if err := r.db.SelectContext(ctx, &providers, query, onlyActive, limit, offset); err != nil {
		return nil, err
	}
	return providers, nil
}

func (r *ProviderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM provider WHERE id = $1`, id)
	return err
}
