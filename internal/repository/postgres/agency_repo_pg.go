package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
)

const agencyColumns = `id, name, tax_code, email, phone, address, city_id, active, created_at, updated_at`

type AgencyRepository struct {
	db *sqlx.DB
}

func NewAgencyRepo(db *sqlx.DB) *AgencyRepository {
	return &AgencyRepository{db: db}
}

func (r *AgencyRepository) Create(ctx context.Context, agency *domain.Agency) (*domain.Agency, error) {
	const query = `
        INSERT INTO agency (name, tax_code, email, phone, address, city_id, active)
        VALUES (:name, :tax_code, :email, :phone, :address, :city_id, :active)
        RETURNING ` + agencyColumns

	rows, err := r.db.NamedQueryContext(ctx, query, agency)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var out domain.Agency
		if err = rows.StructScan(&out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	return nil, sql.ErrNoRows
}

func (r *AgencyRepository) Update(ctx context.Context, agency *domain.Agency) (*domain.Agency, error) {
	const query = `
        UPDATE agency
        SET name = :name,
            tax_code = :tax_code,
            email = :email,
            phone = :phone,
            address = :address,
            city_id = :city_id,
            active = :active,
            updated_at = NOW()
        WHERE id = :id
        RETURNING ` + agencyColumns

	rows, err := r.db.NamedQueryContext(ctx, query, agency)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var out domain.Agency
		if err = rows.StructScan(&out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	return nil, sql.ErrNoRows
}

func (r *AgencyRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Agency, error) {
	const query = `SELECT ` + agencyColumns + ` FROM agency WHERE id = $1`
	var agency domain.Agency
	if err := r.db.GetContext(ctx, &agency, query, id); err != nil {
		return nil, err
	}
	return &agency, nil
}

func (r *AgencyRepository) List(ctx context.Context, limit, offset int) ([]domain.Agency, error) {
	const query = `SELECT ` + agencyColumns + ` FROM agency ORDER BY name LIMIT $1 OFFSET $2`
	agencies := []domain.Agency{}
	if err := r.db.SelectContext(ctx, &agencies, query, limit, offset); err != nil {
		return nil, err
	}
	return agencies, nil
}

func (r *AgencyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM agency WHERE id = $1`, id)
	return err
}
