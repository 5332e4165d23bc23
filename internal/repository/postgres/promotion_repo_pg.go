package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
)

const promotionColumns = `id, title, description, discount_percent, package_id, banner_image_url, starts_at, ends_at, active, created_at, updated_at`

type PromotionRepository struct {
	db *sqlx.DB
}

func NewPromotionRepo(db *sqlx.DB) *PromotionRepository {
	return &PromotionRepository{db: db}
}

func (r *PromotionRepository) Create(ctx context.Context, promotion *domain.Promotion) (*domain.Promotion, error) {
	const query = `
        INSERT INTO promotion (title, description, discount_percent, package_id, banner_image_url, starts_at, ends_at, active)
        VALUES (:title, :description, :discount_percent, :package_id, :banner_image_url, :starts_at, :ends_at, :active)
        RETURNING ` + promotionColumns

	rows, err := r.db.NamedQueryContext(ctx, query, promotion)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var out domain.Promotion
		if err = rows.StructScan(&out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	return nil, sql.ErrNoRows
}

func (r *PromotionRepository) Update(ctx context.Context, promotion *domain.Promotion) (*domain.Promotion, error) {
	const query = `
        UPDATE promotion
        SET title = :title,
            description = :description,
            discount_percent = :discount_percent,
            package_id = :package_id,
            banner_image_url = :banner_image_url,
            starts_at = :starts_at,
            ends_at = :ends_at,
            active = :active,
            updated_at = NOW()
        WHERE id = :id
        RETURNING ` + promotionColumns

	rows, err := r.db.NamedQueryContext(ctx, query, promotion)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var out domain.Promotion
		if err = rows.StructScan(&out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	return nil, sql.ErrNoRows
}

func (r *PromotionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Promotion, error) {
	const query = `SELECT ` + promotionColumns + ` FROM promotion WHERE id = $1`
	var promotion domain.Promotion
	if err := r.db.GetContext(ctx, &promotion, query, id); err != nil {
		return nil, err
	}
	return &promotion, nil
}

func (r *PromotionRepository) List(ctx context.Context, onlyActive bool, limit, offset int) ([]domain.Promotion, error) {
	const query = `
        SELECT ` + promotionColumns + `
        FROM promotion
        WHERE ($1 = false OR (active = true AND ends_at > NOW()))
        ORDER BY starts_at DESC
        LIMIT $2 OFFSET $3
    `
	promotions := []domain.Promotion{}
	if err := r.db.SelectContext(ctx, &promotions, query, onlyActive, limit, offset); err != nil {
		return nil, err
	}
	return promotions, nil
}

func (r *PromotionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM promotion WHERE id = $1`, id)
	return err
}
