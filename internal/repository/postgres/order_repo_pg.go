package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
)

const orderColumns = `id, sale_id, provider_id, reference, items, status, total, currency_code, created_at, updated_at`

type OrderRepository struct {
	db *sqlx.DB
}

func NewOrderRepo(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	const query = `
        INSERT INTO purchase_order (sale_id, provider_id, reference, items, status, total, currency_code)
        VALUES (:sale_id, :provider_id, :reference, :items, :status, :total, :currency_code)
        RETURNING ` + orderColumns

	rows, err := r.db.NamedQueryContext(ctx, query, order)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var out domain.Order
		if err = rows.StructScan(&out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	return nil, sql.ErrNoRows
}

func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	const query = `
        UPDATE purchase_order
        SET provider_id = :provider_id,
            reference = :reference,
            items = :items,
            status = :status,
            total = :total,
            currency_code = :currency_code,
            updated_at = NOW()
        WHERE id = :id
        RETURNING ` + orderColumns

	rows, err := r.db.NamedQueryContext(ctx, query, order)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var out domain.Order
		if err = rows.StructScan(&out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	return nil, sql.ErrNoRows
}

func (r *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM purchase_order WHERE id = $1`
	var order domain.Order
	if err := r.db.GetContext(ctx, &order, query, id); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) List(ctx context.Context, status *domain.OrderStatus, limit, offset int) ([]domain.Order, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	orders := []domain.Order{}
	if status != nil {
		const query = `
            SELECT ` + orderColumns + ` FROM purchase_order
            WHERE status = $1
            ORDER BY created_at DESC
            LIMIT $2 OFFSET $3
        `
		if err := r.db.SelectContext(ctx, &orders, query, *status, limit, offset); err != nil {
			return nil, err
		}
		return orders, nil
	}

	const query = `
        SELECT ` + orderColumns + ` FROM purchase_order
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2
    `
	if err := r.db.SelectContext(ctx, &orders, query, limit, offset); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM purchase_order WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
