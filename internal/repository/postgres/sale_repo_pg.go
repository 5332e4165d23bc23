package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
)

const saleColumns = `id, booking_code, agency_id, customer_id, customer_name, items, status, total, currency_code, notes, created_by, created_at, updated_at`

type SaleRepository struct {
	db *sqlx.DB
}

func NewSaleRepo(db *sqlx.DB) *SaleRepository {
	return &SaleRepository{db: db}
}

func (r *SaleRepository) Create(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	const query = `
        INSERT INTO sale (booking_code, agency_id, customer_id, customer_name, items, status, total, currency_code, notes, created_by)
        VALUES (:booking_code, :agency_id, :customer_id, :customer_name, :items, :status, :total, :currency_code, :notes, :created_by)
        RETURNING ` + saleColumns

	rows, err := r.db.NamedQueryContext(ctx, query, sale)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var out domain.Sale
		if err = rows.StructScan(&out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	return nil, sql.ErrNoRows
}

func (r *SaleRepository) Update(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	const query = `
        UPDATE sale
        SET customer_id = :customer_id,
            customer_name = :customer_name,
            items = :items,
            status = :status,
            total = :total,
            currency_code = :currency_code,
            notes = :notes,
            updated_at = NOW()
        WHERE id = :id
        RETURNING ` + saleColumns

	rows, err := r.db.NamedQueryContext(ctx, query, sale)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var out domain.Sale
		if err = rows.StructScan(&out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	return nil, sql.ErrNoRows
}

func (r *SaleRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.SaleStatus) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sale SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	return err
}

func (r *SaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	const query = `SELECT ` + saleColumns + ` FROM sale WHERE id = $1`
	var sale domain.Sale
	if err := r.db.GetContext(ctx, &sale, query, id); err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *SaleRepository) List(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error) {
	where := []string{"1=1"}
	args := []any{}
	idx := 1

	if filter.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", idx))
		args = append(args, *filter.Status)
		idx++
	}
	if filter.AgencyID != nil {
		where = append(where, fmt.Sprintf("agency_id = $%d", idx))
		args = append(args, *filter.AgencyID)
		idx++
	}
	if filter.CustomerID != nil {
		where = append(where, fmt.Sprintf("customer_id = $%d", idx))
		args = append(args, *filter.CustomerID)
		idx++
	}
	if filter.Query != nil && *filter.Query != "" {
		where = append(where, fmt.Sprintf("(customer_name ILIKE '%%' || $%d || '%%' OR booking_code ILIKE '%%' || $%d || '%%')", idx, idx))
		args = append(args, *filter.Query)
		idx++
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`
        SELECT %s FROM sale
        WHERE %s
        ORDER BY created_at DESC
        LIMIT $%d OFFSET $%d
    `, saleColumns, strings.Join(where, " AND "), idx, idx+1)
	args = append(args, limit, offset)

	sales := []domain.Sale{}
	if err := r.db.SelectContext(ctx, &sales, query, args...); err != nil {
		return nil, err
	}
	return sales, nil
}

// TripEventsBetween expands sale items into calendar trip events. The travel
// date is kept in its stored ISO form for prefix matching on the client side.
func (r *SaleRepository) TripEventsBetween(ctx context.Context, from, to time.Time) ([]domain.TripEvent, error) {
	const query = `
        SELECT
            (s.id::text || '-' || item.ordinality::text) AS item_key,
            s.id AS sale_id,
            s.customer_name,
            item.value->>'package_title' AS package_title,
            item.value->>'travel_date' AS travel_date,
            COALESCE((item.value->>'duration_days')::int, 1) AS duration_days,
            s.status,
            s.booking_code
        FROM sale s,
             LATERAL jsonb_array_elements(s.items) WITH ORDINALITY AS item(value, ordinality)
        WHERE (item.value->>'travel_date')::date >= $1::date
          AND (item.value->>'travel_date')::date < $2::date
        ORDER BY item.value->>'travel_date'
    `

	rows, err := r.db.QueryxContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []domain.TripEvent{}
	for rows.Next() {
		var (
			itemKey string
			event   domain.TripEvent
		)
		if err := rows.Scan(&itemKey, &event.SaleID, &event.CustomerName, &event.PackageTitle,
			&event.TravelDate, &event.DurationDays, &event.Status, &event.BookingCode); err != nil {
			return nil, err
		}
		// Deterministic per-item id derived from the sale id and position.
		event.ID = uuid.NewSHA1(event.SaleID, []byte(itemKey))
		events = append(events, event)
	}
	return events, rows.Err()
}

type PaymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepo(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	const query = `
        INSERT INTO sale_payment (sale_id, amount, method, reference, status, paid_at)
        VALUES (:sale_id, :amount, :method, :reference, :status, :paid_at)
        RETURNING id, sale_id, amount, method, reference, status, paid_at, created_at
    `
	rows, err := r.db.NamedQueryContext(ctx, query, payment)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var out domain.Payment
		if err = rows.StructScan(&out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	return nil, sql.ErrNoRows
}

func (r *PaymentRepository) ListBySale(ctx context.Context, saleID uuid.UUID) ([]domain.Payment, error) {
	payments := []domain.Payment{}
	const query = `
        SELECT id, sale_id, amount, method, reference, status, paid_at, created_at
        FROM sale_payment
        WHERE sale_id = $1
        ORDER BY created_at
    `
	if err := r.db.SelectContext(ctx, &payments, query, saleID); err != nil {
		return nil, err
	}
	return payments, nil
}
