package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
)

const packageColumns = `id, title, slug, destination_id, description, duration_days, duration_nights, status, itinerary, inclusions, exclusions, media, pricing, availability, created_at, updated_at, updated_by`

type PackageRepository struct {
	db *sqlx.DB
}

func NewPackageRepo(db *sqlx.DB) *PackageRepository {
	return &PackageRepository{db: db}
}

func (r *PackageRepository) Create(ctx context.Context, pkg *domain.TravelPackage) (*domain.TravelPackage, error) {
	const query = `
        INSERT INTO travel_package (
            title, slug, destination_id, description, duration_days, duration_nights,
            status, itinerary, inclusions, exclusions, media, pricing, availability, updated_by
        ) VALUES (
            :title, :slug, :destination_id, :description, :duration_days, :duration_nights,
            :status, :itinerary, :inclusions, :exclusions, :media, :pricing, :availability, :updated_by
        )
        RETURNING ` + packageColumns

	rows, err := r.db.NamedQueryContext(ctx, query, pkg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var out domain.TravelPackage
		if err = rows.StructScan(&out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	return nil, sql.ErrNoRows
}

func (r *PackageRepository) Update(ctx context.Context, pkg *domain.TravelPackage) (*domain.TravelPackage, error) {
	const query = `
        UPDATE travel_package
        SET title = :title,
            slug = :slug,
            destination_id = :destination_id,
            description = :description,
            duration_days = :duration_days,
            duration_nights = :duration_nights,
            status = :status,
            itinerary = :itinerary,
            inclusions = :inclusions,
            exclusions = :exclusions,
            media = :media,
            pricing = :pricing,
            availability = :availability,
            updated_by = :updated_by,
            updated_at = NOW()
        WHERE id = :id
        RETURNING ` + packageColumns

	rows, err := r.db.NamedQueryContext(ctx, query, pkg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var out domain.TravelPackage
		if err = rows.StructScan(&out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	return nil, sql.ErrNoRows
}

func (r *PackageRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.TravelPackage, error) {
	const query = `SELECT ` + packageColumns + ` FROM travel_package WHERE id = $1`
	var pkg domain.TravelPackage
	if err := r.db.GetContext(ctx, &pkg, query, id); err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *PackageRepository) FindBySlug(ctx context.Context, slug string) (*domain.TravelPackage, error) {
	const query = `SELECT ` + packageColumns + ` FROM travel_package WHERE slug = $1`
	var pkg domain.TravelPackage
	if err := r.db.GetContext(ctx, &pkg, query, slug); err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *PackageRepository) List(ctx context.Context, filter domain.PackageFilter) ([]domain.TravelPackage, error) {
	where := []string{"1=1"}
	args := []any{}
	idx := 1

	if filter.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", idx))
		args = append(args, *filter.Status)
		idx++
	}
	if filter.DestinationID != nil {
		where = append(where, fmt.Sprintf("destination_id = $%d", idx))
		args = append(args, *filter.DestinationID)
		idx++
	}
	if filter.Query != nil && *filter.Query != "" {
		where = append(where, fmt.Sprintf("title ILIKE '%%' || $%d || '%%'", idx))
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
        SELECT %s FROM travel_package
        WHERE %s
        ORDER BY updated_at DESC
        LIMIT $%d OFFSET $%d
    `, packageColumns, strings.Join(where, " AND "), idx, idx+1)
	args = append(args, limit, offset)

	packages := []domain.TravelPackage{}
	if err := r.db.SelectContext(ctx, &packages, query, args...); err != nil {
		return nil, err
	}
	return packages, nil
}

func (r *PackageRepository) Archive(ctx context.Context, id uuid.UUID, updatedBy uuid.UUID) error {
	const query = `
        UPDATE travel_package
        SET status = $2, updated_by = $3, updated_at = NOW()
        WHERE id = $1
    `
	_, err := r.db.ExecContext(ctx, query, id, domain.PackageStatusArchived, updatedBy)
	return err
}
