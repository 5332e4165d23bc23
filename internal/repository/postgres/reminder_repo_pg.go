package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
)

const reminderColumns = `id, title, description, reminder_date, reminder_time, type, priority, completed, created_by, created_at, updated_at`

type ReminderRepository struct {
	db *sqlx.DB
}

func NewReminderRepo(db *sqlx.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

func (r *ReminderRepository) Create(ctx context.Context, reminder *domain.Reminder) (*domain.Reminder, error) {
	const query = `
        INSERT INTO reminder (title, description, reminder_date, reminder_time, type, priority, completed, created_by)
        VALUES (:title, :description, :reminder_date, :reminder_time, :type, :priority, :completed, :created_by)
        RETURNING ` + reminderColumns

	rows, err := r.db.NamedQueryContext(ctx, query, reminder)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var out domain.Reminder
		if err = rows.StructScan(&out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	return nil, sql.ErrNoRows
}

func (r *ReminderRepository) Update(ctx context.Context, reminder *domain.Reminder) (*domain.Reminder, error) {
	const query = `
        UPDATE reminder
        SET title = :title,
            description = :description,
            reminder_date = :reminder_date,
            reminder_time = :reminder_time,
            type = :type,
            priority = :priority,
            completed = :completed,
            updated_at = NOW()
        WHERE id = :id
        RETURNING ` + reminderColumns

	rows, err := r.db.NamedQueryContext(ctx, query, reminder)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if rows.Next() {
		var out domain.Reminder
		if err = rows.StructScan(&out); err != nil {
			return nil, err
		}
		return &out, nil
	}
	return nil, sql.ErrNoRows
}

func (r *ReminderRepository) SetCompleted(ctx context.Context, id uuid.UUID, completed bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE reminder SET completed = $2, updated_at = NOW() WHERE id = $1`, id, completed)
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

func (r *ReminderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Reminder, error) {
	const query = `SELECT ` + reminderColumns + ` FROM reminder WHERE id = $1`
	var reminder domain.Reminder
	if err := r.db.GetContext(ctx, &reminder, query, id); err != nil {
		return nil, err
	}
	return &reminder, nil
}

func (r *ReminderRepository) ListBetween(ctx context.Context, from, to time.Time) ([]domain.Reminder, error) {
	reminders := []domain.Reminder{}
	const query = `
        SELECT ` + reminderColumns + ` FROM reminder
        WHERE reminder_date >= $1 AND reminder_date < $2
        ORDER BY reminder_date, reminder_time NULLS LAST
    `
	if err := r.db.SelectContext(ctx, &reminders, query, from, to); err != nil {
		return nil, err
	}
	return reminders, nil
}

func (r *ReminderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reminder WHERE id = $1`, id)
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
