package service

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func fakeUniqueViolation() error {
	return fmt.Errorf("insert failed: %w", &pgconn.PgError{Code: pgUniqueViolation})
}

func TestErrorClassification(t *testing.T) {
	if !isNotFound(fmt.Errorf("wrapped: %w", sql.ErrNoRows)) {
		t.Fatalf("wrapped sql.ErrNoRows should classify as not found")
	}
	if isNotFound(errors.New("boom")) {
		t.Fatalf("arbitrary error should not classify as not found")
	}
	if !isUniqueViolation(fakeUniqueViolation()) {
		t.Fatalf("pg error 23505 should classify as unique violation")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Fatalf("foreign key violation should not classify as unique violation")
	}
}
