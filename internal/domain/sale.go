package domain

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

type SaleStatus string

const (
	SaleStatusDraft          SaleStatus = "DRAFT"
	SaleStatusPending        SaleStatus = "PENDING"
	SaleStatusPendingPayment SaleStatus = "PENDING_PAYMENT"
	SaleStatusConfirmed      SaleStatus = "CONFIRMED"
	SaleStatusCompleted      SaleStatus = "COMPLETED"
	SaleStatusCancelled      SaleStatus = "CANCELLED"
	SaleStatusRefunded       SaleStatus = "REFUNDED"
)

func ParseSaleStatus(s string) (SaleStatus, bool) {
	switch SaleStatus(s) {
	case SaleStatusDraft, SaleStatusPending, SaleStatusPendingPayment,
		SaleStatusConfirmed, SaleStatusCompleted, SaleStatusCancelled, SaleStatusRefunded:
		return SaleStatus(s), true
	}
	return "", false
}

type SaleItem struct {
	PackageID    uuid.UUID `json:"package_id"`
	PackageTitle string    `json:"package_title"`
	TravelDate   string    `json:"travel_date"` // YYYY-MM-DD
	DurationDays int       `json:"duration_days"`
	Travelers    int       `json:"travelers"`
	UnitPrice    float64   `json:"unit_price"`
	CurrencyCode string    `json:"currency_code"`
}

type SaleItems []SaleItem

func (i SaleItems) Value() (driver.Value, error) { return jsonValue(i) }
func (i *SaleItems) Scan(value any) error        { return jsonScan(i, value) }

type Sale struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	BookingCode  string     `db:"booking_code" json:"booking_code"`
	AgencyID     *uuid.UUID `db:"agency_id" json:"agency_id,omitempty"`
	CustomerID   *uuid.UUID `db:"customer_id" json:"customer_id,omitempty"`
	CustomerName string     `db:"customer_name" json:"customer_name"`
	Items        SaleItems  `db:"items" json:"items"`
	Status       SaleStatus `db:"status" json:"status"`
	Total        float64    `db:"total" json:"total"`
	CurrencyCode string     `db:"currency_code" json:"currency_code"`
	Notes        *string    `db:"notes" json:"notes,omitempty"`
	CreatedBy    uuid.UUID  `db:"created_by" json:"created_by"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

type PaymentStatus string

const (
	PaymentStatusRegistered PaymentStatus = "registered"
	PaymentStatusRejected   PaymentStatus = "rejected"
)

type Payment struct {
	ID        uuid.UUID     `db:"id" json:"id"`
	SaleID    uuid.UUID     `db:"sale_id" json:"sale_id"`
	Amount    float64       `db:"amount" json:"amount"`
	Method    string        `db:"method" json:"method"`
	Reference *string       `db:"reference" json:"reference,omitempty"`
	Status    PaymentStatus `db:"status" json:"status"`
	PaidAt    time.Time     `db:"paid_at" json:"paid_at"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
}

type SaleFilter struct {
	Status     *SaleStatus
	AgencyID   *uuid.UUID
	CustomerID *uuid.UUID
	Query      *string
	Limit      int
	Offset     int
}
