package domain

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusOpen      OrderStatus = "open"
	OrderStatusInvoiced  OrderStatus = "invoiced"
	OrderStatusFulfilled OrderStatus = "fulfilled"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type OrderItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type OrderItems []OrderItem

func (i OrderItems) Value() (driver.Value, error) { return jsonValue(i) }
func (i *OrderItems) Scan(value any) error        { return jsonScan(i, value) }

type Order struct {
	ID           uuid.UUID   `db:"id" json:"id"`
	SaleID       *uuid.UUID  `db:"sale_id" json:"sale_id,omitempty"`
	ProviderID   *uuid.UUID  `db:"provider_id" json:"provider_id,omitempty"`
	Reference    string      `db:"reference" json:"reference"`
	Items        OrderItems  `db:"items" json:"items"`
	Status       OrderStatus `db:"status" json:"status"`
	Total        float64     `db:"total" json:"total"`
	CurrencyCode string      `db:"currency_code" json:"currency_code"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
}
