package domain

import "github.com/google/uuid"

// TripEvent is the calendar view of a sale line item: one scheduled departure.
// TravelDate keeps the stored ISO form, which may carry a time suffix when the
// row originated in the hosted backend.
type TripEvent struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	SaleID       uuid.UUID  `db:"sale_id" json:"sale_id"`
	CustomerName string     `db:"customer_name" json:"customer_name"`
	PackageTitle string     `db:"package_title" json:"package_title"`
	TravelDate   string     `db:"travel_date" json:"travel_date"`
	DurationDays int        `db:"duration_days" json:"duration_days"`
	Status       SaleStatus `db:"status" json:"status"`
	BookingCode  string     `db:"booking_code" json:"booking_code"`
}

// Customer mirrors the hosted backend's customer directory records.
type Customer struct {
	ID       string  `json:"id"`
	FullName string  `json:"full_name"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
}
