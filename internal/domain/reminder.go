package domain

import (
	"time"

	"github.com/google/uuid"
)

type ReminderPriority string

const (
	ReminderPriorityLow    ReminderPriority = "LOW"
	ReminderPriorityMedium ReminderPriority = "MEDIUM"
	ReminderPriorityHigh   ReminderPriority = "HIGH"
)

func ParseReminderPriority(s string) (ReminderPriority, bool) {
	switch ReminderPriority(s) {
	case ReminderPriorityLow, ReminderPriorityMedium, ReminderPriorityHigh:
		return ReminderPriority(s), true
	}
	return "", false
}

type Reminder struct {
	ID           uuid.UUID        `db:"id" json:"id"`
	Title        string           `db:"title" json:"title"`
	Description  *string          `db:"description" json:"description,omitempty"`
	ReminderDate time.Time        `db:"reminder_date" json:"reminder_date"`
	ReminderTime *string          `db:"reminder_time" json:"reminder_time,omitempty"` // HH:MM
	Type         string           `db:"type" json:"type"`
	Priority     ReminderPriority `db:"priority" json:"priority"`
	Completed    bool             `db:"completed" json:"completed"`
	CreatedBy    uuid.UUID        `db:"created_by" json:"created_by"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time        `db:"updated_at" json:"updated_at"`
}

// DateKey is the reminder's calendar day in YYYY-MM-DD form.
func (r Reminder) DateKey() string {
	return r.ReminderDate.Format("2006-01-02")
}
