// Package calendar produces the back-office booking calendar: the month grid
// and the per-day trip and reminder filters. Month indexes are zero-based
// (0 = January), matching the stored data and the export filename contract.
//
// Date matching policy: comparisons are date-only in the server's local
// timezone. Trip travel dates keep their stored ISO form and are matched by
// date prefix, so timestamps with a time suffix still land on their calendar
// day without timezone normalization.
package calendar

import (
	"fmt"
	"time"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
)

// Month identifies one calendar page.
type Month struct {
	Year   int `json:"year"`
	Month0 int `json:"month"` // zero-based, 0 = January
}

// normalize rolls out-of-range month indexes through time.Date, so Month0 of
// -1 becomes December of the prior year and 12 becomes January of the next.
func (m Month) normalize() Month {
	t := time.Date(m.Year, time.Month(m.Month0+1), 1, 0, 0, 0, 0, time.UTC)
	return Month{Year: t.Year(), Month0: int(t.Month()) - 1}
}

func (m Month) Prev() Month {
	return Month{Year: m.Year, Month0: m.Month0 - 1}.normalize()
}

func (m Month) Next() Month {
	return Month{Year: m.Year, Month0: m.Month0 + 1}.normalize()
}

// DaysInMonth returns the number of days in the month and the weekday of its
// first day (Sunday=0). The last day is computed as day 0 of the next month.
func DaysInMonth(year, month0 int) (days int, startingWeekday int) {
	last := time.Date(year, time.Month(month0+2), 0, 0, 0, 0, 0, time.UTC)
	first := time.Date(year, time.Month(month0+1), 1, 0, 0, 0, 0, time.UTC)
	return last.Day(), int(first.Weekday())
}

// DateKey renders the ISO date used for prefix matching.
func DateKey(year, month0, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month0+1, day)
}

// TripsOn filters trips whose travel date falls on the given day. The stored
// value may be a plain date or a full timestamp; the prefix match tolerates
// both.
func TripsOn(trips []domain.TripEvent, year, month0, day int) []domain.TripEvent {
	key := DateKey(year, month0, day)
	var out []domain.TripEvent
	for _, trip := range trips {
		if len(trip.TravelDate) >= len(key) && trip.TravelDate[:len(key)] == key {
			out = append(out, trip)
		}
	}
	return out
}

// RemindersOn filters reminders by exact calendar-date equality.
func RemindersOn(reminders []domain.Reminder, year, month0, day int) []domain.Reminder {
	key := DateKey(year, month0, day)
	var out []domain.Reminder
	for _, r := range reminders {
		if r.DateKey() == key {
			out = append(out, r)
		}
	}
	return out
}

// IsToday compares day, month and year independently against now, in now's
// location.
func IsToday(year, month0, day int, now time.Time) bool {
	return now.Year() == year && int(now.Month())-1 == month0 && now.Day() == day
}
