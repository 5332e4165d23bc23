package calendar

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
)

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year, month0 int
		wantDays     int
		wantWeekday  int
	}{
		{2024, 1, 29, 4}, // leap February, starts Thursday
		{2023, 1, 28, 3}, // non-leap February
		{2026, 2, 31, 0}, // March 2026 starts on a Sunday
		{2026, 11, 31, 2},
	}

	for _, tc := range cases {
		days, weekday := DaysInMonth(tc.year, tc.month0)
		if days != tc.wantDays {
			t.Errorf("DaysInMonth(%d, %d) days = %d, want %d", tc.year, tc.month0, days, tc.wantDays)
		}
		if weekday != tc.wantWeekday {
			t.Errorf("DaysInMonth(%d, %d) weekday = %d, want %d", tc.year, tc.month0, weekday, tc.wantWeekday)
		}
	}
}

func TestMonthNavigationRollsOverYears(t *testing.T) {
	jan := Month{Year: 2026, Month0: 0}
	if prev := jan.Prev(); prev.Year != 2025 || prev.Month0 != 11 {
		t.Fatalf("Prev(Jan 2026) = %+v, want Dec 2025", prev)
	}

	dec := Month{Year: 2025, Month0: 11}
	if next := dec.Next(); next.Year != 2026 || next.Month0 != 0 {
		t.Fatalf("Next(Dec 2025) = %+v, want Jan 2026", next)
	}

	// Mid-year moves stay in the same year.
	if next := (Month{Year: 2026, Month0: 5}).Next(); next.Year != 2026 || next.Month0 != 6 {
		t.Fatalf("Next(Jun 2026) = %+v", next)
	}
}

func TestTripsOnMatchesByDatePrefix(t *testing.T) {
	trips := []domain.TripEvent{
		{ID: uuid.New(), PackageTitle: "Cancún VIP", TravelDate: "2026-03-15T00:00:00Z"},
		{ID: uuid.New(), PackageTitle: "Riviera Maya", TravelDate: "2026-03-15"},
		{ID: uuid.New(), PackageTitle: "CDMX Cultural", TravelDate: "2026-03-16T09:30:00Z"},
	}

	got := TripsOn(trips, 2026, 2, 15)
	if len(got) != 2 {
		t.Fatalf("TripsOn matched %d trips, want 2", len(got))
	}
	for _, trip := range got {
		if trip.PackageTitle == "CDMX Cultural" {
			t.Fatalf("trip on the 16th matched day 15")
		}
	}

	if got := TripsOn(trips, 2026, 2, 1); len(got) != 0 {
		t.Fatalf("empty day matched %d trips", len(got))
	}
}

func TestRemindersOnExactDate(t *testing.T) {
	reminders := []domain.Reminder{
		{ID: uuid.New(), Title: "Pagar proveedor", ReminderDate: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)},
		{ID: uuid.New(), Title: "Llamar cliente", ReminderDate: time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)},
	}

	got := RemindersOn(reminders, 2026, 4, 1)
	if len(got) != 1 || got[0].Title != "Pagar proveedor" {
		t.Fatalf("RemindersOn = %+v, want the May 1st reminder", got)
	}
}

func TestIsToday(t *testing.T) {
	now := time.Date(2026, 8, 28, 15, 4, 5, 0, time.Local)
	if !IsToday(2026, 7, 28, now) {
		t.Fatalf("IsToday missed the current day")
	}
	if IsToday(2026, 7, 27, now) || IsToday(2025, 7, 28, now) || IsToday(2026, 6, 28, now) {
		t.Fatalf("IsToday matched a different day")
	}
}
