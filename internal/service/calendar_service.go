package service

import (
	"context"
	"time"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/calendar"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/ics"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/repository/ports"
)

type CalendarService struct {
	sales     ports.SaleRepository
	reminders ports.ReminderRepository
	now       func() time.Time
}

func NewCalendarService(sales ports.SaleRepository, reminders ports.ReminderRepository) *CalendarService {
	return &CalendarService{sales: sales, reminders: reminders, now: time.Now}
}

// CalendarDay is one cell of the month grid.
type CalendarDay struct {
	Day       int               `json:"day"`
	DateKey   string            `json:"date_key"`
	IsToday   bool              `json:"is_today"`
	Trips     []domain.TripEvent `json:"trips"`
	Reminders []domain.Reminder  `json:"reminders"`
}

type MonthView struct {
	Year            int           `json:"year"`
	Month0          int           `json:"month"`
	Days            int           `json:"days"`
	StartingWeekday int           `json:"starting_weekday"`
	Cells           []CalendarDay `json:"cells"`
}

// MonthView assembles the grid for one month: departures from sale line
// items merged with reminders, bucketed day by day.
func (s *CalendarService) MonthView(ctx context.Context, year, month0 int) (*MonthView, error) {
	month := calendar.Month{Year: year, Month0: month0}
	trips, reminders, err := s.monthData(ctx, month)
	if err != nil {
		return nil, err
	}

	days, startingWeekday := calendar.DaysInMonth(year, month0)
	now := s.now()

	view := &MonthView{
		Year:            year,
		Month0:          month0,
		Days:            days,
		StartingWeekday: startingWeekday,
		Cells:           make([]CalendarDay, 0, days),
	}
	for day := 1; day <= days; day++ {
		view.Cells = append(view.Cells, CalendarDay{
			Day:       day,
			DateKey:   calendar.DateKey(year, month0, day),
			IsToday:   calendar.IsToday(year, month0, day, now),
			Trips:     calendar.TripsOn(trips, year, month0, day),
			Reminders: calendar.RemindersOn(reminders, year, month0, day),
		})
	}
	return view, nil
}

// ExportICS renders the month as an iCalendar document plus its download
// filename.
func (s *CalendarService) ExportICS(ctx context.Context, year, month0 int, calendarName string) (document, filename string, err error) {
	month := calendar.Month{Year: year, Month0: month0}
	trips, reminders, err := s.monthData(ctx, month)
	if err != nil {
		return "", "", err
	}
	return ics.Document(trips, reminders, calendarName), ics.FileName(year, month0), nil
}

func (s *CalendarService) monthData(ctx context.Context, month calendar.Month) ([]domain.TripEvent, []domain.Reminder, error) {
	from := time.Date(month.Year, time.Month(month.Month0+1), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	trips, err := s.sales.TripEventsBetween(ctx, from, to)
	if err != nil {
		return nil, nil, err
	}
	reminders, err := s.reminders.ListBetween(ctx, from, to)
	if err != nil {
		return nil, nil, err
	}
	return trips, reminders, nil
}
