// Package ics serializes the merged trip and reminder lists into a single
// iCalendar document (RFC 5545 subset: VEVENT blocks with display alarms).
package ics

import (
	"fmt"
	"strings"
	"time"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
)

const (
	domainToken = "viajes-admin"
	prodID      = "-//Viajes Admin//Back Office//ES"
)

const (
	timedStampLayout = "20060102T150405Z"
	dateStampLayout  = "20060102"
)

var priorityGlyphs = map[domain.ReminderPriority]string{
	domain.ReminderPriorityHigh:   "🔴",
	domain.ReminderPriorityMedium: "🟡",
	domain.ReminderPriorityLow:    "🟢",
}

// Document renders the complete calendar as one string: fixed envelope lines
// wrapping all trip events followed by all reminder events. Lines use CRLF.
func Document(trips []domain.TripEvent, reminders []domain.Reminder, calendarName string) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:" + prodID,
		"CALSCALE:GREGORIAN",
		"METHOD:PUBLISH",
		"X-WR-CALNAME:" + escapeText(calendarName),
		"X-WR-TIMEZONE:America/Mexico_City",
	}

	for _, trip := range trips {
		lines = append(lines, tripEvent(trip)...)
	}
	for _, reminder := range reminders {
		lines = append(lines, reminderEvent(reminder)...)
	}

	lines = append(lines, "END:VCALENDAR")
	return strings.Join(lines, "\r\n") + "\r\n"
}

// FileName is the download name for a given calendar page. The month in the
// name is one-based.
func FileName(year, month0 int) string {
	return fmt.Sprintf("calendario-viajes-%d-%d.ics", year, month0+1)
}

func tripEvent(trip domain.TripEvent) []string {
	start := parseTravelDate(trip.TravelDate)
	end := start.AddDate(0, 0, trip.DurationDays)

	status := "TENTATIVE"
	if trip.Status == domain.SaleStatusConfirmed {
		status = "CONFIRMED"
	}

	description := fmt.Sprintf("Cliente: %s\nReserva: %s\nEstado: %s",
		trip.CustomerName, trip.BookingCode, trip.Status)

	return []string{
		"BEGIN:VEVENT",
		fmt.Sprintf("UID:trip-%s-%s@%s", trip.ID, trip.SaleID, domainToken),
		"DTSTART:" + start.Format(timedStampLayout),
		"DTEND:" + end.Format(timedStampLayout),
		"SUMMARY:" + escapeText("✈️ "+trip.PackageTitle),
		"DESCRIPTION:" + escapeText(description),
		"STATUS:" + status,
		"BEGIN:VALARM",
		"TRIGGER:-P7D",
		"ACTION:DISPLAY",
		"DESCRIPTION:" + escapeText("Viaje programado en 7 días"),
		"END:VALARM",
		"END:VEVENT",
	}
}

func reminderEvent(r domain.Reminder) []string {
	lines := []string{
		"BEGIN:VEVENT",
		fmt.Sprintf("UID:reminder-%s@%s", r.ID, domainToken),
	}

	if r.ReminderTime != nil && *r.ReminderTime != "" {
		start := reminderStart(r.ReminderDate, *r.ReminderTime)
		lines = append(lines,
			"DTSTART:"+start.Format(timedStampLayout),
			"DTEND:"+start.Add(time.Hour).Format(timedStampLayout),
		)
	} else {
		start := r.ReminderDate
		lines = append(lines,
			"DTSTART;VALUE=DATE:"+start.Format(dateStampLayout),
			"DTEND;VALUE=DATE:"+start.AddDate(0, 0, 1).Format(dateStampLayout),
		)
	}

	glyph := priorityGlyphs[r.Priority]
	if glyph == "" {
		glyph = priorityGlyphs[domain.ReminderPriorityMedium]
	}
	lines = append(lines, "SUMMARY:"+escapeText(glyph+" "+r.Title))

	description := fmt.Sprintf("Priority: %s", r.Priority)
	if r.Description != nil && *r.Description != "" {
		description = *r.Description + "\n\n" + description
	}
	lines = append(lines, "DESCRIPTION:"+escapeText(description))

	trigger := "TRIGGER:PT0M"
	if r.ReminderTime != nil && *r.ReminderTime != "" {
		trigger = "TRIGGER:-PT30M"
	}
	lines = append(lines,
		"BEGIN:VALARM",
		trigger,
		"ACTION:DISPLAY",
		"DESCRIPTION:"+escapeText("Recordatorio: "+r.Title),
		"END:VALARM",
		"END:VEVENT",
	)
	return lines
}

// parseTravelDate accepts a plain ISO date or a full timestamp and returns
// midnight UTC of that calendar day.
func parseTravelDate(value string) time.Time {
	if len(value) > 10 {
		value = value[:10]
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func reminderStart(date time.Time, hhmm string) time.Time {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
}

// escapeText escapes per RFC 5545: backslash first, then structural
// characters; real newlines become literal backslash-n.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
