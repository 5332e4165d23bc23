package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
)

func documentLines(t *testing.T, doc string) []string {
	t.Helper()
	if !strings.HasSuffix(doc, "\r\n") {
		t.Fatalf("document missing trailing CRLF")
	}
	return strings.Split(strings.TrimSuffix(doc, "\r\n"), "\r\n")
}

func mustContain(t *testing.T, doc, want string) {
	t.Helper()
	if !strings.Contains(doc, want) {
		t.Fatalf("document missing %q\n%s", want, doc)
	}
}

func TestDocumentEnvelope(t *testing.T) {
	doc := Document(nil, nil, "Calendario de Viajes")
	lines := documentLines(t, doc)

	if lines[0] != "BEGIN:VCALENDAR" || lines[len(lines)-1] != "END:VCALENDAR" {
		t.Fatalf("envelope broken: first=%q last=%q", lines[0], lines[len(lines)-1])
	}
	mustContain(t, doc, "VERSION:2.0")
	mustContain(t, doc, "CALSCALE:GREGORIAN")
	mustContain(t, doc, "METHOD:PUBLISH")
	mustContain(t, doc, "X-WR-CALNAME:Calendario de Viajes")
}

func TestConfirmedTripEvent(t *testing.T) {
	tripID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	saleID := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	trip := domain.TripEvent{
		ID:           tripID,
		SaleID:       saleID,
		CustomerName: "Ana Robles",
		PackageTitle: "Cancún VIP",
		TravelDate:   "2026-04-10",
		DurationDays: 5,
		Status:       domain.SaleStatusConfirmed,
		BookingCode:  "VTA-0042",
	}

	doc := Document([]domain.TripEvent{trip}, nil, "Calendario")

	mustContain(t, doc, "UID:trip-11111111-1111-1111-1111-111111111111-22222222-2222-2222-2222-222222222222@viajes-admin")
	mustContain(t, doc, "DTSTART:20260410T000000Z")
	mustContain(t, doc, "DTEND:20260415T000000Z")
	mustContain(t, doc, "STATUS:CONFIRMED")
	mustContain(t, doc, "SUMMARY:✈️ Cancún VIP")
	mustContain(t, doc, "DESCRIPTION:Cliente: Ana Robles\\nReserva: VTA-0042\\nEstado: CONFIRMED")
	mustContain(t, doc, "TRIGGER:-P7D")

	if strings.Contains(doc, "DESCRIPTION:Cliente: Ana Robles\nReserva") {
		t.Fatalf("description contains a real newline instead of an escaped one")
	}
}

func TestNonConfirmedTripIsTentative(t *testing.T) {
	trip := domain.TripEvent{
		ID:           uuid.New(),
		SaleID:       uuid.New(),
		PackageTitle: "Cancún VIP",
		TravelDate:   "2026-04-10T00:00:00Z", // timestamp suffix tolerated
		DurationDays: 5,
		Status:       domain.SaleStatusPendingPayment,
	}

	doc := Document([]domain.TripEvent{trip}, nil, "Calendario")
	mustContain(t, doc, "STATUS:TENTATIVE")
	mustContain(t, doc, "DTSTART:20260410T000000Z")
	if strings.Contains(doc, "STATUS:CONFIRMED") {
		t.Fatalf("pending trip serialized as confirmed")
	}
}

func TestAllDayReminder(t *testing.T) {
	r := domain.Reminder{
		ID:           uuid.MustParse("33333333-3333-3333-3333-333333333333"),
		Title:        "Pagar proveedor",
		ReminderDate: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		Priority:     domain.ReminderPriorityHigh,
	}

	doc := Document(nil, []domain.Reminder{r}, "Calendario")

	mustContain(t, doc, "UID:reminder-33333333-3333-3333-3333-333333333333@viajes-admin")
	mustContain(t, doc, "DTSTART;VALUE=DATE:20260501")
	mustContain(t, doc, "DTEND;VALUE=DATE:20260502")
	mustContain(t, doc, "SUMMARY:🔴 Pagar proveedor")
	mustContain(t, doc, "DESCRIPTION:Priority: HIGH")
	mustContain(t, doc, "TRIGGER:PT0M")

	if strings.Contains(doc, "DTSTART:20260501T") {
		t.Fatalf("all-day reminder mixed in a timed DTSTART")
	}
}

func TestTimedReminder(t *testing.T) {
	at := "09:30"
	desc := "Confirmar cupo; llamar antes de mediodía"
	r := domain.Reminder{
		ID:           uuid.New(),
		Title:        "Llamar cliente",
		Description:  &desc,
		ReminderDate: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		ReminderTime: &at,
		Priority:     domain.ReminderPriorityLow,
	}

	doc := Document(nil, []domain.Reminder{r}, "Calendario")

	mustContain(t, doc, "DTSTART:20260501T093000Z")
	mustContain(t, doc, "DTEND:20260501T103000Z")
	mustContain(t, doc, "SUMMARY:🟢 Llamar cliente")
	mustContain(t, doc, "TRIGGER:-PT30M")
	// Free text and the priority line joined by a blank escaped newline, with
	// the semicolon escaped.
	mustContain(t, doc, "DESCRIPTION:Confirmar cupo\\; llamar antes de mediodía\\n\\nPriority: LOW")

	if strings.Contains(doc, "VALUE=DATE:20260501") {
		t.Fatalf("timed reminder mixed in all-day date fields")
	}
}

func TestFileName(t *testing.T) {
	if got := FileName(2026, 2); got != "calendario-viajes-2026-3.ics" {
		t.Fatalf("FileName = %q", got)
	}
}
