package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/service"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/util"
)

type CalendarHandler struct {
	calendar *service.CalendarService
}

func RegisterCalendar(e *echo.Echo, auth *service.AuthService, calendar *service.CalendarService) {
	handler := &CalendarHandler{calendar: calendar}

	group := e.Group("/api/v1/calendar", RequireAuth(auth))
	group.GET("/:year/:month", handler.month)
	group.GET("/:year/:month/export.ics", handler.exportICS)
}

// monthParams reads the 1-based month from the URL and returns it 0-based,
// which is how the calendar package counts.
func monthParams(c echo.Context) (year, month0 int, ok bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 1970 || year > 9999 {
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, month - 1, true
}

func (h *CalendarHandler) month(c echo.Context) error {
	year, month0, ok := monthParams(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, util.Error("invalid year or month"))
	}

	view, err := h.calendar.MonthView(c.Request().Context(), year, month0)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("could not build calendar"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"calendar": view})
}

func (h *CalendarHandler) exportICS(c echo.Context) error {
	year, month0, ok := monthParams(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, util.Error("invalid year or month"))
	}

	document, filename, err := h.calendar.ExportICS(c.Request().Context(), year, month0, "Calendario de Viajes")
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("could not export calendar"))
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", []byte(document))
}
