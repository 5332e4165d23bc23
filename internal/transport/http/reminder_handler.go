package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/service"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/util"
)

type ReminderHandler struct {
	reminders *service.ReminderService
}

type reminderRequest struct {
	Title        string  `json:"title"`
	Description  *string `json:"description,omitempty"`
	ReminderDate string  `json:"reminder_date"`
	ReminderTime *string `json:"reminder_time,omitempty"`
	Type         string  `json:"type"`
	Priority     string  `json:"priority"`
}

func (r reminderRequest) toInput(createdBy uuid.UUID) (service.ReminderInput, error) {
	input := service.ReminderInput{
		Title:        r.Title,
		Description:  r.Description,
		ReminderTime: r.ReminderTime,
		Type:         r.Type,
		Priority:     r.Priority,
		CreatedBy:    createdBy,
	}
	date, err := time.Parse("2006-01-02", r.ReminderDate)
	if err != nil {
		return input, errors.New("reminder_date must be YYYY-MM-DD")
	}
	input.ReminderDate = date
	return input, nil
}

func RegisterReminders(e *echo.Echo, auth *service.AuthService, reminders *service.ReminderService) {
	handler := &ReminderHandler{reminders: reminders}

	group := e.Group("/api/v1/reminders", RequireAuth(auth))
	group.GET("", handler.list)
	group.GET("/:id", handler.get)
	group.POST("", handler.create)
	group.PUT("/:id", handler.update)
	group.PATCH("/:id/complete", handler.setCompleted)
	group.DELETE("/:id", handler.remove)
}

func (h *ReminderHandler) create(c echo.Context) error {
	actor, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	var req reminderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	input, err := req.toInput(actor.ID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	reminder, err := h.reminders.Create(c.Request().Context(), input)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	return c.JSON(http.StatusCreated, util.Envelope{"reminder": reminder})
}

func (h *ReminderHandler) update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}
	var req reminderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	input, err := req.toInput(uuid.Nil)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	reminder, err := h.reminders.Update(c.Request().Context(), id, input)
	if err != nil {
		if errors.Is(err, service.ErrReminderNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("reminder not found"))
		}
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	return c.JSON(http.StatusOK, util.Envelope{"reminder": reminder})
}

func (h *ReminderHandler) setCompleted(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}
	var req struct {
		Completed bool `json:"completed"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	if err := h.reminders.SetCompleted(c.Request().Context(), id, req.Completed); err != nil {
		if errors.Is(err, service.ErrReminderNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("reminder not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("could not update reminder"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true})
}

func (h *ReminderHandler) get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}

	reminder, err := h.reminders.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrReminderNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("reminder not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("could not load reminder"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"reminder": reminder})
}

func (h *ReminderHandler) list(c echo.Context) error {
	from, err := time.Parse("2006-01-02", c.QueryParam("from"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("from must be YYYY-MM-DD"))
	}
	to, err := time.Parse("2006-01-02", c.QueryParam("to"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("to must be YYYY-MM-DD"))
	}

	reminders, err := h.reminders.ListBetween(c.Request().Context(), from, to)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	return c.JSON(http.StatusOK, util.Envelope{"reminders": reminders})
}

func (h *ReminderHandler) remove(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}
	if err := h.reminders.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrReminderNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("reminder not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("could not delete reminder"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true})
}
