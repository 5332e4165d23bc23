package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/service"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/typeahead"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/util"
)

type SuggestHandler struct {
	suggest *service.SuggestService
}

func RegisterSuggest(e *echo.Echo, auth *service.AuthService, suggest *service.SuggestService) {
	handler := &SuggestHandler{suggest: suggest}

	group := e.Group("/api/v1/customers", RequireAuth(auth))
	group.GET("/suggest", handler.suggestCustomers)
	group.DELETE("/suggest/session", handler.endSession)
}

// suggestCustomers debounces per editing session: a request superseded by a
// newer keystroke for the same session answers 204 and carries no body.
func (h *SuggestHandler) suggestCustomers(c echo.Context) error {
	sessionID := strings.TrimSpace(c.QueryParam("session"))
	if sessionID == "" {
		return c.JSON(http.StatusBadRequest, util.Error("session is required"))
	}
	query := c.QueryParam("q")

	customers, err := h.suggest.Suggest(c.Request().Context(), sessionID, query)
	if err != nil {
		if errors.Is(err, typeahead.ErrSuperseded) {
			return c.NoContent(http.StatusNoContent)
		}
		return c.JSON(http.StatusBadGateway, util.Error("customer directory unavailable"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"customers": customers})
}

func (h *SuggestHandler) endSession(c echo.Context) error {
	sessionID := strings.TrimSpace(c.QueryParam("session"))
	if sessionID == "" {
		return c.JSON(http.StatusBadRequest, util.Error("session is required"))
	}
	h.suggest.EndSession(sessionID)
	return c.JSON(http.StatusOK, util.Envelope{"success": true})
}
