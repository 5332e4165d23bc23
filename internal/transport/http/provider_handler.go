package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/service"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/util"
)

type ProviderHandler struct {
	providers *service.ProviderService
}

type providerRequest struct {
	Name              string   `json:"name"`
	Category          *string  `json:"category,omitempty"`
	ContactName       *string  `json:"contact_name,omitempty"`
	Email             *string  `json:"email,omitempty"`
	Phone             *string  `json:"phone,omitempty"`
	CommissionPercent *float64 `json:"commission_percent,omitempty"`
	Active            *bool    `json:"active,omitempty"`
}

func (r providerRequest) toInput() service.ProviderInput {
	return service.ProviderInput{
		Name:              r.Name,
		Category:          r.Category,
		ContactName:       r.ContactName,
		Email:             r.Email,
		Phone:             r.Phone,
		CommissionPercent: r.CommissionPercent,
		Active:            r.Active,
	}
}

func RegisterProviders(e *echo.Echo, auth *service.AuthService, providers *service.ProviderService) {
	handler := &ProviderHandler{providers: providers}

	group := e.Group("/api/v1/providers", RequireAuth(auth))
	group.GET("", handler.list)
	group.GET("/:id", handler.get)
	group.POST("", handler.create)
	group.PUT("/:id", handler.update)

	admin := e.Group("/api/v1/providers", RequireAuth(auth), RequireAdmin(auth))
	admin.DELETE("/:id", handler.remove)
}

func (h *ProviderHandler) create(c echo.Context) error {
	var req providerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	provider, err := h.providers.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	return c.JSON(http.StatusCreated, util.Envelope{"provider": provider})
}

func (h *ProviderHandler) update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}
	var req providerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	provider, err := h.providers.Update(c.Request().Context(), id, req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrProviderNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("provider not found"))
		}
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	return c.JSON(http.StatusOK, util.Envelope{"provider": provider})
}

func (h *ProviderHandler) get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}

	provider, err := h.providers.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProviderNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("provider not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("could not load provider"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"provider": provider})
}

func (h *ProviderHandler) list(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	onlyActive := c.QueryParam("active") == "true"

	providers, err := h.providers.List(c.Request().Context(), onlyActive, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("could not list providers"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"providers": providers})
}

func (h *ProviderHandler) remove(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}
	if err := h.providers.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrProviderNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("provider not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("could not delete provider"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true})
}
