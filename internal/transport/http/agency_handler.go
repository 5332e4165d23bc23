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

type AgencyHandler struct {
	agencies *service.AgencyService
}

type agencyRequest struct {
	Name    string  `json:"name"`
	TaxCode *string `json:"tax_code,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	CityID  *string `json:"city_id,omitempty"`
	Active  *bool   `json:"active,omitempty"`
}

func RegisterAgencies(e *echo.Echo, auth *service.AuthService, agencies *service.AgencyService) {
	handler := &AgencyHandler{agencies: agencies}

	group := e.Group("/api/v1/agencies", RequireAuth(auth))
	group.GET("", handler.list)
	group.GET("/:id", handler.get)

	admin := e.Group("/api/v1/agencies", RequireAuth(auth), RequireAdmin(auth))
	admin.POST("", handler.create)
	admin.PUT("/:id", handler.update)
	admin.DELETE("/:id", handler.remove)
}

func (r agencyRequest) toInput() (service.AgencyInput, error) {
	input := service.AgencyInput{
		Name:    r.Name,
		TaxCode: r.TaxCode,
		Email:   r.Email,
		Phone:   r.Phone,
		Address: r.Address,
		Active:  r.Active,
	}
	if r.CityID != nil && *r.CityID != "" {
		cityID, err := uuid.Parse(*r.CityID)
		if err != nil {
			return input, errors.New("city_id must be a valid UUID")
		}
		input.CityID = &cityID
	}
	return input, nil
}

func (h *AgencyHandler) create(c echo.Context) error {
	var req agencyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	input, err := req.toInput()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	agency, err := h.agencies.Create(c.Request().Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrAgencyNameTaken) {
			return c.JSON(http.StatusConflict, util.Error("agency name already in use"))
		}
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	return c.JSON(http.StatusCreated, util.Envelope{"agency": agency})
}

func (h *AgencyHandler) update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}
	var req agencyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	input, err := req.toInput()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	agency, err := h.agencies.Update(c.Request().Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAgencyNotFound):
			return c.JSON(http.StatusNotFound, util.Error("agency not found"))
		case errors.Is(err, service.ErrAgencyNameTaken):
			return c.JSON(http.StatusConflict, util.Error("agency name already in use"))
		default:
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		}
	}
	return c.JSON(http.StatusOK, util.Envelope{"agency": agency})
}

func (h *AgencyHandler) get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}

	agency, err := h.agencies.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrAgencyNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("agency not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("could not load agency"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"agency": agency})
}

func (h *AgencyHandler) list(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	agencies, err := h.agencies.List(c.Request().Context(), limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("could not list agencies"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"agencies": agencies})
}

func (h *AgencyHandler) remove(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}

	if err := h.agencies.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrAgencyNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("agency not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("could not delete agency"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true})
}
