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

type GeographyHandler struct {
	geography *service.GeographyService
}

func RegisterGeography(e *echo.Echo, auth *service.AuthService, geography *service.GeographyService) {
	handler := &GeographyHandler{geography: geography}

	group := e.Group("/api/v1/geography", RequireAuth(auth))
	group.GET("/countries", handler.listCountries)
	group.GET("/countries/:id/cities", handler.listCities)
	group.GET("/cities", handler.searchCities)

	admin := e.Group("/api/v1/geography", RequireAuth(auth), RequireAdmin(auth))
	admin.POST("/countries", handler.createCountry)
	admin.DELETE("/countries/:id", handler.removeCountry)
	admin.POST("/countries/:id/cities", handler.createCity)
	admin.DELETE("/cities/:id", handler.removeCity)
	admin.POST("/import", handler.importSeed)
}

func (h *GeographyHandler) listCountries(c echo.Context) error {
	countries, err := h.geography.ListCountries(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("could not list countries"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"countries": countries})
}

func (h *GeographyHandler) createCountry(c echo.Context) error {
	var req struct {
		Name    string `json:"name"`
		ISOCode string `json:"iso_code"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	country, err := h.geography.CreateCountry(c.Request().Context(), req.Name, req.ISOCode)
	if err != nil {
		if errors.Is(err, service.ErrCountryExists) {
			return c.JSON(http.StatusConflict, util.Error("country already exists"))
		}
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	return c.JSON(http.StatusCreated, util.Envelope{"country": country})
}

func (h *GeographyHandler) removeCountry(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}
	if err := h.geography.DeleteCountry(c.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrCountryNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("country not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("could not delete country"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true})
}

func (h *GeographyHandler) listCities(c echo.Context) error {
	countryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}

	cities, err := h.geography.ListCities(c.Request().Context(), countryID)
	if err != nil {
		if errors.Is(err, service.ErrCountryNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("country not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("could not list cities"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"cities": cities})
}

func (h *GeographyHandler) createCity(c echo.Context) error {
	countryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	city, err := h.geography.CreateCity(c.Request().Context(), countryID, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrCountryNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("country not found"))
		}
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	return c.JSON(http.StatusCreated, util.Envelope{"city": city})
}

func (h *GeographyHandler) searchCities(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	cities, err := h.geography.SearchCities(c.Request().Context(), c.QueryParam("q"), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("could not search cities"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"cities": cities})
}

func (h *GeographyHandler) removeCity(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}
	if err := h.geography.DeleteCity(c.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrCityNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("city not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("could not delete city"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true})
}

// importSeed accepts a YAML file upload (multipart field "file") or a raw
// YAML body and loads it into the geography tables.
func (h *GeographyHandler) importSeed(c echo.Context) error {
	if file, err := c.FormFile("file"); err == nil {
		src, err := file.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("could not read uploaded file"))
		}
		defer src.Close()

		result, err := h.geography.ImportYAML(c.Request().Context(), src)
		if err != nil {
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		}
		return c.JSON(http.StatusOK, util.Envelope{"import": result})
	}

	result, err := h.geography.ImportYAML(c.Request().Context(), c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	return c.JSON(http.StatusOK, util.Envelope{"import": result})
}
