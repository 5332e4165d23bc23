package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/service"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/util"
)

type PromotionHandler struct {
	promotions *service.PromotionService
}

type promotionRequest struct {
	Title           string  `json:"title"`
	Description     *string `json:"description,omitempty"`
	DiscountPercent float64 `json:"discount_percent"`
	PackageID       *string `json:"package_id,omitempty"`
	BannerImageURL  *string `json:"banner_image_url,omitempty"`
	StartsAt        string  `json:"starts_at"`
	EndsAt          string  `json:"ends_at"`
	Active          *bool   `json:"active,omitempty"`
}

func (r promotionRequest) toInput() (service.PromotionInput, error) {
	input := service.PromotionInput{
		Title:           r.Title,
		Description:     r.Description,
		DiscountPercent: r.DiscountPercent,
		BannerImageURL:  r.BannerImageURL,
		Active:          r.Active,
	}

	startsAt, err := time.Parse(time.RFC3339, r.StartsAt)
	if err != nil {
		return input, errors.New("starts_at must be RFC3339")
	}
	endsAt, err := time.Parse(time.RFC3339, r.EndsAt)
	if err != nil {
		return input, errors.New("ends_at must be RFC3339")
	}
	input.StartsAt = startsAt
	input.EndsAt = endsAt

	if r.PackageID != nil && *r.PackageID != "" {
		packageID, err := uuid.Parse(*r.PackageID)
		if err != nil {
			return input, errors.New("package_id must be a valid UUID")
		}
		input.PackageID = &packageID
	}
	return input, nil
}

func RegisterPromotions(e *echo.Echo, auth *service.AuthService, promotions *service.PromotionService) {
	handler := &PromotionHandler{promotions: promotions}

	group := e.Group("/api/v1/promotions", RequireAuth(auth))
	group.GET("", handler.list)
	group.GET("/running", handler.listRunning)
	group.GET("/:id", handler.get)
	group.POST("", handler.create)
	group.PUT("/:id", handler.update)
	group.DELETE("/:id", handler.remove)
}

func (h *PromotionHandler) create(c echo.Context) error {
	var req promotionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	input, err := req.toInput()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	promotion, err := h.promotions.Create(c.Request().Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrPackageNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("package not found"))
		}
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	return c.JSON(http.StatusCreated, util.Envelope{"promotion": promotion})
}

func (h *PromotionHandler) update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}
	var req promotionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	input, err := req.toInput()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	promotion, err := h.promotions.Update(c.Request().Context(), id, input)
	if err != nil {
		if errors.Is(err, service.ErrPromotionNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("promotion not found"))
		}
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}
	return c.JSON(http.StatusOK, util.Envelope{"promotion": promotion})
}

func (h *PromotionHandler) get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}

	promotion, err := h.promotions.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPromotionNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("promotion not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("could not load promotion"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"promotion": promotion})
}

func (h *PromotionHandler) list(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	onlyActive := c.QueryParam("active") == "true"

	promotions, err := h.promotions.List(c.Request().Context(), onlyActive, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("could not list promotions"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"promotions": promotions})
}

func (h *PromotionHandler) listRunning(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	promotions, err := h.promotions.ListRunning(c.Request().Context(), limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("could not list promotions"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"promotions": promotions})
}

func (h *PromotionHandler) remove(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}
	if err := h.promotions.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrPromotionNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("promotion not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("could not delete promotion"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true})
}
