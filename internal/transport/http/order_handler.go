package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/service"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/util"
)

type OrderHandler struct {
	orders *service.OrderService
}

type orderRequest struct {
	SaleID       *string            `json:"sale_id,omitempty"`
	ProviderID   *string            `json:"provider_id,omitempty"`
	Reference    string             `json:"reference"`
	Items        []domain.OrderItem `json:"items"`
	Status       *string            `json:"status,omitempty"`
	CurrencyCode string             `json:"currency_code"`
}

func (r orderRequest) toInput() (service.OrderInput, error) {
	input := service.OrderInput{
		Reference:    r.Reference,
		Items:        r.Items,
		CurrencyCode: r.CurrencyCode,
	}

	if r.SaleID != nil && *r.SaleID != "" {
		saleID, err := uuid.Parse(*r.SaleID)
		if err != nil {
			return input, errors.New("sale_id must be a valid UUID")
		}
		input.SaleID = &saleID
	}
	if r.ProviderID != nil && *r.ProviderID != "" {
		providerID, err := uuid.Parse(*r.ProviderID)
		if err != nil {
			return input, errors.New("provider_id must be a valid UUID")
		}
		input.ProviderID = &providerID
	}
	if r.Status != nil && *r.Status != "" {
		status, ok := parseOrderStatus(*r.Status)
		if !ok {
			return input, errors.New("invalid order status")
		}
		input.Status = &status
	}
	return input, nil
}

func parseOrderStatus(raw string) (domain.OrderStatus, bool) {
	switch domain.OrderStatus(raw) {
	case domain.OrderStatusOpen, domain.OrderStatusInvoiced, domain.OrderStatusFulfilled, domain.OrderStatusCancelled:
		return domain.OrderStatus(raw), true
	default:
		return "", false
	}
}

func RegisterOrders(e *echo.Echo, auth *service.AuthService, orders *service.OrderService) {
	handler := &OrderHandler{orders: orders}

	group := e.Group("/api/v1/orders", RequireAuth(auth))
	group.GET("", handler.list)
	group.GET("/:id", handler.get)
	group.POST("", handler.create)
	group.PUT("/:id", handler.update)

	admin := e.Group("/api/v1/orders", RequireAuth(auth), RequireAdmin(auth))
	admin.DELETE("/:id", handler.remove)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req orderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	input, err := req.toInput()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	order, err := h.orders.Create(c.Request().Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSaleNotFound):
			return c.JSON(http.StatusNotFound, util.Error("sale not found"))
		case errors.Is(err, service.ErrProviderNotFound):
			return c.JSON(http.StatusNotFound, util.Error("provider not found"))
		default:
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		}
	}
	return c.JSON(http.StatusCreated, util.Envelope{"order": order})
}

func (h *OrderHandler) update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}
	var req orderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	input, err := req.toInput()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	order, err := h.orders.Update(c.Request().Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			return c.JSON(http.StatusNotFound, util.Error("order not found"))
		case errors.Is(err, service.ErrOrderImmutable):
			return c.JSON(http.StatusConflict, util.Error("cancelled orders cannot change"))
		default:
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		}
	}
	return c.JSON(http.StatusOK, util.Envelope{"order": order})
}

func (h *OrderHandler) get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}

	order, err := h.orders.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("order not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("could not load order"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"order": order})
}

func (h *OrderHandler) list(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	var status *domain.OrderStatus
	if raw := c.QueryParam("status"); raw != "" {
		parsed, ok := parseOrderStatus(raw)
		if !ok {
			return c.JSON(http.StatusBadRequest, util.Error("invalid status filter"))
		}
		status = &parsed
	}

	orders, err := h.orders.List(c.Request().Context(), status, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("could not list orders"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"orders": orders})
}

func (h *OrderHandler) remove(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}
	if err := h.orders.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("order not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("could not delete order"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"success": true})
}
