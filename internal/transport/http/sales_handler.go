package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/service"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/util"
)

type SalesHandler struct {
	sales *service.SalesService
}

type saleItemRequest struct {
	PackageID    string  `json:"package_id"`
	TravelDate   string  `json:"travel_date"`
	Travelers    int     `json:"travelers"`
	UnitPrice    float64 `json:"unit_price"`
	CurrencyCode string  `json:"currency_code"`
}

type paymentRequest struct {
	Amount    float64 `json:"amount"`
	Method    string  `json:"method"`
	Reference *string `json:"reference,omitempty"`
	PaidAt    *string `json:"paid_at,omitempty"`
}

func (r paymentRequest) toInput() (service.PaymentInput, error) {
	input := service.PaymentInput{
		Amount:    r.Amount,
		Method:    r.Method,
		Reference: r.Reference,
	}
	if r.PaidAt != nil && *r.PaidAt != "" {
		paidAt, err := time.Parse(time.RFC3339, *r.PaidAt)
		if err != nil {
			return input, errors.New("paid_at must be RFC3339")
		}
		input.PaidAt = &paidAt
	}
	return input, nil
}

type createSaleRequest struct {
	AgencyID      *string           `json:"agency_id,omitempty"`
	CustomerID    *string           `json:"customer_id,omitempty"`
	CustomerName  string            `json:"customer_name"`
	CustomerEmail *string           `json:"customer_email,omitempty"`
	Items         []saleItemRequest `json:"items"`
	Notes         *string           `json:"notes,omitempty"`
	Payment       *paymentRequest   `json:"payment,omitempty"`
}

func (r createSaleRequest) toInput(createdBy uuid.UUID) (service.CreateSaleInput, error) {
	input := service.CreateSaleInput{
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		Notes:         r.Notes,
		CreatedBy:     createdBy,
	}

	if r.AgencyID != nil && *r.AgencyID != "" {
		agencyID, err := uuid.Parse(*r.AgencyID)
		if err != nil {
			return input, errors.New("agency_id must be a valid UUID")
		}
		input.AgencyID = &agencyID
	}
	if r.CustomerID != nil && *r.CustomerID != "" {
		customerID, err := uuid.Parse(*r.CustomerID)
		if err != nil {
			return input, errors.New("customer_id must be a valid UUID")
		}
		input.CustomerID = &customerID
	}

	for _, item := range r.Items {
		packageID, err := uuid.Parse(item.PackageID)
		if err != nil {
			return input, errors.New("items[].package_id must be a valid UUID")
		}
		input.Items = append(input.Items, service.SaleItemInput{
			PackageID:    packageID,
			TravelDate:   item.TravelDate,
			Travelers:    item.Travelers,
			UnitPrice:    item.UnitPrice,
			CurrencyCode: item.CurrencyCode,
		})
	}

	if r.Payment != nil {
		payment, err := r.Payment.toInput()
		if err != nil {
			return input, err
		}
		input.Payment = &payment
	}
	return input, nil
}

// saleResultEnvelope reports a partial failure without losing the created
// sale: the payment leg may fail while the sale itself persisted.
func saleResultEnvelope(result *service.CreateSaleResult) util.Envelope {
	envelope := util.Envelope{"sale": result.Sale}
	if result.Payment != nil {
		envelope["payment"] = result.Payment
	}
	if result.PaymentFailed {
		envelope["payment_failed"] = true
		envelope["payment_error"] = result.PaymentError
	}
	return envelope
}

func RegisterSales(e *echo.Echo, auth *service.AuthService, sales *service.SalesService) {
	handler := &SalesHandler{sales: sales}

	group := e.Group("/api/v1/sales", RequireAuth(auth))
	group.POST("", handler.create)
	group.GET("", handler.list)
	group.GET("/:id", handler.get)
	group.PUT("/:id/status", handler.updateStatus)
	group.GET("/:id/payments", handler.listPayments)
	group.POST("/:id/payments", handler.retryPayment)
}

func (h *SalesHandler) create(c echo.Context) error {
	actor, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	var req createSaleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	input, err := req.toInput(actor.ID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	result, err := h.sales.CreateSale(c.Request().Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCustomerRequired), errors.Is(err, service.ErrItemsRequired):
			return c.JSON(http.StatusUnprocessableEntity, util.Error(err.Error()))
		case errors.Is(err, service.ErrPackageNotFound):
			return c.JSON(http.StatusNotFound, util.Error("package not found"))
		default:
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		}
	}
	return c.JSON(http.StatusCreated, saleResultEnvelope(result))
}

func (h *SalesHandler) retryPayment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}
	var req struct {
		paymentRequest
		CustomerEmail *string `json:"customer_email,omitempty"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	input, err := req.toInput()
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	}

	result, err := h.sales.RetryPayment(c.Request().Context(), id, input, req.CustomerEmail)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSaleNotFound):
			return c.JSON(http.StatusNotFound, util.Error("sale not found"))
		case errors.Is(err, service.ErrNoPendingPayment):
			return c.JSON(http.StatusConflict, util.Error("sale has no pending payment"))
		default:
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		}
	}
	return c.JSON(http.StatusOK, saleResultEnvelope(result))
}

func (h *SalesHandler) get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}

	sale, err := h.sales.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSaleNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("sale not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("could not load sale"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"sale": sale})
}

func (h *SalesHandler) list(c echo.Context) error {
	filter := domain.SaleFilter{}
	filter.Limit, _ = strconv.Atoi(c.QueryParam("limit"))
	filter.Offset, _ = strconv.Atoi(c.QueryParam("offset"))

	if raw := c.QueryParam("status"); raw != "" {
		status, ok := domain.ParseSaleStatus(raw)
		if !ok {
			return c.JSON(http.StatusBadRequest, util.Error("invalid status filter"))
		}
		filter.Status = &status
	}
	if raw := c.QueryParam("agency_id"); raw != "" {
		agencyID, err := uuid.Parse(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("agency_id must be a valid UUID"))
		}
		filter.AgencyID = &agencyID
	}
	if raw := c.QueryParam("customer_id"); raw != "" {
		customerID, err := uuid.Parse(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("customer_id must be a valid UUID"))
		}
		filter.CustomerID = &customerID
	}
	if raw := c.QueryParam("q"); raw != "" {
		filter.Query = &raw
	}

	sales, err := h.sales.List(c.Request().Context(), filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("could not list sales"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"sales": sales})
}

func (h *SalesHandler) listPayments(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}

	payments, err := h.sales.ListPayments(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSaleNotFound) {
			return c.JSON(http.StatusNotFound, util.Error("sale not found"))
		}
		return c.JSON(http.StatusInternalServerError, util.Error("could not list payments"))
	}
	return c.JSON(http.StatusOK, util.Envelope{"payments": payments})
}

func (h *SalesHandler) updateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("id must be a valid UUID"))
	}
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	sale, err := h.sales.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSaleNotFound):
			return c.JSON(http.StatusNotFound, util.Error("sale not found"))
		case errors.Is(err, service.ErrInvalidStatusValue):
			return c.JSON(http.StatusUnprocessableEntity, util.Error("invalid sale status"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("could not update sale"))
		}
	}
	return c.JSON(http.StatusOK, util.Envelope{"sale": sale})
}
