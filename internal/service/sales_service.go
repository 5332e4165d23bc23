package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/repository/ports"
)

var (
	ErrSaleNotFound       = errors.New("sale not found")
	ErrCustomerRequired   = errors.New("sale requires a customer")
	ErrItemsRequired      = errors.New("sale requires at least one item")
	ErrInvalidStatusValue = errors.New("invalid sale status")
	ErrNoPendingPayment   = errors.New("sale has no pending payment")
)

// ConfirmationMailer sends the booking summary after a sale confirms. Mail
// failures never fail the sale.
type ConfirmationMailer interface {
	SendSaleConfirmation(ctx context.Context, email string, sale *domain.Sale) error
}

type SalesService struct {
	sales    ports.SaleRepository
	payments ports.PaymentRepository
	packages ports.PackageRepository
	mailer   ConfirmationMailer
	now      func() time.Time
}

func NewSalesService(sales ports.SaleRepository, payments ports.PaymentRepository, packages ports.PackageRepository, mailer ConfirmationMailer) *SalesService {
	return &SalesService{
		sales:    sales,
		payments: payments,
		packages: packages,
		mailer:   mailer,
		now:      time.Now,
	}
}

type SaleItemInput struct {
	PackageID    uuid.UUID
	TravelDate   string // YYYY-MM-DD
	Travelers    int
	UnitPrice    float64
	CurrencyCode string
}

type PaymentInput struct {
	Amount    float64
	Method    string
	Reference *string
	PaidAt    *time.Time
}

type CreateSaleInput struct {
	AgencyID      *uuid.UUID
	CustomerID    *uuid.UUID
	CustomerName  string
	CustomerEmail *string
	Items         []SaleItemInput
	Notes         *string
	Payment       *PaymentInput
	CreatedBy     uuid.UUID
}

// CreateSaleResult reports the composite outcome. PaymentFailed is set when
// the sale persisted but its initial payment did not; the sale is kept in
// PENDING_PAYMENT and only the payment is retried later.
type CreateSaleResult struct {
	Sale          *domain.Sale
	Payment       *domain.Payment
	PaymentFailed bool
	PaymentError  string
}

func (s *SalesService) CreateSale(ctx context.Context, input CreateSaleInput) (*CreateSaleResult, error) {
	if strings.TrimSpace(input.CustomerName) == "" && input.CustomerID == nil {
		return nil, ErrCustomerRequired
	}
	if len(input.Items) == 0 {
		return nil, ErrItemsRequired
	}

	items := make(domain.SaleItems, 0, len(input.Items))
	var total float64
	currency := "MXN"
	for _, in := range input.Items {
		pkg, err := s.packages.FindByID(ctx, in.PackageID)
		if err != nil {
			if isNotFound(err) {
				return nil, ErrPackageNotFound
			}
			return nil, err
		}
		if _, err := time.Parse("2006-01-02", in.TravelDate); err != nil {
			return nil, fmt.Errorf("invalid travel date %q", in.TravelDate)
		}
		travelers := in.Travelers
		if travelers <= 0 {
			travelers = 1
		}
		if in.CurrencyCode != "" {
			currency = in.CurrencyCode
		}
		items = append(items, domain.SaleItem{
			PackageID:    pkg.ID,
			PackageTitle: pkg.Title,
			TravelDate:   in.TravelDate,
			DurationDays: pkg.DurationDays,
			Travelers:    travelers,
			UnitPrice:    in.UnitPrice,
			CurrencyCode: currency,
		})
		total += in.UnitPrice * float64(travelers)
	}

	status := domain.SaleStatusPending
	if input.Payment != nil {
		status = domain.SaleStatusPendingPayment
	}

	sale := &domain.Sale{
		BookingCode:  newBookingCode(s.now()),
		AgencyID:     input.AgencyID,
		CustomerID:   input.CustomerID,
		CustomerName: strings.TrimSpace(input.CustomerName),
		Items:        items,
		Status:       status,
		Total:        total,
		CurrencyCode: currency,
		Notes:        input.Notes,
		CreatedBy:    input.CreatedBy,
	}

	created, err := s.sales.Create(ctx, sale)
	if err != nil {
		return nil, err
	}

	result := &CreateSaleResult{Sale: created}
	if input.Payment == nil {
		return result, nil
	}

	// The sale row is already committed. A payment failure here must not
	// roll it back: the operator keeps the sale and retries the payment.
	payment, payErr := s.registerPayment(ctx, created, *input.Payment)
	if payErr != nil {
		log.Printf("sale %s: initial payment failed, kept pending: %v", created.BookingCode, payErr)
		result.PaymentFailed = true
		result.PaymentError = payErr.Error()
		return result, nil
	}

	result.Payment = payment
	result.Sale, err = s.confirm(ctx, created, input.CustomerEmail)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RetryPayment registers a payment for a sale stuck in PENDING_PAYMENT and
// confirms it on success.
func (s *SalesService) RetryPayment(ctx context.Context, saleID uuid.UUID, input PaymentInput, customerEmail *string) (*CreateSaleResult, error) {
	sale, err := s.sales.FindByID(ctx, saleID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	if sale.Status != domain.SaleStatusPendingPayment {
		return nil, ErrNoPendingPayment
	}

	payment, err := s.registerPayment(ctx, sale, input)
	if err != nil {
		return &CreateSaleResult{Sale: sale, PaymentFailed: true, PaymentError: err.Error()}, nil
	}

	confirmed, err := s.confirm(ctx, sale, customerEmail)
	if err != nil {
		return nil, err
	}
	return &CreateSaleResult{Sale: confirmed, Payment: payment}, nil
}

func (s *SalesService) registerPayment(ctx context.Context, sale *domain.Sale, input PaymentInput) (*domain.Payment, error) {
	if input.Amount <= 0 {
		return nil, errors.New("payment amount must be positive")
	}
	paidAt := s.now()
	if input.PaidAt != nil {
		paidAt = *input.PaidAt
	}
	return s.payments.Create(ctx, &domain.Payment{
		SaleID:    sale.ID,
		Amount:    input.Amount,
		Method:    input.Method,
		Reference: input.Reference,
		Status:    domain.PaymentStatusRegistered,
		PaidAt:    paidAt,
	})
}

func (s *SalesService) confirm(ctx context.Context, sale *domain.Sale, customerEmail *string) (*domain.Sale, error) {
	if err := s.sales.UpdateStatus(ctx, sale.ID, domain.SaleStatusConfirmed); err != nil {
		return nil, err
	}
	sale.Status = domain.SaleStatusConfirmed

	if s.mailer != nil && customerEmail != nil && *customerEmail != "" {
		if err := s.mailer.SendSaleConfirmation(ctx, *customerEmail, sale); err != nil {
			log.Printf("sale %s: confirmation mail failed: %v", sale.BookingCode, err)
		}
	}
	return sale, nil
}

func (s *SalesService) Get(ctx context.Context, id uuid.UUID) (*domain.Sale, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	return sale, nil
}

func (s *SalesService) List(ctx context.Context, filter domain.SaleFilter) ([]domain.Sale, error) {
	filter.Limit, filter.Offset = normalizePagination(filter.Limit, filter.Offset)
	return s.sales.List(ctx, filter)
}

func (s *SalesService) ListPayments(ctx context.Context, saleID uuid.UUID) ([]domain.Payment, error) {
	if _, err := s.Get(ctx, saleID); err != nil {
		return nil, err
	}
	return s.payments.ListBySale(ctx, saleID)
}

func (s *SalesService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*domain.Sale, error) {
	parsed, ok := domain.ParseSaleStatus(status)
	if !ok {
		return nil, ErrInvalidStatusValue
	}
	sale, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.sales.UpdateStatus(ctx, sale.ID, parsed); err != nil {
		return nil, err
	}
	sale.Status = parsed
	return sale, nil
}

const bookingCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func newBookingCode(now time.Time) string {
	suffix := make([]byte, 4)
	max := big.NewInt(int64(len(bookingCodeAlphabet)))
	for i := range suffix {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			suffix[i] = bookingCodeAlphabet[0]
			continue
		}
		suffix[i] = bookingCodeAlphabet[n.Int64()]
	}
	return fmt.Sprintf("VJ-%s-%s", now.Format("20060102"), string(suffix))
}
