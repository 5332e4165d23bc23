package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/repository/ports"
)

func newSalesFixture() (*SalesService, *memorySaleRepo, *memoryPaymentRepo, *memoryPackageRepo, *recordingMailer) {
	sales := newMemorySaleRepo()
	payments := newMemoryPaymentRepo()
	packages := newMemoryPackageRepo()
	mailer := &recordingMailer{}
	svc := NewSalesService(sales, payments, packages, mailer)
	return svc, sales, payments, packages, mailer
}

func TestSalesService_CreateSale_RequiresCustomer(t *testing.T) {
	svc, _, _, packages, _ := newSalesFixture()
	pkgID := packages.seed("Cancun VIP", 5)

	_, err := svc.CreateSale(context.Background(), CreateSaleInput{
		Items: []SaleItemInput{{PackageID: pkgID, TravelDate: "2026-04-10", Travelers: 2, UnitPrice: 1000}},
	})
	if !errors.Is(err, ErrCustomerRequired) {
		t.Fatalf("expected ErrCustomerRequired, got %v", err)
	}
}

func TestSalesService_CreateSale_RequiresItems(t *testing.T) {
	svc, _, _, _, _ := newSalesFixture()

	_, err := svc.CreateSale(context.Background(), CreateSaleInput{CustomerName: "Laura Díaz"})
	if !errors.Is(err, ErrItemsRequired) {
		t.Fatalf("expected ErrItemsRequired, got %v", err)
	}
}

func TestSalesService_CreateSale_WithoutPaymentStaysPending(t *testing.T) {
	svc, _, _, packages, _ := newSalesFixture()
	pkgID := packages.seed("Cancun VIP", 5)

	result, err := svc.CreateSale(context.Background(), CreateSaleInput{
		CustomerName: "Laura Díaz",
		CreatedBy:    uuid.New(),
		Items:        []SaleItemInput{{PackageID: pkgID, TravelDate: "2026-04-10", Travelers: 2, UnitPrice: 1500}},
	})
	if err != nil {
		t.Fatalf("CreateSale returned error: %v", err)
	}
	if result.Sale.Status != domain.SaleStatusPending {
		t.Fatalf("expected status PENDING, got %s", result.Sale.Status)
	}
	if result.Sale.Total != 3000 {
		t.Fatalf("expected total 3000, got %v", result.Sale.Total)
	}
	if result.Sale.Items[0].DurationDays != 5 {
		t.Fatalf("expected duration copied from package, got %d", result.Sale.Items[0].DurationDays)
	}
	if result.Sale.BookingCode == "" {
		t.Fatalf("expected a booking code")
	}
}

func TestSalesService_CreateSale_PaymentFailureKeepsSale(t *testing.T) {
	svc, sales, payments, packages, mailer := newSalesFixture()
	pkgID := packages.seed("Cancun VIP", 5)
	payments.failNext = errors.New("gateway timeout")

	email := "laura@example.com"
	result, err := svc.CreateSale(context.Background(), CreateSaleInput{
		CustomerName:  "Laura Díaz",
		CustomerEmail: &email,
		CreatedBy:     uuid.New(),
		Items:         []SaleItemInput{{PackageID: pkgID, TravelDate: "2026-04-10", Travelers: 1, UnitPrice: 1200}},
		Payment:       &PaymentInput{Amount: 1200, Method: "card"},
	})
	if err != nil {
		t.Fatalf("CreateSale returned error: %v", err)
	}
	if !result.PaymentFailed {
		t.Fatalf("expected PaymentFailed to be set")
	}
	if result.PaymentError == "" {
		t.Fatalf("expected the payment error to be surfaced")
	}

	stored, err := sales.FindByID(context.Background(), result.Sale.ID)
	if err != nil {
		t.Fatalf("sale should still exist: %v", err)
	}
	if stored.Status != domain.SaleStatusPendingPayment {
		t.Fatalf("expected PENDING_PAYMENT, got %s", stored.Status)
	}
	if mailer.sent != 0 {
		t.Fatalf("no confirmation mail should go out on payment failure")
	}
}

func TestSalesService_RetryPayment_ConfirmsSale(t *testing.T) {
	svc, sales, payments, packages, mailer := newSalesFixture()
	pkgID := packages.seed("Cancun VIP", 5)
	payments.failNext = errors.New("gateway timeout")

	result, err := svc.CreateSale(context.Background(), CreateSaleInput{
		CustomerName: "Laura Díaz",
		CreatedBy:    uuid.New(),
		Items:        []SaleItemInput{{PackageID: pkgID, TravelDate: "2026-04-10", Travelers: 1, UnitPrice: 1200}},
		Payment:      &PaymentInput{Amount: 1200, Method: "card"},
	})
	if err != nil || !result.PaymentFailed {
		t.Fatalf("expected kept sale with failed payment, got result=%+v err=%v", result, err)
	}

	email := "laura@example.com"
	retry, err := svc.RetryPayment(context.Background(), result.Sale.ID, PaymentInput{Amount: 1200, Method: "card"}, &email)
	if err != nil {
		t.Fatalf("RetryPayment returned error: %v", err)
	}
	if retry.PaymentFailed {
		t.Fatalf("retry should have succeeded: %s", retry.PaymentError)
	}
	if retry.Sale.Status != domain.SaleStatusConfirmed {
		t.Fatalf("expected CONFIRMED after retry, got %s", retry.Sale.Status)
	}
	if mailer.sent != 1 {
		t.Fatalf("expected one confirmation mail, got %d", mailer.sent)
	}

	stored, _ := sales.FindByID(context.Background(), result.Sale.ID)
	if stored.Status != domain.SaleStatusConfirmed {
		t.Fatalf("stored sale should be CONFIRMED, got %s", stored.Status)
	}
}

func TestSalesService_RetryPayment_RejectsNonPending(t *testing.T) {
	svc, _, _, packages, _ := newSalesFixture()
	pkgID := packages.seed("Cancun VIP", 5)

	result, err := svc.CreateSale(context.Background(), CreateSaleInput{
		CustomerName: "Laura Díaz",
		CreatedBy:    uuid.New(),
		Items:        []SaleItemInput{{PackageID: pkgID, TravelDate: "2026-04-10", Travelers: 1, UnitPrice: 900}},
	})
	if err != nil {
		t.Fatalf("CreateSale returned error: %v", err)
	}

	_, err = svc.RetryPayment(context.Background(), result.Sale.ID, PaymentInput{Amount: 900, Method: "cash"}, nil)
	if !errors.Is(err, ErrNoPendingPayment) {
		t.Fatalf("expected ErrNoPendingPayment, got %v", err)
	}
}

func TestSalesService_CreateSale_MailFailureDoesNotFailSale(t *testing.T) {
	svc, _, _, packages, mailer := newSalesFixture()
	pkgID := packages.seed("Cancun VIP", 5)
	mailer.fail = errors.New("smtp down")

	email := "laura@example.com"
	result, err := svc.CreateSale(context.Background(), CreateSaleInput{
		CustomerName:  "Laura Díaz",
		CustomerEmail: &email,
		CreatedBy:     uuid.New(),
		Items:         []SaleItemInput{{PackageID: pkgID, TravelDate: "2026-04-10", Travelers: 1, UnitPrice: 800}},
		Payment:       &PaymentInput{Amount: 800, Method: "card"},
	})
	if err != nil {
		t.Fatalf("CreateSale returned error: %v", err)
	}
	if result.Sale.Status != domain.SaleStatusConfirmed {
		t.Fatalf("sale should confirm despite mail failure, got %s", result.Sale.Status)
	}
}

// --- fakes ---

type memorySaleRepo struct {
	items map[uuid.UUID]*domain.Sale
}

func newMemorySaleRepo() *memorySaleRepo {
	return &memorySaleRepo{items: make(map[uuid.UUID]*domain.Sale)}
}

func (m *memorySaleRepo) Create(_ context.Context, sale *domain.Sale) (*domain.Sale, error) {
	stored := *sale
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	m.items[stored.ID] = &stored
	cloned := stored
	return &cloned, nil
}

func (m *memorySaleRepo) Update(_ context.Context, sale *domain.Sale) (*domain.Sale, error) {
	if _, ok := m.items[sale.ID]; !ok {
		return nil, sql.ErrNoRows
	}
	stored := *sale
	m.items[sale.ID] = &stored
	cloned := stored
	return &cloned, nil
}

func (m *memorySaleRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.SaleStatus) error {
	sale, ok := m.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	sale.Status = status
	return nil
}

func (m *memorySaleRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Sale, error) {
	sale, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cloned := *sale
	return &cloned, nil
}

func (m *memorySaleRepo) List(_ context.Context, _ domain.SaleFilter) ([]domain.Sale, error) {
	out := []domain.Sale{}
	for _, sale := range m.items {
		out = append(out, *sale)
	}
	return out, nil
}

func (m *memorySaleRepo) TripEventsBetween(_ context.Context, from, to time.Time) ([]domain.TripEvent, error) {
	events := []domain.TripEvent{}
	for _, sale := range m.items {
		for i, item := range sale.Items {
			date, err := time.Parse("2006-01-02", item.TravelDate[:10])
			if err != nil {
				continue
			}
			if date.Before(from) || !date.Before(to) {
				continue
			}
			events = append(events, domain.TripEvent{
				ID:           uuid.NewSHA1(sale.ID, []byte{byte(i)}),
				SaleID:       sale.ID,
				CustomerName: sale.CustomerName,
				PackageTitle: item.PackageTitle,
				TravelDate:   item.TravelDate,
				DurationDays: item.DurationDays,
				Status:       sale.Status,
				BookingCode:  sale.BookingCode,
			})
		}
	}
	return events, nil
}

type memoryPaymentRepo struct {
	items    map[uuid.UUID][]domain.Payment
	failNext error
}

func newMemoryPaymentRepo() *memoryPaymentRepo {
	return &memoryPaymentRepo{items: make(map[uuid.UUID][]domain.Payment)}
}

func (m *memoryPaymentRepo) Create(_ context.Context, payment *domain.Payment) (*domain.Payment, error) {
	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return nil, err
	}
	stored := *payment
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	m.items[stored.SaleID] = append(m.items[stored.SaleID], stored)
	cloned := stored
	return &cloned, nil
}

func (m *memoryPaymentRepo) ListBySale(_ context.Context, saleID uuid.UUID) ([]domain.Payment, error) {
	return append([]domain.Payment{}, m.items[saleID]...), nil
}

type memoryPackageRepo struct {
	items map[uuid.UUID]*domain.TravelPackage
	slugs map[string]uuid.UUID
}

func newMemoryPackageRepo() *memoryPackageRepo {
	return &memoryPackageRepo{
		items: make(map[uuid.UUID]*domain.TravelPackage),
		slugs: make(map[string]uuid.UUID),
	}
}

func (m *memoryPackageRepo) seed(title string, durationDays int) uuid.UUID {
	id := uuid.New()
	m.items[id] = &domain.TravelPackage{
		ID:           id,
		Title:        title,
		DurationDays: durationDays,
		Status:       domain.PackageStatusActive,
	}
	return id
}

func (m *memoryPackageRepo) Create(_ context.Context, pkg *domain.TravelPackage) (*domain.TravelPackage, error) {
	if existing, ok := m.slugs[pkg.Slug]; ok && pkg.Slug != "" && existing != pkg.ID {
		return nil, fakeUniqueViolation()
	}
	stored := *pkg
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	m.items[stored.ID] = &stored
	if stored.Slug != "" {
		m.slugs[stored.Slug] = stored.ID
	}
	cloned := stored
	return &cloned, nil
}

func (m *memoryPackageRepo) Update(_ context.Context, pkg *domain.TravelPackage) (*domain.TravelPackage, error) {
	existing, ok := m.items[pkg.ID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if owner, taken := m.slugs[pkg.Slug]; taken && pkg.Slug != "" && owner != pkg.ID {
		return nil, fakeUniqueViolation()
	}
	delete(m.slugs, existing.Slug)
	stored := *pkg
	stored.UpdatedAt = time.Now()
	m.items[pkg.ID] = &stored
	if stored.Slug != "" {
		m.slugs[stored.Slug] = stored.ID
	}
	cloned := stored
	return &cloned, nil
}

func (m *memoryPackageRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.TravelPackage, error) {
	pkg, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cloned := *pkg
	return &cloned, nil
}

func (m *memoryPackageRepo) FindBySlug(_ context.Context, slug string) (*domain.TravelPackage, error) {
	id, ok := m.slugs[slug]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return m.FindByID(context.Background(), id)
}

func (m *memoryPackageRepo) List(_ context.Context, filter domain.PackageFilter) ([]domain.TravelPackage, error) {
	out := []domain.TravelPackage{}
	for _, pkg := range m.items {
		if filter.Status != nil && pkg.Status != *filter.Status {
			continue
		}
		out = append(out, *pkg)
	}
	return out, nil
}

func (m *memoryPackageRepo) Archive(_ context.Context, id uuid.UUID, updatedBy uuid.UUID) error {
	pkg, ok := m.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	pkg.Status = domain.PackageStatusArchived
	pkg.UpdatedBy = &updatedBy
	return nil
}

type recordingMailer struct {
	sent int
	fail error
	last *domain.Sale
}

func (m *recordingMailer) SendSaleConfirmation(_ context.Context, _ string, sale *domain.Sale) error {
	if m.fail != nil {
		return m.fail
	}
	m.sent++
	m.last = sale
	return nil
}

var _ ports.SaleRepository = (*memorySaleRepo)(nil)
var _ ports.PaymentRepository = (*memoryPaymentRepo)(nil)
var _ ports.PackageRepository = (*memoryPackageRepo)(nil)
