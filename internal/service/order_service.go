package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/domain"
	"github.com/mroblesv/Viajes_Admin_BackEnd/internal/repository/ports"
)

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrOrderImmutable = errors.New("cancelled orders cannot change")
)

type OrderService struct {
	orders    ports.OrderRepository
	sales     ports.SaleRepository
	providers ports.ProviderRepository
}

func NewOrderService(orders ports.OrderRepository, sales ports.SaleRepository, providers ports.ProviderRepository) *OrderService {
	return &OrderService{orders: orders, sales: sales, providers: providers}
}

type OrderInput struct {
	SaleID       *uuid.UUID
	ProviderID   *uuid.UUID
	Reference    string
	Items        []domain.OrderItem
	Status       *domain.OrderStatus
	CurrencyCode string
}

func (s *OrderService) Create(ctx context.Context, input OrderInput) (*domain.Order, error) {
	if strings.TrimSpace(input.Reference) == "" {
		return nil, errors.New("order reference is required")
	}
	if len(input.Items) == 0 {
		return nil, errors.New("order requires at least one line item")
	}
	if input.SaleID != nil {
		if _, err := s.sales.FindByID(ctx, *input.SaleID); err != nil {
			if isNotFound(err) {
				return nil, ErrSaleNotFound
			}
			return nil, err
		}
	}
	if input.ProviderID != nil {
		if _, err := s.providers.FindByID(ctx, *input.ProviderID); err != nil {
			if isNotFound(err) {
				return nil, ErrProviderNotFound
			}
			return nil, err
		}
	}

	currency := input.CurrencyCode
	if currency == "" {
		currency = "MXN"
	}

	order := &domain.Order{
		SaleID:       input.SaleID,
		ProviderID:   input.ProviderID,
		Reference:    strings.TrimSpace(input.Reference),
		Items:        domain.OrderItems(input.Items),
		Status:       domain.OrderStatusOpen,
		Total:        orderTotal(input.Items),
		CurrencyCode: currency,
	}
	if input.Status != nil {
		order.Status = *input.Status
	}
	return s.orders.Create(ctx, order)
}

func (s *OrderService) Update(ctx context.Context, id uuid.UUID, input OrderInput) (*domain.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.Status == domain.OrderStatusCancelled {
		return nil, ErrOrderImmutable
	}
	if strings.TrimSpace(input.Reference) == "" {
		return nil, errors.New("order reference is required")
	}
	if len(input.Items) == 0 {
		return nil, errors.New("order requires at least one line item")
	}

	order.ProviderID = input.ProviderID
	order.Reference = strings.TrimSpace(input.Reference)
	order.Items = domain.OrderItems(input.Items)
	order.Total = orderTotal(input.Items)
	if input.CurrencyCode != "" {
		order.CurrencyCode = input.CurrencyCode
	}
	if input.Status != nil {
		order.Status = *input.Status
	}
	return s.orders.Update(ctx, order)
}

func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) List(ctx context.Context, status *domain.OrderStatus, limit, offset int) ([]domain.Order, error) {
	limit, offset = normalizePagination(limit, offset)
	return s.orders.List(ctx, status, limit, offset)
}

func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrOrderNotFound
		}
		return err
	}
	return nil
}

func orderTotal(items []domain.OrderItem) float64 {
	var total float64
	for _, item := range items {
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}
		total += item.UnitPrice * float64(qty)
	}
	return total
}
