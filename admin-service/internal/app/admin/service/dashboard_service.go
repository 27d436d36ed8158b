package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shopadmin/admin-service/internal/app/admin/derive"
	"shopadmin/admin-service/internal/app/admin/entity"
	"shopadmin/admin-service/internal/app/admin/repository"
	"shopadmin/pkg/metrics"
)

// DashboardService агрегаты для дашборда и бейджей навигации.
// Всё пересчитывается на каждый запрос, состояние между запросами не хранится.
type DashboardService struct {
	customerRepo    repository.CustomerRepository
	productRepo     repository.ProductRepository
	orderRepo       repository.OrderRepository
	pollingInterval time.Duration
}

func NewDashboardService(
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	pollingInterval time.Duration,
) *DashboardService {
	return &DashboardService{
		customerRepo:    customerRepo,
		productRepo:     productRepo,
		orderRepo:       orderRepo,
		pollingInterval: pollingInterval,
	}
}

// Stats три карточки дашборда
func (s *DashboardService) Stats(ctx context.Context) (*entity.DashboardStats, error) {
	customers, err := s.customerRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}

	products, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	pending, err := s.orderRepo.CountByStatus(ctx, entity.OrderStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending orders: %w", err)
	}

	return &entity.DashboardStats{
		TotalCustomers: customers,
		TotalProducts:  products,
		PendingOrders:  pending,
		Cards: []entity.StatCard{
			{
				Label:           "Total Customers",
				Value:           customers,
				Description:     "Increase in customers",
				DescriptionIcon: "heroicon-m-arrow-trending-up",
				Color:           "success",
				Chart:           []int{2, 5, 8, 10, 13},
			},
			{
				Label:           "Total Products",
				Value:           products,
				Description:     "Total products in app",
				DescriptionIcon: "heroicon-m-arrow-trending-down",
				Color:           "danger",
				Chart:           []int{20, 14, 17, 15, 12, 9, 6, 2},
			},
			{
				Label:           "Pending Orders",
				Value:           pending,
				Description:     "Pending orders in app",
				DescriptionIcon: "heroicon-m-arrow-trending-up",
				Color:           "success",
				Chart:           []int{1, 5, 9, 14, 16, 19, 22},
			},
		},
		PollingInterval: formatInterval(s.pollingInterval),
	}, nil
}

// Badges счётчики навигации: все товары и заказы в обработке
func (s *DashboardService) Badges(ctx context.Context) (*entity.NavigationBadges, error) {
	products, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	processing, err := s.orderRepo.CountByStatus(ctx, entity.OrderStatusProcessing)
	if err != nil {
		return nil, fmt.Errorf("failed to count processing orders: %w", err)
	}

	return &entity.NavigationBadges{
		Badges: []entity.NavigationBadge{
			{Resource: ResourceProduct, Count: products},
			{Resource: ResourceOrder, Count: processing, Color: derive.BadgeColor(processing)},
		},
		PollingInterval: formatInterval(s.pollingInterval),
	}, nil
}

// RefreshMetrics обновляет бизнес-gauge в Prometheus
func (s *DashboardService) RefreshMetrics(ctx context.Context) error {
	grouped, err := s.orderRepo.CountGroupedByStatus(ctx)
	if err != nil {
		return fmt.Errorf("failed to count orders by status: %w", err)
	}

	products, err := s.productRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}

	customers, err := s.customerRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count customers: %w", err)
	}

	counts := make(map[string]int64, len(grouped))
	for status, count := range grouped {
		counts[string(status)] = count
	}
	statuses := make([]string, 0, 4)
	for _, status := range entity.OrderStatuses() {
		statuses = append(statuses, string(status))
	}

	metrics.SetOrdersByStatus(counts, statuses)
	metrics.ProductsTotal.Set(float64(products))
	metrics.CustomersTotal.Set(float64(customers))

	return nil
}

// formatInterval 15s, 1m, 1m30s, 1h
func formatInterval(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	s := d.String()
	if strings.HasSuffix(s, "m0s") {
		s = strings.TrimSuffix(s, "0s")
	}
	if strings.HasSuffix(s, "h0m") {
		s = strings.TrimSuffix(s, "0m")
	}
	return s
}
