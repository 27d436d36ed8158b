package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopadmin/admin-service/internal/app/admin/derive"
	"shopadmin/admin-service/internal/app/admin/entity"
	"shopadmin/admin-service/internal/app/admin/repository"
	"shopadmin/pkg/logger"
	"shopadmin/pkg/metrics"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// maxNumberAttempts сколько раз пробуем сгенерировать свободный номер заказа
const maxNumberAttempts = 5

// OrderService обрабатывает бизнес-логику заказов
type OrderService struct {
	orderRepo      repository.OrderRepository
	customerRepo   repository.CustomerRepository
	productRepo    repository.ProductRepository
	activity       *ActivityService
	generateNumber func() string
	now            func() time.Time
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	activity *ActivityService,
) *OrderService {
	return &OrderService{
		orderRepo:      orderRepo,
		customerRepo:   customerRepo,
		productRepo:    productRepo,
		activity:       activity,
		generateNumber: derive.GenerateOrderNumber,
		now:            time.Now,
	}
}

// Create создает заказ: номер генерируется, цены позиций снимаются с товаров
func (s *OrderService) Create(ctx context.Context, req *entity.CreateOrderRequest) (*entity.Order, error) {
	if err := s.checkCustomer(ctx, req.CustomerID); err != nil {
		return nil, err
	}

	items, err := s.buildItems(ctx, req.Items, nil)
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = entity.OrderStatusPending
	}

	order := &entity.Order{
		ID:            uuid.New(),
		CustomerID:    req.CustomerID,
		Status:        status,
		ShippingPrice: req.ShippingPrice.Round(2),
		Notes:         req.Notes,
		Items:         items,
	}
	order.TotalPrice = itemsTotal(items)

	if err := s.createWithNumber(ctx, order); err != nil {
		return nil, err
	}

	metrics.OrdersCreated.Inc()
	logger.FromContext(ctx).Info().
		Str("order_id", order.ID.String()).
		Str("number", order.Number).
		Str("total_price", order.TotalPrice.StringFixed(2)).
		Msg("Order created")

	s.activity.Record(ctx, ResourceOrder, order.ID, entity.ActivityCreated, order.Number)
	s.publishEvent(ctx, entity.EventOrderCreated, order)

	return s.Get(ctx, order.ID)
}

// createWithNumber подбирает свободный номер и сохраняет заказ.
// Занятый номер (в том числе гонка на unique index) приводит к повтору с новым номером.
func (s *OrderService) createWithNumber(ctx context.Context, order *entity.Order) error {
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		number := s.generateNumber()

		exists, err := s.orderRepo.ExistsByNumber(ctx, number)
		if err != nil {
			return fmt.Errorf("failed to check order number: %w", err)
		}
		if exists {
			metrics.OrderNumberCollisions.Inc()
			continue
		}

		order.Number = number
		err = s.orderRepo.Create(ctx, order)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrDuplicateKey) {
			return fmt.Errorf("failed to create order: %w", err)
		}
		metrics.OrderNumberCollisions.Inc()
	}

	return ErrDuplicateOrderNumber
}

func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

// List страница заказов и сумма total_price по странице
func (s *OrderService) List(ctx context.Context, query entity.OrderListQuery) (*entity.OrderListResponse, error) {
	query.Normalize()

	orders, total, err := s.orderRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	data := make([]entity.OrderResponse, 0, len(orders))
	pageTotal := decimal.Zero
	for i := range orders {
		data = append(data, ToOrderResponse(&orders[i]))
		pageTotal = pageTotal.Add(orders[i].TotalPrice)
	}

	return &entity.OrderListResponse{
		PageResponse: entity.PageResponse[entity.OrderResponse]{
			Data:    data,
			Total:   total,
			Page:    query.Page,
			PerPage: query.PerPage,
		},
		PageTotalPrice: pageTotal.Round(2),
	}, nil
}

// Update меняет заказ и заменяет набор позиций.
// Позиция с прежним ID и прежним товаром сохраняет свою цену,
// новая позиция или позиция со сменённым товаром берёт текущую цену товара.
func (s *OrderService) Update(ctx context.Context, id uuid.UUID, req *entity.UpdateOrderRequest) (*entity.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CustomerID != order.CustomerID {
		if err := s.checkCustomer(ctx, req.CustomerID); err != nil {
			return nil, err
		}
	}

	existing := make(map[uuid.UUID]entity.OrderItem, len(order.Items))
	for _, item := range order.Items {
		existing[item.ID] = item
	}

	items, err := s.buildItems(ctx, req.Items, existing)
	if err != nil {
		return nil, err
	}

	order.CustomerID = req.CustomerID
	order.Customer = nil
	order.Status = req.Status
	order.ShippingPrice = req.ShippingPrice.Round(2)
	order.Notes = req.Notes
	order.Items = items
	order.TotalPrice = itemsTotal(items)

	if err := s.orderRepo.Update(ctx, order); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	s.activity.Record(ctx, ResourceOrder, order.ID, entity.ActivityUpdated, order.Number)
	s.publishEvent(ctx, entity.EventOrderUpdated, order)

	return s.Get(ctx, order.ID)
}

func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	order, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.orderRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}

	s.activity.Record(ctx, ResourceOrder, id, entity.ActivityDeleted, order.Number)
	s.publishEvent(ctx, entity.EventOrderDeleted, order)
	return nil
}

func (s *OrderService) BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	deleted, err := s.orderRepo.BulkDelete(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk delete orders: %w", err)
	}

	for _, id := range deleted {
		s.activity.Record(ctx, ResourceOrder, id, entity.ActivityDeleted, "bulk")
		s.activity.Publish(ctx, id, entity.OrderEvent{
			EventType: entity.EventOrderDeleted,
			OrderID:   id,
			Timestamp: s.now().UTC(),
		})
	}
	return int64(len(deleted)), nil
}

func (s *OrderService) Restore(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	if err := s.orderRepo.Restore(ctx, id); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to restore order: %w", err)
	}

	s.activity.Record(ctx, ResourceOrder, id, entity.ActivityRestored, "")

	return s.Get(ctx, id)
}

func (s *OrderService) checkCustomer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.customerRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return ErrCustomerNotFound
		}
		return fmt.Errorf("failed to get customer: %w", err)
	}
	return nil
}

// buildItems превращает позиции запроса в строки заказа.
// existing - сохранённые позиции редактируемого заказа (nil при создании).
func (s *OrderService) buildItems(ctx context.Context, reqs []entity.OrderItemRequest, existing map[uuid.UUID]entity.OrderItem) ([]entity.OrderItem, error) {
	items := make([]entity.OrderItem, len(reqs))
	needsPrice := make([]bool, len(reqs))
	claimed := make(map[uuid.UUID]bool, len(existing))
	var toPrice []uuid.UUID

	for i, req := range reqs {
		quantity := derive.DefaultQuantity
		if req.Quantity != nil {
			quantity = *req.Quantity
		}
		if quantity < 0 {
			return nil, ErrNegativeQuantity
		}

		item := entity.OrderItem{
			ID:        uuid.New(),
			ProductID: req.ProductID,
			Quantity:  quantity,
		}

		// повтор уже занятого ID считается новой позицией
		if req.ID != nil && !claimed[*req.ID] {
			if prev, ok := existing[*req.ID]; ok {
				claimed[prev.ID] = true
				item.ID = prev.ID
				item.CreatedAt = prev.CreatedAt
				if prev.ProductID == req.ProductID {
					item.UnitPrice = prev.UnitPrice
					items[i] = item
					continue
				}
			}
		}

		// цена проставляется ниже одним запросом
		toPrice = append(toPrice, req.ProductID)
		needsPrice[i] = true
		items[i] = item
	}

	if len(toPrice) == 0 {
		return items, nil
	}

	products, err := s.productRepo.GetByIDs(ctx, toPrice)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	prices := make(map[uuid.UUID]decimal.Decimal, len(products))
	for _, p := range products {
		prices[p.ID] = p.Price
	}

	for i := range items {
		if !needsPrice[i] {
			continue
		}
		price, ok := prices[items[i].ProductID]
		if !ok {
			return nil, ErrProductNotFound
		}
		items[i].UnitPrice = price
	}

	return items, nil
}

func (s *OrderService) publishEvent(ctx context.Context, eventType string, order *entity.Order) {
	s.activity.Publish(ctx, order.ID, entity.OrderEvent{
		EventType:  eventType,
		OrderID:    order.ID,
		Number:     order.Number,
		CustomerID: order.CustomerID,
		Status:     order.Status,
		TotalPrice: order.TotalPrice,
		ItemsCount: len(order.Items),
		Timestamp:  s.now().UTC(),
	})
}

// itemToLine строка заказа в терминах калькулятора
func itemToLine(item entity.OrderItem) derive.Line {
	productID := item.ProductID
	return derive.Line{
		ProductID: &productID,
		Quantity:  item.Quantity,
		UnitPrice: item.UnitPrice,
	}
}

// itemsTotal итог заказа - сумма итогов позиций, доставка не входит
func itemsTotal(items []entity.OrderItem) decimal.Decimal {
	lines := make([]derive.Line, len(items))
	for i, item := range items {
		lines[i] = itemToLine(item)
	}
	return derive.OrderTotal(lines)
}

// ToOrderResponse заказ с итогами по каждой позиции
func ToOrderResponse(order *entity.Order) entity.OrderResponse {
	resp := entity.OrderResponse{
		ID:            order.ID,
		Number:        order.Number,
		CustomerID:    order.CustomerID,
		Status:        order.Status,
		ShippingPrice: order.ShippingPrice,
		TotalPrice:    order.TotalPrice,
		Notes:         order.Notes,
		CreatedAt:     order.CreatedAt,
		Items:         make([]entity.ItemResponse, 0, len(order.Items)),
	}
	if order.Customer != nil {
		resp.CustomerName = order.Customer.Name
	}

	for _, item := range order.Items {
		itemResp := entity.ItemResponse{
			ID:         item.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: derive.LineTotal(itemToLine(item)),
		}
		if item.Product != nil {
			itemResp.ProductName = item.Product.Name
		}
		resp.Items = append(resp.Items, itemResp)
	}

	return resp
}
