package repository

import (
	"context"
	"errors"

	"shopadmin/admin-service/internal/app/admin/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var orderSortColumns = map[string]string{
	"number":      "number",
	"status":      "status",
	"total_price": "total_price",
	"created_at":  "created_at",
}

type orderRepository struct {
	db *gorm.DB // GORM DB для работы с PostgreSQL
}

// NewOrderRepository создает новый репозиторий заказов
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create создает заказ вместе с позициями
// Совпадение номера заказа возвращает ErrDuplicateKey (unique index на number)
func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	result := r.db.WithContext(ctx).
		Omit("Customer", "Items.Product").
		Create(order)
	return translateError(result.Error)
}

// GetByID получает заказ с покупателем и позициями
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var order entity.Order
	result := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Items.Product", func(db *gorm.DB) *gorm.DB {
			// удалённый товар всё ещё нужен для отображения старых позиций
			return db.Unscoped()
		}).
		First(&order, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, result.Error
	}

	return &order, nil
}

// ExistsByNumber проверяет, занят ли номер, включая удалённые заказы
func (r *orderRepository) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Unscoped().
		Model(&entity.Order{}).
		Where("number = ?", number).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// List возвращает страницу заказов
// Поиск по номеру и имени покупателя
func (r *orderRepository) List(ctx context.Context, query entity.OrderListQuery) ([]entity.Order, int64, error) {
	base := func() *gorm.DB {
		db := r.db.WithContext(ctx).Model(&entity.Order{}).Scopes(trashed(query.OnlyTrashed))
		if query.Status != "" {
			db = db.Where("status = ?", query.Status)
		}
		if query.Search != "" {
			like := likePattern(query.Search)
			db = db.Where("(number ILIKE ? OR customer_id IN (SELECT id FROM customers WHERE name ILIKE ?))", like, like)
		}
		return db
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []entity.Order
	result := base().
		Preload("Customer").
		Preload("Items").
		Scopes(sortBy(query.ListQuery, orderSortColumns, "created_at DESC"), paginate(query.ListQuery)).
		Find(&orders)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return orders, total, nil
}

// Update обновляет заказ и заменяет позиции в одной транзакции
// Номер заказа не обновляется никогда
func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Order{}).
			Where("id = ?", order.ID).
			Updates(map[string]interface{}{
				"customer_id":    order.CustomerID,
				"status":         order.Status,
				"shipping_price": order.ShippingPrice,
				"total_price":    order.TotalPrice,
				"notes":          order.Notes,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrOrderNotFound
		}

		if err := tx.Where("order_id = ?", order.ID).Delete(&entity.OrderItem{}).Error; err != nil {
			return err
		}

		if len(order.Items) == 0 {
			return nil
		}

		for i := range order.Items {
			order.Items[i].OrderID = order.ID
		}

		return tx.Omit("Product").Create(&order.Items).Error
	})
}

// Delete мягко удаляет заказ, позиции остаются для восстановления
func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return softDelete(ctx, r.db, &entity.Order{}, id, ErrOrderNotFound)
}

func (r *orderRepository) BulkDelete(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	return bulkSoftDelete(ctx, r.db, &entity.Order{}, ids)
}

func (r *orderRepository) Restore(ctx context.Context, id uuid.UUID) error {
	return restore(ctx, r.db, &entity.Order{}, id, ErrOrderNotFound)
}

// CountByStatus количество заказов в статусе
func (r *orderRepository) CountByStatus(ctx context.Context, status entity.OrderStatus) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&entity.Order{}).
		Where("status = ?", status).
		Count(&count)
	return count, result.Error
}

// CountGroupedByStatus количество заказов по всем статусам одним запросом
func (r *orderRepository) CountGroupedByStatus(ctx context.Context) (map[entity.OrderStatus]int64, error) {
	var rows []struct {
		Status entity.OrderStatus
		Total  int64
	}

	result := r.db.WithContext(ctx).
		Model(&entity.Order{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	counts := make(map[entity.OrderStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}
