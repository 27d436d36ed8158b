package repository

import (
	"context"
	"errors"

	"shopadmin/admin-service/internal/app/admin/entity"

	"github.com/google/uuid"
)

var (
	// Стандартные ошибки репозитория для обработки в service layer
	ErrBrandNotFound    = errors.New("brand not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrDuplicateKey     = errors.New("duplicate key value violates unique constraint")
)

type BrandRepository interface {
	Create(ctx context.Context, brand *entity.Brand) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Brand, error)
	List(ctx context.Context, query entity.BrandListQuery) ([]entity.Brand, int64, error)
	Update(ctx context.Context, brand *entity.Brand) error
	Delete(ctx context.Context, id uuid.UUID) error
	BulkDelete(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
	Restore(ctx context.Context, id uuid.UUID) error
	Options(ctx context.Context) ([]entity.Option, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Category, error)
	GetParentID(ctx context.Context, id uuid.UUID) (*uuid.UUID, error)
	List(ctx context.Context, query entity.CategoryListQuery) ([]entity.Category, int64, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	BulkDelete(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
	Restore(ctx context.Context, id uuid.UUID) error
	Options(ctx context.Context) ([]entity.Option, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	List(ctx context.Context, query entity.ProductListQuery) ([]entity.Product, int64, error)
	ListAll(ctx context.Context, query entity.ProductListQuery) ([]entity.Product, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]entity.Product, error)
	Search(ctx context.Context, term string, limit int) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	BulkDelete(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
	Restore(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	Options(ctx context.Context) ([]entity.Option, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	List(ctx context.Context, query entity.CustomerListQuery) ([]entity.Customer, int64, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	Options(ctx context.Context) ([]entity.Option, error)
}

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	List(ctx context.Context, query entity.OrderListQuery) ([]entity.Order, int64, error)
	// Update перезаписывает поля заказа и полностью заменяет набор позиций
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	BulkDelete(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
	Restore(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context, status entity.OrderStatus) (int64, error)
	CountGroupedByStatus(ctx context.Context) (map[entity.OrderStatus]int64, error)
}

// ActivityRepository журнал действий администраторов (MongoDB)
type ActivityRepository interface {
	Append(ctx context.Context, entry *entity.ActivityEntry) error
	Recent(ctx context.Context, resource string, limit int) ([]entity.ActivityEntry, error)
}
