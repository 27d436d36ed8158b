package service

import (
	"context"
	"io"

	"shopadmin/admin-service/internal/app/admin/derive"
	"shopadmin/admin-service/internal/app/admin/entity"

	"github.com/google/uuid"
)

type BrandServiceInterface interface {
	Create(ctx context.Context, req *entity.CreateBrandRequest) (*entity.Brand, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Brand, error)
	List(ctx context.Context, query entity.BrandListQuery) (*entity.PageResponse[entity.Brand], error)
	Update(ctx context.Context, id uuid.UUID, req *entity.UpdateBrandRequest) (*entity.Brand, error)
	Delete(ctx context.Context, id uuid.UUID) error
	BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error)
	Restore(ctx context.Context, id uuid.UUID) (*entity.Brand, error)
}

type CategoryServiceInterface interface {
	Create(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	List(ctx context.Context, query entity.CategoryListQuery) (*entity.PageResponse[entity.Category], error)
	Update(ctx context.Context, id uuid.UUID, req *entity.UpdateCategoryRequest) (*entity.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error)
	Restore(ctx context.Context, id uuid.UUID) (*entity.Category, error)
}

type ProductServiceInterface interface {
	Create(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error)
	CreateInCategory(ctx context.Context, categoryID uuid.UUID, req *entity.CreateProductRequest) (*entity.Product, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]entity.Product, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	List(ctx context.Context, query entity.ProductListQuery) (*entity.PageResponse[entity.Product], error)
	Search(ctx context.Context, term string) ([]entity.ProductSearchResult, error)
	Update(ctx context.Context, id uuid.UUID, req *entity.UpdateProductRequest) (*entity.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error)
	Restore(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	Export(ctx context.Context, query entity.ProductListQuery, w io.Writer) error
}

type CustomerServiceInterface interface {
	Create(ctx context.Context, req *entity.CreateCustomerRequest) (*entity.Customer, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	List(ctx context.Context, query entity.CustomerListQuery) (*entity.PageResponse[entity.Customer], error)
	Update(ctx context.Context, id uuid.UUID, req *entity.UpdateCustomerRequest) (*entity.Customer, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type OrderServiceInterface interface {
	Create(ctx context.Context, req *entity.CreateOrderRequest) (*entity.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	List(ctx context.Context, query entity.OrderListQuery) (*entity.OrderListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *entity.UpdateOrderRequest) (*entity.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
	BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error)
	Restore(ctx context.Context, id uuid.UUID) (*entity.Order, error)
}

type FormServiceInterface interface {
	Slug(req *entity.SlugRequest) entity.SlugResponse
	Defaults() entity.OrderFormDefaults
	ProductSelected(ctx context.Context, req *entity.ProductSelectedRequest) derive.Line
	QuantityChanged(req *entity.QuantityChangedRequest) (derive.Line, error)
	Summary(req *entity.OrderSummaryRequest) entity.OrderSummaryResponse
}

type OptionsServiceInterface interface {
	Get(ctx context.Context, resource string) ([]entity.Option, error)
}

type DashboardServiceInterface interface {
	Stats(ctx context.Context) (*entity.DashboardStats, error)
	Badges(ctx context.Context) (*entity.NavigationBadges, error)
	RefreshMetrics(ctx context.Context) error
}

type ActivityServiceInterface interface {
	Recent(ctx context.Context, query entity.ActivityQuery) ([]entity.ActivityEntry, error)
}

var (
	_ BrandServiceInterface     = (*BrandService)(nil)
	_ CategoryServiceInterface  = (*CategoryService)(nil)
	_ ProductServiceInterface   = (*ProductService)(nil)
	_ CustomerServiceInterface  = (*CustomerService)(nil)
	_ OrderServiceInterface     = (*OrderService)(nil)
	_ FormServiceInterface      = (*FormService)(nil)
	_ OptionsServiceInterface   = (*OptionsService)(nil)
	_ DashboardServiceInterface = (*DashboardService)(nil)
	_ ActivityServiceInterface  = (*ActivityService)(nil)
)
