package handler

import (
	"context"
	"io"

	"shopadmin/admin-service/internal/app/admin/derive"
	"shopadmin/admin-service/internal/app/admin/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// ==================== Brand ====================

type MockBrandService struct {
	mock.Mock
}

func (m *MockBrandService) Create(ctx context.Context, req *entity.CreateBrandRequest) (*entity.Brand, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Brand), args.Error(1)
}

func (m *MockBrandService) Get(ctx context.Context, id uuid.UUID) (*entity.Brand, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Brand), args.Error(1)
}

func (m *MockBrandService) List(ctx context.Context, query entity.BrandListQuery) (*entity.PageResponse[entity.Brand], error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PageResponse[entity.Brand]), args.Error(1)
}

func (m *MockBrandService) Update(ctx context.Context, id uuid.UUID, req *entity.UpdateBrandRequest) (*entity.Brand, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Brand), args.Error(1)
}

func (m *MockBrandService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBrandService) BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBrandService) Restore(ctx context.Context, id uuid.UUID) (*entity.Brand, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Brand), args.Error(1)
}

// ==================== Category ====================

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) Create(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCategoryService) Get(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCategoryService) List(ctx context.Context, query entity.CategoryListQuery) (*entity.PageResponse[entity.Category], error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PageResponse[entity.Category]), args.Error(1)
}

func (m *MockCategoryService) Update(ctx context.Context, id uuid.UUID, req *entity.UpdateCategoryRequest) (*entity.Category, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryService) BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCategoryService) Restore(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

// ==================== Product ====================

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Create(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductService) CreateInCategory(ctx context.Context, categoryID uuid.UUID, req *entity.CreateProductRequest) (*entity.Product, error) {
	args := m.Called(ctx, categoryID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductService) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]entity.Product, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockProductService) Get(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductService) List(ctx context.Context, query entity.ProductListQuery) (*entity.PageResponse[entity.Product], error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PageResponse[entity.Product]), args.Error(1)
}

func (m *MockProductService) Search(ctx context.Context, term string) ([]entity.ProductSearchResult, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ProductSearchResult), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id uuid.UUID, req *entity.UpdateProductRequest) (*entity.Product, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductService) BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductService) Restore(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductService) Export(ctx context.Context, query entity.ProductListQuery, w io.Writer) error {
	args := m.Called(ctx, query, w)
	return args.Error(0)
}

// ==================== Customer ====================

type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) Create(ctx context.Context, req *entity.CreateCustomerRequest) (*entity.Customer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Customer), args.Error(1)
}

func (m *MockCustomerService) Get(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Customer), args.Error(1)
}

func (m *MockCustomerService) List(ctx context.Context, query entity.CustomerListQuery) (*entity.PageResponse[entity.Customer], error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PageResponse[entity.Customer]), args.Error(1)
}

func (m *MockCustomerService) Update(ctx context.Context, id uuid.UUID, req *entity.UpdateCustomerRequest) (*entity.Customer, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Customer), args.Error(1)
}

func (m *MockCustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// ==================== Order ====================

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Create(ctx context.Context, req *entity.CreateOrderRequest) (*entity.Order, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderService) Get(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context, query entity.OrderListQuery) (*entity.OrderListResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.OrderListResponse), args.Error(1)
}

func (m *MockOrderService) Update(ctx context.Context, id uuid.UUID, req *entity.UpdateOrderRequest) (*entity.Order, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *MockOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderService) BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderService) Restore(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Order), args.Error(1)
}

// ==================== Form ====================

type MockFormService struct {
	mock.Mock
}

func (m *MockFormService) Slug(req *entity.SlugRequest) entity.SlugResponse {
	args := m.Called(req)
	return args.Get(0).(entity.SlugResponse)
}

func (m *MockFormService) Defaults() entity.OrderFormDefaults {
	args := m.Called()
	return args.Get(0).(entity.OrderFormDefaults)
}

func (m *MockFormService) ProductSelected(ctx context.Context, req *entity.ProductSelectedRequest) derive.Line {
	args := m.Called(ctx, req)
	return args.Get(0).(derive.Line)
}

func (m *MockFormService) QuantityChanged(req *entity.QuantityChangedRequest) (derive.Line, error) {
	args := m.Called(req)
	return args.Get(0).(derive.Line), args.Error(1)
}

func (m *MockFormService) Summary(req *entity.OrderSummaryRequest) entity.OrderSummaryResponse {
	args := m.Called(req)
	return args.Get(0).(entity.OrderSummaryResponse)
}

// ==================== Options / Dashboard / Activity ====================

type MockOptionsService struct {
	mock.Mock
}

func (m *MockOptionsService) Get(ctx context.Context, resource string) ([]entity.Option, error) {
	args := m.Called(ctx, resource)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Option), args.Error(1)
}

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Stats(ctx context.Context) (*entity.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DashboardStats), args.Error(1)
}

func (m *MockDashboardService) Badges(ctx context.Context) (*entity.NavigationBadges, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.NavigationBadges), args.Error(1)
}

func (m *MockDashboardService) RefreshMetrics(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockActivityService struct {
	mock.Mock
}

func (m *MockActivityService) Recent(ctx context.Context, query entity.ActivityQuery) ([]entity.ActivityEntry, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ActivityEntry), args.Error(1)
}
