package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shopadmin/admin-service/internal/app/admin/entity"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type routerMocks struct {
	brands    *MockBrandService
	products  *MockProductService
	orders    *MockOrderService
	dashboard *MockDashboardService
}

func newTestRouter() (*gin.Engine, *routerMocks) {
	m := &routerMocks{
		brands:    new(MockBrandService),
		products:  new(MockProductService),
		orders:    new(MockOrderService),
		dashboard: new(MockDashboardService),
	}

	router := SetupRoutes(
		NewBrandHandler(m.brands),
		NewCategoryHandler(new(MockCategoryService), m.products),
		NewProductHandler(m.products),
		NewCustomerHandler(new(MockCustomerService)),
		NewOrderHandler(m.orders),
		NewFormHandler(new(MockFormService)),
		NewDashboardHandler(m.dashboard, new(MockOptionsService), new(MockActivityService)),
		NewAuthMiddleware(testSecret),
	)

	return router, m
}

func TestRouter_Health(t *testing.T) {
	router, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "admin-service")
}

func TestRouter_APIRequiresToken(t *testing.T) {
	router, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/brands", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_ManagerCanList(t *testing.T) {
	// Arrange
	router, m := newTestRouter()
	token := signToken(t, testSecret, uuid.New(), RoleManager, time.Hour)

	page := &entity.PageResponse[entity.Brand]{Data: []entity.Brand{}, Total: 0, Page: 1, PerPage: 15}
	m.brands.On("List", mock.Anything, mock.AnythingOfType("entity.BrandListQuery")).Return(page, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/brands?page=1", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	m.brands.AssertExpectations(t)
}

func TestRouter_ManagerCannotDelete(t *testing.T) {
	// Arrange
	router, m := newTestRouter()
	token := signToken(t, testSecret, uuid.New(), RoleManager, time.Hour)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/"+uuid.NewString(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusForbidden, rec.Code)
	m.products.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestRouter_AdminCanBulkDelete(t *testing.T) {
	// Arrange
	router, m := newTestRouter()
	token := signToken(t, testSecret, uuid.New(), RoleAdmin, time.Hour)

	first, second := uuid.New(), uuid.New()
	m.orders.On("BulkDelete", mock.Anything, []uuid.UUID{first, second}).Return(int64(2), nil)

	body := `{"ids":["` + first.String() + `","` + second.String() + `"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/bulk-delete", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted":2}`, rec.Body.String())
	m.orders.AssertExpectations(t)
}

func TestRouter_StaticRoutesBeforeID(t *testing.T) {
	// Arrange
	router, m := newTestRouter()
	token := signToken(t, testSecret, uuid.New(), RoleManager, time.Hour)

	m.products.On("Search", mock.Anything, "shoe").Return([]entity.ProductSearchResult{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/search?q=shoe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
	m.products.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestRouter_DashboardBadges(t *testing.T) {
	// Arrange
	router, m := newTestRouter()
	token := signToken(t, testSecret, uuid.New(), RoleManager, time.Hour)

	badges := &entity.NavigationBadges{
		Badges: []entity.NavigationBadge{
			{Resource: "products", Count: 12},
			{Resource: "orders", Count: 3, Color: "warning"},
		},
		PollingInterval: "15s",
	}
	m.dashboard.On("Badges", mock.Anything).Return(badges, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/badges", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"polling_interval":"15s"`)
}
