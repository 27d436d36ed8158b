package entity

import (
	"time"

	"shopadmin/admin-service/internal/app/admin/derive"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultPerPage = 15
	MaxPerPage     = 100
)

// ListQuery общие параметры списков: поиск, сортировка, пагинация
type ListQuery struct {
	Search      string `form:"search" validate:"omitempty,max=255"`
	Sort        string `form:"sort" validate:"omitempty,max=50"`
	Direction   string `form:"direction" validate:"omitempty,oneof=asc desc"`
	Page        int    `form:"page" validate:"omitempty,min=1"`
	PerPage     int    `form:"per_page" validate:"omitempty,min=1,max=100"`
	OnlyTrashed bool   `form:"only_trashed"` // Только мягко удалённые записи (для восстановления)
}

// Normalize проставляет значения по умолчанию
func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultPerPage
	}
	if q.PerPage > MaxPerPage {
		q.PerPage = MaxPerPage
	}
	if q.Direction != "desc" {
		q.Direction = "asc"
	}
}

// Offset смещение для текущей страницы
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.PerPage
}

type BrandListQuery struct {
	ListQuery
	Visible *bool `form:"is_visible"`
}

type CategoryListQuery struct {
	ListQuery
	Visible *bool `form:"is_visible"`
}

type ProductListQuery struct {
	ListQuery
	Visible *bool      `form:"is_visible"` // Тернарный фильтр: nil - все товары
	BrandID *uuid.UUID `form:"-"`          // Заполняется handler'ом из brand_id
}

type OrderListQuery struct {
	ListQuery
	Status OrderStatus `form:"status" validate:"omitempty,oneof=pending processing completed declined"`
}

type CustomerListQuery struct {
	ListQuery
}

// PageResponse страница списка
type PageResponse[T any] struct {
	Data    []T   `json:"data"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
}

// === BRANDS ===

type CreateBrandRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	URL         string `json:"url" validate:"required,url,max=255"`
	Description string `json:"description" validate:"omitempty,max=65535"`
	IsVisible   *bool  `json:"is_visible"` // По умолчанию true
	PrimaryHex  string `json:"primary_hex" validate:"omitempty,hexcolor"`
}

// UpdateBrandRequest slug в запросе отсутствует: он не меняется после создания
type UpdateBrandRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	URL         string `json:"url" validate:"required,url,max=255"`
	Description string `json:"description" validate:"omitempty,max=65535"`
	IsVisible   *bool  `json:"is_visible"`
	PrimaryHex  string `json:"primary_hex" validate:"omitempty,hexcolor"`
}

// === CATEGORIES ===

type CreateCategoryRequest struct {
	Name        string     `json:"name" validate:"required,max=255"`
	Description string     `json:"description" validate:"omitempty,max=65535"`
	IsVisible   *bool      `json:"is_visible"`
	ParentID    *uuid.UUID `json:"parent_id"`
}

type UpdateCategoryRequest struct {
	Name        string     `json:"name" validate:"required,max=255"`
	Description string     `json:"description" validate:"omitempty,max=65535"`
	IsVisible   *bool      `json:"is_visible"`
	ParentID    *uuid.UUID `json:"parent_id"`
}

// === PRODUCTS ===

type CreateProductRequest struct {
	BrandID     uuid.UUID        `json:"brand_id" validate:"required"`
	CategoryIDs []uuid.UUID      `json:"category_ids" validate:"required,min=1,dive,required"`
	Name        string           `json:"name" validate:"required,max=255"`
	SKU         string           `json:"sku" validate:"required,max=255"`
	Description string           `json:"description" validate:"omitempty,max=65535"`
	Image       string           `json:"image" validate:"omitempty,max=255"`
	Quantity    *int             `json:"quantity" validate:"required,min=0,max=100"`
	Price       *decimal.Decimal `json:"price" validate:"required,price"`
	Type        ProductType      `json:"type" validate:"required,oneof=downloadable deliverable"`
	IsVisible   *bool            `json:"is_visible"`
	IsFeatured  bool             `json:"is_featured"`
	PublishedAt *time.Time       `json:"published_at"` // По умолчанию текущая дата
}

type UpdateProductRequest struct {
	BrandID     uuid.UUID        `json:"brand_id" validate:"required"`
	CategoryIDs []uuid.UUID      `json:"category_ids" validate:"required,min=1,dive,required"`
	Name        string           `json:"name" validate:"required,max=255"`
	SKU         string           `json:"sku" validate:"required,max=255"`
	Description string           `json:"description" validate:"omitempty,max=65535"`
	Image       string           `json:"image" validate:"omitempty,max=255"`
	Quantity    *int             `json:"quantity" validate:"required,min=0,max=100"`
	Price       *decimal.Decimal `json:"price" validate:"required,price"`
	Type        ProductType      `json:"type" validate:"required,oneof=downloadable deliverable"`
	IsVisible   *bool            `json:"is_visible"`
	IsFeatured  bool             `json:"is_featured"`
	PublishedAt *time.Time       `json:"published_at"`
}

// ProductSearchResult результат глобального поиска
type ProductSearchResult struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Slug  string    `json:"slug"`
	Brand string    `json:"brand"` // Деталь результата - название бренда
}

// === CUSTOMERS ===

type CreateCustomerRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,email,max=255"`
	Phone string `json:"phone" validate:"omitempty,max=50"`
}

type UpdateCustomerRequest struct {
	Name  string `json:"name" validate:"required,max=255"`
	Email string `json:"email" validate:"required,email,max=255"`
	Phone string `json:"phone" validate:"omitempty,max=50"`
}

// === ORDERS ===

type CreateOrderRequest struct {
	CustomerID    uuid.UUID          `json:"customer_id" validate:"required"`
	Status        OrderStatus        `json:"status" validate:"omitempty,oneof=pending processing completed declined"`
	ShippingPrice *decimal.Decimal   `json:"shipping_price" validate:"required,price"`
	Notes         string             `json:"notes" validate:"omitempty,max=65535"`
	Items         []OrderItemRequest `json:"items" validate:"dive"`
}

// OrderItemRequest позиция заказа.
// ID передаётся для существующей позиции при редактировании, цена не принимается от клиента.
type OrderItemRequest struct {
	ID        *uuid.UUID `json:"id"`
	ProductID uuid.UUID  `json:"product_id" validate:"required"`
	Quantity  *int       `json:"quantity" validate:"omitempty,gte=0"` // По умолчанию 1
}

// UpdateOrderRequest номер заказа не редактируется
type UpdateOrderRequest struct {
	CustomerID    uuid.UUID          `json:"customer_id" validate:"required"`
	Status        OrderStatus        `json:"status" validate:"required,oneof=pending processing completed declined"`
	ShippingPrice *decimal.Decimal   `json:"shipping_price" validate:"required,price"`
	Notes         string             `json:"notes" validate:"omitempty,max=65535"`
	Items         []OrderItemRequest `json:"items" validate:"dive"`
}

type OrderResponse struct {
	ID            uuid.UUID       `json:"id"`
	Number        string          `json:"number"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	CustomerName  string          `json:"customer_name,omitempty"`
	Status        OrderStatus     `json:"status"`
	ShippingPrice decimal.Decimal `json:"shipping_price"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
	Items         []ItemResponse  `json:"items"`
}

type ItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// OrderListResponse список заказов с агрегатом суммы по странице
type OrderListResponse struct {
	PageResponse[OrderResponse]
	PageTotalPrice decimal.Decimal `json:"page_total_price"`
}

// === ORDER FORM EVENTS ===

type SlugRequest struct {
	Operation string `json:"operation" validate:"required,oneof=create update"`
	Name      string `json:"name" validate:"max=255"`
}

// SlugResponse Changed=false означает, что поле slug трогать нельзя
type SlugResponse struct {
	Slug    string `json:"slug,omitempty"`
	Changed bool   `json:"changed"`
}

type ProductSelectedRequest struct {
	Line      derive.Line `json:"line"`
	ProductID *uuid.UUID  `json:"product_id"`
}

type QuantityChangedRequest struct {
	Line     derive.Line `json:"line"`
	Quantity int         `json:"quantity" validate:"gte=0"`
}

type OrderSummaryRequest struct {
	Lines []derive.Line `json:"lines"`
}

type OrderSummaryResponse struct {
	Lines      []derive.Line   `json:"lines"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

type OrderFormDefaults struct {
	Status OrderStatus   `json:"status"`
	Lines  []derive.Line `json:"lines"`
}

// === OPTIONS / DASHBOARD / ACTIVITY ===

// Option элемент выпадающего списка формы
type Option struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// StatCard карточка статистики на дашборде
type StatCard struct {
	Label           string `json:"label"`
	Value           int64  `json:"value"`
	Description     string `json:"description"`
	DescriptionIcon string `json:"description_icon"`
	Color           string `json:"color"`
	Chart           []int  `json:"chart"`
}

type DashboardStats struct {
	TotalCustomers  int64      `json:"total_customers"`
	TotalProducts   int64      `json:"total_products"`
	PendingOrders   int64      `json:"pending_orders"`
	Cards           []StatCard `json:"cards"`
	PollingInterval string     `json:"polling_interval"`
}

// NavigationBadge счётчик в навигационном меню
type NavigationBadge struct {
	Resource string `json:"resource"`
	Count    int64  `json:"count"`
	Color    string `json:"color,omitempty"`
}

type NavigationBadges struct {
	Badges          []NavigationBadge `json:"badges"`
	PollingInterval string            `json:"polling_interval"`
}

type ActivityQuery struct {
	Resource string `form:"resource" validate:"omitempty,oneof=brand category product customer order"`
	Limit    int    `form:"limit" validate:"omitempty,min=1,max=200"`
}

// === COMMON ===

type BulkDeleteRequest struct {
	IDs []uuid.UUID `json:"ids" validate:"required,min=1,max=500,dive,required"`
}

type BulkDeleteResponse struct {
	Deleted int64 `json:"deleted"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
