package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

// Brand представляет бренд товаров
type Brand struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string         `json:"name" gorm:"type:varchar(255);not null;uniqueIndex"`
	Slug        string         `json:"slug" gorm:"type:varchar(255);not null;uniqueIndex"` // Вычисляется из name при создании
	URL         string         `json:"url" gorm:"column:url;type:varchar(255);not null;uniqueIndex"`
	Description string         `json:"description" gorm:"type:text"`
	IsVisible   bool           `json:"is_visible" gorm:"not null"`
	PrimaryHex  string         `json:"primary_hex" gorm:"type:varchar(7)"` // Основной цвет бренда (#RRGGBB)
	CreatedAt   time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"` // Мягкое удаление
}

// TableName указывает имя таблицы для GORM
func (Brand) TableName() string {
	return "brands"
}

// Category представляет категорию каталога, категории образуют дерево через ParentID
type Category struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	ParentID    *uuid.UUID     `json:"parent_id" gorm:"type:uuid;index"`
	Parent      *Category      `json:"parent,omitempty" gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL"`
	Name        string         `json:"name" gorm:"type:varchar(255);not null;uniqueIndex"`
	Slug        string         `json:"slug" gorm:"type:varchar(255);not null;uniqueIndex"`
	Description string         `json:"description" gorm:"type:text"`
	IsVisible   bool           `json:"is_visible" gorm:"not null"`
	CreatedAt   time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName указывает имя таблицы для GORM
func (Category) TableName() string {
	return "categories"
}

// ProductType тип товара
type ProductType string

const (
	ProductTypeDownloadable ProductType = "downloadable" // Цифровой товар
	ProductTypeDeliverable  ProductType = "deliverable"  // Физический товар с доставкой
)

// Product представляет товар каталога
type Product struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	BrandID     uuid.UUID       `json:"brand_id" gorm:"type:uuid;not null;index"`
	Brand       *Brand          `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
	Categories  []Category      `json:"categories,omitempty" gorm:"many2many:category_product"`
	Name        string          `json:"name" gorm:"type:varchar(255);not null;uniqueIndex"`
	Slug        string          `json:"slug" gorm:"type:varchar(255);not null;uniqueIndex"`
	SKU         string          `json:"sku" gorm:"column:sku;type:varchar(255);not null;uniqueIndex"`
	Description string          `json:"description" gorm:"type:text"`
	Image       string          `json:"image" gorm:"type:varchar(255)"` // Путь к файлу, загрузка вне сервиса
	Quantity    int             `json:"quantity" gorm:"not null;check:quantity >= 0 AND quantity <= 100"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(8,2);not null"`
	Type        ProductType     `json:"type" gorm:"type:varchar(20);not null"`
	IsVisible   bool            `json:"is_visible" gorm:"not null"`
	IsFeatured  bool            `json:"is_featured" gorm:"not null"`
	PublishedAt time.Time       `json:"published_at" gorm:"type:date;not null"`
	CreatedAt   time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt  `json:"-" gorm:"index"`
}

// TableName указывает имя таблицы для GORM
func (Product) TableName() string {
	return "products"
}

// Customer представляет покупателя
type Customer struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string         `json:"name" gorm:"type:varchar(255);not null"`
	Email     string         `json:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	Phone     string         `json:"phone" gorm:"type:varchar(50)"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName указывает имя таблицы для GORM
func (Customer) TableName() string {
	return "customers"
}

// OrderStatus представляет статусы заказа
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // Новый заказ
	OrderStatusProcessing OrderStatus = "processing" // В обработке
	OrderStatusCompleted  OrderStatus = "completed"  // Выполнен
	OrderStatusDeclined   OrderStatus = "declined"   // Отклонён
)

// OrderStatuses все статусы в порядке жизненного цикла
func OrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPending,
		OrderStatusProcessing,
		OrderStatusCompleted,
		OrderStatusDeclined,
	}
}

// Order представляет заказ покупателя
type Order struct {
	ID            uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Number        string          `json:"number" gorm:"type:varchar(32);not null;uniqueIndex"` // OR-XXXXXXX, не меняется после создания
	CustomerID    uuid.UUID       `json:"customer_id" gorm:"type:uuid;not null;index"`
	Customer      *Customer       `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Status        OrderStatus     `json:"status" gorm:"type:varchar(20);not null;index"`
	ShippingPrice decimal.Decimal `json:"shipping_price" gorm:"type:decimal(10,2);not null"`
	TotalPrice    decimal.Decimal `json:"total_price" gorm:"type:decimal(12,2);not null"` // Сумма итогов позиций
	Notes         string          `json:"notes" gorm:"type:text"`
	Items         []OrderItem     `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	CreatedAt     time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt  `json:"-" gorm:"index"`
}

// TableName указывает имя таблицы для GORM
func (Order) TableName() string {
	return "orders"
}

// OrderItem представляет позицию в заказе
type OrderItem struct {
	ID        uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `json:"order_id" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `json:"product_id" gorm:"type:uuid;not null"`
	Product   *Product        `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int             `json:"quantity" gorm:"not null;check:quantity >= 0"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(8,2);not null"` // Цена товара на момент выбора
	CreatedAt time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

// TableName указывает имя таблицы для GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Event types для Kafka
const (
	EventProductCreated = "PRODUCT_CREATED"
	EventProductUpdated = "PRODUCT_UPDATED"
	EventProductDeleted = "PRODUCT_DELETED"
	EventOrderCreated   = "ORDER_CREATED"
	EventOrderUpdated   = "ORDER_UPDATED"
	EventOrderDeleted   = "ORDER_DELETED"
)

// ProductEvent представляет событие изменения товара для Kafka
type ProductEvent struct {
	EventType string          `json:"event_type"`
	ProductID uuid.UUID       `json:"product_id"`
	BrandID   uuid.UUID       `json:"brand_id"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Timestamp time.Time       `json:"timestamp"`
}

// OrderEvent представляет событие изменения заказа для Kafka
type OrderEvent struct {
	EventType  string          `json:"event_type"`
	OrderID    uuid.UUID       `json:"order_id"`
	Number     string          `json:"number"`
	CustomerID uuid.UUID       `json:"customer_id"`
	Status     OrderStatus     `json:"status"`
	TotalPrice decimal.Decimal `json:"total_price"`
	ItemsCount int             `json:"items_count"`
	Timestamp  time.Time       `json:"timestamp"`
}

// ActivityAction действие администратора над ресурсом
type ActivityAction string

const (
	ActivityCreated  ActivityAction = "created"
	ActivityUpdated  ActivityAction = "updated"
	ActivityDeleted  ActivityAction = "deleted"
	ActivityRestored ActivityAction = "restored"
)

// ActivityEntry запись журнала действий, хранится в MongoDB
type ActivityEntry struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Resource   string             `json:"resource" bson:"resource"` // brand, category, product, customer, order
	ResourceID string             `json:"resource_id" bson:"resource_id"`
	Action     ActivityAction     `json:"action" bson:"action"`
	Summary    string             `json:"summary" bson:"summary"`
	ActorID    string             `json:"actor_id,omitempty" bson:"actor_id,omitempty"`
	CreatedAt  time.Time          `json:"created_at" bson:"created_at"`
}
