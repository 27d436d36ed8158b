package seeder

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"shopadmin/admin-service/internal/app/admin/entity"
	"shopadmin/pkg/logger"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BrandCreator interface {
	Create(ctx context.Context, req *entity.CreateBrandRequest) (*entity.Brand, error)
}

type CategoryCreator interface {
	Create(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error)
}

type ProductCreator interface {
	Create(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error)
}

type CustomerCreator interface {
	Create(ctx context.Context, req *entity.CreateCustomerRequest) (*entity.Customer, error)
}

type OrderCreator interface {
	Create(ctx context.Context, req *entity.CreateOrderRequest) (*entity.Order, error)
}

// Counts сколько записей каждого типа создать
type Counts struct {
	Brands     int
	Categories int
	Products   int
	Customers  int
	Orders     int
}

func DefaultCounts() Counts {
	return Counts{
		Brands:     5,
		Categories: 8,
		Products:   40,
		Customers:  25,
		Orders:     60,
	}
}

// Seeder заполняет БД демо-данными через сервисы,
// поэтому slug, номера заказов и цены позиций получаются по тем же правилам, что и в API
type Seeder struct {
	brands     BrandCreator
	categories CategoryCreator
	products   ProductCreator
	customers  CustomerCreator
	orders     OrderCreator
	rnd        *rand.Rand
}

func New(
	brands BrandCreator,
	categories CategoryCreator,
	products ProductCreator,
	customers CustomerCreator,
	orders OrderCreator,
) *Seeder {
	return &Seeder{
		brands:     brands,
		categories: categories,
		products:   products,
		customers:  customers,
		orders:     orders,
		rnd:        rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
	}
}

// Run создаёт данные по порядку зависимостей: бренды и категории, товары, покупатели, заказы
func (s *Seeder) Run(ctx context.Context, counts Counts) (Counts, error) {
	var created Counts

	brandIDs := make([]uuid.UUID, 0, counts.Brands)
	for i := 0; i < counts.Brands; i++ {
		brand, err := s.brands.Create(ctx, s.fakeBrand(i))
		if err != nil {
			return created, fmt.Errorf("failed to seed brand: %w", err)
		}
		brandIDs = append(brandIDs, brand.ID)
	}
	created.Brands = len(brandIDs)

	categoryIDs := make([]uuid.UUID, 0, counts.Categories)
	for i := 0; i < counts.Categories; i++ {
		req := s.fakeCategory(i)
		// каждая третья категория вложена в одну из уже созданных
		if i%3 == 2 && len(categoryIDs) > 0 {
			parent := categoryIDs[s.rnd.IntN(len(categoryIDs))]
			req.ParentID = &parent
		}
		category, err := s.categories.Create(ctx, req)
		if err != nil {
			return created, fmt.Errorf("failed to seed category: %w", err)
		}
		categoryIDs = append(categoryIDs, category.ID)
	}
	created.Categories = len(categoryIDs)

	productIDs := make([]uuid.UUID, 0, counts.Products)
	if len(brandIDs) > 0 && len(categoryIDs) > 0 {
		for i := 0; i < counts.Products; i++ {
			product, err := s.products.Create(ctx, s.fakeProduct(i, brandIDs, categoryIDs))
			if err != nil {
				return created, fmt.Errorf("failed to seed product: %w", err)
			}
			productIDs = append(productIDs, product.ID)
		}
	}
	created.Products = len(productIDs)

	customerIDs := make([]uuid.UUID, 0, counts.Customers)
	for i := 0; i < counts.Customers; i++ {
		customer, err := s.customers.Create(ctx, s.fakeCustomer(i))
		if err != nil {
			return created, fmt.Errorf("failed to seed customer: %w", err)
		}
		customerIDs = append(customerIDs, customer.ID)
	}
	created.Customers = len(customerIDs)

	if len(customerIDs) > 0 && len(productIDs) > 0 {
		for i := 0; i < counts.Orders; i++ {
			if _, err := s.orders.Create(ctx, s.fakeOrder(customerIDs, productIDs)); err != nil {
				return created, fmt.Errorf("failed to seed order: %w", err)
			}
			created.Orders++
		}
	}

	logger.FromContext(ctx).Info().
		Int("brands", created.Brands).
		Int("categories", created.Categories).
		Int("products", created.Products).
		Int("customers", created.Customers).
		Int("orders", created.Orders).
		Msg("Database seeded")

	return created, nil
}

// uniqueName faker повторяет слова, уникальность имени держит суффикс с номером
func uniqueName(base string, i int) string {
	return fmt.Sprintf("%s %d", strings.TrimSpace(base), i+1)
}

func (s *Seeder) fakeBrand(i int) *entity.CreateBrandRequest {
	visible := s.rnd.IntN(5) != 0
	name := uniqueName(faker.LastName(), i)
	return &entity.CreateBrandRequest{
		Name:        name,
		URL:         fmt.Sprintf("https://%d.%s", i+1, faker.DomainName()),
		Description: faker.Paragraph(),
		IsVisible:   &visible,
		PrimaryHex:  fmt.Sprintf("#%06x", s.rnd.IntN(0x1000000)),
	}
}

func (s *Seeder) fakeCategory(i int) *entity.CreateCategoryRequest {
	visible := s.rnd.IntN(5) != 0
	return &entity.CreateCategoryRequest{
		Name:        uniqueName(faker.Word(), i),
		Description: faker.Sentence(),
		IsVisible:   &visible,
	}
}

func (s *Seeder) fakeProduct(i int, brandIDs, categoryIDs []uuid.UUID) *entity.CreateProductRequest {
	quantity := s.rnd.IntN(101)
	// цена от 1.00 до 999.99
	price := decimal.NewFromInt(int64(100 + s.rnd.IntN(99900))).Shift(-2)
	visible := s.rnd.IntN(5) != 0
	publishedAt := time.Now().UTC().AddDate(0, 0, -s.rnd.IntN(365))

	productType := entity.ProductTypeDeliverable
	if s.rnd.IntN(4) == 0 {
		productType = entity.ProductTypeDownloadable
	}

	categories := []uuid.UUID{categoryIDs[s.rnd.IntN(len(categoryIDs))]}
	if len(categoryIDs) > 1 && s.rnd.IntN(3) == 0 {
		extra := categoryIDs[s.rnd.IntN(len(categoryIDs))]
		if extra != categories[0] {
			categories = append(categories, extra)
		}
	}

	return &entity.CreateProductRequest{
		BrandID:     brandIDs[s.rnd.IntN(len(brandIDs))],
		CategoryIDs: categories,
		Name:        uniqueName(faker.Word()+" "+faker.Word(), i),
		SKU:         fmt.Sprintf("SKU-%05d", i+1),
		Description: faker.Paragraph(),
		Quantity:    &quantity,
		Price:       &price,
		Type:        productType,
		IsVisible:   &visible,
		IsFeatured:  s.rnd.IntN(10) == 0,
		PublishedAt: &publishedAt,
	}
}

func (s *Seeder) fakeCustomer(i int) *entity.CreateCustomerRequest {
	return &entity.CreateCustomerRequest{
		Name:  faker.FirstName() + " " + faker.LastName(),
		Email: fmt.Sprintf("customer%d.%s", i+1, faker.Email()),
		Phone: faker.Phonenumber(),
	}
}

func (s *Seeder) fakeOrder(customerIDs, productIDs []uuid.UUID) *entity.CreateOrderRequest {
	statuses := entity.OrderStatuses()
	shipping := decimal.NewFromInt(int64(s.rnd.IntN(2000))).Shift(-2)

	items := make([]entity.OrderItemRequest, 1+s.rnd.IntN(4))
	for i := range items {
		quantity := 1 + s.rnd.IntN(5)
		items[i] = entity.OrderItemRequest{
			ProductID: productIDs[s.rnd.IntN(len(productIDs))],
			Quantity:  &quantity,
		}
	}

	return &entity.CreateOrderRequest{
		CustomerID:    customerIDs[s.rnd.IntN(len(customerIDs))],
		Status:        statuses[s.rnd.IntN(len(statuses))],
		ShippingPrice: &shipping,
		Notes:         faker.Sentence(),
		Items:         items,
	}
}
