package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"shopadmin/admin-service/internal/app/admin/derive"
	"shopadmin/admin-service/internal/app/admin/entity"
	"shopadmin/admin-service/internal/app/admin/infrastructure"
	"shopadmin/admin-service/internal/app/admin/repository"

	"github.com/google/uuid"
)

// SearchLimit максимум результатов глобального поиска
const SearchLimit = 20

// ProductService обрабатывает бизнес-логику товаров
type ProductService struct {
	productRepo  repository.ProductRepository
	brandRepo    repository.BrandRepository
	categoryRepo repository.CategoryRepository
	cache        infrastructure.OptionsCache
	activity     *ActivityService
	now          func() time.Time
}

func NewProductService(
	productRepo repository.ProductRepository,
	brandRepo repository.BrandRepository,
	categoryRepo repository.CategoryRepository,
	cache infrastructure.OptionsCache,
	activity *ActivityService,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		brandRepo:    brandRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
		activity:     activity,
		now:          time.Now,
	}
}

// Create создает товар, slug вычисляется из названия
// Бренд и все категории должны существовать
func (s *ProductService) Create(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error) {
	slug, _ := derive.Derive(derive.OperationCreate, req.Name)
	if slug == "" {
		return nil, ErrEmptySlug
	}

	brand, err := s.loadBrand(ctx, req.BrandID)
	if err != nil {
		return nil, err
	}

	categories, err := s.loadCategories(ctx, req.CategoryIDs)
	if err != nil {
		return nil, err
	}

	publishedAt := s.today()
	if req.PublishedAt != nil {
		publishedAt = *req.PublishedAt
	}

	product := &entity.Product{
		ID:          uuid.New(),
		BrandID:     brand.ID,
		Categories:  categories,
		Name:        req.Name,
		Slug:        slug,
		SKU:         req.SKU,
		Description: req.Description,
		Image:       req.Image,
		Quantity:    *req.Quantity,
		Price:       req.Price.Round(2),
		Type:        req.Type,
		IsVisible:   boolOrDefault(req.IsVisible, true),
		IsFeatured:  req.IsFeatured,
		PublishedAt: publishedAt,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	product.Brand = brand

	invalidateOptions(ctx, s.cache, OptionsProducts)
	s.activity.Record(ctx, ResourceProduct, product.ID, entity.ActivityCreated, product.Name)
	s.publishEvent(ctx, entity.EventProductCreated, product)

	return product, nil
}

// CreateInCategory создает товар сразу прикреплённым к категории
func (s *ProductService) CreateInCategory(ctx context.Context, categoryID uuid.UUID, req *entity.CreateProductRequest) (*entity.Product, error) {
	ids := make([]uuid.UUID, 0, len(req.CategoryIDs)+1)
	ids = append(ids, categoryID)
	ids = append(ids, req.CategoryIDs...)

	attached := *req
	attached.CategoryIDs = ids

	product, err := s.Create(ctx, &attached)
	if errors.Is(err, ErrCategoryNotFound) {
		// сама категория из пути могла не существовать
		if _, getErr := s.categoryRepo.GetByID(ctx, categoryID); errors.Is(getErr, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
	}
	return product, err
}

// ListByCategory товары, прикреплённые к категории
func (s *ProductService) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]entity.Product, error) {
	if _, err := s.categoryRepo.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	products, err := s.productRepo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list category products: %w", err)
	}
	if products == nil {
		products = []entity.Product{}
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

func (s *ProductService) List(ctx context.Context, query entity.ProductListQuery) (*entity.PageResponse[entity.Product], error) {
	query.Normalize()

	products, total, err := s.productRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	if products == nil {
		products = []entity.Product{}
	}

	return &entity.PageResponse[entity.Product]{
		Data:    products,
		Total:   total,
		Page:    query.Page,
		PerPage: query.PerPage,
	}, nil
}

// Search глобальный поиск, деталь результата - название бренда
func (s *ProductService) Search(ctx context.Context, term string) ([]entity.ProductSearchResult, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []entity.ProductSearchResult{}, nil
	}

	products, err := s.productRepo.Search(ctx, term, SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	results := make([]entity.ProductSearchResult, 0, len(products))
	for _, p := range products {
		result := entity.ProductSearchResult{
			ID:    p.ID,
			Title: p.Name,
			Slug:  p.Slug,
		}
		if p.Brand != nil {
			result.Brand = p.Brand.Name
		}
		results = append(results, result)
	}

	return results, nil
}

// Update меняет товар; slug остаётся прежним
// Новая цена не затрагивает позиции уже оформленных заказов
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req *entity.UpdateProductRequest) (*entity.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	brand, err := s.loadBrand(ctx, req.BrandID)
	if err != nil {
		return nil, err
	}

	categories, err := s.loadCategories(ctx, req.CategoryIDs)
	if err != nil {
		return nil, err
	}

	product.BrandID = brand.ID
	product.Brand = brand
	product.Categories = categories
	product.Name = req.Name
	product.SKU = req.SKU
	product.Description = req.Description
	product.Image = req.Image
	product.Quantity = *req.Quantity
	product.Price = req.Price.Round(2)
	product.Type = req.Type
	product.IsVisible = boolOrDefault(req.IsVisible, product.IsVisible)
	product.IsFeatured = req.IsFeatured
	if req.PublishedAt != nil {
		product.PublishedAt = *req.PublishedAt
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, ErrAlreadyExists
		case errors.Is(err, repository.ErrProductNotFound):
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	invalidateOptions(ctx, s.cache, OptionsProducts)
	s.activity.Record(ctx, ResourceProduct, product.ID, entity.ActivityUpdated, product.Name)
	s.publishEvent(ctx, entity.EventProductUpdated, product)

	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	invalidateOptions(ctx, s.cache, OptionsProducts)
	s.activity.Record(ctx, ResourceProduct, id, entity.ActivityDeleted, product.Name)
	s.publishEvent(ctx, entity.EventProductDeleted, product)
	return nil
}

func (s *ProductService) BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	deleted, err := s.productRepo.BulkDelete(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk delete products: %w", err)
	}

	if len(deleted) > 0 {
		invalidateOptions(ctx, s.cache, OptionsProducts)
		for _, id := range deleted {
			s.activity.Record(ctx, ResourceProduct, id, entity.ActivityDeleted, "bulk")
			s.activity.Publish(ctx, id, entity.ProductEvent{
				EventType: entity.EventProductDeleted,
				ProductID: id,
				Timestamp: s.now().UTC(),
			})
		}
	}
	return int64(len(deleted)), nil
}

func (s *ProductService) Restore(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	if err := s.productRepo.Restore(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			return nil, ErrProductNotFound
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to restore product: %w", err)
	}

	invalidateOptions(ctx, s.cache, OptionsProducts)
	s.activity.Record(ctx, ResourceProduct, id, entity.ActivityRestored, "")

	return s.Get(ctx, id)
}

// Export пишет xlsx-файл с товарами по тем же фильтрам, что и список
func (s *ProductService) Export(ctx context.Context, query entity.ProductListQuery, w io.Writer) error {
	query.Normalize()

	products, err := s.productRepo.ListAll(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to load products for export: %w", err)
	}

	if err := writeProductsWorkbook(w, products); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

func (s *ProductService) loadBrand(ctx context.Context, id uuid.UUID) (*entity.Brand, error) {
	brand, err := s.brandRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBrandNotFound) {
			return nil, ErrBrandNotFound
		}
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}
	return brand, nil
}

// loadCategories возвращает категории по ID, повторы схлопываются
// Хотя бы одна категория обязательна
func (s *ProductService) loadCategories(ctx context.Context, ids []uuid.UUID) ([]entity.Category, error) {
	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	if len(unique) == 0 {
		return nil, ErrCategoryNotFound
	}

	categories, err := s.categoryRepo.GetByIDs(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	if len(categories) != len(unique) {
		return nil, ErrCategoryNotFound
	}

	return categories, nil
}

func (s *ProductService) today() time.Time {
	now := s.now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *ProductService) publishEvent(ctx context.Context, eventType string, product *entity.Product) {
	s.activity.Publish(ctx, product.ID, entity.ProductEvent{
		EventType: eventType,
		ProductID: product.ID,
		BrandID:   product.BrandID,
		Name:      product.Name,
		SKU:       product.SKU,
		Price:     product.Price,
		Quantity:  product.Quantity,
		Timestamp: s.now().UTC(),
	})
}
