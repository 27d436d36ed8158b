package repository

import (
	"context"
	"errors"

	"shopadmin/admin-service/internal/app/admin/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var productSortColumns = map[string]string{
	"name":         "name",
	"price":        "price",
	"quantity":     "quantity",
	"published_at": "published_at",
	"updated_at":   "updated_at",
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository создает новый репозиторий товаров
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create создает товар и связи с категориями
// Сами категории не пересохраняются, пишутся только строки category_product
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	result := r.db.WithContext(ctx).
		Omit("Brand", "Categories.*").
		Create(product)
	return translateError(result.Error)
}

// GetByID получает товар с брендом и категориями
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	result := r.db.WithContext(ctx).
		Preload("Brand").
		Preload("Categories").
		First(&product, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, result.Error
	}

	return &product, nil
}

// GetByIDs получает товары без связей, используется для снимка цен в заказе
func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var products []entity.Product
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products)
	if result.Error != nil {
		return nil, result.Error
	}

	return products, nil
}

// filtered собирает выборку товаров по фильтрам списка
func (r *productRepository) filtered(ctx context.Context, query entity.ProductListQuery) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&entity.Product{}).
		Scopes(trashed(query.OnlyTrashed), visibility(query.Visible))

	if query.BrandID != nil {
		db = db.Where("brand_id = ?", *query.BrandID)
	}
	if query.Search != "" {
		like := likePattern(query.Search)
		db = db.Where(
			"(name ILIKE ? OR slug ILIKE ? OR sku ILIKE ? OR brand_id IN (SELECT id FROM brands WHERE name ILIKE ?))",
			like, like, like, like,
		)
	}

	return db
}

// List возвращает страницу товаров с брендами
func (r *productRepository) List(ctx context.Context, query entity.ProductListQuery) ([]entity.Product, int64, error) {
	var total int64
	if err := r.filtered(ctx, query).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []entity.Product
	result := r.filtered(ctx, query).
		Preload("Brand").
		Scopes(sortBy(query.ListQuery, productSortColumns, "name ASC"), paginate(query.ListQuery)).
		Find(&products)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return products, total, nil
}

// ListAll возвращает все товары по фильтрам без пагинации (для экспорта)
func (r *productRepository) ListAll(ctx context.Context, query entity.ProductListQuery) ([]entity.Product, error) {
	var products []entity.Product
	result := r.filtered(ctx, query).
		Preload("Brand").
		Preload("Categories").
		Scopes(sortBy(query.ListQuery, productSortColumns, "name ASC")).
		Find(&products)
	if result.Error != nil {
		return nil, result.Error
	}

	return products, nil
}

// ListByCategory товары категории для relation manager
func (r *productRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]entity.Product, error) {
	var products []entity.Product
	result := r.db.WithContext(ctx).
		Preload("Brand").
		Where("id IN (SELECT product_id FROM category_product WHERE category_id = ?)", categoryID).
		Order("name ASC").
		Find(&products)
	if result.Error != nil {
		return nil, result.Error
	}

	return products, nil
}

// Search глобальный поиск по name, slug и description
func (r *productRepository) Search(ctx context.Context, term string, limit int) ([]entity.Product, error) {
	like := likePattern(term)

	var products []entity.Product
	result := r.db.WithContext(ctx).
		Preload("Brand").
		Where("(name ILIKE ? OR slug ILIKE ? OR description ILIKE ?)", like, like, like).
		Order("name ASC").
		Limit(limit).
		Find(&products)
	if result.Error != nil {
		return nil, result.Error
	}

	return products, nil
}

// Update обновляет товар и заменяет набор категорий в одной транзакции
// slug не трогается
func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entity.Product{}).
			Where("id = ?", product.ID).
			Updates(map[string]interface{}{
				"brand_id":     product.BrandID,
				"name":         product.Name,
				"sku":          product.SKU,
				"description":  product.Description,
				"image":        product.Image,
				"quantity":     product.Quantity,
				"price":        product.Price,
				"type":         product.Type,
				"is_visible":   product.IsVisible,
				"is_featured":  product.IsFeatured,
				"published_at": product.PublishedAt,
			})
		if result.Error != nil {
			return translateError(result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrProductNotFound
		}

		if err := tx.Model(product).Omit("Categories.*").Association("Categories").Replace(product.Categories); err != nil {
			return err
		}

		return nil
	})
}

// Delete мягко удаляет товар
// Позиции существующих заказов продолжают ссылаться на него
func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return softDelete(ctx, r.db, &entity.Product{}, id, ErrProductNotFound)
}

func (r *productRepository) BulkDelete(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	return bulkSoftDelete(ctx, r.db, &entity.Product{}, ids)
}

func (r *productRepository) Restore(ctx context.Context, id uuid.UUID) error {
	return restore(ctx, r.db, &entity.Product{}, id, ErrProductNotFound)
}

// Count количество товаров (без удалённых)
func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&entity.Product{}).Count(&count)
	return count, result.Error
}

func (r *productRepository) Options(ctx context.Context) ([]entity.Option, error) {
	return listOptions(ctx, r.db, &entity.Product{})
}
