package repository

import (
	"context"
	"errors"

	"shopadmin/admin-service/internal/app/admin/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var categorySortColumns = map[string]string{
	"name":       "name",
	"updated_at": "updated_at",
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository создает новый репозиторий категорий
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// Create создает категорию
// Проверяет уникальность name/slug через UNIQUE constraint
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	result := r.db.WithContext(ctx).Omit("Parent").Create(category)
	return translateError(result.Error)
}

// GetByID получает категорию вместе с родителем
func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	var category entity.Category
	result := r.db.WithContext(ctx).
		Preload("Parent").
		First(&category, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, result.Error
	}

	return &category, nil
}

// GetByIDs получает категории по списку ID, отсутствующие просто не попадают в результат
func (r *categoryRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var categories []entity.Category
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories)
	if result.Error != nil {
		return nil, result.Error
	}

	return categories, nil
}

// GetParentID возвращает parent_id категории (nil для корня)
// Используется для обхода цепочки предков при проверке циклов
func (r *categoryRepository) GetParentID(ctx context.Context, id uuid.UUID) (*uuid.UUID, error) {
	var category entity.Category
	result := r.db.WithContext(ctx).
		Select("id", "parent_id").
		First(&category, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, result.Error
	}

	return category.ParentID, nil
}

// List возвращает страницу категорий с родителями
func (r *categoryRepository) List(ctx context.Context, query entity.CategoryListQuery) ([]entity.Category, int64, error) {
	base := func() *gorm.DB {
		db := r.db.WithContext(ctx).Model(&entity.Category{}).
			Scopes(trashed(query.OnlyTrashed), visibility(query.Visible))
		if query.Search != "" {
			like := likePattern(query.Search)
			db = db.Where("(name ILIKE ? OR parent_id IN (SELECT id FROM categories WHERE name ILIKE ?))", like, like)
		}
		return db
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var categories []entity.Category
	result := base().
		Preload("Parent").
		Scopes(sortBy(query.ListQuery, categorySortColumns, "name ASC"), paginate(query.ListQuery)).
		Find(&categories)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return categories, total, nil
}

// Update обновляет категорию; slug не трогается
func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	result := r.db.WithContext(ctx).Model(category).
		Where("id = ?", category.ID).
		Updates(map[string]interface{}{
			"name":        category.Name,
			"description": category.Description,
			"is_visible":  category.IsVisible,
			"parent_id":   category.ParentID,
		})

	if result.Error != nil {
		return translateError(result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

// Delete мягко удаляет категорию, товары остаются привязанными
func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return softDelete(ctx, r.db, &entity.Category{}, id, ErrCategoryNotFound)
}

func (r *categoryRepository) BulkDelete(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	return bulkSoftDelete(ctx, r.db, &entity.Category{}, ids)
}

func (r *categoryRepository) Restore(ctx context.Context, id uuid.UUID) error {
	return restore(ctx, r.db, &entity.Category{}, id, ErrCategoryNotFound)
}

func (r *categoryRepository) Options(ctx context.Context) ([]entity.Option, error) {
	return listOptions(ctx, r.db, &entity.Category{})
}
