package repository

import (
	"context"
	"errors"

	"shopadmin/admin-service/internal/app/admin/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var brandSortColumns = map[string]string{
	"name":       "name",
	"url":        "url",
	"updated_at": "updated_at",
}

type brandRepository struct {
	db *gorm.DB // GORM DB для работы с PostgreSQL
}

// NewBrandRepository создает новый репозиторий брендов
func NewBrandRepository(db *gorm.DB) BrandRepository {
	return &brandRepository{db: db}
}

// Create создает бренд, дубликат name/slug/url возвращает ErrDuplicateKey
func (r *brandRepository) Create(ctx context.Context, brand *entity.Brand) error {
	result := r.db.WithContext(ctx).Create(brand)
	return translateError(result.Error)
}

// GetByID получает бренд по ID
func (r *brandRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Brand, error) {
	var brand entity.Brand
	result := r.db.WithContext(ctx).First(&brand, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrBrandNotFound
		}
		return nil, result.Error
	}

	return &brand, nil
}

// List возвращает страницу брендов и общее количество
// Поиск по name и url
func (r *brandRepository) List(ctx context.Context, query entity.BrandListQuery) ([]entity.Brand, int64, error) {
	base := func() *gorm.DB {
		db := r.db.WithContext(ctx).Model(&entity.Brand{}).
			Scopes(trashed(query.OnlyTrashed), visibility(query.Visible))
		if query.Search != "" {
			like := likePattern(query.Search)
			db = db.Where("(name ILIKE ? OR url ILIKE ?)", like, like)
		}
		return db
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var brands []entity.Brand
	result := base().
		Scopes(sortBy(query.ListQuery, brandSortColumns, "name ASC"), paginate(query.ListQuery)).
		Find(&brands)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return brands, total, nil
}

// Update обновляет редактируемые поля бренда; slug не трогается
func (r *brandRepository) Update(ctx context.Context, brand *entity.Brand) error {
	result := r.db.WithContext(ctx).Model(brand).
		Where("id = ?", brand.ID).
		Updates(map[string]interface{}{
			"name":        brand.Name,
			"url":         brand.URL,
			"description": brand.Description,
			"is_visible":  brand.IsVisible,
			"primary_hex": brand.PrimaryHex,
		})

	if result.Error != nil {
		return translateError(result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrBrandNotFound
	}

	return nil
}

// Delete мягко удаляет бренд
func (r *brandRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return softDelete(ctx, r.db, &entity.Brand{}, id, ErrBrandNotFound)
}

func (r *brandRepository) BulkDelete(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	return bulkSoftDelete(ctx, r.db, &entity.Brand{}, ids)
}

// Restore восстанавливает мягко удалённый бренд
func (r *brandRepository) Restore(ctx context.Context, id uuid.UUID) error {
	return restore(ctx, r.db, &entity.Brand{}, id, ErrBrandNotFound)
}

func (r *brandRepository) Options(ctx context.Context) ([]entity.Option, error) {
	return listOptions(ctx, r.db, &entity.Brand{})
}
