package service

import (
	"context"
	"errors"
	"fmt"

	"shopadmin/admin-service/internal/app/admin/derive"
	"shopadmin/admin-service/internal/app/admin/entity"
	"shopadmin/admin-service/internal/app/admin/infrastructure"
	"shopadmin/admin-service/internal/app/admin/repository"

	"github.com/google/uuid"
)

// BrandService обрабатывает бизнес-логику брендов
type BrandService struct {
	brandRepo repository.BrandRepository
	cache     infrastructure.OptionsCache
	activity  *ActivityService
}

func NewBrandService(brandRepo repository.BrandRepository, cache infrastructure.OptionsCache, activity *ActivityService) *BrandService {
	return &BrandService{
		brandRepo: brandRepo,
		cache:     cache,
		activity:  activity,
	}
}

// boolOrDefault разворачивает необязательный флаг формы
func boolOrDefault(value *bool, def bool) bool {
	if value == nil {
		return def
	}
	return *value
}

// Create создает бренд, slug вычисляется из названия один раз
func (s *BrandService) Create(ctx context.Context, req *entity.CreateBrandRequest) (*entity.Brand, error) {
	slug, _ := derive.Derive(derive.OperationCreate, req.Name)
	if slug == "" {
		return nil, ErrEmptySlug
	}

	brand := &entity.Brand{
		ID:          uuid.New(),
		Name:        req.Name,
		Slug:        slug,
		URL:         req.URL,
		Description: req.Description,
		IsVisible:   boolOrDefault(req.IsVisible, true),
		PrimaryHex:  req.PrimaryHex,
	}

	if err := s.brandRepo.Create(ctx, brand); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}

	invalidateOptions(ctx, s.cache, OptionsBrands)
	s.activity.Record(ctx, ResourceBrand, brand.ID, entity.ActivityCreated, brand.Name)

	return brand, nil
}

func (s *BrandService) Get(ctx context.Context, id uuid.UUID) (*entity.Brand, error) {
	brand, err := s.brandRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBrandNotFound) {
			return nil, ErrBrandNotFound
		}
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}
	return brand, nil
}

func (s *BrandService) List(ctx context.Context, query entity.BrandListQuery) (*entity.PageResponse[entity.Brand], error) {
	query.Normalize()

	brands, total, err := s.brandRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	if brands == nil {
		brands = []entity.Brand{}
	}

	return &entity.PageResponse[entity.Brand]{
		Data:    brands,
		Total:   total,
		Page:    query.Page,
		PerPage: query.PerPage,
	}, nil
}

// Update меняет поля бренда; slug остаётся прежним
func (s *BrandService) Update(ctx context.Context, id uuid.UUID, req *entity.UpdateBrandRequest) (*entity.Brand, error) {
	brand, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	brand.Name = req.Name
	brand.URL = req.URL
	brand.Description = req.Description
	brand.IsVisible = boolOrDefault(req.IsVisible, brand.IsVisible)
	brand.PrimaryHex = req.PrimaryHex

	if err := s.brandRepo.Update(ctx, brand); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, ErrAlreadyExists
		case errors.Is(err, repository.ErrBrandNotFound):
			return nil, ErrBrandNotFound
		}
		return nil, fmt.Errorf("failed to update brand: %w", err)
	}

	invalidateOptions(ctx, s.cache, OptionsBrands)
	s.activity.Record(ctx, ResourceBrand, brand.ID, entity.ActivityUpdated, brand.Name)

	return brand, nil
}

func (s *BrandService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.brandRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrBrandNotFound) {
			return ErrBrandNotFound
		}
		return fmt.Errorf("failed to delete brand: %w", err)
	}

	invalidateOptions(ctx, s.cache, OptionsBrands)
	s.activity.Record(ctx, ResourceBrand, id, entity.ActivityDeleted, "")
	return nil
}

// BulkDelete удаляет несколько брендов, несуществующие ID пропускаются
func (s *BrandService) BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	deleted, err := s.brandRepo.BulkDelete(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk delete brands: %w", err)
	}

	if len(deleted) > 0 {
		invalidateOptions(ctx, s.cache, OptionsBrands)
		for _, id := range deleted {
			s.activity.Record(ctx, ResourceBrand, id, entity.ActivityDeleted, "bulk")
		}
	}
	return int64(len(deleted)), nil
}

func (s *BrandService) Restore(ctx context.Context, id uuid.UUID) (*entity.Brand, error) {
	if err := s.brandRepo.Restore(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrBrandNotFound):
			return nil, ErrBrandNotFound
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to restore brand: %w", err)
	}

	invalidateOptions(ctx, s.cache, OptionsBrands)
	s.activity.Record(ctx, ResourceBrand, id, entity.ActivityRestored, "")

	return s.Get(ctx, id)
}
