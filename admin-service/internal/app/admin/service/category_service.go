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

// maxCategoryDepth ограничение обхода цепочки предков
const maxCategoryDepth = 64

// CategoryService обрабатывает бизнес-логику дерева категорий
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	cache        infrastructure.OptionsCache
	activity     *ActivityService
}

func NewCategoryService(categoryRepo repository.CategoryRepository, cache infrastructure.OptionsCache, activity *ActivityService) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		cache:        cache,
		activity:     activity,
	}
}

// Create создает категорию, slug вычисляется из названия
func (s *CategoryService) Create(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.Category, error) {
	slug, _ := derive.Derive(derive.OperationCreate, req.Name)
	if slug == "" {
		return nil, ErrEmptySlug
	}

	if req.ParentID != nil {
		if _, err := s.categoryRepo.GetParentID(ctx, *req.ParentID); err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				return nil, ErrParentCategoryNotFound
			}
			return nil, fmt.Errorf("failed to check parent category: %w", err)
		}
	}

	category := &entity.Category{
		ID:          uuid.New(),
		ParentID:    req.ParentID,
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		IsVisible:   boolOrDefault(req.IsVisible, true),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	invalidateOptions(ctx, s.cache, OptionsCategories)
	s.activity.Record(ctx, ResourceCategory, category.ID, entity.ActivityCreated, category.Name)

	return category, nil
}

func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) List(ctx context.Context, query entity.CategoryListQuery) (*entity.PageResponse[entity.Category], error) {
	query.Normalize()

	categories, total, err := s.categoryRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		categories = []entity.Category{}
	}

	return &entity.PageResponse[entity.Category]{
		Data:    categories,
		Total:   total,
		Page:    query.Page,
		PerPage: query.PerPage,
	}, nil
}

// Update меняет категорию; slug остаётся прежним, родитель проверяется на циклы
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req *entity.UpdateCategoryRequest) (*entity.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		if err := s.checkParent(ctx, id, *req.ParentID); err != nil {
			return nil, err
		}
	}

	category.Name = req.Name
	category.Description = req.Description
	category.IsVisible = boolOrDefault(req.IsVisible, category.IsVisible)
	category.ParentID = req.ParentID
	category.Parent = nil

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, ErrAlreadyExists
		case errors.Is(err, repository.ErrCategoryNotFound):
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	invalidateOptions(ctx, s.cache, OptionsCategories)
	s.activity.Record(ctx, ResourceCategory, category.ID, entity.ActivityUpdated, category.Name)

	return category, nil
}

// checkParent проходит по цепочке предков нового родителя:
// если встречается сама категория, назначение создало бы цикл
func (s *CategoryService) checkParent(ctx context.Context, id, parentID uuid.UUID) error {
	if parentID == id {
		return ErrCategoryCycle
	}

	visited := map[uuid.UUID]bool{}
	current := parentID

	for depth := 0; depth < maxCategoryDepth; depth++ {
		if visited[current] {
			// в базе уже есть цикл выше по дереву
			return ErrCategoryCycle
		}
		visited[current] = true

		next, err := s.categoryRepo.GetParentID(ctx, current)
		if err != nil {
			if errors.Is(err, repository.ErrCategoryNotFound) {
				if current == parentID {
					return ErrParentCategoryNotFound
				}
				// предок удалён, выше подниматься некуда
				return nil
			}
			return fmt.Errorf("failed to walk category tree: %w", err)
		}

		if next == nil {
			return nil
		}
		if *next == id {
			return ErrCategoryCycle
		}
		current = *next
	}

	return ErrCategoryCycle
}

func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	invalidateOptions(ctx, s.cache, OptionsCategories)
	s.activity.Record(ctx, ResourceCategory, id, entity.ActivityDeleted, "")
	return nil
}

func (s *CategoryService) BulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	deleted, err := s.categoryRepo.BulkDelete(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk delete categories: %w", err)
	}

	if len(deleted) > 0 {
		invalidateOptions(ctx, s.cache, OptionsCategories)
		for _, id := range deleted {
			s.activity.Record(ctx, ResourceCategory, id, entity.ActivityDeleted, "bulk")
		}
	}
	return int64(len(deleted)), nil
}

func (s *CategoryService) Restore(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	if err := s.categoryRepo.Restore(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrCategoryNotFound):
			return nil, ErrCategoryNotFound
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to restore category: %w", err)
	}

	invalidateOptions(ctx, s.cache, OptionsCategories)
	s.activity.Record(ctx, ResourceCategory, id, entity.ActivityRestored, "")

	return s.Get(ctx, id)
}
