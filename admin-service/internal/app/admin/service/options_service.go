package service

import (
	"context"
	"fmt"
	"time"

	"shopadmin/admin-service/internal/app/admin/entity"
	"shopadmin/admin-service/internal/app/admin/infrastructure"
	"shopadmin/admin-service/internal/app/admin/repository"
	"shopadmin/pkg/logger"
)

// Ключи кеша опций select-полей
const (
	OptionsBrands     = "brands"
	OptionsCategories = "categories"
	OptionsProducts   = "products"
	OptionsCustomers  = "customers"
)

// invalidateOptions сбрасывает кеш опций после записи в ресурс
// Ошибка кеша не критична: данные уже сохранены
func invalidateOptions(ctx context.Context, cache infrastructure.OptionsCache, resource string) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, resource); err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("resource", resource).Msg("Failed to invalidate options cache")
	}
}

// OptionsService отдаёт списки {id, name} для select-полей форм с кешированием в Redis
type OptionsService struct {
	cache        infrastructure.OptionsCache
	brandRepo    repository.BrandRepository
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	ttl          time.Duration
}

func NewOptionsService(
	cache infrastructure.OptionsCache,
	brandRepo repository.BrandRepository,
	categoryRepo repository.CategoryRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	ttl time.Duration,
) *OptionsService {
	return &OptionsService{
		cache:        cache,
		brandRepo:    brandRepo,
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		ttl:          ttl,
	}
}

// Get сначала проверяет кеш, при промахе загружает из БД и кеширует
func (s *OptionsService) Get(ctx context.Context, resource string) ([]entity.Option, error) {
	load, ok := s.loader(resource)
	if !ok {
		return nil, ErrUnknownOptions
	}

	if s.cache != nil {
		options, found, err := s.cache.GetOptions(ctx, resource)
		if err != nil {
			logger.FromContext(ctx).Warn().Err(err).Str("resource", resource).Msg("Failed to read options cache")
		} else if found {
			return options, nil
		}
	}

	options, err := load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s options: %w", resource, err)
	}
	if options == nil {
		options = []entity.Option{}
	}

	if s.cache != nil {
		if err := s.cache.SetOptions(ctx, resource, options, s.ttl); err != nil {
			logger.FromContext(ctx).Warn().Err(err).Str("resource", resource).Msg("Failed to cache options")
		}
	}

	return options, nil
}

func (s *OptionsService) loader(resource string) (func(ctx context.Context) ([]entity.Option, error), bool) {
	switch resource {
	case OptionsBrands:
		return s.brandRepo.Options, true
	case OptionsCategories:
		return s.categoryRepo.Options, true
	case OptionsProducts:
		return s.productRepo.Options, true
	case OptionsCustomers:
		return s.customerRepo.Options, true
	default:
		return nil, false
	}
}
