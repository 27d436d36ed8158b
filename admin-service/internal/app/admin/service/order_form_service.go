package service

import (
	"context"
	"errors"

	"shopadmin/admin-service/internal/app/admin/derive"
	"shopadmin/admin-service/internal/app/admin/entity"
	"shopadmin/admin-service/internal/app/admin/repository"
	"shopadmin/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FormService реакции форм на изменения полей.
// Состояние строки приходит от клиента, сервис только пересчитывает поля.
type FormService struct {
	productRepo repository.ProductRepository
}

func NewFormService(productRepo repository.ProductRepository) *FormService {
	return &FormService{productRepo: productRepo}
}

// Slug реакция на изменение поля name
func (s *FormService) Slug(req *entity.SlugRequest) entity.SlugResponse {
	value, changed := derive.Derive(derive.FormOperation(req.Operation), req.Name)
	return entity.SlugResponse{Slug: value, Changed: changed}
}

// Defaults начальное состояние формы заказа
func (s *FormService) Defaults() entity.OrderFormDefaults {
	return entity.OrderFormDefaults{
		Status: entity.OrderStatusPending,
		Lines:  []derive.Line{derive.NewLine()},
	}
}

// ProductSelected подставляет текущую цену выбранного товара в строку
func (s *FormService) ProductSelected(ctx context.Context, req *entity.ProductSelectedRequest) derive.Line {
	return derive.OnProductSelected(req.Line, req.ProductID, s.priceLookup(ctx))
}

// QuantityChanged пересчитывает итог строки, цена строки не перечитывается
func (s *FormService) QuantityChanged(req *entity.QuantityChangedRequest) (derive.Line, error) {
	return derive.OnQuantityChanged(req.Line, req.Quantity)
}

// Summary пересчитывает все строки и итог заказа
func (s *FormService) Summary(req *entity.OrderSummaryRequest) entity.OrderSummaryResponse {
	lines, total := derive.Recompute(req.Lines)
	if lines == nil {
		lines = []derive.Line{}
	}
	return entity.OrderSummaryResponse{Lines: lines, TotalPrice: total}
}

// priceLookup ошибка БД трактуется как отсутствующий товар: цена 0
func (s *FormService) priceLookup(ctx context.Context) derive.PriceLookup {
	return func(id uuid.UUID) (decimal.Decimal, bool) {
		product, err := s.productRepo.GetByID(ctx, id)
		if err != nil {
			if !errors.Is(err, repository.ErrProductNotFound) {
				logger.FromContext(ctx).Warn().Err(err).Str("product_id", id.String()).Msg("Failed to look up product price")
			}
			return decimal.Zero, false
		}
		return product.Price, true
	}
}
