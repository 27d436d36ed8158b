package service

import (
	"errors"

	"shopadmin/admin-service/internal/app/admin/derive"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrBrandNotFound          = errors.New("brand not found")
	ErrCategoryNotFound       = errors.New("category not found")
	ErrParentCategoryNotFound = errors.New("parent category not found")
	ErrCategoryCycle          = errors.New("category cannot be its own ancestor")
	ErrProductNotFound        = errors.New("product not found")
	ErrCustomerNotFound       = errors.New("customer not found")
	ErrOrderNotFound          = errors.New("order not found")
	ErrAlreadyExists          = errors.New("record with the same unique value already exists")
	ErrEmptySlug              = errors.New("name does not produce a usable slug")
	ErrDuplicateOrderNumber   = errors.New("could not allocate a unique order number")
	ErrUnknownOptions         = errors.New("unknown options resource")
	ErrActivityUnavailable    = errors.New("activity log is not configured")

	// ErrNegativeQuantity количество в строке заказа меньше нуля
	ErrNegativeQuantity = derive.ErrNegativeQuantity
)
