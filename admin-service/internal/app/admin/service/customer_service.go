package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shopadmin/admin-service/internal/app/admin/entity"
	"shopadmin/admin-service/internal/app/admin/infrastructure"
	"shopadmin/admin-service/internal/app/admin/repository"

	"github.com/google/uuid"
)

// CustomerService обрабатывает бизнес-логику покупателей
type CustomerService struct {
	customerRepo repository.CustomerRepository
	cache        infrastructure.OptionsCache
	activity     *ActivityService
}

func NewCustomerService(customerRepo repository.CustomerRepository, cache infrastructure.OptionsCache, activity *ActivityService) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		cache:        cache,
		activity:     activity,
	}
}

func (s *CustomerService) Create(ctx context.Context, req *entity.CreateCustomerRequest) (*entity.Customer, error) {
	customer := &entity.Customer{
		ID:    uuid.New(),
		Name:  req.Name,
		Email: strings.ToLower(strings.TrimSpace(req.Email)),
		Phone: req.Phone,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	invalidateOptions(ctx, s.cache, OptionsCustomers)
	s.activity.Record(ctx, ResourceCustomer, customer.ID, entity.ActivityCreated, customer.Name)

	return customer, nil
}

func (s *CustomerService) Get(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return customer, nil
}

func (s *CustomerService) List(ctx context.Context, query entity.CustomerListQuery) (*entity.PageResponse[entity.Customer], error) {
	query.Normalize()

	customers, total, err := s.customerRepo.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	if customers == nil {
		customers = []entity.Customer{}
	}

	return &entity.PageResponse[entity.Customer]{
		Data:    customers,
		Total:   total,
		Page:    query.Page,
		PerPage: query.PerPage,
	}, nil
}

func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req *entity.UpdateCustomerRequest) (*entity.Customer, error) {
	customer, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	customer.Name = req.Name
	customer.Email = strings.ToLower(strings.TrimSpace(req.Email))
	customer.Phone = req.Phone

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, ErrAlreadyExists
		case errors.Is(err, repository.ErrCustomerNotFound):
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	invalidateOptions(ctx, s.cache, OptionsCustomers)
	s.activity.Record(ctx, ResourceCustomer, customer.ID, entity.ActivityUpdated, customer.Name)

	return customer, nil
}

func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			return ErrCustomerNotFound
		}
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	invalidateOptions(ctx, s.cache, OptionsCustomers)
	s.activity.Record(ctx, ResourceCustomer, id, entity.ActivityDeleted, "")
	return nil
}
