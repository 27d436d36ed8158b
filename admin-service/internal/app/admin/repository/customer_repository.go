package repository

import (
	"context"
	"errors"

	"shopadmin/admin-service/internal/app/admin/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var customerSortColumns = map[string]string{
	"name":       "name",
	"email":      "email",
	"created_at": "created_at",
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	result := r.db.WithContext(ctx).Create(customer)
	return translateError(result.Error)
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	result := r.db.WithContext(ctx).First(&customer, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, result.Error
	}

	return &customer, nil
}

func (r *customerRepository) List(ctx context.Context, query entity.CustomerListQuery) ([]entity.Customer, int64, error) {
	base := func() *gorm.DB {
		db := r.db.WithContext(ctx).Model(&entity.Customer{}).Scopes(trashed(query.OnlyTrashed))
		if query.Search != "" {
			like := likePattern(query.Search)
			db = db.Where("(name ILIKE ? OR email ILIKE ? OR phone ILIKE ?)", like, like, like)
		}
		return db
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var customers []entity.Customer
	result := base().
		Scopes(sortBy(query.ListQuery, customerSortColumns, "name ASC"), paginate(query.ListQuery)).
		Find(&customers)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return customers, total, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	result := r.db.WithContext(ctx).Model(customer).
		Where("id = ?", customer.ID).
		Updates(map[string]interface{}{
			"name":  customer.Name,
			"email": customer.Email,
			"phone": customer.Phone,
		})

	if result.Error != nil {
		return translateError(result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return softDelete(ctx, r.db, &entity.Customer{}, id, ErrCustomerNotFound)
}

func (r *customerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&entity.Customer{}).Count(&count)
	return count, result.Error
}

func (r *customerRepository) Options(ctx context.Context) ([]entity.Option, error) {
	return listOptions(ctx, r.db, &entity.Customer{})
}
