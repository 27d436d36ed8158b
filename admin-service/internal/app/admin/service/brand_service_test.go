package service

import (
	"context"
	"errors"
	"testing"

	"shopadmin/admin-service/internal/app/admin/entity"
	"shopadmin/admin-service/internal/app/admin/repository"
	"shopadmin/admin-service/internal/app/admin/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newTestActivity журнал и Kafka, принимающие любые записи
func newTestActivity() (*ActivityService, *mocks.MockActivityRepository, *mocks.MockMessagePublisher) {
	activityRepo := new(mocks.MockActivityRepository)
	activityRepo.On("Append", mock.Anything, mock.AnythingOfType("*entity.ActivityEntry")).Return(nil).Maybe()

	producer := &mocks.MockMessagePublisher{Messages: make([][]byte, 0)}
	producer.On("PublishMessage", mock.Anything, mock.AnythingOfType("string"), mock.Anything).Return(nil).Maybe()

	return NewActivityService(activityRepo, producer), activityRepo, producer
}

func newTestCache(resource string) *mocks.MockOptionsCache {
	cache := new(mocks.MockOptionsCache)
	cache.On("Invalidate", mock.Anything, resource).Return(nil).Maybe()
	return cache
}

// ===================== Create Tests =====================

func TestBrandCreate_DerivesSlug(t *testing.T) {
	// Arrange
	brandRepo := new(mocks.MockBrandRepository)
	cache := newTestCache(OptionsBrands)
	activity, activityRepo, _ := newTestActivity()
	svc := NewBrandService(brandRepo, cache, activity)

	ctx := context.Background()
	req := &entity.CreateBrandRequest{
		Name: "Nike Air",
		URL:  "https://nike.com",
	}

	brandRepo.On("Create", ctx, mock.AnythingOfType("*entity.Brand")).Return(nil)

	// Act
	brand, err := svc.Create(ctx, req)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "nike-air", brand.Slug)
	assert.True(t, brand.IsVisible)
	assert.NotEqual(t, uuid.Nil, brand.ID)

	brandRepo.AssertExpectations(t)
	cache.AssertCalled(t, "Invalidate", mock.Anything, OptionsBrands)
	activityRepo.AssertCalled(t, "Append", mock.Anything, mock.MatchedBy(func(e *entity.ActivityEntry) bool {
		return e.Resource == ResourceBrand && e.Action == entity.ActivityCreated && e.ResourceID == brand.ID.String()
	}))
}

func TestBrandCreate_ExplicitHidden(t *testing.T) {
	// Arrange
	brandRepo := new(mocks.MockBrandRepository)
	svc := NewBrandService(brandRepo, nil, nil)

	hidden := false
	brandRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Brand")).Return(nil)

	// Act
	brand, err := svc.Create(context.Background(), &entity.CreateBrandRequest{
		Name:      "Adidas",
		URL:       "https://adidas.com",
		IsVisible: &hidden,
	})

	// Assert
	require.NoError(t, err)
	assert.False(t, brand.IsVisible)
}

func TestBrandCreate_NameWithoutSlug(t *testing.T) {
	// Arrange
	brandRepo := new(mocks.MockBrandRepository)
	svc := NewBrandService(brandRepo, nil, nil)

	// Act
	brand, err := svc.Create(context.Background(), &entity.CreateBrandRequest{Name: "   ", URL: "https://x.io"})

	// Assert
	assert.Nil(t, brand)
	assert.ErrorIs(t, err, ErrEmptySlug)
	brandRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBrandCreate_Duplicate(t *testing.T) {
	// Arrange
	brandRepo := new(mocks.MockBrandRepository)
	svc := NewBrandService(brandRepo, nil, nil)

	brandRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Brand")).Return(repository.ErrDuplicateKey)

	// Act
	_, err := svc.Create(context.Background(), &entity.CreateBrandRequest{Name: "Nike", URL: "https://nike.com"})

	// Assert
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

// ===================== Update Tests =====================

func TestBrandUpdate_KeepsSlug(t *testing.T) {
	// Arrange
	brandRepo := new(mocks.MockBrandRepository)
	cache := newTestCache(OptionsBrands)
	svc := NewBrandService(brandRepo, cache, nil)

	ctx := context.Background()
	brandID := uuid.New()
	existing := &entity.Brand{ID: brandID, Name: "Nike", Slug: "nike", URL: "https://nike.com", IsVisible: true}

	brandRepo.On("GetByID", ctx, brandID).Return(existing, nil)
	brandRepo.On("Update", ctx, mock.AnythingOfType("*entity.Brand")).Return(nil)

	// Act
	brand, err := svc.Update(ctx, brandID, &entity.UpdateBrandRequest{Name: "Nike Sportswear", URL: "https://nike.com"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Nike Sportswear", brand.Name)
	assert.Equal(t, "nike", brand.Slug)
	assert.True(t, brand.IsVisible)
	brandRepo.AssertExpectations(t)
}

func TestBrandUpdate_NotFound(t *testing.T) {
	// Arrange
	brandRepo := new(mocks.MockBrandRepository)
	svc := NewBrandService(brandRepo, nil, nil)

	brandID := uuid.New()
	brandRepo.On("GetByID", mock.Anything, brandID).Return(nil, repository.ErrBrandNotFound)

	// Act
	_, err := svc.Update(context.Background(), brandID, &entity.UpdateBrandRequest{Name: "X", URL: "https://x.io"})

	// Assert
	assert.ErrorIs(t, err, ErrBrandNotFound)
	brandRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

// ===================== Delete / Restore Tests =====================

func TestBrandDelete_NotFound(t *testing.T) {
	// Arrange
	brandRepo := new(mocks.MockBrandRepository)
	svc := NewBrandService(brandRepo, nil, nil)

	brandID := uuid.New()
	brandRepo.On("Delete", mock.Anything, brandID).Return(repository.ErrBrandNotFound)

	// Act
	err := svc.Delete(context.Background(), brandID)

	// Assert
	assert.ErrorIs(t, err, ErrBrandNotFound)
}

func TestBrandBulkDelete_NothingDeleted(t *testing.T) {
	// Arrange
	brandRepo := new(mocks.MockBrandRepository)
	cache := new(mocks.MockOptionsCache)
	svc := NewBrandService(brandRepo, cache, nil)

	ids := []uuid.UUID{uuid.New(), uuid.New()}
	brandRepo.On("BulkDelete", mock.Anything, ids).Return(nil, nil)

	// Act
	deleted, err := svc.BulkDelete(context.Background(), ids)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
	cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestBrandRestore_Success(t *testing.T) {
	// Arrange
	brandRepo := new(mocks.MockBrandRepository)
	cache := newTestCache(OptionsBrands)
	svc := NewBrandService(brandRepo, cache, nil)

	brandID := uuid.New()
	brandRepo.On("Restore", mock.Anything, brandID).Return(nil)
	brandRepo.On("GetByID", mock.Anything, brandID).Return(&entity.Brand{ID: brandID, Name: "Nike"}, nil)

	// Act
	brand, err := svc.Restore(context.Background(), brandID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, brandID, brand.ID)
}

func TestBrandList_NormalizesQuery(t *testing.T) {
	// Arrange
	brandRepo := new(mocks.MockBrandRepository)
	svc := NewBrandService(brandRepo, nil, nil)

	brandRepo.On("List", mock.Anything, mock.MatchedBy(func(q entity.BrandListQuery) bool {
		return q.Page == 1 && q.PerPage == entity.DefaultPerPage && q.Direction == "asc"
	})).Return(nil, int64(0), nil)

	// Act
	page, err := svc.List(context.Background(), entity.BrandListQuery{})

	// Assert
	require.NoError(t, err)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
	assert.Equal(t, 1, page.Page)
}

func TestBrandList_RepositoryError(t *testing.T) {
	// Arrange
	brandRepo := new(mocks.MockBrandRepository)
	svc := NewBrandService(brandRepo, nil, nil)

	brandRepo.On("List", mock.Anything, mock.Anything).Return(nil, int64(0), errors.New("connection refused"))

	// Act
	_, err := svc.List(context.Background(), entity.BrandListQuery{})

	// Assert
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list brands")
}
