package repository

import (
	"context"
	"regexp"
	"testing"

	"shopadmin/admin-service/internal/app/admin/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestCustomerRepository_Count(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()
	repo := NewCustomerRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "customers" WHERE "customers"."deleted_at" IS NULL`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

	count, err := repo.Count(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(25), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepository_Create_DuplicateEmail(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()
	repo := NewCustomerRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "customers"`)).
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &entity.Customer{
		ID:    uuid.New(),
		Name:  "Jane Doe",
		Email: "jane@example.com",
	})

	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerRepository_GetByID_NotFound(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()
	repo := NewCustomerRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "customers" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}))

	customer, err := repo.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrCustomerNotFound)
	assert.Nil(t, customer)
}

func TestCustomerRepository_Update_NotFound(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()
	repo := NewCustomerRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "customers" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), &entity.Customer{ID: uuid.New(), Name: "Ghost", Email: "ghost@example.com"})

	assert.ErrorIs(t, err, ErrCustomerNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_Count(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()
	repo := NewProductRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "products" WHERE "products"."deleted_at" IS NULL`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(40))

	count, err := repo.Count(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(40), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryRepository_GetParentID(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()
	repo := NewCategoryRepository(db)

	childID, parentID := uuid.New(), uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id","parent_id" FROM "categories" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "parent_id"}).AddRow(childID.String(), parentID.String()))

	got, err := repo.GetParentID(context.Background(), childID)

	assert.NoError(t, err)
	if assert.NotNil(t, got) {
		assert.Equal(t, parentID, *got)
	}
}

func TestCategoryRepository_GetParentID_Root(t *testing.T) {
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()
	repo := NewCategoryRepository(db)

	rootID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id","parent_id" FROM "categories"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "parent_id"}).AddRow(rootID.String(), nil))

	got, err := repo.GetParentID(context.Background(), rootID)

	assert.NoError(t, err)
	assert.Nil(t, got)
}
