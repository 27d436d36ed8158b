package repository

import (
	"context"
	"errors"
	"strings"

	"shopadmin/admin-service/internal/app/admin/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// pgUniqueViolation код ошибки PostgreSQL unique_violation
const pgUniqueViolation = "23505"

// translateError превращает нарушение уникальности в ErrDuplicateKey
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrDuplicateKey
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern оборачивает поисковую строку для ILIKE, экранируя спецсимволы
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(term)) + "%"
}

// paginate применяет LIMIT/OFFSET из ListQuery
func paginate(q entity.ListQuery) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(q.Offset()).Limit(q.PerPage)
	}
}

// sortBy сортирует только по колонкам из белого списка
func sortBy(q entity.ListQuery, allowed map[string]string, fallback string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		column, ok := allowed[q.Sort]
		if !ok {
			return db.Order(fallback)
		}
		direction := "ASC"
		if q.Direction == "desc" {
			direction = "DESC"
		}
		return db.Order(column + " " + direction)
	}
}

// trashed переключает выборку на мягко удалённые записи
func trashed(onlyTrashed bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !onlyTrashed {
			return db
		}
		return db.Unscoped().Where("deleted_at IS NOT NULL")
	}
}

// visibility тернарный фильтр по is_visible
func visibility(visible *bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if visible == nil {
			return db
		}
		return db.Where("is_visible = ?", *visible)
	}
}

// softDelete помечает запись удалённой через gorm.DeletedAt
func softDelete(ctx context.Context, db *gorm.DB, model interface{}, id uuid.UUID, notFound error) error {
	result := db.WithContext(ctx).Delete(model, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound
	}
	return nil
}

// bulkSoftDelete удаляет пачку записей и возвращает ID реально удалённых.
// Несуществующие и уже удалённые ID в результат не попадают.
func bulkSoftDelete(ctx context.Context, db *gorm.DB, model interface{}, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var deleted []uuid.UUID
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(model).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ?", ids).
			Pluck("id", &deleted).Error
		if err != nil || len(deleted) == 0 {
			return err
		}
		return tx.Where("id IN ?", deleted).Delete(model).Error
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// restore снимает пометку удаления
func restore(ctx context.Context, db *gorm.DB, model interface{}, id uuid.UUID, notFound error) error {
	result := db.WithContext(ctx).Unscoped().Model(model).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return notFound
	}
	return nil
}

// listOptions загружает пары id/name для выпадающих списков
func listOptions(ctx context.Context, db *gorm.DB, model interface{}) ([]entity.Option, error) {
	var opts []entity.Option
	result := db.WithContext(ctx).Model(model).
		Select("id", "name").
		Order("name ASC").
		Scan(&opts)
	if result.Error != nil {
		return nil, result.Error
	}
	return opts, nil
}
