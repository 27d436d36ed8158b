package repository

import (
	"errors"
	"fmt"
	"time"

	"shopadmin/admin-service/internal/app/admin/entity"
	"shopadmin/pkg/metrics"

	"gorm.io/gorm"
)

// Migrate создает и обновляет схему PostgreSQL по GORM моделям
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entity.Brand{},
		&entity.Category{},
		&entity.Product{},
		&entity.Customer{},
		&entity.Order{},
		&entity.OrderItem{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

const metricsStartKey = "metrics:start"

// RegisterMetricsCallbacks вешает на GORM замер длительности запросов
// в db_query_duration_seconds и db_errors_total
func RegisterMetricsCallbacks(db *gorm.DB, service string) error {
	before := func(tx *gorm.DB) {
		tx.InstanceSet(metricsStartKey, time.Now())
	}

	after := func(op metrics.DbOperation) func(tx *gorm.DB) {
		return func(tx *gorm.DB) {
			value, ok := tx.InstanceGet(metricsStartKey)
			if !ok {
				return
			}
			start, ok := value.(time.Time)
			if !ok {
				return
			}

			err := tx.Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				err = nil
			}
			metrics.ObserveDbQuery(service, op, tx.Statement.Table, start, err)
		}
	}

	cb := db.Callback()

	if err := cb.Create().Before("gorm:create").Register("metrics:before_create", before); err != nil {
		return err
	}
	if err := cb.Create().After("gorm:create").Register("metrics:after_create", after(metrics.DbOpInsert)); err != nil {
		return err
	}
	if err := cb.Query().Before("gorm:query").Register("metrics:before_query", before); err != nil {
		return err
	}
	if err := cb.Query().After("gorm:query").Register("metrics:after_query", after(metrics.DbOpSelect)); err != nil {
		return err
	}
	if err := cb.Row().Before("gorm:row").Register("metrics:before_row", before); err != nil {
		return err
	}
	if err := cb.Row().After("gorm:row").Register("metrics:after_row", after(metrics.DbOpSelect)); err != nil {
		return err
	}
	if err := cb.Update().Before("gorm:update").Register("metrics:before_update", before); err != nil {
		return err
	}
	if err := cb.Update().After("gorm:update").Register("metrics:after_update", after(metrics.DbOpUpdate)); err != nil {
		return err
	}
	if err := cb.Delete().Before("gorm:delete").Register("metrics:before_delete", before); err != nil {
		return err
	}
	if err := cb.Delete().After("gorm:delete").Register("metrics:after_delete", after(metrics.DbOpDelete)); err != nil {
		return err
	}

	return nil
}
