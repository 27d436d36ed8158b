package infrastructure

import (
	"context"
	"time"

	"shopadmin/admin-service/internal/app/admin/entity"
)

// MessagePublisher интерфейс для отправки доменных событий (Kafka)
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}

// OptionsCache кеш списков опций для select-полей форм (Redis)
// resource: brands, categories, products, customers
type OptionsCache interface {
	// GetOptions возвращает found=false при промахе кеша
	GetOptions(ctx context.Context, resource string) ([]entity.Option, bool, error)
	SetOptions(ctx context.Context, resource string, options []entity.Option, ttl time.Duration) error
	Invalidate(ctx context.Context, resource string) error
	Close() error
}
