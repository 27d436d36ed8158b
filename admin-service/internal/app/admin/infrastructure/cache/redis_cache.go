package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shopadmin/admin-service/internal/app/admin/entity"
	"shopadmin/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

const optionsKeyPrefix = "options:"

// RedisCache кеширует списки опций select-полей
type RedisCache struct {
	client  *redis.Client
	service string
}

// NewRedisCache подключается к Redis и проверяет соединение
func NewRedisCache(addr, password string, db int, service string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisCacheFromClient(client, service), nil
}

// NewRedisCacheFromClient оборачивает готовый клиент (используется в тестах с miniredis)
func NewRedisCacheFromClient(client *redis.Client, service string) *RedisCache {
	return &RedisCache{client: client, service: service}
}

func optionsKey(resource string) string {
	return optionsKeyPrefix + resource
}

func (r *RedisCache) GetOptions(ctx context.Context, resource string) ([]entity.Option, bool, error) {
	timer := metrics.NewRedisTimer(r.service, metrics.RedisOpGet)
	defer timer.ObserveDuration()

	data, err := r.client.Get(ctx, optionsKey(resource)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.RecordCacheMiss(r.service, optionsKeyPrefix+resource)
			return nil, false, nil
		}
		metrics.RecordRedisError(r.service, metrics.RedisOpGet)
		return nil, false, fmt.Errorf("failed to get options from cache: %w", err)
	}

	var options []entity.Option
	if err := json.Unmarshal(data, &options); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal options: %w", err)
	}

	metrics.RecordCacheHit(r.service, optionsKeyPrefix+resource)
	return options, true, nil
}

func (r *RedisCache) SetOptions(ctx context.Context, resource string, options []entity.Option, ttl time.Duration) error {
	timer := metrics.NewRedisTimer(r.service, metrics.RedisOpSet)
	defer timer.ObserveDuration()

	if options == nil {
		options = []entity.Option{}
	}

	data, err := json.Marshal(options)
	if err != nil {
		return fmt.Errorf("failed to marshal options: %w", err)
	}

	if err := r.client.Set(ctx, optionsKey(resource), data, ttl).Err(); err != nil {
		metrics.RecordRedisError(r.service, metrics.RedisOpSet)
		return fmt.Errorf("failed to set options in cache: %w", err)
	}

	return nil
}

func (r *RedisCache) Invalidate(ctx context.Context, resource string) error {
	timer := metrics.NewRedisTimer(r.service, metrics.RedisOpDel)
	defer timer.ObserveDuration()

	if err := r.client.Del(ctx, optionsKey(resource)).Err(); err != nil {
		metrics.RecordRedisError(r.service, metrics.RedisOpDel)
		return fmt.Errorf("failed to delete options from cache: %w", err)
	}
	return nil
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
