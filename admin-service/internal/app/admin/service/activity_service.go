package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shopadmin/admin-service/internal/app/admin/entity"
	"shopadmin/admin-service/internal/app/admin/infrastructure"
	"shopadmin/admin-service/internal/app/admin/repository"
	"shopadmin/pkg/logger"
	"shopadmin/pkg/metrics"

	"github.com/google/uuid"
)

// Ресурсы журнала действий
const (
	ResourceBrand    = "brand"
	ResourceCategory = "category"
	ResourceProduct  = "product"
	ResourceCustomer = "customer"
	ResourceOrder    = "order"
)

type actorKey struct{}

// WithActor сохраняет ID администратора в контексте запроса
func WithActor(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorKey{}, actorID)
}

func actorFromContext(ctx context.Context) string {
	if actor, ok := ctx.Value(actorKey{}).(string); ok {
		return actor
	}
	return ""
}

// ActivityService пишет журнал действий в MongoDB и доменные события в Kafka.
// Оба канала побочные: ошибки логируются и не прерывают операцию.
// Любая из зависимостей может быть nil.
type ActivityService struct {
	activityRepo  repository.ActivityRepository
	kafkaProducer infrastructure.MessagePublisher
}

func NewActivityService(activityRepo repository.ActivityRepository, kafkaProducer infrastructure.MessagePublisher) *ActivityService {
	return &ActivityService{
		activityRepo:  activityRepo,
		kafkaProducer: kafkaProducer,
	}
}

// Record добавляет запись в журнал действий
func (s *ActivityService) Record(ctx context.Context, resource string, id uuid.UUID, action entity.ActivityAction, summary string) {
	if s == nil || s.activityRepo == nil {
		return
	}

	entry := &entity.ActivityEntry{
		Resource:   resource,
		ResourceID: id.String(),
		Action:     action,
		Summary:    summary,
		ActorID:    actorFromContext(ctx),
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.activityRepo.Append(ctx, entry); err != nil {
		metrics.ActivityLogErrors.Inc()
		logger.FromContext(ctx).Warn().
			Err(err).
			Str("resource", resource).
			Str("resource_id", entry.ResourceID).
			Msg("Failed to write activity entry")
	}
}

// Publish отправляет событие в Kafka с ключом = ID сущности для партиционирования
func (s *ActivityService) Publish(ctx context.Context, key uuid.UUID, event interface{}) {
	if s == nil || s.kafkaProducer == nil {
		return
	}

	if err := s.publish(ctx, key.String(), event); err != nil {
		logger.FromContext(ctx).Warn().
			Err(err).
			Str("key", key.String()).
			Msg("Failed to publish domain event")
	}
}

func (s *ActivityService) publish(ctx context.Context, key string, event interface{}) error {
	eventData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := s.kafkaProducer.PublishMessage(ctx, key, eventData); err != nil {
		return fmt.Errorf("failed to publish to kafka: %w", err)
	}

	return nil
}

// Recent последние записи журнала
func (s *ActivityService) Recent(ctx context.Context, query entity.ActivityQuery) ([]entity.ActivityEntry, error) {
	if s == nil || s.activityRepo == nil {
		return nil, ErrActivityUnavailable
	}

	entries, err := s.activityRepo.Recent(ctx, query.Resource, query.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	return entries, nil
}
