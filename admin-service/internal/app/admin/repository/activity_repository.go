package repository

import (
	"context"
	"fmt"
	"time"

	"shopadmin/admin-service/internal/app/admin/entity"

	"shopadmin/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	activityCollection  = "activity_log"
	defaultActivityPage = 50
)

type activityRepository struct {
	collection *mongo.Collection
}

// NewActivityRepository создает журнал действий в MongoDB
// Автоматически создает индекс (resource, created_at) для ленты по ресурсу
func NewActivityRepository(db *mongo.Database) ActivityRepository {
	collection := db.Collection(activityCollection)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "resource", Value: 1},
			{Key: "created_at", Value: -1},
		},
		Options: options.Index().SetName("resource_created_at_idx"),
	}

	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		// Индекс может уже существовать, журнал работает и без него
		logger.Warn().Err(err).Msg("Failed to create activity log index")
	}

	return &activityRepository{collection: collection}
}

// Append добавляет запись в журнал
func (r *activityRepository) Append(ctx context.Context, entry *entity.ActivityEntry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to append activity entry: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		entry.ID = oid
	}

	return nil
}

// Recent последние записи журнала, новые первыми
// Пустой resource - лента по всем ресурсам
func (r *activityRepository) Recent(ctx context.Context, resource string, limit int) ([]entity.ActivityEntry, error) {
	if limit <= 0 {
		limit = defaultActivityPage
	}

	filter := bson.M{}
	if resource != "" {
		filter["resource"] = resource
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find activity entries: %w", err)
	}
	defer cursor.Close(ctx)

	entries := make([]entity.ActivityEntry, 0, limit)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode activity entries: %w", err)
	}

	return entries, nil
}
