package metrics

import (
	"time"
)

type RedisOperation string

const (
	RedisOpGet RedisOperation = "get"
	RedisOpSet RedisOperation = "set"
	RedisOpDel RedisOperation = "del"
)

type RedisTimer struct {
	service   string
	operation RedisOperation
	start     time.Time
}

func NewRedisTimer(service string, op RedisOperation) *RedisTimer {
	return &RedisTimer{
		service:   service,
		operation: op,
		start:     time.Now(),
	}
}

func (rt *RedisTimer) ObserveDuration() {
	RedisOperationDuration.WithLabelValues(rt.service, string(rt.operation)).Observe(time.Since(rt.start).Seconds())
}

func RecordCacheHit(service, keyPrefix string) {
	RedisCacheHits.WithLabelValues(service, keyPrefix).Inc()
}

func RecordCacheMiss(service, keyPrefix string) {
	RedisCacheMisses.WithLabelValues(service, keyPrefix).Inc()
}

func RecordRedisError(service string, op RedisOperation) {
	RedisErrors.WithLabelValues(service, string(op)).Inc()
}

// KafkaProduceTimer измеряет отправку одного сообщения
type KafkaProduceTimer struct {
	service string
	topic   string
	start   time.Time
}

func NewKafkaProduceTimer(service, topic string) *KafkaProduceTimer {
	return &KafkaProduceTimer{
		service: service,
		topic:   topic,
		start:   time.Now(),
	}
}

func (kt *KafkaProduceTimer) Success() {
	KafkaMessagesProduced.WithLabelValues(kt.service, kt.topic).Inc()
	KafkaProduceDuration.WithLabelValues(kt.service, kt.topic).Observe(time.Since(kt.start).Seconds())
}

func (kt *KafkaProduceTimer) Error() {
	KafkaErrors.WithLabelValues(kt.service, kt.topic, "produce").Inc()
}

type DbOperation string

const (
	DbOpSelect DbOperation = "select"
	DbOpInsert DbOperation = "insert"
	DbOpUpdate DbOperation = "update"
	DbOpDelete DbOperation = "delete"
)

// ObserveDbQuery фиксирует длительность запроса и ошибку, если она была
func ObserveDbQuery(service string, op DbOperation, table string, start time.Time, err error) {
	DbQueryDuration.WithLabelValues(service, string(op), table).Observe(time.Since(start).Seconds())
	if err != nil {
		DbErrors.WithLabelValues(service, string(op)).Inc()
	}
}

// SetOrdersByStatus выставляет gauge по всем известным статусам,
// отсутствующие в выборке статусы обнуляются
func SetOrdersByStatus(counts map[string]int64, statuses []string) {
	for _, status := range statuses {
		OrdersByStatus.WithLabelValues(status).Set(float64(counts[status]))
	}
}
