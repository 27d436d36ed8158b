package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// HTTP метрики
// =============================================================================

// HttpRequestsTotal - счётчик всех HTTP запросов
// Labels: service, method, path, status
var HttpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	},
	[]string{"service", "method", "path", "status"},
)

// HttpRequestDuration - гистограмма времени ответа
var HttpRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	},
	[]string{"service", "method", "path"},
)

// HttpRequestsInFlight - текущее количество обрабатываемых запросов
var HttpRequestsInFlight = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Current number of HTTP requests being processed",
	},
	[]string{"service"},
)

// =============================================================================
// Database метрики
// =============================================================================

var DbQueryDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Duration of database queries in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	},
	[]string{"service", "operation", "table"},
)

var DbErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "db_errors_total",
		Help: "Total number of database errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Redis метрики (кеш опций для select-полей форм)
// =============================================================================

var RedisCacheHits = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_hits_total",
		Help: "Total number of Redis cache hits",
	},
	[]string{"service", "key_prefix"},
)

var RedisCacheMisses = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_cache_misses_total",
		Help: "Total number of Redis cache misses",
	},
	[]string{"service", "key_prefix"},
)

var RedisOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "redis_operation_duration_seconds",
		Help:    "Duration of Redis operations in seconds",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	},
	[]string{"service", "operation"},
)

var RedisErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "redis_errors_total",
		Help: "Total number of Redis errors",
	},
	[]string{"service", "operation"},
)

// =============================================================================
// Kafka метрики
// =============================================================================

var KafkaMessagesProduced = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_messages_produced_total",
		Help: "Total number of Kafka messages produced",
	},
	[]string{"service", "topic"},
)

var KafkaProduceDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "kafka_produce_duration_seconds",
		Help:    "Duration of Kafka produce operations",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	},
	[]string{"service", "topic"},
)

var KafkaErrors = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_errors_total",
		Help: "Total number of Kafka errors",
	},
	[]string{"service", "topic", "operation"},
)

// =============================================================================
// Бизнес метрики админки магазина
// =============================================================================

// OrdersCreated - заказы, оформленные через админку
var OrdersCreated = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "admin_orders_created_total",
		Help: "Total number of orders created from the admin panel",
	},
)

// OrderNumberCollisions - повторные генерации номера заказа из-за совпадения
var OrderNumberCollisions = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "admin_order_number_collisions_total",
		Help: "Number of generated order numbers that were already taken",
	},
)

// OrdersByStatus - количество заказов в каждом статусе
// Обновляется cron задачей, а не при каждом запросе
var OrdersByStatus = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "admin_orders_by_status",
		Help: "Number of orders by status",
	},
	[]string{"status"}, // pending, processing, completed, declined
)

var ProductsTotal = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "admin_products_total",
		Help: "Number of products in the catalog",
	},
)

var CustomersTotal = promauto.NewGauge(
	prometheus.GaugeOpts{
		Name: "admin_customers_total",
		Help: "Number of customers",
	},
)

// ActivityLogErrors - неудачные записи в журнал действий (MongoDB)
var ActivityLogErrors = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "admin_activity_log_errors_total",
		Help: "Number of activity entries that could not be stored",
	},
)
