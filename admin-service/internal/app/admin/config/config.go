package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит все настройки Admin Service
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	MongoDB   MongoDBConfig
	JWT       JWTConfig
	Dashboard DashboardConfig
	Log       LogConfig
}

// ServerConfig - настройки HTTP сервера
type ServerConfig struct {
	Host            string
	Port            string
	ShutdownTimeout time.Duration
}

// DatabaseConfig - настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	LogLevel string // Уровень логгера GORM: silent, error, warn, info
}

// RedisConfig - кеш опций select-полей
type RedisConfig struct {
	Host       string
	Port       string
	Password   string
	DB         int
	OptionsTTL time.Duration
}

// KafkaConfig - доменные события товаров и заказов
type KafkaConfig struct {
	Enabled bool
	Brokers []string
	Topic   string
}

// MongoDBConfig - журнал действий администраторов
type MongoDBConfig struct {
	Enabled  bool
	URI      string
	Database string
}

// JWTConfig - токены выпускает сервис авторизации, секрет должен совпадать
type JWTConfig struct {
	Secret string
}

// DashboardConfig - опрос дашборда клиентом и обновление метрик
type DashboardConfig struct {
	PollingInterval time.Duration // Отдаётся клиенту в ответах stats/badges
	MetricsSchedule string        // Расписание cron для gauge-метрик
}

type LogConfig struct {
	Level        string
	LogstashAddr string
}

// Load загружает конфигурацию из переменных окружения.
// Файл .env необязателен, уже заданные переменные он не перекрывает.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	optionsTTL, err := getEnvDuration("OPTIONS_CACHE_TTL", 10*time.Minute)
	if err != nil {
		return nil, err
	}
	pollingInterval, err := getEnvDuration("DASHBOARD_POLLING_INTERVAL", 15*time.Second)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	kafkaEnabled, err := getEnvBool("KAFKA_ENABLED", true)
	if err != nil {
		return nil, err
	}
	mongoEnabled, err := getEnvBool("ACTIVITY_LOG_ENABLED", true)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnv("SERVER_PORT", "8085"),
			ShutdownTimeout: shutdownTimeout,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "shop_admin"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			LogLevel: getEnv("DB_LOG_LEVEL", "warn"),
		},
		Redis: RedisConfig{
			Host:       getEnv("REDIS_HOST", "localhost"),
			Port:       getEnv("REDIS_PORT", "6379"),
			Password:   getEnv("REDIS_PASSWORD", ""),
			DB:         redisDB,
			OptionsTTL: optionsTTL,
		},
		Kafka: KafkaConfig{
			Enabled: kafkaEnabled,
			Brokers: splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
			Topic:   getEnv("KAFKA_TOPIC", "admin_events"),
		},
		MongoDB: MongoDBConfig{
			Enabled:  mongoEnabled,
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DATABASE", "shop_admin"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key-change-this-in-production"),
		},
		Dashboard: DashboardConfig{
			PollingInterval: pollingInterval,
			MetricsSchedule: getEnv("DASHBOARD_METRICS_SCHEDULE", "@every 15s"),
		},
		Log: LogConfig{
			Level:        getEnv("LOG_LEVEL", "info"),
			LogstashAddr: getEnv("LOGSTASH_ADDR", ""),
		},
	}, nil
}

// DSN возвращает строку подключения к PostgreSQL в формате libpq
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func (c *RedisConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return parsed, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return parsed, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return parsed, nil
}

// splitList "a:9092, b:9092" -> [a:9092 b:9092]
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
