package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"shopadmin/admin-service/internal/app/admin/config"
	"shopadmin/admin-service/internal/app/admin/handler"
	"shopadmin/admin-service/internal/app/admin/infrastructure"
	"shopadmin/admin-service/internal/app/admin/infrastructure/cache"
	"shopadmin/admin-service/internal/app/admin/infrastructure/messaging"
	"shopadmin/admin-service/internal/app/admin/processor"
	"shopadmin/admin-service/internal/app/admin/repository"
	"shopadmin/admin-service/internal/app/admin/seeder"
	"shopadmin/admin-service/internal/app/admin/service"
	"shopadmin/pkg/logger"
)

const serviceName = "admin-service"

func main() {
	cmd := &cli.Command{
		Name:   serviceName,
		Usage:  "Shop admin back-office API",
		Action: runServe,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Start HTTP API (default)",
				Action: runServe,
			},
			{
				Name:   "migrate",
				Usage:  "Run database migration",
				Action: runMigrate,
			},
			{
				Name:  "seed",
				Usage: "Fill database with fake catalog, customers and orders",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "brands", Usage: "number of brands"},
					&cli.IntFlag{Name: "categories", Usage: "number of categories"},
					&cli.IntFlag{Name: "products", Usage: "number of products"},
					&cli.IntFlag{Name: "customers", Usage: "number of customers"},
					&cli.IntFlag{Name: "orders", Usage: "number of orders"},
				},
				Action: runSeed,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", serviceName, err)
		os.Exit(1)
	}
}

// bootstrap общая инициализация для всех команд: конфиг, логгер, PostgreSQL
func bootstrap() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(serviceName, cfg.Log.Level)
	if cfg.Log.LogstashAddr != "" {
		if err := logger.InitLogstash(cfg.Log.LogstashAddr, serviceName, cfg.Log.Level); err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		} else {
			logger.Info().Str("logstash_addr", cfg.Log.LogstashAddr).Msg("Connected to Logstash")
		}
	}

	db, err := connectDB(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.DBName).
		Msg("Connected to PostgreSQL")

	if err := repository.RegisterMetricsCallbacks(db, serviceName); err != nil {
		logger.Warn().Err(err).Msg("Failed to register database metrics callbacks")
	}

	return cfg, db, nil
}

func runMigrate(ctx context.Context, _ *cli.Command) error {
	_, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer closeDB(db)

	if err := repository.Migrate(db); err != nil {
		return err
	}

	logger.Info().Msg("Migration complete")
	return nil
}

func runSeed(ctx context.Context, c *cli.Command) error {
	cfg, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer closeDB(db)

	if err := repository.Migrate(db); err != nil {
		return err
	}

	// Сидер работает без Redis, Kafka и журнала действий
	services := newServices(cfg, db, nil, nil, nil)
	s := seeder.New(services.brands, services.categories, services.products, services.customers, services.orders)

	_, err = s.Run(ctx, seedCounts(c))
	return err
}

// seedCounts значения по умолчанию, перекрытые заданными флагами
func seedCounts(c *cli.Command) seeder.Counts {
	counts := seeder.DefaultCounts()
	flags := map[string]*int{
		"brands":     &counts.Brands,
		"categories": &counts.Categories,
		"products":   &counts.Products,
		"customers":  &counts.Customers,
		"orders":     &counts.Orders,
	}
	for name, target := range flags {
		if c.IsSet(name) {
			*target = int(c.Int(name))
		}
	}
	return counts
}

func runServe(ctx context.Context, _ *cli.Command) error {
	cfg, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer closeDB(db)

	// === REDIS: кеш опций select-полей ===
	optionsCache, err := cache.NewRedisCache(cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB, serviceName)
	if err != nil {
		return err
	}
	defer optionsCache.Close()
	logger.Info().Str("address", cfg.Redis.Address()).Msg("Connected to Redis")

	// === KAFKA: доменные события ===
	var publisher infrastructure.MessagePublisher
	if cfg.Kafka.Enabled {
		producer := messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, serviceName)
		defer producer.Close()
		publisher = producer
		logger.Info().Str("topic", cfg.Kafka.Topic).Msg("Initialized Kafka producer")
	}

	// === MONGODB: журнал действий ===
	var activityRepo repository.ActivityRepository
	if cfg.MongoDB.Enabled {
		mongoClient, err := connectMongoDB(cfg.MongoDB)
		if err != nil {
			return fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := mongoClient.Disconnect(disconnectCtx); err != nil {
				logger.Error().Err(err).Msg("Error disconnecting from MongoDB")
			}
		}()
		activityRepo = repository.NewActivityRepository(mongoClient.Database(cfg.MongoDB.Database))
		logger.Info().Str("database", cfg.MongoDB.Database).Msg("Connected to MongoDB")
	}

	services := newServices(cfg, db, optionsCache, activityRepo, publisher)

	// === CRON: gauge-метрики дашборда ===
	schedulerCtx, stopScheduler := context.WithCancel(ctx)
	defer stopScheduler()

	scheduler := processor.NewStatsScheduler(services.dashboard)
	if err := scheduler.Start(schedulerCtx, cfg.Dashboard.MetricsSchedule); err != nil {
		return fmt.Errorf("failed to start stats scheduler: %w", err)
	}
	defer scheduler.Stop()

	router := handler.SetupRoutes(
		handler.NewBrandHandler(services.brands),
		handler.NewCategoryHandler(services.categories, services.products),
		handler.NewProductHandler(services.products),
		handler.NewCustomerHandler(services.customers),
		handler.NewOrderHandler(services.orders),
		handler.NewFormHandler(services.forms),
		handler.NewDashboardHandler(services.dashboard, services.options, services.activity),
		handler.NewAuthMiddleware(cfg.JWT.Secret),
	)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second, // экспорт xlsx пишется дольше обычного ответа
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("address", cfg.Server.Address()).Msg("Starting Admin Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("failed to start server: %w", err)
	}

	logger.Info().Msg("Shutting down Admin Service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info().Msg("Admin Service stopped gracefully")
	return nil
}

type services struct {
	brands     *service.BrandService
	categories *service.CategoryService
	products   *service.ProductService
	customers  *service.CustomerService
	orders     *service.OrderService
	forms      *service.FormService
	options    *service.OptionsService
	dashboard  *service.DashboardService
	activity   *service.ActivityService
}

// newServices собирает сервисный слой; optionsCache, activityRepo и publisher могут быть nil
func newServices(
	cfg *config.Config,
	db *gorm.DB,
	optionsCache infrastructure.OptionsCache,
	activityRepo repository.ActivityRepository,
	publisher infrastructure.MessagePublisher,
) *services {
	brandRepo := repository.NewBrandRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	activity := service.NewActivityService(activityRepo, publisher)

	return &services{
		brands:     service.NewBrandService(brandRepo, optionsCache, activity),
		categories: service.NewCategoryService(categoryRepo, optionsCache, activity),
		products:   service.NewProductService(productRepo, brandRepo, categoryRepo, optionsCache, activity),
		customers:  service.NewCustomerService(customerRepo, optionsCache, activity),
		orders:     service.NewOrderService(orderRepo, customerRepo, productRepo, activity),
		forms:      service.NewFormService(productRepo),
		options:    service.NewOptionsService(optionsCache, brandRepo, categoryRepo, productRepo, customerRepo, cfg.Redis.OptionsTTL),
		dashboard:  service.NewDashboardService(customerRepo, productRepo, orderRepo, cfg.Dashboard.PollingInterval),
		activity:   activity,
	}
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// connectDB подключается к PostgreSQL через GORM
// 10 попыток с паузой: в Docker база может подняться позже сервиса
func connectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel(cfg.LogLevel)),
	}

	var db *gorm.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
		if err == nil {
			sqlDB, sqlErr := db.DB()
			if sqlErr != nil {
				err = sqlErr
			} else if pingErr := sqlDB.Ping(); pingErr != nil {
				err = pingErr
			} else {
				sqlDB.SetMaxOpenConns(25)
				sqlDB.SetMaxIdleConns(5)
				sqlDB.SetConnMaxLifetime(5 * time.Minute)
				sqlDB.SetConnMaxIdleTime(1 * time.Minute)
				return db, nil
			}
		}
		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to database, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error().Err(err).Msg("Error closing database connection")
	}
}

func connectMongoDB(cfg config.MongoDBConfig) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(cfg.URI)

	var client *mongo.Client
	var err error

	for i := 0; i < 10; i++ {
		client, err = pingMongo(clientOptions)
		if err == nil {
			return client, nil
		}

		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to MongoDB, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, err
}

func pingMongo(clientOptions *options.ClientOptions) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return client, nil
}
