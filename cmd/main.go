package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	createBookingHandler "github.com/m04kA/SMC-ChainBookingService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/SMC-ChainBookingService/internal/api/handlers/get_booking"
	"github.com/m04kA/SMC-ChainBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-ChainBookingService/internal/config"
	bookingRepo "github.com/m04kA/SMC-ChainBookingService/internal/infra/storage/booking"
	cursorRepo "github.com/m04kA/SMC-ChainBookingService/internal/infra/storage/cursor"
	"github.com/m04kA/SMC-ChainBookingService/internal/integrations/chainclient"
	"github.com/m04kA/SMC-ChainBookingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-ChainBookingService/internal/integrations/pricefeed"
	bookingsService "github.com/m04kA/SMC-ChainBookingService/internal/service/bookings"
	reconcilerService "github.com/m04kA/SMC-ChainBookingService/internal/service/reconciler"
	createBookingUC "github.com/m04kA/SMC-ChainBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ChainBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ChainBookingService/pkg/logger"
	"github.com/m04kA/SMC-ChainBookingService/pkg/metrics"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-ChainBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Кэш котировок (опциональный)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Warn("Redis unavailable, price cache disabled: %v", err)
			redisClient = nil
		} else {
			log.Info("Connected to Redis at %s", cfg.Redis.Addr)
			defer redisClient.Close()
		}
	}

	// Инициализируем интеграционных клиентов
	chainClient := chainclient.NewClient(
		cfg.Chain.URL,
		time.Duration(cfg.Chain.Timeout)*time.Second,
		log,
	)
	priceFeed := pricefeed.NewClient(
		cfg.Pricefeed.URL,
		time.Duration(cfg.Pricefeed.Timeout)*time.Second,
		redisClient,
		time.Duration(cfg.Pricefeed.CacheTTL)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (Chain=%s timeout=%ds, Pricefeed=%s timeout=%ds)",
		cfg.Chain.URL, cfg.Chain.Timeout, cfg.Pricefeed.URL, cfg.Pricefeed.Timeout)

	// Брокер уведомлений
	notifierPublisher, err := notifier.NewPublisher(cfg.AMQP.URL, log)
	if err != nil {
		log.Fatal("Failed to connect to AMQP broker: %v", err)
	}
	defer notifierPublisher.Close()
	log.Info("Connected to AMQP broker")

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		cursorRepository  *cursorRepo.Repository
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		cursorRepository = cursorRepo.NewRepository(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		cursorRepository = cursorRepo.NewRepository(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)

	// Метрики реконсилятора (интерфейс допускает nil)
	var reconcilerMetrics reconcilerService.Metrics
	if cfg.Metrics.Enabled {
		reconcilerMetrics = metricsCollector
	}

	chainReconciler := reconcilerService.NewReconciler(
		chainClient,
		bookingRepository,
		bookingSvc,
		cursorRepository,
		notifierPublisher,
		reconcilerMetrics,
		log,
		cfg.Chain.StartBlock,
		time.Duration(cfg.Chain.MaxBackoff)*time.Second,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		priceFeed,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по хэшу
	api.HandleFunc("/bookings/{bookingHash}", getBooking.Handle).Methods(http.MethodGet)

	// Запускаем реконсилятор
	reconcilerCtx, stopReconciler := context.WithCancel(context.Background())
	reconcilerDone := make(chan struct{})
	go func() {
		defer close(reconcilerDone)
		chainReconciler.Run(reconcilerCtx, time.Duration(cfg.Chain.PollInterval)*time.Second)
	}()

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем реконсилятор и дожидаемся конца текущей пачки
	stopReconciler()
	<-reconcilerDone
	log.Info("Reconciler stopped")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
