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

	adminDeleteDetailHandler "github.com/m04kA/SMC-StudySlots/internal/api/handlers/admin_delete_detail"
	adminListBookingsHandler "github.com/m04kA/SMC-StudySlots/internal/api/handlers/admin_list_bookings"
	appendDetailHandler "github.com/m04kA/SMC-StudySlots/internal/api/handlers/append_detail"
	cancelDetailHandler "github.com/m04kA/SMC-StudySlots/internal/api/handlers/cancel_detail"
	createDayBookingHandler "github.com/m04kA/SMC-StudySlots/internal/api/handlers/create_day_booking"
	getDayAvailabilityHandler "github.com/m04kA/SMC-StudySlots/internal/api/handlers/get_day_availability"
	getDayBookingHandler "github.com/m04kA/SMC-StudySlots/internal/api/handlers/get_day_booking"
	getMyDetailsHandler "github.com/m04kA/SMC-StudySlots/internal/api/handlers/get_my_details"
	healthHandler "github.com/m04kA/SMC-StudySlots/internal/api/handlers/health"
	"github.com/m04kA/SMC-StudySlots/internal/api/middleware"
	"github.com/m04kA/SMC-StudySlots/internal/config"
	"github.com/m04kA/SMC-StudySlots/internal/infra/migrations"
	dayBookingRepo "github.com/m04kA/SMC-StudySlots/internal/infra/storage/daybooking"
	"github.com/m04kA/SMC-StudySlots/internal/integrations/events"
	userServiceClient "github.com/m04kA/SMC-StudySlots/internal/integrations/userservice"
	bookingsService "github.com/m04kA/SMC-StudySlots/internal/service/bookings"
	claimSlotUC "github.com/m04kA/SMC-StudySlots/internal/usecase/claim_slot"
	getDayAvailabilityUC "github.com/m04kA/SMC-StudySlots/internal/usecase/get_day_availability"
	"github.com/m04kA/SMC-StudySlots/pkg/dbmetrics"
	"github.com/m04kA/SMC-StudySlots/pkg/logger"
	"github.com/m04kA/SMC-StudySlots/pkg/metrics"
	"github.com/m04kA/SMC-StudySlots/pkg/txmanager"
)

// publisher издатель событий, закрывается при остановке
type publisher interface {
	Publish(ctx context.Context, event events.BookingEvent) error
	Close() error
}

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-StudySlots...")
	log.Info("Configuration loaded from %s", configPath)

	// Метрики: nil коллектор безопасен, обёртки просто ничего не пишут
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
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	if err := db.PingContext(startupCtx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.MigrateOnStart {
		if err := migrations.Up(startupCtx, db, log); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(cfg.UserService.URL, cfg.UserService.TimeoutDuration(), log)
	log.Info("UserService client initialized (url=%s timeout=%ds)", cfg.UserService.URL, cfg.UserService.Timeout)

	var eventPublisher publisher = events.NopPublisher{}
	if cfg.Events.Enabled {
		kafkaPublisher, err := events.NewKafkaPublisher(cfg.Events.Brokers, cfg.Events.Topic, log)
		if err != nil {
			log.Fatal("Failed to create event publisher: %v", err)
		}
		eventPublisher = kafkaPublisher
		log.Info("Booking events published to topic=%s brokers=%v", cfg.Events.Topic, cfg.Events.Brokers)
	}
	defer eventPublisher.Close()

	// Репозитории, транзакции, сервисы
	dayBookingRepository := dayBookingRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	bookingSvc := bookingsService.NewService(dayBookingRepository, eventPublisher, metricsCollector, log)

	// Инициализируем use cases
	claimSlotUseCase := claimSlotUC.NewUseCase(
		dayBookingRepository,
		userClient,
		eventPublisher,
		metricsCollector,
		txMgr,
		log,
	)
	getDayAvailabilityUseCase := getDayAvailabilityUC.NewUseCase(dayBookingRepository, log)

	// Инициализируем handlers
	getDayBooking := getDayBookingHandler.NewHandler(bookingSvc, log)
	getDayAvailability := getDayAvailabilityHandler.NewHandler(getDayAvailabilityUseCase, log)
	createDayBooking := createDayBookingHandler.NewHandler(claimSlotUseCase, log)
	appendDetail := appendDetailHandler.NewHandler(claimSlotUseCase, log)
	getMyDetails := getMyDetailsHandler.NewHandler(bookingSvc, log)
	cancelDetail := cancelDetailHandler.NewHandler(bookingSvc, log)
	adminListBookings := adminListBookingsHandler.NewHandler(bookingSvc, log)
	adminDeleteDetail := adminDeleteDetailHandler.NewHandler(bookingSvc, log)
	health := healthHandler.NewHandler(wrappedDB, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PROTECTED ROUTES (Bearer JWT)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret, cfg.Auth.Issuer, log))

	// --- Бронирования на дату ---
	protected.HandleFunc("/bookings/date/{date}", getDayBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/date/{date}/availability", getDayAvailability.Handle).Methods(http.MethodGet)

	// --- Создание дня и добавление деталей ---
	protected.HandleFunc("/bookings", createDayBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/details", appendDetail.Handle).Methods(http.MethodPost)

	// --- Мои бронирования ---
	protected.HandleFunc("/bookings/details/my", getMyDetails.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/details/{detailId}", cancelDetail.Handle).Methods(http.MethodDelete)

	// ============================================================
	// ADMIN ROUTES (Bearer JWT + role=admin)
	// ============================================================

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminOnly)

	admin.HandleFunc("/bookings", adminListBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/details/{detailId}", adminDeleteDetail.Handle).Methods(http.MethodDelete)

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

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

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
