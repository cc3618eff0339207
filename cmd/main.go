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
	"github.com/rs/cors"

	cancelBookingHandler "github.com/m04kA/SMC-SlotScheduler/internal/api/handlers/cancel_booking"
	closeSlotHandler "github.com/m04kA/SMC-SlotScheduler/internal/api/handlers/close_slot"
	createBatchBookingHandler "github.com/m04kA/SMC-SlotScheduler/internal/api/handlers/create_batch_booking"
	createBookingHandler "github.com/m04kA/SMC-SlotScheduler/internal/api/handlers/create_booking"
	getScheduleHandler "github.com/m04kA/SMC-SlotScheduler/internal/api/handlers/get_schedule"
	getSettingsHandler "github.com/m04kA/SMC-SlotScheduler/internal/api/handlers/get_settings"
	getSlotTemplateHandler "github.com/m04kA/SMC-SlotScheduler/internal/api/handlers/get_slot_template"
	getUserBookingsHandler "github.com/m04kA/SMC-SlotScheduler/internal/api/handlers/get_user_bookings"
	getUserPointsHandler "github.com/m04kA/SMC-SlotScheduler/internal/api/handlers/get_user_points"
	updateSettingsHandler "github.com/m04kA/SMC-SlotScheduler/internal/api/handlers/update_settings"
	updateUserPointsHandler "github.com/m04kA/SMC-SlotScheduler/internal/api/handlers/update_user_points"
	"github.com/m04kA/SMC-SlotScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-SlotScheduler/internal/auth"
	"github.com/m04kA/SMC-SlotScheduler/internal/config"
	"github.com/m04kA/SMC-SlotScheduler/internal/infra/migrations"
	bookingRepo "github.com/m04kA/SMC-SlotScheduler/internal/infra/storage/booking"
	settingsRepo "github.com/m04kA/SMC-SlotScheduler/internal/infra/storage/settings"
	userRepo "github.com/m04kA/SMC-SlotScheduler/internal/infra/storage/user"
	"github.com/m04kA/SMC-SlotScheduler/internal/integrations/events"
	bookingsService "github.com/m04kA/SMC-SlotScheduler/internal/service/bookings"
	"github.com/m04kA/SMC-SlotScheduler/internal/service/dailylimit"
	settingsService "github.com/m04kA/SMC-SlotScheduler/internal/service/settings"
	usersService "github.com/m04kA/SMC-SlotScheduler/internal/service/users"
	usersModels "github.com/m04kA/SMC-SlotScheduler/internal/service/users/models"
	createBatchBookingUC "github.com/m04kA/SMC-SlotScheduler/internal/usecase/create_batch_booking"
	createBookingUC "github.com/m04kA/SMC-SlotScheduler/internal/usecase/create_booking"
	getScheduleUC "github.com/m04kA/SMC-SlotScheduler/internal/usecase/get_schedule"
	getSlotTemplateUC "github.com/m04kA/SMC-SlotScheduler/internal/usecase/get_slot_template"
	"github.com/m04kA/SMC-SlotScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-SlotScheduler/pkg/logger"
	"github.com/m04kA/SMC-SlotScheduler/pkg/metrics"
	"github.com/m04kA/SMC-SlotScheduler/pkg/txmanager"
)

// eventPublisher общий интерфейс Kafka и no-op публикаторов
type eventPublisher interface {
	bookingsService.EventPublisher
	Close() error
}

func main() {
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-SlotScheduler...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Schedule.Location()
	if err != nil {
		log.Fatal("Failed to load schedule timezone: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopCh := make(chan struct{})

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

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Применяем миграции
	migrator, err := migrations.NewMigrator(db, log)
	if err != nil {
		log.Fatal("Failed to init migrator: %v", err)
	}
	if err := migrator.Run(context.Background()); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}

	// Без метрик обёртка только проксирует запросы
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)

	// Публикация событий
	var publisher eventPublisher = events.NopPublisher{}
	if cfg.Kafka.Enabled {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		log.Info("Kafka publisher enabled (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	defer publisher.Close()

	// Сервисы
	limitGuard := dailylimit.NewGuard(bookingRepository, log)
	settingsSvc := settingsService.NewService(settingsRepository, location, log)
	bookingSvc := bookingsService.NewService(bookingRepository, settingsRepository, userRepository, publisher, txMgr, location, log)
	userSvc := usersService.NewService(userRepository, auth.HashPassword, log)

	// Начальные данные
	bootstrapCtx, cancelBootstrap := context.WithTimeout(context.Background(), 30*time.Second)
	if err := settingsSvc.Bootstrap(bootstrapCtx); err != nil {
		log.Fatal("Failed to bootstrap settings: %v", err)
	}
	if err := userSvc.BootstrapAdmin(bootstrapCtx, usersModels.AdminAccount{
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
		Name:     cfg.Admin.Name,
		Surname:  cfg.Admin.Surname,
	}); err != nil {
		log.Fatal("Failed to bootstrap admin: %v", err)
	}
	cancelBootstrap()

	// Use cases
	getScheduleUseCase := getScheduleUC.NewUseCase(bookingRepository, settingsRepository, location, log)
	getSlotTemplateUseCase := getSlotTemplateUC.NewUseCase(settingsRepository, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		settingsRepository,
		userRepository,
		limitGuard,
		publisher,
		txMgr,
		location,
		log,
	)
	createBatchBookingUseCase := createBatchBookingUC.NewUseCase(
		bookingRepository,
		settingsRepository,
		userRepository,
		limitGuard,
		publisher,
		txMgr,
		location,
		log,
	)

	// Handlers
	getSchedule := getScheduleHandler.NewHandler(getScheduleUseCase, log)
	getSlotTemplate := getSlotTemplateHandler.NewHandler(getSlotTemplateUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	createBatchBooking := createBatchBookingHandler.NewHandler(createBatchBookingUseCase, log)
	closeSlot := closeSlotHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getUserPoints := getUserPointsHandler.NewHandler(userSvc, log)
	updateUserPoints := updateUserPointsHandler.NewHandler(userSvc, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// ============================================================
	// API (все маршруты требуют токен)
	// ============================================================

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth(cfg.Auth.JWTSecret))

	// --- Расписание ---
	api.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodGet)
	api.HandleFunc("/schedule/template", getSlotTemplate.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	bookingWrites := api.PathPrefix("/bookings").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		go limiter.RunCleanup(time.Minute, 10*time.Minute, stopCh)
		bookingWrites.Use(middleware.RateLimit(limiter))
		log.Info("Rate limit enabled for bookings (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	bookingWrites.HandleFunc("", createBooking.Handle).Methods(http.MethodPost)
	bookingWrites.HandleFunc("/batch", createBatchBooking.Handle).Methods(http.MethodPost)
	bookingWrites.Handle("/close", middleware.RequireAdmin(http.HandlerFunc(closeSlot.Handle))).Methods(http.MethodPost)
	bookingWrites.HandleFunc("/{unix:[0-9]+}", cancelBooking.Handle).Methods(http.MethodDelete)

	// --- Пользователи ---
	api.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/users/{userId}/points", getUserPoints.Handle).Methods(http.MethodGet)
	api.Handle("/users/{userId}/points",
		middleware.RequireAdmin(http.HandlerFunc(updateUserPoints.Handle))).Methods(http.MethodPut)

	// --- Настройки (только администратор) ---
	adminOnly := api.PathPrefix("/settings").Subrouter()
	adminOnly.Use(middleware.RequireAdmin)
	adminOnly.HandleFunc("", getSettings.Handle).Methods(http.MethodGet)
	adminOnly.HandleFunc("", updateSettings.Handle).Methods(http.MethodPut)

	// CORS
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "x-auth-token"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
	}).Handler(r)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор статистики пула и очистку лимитера
	close(stopCh)

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
