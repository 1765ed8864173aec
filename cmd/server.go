package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelReservationHandler "github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers/get_available_slots"
	getReservationHandler "github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers/get_reservation"
	getRestaurantHandler "github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers/get_restaurant"
	getRestaurantReservationsHandler "github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers/get_restaurant_reservations"
	getRestaurantTablesHandler "github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers/get_restaurant_tables"
	getUserReservationsHandler "github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers/get_user_reservations"
	searchRestaurantsHandler "github.com/m04kA/SMC-RestaurantBooking/internal/api/handlers/search_restaurants"
	"github.com/m04kA/SMC-RestaurantBooking/internal/api/middleware"
	"github.com/m04kA/SMC-RestaurantBooking/internal/config"
	reservationRepo "github.com/m04kA/SMC-RestaurantBooking/internal/infra/storage/reservation"
	restaurantRepo "github.com/m04kA/SMC-RestaurantBooking/internal/infra/storage/restaurant"
	notificationServiceClient "github.com/m04kA/SMC-RestaurantBooking/internal/integrations/notificationservice"
	availabilityService "github.com/m04kA/SMC-RestaurantBooking/internal/service/availability"
	ledgerService "github.com/m04kA/SMC-RestaurantBooking/internal/service/ledger"
	reservationsService "github.com/m04kA/SMC-RestaurantBooking/internal/service/reservations"
	restaurantsService "github.com/m04kA/SMC-RestaurantBooking/internal/service/restaurants"
	createReservationUC "github.com/m04kA/SMC-RestaurantBooking/internal/usecase/create_reservation"
	getAvailableSlotsUC "github.com/m04kA/SMC-RestaurantBooking/internal/usecase/get_available_slots"
	searchRestaurantsUC "github.com/m04kA/SMC-RestaurantBooking/internal/usecase/search_restaurants"
	"github.com/m04kA/SMC-RestaurantBooking/migrations"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/logger"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/metrics"
	"github.com/m04kA/SMC-RestaurantBooking/pkg/txmanager"
)

// app общие зависимости обеих команд
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	sqlDB   *sql.DB
	db      *dbmetrics.DB
	metrics *metrics.Metrics
	stopCh  chan struct{}
}

func bootstrap(configPath string) (*app, error) {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log.Info("Configuration loaded from %s", configPath)

	// Подключаемся к базе данных
	sqlDB, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Настраиваем connection pool
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		log.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	a := &app{
		cfg:    cfg,
		log:    log,
		sqlDB:  sqlDB,
		stopCh: make(chan struct{}),
	}

	// Метрики опциональны: без них обёртка работает как обычный *sql.DB
	if cfg.Metrics.Enabled {
		a.metrics = metrics.New(cfg.Metrics.ServiceName)
		a.db = dbmetrics.WrapWithDefault(sqlDB, a.metrics, cfg.Database.DBName, a.stopCh)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	} else {
		a.db = dbmetrics.New(sqlDB, nil)
	}

	return a, nil
}

func (a *app) close() {
	close(a.stopCh)
	if err := a.sqlDB.Close(); err != nil {
		a.log.Error("Failed to close database: %v", err)
	}
	a.log.Close()
}

func runMigrate(ctx context.Context, configPath string) error {
	a, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	defer a.close()

	return migrations.Apply(ctx, a.db, a.log)
}

func runServe(ctx context.Context, configPath string, migrate bool) error {
	a, err := bootstrap(configPath)
	if err != nil {
		return err
	}
	defer a.close()

	cfg, log := a.cfg, a.log
	log.Info("Starting SMC-RestaurantBooking...")

	if migrate {
		if err := migrations.Apply(ctx, a.db, log); err != nil {
			return err
		}
	}

	// Инициализируем интеграционных клиентов
	notificationURL := ""
	if cfg.NotificationService.Enabled {
		notificationURL = cfg.NotificationService.URL
	}
	notifier := notificationServiceClient.NewClient(
		notificationURL,
		time.Duration(cfg.NotificationService.Timeout)*time.Second,
		log.WithField("component", "notificationservice"),
	)
	log.Info("Notification client initialized (enabled=%t, url=%s)", notifier.Enabled(), notificationURL)

	// Инициализируем репозитории
	restaurantRepository := restaurantRepo.NewRepository(a.db)
	reservationRepository := reservationRepo.NewRepository(a.db)
	txMgr := txmanager.NewTransactionManager(a.db)

	// Инициализируем сервисы
	ledgerSvc := ledgerService.NewService(reservationRepository, restaurantRepository, txMgr, log)
	availabilitySvc := availabilityService.NewService(restaurantRepository, ledgerSvc, log)
	reservationsSvc := reservationsService.NewService(reservationRepository, restaurantRepository, ledgerSvc, a.metrics, log)
	restaurantsSvc := restaurantsService.NewService(restaurantRepository, reservationRepository, log)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		restaurantRepository,
		ledgerSvc,
		notifier,
		time.Duration(cfg.NotificationService.Timeout)*time.Second,
		a.metrics,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		restaurantRepository,
		availabilitySvc,
		cfg.Search.WindowMinutes,
		log,
	)
	searchRestaurantsUseCase := searchRestaurantsUC.NewUseCase(
		restaurantRepository,
		availabilitySvc,
		a.metrics,
		cfg.Search.WindowMinutes,
		cfg.Search.MaxParallel,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	searchRestaurants := searchRestaurantsHandler.NewHandler(searchRestaurantsUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationsSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationsSvc, log)
	getRestaurantReservations := getRestaurantReservationsHandler.NewHandler(reservationsSvc, log)
	getRestaurant := getRestaurantHandler.NewHandler(restaurantsSvc, log)
	getRestaurantTables := getRestaurantTablesHandler.NewHandler(restaurantsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Logging(log))

	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		log.Info("Rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(a.metrics))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Поиск ресторанов со свободными столиками (регистрируется до /restaurants/{restaurantId})
	api.HandleFunc("/restaurants/search", searchRestaurants.Handle).Methods(http.MethodGet)

	// Карточка ресторана и его столики
	api.HandleFunc("/restaurants/{restaurantId:[0-9]+}", getRestaurant.Handle).Methods(http.MethodGet)
	api.HandleFunc("/restaurants/{restaurantId:[0-9]+}/tables", getRestaurantTables.Handle).Methods(http.MethodGet)

	// Свободное время в ресторане
	api.HandleFunc("/restaurants/{restaurantId:[0-9]+}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Для владельцев ресторанов ---
	protected.HandleFunc("/restaurants/{restaurantId:[0-9]+}/reservations", getRestaurantReservations.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Ожидаем сигнал завершения или падение сервера
	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		return err
	}

	// Дожидаемся уведомлений об уже подтвержденных бронированиях
	createReservationUseCase.Wait()

	log.Info("Server stopped gracefully")
	return nil
}
