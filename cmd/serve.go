package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	checkAvailabilityHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/check_availability"
	createReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/create_reservation"
	deleteReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/delete_reservation"
	getReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/get_reservation"
	listReservationsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/list_reservations"
	sendNotificationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/send_notification"
	settingsHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/settings"
	tablesHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/tables"
	updateReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/update_reservation"
	updateReservationStatusHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/update_reservation_status"
	validateReservationHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/validate_reservation"
	zonesHandler "github.com/m04kA/SMC-ReservationService/internal/api/handlers/zones"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationService/internal/config"
	"github.com/m04kA/SMC-ReservationService/internal/engine/admission"
	"github.com/m04kA/SMC-ReservationService/internal/engine/clock"
	"github.com/m04kA/SMC-ReservationService/internal/infra/storage/migrations"
	reservationRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/reservation"
	settingsRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/settings"
	tableRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/table"
	zoneRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/zone"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/notifier"
	reservationsService "github.com/m04kA/SMC-ReservationService/internal/service/reservations"
	settingsService "github.com/m04kA/SMC-ReservationService/internal/service/settings"
	tablesService "github.com/m04kA/SMC-ReservationService/internal/service/tables"
	zonesService "github.com/m04kA/SMC-ReservationService/internal/service/zones"
	checkAvailabilityUC "github.com/m04kA/SMC-ReservationService/internal/usecase/check_availability"
	createReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/floor"
	"github.com/m04kA/SMC-ReservationService/internal/usecase/pipeline"
	sendNotificationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/send_notification"
	updateReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/update_reservation"
	validateReservationUC "github.com/m04kA/SMC-ReservationService/internal/usecase/validate_reservation"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/logger"
	"github.com/m04kA/SMC-ReservationService/pkg/metrics"
	"github.com/m04kA/SMC-ReservationService/pkg/txmanager"
)

func newServeCommand() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP сервер",
		RunE: func(_ *cobra.Command, _ []string) error {
			return serve(migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "применить схему БД перед запуском")

	return cmd
}

func serve(migrate bool) error {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Close()

	log.Info("Starting SMC-ReservationService...")
	log.Info("Configuration loaded from %s", configPath)

	// Коллектор создается всегда, т.к. use cases и уведомления пишут в него счетчики.
	// Флаг metrics.enabled управляет эндпоинтом, HTTP middleware и статистикой пула
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})

	// Подключаемся к базе данных
	db, err := openDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	if migrate {
		if err := migrations.Migrate(context.Background(), wrappedDB); err != nil {
			return err
		}
		log.Info("Database schema applied")
	}

	// Инициализируем репозитории
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	tableRepository := tableRepo.NewRepository(wrappedDB)
	zoneRepository := zoneRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Канал доставки уведомлений
	sink, closeSink := newSink(cfg.Notifications, log)
	defer closeSink()

	workersCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher := notifier.NewDispatcher(sink, cfg.Notifications.Workers, cfg.Notifications.Buffer, log, metricsCollector)
	dispatcher.Start(workersCtx)
	log.Info("Notification dispatcher started (sink=%s, workers=%d, buffer=%d)",
		cfg.Notifications.Sink, cfg.Notifications.Workers, cfg.Notifications.Buffer)

	// Движок правил
	resolver := clock.NewResolver(&clock.RealTimeProvider{})
	validator := admission.NewValidator(resolver)
	decisions := pipeline.New(reservationRepository, tableRepository, validator)
	floorSync := floor.New(reservationRepository, tableRepository, resolver, log)

	// Инициализируем сервисы
	settingsSvc := settingsService.NewService(settingsRepository, cfg.Restaurant.Timezone, cfg.Cache.TTL(), log)
	tablesSvc := tablesService.NewService(tableRepository, zoneRepository, log)
	zonesSvc := zonesService.NewService(zoneRepository, tableRepository, txMgr, log)
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		tableRepository,
		floorSync,
		settingsSvc,
		resolver,
		dispatcher,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		floorSync,
		decisions,
		settingsSvc,
		dispatcher,
		metricsCollector,
		txMgr,
		log,
	)
	updateReservationUseCase := updateReservationUC.NewUseCase(
		reservationRepository,
		tableRepository,
		floorSync,
		decisions,
		settingsSvc,
		metricsCollector,
		txMgr,
		log,
	)
	validateReservationUseCase := validateReservationUC.NewUseCase(decisions, settingsSvc, log)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		reservationRepository,
		tableRepository,
		settingsSvc,
		resolver,
		log,
	)
	sendNotificationUseCase := sendNotificationUC.NewUseCase(
		reservationRepository,
		tableRepository,
		settingsSvc,
		dispatcher,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	validateReservation := validateReservationHandler.NewHandler(validateReservationUseCase, log)
	listReservations := listReservationsHandler.NewHandler(reservationsSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	updateReservation := updateReservationHandler.NewHandler(updateReservationUseCase, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationsSvc, log)
	deleteReservation := deleteReservationHandler.NewHandler(reservationsSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	tables := tablesHandler.NewHandler(tablesSvc, log)
	zones := zonesHandler.NewHandler(zonesSvc, log)
	settings := settingsHandler.NewHandler(settingsSvc, log)
	sendNotification := sendNotificationHandler.NewHandler(sendNotificationUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.SourceChannel(cfg.Security.DashboardToken))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Ограничение частоты для публичных операций записи
	limit := func(h http.HandlerFunc) http.Handler { return h }
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.Burst)
		limit = func(h http.HandlerFunc) http.Handler { return middleware.RateLimit(limiter)(h) }
		log.Info("Rate limit enabled: %.2f rps, burst=%d", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// --- Бронирования ---
	api.Handle("/reservations", limit(createReservation.Handle)).Methods(http.MethodPost)
	api.Handle("/reservations/validate", limit(validateReservation.Handle)).Methods(http.MethodPost)
	api.HandleFunc("/reservations", listReservations.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{id:[0-9]+}", getReservation.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{id:[0-9]+}", updateReservation.Handle).Methods(http.MethodPut)
	api.HandleFunc("/reservations/{id:[0-9]+}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/reservations/{id:[0-9]+}", deleteReservation.Handle).Methods(http.MethodDelete)

	// --- Столы ---
	api.HandleFunc("/tables/availability", checkAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/tables", tables.List).Methods(http.MethodGet)
	api.HandleFunc("/tables", tables.Create).Methods(http.MethodPost)
	api.HandleFunc("/tables/{id:[0-9]+}", tables.Get).Methods(http.MethodGet)
	api.HandleFunc("/tables/{id:[0-9]+}", tables.Update).Methods(http.MethodPut)
	api.HandleFunc("/tables/{id:[0-9]+}", tables.Delete).Methods(http.MethodDelete)

	// --- Зоны ---
	api.HandleFunc("/zones", zones.List).Methods(http.MethodGet)
	api.HandleFunc("/zones", zones.Create).Methods(http.MethodPost)
	api.HandleFunc("/zones/{id:[0-9]+}", zones.Get).Methods(http.MethodGet)
	api.HandleFunc("/zones/{id:[0-9]+}", zones.Update).Methods(http.MethodPut)
	api.HandleFunc("/zones/{id:[0-9]+}", zones.Delete).Methods(http.MethodDelete)

	// --- Настройки и уведомления ---
	api.HandleFunc("/settings", settings.Get).Methods(http.MethodGet)
	api.HandleFunc("/settings", settings.Update).Methods(http.MethodPut)
	api.HandleFunc("/notifications/email", sendNotification.Handle).Methods(http.MethodPost)

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
	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		log.Error("Server failed: %v", err)
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Уведомления, которые не успели уйти, теряются
	stopWorkers()
	dispatcher.Wait()

	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
	return nil
}

// newSink выбирает канал доставки уведомлений по конфигурации
func newSink(cfg config.NotificationsConfig, log *logger.Logger) (notifier.Sink, func()) {
	switch cfg.Sink {
	case config.SinkRabbitMQ:
		publisher := notifier.NewRabbitPublisher(cfg.RabbitMQURL, cfg.Queue, log)
		return publisher, func() {
			if err := publisher.Close(); err != nil {
				log.Error("Failed to close RabbitMQ publisher: %v", err)
			}
		}
	case config.SinkWebhook:
		return notifier.NewWebhookSink(cfg.WebhookURL, cfg.Timeout(), log), func() {}
	default:
		return notifier.NewLogSink(log), func() {}
	}
}
