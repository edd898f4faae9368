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

	createAppointmentHandler "github.com/m04kA/CWS-BookingService/internal/api/handlers/create_appointment"
	createBlockHandler "github.com/m04kA/CWS-BookingService/internal/api/handlers/create_block"
	deleteBlockHandler "github.com/m04kA/CWS-BookingService/internal/api/handlers/delete_block"
	getAvailableSlotsHandler "github.com/m04kA/CWS-BookingService/internal/api/handlers/get_available_slots"
	getCustomerHandler "github.com/m04kA/CWS-BookingService/internal/api/handlers/get_customer"
	listAppointmentsHandler "github.com/m04kA/CWS-BookingService/internal/api/handlers/list_appointments"
	listBlocksHandler "github.com/m04kA/CWS-BookingService/internal/api/handlers/list_blocks"
	loginCustomerHandler "github.com/m04kA/CWS-BookingService/internal/api/handlers/login_customer"
	registerCustomerHandler "github.com/m04kA/CWS-BookingService/internal/api/handlers/register_customer"
	updateStatusHandler "github.com/m04kA/CWS-BookingService/internal/api/handlers/update_appointment_status"
	"github.com/m04kA/CWS-BookingService/internal/api/middleware"
	"github.com/m04kA/CWS-BookingService/internal/config"
	apptRepo "github.com/m04kA/CWS-BookingService/internal/infra/storage/appointment"
	blockRepo "github.com/m04kA/CWS-BookingService/internal/infra/storage/block"
	customerRepo "github.com/m04kA/CWS-BookingService/internal/infra/storage/customer"
	appointmentsService "github.com/m04kA/CWS-BookingService/internal/service/appointments"
	blocksService "github.com/m04kA/CWS-BookingService/internal/service/blocks"
	customersService "github.com/m04kA/CWS-BookingService/internal/service/customers"
	createAppointmentUC "github.com/m04kA/CWS-BookingService/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/CWS-BookingService/internal/usecase/get_available_slots"
	"github.com/m04kA/CWS-BookingService/pkg/dbmetrics"
	"github.com/m04kA/CWS-BookingService/pkg/logger"
	"github.com/m04kA/CWS-BookingService/pkg/metrics"
	"github.com/m04kA/CWS-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/CWS-BookingService/pkg/txmanager"
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

	log.Info("Starting CWS-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Недельное расписание и каталог услуг провалидированы в Load
	schedule, err := cfg.WeekSchedule()
	if err != nil {
		log.Fatal("Failed to build week schedule: %v", err)
	}
	catalog, err := cfg.ServiceCatalog()
	if err != nil {
		log.Fatal("Failed to build service catalog: %v", err)
	}
	log.Info("Service catalog loaded: %d services", len(catalog))

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetimeDuration())

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *apptRepo.Repository
		blockRepository       *blockRepo.Repository
		customerRepository    *customerRepo.Repository
	)

	// Интерфейс transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = apptRepo.NewRepository(wrappedDB)
		blockRepository = blockRepo.NewRepository(wrappedDB)
		customerRepository = customerRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = apptRepo.NewRepository(db)
		blockRepository = blockRepo.NewRepository(db)
		customerRepository = customerRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		customerRepository,
		txMgr,
		catalog,
		log,
	)
	blockSvc := blocksService.NewService(
		blockRepository,
		customerRepository,
		log,
	)
	customerSvc := customersService.NewService(
		customerRepository,
		log,
	)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		blockRepository,
		customerRepository,
		txMgr,
		schedule,
		catalog,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		blockRepository,
		schedule,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	updateStatus := updateStatusHandler.NewHandler(appointmentSvc, log)
	listAppointments := listAppointmentsHandler.NewHandler(appointmentSvc, log)
	createBlock := createBlockHandler.NewHandler(blockSvc, log)
	deleteBlock := deleteBlockHandler.NewHandler(blockSvc, log)
	listBlocks := listBlocksHandler.NewHandler(blockSvc, log)
	registerCustomer := registerCustomerHandler.NewHandler(customerSvc, log)
	loginCustomer := loginCustomerHandler.NewHandler(customerSvc, log)
	getCustomer := getCustomerHandler.NewHandler(customerSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Регистрация и вход по номеру телефона
	api.HandleFunc("/auth/register", registerCustomer.Handle).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", loginCustomer.Handle).Methods(http.MethodPost)

	// Получение доступных слотов на дату
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Список бронирований (фильтры date, customerId)
	protected.HandleFunc("/appointments", listAppointments.Handle).Methods(http.MethodGet)

	// Переход статуса бронирования (только оператор)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateStatus.Handle).Methods(http.MethodPatch)

	// --- Блокировки слотов (только оператор) ---
	protected.HandleFunc("/blocked", createBlock.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/blocked", listBlocks.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/blocked/{blockId}", deleteBlock.Handle).Methods(http.MethodDelete)

	// --- Клиенты ---
	// Профиль клиента с состоянием лояльности
	protected.HandleFunc("/customers/{customerId}", getCustomer.Handle).Methods(http.MethodGet)

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
