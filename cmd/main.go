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

	acceptRequestHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/accept_request"
	createRequestHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/create_request"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_available_slots"
	getDoctorAvailabilityHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_doctor_availability"
	getDoctorRequestsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_doctor_requests"
	getPatientAppointmentsHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/get_patient_appointments"
	notificationsStreamHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/notifications_stream"
	rejectRequestHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/reject_request"
	updateDoctorAvailabilityHandler "github.com/m04kA/SMC-AppointmentService/internal/api/handlers/update_doctor_availability"
	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/config"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/infra/notifier"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	requestRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/request"
	userRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/user"
	doctorsService "github.com/m04kA/SMC-AppointmentService/internal/service/doctors"
	requestsService "github.com/m04kA/SMC-AppointmentService/internal/service/requests"
	acceptRequestUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/accept_request"
	createRequestUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_request"
	getAvailableSlotsUC "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/txmanager"
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

	log.Info("Starting SMC-AppointmentService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	// При выключенных метриках дальше передаётся nil: все методы *metrics.Metrics к этому готовы
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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	if cfg.Metrics.Enabled {
		log.Info("Database metrics collection started")
	}
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	userRepository := userRepo.NewRepository(wrappedDB)
	requestRepository := requestRepo.NewRepository(wrappedDB)
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)

	// Real-time уведомления: хаб WebSocket подключений или заглушка
	type Notifier interface {
		Notify(ctx context.Context, recipientID int64, event domain.Event)
	}
	var (
		eventNotifier Notifier = notifier.Nop{}
		hub           *notifier.Hub
	)
	if cfg.Notifications.Enabled {
		hub = notifier.NewHub(
			cfg.Notifications.SendBufferSize,
			metricsCollector,
			log,
			notifier.WithAllowedOrigins(cfg.Notifications.AllowedOrigins),
		)
		eventNotifier = hub
		log.Info("WebSocket notifications enabled (send_buffer=%d, write_timeout=%ds, allowed_origins=%v)",
			cfg.Notifications.SendBufferSize, cfg.Notifications.WriteTimeout, cfg.Notifications.AllowedOrigins)
	}

	// Инициализируем сервисы
	doctorSvc := doctorsService.NewService(userRepository, log)
	requestSvc := requestsService.NewService(requestRepository, eventNotifier, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		userRepository,
		appointmentRepository,
		txMgr,
		log,
	)

	createRequestUseCase := createRequestUC.NewUseCase(
		userRepository,
		requestRepository,
		appointmentRepository,
		eventNotifier,
		metricsCollector,
		log,
	)

	acceptRequestUseCase := acceptRequestUC.NewUseCase(
		requestRepository,
		appointmentRepository,
		txMgr,
		eventNotifier,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getDoctorAvailability := getDoctorAvailabilityHandler.NewHandler(doctorSvc, log)
	updateDoctorAvailability := updateDoctorAvailabilityHandler.NewHandler(doctorSvc, log)
	createRequest := createRequestHandler.NewHandler(createRequestUseCase, log)
	acceptRequest := acceptRequestHandler.NewHandler(acceptRequestUseCase, log)
	rejectRequest := rejectRequestHandler.NewHandler(requestSvc, log)
	getPatientAppointments := getPatientAppointmentsHandler.NewHandler(requestSvc, log)
	getDoctorRequests := getDoctorRequestsHandler.NewHandler(requestSvc, log)

	auth := middleware.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.Issuer, log)
	onlyPatients := middleware.RequireRole(domain.RolePatient)
	onlyDoctors := middleware.RequireRole(domain.RoleDoctor)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// WebSocket поток уведомлений (токен можно передать в query параметре token)
	if hub != nil {
		notificationsStream := notificationsStreamHandler.NewHandler(
			hub,
			time.Duration(cfg.Notifications.WriteTimeout)*time.Second,
			log,
		)
		r.Handle("/ws", auth.Auth(http.HandlerFunc(notificationsStream.Handle))).Methods(http.MethodGet)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты врача на дату
	api.HandleFunc("/doctors/{doctorId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Расписание врача
	api.HandleFunc("/doctors/{doctorId}/availability", getDoctorAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Authorization: Bearer <jwt>)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth.Auth)

	// --- Пациент ---
	// Создание заявки на приём
	protected.Handle("/appointment/request",
		onlyPatients(http.HandlerFunc(createRequest.Handle))).Methods(http.MethodPost)

	// История заявок пациента
	protected.Handle("/appointments",
		onlyPatients(http.HandlerFunc(getPatientAppointments.Handle))).Methods(http.MethodGet)

	// --- Врач ---
	// Подтверждение и отклонение заявки
	protected.Handle("/appointment/accept",
		onlyDoctors(http.HandlerFunc(acceptRequest.Handle))).Methods(http.MethodPost)
	protected.Handle("/appointment/reject",
		onlyDoctors(http.HandlerFunc(rejectRequest.Handle))).Methods(http.MethodPost)

	// Входящие заявки врача
	protected.Handle("/doctor/requests",
		onlyDoctors(http.HandlerFunc(getDoctorRequests.Handle))).Methods(http.MethodGet)

	// Изменение собственного расписания
	protected.Handle("/doctors/{doctorId}/availability",
		onlyDoctors(http.HandlerFunc(updateDoctorAvailability.Handle))).Methods(http.MethodPut)

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
	if cfg.Metrics.Enabled {
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	// Shutdown не ждёт hijacked соединения, WebSocket клиентов закрываем сами
	if hub != nil {
		hub.CloseAll()
		log.Info("WebSocket clients disconnected")
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
