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

	cancelBookingHandler "github.com/m04kA/MCD-BookingService/internal/api/handlers/cancel_booking"
	computeQuoteHandler "github.com/m04kA/MCD-BookingService/internal/api/handlers/compute_quote"
	createBookingHandler "github.com/m04kA/MCD-BookingService/internal/api/handlers/create_booking"
	createRescheduleHandler "github.com/m04kA/MCD-BookingService/internal/api/handlers/create_reschedule"
	getAvailableSlotsHandler "github.com/m04kA/MCD-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/MCD-BookingService/internal/api/handlers/get_booking"
	getCustomerBookingsHandler "github.com/m04kA/MCD-BookingService/internal/api/handlers/get_customer_bookings"
	getScheduleDayHandler "github.com/m04kA/MCD-BookingService/internal/api/handlers/get_schedule_day"
	listBookingsHandler "github.com/m04kA/MCD-BookingService/internal/api/handlers/list_bookings"
	listReschedulesHandler "github.com/m04kA/MCD-BookingService/internal/api/handlers/list_reschedules"
	markAsPaidHandler "github.com/m04kA/MCD-BookingService/internal/api/handlers/mark_as_paid"
	requestPaymentHandler "github.com/m04kA/MCD-BookingService/internal/api/handlers/request_payment"
	respondRescheduleHandler "github.com/m04kA/MCD-BookingService/internal/api/handlers/respond_reschedule"
	setAdminNotesHandler "github.com/m04kA/MCD-BookingService/internal/api/handlers/set_admin_notes"
	updateBookingStatusHandler "github.com/m04kA/MCD-BookingService/internal/api/handlers/update_booking_status"
	updateScheduleDayHandler "github.com/m04kA/MCD-BookingService/internal/api/handlers/update_schedule_day"
	"github.com/m04kA/MCD-BookingService/internal/api/middleware"
	"github.com/m04kA/MCD-BookingService/internal/config"
	"github.com/m04kA/MCD-BookingService/internal/domain"
	"github.com/m04kA/MCD-BookingService/internal/infra/events"
	bookingRepo "github.com/m04kA/MCD-BookingService/internal/infra/storage/booking"
	rescheduleRepo "github.com/m04kA/MCD-BookingService/internal/infra/storage/reschedule"
	scheduleRepo "github.com/m04kA/MCD-BookingService/internal/infra/storage/schedule"
	geoServiceClient "github.com/m04kA/MCD-BookingService/internal/integrations/geoservice"
	bookingsService "github.com/m04kA/MCD-BookingService/internal/service/bookings"
	scheduleService "github.com/m04kA/MCD-BookingService/internal/service/schedule"
	computeQuoteUC "github.com/m04kA/MCD-BookingService/internal/usecase/compute_quote"
	createBookingUC "github.com/m04kA/MCD-BookingService/internal/usecase/create_booking"
	createRescheduleUC "github.com/m04kA/MCD-BookingService/internal/usecase/create_reschedule"
	expireBookingsUC "github.com/m04kA/MCD-BookingService/internal/usecase/expire_bookings"
	getAvailableSlotsUC "github.com/m04kA/MCD-BookingService/internal/usecase/get_available_slots"
	listReschedulesUC "github.com/m04kA/MCD-BookingService/internal/usecase/list_reschedules"
	respondRescheduleUC "github.com/m04kA/MCD-BookingService/internal/usecase/respond_reschedule"
	"github.com/m04kA/MCD-BookingService/pkg/dbmetrics"
	"github.com/m04kA/MCD-BookingService/pkg/logger"
	"github.com/m04kA/MCD-BookingService/pkg/metrics"
	"github.com/m04kA/MCD-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/MCD-BookingService/pkg/txmanager"
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

	log.Info("Starting MCD-BookingService...")
	log.Info("Configuration loaded from config.toml")

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
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем клиента гео-сервиса
	geoClient := geoServiceClient.NewClient(
		cfg.GeoService.URL,
		time.Duration(cfg.GeoService.Timeout)*time.Second,
		log,
	)
	log.Info("GeoService client initialized (url=%s, timeout=%ds)", cfg.GeoService.URL, cfg.GeoService.Timeout)

	// Инициализируем публикатора доменных событий
	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Events.Enabled {
		rabbitPublisher, err := events.NewRabbitMQPublisher(cfg.Events.URL, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		publisher = rabbitPublisher
		log.Info("RabbitMQ event publisher initialized")
	} else {
		log.Info("Domain events disabled, using noop publisher")
	}
	defer publisher.Close()

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository    *bookingRepo.Repository
		scheduleRepository   *scheduleRepo.Repository
		rescheduleRepository *rescheduleRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		rescheduleRepository = rescheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		rescheduleRepository = rescheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Тариф выездной надбавки
	tariff := domain.TravelTariff{
		FreeRadiusMiles: cfg.Booking.FreeRadiusMiles,
		PerMileRate:     cfg.Booking.PerMileRate,
		MinSurcharge:    cfg.Booking.MinSurcharge,
		MaxSurcharge:    cfg.Booking.MaxSurcharge,
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		scheduleRepository,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		geoClient,
		txMgr,
		publisher,
		metricsCollector,
		createBookingUC.Settings{
			Tariff:                 tariff,
			PaymentDeadlineMinutes: cfg.Booking.PaymentDeadlineMinutes,
		},
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(scheduleRepository, log)
	computeQuoteUseCase := computeQuoteUC.NewUseCase(geoClient, tariff, log)
	createRescheduleUseCase := createRescheduleUC.NewUseCase(
		bookingRepository,
		rescheduleRepository,
		txMgr,
		publisher,
		log,
	)
	respondRescheduleUseCase := respondRescheduleUC.NewUseCase(
		bookingRepository,
		rescheduleRepository,
		scheduleRepository,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)
	listReschedulesUseCase := listReschedulesUC.NewUseCase(
		bookingRepository,
		rescheduleRepository,
		log,
	)
	expireBookingsUseCase := expireBookingsUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		txMgr,
		publisher,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	markAsPaid := markAsPaidHandler.NewHandler(bookingSvc, log)
	requestPayment := requestPaymentHandler.NewHandler(bookingSvc, log)
	setAdminNotes := setAdminNotesHandler.NewHandler(bookingSvc, log)
	createReschedule := createRescheduleHandler.NewHandler(createRescheduleUseCase, log)
	respondReschedule := respondRescheduleHandler.NewHandler(respondRescheduleUseCase, log)
	listReschedules := listReschedulesHandler.NewHandler(listReschedulesUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	computeQuote := computeQuoteHandler.NewHandler(computeQuoteUseCase, log)
	getScheduleDay := getScheduleDayHandler.NewHandler(scheduleSvc, log)
	updateScheduleDay := updateScheduleDayHandler.NewHandler(scheduleSvc, log)

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

	// Доступные окна на дату
	api.HandleFunc("/availability", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Котировка без создания бронирования
	api.HandleFunc("/quotes", computeQuote.Handle).Methods(http.MethodPost)

	// ============================================================
	// SHARED ROUTES (X-User-ID или X-Admin-ID)
	// ============================================================

	shared := api.PathPrefix("").Subrouter()
	shared.Use(middleware.AuthOrAdmin)

	// Получение бронирования по ID или коду
	shared.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// История запросов на перенос бронирования
	shared.HandleFunc("/bookings/{bookingId}/reschedule-requests", listReschedules.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Отмена бронирования клиентом
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// Запрос на перенос бронирования
	protected.HandleFunc("/bookings/{bookingId}/reschedule-requests", createReschedule.Handle).Methods(http.MethodPost)

	// История бронирований клиента
	protected.HandleFunc("/customers/{customerId}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-ID header)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.AdminAuth)

	// Список бронирований с фильтрацией (панель оператора)
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)

	// Перевод бронирования в новый статус
	admin.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Отметка об оплате
	admin.HandleFunc("/bookings/{bookingId}/mark-paid", markAsPaid.Handle).Methods(http.MethodPost)

	// Выставление счета после неуспешной оплаты
	admin.HandleFunc("/bookings/{bookingId}/request-payment", requestPayment.Handle).Methods(http.MethodPost)

	// Заметки оператора
	admin.HandleFunc("/bookings/{bookingId}/notes", setAdminNotes.Handle).Methods(http.MethodPatch)

	// Решение по запросу на перенос
	admin.HandleFunc("/reschedule-requests/{requestId}", respondReschedule.Handle).Methods(http.MethodPatch)

	// Конфигурация рабочего дня
	admin.HandleFunc("/schedule/days", updateScheduleDay.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/schedule/days/{date}", getScheduleDay.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Фоновая отмена бронирований с истекшим дедлайном оплаты
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	sweepInterval := time.Duration(cfg.Booking.SweepIntervalSeconds) * time.Second
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				expired, err := expireBookingsUseCase.Execute(sweepCtx)
				if err != nil {
					log.Error("Payment deadline sweep failed: %v", err)
					continue
				}
				if expired > 0 {
					log.Info("Payment deadline sweep: %d bookings expired", expired)
				}
			}
		}
	}()
	log.Info("Payment deadline sweep started (interval=%s)", sweepInterval)

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

	// Останавливаем фоновую отмену
	stopSweep()

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
