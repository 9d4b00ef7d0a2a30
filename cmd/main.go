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

	activitiesHandler "github.com/m04kA/FMP-BookingService/internal/api/handlers/activities"
	cancelBookingHandler "github.com/m04kA/FMP-BookingService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/m04kA/FMP-BookingService/internal/api/handlers/check_availability"
	createBookingHandler "github.com/m04kA/FMP-BookingService/internal/api/handlers/create_booking"
	favoritesHandler "github.com/m04kA/FMP-BookingService/internal/api/handlers/favorites"
	getAllBookingsHandler "github.com/m04kA/FMP-BookingService/internal/api/handlers/get_all_bookings"
	getBookingHandler "github.com/m04kA/FMP-BookingService/internal/api/handlers/get_booking"
	getBookingStatsHandler "github.com/m04kA/FMP-BookingService/internal/api/handlers/get_booking_stats"
	getMyBookingsHandler "github.com/m04kA/FMP-BookingService/internal/api/handlers/get_my_bookings"
	productsHandler "github.com/m04kA/FMP-BookingService/internal/api/handlers/products"
	updateBookingHandler "github.com/m04kA/FMP-BookingService/internal/api/handlers/update_booking"
	"github.com/m04kA/FMP-BookingService/internal/api/middleware"
	"github.com/m04kA/FMP-BookingService/internal/config"
	activityRepo "github.com/m04kA/FMP-BookingService/internal/infra/storage/activity"
	bookingRepo "github.com/m04kA/FMP-BookingService/internal/infra/storage/booking"
	favoriteRepo "github.com/m04kA/FMP-BookingService/internal/infra/storage/favorite"
	productRepo "github.com/m04kA/FMP-BookingService/internal/infra/storage/product"
	activitiesService "github.com/m04kA/FMP-BookingService/internal/service/activities"
	bookingsService "github.com/m04kA/FMP-BookingService/internal/service/bookings"
	"github.com/m04kA/FMP-BookingService/internal/service/capacity"
	favoritesService "github.com/m04kA/FMP-BookingService/internal/service/favorites"
	productsService "github.com/m04kA/FMP-BookingService/internal/service/products"
	cancelBookingUC "github.com/m04kA/FMP-BookingService/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/FMP-BookingService/internal/usecase/create_booking"
	updateBookingUC "github.com/m04kA/FMP-BookingService/internal/usecase/update_booking"
	"github.com/m04kA/FMP-BookingService/pkg/dbmetrics"
	"github.com/m04kA/FMP-BookingService/pkg/logger"
	"github.com/m04kA/FMP-BookingService/pkg/metrics"
	"github.com/m04kA/FMP-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/FMP-BookingService/pkg/txmanager"
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

	log.Info("Starting FMP-BookingService...")
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

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		activityRepository *activityRepo.Repository
		productRepository  *productRepo.Repository
		favoriteRepository *favoriteRepo.Repository
	)

	// Интерфейс transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		activityRepository = activityRepo.NewRepository(wrappedDB)
		productRepository = productRepo.NewRepository(wrappedDB)
		favoriteRepository = favoriteRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		activityRepository = activityRepo.NewRepository(db)
		productRepository = productRepo.NewRepository(db)
		favoriteRepository = favoriteRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Учет емкости активностей - общий для всех операций записи бронирований
	ledger := capacity.NewLedger(activityRepository)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, activityRepository, log)
	activitySvc := activitiesService.NewService(activityRepository, log)
	productSvc := productsService.NewService(productRepository, log)
	favoriteSvc := favoritesService.NewService(favoriteRepository, productRepository, activityRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		activityRepository,
		ledger,
		txMgr,
		cfg.Bookings.MaxTicketsPerBooking,
		log,
	)
	updateBookingUseCase := updateBookingUC.NewUseCase(
		bookingRepository,
		ledger,
		txMgr,
		cfg.Bookings.MaxTicketsPerBooking,
		log,
	)
	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		bookingRepository,
		ledger,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	updateBooking := updateBookingHandler.NewHandler(updateBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getMyBookings := getMyBookingsHandler.NewHandler(bookingSvc, log)
	getAllBookings := getAllBookingsHandler.NewHandler(bookingSvc, log)
	getBookingStats := getBookingStatsHandler.NewHandler(bookingSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(bookingSvc, log)
	activities := activitiesHandler.NewHandler(activitySvc, log)
	products := productsHandler.NewHandler(productSvc, log)
	favorites := favoritesHandler.NewHandler(favoriteSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
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

	// Каталог активностей
	api.HandleFunc("/activities", activities.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/activities/{activityId}", activities.HandleGet).Methods(http.MethodGet)

	// Каталог товаров
	api.HandleFunc("/products", products.HandleList).Methods(http.MethodGet)
	api.HandleFunc("/products/{productId}", products.HandleGet).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	auth := middleware.NewAuth(cfg.Auth.JWTSecret, log)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth.Middleware)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/my", getMyBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/admin/all", getAllBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/stats/admin", getBookingStats.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/availability/{activityId}", checkAvailability.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}", cancelBooking.Handle).Methods(http.MethodDelete)

	// --- Управление каталогом активностей (для администраторов) ---
	protected.HandleFunc("/activities", activities.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/activities/{activityId}", activities.HandleUpdate).Methods(http.MethodPut)
	protected.HandleFunc("/activities/{activityId}", activities.HandleDelete).Methods(http.MethodDelete)
	protected.HandleFunc("/activities/{activityId}/toggle", activities.HandleToggle).Methods(http.MethodPatch)

	// --- Управление каталогом товаров (для администраторов) ---
	protected.HandleFunc("/products", products.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/products/{productId}", products.HandleUpdate).Methods(http.MethodPut)
	protected.HandleFunc("/products/{productId}", products.HandleDelete).Methods(http.MethodDelete)
	protected.HandleFunc("/products/{productId}/restore", products.HandleRestore).Methods(http.MethodPut)

	// --- Избранное ---
	protected.HandleFunc("/favorites", favorites.HandleAdd).Methods(http.MethodPost)
	protected.HandleFunc("/favorites", favorites.HandleList).Methods(http.MethodGet)
	protected.HandleFunc("/favorites/ids", favorites.HandleListIDs).Methods(http.MethodGet)
	protected.HandleFunc("/favorites/{favoriteId}", favorites.HandleRemove).Methods(http.MethodDelete)

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
