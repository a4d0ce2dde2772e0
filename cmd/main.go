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

	"github.com/alecthomas/kong"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"

	clearDraftHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/clear_draft"
	deleteDayHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/delete_day"
	deleteSlotHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/delete_slot"
	getAvailabilityHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_available_slots"
	getCatalogHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_catalog"
	listDraftsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/list_drafts"
	saveAvailabilityHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/save_availability"
	toggleSlotHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/toggle_slot"
	updateDraftHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/update_draft"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	draftRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/drafts"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/migrations"
	platformClient "github.com/m04kA/SMC-AvailabilityService/internal/integrations/platform"
	availabilityService "github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
	draftsService "github.com/m04kA/SMC-AvailabilityService/internal/service/drafts"
	editDraftUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/edit_draft"
	getAvailableSlotsUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
)

var cli struct {
	Config string `help:"Path to the TOML config file." type:"path" default:"config.toml"`

	Serve   struct{} `cmd:"" help:"Run the HTTP service." default:"1"`
	Migrate struct{} `cmd:"" help:"Apply draft storage migrations and exit."`
}

// draftRepository общий интерфейс хранилищ черновиков (memory, postgres, redis)
type draftRepository interface {
	availabilityService.DraftRepository
	draftsService.DraftRepository
	editDraftUC.DraftRepository
	getAvailableSlotsUC.DraftRepository
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("availability-service"),
		kong.Description("Stylist availability service for the salon dashboard"),
		kong.UsageOnError(),
	)

	// Загружаем конфигурацию
	cfg, err := config.Load(cli.Config)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.NewWithRotation(cfg.Logs.File, cfg.Logs.Level, logger.Rotation{
		MaxSizeMB:  cfg.Logs.MaxSizeMB,
		MaxBackups: cfg.Logs.MaxBackups,
		MaxAgeDays: cfg.Logs.MaxAgeDays,
		Compress:   cfg.Logs.Compress,
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-AvailabilityService...")
	log.Info("Configuration loaded from %s", cli.Config)

	if kctx.Command() == "migrate" {
		if cfg.Drafts.Storage != config.DraftStoragePostgres {
			log.Info("Draft storage is %q, nothing to migrate", cfg.Drafts.Storage)
			return
		}
		db := openDatabase(cfg, log)
		defer db.Close()
		if err := migrations.Up(db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Migrations applied")
		return
	}

	location, err := cfg.Availability.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Availability.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем хранилище черновиков
	var drafts draftRepository
	switch cfg.Drafts.Storage {
	case config.DraftStoragePostgres:
		db := openDatabase(cfg, log)
		defer db.Close()

		if err := migrations.Up(db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		drafts = draftRepo.NewPostgresRepository(db)
		log.Info("Draft storage: postgres (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	case config.DraftStorageRedis:
		client := openRedis(cfg, log)
		defer client.Close()

		drafts = draftRepo.NewRedisRepository(client)
		log.Info("Draft storage: redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
	default:
		drafts = draftRepo.NewMemoryRepository()
		log.Info("Draft storage: memory")
	}

	// Инициализируем клиента платформы
	platform := platformClient.NewClient(
		cfg.Platform.URL,
		time.Duration(cfg.Platform.Timeout)*time.Second,
		log,
		metricsCollector,
	)
	log.Info("Platform client initialized (url=%s, timeout=%ds)", cfg.Platform.URL, cfg.Platform.Timeout)

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(drafts, platform, log)
	draftsSvc := draftsService.NewService(drafts, log)

	// Инициализируем use cases
	editDraftUseCase := editDraftUC.NewUseCase(drafts, availabilitySvc, metricsCollector, location, log)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(drafts, availabilitySvc, location, log)

	// Инициализируем handlers
	getCatalog := getCatalogHandler.NewHandler(log)
	listDrafts := listDraftsHandler.NewHandler(draftsSvc, log)
	updateDraft := updateDraftHandler.NewHandler(editDraftUseCase, log)
	clearDraft := clearDraftHandler.NewHandler(draftsSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	saveAvailability := saveAvailabilityHandler.NewHandler(availabilitySvc, log)
	getAvailability := getAvailabilityHandler.NewHandler(availabilitySvc, log)
	toggleSlot := toggleSlotHandler.NewHandler(availabilitySvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(availabilitySvc, log)
	deleteDay := deleteDayHandler.NewHandler(availabilitySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter, err := middleware.NewRateLimiter(middleware.RateLimitOptions{
			RPS:            cfg.RateLimit.RPS,
			Burst:          cfg.RateLimit.Burst,
			TrustedProxies: cfg.RateLimit.TrustedProxies,
			IdleTTL:        time.Duration(cfg.RateLimit.IdleTTL) * time.Second,
		}, log)
		if err != nil {
			log.Fatal("Failed to configure rate limit: %v", err)
		}
		api.Use(limiter.Middleware)
		log.Info("Rate limit enabled: %.1f rps, burst %d", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	api.Use(middleware.Auth(middleware.NewTokenParser(cfg.Auth.JWTSecret), log))
	if cfg.Auth.JWTSecret == "" {
		log.Warn("auth.jwt_secret is empty: token signatures are not verified locally")
	}

	// Каталог слотов
	api.HandleFunc("/availability/catalog", getCatalog.Handle).Methods(http.MethodGet)

	// ============================================================
	// STYLIST ROUTES (сам стилист или админ)
	// ============================================================

	stylist := api.PathPrefix("/stylists/{stylistId}").Subrouter()
	stylist.Use(middleware.StylistAccess(log))

	// --- Черновики ---
	stylist.HandleFunc("/drafts", listDrafts.Handle).Methods(http.MethodGet)
	stylist.HandleFunc("/drafts/{date}", updateDraft.Handle).Methods(http.MethodPatch)
	stylist.HandleFunc("/drafts/{date}", clearDraft.Handle).Methods(http.MethodDelete)
	stylist.HandleFunc("/drafts/{date}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// --- Сохраненное расписание ---
	stylist.HandleFunc("/availability", saveAvailability.Handle).Methods(http.MethodPost)
	stylist.HandleFunc("/availability/{date}/slots/{slotId}/toggle", toggleSlot.Handle).Methods(http.MethodPut)

	// Платформа отдает и удаляет расписание владельца токена
	own := stylist.PathPrefix("").Subrouter()
	own.Use(middleware.OwnSchedule(log))
	own.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)
	own.HandleFunc("/availability/{date}/slots", deleteSlot.Handle).Methods(http.MethodDelete)
	own.HandleFunc("/availability/{date}", deleteDay.Handle).Methods(http.MethodDelete)

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

// openDatabase подключается к PostgreSQL и проверяет соединение
func openDatabase(cfg *config.Config, log *logger.Logger) *sql.DB {
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}

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
	return db
}

// openRedis подключается к Redis и проверяет соединение
func openRedis(cfg *config.Config, log *logger.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("Failed to ping redis: %v", err)
	}
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)
	return client
}
