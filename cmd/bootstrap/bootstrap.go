package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mediaccess/config"
	"mediaccess/internal/assistant"
	deliveryHttp "mediaccess/internal/delivery/http"
	"mediaccess/internal/delivery/http/handler"
	"mediaccess/internal/delivery/http/middleware"
	"mediaccess/internal/infrastructure/cache"
	"mediaccess/internal/infrastructure/database"
	"mediaccess/internal/infrastructure/storage"
	"mediaccess/internal/knowledge"
	"mediaccess/internal/login"
	"mediaccess/internal/repository"
	"mediaccess/internal/service"
	"mediaccess/internal/store"
	"mediaccess/internal/usecase"
	"mediaccess/pkg/jwt"
	"mediaccess/pkg/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	Store       *store.Store
	DB          *gorm.DB
	RedisClient *redis.Client
	Files       *storage.MinioStore
	Dispatcher  *service.EventDispatcher
	Registry    *prometheus.Registry
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized.
// Postgres, Redis and MinIO are optional and only dialed when configured.
func New(ctx context.Context) (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	app.Log = setupLogger(cfg.App.LogLevel)
	logrus.Info("Configuration loaded successfully")

	// Initialize metrics registry
	app.Registry = prometheus.NewRegistry()
	app.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize optional side channels
	var sinks []service.EventSink
	var archive service.LogArchiveService

	if cfg.DB.Host != "" {
		db, err := database.NewPostgresConnection(cfg.DB)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		app.DB = db
		archive = service.NewLogArchiveService(db, app.Log, repository.NewSystemLogArchiveRepository())
		sinks = append(sinks, archive)
		logrus.Info("Log archive enabled")
	}

	if cfg.Redis.Host != "" {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
		sinks = append(sinks, service.NewRedisBroadcaster(redisClient, cfg.Redis.Channel, app.Log))
		logrus.Infof("Event broadcast enabled on channel %s", cfg.Redis.Channel)
	}

	if cfg.Minio.Endpoint != "" {
		files, err := storage.NewMinioStore(cfg.Minio)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to create object storage client: %w", err)
		}
		if err := files.EnsureBucket(ctx); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to prepare guide bucket: %w", err)
		}
		app.Files = files
		logrus.Infof("Guide file storage enabled in bucket %s", cfg.Minio.Bucket)
	}

	// Initialize the store and its observers
	storeMetrics, err := service.NewStoreMetrics(app.Registry)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to register store metrics: %w", err)
	}
	opts := []store.Option{
		store.WithNotificationCap(cfg.Store.NotificationCap),
		store.WithObserver(storeMetrics),
	}
	if len(sinks) > 0 {
		app.Dispatcher = service.NewEventDispatcher(app.Log, service.DefaultEventBuffer, sinks...)
		opts = append(opts, store.WithObserver(app.Dispatcher))
	}
	app.Store = store.New(store.DefaultSeed(time.Now()), opts...)

	server, err := app.initializeServer(ctx, archive)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) *logrus.Logger {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)

	return logrus.StandardLogger()
}

// newGenerator picks Gemini when an API key is configured
func newGenerator(ctx context.Context, cfg config.AssistantConfig) assistant.Generator {
	if cfg.APIKey == "" {
		logrus.Warn("GEMINI_API_KEY is not set, assistant will answer with fallback text")
		return assistant.NewUnavailableGenerator()
	}

	gen, err := assistant.NewGeminiGenerator(ctx, cfg.APIKey)
	if err != nil {
		logrus.Warnf("Failed to create Gemini client: %+v", err)
		return assistant.NewUnavailableGenerator()
	}
	return gen
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer(ctx context.Context, archive service.LogArchiveService) (*http.Server, error) {
	cfg := app.Config
	log := app.Log
	s := app.Store

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize collaborators
	kb, err := knowledge.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load knowledge base: %w", err)
	}
	ai := assistant.New(newGenerator(ctx, cfg.Assistant), kb, assistant.Config{
		Model:   cfg.Assistant.Model,
		Timeout: cfg.Assistant.Timeout,
	}, log, s.Offline)

	simulator := login.NewSimulator(login.Delays{
		Face:        cfg.Simulation.FaceScanDelay,
		FaceOffline: cfg.Simulation.FaceScanOfflineDelay,
		Fingerprint: cfg.Simulation.FingerprintDelay,
		Password:    cfg.Simulation.PasswordDelay,
	}, login.StaticCamera(cfg.Simulation.CameraAvailable), jwtService, s, log)

	var files usecase.GuideFileStore
	if app.Files != nil {
		files = app.Files
	}

	// Initialize usecases
	sessionUsecase := usecase.NewSessionUsecase(s, log, simulator)
	dashboardUsecase := usecase.NewDashboardUsecase(s, log, archive)
	userUsecase := usecase.NewUserUsecase(s, log)
	patientUsecase := usecase.NewPatientUsecase(s, log)
	traineeUsecase := usecase.NewTraineeUsecase(s, log, cfg.App.Supervisor)
	proposalUsecase := usecase.NewProposalUsecase(s, log)
	taskUsecase := usecase.NewTaskUsecase(s, log, cfg.Simulation.AuditStepDelay)
	publicationUsecase := usecase.NewPublicationUsecase(s, log, files)
	financialUsecase := usecase.NewFinancialUsecase(log)
	simulationUsecase := usecase.NewSimulationUsecase(s, log)
	assistantUsecase := usecase.NewAssistantUsecase(s, log, ai, kb)
	developerUsecase := usecase.NewDeveloperUsecase(s, log)

	// Initialize handlers
	handlers := deliveryHttp.Handlers{
		Auth:        handler.NewAuthHandler(sessionUsecase, customValidator),
		Dashboard:   handler.NewDashboardHandler(dashboardUsecase),
		AuditLog:    handler.NewAuditLogHandler(dashboardUsecase),
		User:        handler.NewUserHandler(userUsecase, customValidator),
		Patient:     handler.NewPatientHandler(patientUsecase, customValidator),
		Trainee:     handler.NewTraineeHandler(traineeUsecase, customValidator),
		Proposal:    handler.NewProposalHandler(proposalUsecase, customValidator),
		Task:        handler.NewTaskHandler(taskUsecase),
		Publication: handler.NewPublicationHandler(publicationUsecase, customValidator),
		Financial:   handler.NewFinancialHandler(financialUsecase),
		Simulation:  handler.NewSimulationHandler(simulationUsecase),
		Assistant:   handler.NewAssistantHandler(assistantUsecase, customValidator),
		Developer:   handler.NewDeveloperHandler(developerUsecase, customValidator),
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigin)
	metricsMiddleware, err := middleware.NewMetricsMiddleware(app.Registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register http metrics: %w", err)
	}

	// Initialize router
	router := deliveryHttp.NewRouter(handlers, authMiddleware, corsMiddleware, metricsMiddleware, app.Registry)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close flushes queued events and closes all connections
func (app *App) Close() {
	// Deliver what is still queued before the sinks go away
	if app.Dispatcher != nil {
		app.Dispatcher.Stop()
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
