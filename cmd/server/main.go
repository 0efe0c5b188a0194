package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vandra-service/internal/domain/entity"
	"vandra-service/internal/domain/repository"
	"vandra-service/internal/infrastructure/config"
	"vandra-service/internal/infrastructure/oauth"
	"vandra-service/internal/infrastructure/persistence"
	"vandra-service/internal/infrastructure/router"
	"vandra-service/internal/infrastructure/scheduler"
	"vandra-service/internal/interface/amadeus"
	"vandra-service/internal/interface/gmail"
	"vandra-service/internal/interface/handler"
	"vandra-service/internal/interface/kafka"
	"vandra-service/internal/interface/llm"
	gormRepo "vandra-service/internal/interface/repository"
	"vandra-service/internal/usecase"
	"vandra-service/pkg/logger"
	"vandra-service/pkg/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.NewLogger("info").Fatal("Failed to load config", "error", err)
	}

	// Create logger
	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()
	log.Info("Starting Vandra Service", "version", cfg.AppVersion, "env", cfg.AppEnv)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.NewMetrics("vandra", prometheus.DefaultRegisterer)

	// Set up PostgreSQL connection
	log.Info("Connecting to PostgreSQL")
	db, err := persistence.NewPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}
	if err := gormRepo.AutoMigrate(db); err != nil {
		log.Fatal("Failed to migrate PostgreSQL schema", "error", err)
	}

	// Set up MongoDB connection for the run log
	log.Info("Connecting to MongoDB")
	mongoClient, mongoDB, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Set up repositories
	airportRepo := gormRepo.NewGormAirportRepository(db)
	userRepo := gormRepo.NewGormUserRepository(db)
	alertRepo := gormRepo.NewGormAlertRepository(db)
	priceRepo := gormRepo.NewGormPriceHistoryRepository(db)
	notificationRepo := gormRepo.NewGormNotificationRepository(db)
	runRepo := gormRepo.NewMongoMonitorRunRepository(mongoDB)

	// Flight-offers provider
	amadeusClient := amadeus.NewClient(amadeus.Config{
		BaseURL:   cfg.AmadeusBaseURL,
		APIKey:    cfg.AmadeusAPIKey,
		APISecret: cfg.AmadeusAPISecret,
		Limiter:   rate.NewLimiter(rate.Every(cfg.AmadeusMinInterval), 1),
		Metrics:   m,
	}, log)
	if cfg.AmadeusAPIKey == "" || cfg.AmadeusAPISecret == "" {
		log.Warn("Amadeus credentials not configured, flight searches will fail")
	}

	// Chat model
	var chat repository.ChatCompleter
	var extractor usecase.PreferenceExtractor = usecase.NewKeywordPreferenceExtractor()
	chatModel, err := llm.NewArkChatModel(ctx, llm.ChatModelConfig{
		BaseURL: cfg.ArkBaseURL,
		APIKey:  cfg.ArkAPIKey,
		Model:   cfg.ArkModel,
	})
	if err != nil {
		log.Warn("Chat model unavailable, using keyword preference extraction", "error", err)
	} else {
		chat = llm.NewChat(chatModel, log)
		extractor = usecase.NewLLMPreferenceExtractor(chat, log)
	}

	// Notification channels
	senders := []repository.NotificationSender{
		gormRepo.NewWhatsappRepository(gormRepo.WhatsappConfig{
			BaseURL:     cfg.WhatsAppServiceURL,
			BearerToken: cfg.WhatsAppToken,
			CompanyID:   cfg.WhatsAppCompanyID,
			AgentID:     cfg.WhatsAppAgentID,
		}, log),
	}

	gmailOAuth := oauth.NewGmailOAuth(cfg.GmailClientID, cfg.GmailClientSecret, cfg.GmailRefreshToken, "", log)
	if gmailOAuth.Configured() {
		gmailSender, err := gmail.NewGmailSender(ctx, gmailOAuth.GetTokenSource(ctx), cfg.GmailSender, log)
		if err != nil {
			log.Fatal("Failed to create Gmail sender", "error", err)
		}
		senders = append(senders, gmailSender)
	} else {
		log.Warn("Gmail not configured, email notifications disabled")
	}

	var dealPublisher *kafka.DealPublisher
	if len(cfg.KafkaBrokers) > 0 {
		dealPublisher, err = kafka.NewDealPublisher(cfg.KafkaBrokers, cfg.KafkaDealTopic, log)
		if err != nil {
			log.Fatal("Failed to create Kafka deal publisher", "error", err)
		}
		senders = append(senders, dealPublisher)
	}

	// Use cases
	flightSearch := usecase.NewFlightSearch(amadeusClient, log)
	detector := usecase.NewDealDetector(priceRepo, log)
	notifier := usecase.NewDealNotifier(senders, notificationRepo, cfg.MaxDealsPerAlert, m, log)
	monitor := usecase.NewAlertMonitor(alertRepo, notificationRepo, runRepo, flightSearch, detector, notifier, m, log,
		usecase.MonitorConfig{
			AlertDelay:      cfg.AlertDelay,
			BatchAlertDelay: cfg.BatchAlertDelay,
		})
	authService := usecase.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL, log)
	onboarding := usecase.NewOnboarding(extractor, airportRepo, alertRepo, cfg.DefaultOriginCode, log)

	var agent handler.ChatReplier = unavailableAgent{}
	if chat != nil {
		agent = usecase.NewConversationAgent(chat)
	}

	// HTTP server
	r := router.NewRouter(router.Config{
		FrontendURL:    cfg.FrontendURL,
		CronSecret:     cfg.CronSecret,
		InternalAPIKey: cfg.InternalAPIKey,
		Development:    cfg.IsDevelopment(),
		Tokens:         authService,
		Gatherer:       prometheus.DefaultGatherer,
	}, router.Handlers{
		Jobs:    handler.NewJobsHandler(monitor, log),
		Auth:    handler.NewAuthHandler(authService, log),
		Chat:    handler.NewChatHandler(agent, onboarding, log),
		Flights: handler.NewFlightHandler(flightSearch, log),
		Alerts:  handler.NewAlertHandler(alertRepo, log),
	}, log)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Periodic monitoring
	stopScheduler := func() {}
	if cfg.RedisAddr != "" {
		stopScheduler, err = scheduler.Start(scheduler.Config{
			RedisAddr:   cfg.RedisAddr,
			Cron:        cfg.MonitorCron,
			Concurrency: 1,
			Timeout:     time.Hour,
		}, monitor, log)
		if err != nil {
			log.Fatal("Failed to start monitor scheduler", "error", err)
		}
	} else if cfg.MonitorInterval > 0 {
		log.Info("Redis not configured, monitoring on a ticker", "interval", cfg.MonitorInterval.String())
		go scheduler.RunTicker(ctx, cfg.MonitorInterval, func(ctx context.Context) {
			summary, err := monitor.ProcessAllActiveAlerts(ctx, entity.TriggerSchedule)
			if err != nil {
				log.Error("Scheduled monitoring failed", "error", err)
				return
			}
			log.Info("Scheduled monitoring complete", "processed", summary.Processed, "totalDeals", summary.TotalDeals, "errors", summary.Errors)
		}, log)
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig.String())

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	stopScheduler()
	cancel() // Cancel the context to stop all goroutines

	if dealPublisher != nil {
		if err := dealPublisher.Close(); err != nil {
			log.Error("Kafka writer close error", "error", err)
		}
	}

	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	log.Info("Vandra Service stopped")
}

// unavailableAgent answers chat requests when no chat model is configured.
type unavailableAgent struct{}

func (unavailableAgent) Reply(ctx context.Context, messages []entity.ChatMessage) (string, error) {
	return "", errors.New("chat model not configured")
}
