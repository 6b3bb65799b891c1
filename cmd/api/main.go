package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/farmersguild/backend/internal/adapters/cache"
	"github.com/farmersguild/backend/internal/adapters/database"
	"github.com/farmersguild/backend/internal/api/handlers"
	"github.com/farmersguild/backend/internal/api/routes"
	"github.com/farmersguild/backend/internal/application/services"
	"github.com/farmersguild/backend/internal/domain/providers"
	"github.com/farmersguild/backend/internal/infrastructure/clients/openrouter"
	"github.com/farmersguild/backend/internal/infrastructure/clients/postgres"
	"github.com/farmersguild/backend/internal/infrastructure/clients/redis"
	"github.com/farmersguild/backend/internal/infrastructure/observability"
	"github.com/farmersguild/backend/pkg/config"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client; stats caching degrades gracefully without it
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		log.Println("Redis client initialized successfully")
	}

	// Initialize the language-model client
	modelClient, err := openrouter.NewClient(&cfg.OpenRouter)
	if err != nil {
		log.Fatalf("Failed to initialize OpenRouter client: %v", err)
	}

	// Initialize adapters
	cropAdapter := database.NewCropAdapter(pgClient)
	activityAdapter := database.NewActivityLogAdapter(pgClient)
	detectionAdapter := database.NewDiseaseDetectionAdapter(pgClient)
	weatherAdapter := database.NewWeatherAlertAdapter(pgClient)
	conversationAdapter := database.NewCropConversationAdapter(pgClient)
	diseaseChatAdapter := database.NewDiseaseChatAdapter(pgClient)
	costAdapter := database.NewCropCostAdapter(pgClient)
	userAdapter := database.NewUserAdapter(pgClient)

	// Initialize services
	contextService := services.NewCropContextService(cropAdapter, activityAdapter, detectionAdapter, weatherAdapter)
	cropAIService := services.NewCropAIService(contextService, conversationAdapter, modelClient)
	diseaseAIService := services.NewDiseaseAIService(
		contextService,
		detectionAdapter,
		diseaseChatAdapter,
		modelClient,
		modelClient.VisionModel(),
	)

	cropService := services.NewCropService(
		cropAdapter,
		activityAdapter,
		detectionAdapter,
		weatherAdapter,
		conversationAdapter,
		diseaseChatAdapter,
		costAdapter,
		cropAIService,
	)
	activityService := services.NewActivityService(activityAdapter, cropAdapter, cropAIService)
	costService := services.NewCostService(costAdapter, cropAdapter)
	weatherService := services.NewWeatherService(weatherAdapter, cropAdapter, cropAIService)
	detectionService := services.NewDetectionService(detectionAdapter, diseaseAIService, cropAIService)
	statsService := services.NewStatsService(cropAdapter, conversationAdapter, costAdapter, cacheProvider)
	userService := services.NewUserService(userAdapter)

	// Initialize handlers
	cropHandler := handlers.NewCropHandler(cropService)
	chatHandler := handlers.NewChatHandler(cropAIService)
	diseaseHandler := handlers.NewDiseaseHandler(diseaseAIService, detectionService)
	activityHandler := handlers.NewActivityHandler(activityService)
	costHandler := handlers.NewCostHandler(costService)
	weatherHandler := handlers.NewWeatherHandler(weatherService)
	statsHandler := handlers.NewStatsHandler(statsService)
	userHandler := handlers.NewUserHandler(userService)

	// Set up router
	router := routes.NewRouter(
		cropHandler,
		chatHandler,
		diseaseHandler,
		activityHandler,
		costHandler,
		weatherHandler,
		statsHandler,
		userHandler,
		metrics,
	)
	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := cfg.Server.ServerAddr()
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server stopped")
}
