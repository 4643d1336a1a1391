package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"rolereader/resume-matcher/internal/config"
	"rolereader/resume-matcher/internal/handlers"
	"rolereader/resume-matcher/internal/middleware"
	"rolereader/resume-matcher/internal/repositories"
	"rolereader/resume-matcher/internal/services"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Optional detail cache
	rdb, err := config.InitRedis(ctx, cfg)
	if err != nil {
		log.Printf("⚠️  Redis unavailable, detail cache disabled: %v\n", err)
	} else if rdb != nil {
		defer rdb.Close()
		log.Println("✅ Redis connected successfully")
	}

	comparisonRepo := repositories.NewComparisonRepository(db)
	comparisonCache := repositories.NewComparisonCache(rdb)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath, cfg.Storage.MaxFileSize)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}
	parserService := services.NewDocumentParserService()

	nlpService := services.NewNLPService(cfg.Text.ExtraTermLimit)
	if err := nlpService.Initialize(); err != nil {
		log.Printf("❌ Failed to initialize NLP service: %v\n", err)
	}

	opts := services.ComparisonOptions{
		MinTextLength: cfg.Text.MinLength,
		MaxTextLength: cfg.Text.MaxLength,
	}

	var (
		worker    services.Worker
		scheduler *services.IndexScheduler
	)
	if cfg.Gemini.APIKey != "" {
		geminiService, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
		}
		opts.Enhancer = services.NewGeminiSuggester(geminiService, cfg.Worker.RetryMaxAttempts)
		log.Println("✅ Gemini AI initialized successfully")

		if cfg.SemanticSearchEnabled() {
			qdrantService, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
			if err != nil {
				log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
			}
			if err := qdrantService.InitCollection(ctx); err != nil {
				log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
			}
			log.Println("✅ Qdrant initialized successfully")

			opts.Index = services.NewSemanticIndex(geminiService, qdrantService)
			worker = services.NewWorker(comparisonRepo, opts.Index, cfg.Worker.Concurrency)
			worker.Start(ctx)
			opts.Queue = worker

			scheduler = services.NewIndexScheduler(comparisonRepo, worker, cfg.Worker.IndexPollInterval)
			if err := scheduler.Start(ctx); err != nil {
				log.Fatalf("❌ Failed to start index scheduler: %v", err)
			}
		}
	} else {
		log.Println("⚠️  GEMINI_API_KEY not set, suggestion enrichment and semantic search disabled")
	}

	comparisonService := services.NewComparisonService(nlpService, comparisonRepo, comparisonCache, opts)
	log.Println("✅ Services initialized successfully")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AI Resume Comparison API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1<<20,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(middleware.NewMetricsBuilder(prometheus.DefaultRegisterer).Build())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.Server.AllowedOrigins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
	}))

	handlers.RegisterRoutes(app, handlers.Handlers{
		Health:     handlers.NewHealthHandler(nlpService, cfg.Server.Version),
		Comparison: handlers.NewComparisonHandler(comparisonService),
		Upload:     handlers.NewUploadHandler(storageService, parserService, comparisonService),
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	log.Println("✅ Handlers initialized")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("🛑 Shutting down server...")
		if scheduler != nil {
			scheduler.Stop()
		}
		if worker != nil {
			worker.Stop()
		}
		cancel()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
