package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"resumeshortlist/internal/config"
	"resumeshortlist/internal/handlers"
	"resumeshortlist/internal/repositories"
	"resumeshortlist/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	docRepo := repositories.NewDocumentRepository(db)
	runRepo := repositories.NewMatchRunRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize storage
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	// Initialize Gemini AI (embeddings + the OCR fallback oracle)
	var geminiService services.GeminiService
	if cfg.Gemini.APIKey != "" {
		geminiService, err = services.NewGeminiService(cfg.Gemini.APIKey, cfg.Worker.RetryInitialDelay)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
		}
		log.Println("✅ Gemini AI initialized successfully")
	} else {
		log.Println("⚠️  GEMINI_API_KEY not set; OCR fallback and embedding strategy unavailable")
	}

	// Build the matching pipeline
	var recognizer services.ImageRecognizer
	var embedder services.Embedder
	if geminiService != nil {
		recognizer = geminiService
		embedder = geminiService
	}

	oracle, err := services.NewSimilarityOracle(cfg.Matcher.Strategy, embedder)
	if err != nil {
		log.Fatalf("❌ Failed to initialize similarity oracle: %v", err)
	}
	log.Printf("✅ Similarity oracle initialized (strategy=%s)\n", cfg.Matcher.Strategy)

	extractor := services.NewExtractorService(recognizer, cfg.Worker.RetryMaxAttempts)
	matcherService := services.NewMatcherService(
		extractor,
		services.NewNormalizerService(),
		services.NewSkillVocabulary(),
		services.NewExperienceService(),
		oracle,
		services.NewScorerService(cfg.Matcher.TargetYears),
		cfg.Matcher.MinTextLength,
		cfg.Matcher.DownloadBaseURL,
	)
	log.Println("✅ Matcher service initialized")

	// Initialize the resume index (optional)
	var indexService services.ResumeIndexService
	if cfg.Qdrant.Enabled && embedder != nil {
		indexService, err = services.NewResumeIndexService(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
			embedder,
		)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}

		if err := indexService.InitCollection(); err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
		}
		log.Println("✅ Resume index initialized successfully")
	} else {
		log.Println("⚠️  Resume index disabled")
	}

	// Initialize runner and worker
	runnerService := services.NewRunnerService(runRepo, docRepo, matcherService, indexService)
	worker := services.NewWorker(runRepo, runnerService, cfg.Worker.Concurrency)

	ctx := context.Background()
	worker.Start(ctx)
	log.Println("✅ Worker started successfully")

	// Initialize handlers
	uploadHandler := handlers.NewUploadHandler(docRepo, storageService, cfg.Storage.MaxFileSize)
	matchHandler := handlers.NewMatchHandler(runRepo, docRepo, worker)
	resultHandler := handlers.NewResultHandler(runRepo)
	searchHandler := handlers.NewSearchHandler(indexService)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Shortlist API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/upload", uploadHandler.HandleUpload)
	api.Post("/match", matchHandler.HandleMatch)
	api.Get("/result/:id", resultHandler.HandleGetResult)
	api.Get("/search", searchHandler.HandleSearch)

	// Serve uploaded resumes for the downloadLink field
	app.Static("/uploads", cfg.Storage.UploadPath)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
