package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"hia/internal/analysis"
	"hia/internal/config"
	"hia/internal/email/noop"
	"hia/internal/email/ses"
	"hia/internal/extract"
	"hia/internal/handler"
	"hia/internal/llm"
	"hia/internal/port"
	"hia/internal/repository/postgres"
	"hia/internal/router"
	"hia/internal/service"
	s3storage "hia/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// .env is optional; real deployments set environment variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	chatRepo := postgres.NewChatRepo(db)
	reportRepo := postgres.NewReportRepo(db)
	appRepo := postgres.NewApplicationRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email delivery
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender()
	}

	// Initialize the completion gateway with transient-error retries
	client := llm.NewClient(&cfg.LLM)
	completer := llm.NewRetryCompleter(client, cfg.LLM.MaxRetries, cfg.LLM.RetryBaseDelay)

	// Initialize text extraction
	var imageStrategy extract.ImageStrategy
	switch cfg.Extraction.Strategy {
	case "ocr":
		imageStrategy = extract.NewOCREngine()
	default:
		imageStrategy = extract.NewVisionExtractor(completer, cfg.LLM.VisionModel, cfg.LLM.VisionFallbackModel)
	}
	extractor := extract.NewAdapter(imageStrategy)

	// Initialize the analysis pipeline
	sanitizer := analysis.NewSanitizer(cfg.Sanitizer)
	analyzer := analysis.NewAnalyzer(completer, extractor, sanitizer, cfg.LLM.TextModel)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	analysisSvc := service.NewAnalysisService(analyzer, reportRepo)
	chatSvc := service.NewChatService(chatRepo, completer, cfg.LLM.TextModel)
	appSvc := service.NewApplicationService(appRepo, userRepo, s3Client, emailSender)
	userSvc := service.NewUserService(userRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	analysisH := handler.NewAnalysisHandler(analysisSvc, cfg.S3.MaxFileSizeMB)
	chatH := handler.NewChatHandler(chatSvc)
	appH := handler.NewApplicationHandler(appSvc, cfg.S3.MaxFileSizeMB)
	adminH := handler.NewAdminHandler(userSvc, reportRepo)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, authH, analysisH, chatH, appH, adminH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
