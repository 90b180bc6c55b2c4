package main

import (
	"fmt"
	"log"

	"payproof/internal/auth"
	"payproof/internal/config"
	"payproof/internal/email/noop"
	"payproof/internal/email/ses"
	"payproof/internal/extract"
	"payproof/internal/extract/docengine"
	"payproof/internal/handler"
	"payproof/internal/pipeline"
	"payproof/internal/port"
	"payproof/internal/raster"
	"payproof/internal/repository/postgres"
	"payproof/internal/router"
	"payproof/internal/service"
	s3storage "payproof/internal/storage/s3"
	"payproof/internal/validator"
	"payproof/internal/vision"
	"payproof/internal/vision/openai"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	resultRepo := postgres.NewResultRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email sender
	var emailSender port.EmailSender
	if cfg.Email.Provider == "ses" {
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	} else {
		emailSender = noop.NewNoopSender()
	}

	// Assemble the extraction pipeline
	engine := docengine.NewClient(&cfg.Engine)
	pdf := raster.NewPDF()
	enhancer := vision.NewEnhancer(openai.NewClient(&cfg.Vision), pdf, &cfg.Vision)

	schemas, err := validator.LoadSchemas()
	if err != nil {
		return fmt.Errorf("failed to load validation schemas: %w", err)
	}
	policy := validator.Policy{
		EarningsAbsTolerance: cfg.Validation.EarningsAbsTolerance,
		EarningsPctTolerance: cfg.Validation.EarningsPctTolerance,
		LowGrossFloor:        cfg.Validation.LowGrossFloor,
		HighGrossCeiling:     cfg.Validation.HighGrossCeiling,
	}
	parser := pipeline.New(
		pdf,
		extract.NewTableAdapter(engine),
		extract.NewTextAdapter(engine),
		enhancer,
		validator.New(policy, schemas),
	)

	// Initialize services and handlers
	resultSvc := service.NewResultService(parser, resultRepo, s3Client, emailSender, cfg)
	resultH := handler.NewResultHandler(resultSvc)
	healthH := handler.NewHealthHandler(db)
	tokens := auth.NewTokenService(cfg.JWT)

	r := router.Setup(tokens, cfg.CORS.AllowedOrigins, resultH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
