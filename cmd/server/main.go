package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/robfig/cron/v3"

	"github.com/ba3ai/clarus-backend/internal/api"
	"github.com/ba3ai/clarus-backend/internal/config"
	"github.com/ba3ai/clarus-backend/internal/database"
	"github.com/ba3ai/clarus-backend/internal/market"
	"github.com/ba3ai/clarus-backend/internal/repository"
	"github.com/ba3ai/clarus-backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply pending schema migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create repositories
	investorRepo := repository.NewInvestorRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	contactRepo := repository.NewContactRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	statementRepo := repository.NewStatementRepository(db)
	invitationRepo := repository.NewInvitationRepository(db)
	metricsRepo := repository.NewMetricsRepository(db)
	benchmarkRepo := repository.NewBenchmarkRepository(db)
	preferenceRepo := repository.NewPreferenceRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	investorService := service.NewInvestorService(investorRepo)
	groupService := service.NewGroupService(groupRepo, investorRepo)
	contactService := service.NewContactService(contactRepo)
	documentService := service.NewDocumentService(documentRepo)
	statementService := service.NewStatementService(statementRepo)
	overviewService := service.NewOverviewService(metricsRepo, investorRepo)
	metricsService := service.NewMetricsService(metricsRepo, overviewService)
	viewAsService := service.NewViewAsService(preferenceRepo, groupRepo)

	if cfg.Invite.FernetKey == "" {
		// No configured key: generate an ephemeral one so the server still
		// boots. Outstanding invitation links stop working on restart.
		var key fernet.Key
		if err := key.Generate(); err != nil {
			log.Fatalf("Failed to generate invitation key: %v", err)
		}
		cfg.Invite.FernetKey = key.Encode()
		log.Println("INVITE_FERNET_KEY not set, using an ephemeral invitation key")
	}

	invitationService, err := service.NewInvitationService(
		invitationRepo,
		investorRepo,
		cfg.Invite.FernetKey,
		time.Duration(cfg.Invite.TTLHours)*time.Hour,
	)
	if err != nil {
		log.Fatalf("Failed to initialize invitation service: %v", err)
	}

	marketClient := market.NewDataClient(cfg.Benchmark.BaseURL)
	benchmarkService := service.NewBenchmarkService(benchmarkRepo, marketClient, cfg.Benchmark.Symbols)

	// Background benchmark refresh
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Benchmark.Schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		benchmarkService.RefreshAll(ctx)
	}); err != nil {
		log.Fatalf("Failed to schedule benchmark refresh: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(api.Services{
		System:     systemService,
		Investor:   investorService,
		Contact:    contactService,
		Document:   documentService,
		Statement:  statementService,
		Invitation: invitationService,
		Group:      groupService,
		Overview:   overviewService,
		Metrics:    metricsService,
		Benchmark:  benchmarkService,
		ViewAs:     viewAsService,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
