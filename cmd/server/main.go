package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/saheminvest/saheminvest-backend/internal/api"
	"github.com/saheminvest/saheminvest-backend/internal/config"
	"github.com/saheminvest/saheminvest-backend/internal/database"
	"github.com/saheminvest/saheminvest-backend/internal/repository"
	"github.com/saheminvest/saheminvest-backend/internal/secrets"
	"github.com/saheminvest/saheminvest-backend/internal/service"
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

	// Apply pending migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	vault, err := secrets.NewVault(cfg.Secrets.FernetKey)
	if err != nil {
		log.Fatalf("Failed to initialize encryption vault: %v", err)
	}
	if !vault.Enabled() {
		log.Println("FERNET_KEY not set; payout account storage is disabled")
	}

	// Create repositories
	userRepo := repository.NewUserRepository(db)
	dealRepo := repository.NewDealRepository(db)
	distributionRepo := repository.NewDistributionRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	payoutRepo := repository.NewPayoutRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	dealService := service.NewDealService(dealRepo)
	distributionService := service.NewDistributionService(db, distributionRepo, dealRepo, walletRepo)
	walletService := service.NewWalletService(walletRepo, payoutRepo, userRepo, vault)
	dashboardService := service.NewDashboardService(dashboardRepo)

	// Schedule nightly wallet reconciliation
	scheduler := cron.New()
	if cfg.Jobs.WalletReconcileSpec != "" {
		_, err := scheduler.AddFunc(cfg.Jobs.WalletReconcileSpec, func() {
			corrected, err := walletService.ReconcileAll()
			if err != nil {
				log.Printf("Wallet reconciliation sweep failed: %v", err)
				return
			}
			log.Printf("Wallet reconciliation sweep complete, %d corrected", corrected)
		})
		if err != nil {
			log.Fatalf("Failed to schedule wallet reconciliation: %v", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	// Create router
	router := api.NewRouter(api.Services{
		System:       systemService,
		Deal:         dealService,
		Distribution: distributionService,
		Wallet:       walletService,
		Dashboard:    dashboardService,
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
