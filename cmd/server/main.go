package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	httpapi "github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/api/http"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/config"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/jobs"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/logger"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/payment"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/repository/postgres"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/scheduler"
	"github.com/EV-Station-based-Rental-System/ev-rental-backend/internal/service"
)

func main() {
	// .env for local development; real deployments set the environment directly
	_ = godotenv.Load()

	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting EV rental backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Repositories
	store := postgres.NewStore(db)

	// Payment providers
	cashProvider := payment.NewCashProvider()
	momoProvider := payment.NewMomoProvider(cfg.Momo)

	// External collaborators
	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	refundSvc := service.NewLoggingRefundService()

	// Services
	bookingSvc := service.NewBookingService(
		store.UserRepository,
		store.KycRepository,
		store.PricingRepository,
		store.VehicleAtStationRepository,
		store.BookingRepository,
		store.FeeRepository,
		store.PaymentRepository,
		[]payment.Provider{cashProvider, momoProvider},
		time.Duration(cfg.Booking.KycValidityDays)*24*time.Hour,
	)
	paymentSvc := service.NewPaymentService(
		store.PaymentRepository,
		store.BookingRepository,
		store.VehicleAtStationRepository,
		store.UserRepository,
		momoProvider,
		emailSvc,
	)
	verificationSvc := service.NewVerificationService(
		store.BookingRepository,
		store.VehicleAtStationRepository,
		store.RentalRepository,
		store.PaymentRepository,
		refundSvc,
	)
	rentalSvc := service.NewRentalService(
		store.RentalRepository,
		store.InspectionRepository,
		store.ReportRepository,
		store.VehicleAtStationRepository,
		store.BookingRepository,
		store.FeeRepository,
	)
	// Reconciliation scheduler
	jobRunner := jobs.NewJobRunner(db, cfg)
	cronScheduler := scheduler.NewScheduler(jobRunner)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	// HTTP surface. Auth terminates at the gateway in front of this
	// service; it forwards the acting user in X-Actor-ID.
	router := httpapi.NewRouter(bookingSvc, paymentSvc, verificationSvc, rentalSvc)
	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
