package main

import (
	"capitalfit/membership-app/internal/api"
	"capitalfit/membership-app/internal/config"
	"capitalfit/membership-app/internal/repository/mongo"
	"capitalfit/membership-app/internal/seed"
	"capitalfit/membership-app/internal/service"
	"capitalfit/membership-app/internal/storage"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// @title CapitalFit Membership API
// @version 1.0
// @description API for managing gym members, plans, payments and monthly profitability.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log.Println("Starting CapitalFit Membership Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureClientIndexes(ctx, appDB.Collection("clients"))
		mongo.EnsurePaymentIndexes(ctx, appDB.Collection("payments"))
		mongo.EnsureBiometricIndexes(ctx, appDB.Collection("biometrics"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Repositories ---
	clientRepo := mongo.NewMongoClientRepository(appDB)
	planRepo := mongo.NewMongoPlanRepository(appDB)
	paymentRepo := mongo.NewMongoPaymentRepository(appDB)
	costsRepo := mongo.NewMongoCostsRepository(appDB)
	biometricRepo := mongo.NewMongoBiometricRepository(appDB)

	// --- First-run Bootstrap ---
	// Populates starter plans and clients only when the collections are
	// empty; existing data is never overwritten.
	if cfg.Seed.Enabled {
		seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := seed.Bootstrap(seedCtx, planRepo, clientRepo); err != nil {
			log.Fatalf("FATAL: Seed bootstrap failed: %v", err)
		}
		seedCancel()
	}

	// --- Initialize Services ---
	authService := service.NewAuthService(clientRepo, cfg.Admin.Username, cfg.Admin.PasswordHash, cfg.JWT.Secret, cfg.JWT.Expiration)
	memberService := service.NewMemberService(clientRepo)
	planService := service.NewPlanService(planRepo)
	paymentService := service.NewPaymentService(paymentRepo, clientRepo, planRepo)
	financeService := service.NewFinanceService(paymentRepo, costsRepo)
	biometricService := service.NewBiometricService(biometricRepo, fileStorage)

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default()

	// --- Setup Routes ---
	api.SetupRoutes(router, cfg.JWT.Secret, authService, memberService, planService, paymentService, financeService, biometricService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
