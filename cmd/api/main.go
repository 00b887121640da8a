package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-talentmatch-backend/config"
	_ "go-talentmatch-backend/docs" // Important for Swagger
	v1 "go-talentmatch-backend/internal/delivery/http/v1"
	"go-talentmatch-backend/internal/repository/postgres"
	"go-talentmatch-backend/internal/usecase"
	"go-talentmatch-backend/pkg/database"
	"go-talentmatch-backend/pkg/email"
	"go-talentmatch-backend/pkg/logger"
	"go-talentmatch-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// @title           TalentMatch Backend API
// @version         1.0
// @description     Jobseeker/employer matching backend using Clean Architecture.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting talentmatch backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Repositories
	accountRepo := postgres.NewAccountRepository(dbPool)
	jobseekerRepo := postgres.NewJobSeekerRepository(dbPool)
	employerRepo := postgres.NewEmployerRepository(dbPool)
	snapshotRepo := postgres.NewSnapshotRepository(dbPool)
	interviewRepo := postgres.NewInterviewRepository(dbPool)

	// 5. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - notifications will be log-only")
	}
	notifier := email.NewDispatcher(emailService, cfg.FrontendURL)

	// 6. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)

	authUC := usecase.NewAuthUsecase(accountRepo)
	jobseekerUC := usecase.NewJobSeekerUsecase(jobseekerRepo, validate, cfg.MinSummaryLength)
	verificationUC := usecase.NewVerificationUsecase(employerRepo)
	employerUC := usecase.NewEmployerUsecase(employerRepo, jobseekerRepo, verificationUC, validate, cfg.SearchDefaultPageSize, cfg.SearchMaxPageSize)
	snapshotUC := usecase.NewSnapshotUsecase(snapshotRepo, jobseekerRepo, employerRepo, accountRepo, verificationUC, notifier)
	interviewUC := usecase.NewInterviewUsecase(interviewRepo, jobseekerRepo, employerRepo, accountRepo, verificationUC, validate, notifier)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:         authUC,
		JobseekerUC:    jobseekerUC,
		EmployerUC:     employerUC,
		VerificationUC: verificationUC,
		SnapshotUC:     snapshotUC,
		InterviewUC:    interviewUC,
		Config:         cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
