package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"showroom-backend/internal/auth"
	"showroom-backend/internal/cache"
	"showroom-backend/internal/config"
	"showroom-backend/internal/database"
	"showroom-backend/internal/db"
	"showroom-backend/internal/handlers"
	"showroom-backend/internal/health"
	apphttp "showroom-backend/internal/http"
	"showroom-backend/internal/middleware"
	"showroom-backend/internal/repositories"
	"showroom-backend/internal/services"
	"showroom-backend/internal/storage"
	"showroom-backend/migrations"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	if os.Getenv("LOG_LEVEL") == "debug" {
		logrus.SetLevel(logrus.DebugLevel)
	}

	cfg := config.Load()
	ctx := context.Background()

	pool := db.Connect(cfg)
	defer pool.Close()

	migrator := database.NewMigrator(pool, migrations.FS)
	if err := migrator.RunMigrations(ctx); err != nil {
		logrus.WithError(err).Fatal("database migration failed")
	}

	cacheClient := cache.New(ctx, cfg)
	s3Client := storage.NewS3Client(ctx, cfg)

	userRepo := repositories.NewUserRepository(pool)
	vehicleRepo := repositories.NewVehicleRepository(pool)
	customerRepo := repositories.NewCustomerRepository(pool)
	saleRepo := repositories.NewSaleRepository(pool)

	jwtManager := auth.NewJWTManager(cfg)

	userService := services.NewUserService(userRepo, jwtManager)
	vehicleService := services.NewVehicleService(vehicleRepo, s3Client, cacheClient)
	customerService := services.NewCustomerService(customerRepo)
	saleService := services.NewSaleService(saleRepo, cacheClient)
	analyticsService := services.NewAnalyticsService(saleRepo, vehicleRepo, cacheClient)
	reportService := services.NewReportService(saleRepo)

	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)

	router := apphttp.NewRouter(apphttp.RouterDeps{
		Auth:      authMiddleware,
		AuthH:     handlers.NewAuthHandler(userService),
		Users:     handlers.NewUserHandler(userService),
		Vehicles:  handlers.NewVehicleHandler(vehicleService),
		Customers: handlers.NewCustomerHandler(customerService),
		Sales:     handlers.NewSaleHandler(saleService),
		Analytics: handlers.NewAnalyticsHandler(analyticsService),
		Reports:   handlers.NewReportHandler(reportService),
		Health:    health.NewChecker(pool, cacheClient),
	})

	handler := middleware.CORS(cfg)(
		middleware.PanicRecovery(
			middleware.RequestLogging(router)))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.WithField("port", cfg.Server.Port).Info("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logrus.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("graceful shutdown failed")
	}
	logrus.Info("server stopped")
}
