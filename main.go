// File: fieldbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fieldbook/config"
	"fieldbook/cron"
	"fieldbook/database"
	bookingRepoPkg "fieldbook/database/repository/booking"
	fieldRepoPkg "fieldbook/database/repository/field"
	"fieldbook/handlers"
	"fieldbook/middleware"
	"fieldbook/routes"
	"fieldbook/services/booking"
	"fieldbook/services/schedule"
	"fieldbook/services/tasks"
	"fieldbook/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	fieldRepo := fieldRepoPkg.NewMongoFieldRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	if err := bookingRepo.EnsureIndexes(); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure booking indexes: %v", err)
	}

	// task queue client for the availability refresh worker.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()

	defaultHours := schedule.OperatingHours{
		Open:  config.AppConfig.FieldOpenHour,
		Close: config.AppConfig.FieldCloseHour,
	}
	clock := schedule.RealClock{}

	// services.
	bookingService := &booking.DefaultBookingSessionService{
		Fields:       fieldRepo,
		Bookings:     bookingRepo,
		Sessions:     booking.NewRedisSessionStore(utils.GetBookingCacheClient()),
		Clock:        clock,
		Tasks:        &tasks.AsynqEnqueuer{Client: asynqClient},
		DefaultHours: defaultHours,
		SessionTTL:   time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute,
	}

	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	fieldHandler := handlers.NewFieldHandler(fieldRepo)

	// Register routes.
	routes.RegisterRoutes(router, bookingHandler, fieldHandler)

	// Background worker keeping field availability badges fresh.
	cron.InitAvailabilityWorker(fieldRepo, bookingRepo, clock, defaultHours)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
