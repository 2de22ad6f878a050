package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"schedula/config"
	"schedula/cron"
	"schedula/database"
	appointmentRepo "schedula/database/repository/appointment"
	blockedRepo "schedula/database/repository/blocked"
	companyRepo "schedula/database/repository/company"
	providerRepo "schedula/database/repository/provider"
	serviceRepo "schedula/database/repository/service"
	"schedula/handlers"
	"schedula/routes"
	"schedula/services/directory"
	"schedula/services/scheduling"
	"schedula/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	loc, err := time.LoadLocation(config.AppConfig.EngineTimezone)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid engine timezone %q: %v", config.AppConfig.EngineTimezone, err)
	}

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	companies := companyRepo.NewMongoCompanyRepo()
	providers := providerRepo.NewMongoProviderRepo()
	services := serviceRepo.NewMongoServiceRepo()
	appointments := appointmentRepo.NewMongoAppointmentRepo()
	blocked := blockedRepo.NewMongoBlockedRepo()

	idxCtx, idxCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer idxCancel()
	for name, repo := range map[string]interface {
		EnsureIndexes(ctx context.Context) error
	}{
		"companies":    companies,
		"providers":    providers,
		"services":     services,
		"appointments": appointments,
		"blockedTimes": blocked,
	} {
		if err := repo.EnsureIndexes(idxCtx); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure %s indexes: %v", name, err)
		}
	}

	// services.
	schedulingService := scheduling.NewSchedulingService(
		providers,
		companies,
		services,
		appointments,
		blocked,
		utils.GetCacheClient(),
		time.Duration(config.AppConfig.AvailabilityCacheTTLSec)*time.Second,
		loc,
		scheduling.ParseOverlapPolicy(config.AppConfig.AvailabilityOverlapPolicy),
		config.AppConfig.BookingCheckBlockedTime,
	)
	directoryService := directory.NewDirectoryService(companies, providers, services, utils.GetCacheClient())

	handlerBundle := &routes.HandlerBundle{
		Scheduling: &handlers.SchedulingHandler{Service: schedulingService},
		Directory:  &handlers.DirectoryHandler{Service: directoryService},
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Background workers.
	cron.InitCompletionWorker(schedulingService)
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

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
