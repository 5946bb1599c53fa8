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

	"github.com/PayAidPayments/payaid-crm-sub001/config"
	"github.com/PayAidPayments/payaid-crm-sub001/controllers"
	"github.com/PayAidPayments/payaid-crm-sub001/middleware"
	"github.com/PayAidPayments/payaid-crm-sub001/repository"
	"github.com/PayAidPayments/payaid-crm-sub001/routes"
	"github.com/PayAidPayments/payaid-crm-sub001/service"
	"github.com/PayAidPayments/payaid-crm-sub001/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.LogLevel, cfg.Debug)

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.InitMongoDB(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		utils.Logger.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer repository.CloseMongoDB(context.Background())

	if err := repository.InitializeCollections(ctx, db); err != nil {
		utils.Logger.Error().Err(err).Msg("initialize collections failed")
	}

	leads := repository.NewLeadRepository(db, cfg.DBTimeout)
	enrollments := repository.NewEnrollmentRepository(db, cfg.DBTimeout)
	posts := repository.NewSocialMediaRepository(db, cfg.DBTimeout)
	operationLogs := repository.NewOperationLogRepository(db, cfg.DBTimeout)

	metrics := middleware.NewMetrics(prometheus.DefaultRegisterer)

	router := gin.New()
	router.Use(middleware.CORS(cfg.CORSOrigins))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(metrics.Handler())
	router.Use(middleware.OperationLoggerMiddleware(operationLogs))
	router.Use(middleware.ErrorHandler())

	routes.RegisterRoutes(router, routes.Dependencies{
		JWTKey:      []byte(cfg.JWTKey),
		Allocation:  controllers.NewAllocationController(service.NewAllocationService(leads, cfg.SuggestionLimit)),
		Sequences:   controllers.NewSequenceController(enrollments),
		SocialMedia: controllers.NewSocialMediaController(posts),
		DB:          db,
		Debug:       cfg.Debug,
		Metrics:     promhttp.Handler(),
	})

	purger := service.NewOperationLogPurger(operationLogs, cfg.OperationLogRetentionDays)
	service.ScheduleDailyTaskAt(ctx, 3, 0, 0, purger.Purge)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		utils.Logger.Info().Int("port", cfg.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Logger.Fatal().Err(err).Msg("start server failed")
		}
	}()

	<-ctx.Done()
	utils.Logger.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Logger.Error().Err(err).Msg("server shutdown failed")
	}

	utils.Logger.Info().Msg("server stopped")
}
