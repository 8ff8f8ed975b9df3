package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/carelink/booking-api/internal/config"
	"github.com/carelink/booking-api/internal/handler"
	appointmentHandler "github.com/carelink/booking-api/internal/handler/appointment"
	doctorHandler "github.com/carelink/booking-api/internal/handler/doctor"
	hospitalHandler "github.com/carelink/booking-api/internal/handler/hospital"
	patientHandler "github.com/carelink/booking-api/internal/handler/patient"
	"github.com/carelink/booking-api/internal/middleware"
	"github.com/carelink/booking-api/internal/repository/postgres"
	"github.com/carelink/booking-api/internal/router"
	appointmentService "github.com/carelink/booking-api/internal/service/appointment"
	authService "github.com/carelink/booking-api/internal/service/auth"
	directoryService "github.com/carelink/booking-api/internal/service/directory"
	hospitalService "github.com/carelink/booking-api/internal/service/hospital"
	recordService "github.com/carelink/booking-api/internal/service/record"
	"github.com/carelink/booking-api/pkg/auth"
	"github.com/carelink/booking-api/pkg/lock"
	"github.com/carelink/booking-api/pkg/logger"
	"github.com/carelink/booking-api/pkg/metrics"
	"github.com/carelink/booking-api/pkg/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Setup(cfg.Server.LogLevel)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	appointmentRepo := postgres.NewAppointmentRepository(db)
	hospitalRepo := postgres.NewHospitalRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	patientRepo := postgres.NewPatientRepository(db)

	locker := newLocker(cfg.Redis)

	files, err := storage.NewLocalStore(cfg.Storage.UploadDir, cfg.Storage.BaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize file storage")
	}

	tokens := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	m := metrics.NewMetrics("booking")

	directorySvc := directoryService.NewService(hospitalRepo, doctorRepo)
	authSvc := authService.NewService(patientRepo, doctorRepo, hospitalRepo, tokens)
	appointmentSvc := appointmentService.NewService(appointmentRepo, hospitalRepo, doctorRepo, locker, m)
	recordSvc := recordService.NewService(appointmentRepo, patientRepo, files, m)
	hospitalSvc := hospitalService.NewService(doctorRepo, hospitalRepo, directorySvc)

	authMiddleware := middleware.NewAuthMiddleware(tokens)

	h := handler.NewHandler(db)
	appointmentH := appointmentHandler.NewHandler(appointmentSvc, directorySvc)
	patientH := patientHandler.NewHandler(authSvc, recordSvc)
	doctorH := doctorHandler.NewHandler(authSvc, appointmentSvc, recordSvc)
	hospitalH := hospitalHandler.NewHandler(authSvc, appointmentSvc, hospitalSvc)

	r := router.NewRouter(
		authMiddleware,
		appointmentH,
		patientH,
		doctorH,
		hospitalH,
		h,
		router.RouterConfig{
			RateLimit: middleware.RateLimiterConfig{
				RPS:   cfg.RateLimit.RPS,
				Burst: cfg.RateLimit.Burst,
			},
			CORSConfig:    middleware.DefaultCORSConfig(),
			MetricsPrefix: "booking_http",
			UploadDir:     cfg.Storage.UploadDir,
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

// newLocker prefers the shared Redis lock when a Redis URL is
// configured; a single-instance deployment falls back to the in-process
// lock.
func newLocker(cfg config.RedisConfig) lock.Locker {
	if cfg.URL == "" {
		log.Warn().Msg("redis not configured, using in-process slot locks")
		return lock.NewLocalLocker()
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid redis URL")
	}
	return lock.NewRedisLocker(redis.NewClient(opts))
}
