package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	patientapp "github.com/muhammadheryan/patient-registration/application/patient"
	"github.com/muhammadheryan/patient-registration/cmd/config"
	redisclient "github.com/muhammadheryan/patient-registration/cmd/redis"
	_ "github.com/muhammadheryan/patient-registration/docs"
	patientRepo "github.com/muhammadheryan/patient-registration/repository/patient"
	redisRepo "github.com/muhammadheryan/patient-registration/repository/redis"
	"github.com/muhammadheryan/patient-registration/thirdparty/rabbitmq"
	"github.com/muhammadheryan/patient-registration/transport"
	"github.com/muhammadheryan/patient-registration/utils/barrier"
	"github.com/muhammadheryan/patient-registration/utils/logger"
	"github.com/muhammadheryan/patient-registration/utils/metrics"
	validatorx "github.com/muhammadheryan/patient-registration/utils/validator"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// @title PATIENT REGISTRATION API
// @version 1.0
// @description Patient registration and document photo API
// @host localhost:8080
// @BasePath /
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		// fallback to standard log if zap init fails
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment), zap.String("db_driver", cfg.Database.Driver))

	validatorx.Init()

	// Open the pool lazily; the first request waits for ping + schema sync
	db, err := sqlx.Open(cfg.Database.Driver, cfg.GetDSN())
	if err != nil {
		logger.Fatal("err open db", zap.Error(err))
	}
	defer db.Close()

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Initialize Redis client
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Registration events are optional
	var publisher patientapp.EventPublisher
	if cfg.RabbitMQEnabled() {
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
		if err != nil {
			logger.Error("err connect rabbitmq, events disabled", zap.Error(err))
		} else {
			publisher = p
			defer p.Close()
		}
	}

	// Initialize repositories
	PatientRepo := patientRepo.NewPatientRepository(db)
	RedisRepo := redisRepo.NewRepository()

	// Initialize application layers
	Metrics := metrics.New(prometheus.DefaultRegisterer)
	PatientApp := patientapp.NewPatientApp(cfg, PatientRepo, RedisRepo, publisher, Metrics)

	ready := barrier.New(PatientRepo.Migrate)
	go func() {
		if err := ready.Wait(context.Background()); err != nil {
			logger.Error("err initialize database", zap.Error(err))
			return
		}
		logger.Info("database ready")
	}()

	httpTransport := transport.NewTransport(cfg, PatientApp, ready, prometheus.DefaultGatherer)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("err shutdown server", zap.Error(err))
		}
	}()

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("failed server", zap.Error(err))
	}
}
