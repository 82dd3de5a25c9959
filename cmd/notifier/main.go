package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/muhammadheryan/patient-registration/cmd/config"
	"github.com/muhammadheryan/patient-registration/model"
	"github.com/muhammadheryan/patient-registration/thirdparty/rabbitmq"
	"github.com/muhammadheryan/patient-registration/utils/logger"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		panic(err)
	}
	defer logger.Close()

	if !cfg.RabbitMQEnabled() {
		logger.Fatal("RABBITMQ_HOST is not set")
	}

	consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
	if err != nil {
		logger.Fatal("err connect rabbitmq", zap.Error(err))
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stopped, err := consumer.Start(ctx, recordRegistration)
	if err != nil {
		logger.Fatal("err start consumer", zap.Error(err))
	}

	logger.Info("notifier waiting for registrations")
	<-stopped
	logger.Info("notifier stopped")
}

// recordRegistration writes the audit entry for a new patient.
func recordRegistration(_ context.Context, event model.PatientRegisteredEvent) error {
	logger.Info("patient registered",
		zap.Uint64("patient_id", event.PatientID),
		zap.String("full_name", event.FullName),
		zap.String("email", event.Email),
		zap.Bool("has_photo", event.HasPhoto),
		zap.Time("registered_at", event.RegisteredAt),
	)
	return nil
}
