package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/muhammadheryan/patient-registration/cmd/config"
	"github.com/muhammadheryan/patient-registration/thirdparty/patientapi"
	"github.com/muhammadheryan/patient-registration/transport/web"
	"github.com/muhammadheryan/patient-registration/utils/logger"
	validatorx "github.com/muhammadheryan/patient-registration/utils/validator"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		panic(err)
	}
	defer logger.Close()

	validatorx.Init()

	api := patientapi.New(cfg.Web.APIBaseURL, cfg.Web.APITimeout)

	server := &http.Server{
		Addr:         ":" + cfg.Web.Port,
		Handler:      web.NewTransport(api),
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
			logger.Error("err shutdown web server", zap.Error(err))
		}
	}()

	logger.Info("web server running", zap.String("port", cfg.Web.Port), zap.String("api", cfg.Web.APIBaseURL))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("failed web server", zap.Error(err))
	}
}
