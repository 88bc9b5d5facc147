// Command mockapi serves a development stand-in for the registration API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ctchen222/signup-form/internal/api/controller"
	"ctchen222/signup-form/internal/api/repository"
	"ctchen222/signup-form/internal/api/service"
	"ctchen222/signup-form/internal/config"
	"ctchen222/signup-form/internal/db"
	"ctchen222/signup-form/internal/logger"
	"ctchen222/signup-form/internal/server"
	"ctchen222/signup-form/internal/telemetry"

	"github.com/spf13/pflag"
)

func main() {
	ctx := context.Background()

	flags := pflag.NewFlagSet("mockapi", pflag.ExitOnError)
	flags.String("addr", "", "listen address")
	flags.Bool("require-token", false, "reject requests without a reCAPTCHA token")
	flags.String("dsn", "", "sqlite data source name")
	flags.String("log-level", "", "debug, info, warn or error")
	flags.Bool("telemetry", false, "export traces, metrics and logs over OTLP")
	flags.String("otlp-endpoint", "", "OTLP gRPC collector address")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(flags)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{Level: cfg.Log.Level, Otel: cfg.Telemetry.Enabled})

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel(ctx, telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		ServiceName:  cfg.Telemetry.ServiceName + "-mockapi",
		Endpoint:     cfg.Telemetry.OTLPEndpoint,
		StdoutTraces: cfg.Telemetry.StdoutTraces,
	})
	if err != nil {
		log.Error("failed to initialize telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Error("error shutting down telemetry", "error", err)
		}
	}()

	DB, err := db.Open(ctx, cfg.MockAPI.DSN)
	if err != nil {
		log.Error("failed to open sqlite db", "error", err)
		os.Exit(1)
	}
	defer DB.Close()

	registrationRepo := repository.NewRegistrationRepository(DB)
	registrationService := service.NewRegistrationService(registrationRepo)
	registrationController := controller.NewRegistrationController(registrationService, cfg.MockAPI.RequireToken)

	srv := server.NewServer(registrationController)

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	httpServer := &http.Server{
		Addr:              cfg.MockAPI.Addr,
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("http server started", "addr", cfg.MockAPI.Addr, "require_token", cfg.MockAPI.RequireToken)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("ListenAndServe", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}

	log.Info("server exiting")
}
