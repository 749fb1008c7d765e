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

	_ "github.com/lib/pq"

	"github.com/yefeblgn/TodoListApp/internal/config"
	todohttp "github.com/yefeblgn/TodoListApp/internal/http"
	"github.com/yefeblgn/TodoListApp/internal/middleware"
	"github.com/yefeblgn/TodoListApp/internal/repository"
	"github.com/yefeblgn/TodoListApp/internal/service"
	"github.com/yefeblgn/TodoListApp/internal/token"
)

func main() {
	// Initial logger at info level; reconfigured after config load
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(context.Background()); err != nil {
		logger.Error("application failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.ParseLogLevel(),
	}))
	slog.SetDefault(logger)

	logger.Info("config loaded",
		"port", cfg.ServerPort,
		"auth_required", cfg.AuthRequired,
		"log_level", cfg.LogLevel,
	)

	// Database connection
	db, err := repository.NewDB(cfg.DB.DSN())
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info("database connected")

	// Repositories
	taskRepo := repository.NewPostgresTask(db)
	userRepo := repository.NewPostgresUser(db)

	// Session token signer
	signer, err := token.NewSigner(cfg.TokenSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}

	// Services
	taskSvc := service.NewTaskService(taskRepo)
	authSvc := service.NewAuthService(userRepo, signer)

	// Auth middleware
	auth := middleware.NewAuth(middleware.AuthConfig{
		Required: cfg.AuthRequired,
		Verifier: signer,
	})

	// HTTP Server
	srv := todohttp.NewServer(cfg.ServerPort, logger, taskSvc, authSvc, auth)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	logger.Info("server starting", "port", cfg.ServerPort)

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped gracefully")
	return nil
}
