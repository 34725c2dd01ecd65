package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/yuditriaji/chefstock/internal/stubapi"
	"github.com/yuditriaji/chefstock/pkg/config"
	"github.com/yuditriaji/chefstock/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	// Load environment variables
	envErr := godotenv.Load()
	cfg := config.LoadEnv()

	appLogger := logger.NewZapLogger(&logger.ZapLoggerConfig{
		IsDevelopment:     cfg.IsDevelopment(),
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	})
	defer appLogger.Sync()
	if envErr != nil {
		appLogger.Debug("No .env file found, using system environment variables")
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	stub, err := stubapi.New(cfg.Stub, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to build stub backend", zap.Error(err))
	}
	stub.SeedDemo()

	srv := &http.Server{
		Addr:    ":" + cfg.Stub.Port,
		Handler: stub.Router(),
	}

	go func() {
		appLogger.Info("Stub backend listening",
			zap.String("addr", srv.Addr),
			zap.String("username", cfg.Stub.Username))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down stub backend...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", zap.Error(err))
	}
}
