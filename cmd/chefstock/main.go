package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/yuditriaji/chefstock/pkg/config"
	"github.com/yuditriaji/chefstock/pkg/logger"
	"github.com/yuditriaji/chefstock/pkg/storage"
)

func main() {
	os.Exit(run())
}

func run() int {
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     cfg.IsDevelopment(),
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	kv, err := storage.OpenSQLite(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chefstock: open state %s: %v\n", cfg.Storage.Path, err)
		return 1
	}
	defer kv.Close()

	a, err := newApp(cfg, appLogger, kv, os.Stdout, os.Stderr, os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chefstock: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return a.run(ctx, os.Args[1:])
}
