package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"neksoft-admin/app"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	dotenv := flag.String("env-file", ".env", "optional dotenv file to load before reading the environment")
	flag.Parse()

	cfg, err := app.LoadConfig(*dotenv)
	if err != nil {
		return err
	}

	logger := app.NewLogger(cfg.LogFormat)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}

	return application.Start(ctx)
}
