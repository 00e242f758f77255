package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/docscanhq/docscan/internal/common"
	"github.com/docscanhq/docscan/internal/export"
	"github.com/docscanhq/docscan/internal/pipeline"
	"github.com/docscanhq/docscan/internal/repository"
	"github.com/docscanhq/docscan/internal/server"
)

func main() {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("docscand")
	var (
		addr = fs.StringLong("addr", "", "HTTP listen address (overrides HTTP_ADDR)")
		dsn  = fs.StringLong("db", "", "database DSN (overrides DB_URL)")
	)
	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("DOCSCAN")); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if *addr != "" {
		cfg.Server.HTTPAddr = *addr
	}
	if *dsn != "" {
		cfg.Database.DSN = *dsn
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("database open failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("database close failed", "error", err)
		}
	}()

	pipe := pipeline.NewPipeline(store, store, pipeline.Config{MinConfidence: cfg.Extract.MinConfidence}, logger)
	exporter := export.NewService(store, store, logger)
	api := server.New(cfg.Extract, store, store, pipe, exporter, logger)

	srv := &http.Server{
		Addr:         cfg.Server.HTTPAddr,
		Handler:      api.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	fmt.Println("stopped.")
}
