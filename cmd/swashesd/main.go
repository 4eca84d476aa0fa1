package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/swashes-solutions/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/swashes-solutions/internal/adapter/kafka"
	"github.com/couchcryptid/swashes-solutions/internal/adapter/solutioncache"
	"github.com/couchcryptid/swashes-solutions/internal/adapter/swashes"
	"github.com/couchcryptid/swashes-solutions/internal/config"
	"github.com/couchcryptid/swashes-solutions/internal/observability"
	"github.com/couchcryptid/swashes-solutions/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	runner, err := swashes.NewRunner(cfg.SwashesBin, cfg.SolveTimeout, logger)
	if err != nil {
		logger.Error("failed to locate solver binary", "error", err)
		os.Exit(1)
	}
	logger.Info("solver binary found", "path", runner.BinaryPath())

	solver := solutioncache.New(runner, cfg.CacheSize, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Without a suite manifest the service is request-driven and ready as
	// soon as the solver binary resolves.
	ready := httpadapter.ReadinessChecker(alwaysReady{})

	var kafkaWriter *kafkaadapter.Writer
	if cfg.SuiteManifest != "" {
		cases, err := pipeline.LoadManifest(cfg.SuiteManifest)
		if err != nil {
			logger.Error("failed to load suite manifest", "error", err)
			os.Exit(1)
		}

		fileSink, err := pipeline.NewFileSink(cfg.OutputDir, cfg.GridColumns, logger)
		if err != nil {
			logger.Error("failed to create output dir", "error", err)
			os.Exit(1)
		}

		loader := pipeline.MultiLoader{fileSink}
		if cfg.KafkaEnabled {
			kafkaWriter = kafkaadapter.NewWriter(cfg, logger)
			loader = append(loader, kafkaWriter)
			logger.Info("kafka sink enabled", "topic", cfg.KafkaSinkTopic)
		}

		source := pipeline.NewManifestSource(cases)
		transformer := pipeline.NewSolverTransformer(solver, metrics, logger)
		p := pipeline.New(source, transformer, loader, logger, metrics, cfg.BatchSize)
		ready = p

		go func() {
			if err := p.Run(ctx); err != nil {
				logger.Error("pipeline error", "error", err)
			}
		}()
		logger.Info("suite pipeline enabled", "manifest", cfg.SuiteManifest, "cases", len(cases))
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, solver, ready, metrics, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaWriter != nil {
		if err := kafkaWriter.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

type alwaysReady struct{}

func (alwaysReady) CheckReadiness(context.Context) error { return nil }
