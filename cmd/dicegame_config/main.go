package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"dicegame_config/internal/infrastructure/configloader"
	"dicegame_config/internal/infrastructure/restapi"
	"dicegame_config/internal/pkg/logger"
	"dicegame_config/internal/pkg/metrics"
)

func main() {
	app := kingpin.New("dicegame-config", "DiceGame contract configuration: serve, render and verify the CONTRACT_CONFIG record")
	configFile := app.Flag("config", "Path to YAML service configuration file (falls back to CONFIG_PATH, then config/config.yml)").String()
	logLevel := app.Flag("log-level", "Override logging.level from the config file").String()

	serveCmd := app.Command("serve", "Start the HTTP API").Default()
	port := serveCmd.Flag("port", "HTTP port exposed by the service").String()

	dumpCmd := app.Command("dump", "Write the contract config in the requested format")
	dumpFormat := dumpCmd.Flag("format", "Output format: json, yaml or js").Default("js").Enum("json", "yaml", "yml", "js", "javascript")
	dumpOut := dumpCmd.Flag("out", "Output file (stdout when empty)").String()

	verifyCmd := app.Command("verify", "Check the contract config against the live network")
	verifyTimeout := verifyCmd.Flag("timeout", "Overall verification timeout").Default("30s").Duration()

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	if command == dumpCmd.FullCommand() {
		if err := runDump(os.Stdout, *dumpFormat, *dumpOut); err != nil {
			fmt.Fprintf(os.Stderr, "dump failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfgPath := configloader.ResolvePath(*configFile)
	cfg, err := loadConfig(cfgPath, *configFile != "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	if *port != "" {
		cfg.Server.Port = *port
	}

	zapLogger, err := logger.InitZap(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = zapLogger.Sync()
	}()
	zapLogger.Info("Configuration loaded", zap.String("path", cfgPath))

	switch command {
	case verifyCmd.FullCommand():
		ctx, cancel := context.WithTimeout(context.Background(), *verifyTimeout)
		defer cancel()
		ok, err := runVerify(ctx, os.Stdout, cfg, zapLogger)
		if err != nil {
			logger.Fatal("Verification failed", "error", err)
		}
		if !ok {
			_ = zapLogger.Sync()
			os.Exit(1)
		}
	case serveCmd.FullCommand():
		serve(cfg, zapLogger)
	}
}

// loadConfig reads cfgPath. A missing default file is not an error: defaults are used instead.
func loadConfig(cfgPath string, explicit bool) (*configloader.Config, error) {
	cfg, err := configloader.Load(cfgPath)
	if err == nil {
		return cfg, nil
	}
	if !explicit && os.Getenv("CONFIG_PATH") == "" && errors.Is(err, os.ErrNotExist) {
		return configloader.Default(), nil
	}
	return nil, err
}

func serve(cfg *configloader.Config, zapLogger *zap.Logger) {
	m := metrics.MustRegisterMetrics()
	deps := restapi.RouterDeps{
		Config:   cfg,
		Logger:   zapLogger.Named("http"),
		Metrics:  m,
		Gatherer: prometheus.DefaultGatherer,
	}
	handler, surface := buildHandler(cfg, zapLogger, m)
	m.ExportSurface.WithLabelValues(string(surface)).Set(1)

	router := restapi.SetupRouter(handler, deps)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start HTTP server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down HTTP server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("HTTP server forced to shutdown", "error", err)
		return
	}
	logger.Info("HTTP server stopped")
}
