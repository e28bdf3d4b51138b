package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"dicegame_config/internal/app/port"
	"dicegame_config/internal/app/service"
	"dicegame_config/internal/infrastructure/configloader"
	"dicegame_config/internal/infrastructure/export"
	"dicegame_config/internal/infrastructure/httpclient"
	clientprovider "dicegame_config/internal/infrastructure/network/client"
	networkdefinition "dicegame_config/internal/infrastructure/network/definition"
	"dicegame_config/internal/infrastructure/render"
	"dicegame_config/internal/infrastructure/restapi"
	"dicegame_config/internal/pkg/logger"
	"dicegame_config/internal/pkg/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// newHost builds the export host from the configured capabilities.
func newHost(cfg *configloader.Config) export.Host {
	var host export.Host
	if cfg.Export.ModuleSystem {
		host.Module = export.NewModuleExports()
	}
	if cfg.Export.GlobalNamespace {
		host.Global = export.NewGlobals()
	}
	return host
}

// newVerificationService wires the verification service against the real network clients.
func newVerificationService(cfg *configloader.Config, zapLogger *zap.Logger, m *metrics.Metrics, records port.ContractConfigProvider) port.VerificationService {
	appLogger := logger.NewSlogAdapter()
	clients := clientprovider.NewEVMClientProvider(cfg, appLogger)
	explorer := httpclient.NewExplorerClient(time.Duration(cfg.Explorer.RequestTimeoutMillis)*time.Millisecond, zapLogger)
	return service.NewVerificationService(records, clients, explorer, appLogger, m, cfg)
}

// buildHandler publishes the record on the host and returns the API handler serving it.
func buildHandler(cfg *configloader.Config, zapLogger *zap.Logger, m *metrics.Metrics) (*restapi.ContractConfigHandler, export.Surface) {
	appLogger := logger.NewSlogAdapter()
	records := networkdefinition.NewContractConfigProvider(appLogger)

	host := newHost(cfg)
	surface := export.Publish(host, records.GetContractConfig())
	appLogger.Info("Contract config published", "surface", surface, "name", export.Name)

	verifier := newVerificationService(cfg, zapLogger, m, records)
	return restapi.NewContractConfigHandler(host, verifier, appLogger), surface
}

// runDump renders the built-in record to out, or to stdout when out is empty.
func runDump(stdout io.Writer, format string, out string) error {
	f, err := render.ParseFormat(format)
	if err != nil {
		return err
	}
	body, err := render.Render(f, networkdefinition.ContractConfig())
	if err != nil {
		return err
	}
	if out == "" {
		_, err = stdout.Write(body)
		return err
	}
	if err := os.WriteFile(out, body, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	return nil
}

// runVerify runs one verification, prints the report as JSON and reports whether it is free of errors.
func runVerify(ctx context.Context, stdout io.Writer, cfg *configloader.Config, zapLogger *zap.Logger) (bool, error) {
	records := networkdefinition.NewContractConfigProvider(logger.NewSlogAdapter())
	verifier := newVerificationService(cfg, zapLogger, nil, records)
	return writeReport(ctx, stdout, verifier)
}

func writeReport(ctx context.Context, stdout io.Writer, verifier port.VerificationService) (bool, error) {
	report, err := verifier.Refresh(ctx)
	if err != nil {
		return false, err
	}
	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return false, fmt.Errorf("failed to encode report: %w", err)
	}
	if _, err := fmt.Fprintln(stdout, string(body)); err != nil {
		return false, err
	}
	return !report.HasErrors(), nil
}
