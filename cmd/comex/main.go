// Package main is the entry point for the Comex import intelligence dashboard.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ChiaviniK/ComexioCase/business/catalog"
	catalogDI "github.com/ChiaviniK/ComexioCase/business/catalog/di"
	"github.com/ChiaviniK/ComexioCase/business/inference"
	inferenceApp "github.com/ChiaviniK/ComexioCase/business/inference/app"
	inferenceDI "github.com/ChiaviniK/ComexioCase/business/inference/di"
	"github.com/ChiaviniK/ComexioCase/business/inference/domain"
	"github.com/ChiaviniK/ComexioCase/business/inference/infra/chart"
	"github.com/ChiaviniK/ComexioCase/business/inference/infra/csvexport"
	"github.com/ChiaviniK/ComexioCase/business/inference/infra/reporter"
	"github.com/ChiaviniK/ComexioCase/business/listing"
	"github.com/ChiaviniK/ComexioCase/business/rates"
	"github.com/ChiaviniK/ComexioCase/business/trends"
	trendsApp "github.com/ChiaviniK/ComexioCase/business/trends/app"
	trendsDI "github.com/ChiaviniK/ComexioCase/business/trends/di"
	"github.com/ChiaviniK/ComexioCase/internal/apm"
	"github.com/ChiaviniK/ComexioCase/internal/config"
	"github.com/ChiaviniK/ComexioCase/internal/health"
	"github.com/ChiaviniK/ComexioCase/internal/logger"
	"github.com/ChiaviniK/ComexioCase/internal/metrics"
	"github.com/ChiaviniK/ComexioCase/internal/monolith"
	"github.com/ChiaviniK/ComexioCase/pkg/ui"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

type options struct {
	configPath string
	cli        bool
	category   string
	csvPath    string
	charts     bool
	trends     string
	variant    string
}

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.BoolVar(&opts.cli, "cli", false, "Print one refresh to the console instead of running the TUI")
	flag.StringVar(&opts.category, "category", "", "Category to refresh in CLI mode (default: all)")
	flag.StringVar(&opts.csvPath, "csv", "", "Write the CLI records to this CSV file")
	flag.BoolVar(&opts.charts, "charts", false, "Render charts in CLI mode")
	flag.StringVar(&opts.trends, "trends", "", "Trend source to rank in CLI mode (default: all)")
	flag.StringVar(&opts.variant, "variant", "", "Presentation variant (overrides config)")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("comex %s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		if opts.cli {
			fmt.Fprintf(os.Stderr, "received shutdown signal: %v\n", sig)
		}
		cancel()
	}()

	if err := run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type namedModule struct {
	name   string
	module monolith.Module
}

func run(ctx context.Context, opts options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.App.TUIMode = !opts.cli
	if opts.variant != "" {
		cfg.Presentation.Variant = opts.variant
	}

	variant, err := ui.LookupVariant(cfg.Presentation.Variant)
	if err != nil {
		return err
	}

	// Logs go to stderr in CLI mode and are discarded under the TUI
	var logOut io.Writer = os.Stderr
	if cfg.App.TUIMode {
		logOut = io.Discard
	}
	log := logger.New(logOut, logger.ParseLevel(cfg.App.LogLevel), cfg.App.Name, nil)
	log.Info(ctx, "starting comex",
		"version", version,
		"environment", cfg.App.Environment,
		"variant", variant.Name,
	)

	stopTelemetry, err := setupTelemetry(ctx, cfg, logOut, log)
	if err != nil {
		return err
	}
	defer stopTelemetry()

	healthServer := health.NewServer(cfg.Telemetry.HealthPort, version)
	if err := healthServer.Start(); err != nil {
		log.Warn(ctx, "failed to start health server", "error", err)
		healthServer = nil
	} else {
		log.Info(ctx, "health server started", "port", cfg.Telemetry.HealthPort)
	}
	defer healthServer.Stop(context.Background())

	mono := monolith.New(cfg, log, healthServer)

	// Define modules in dependency order
	modules := []namedModule{
		{"catalog", &catalog.Module{}},
		{"rates", &rates.Module{}},
		{"listing", &listing.Module{}},
		{"inference", &inference.Module{}},
		{"trends", &trends.Module{}},
	}
	all := make([]monolith.Module, 0, len(modules))
	for _, m := range modules {
		all = append(all, m.module)
	}
	if err := mono.RegisterModules(all...); err != nil {
		return fmt.Errorf("failed to register modules: %w", err)
	}

	if opts.cli {
		if err := mono.StartModules(ctx, all...); err != nil {
			return fmt.Errorf("failed to start modules: %w", err)
		}
		return runCLI(ctx, mono, variant, opts, log)
	}

	startFunc := func() error {
		for _, m := range modules {
			ui.Send(ui.StartupMsg{Step: m.name, Status: "connecting"})
			if err := mono.StartModules(ctx, m.module); err != nil {
				ui.Send(ui.StartupMsg{Step: m.name, Status: "failed", Message: err.Error()})
				return fmt.Errorf("failed to start %s module: %w", m.name, err)
			}
			ui.Send(ui.StartupMsg{Step: m.name, Status: "done"})
		}
		return nil
	}
	return runTUI(ctx, mono, variant, startFunc)
}

func setupTelemetry(ctx context.Context, cfg *config.Config, console io.Writer, log *logger.Logger) (func(), error) {
	if !cfg.Telemetry.Enabled {
		return func() {}, nil
	}

	headers, err := apm.ParseHeaders(cfg.Telemetry.OTLPHeaders)
	if err != nil {
		return nil, err
	}

	traceProvider, err := apm.NewTraceProvider(cfg.Telemetry.ServiceName,
		apm.WithProvider(apm.Provider(cfg.Telemetry.TraceProvider), apm.Settings{
			Endpoint: cfg.Telemetry.OTLPEndpoint,
			Headers:  headers,
			Console:  console,
		}, log))
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "tracing initialized", "provider", cfg.Telemetry.TraceProvider)

	registry := prometheus.NewRegistry()
	metricOpts := []metrics.OptionFn{
		metrics.WithServiceName(cfg.Telemetry.ServiceName),
		metrics.WithPrometheus(),
	}
	if apm.Provider(cfg.Telemetry.TraceProvider) == apm.OTLPProvider && cfg.Telemetry.OTLPEndpoint != "" {
		metricOpts = append(metricOpts, metrics.WithOTLP(cfg.Telemetry.OTLPEndpoint, headers, false))
	}
	meterProvider, err := metrics.NewMetricProvider(registry, metricOpts...)
	if err != nil {
		traceProvider.Stop()
		return nil, err
	}

	metricsServer := metrics.NewServer(cfg.Telemetry.PrometheusPort, registry)
	if err := metricsServer.Start(); err != nil {
		log.Warn(ctx, "failed to start metrics server", "error", err)
	} else {
		log.Info(ctx, "prometheus metrics server started", "port", cfg.Telemetry.PrometheusPort)
	}

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Stop(shutdownCtx)
		_ = meterProvider.Shutdown(shutdownCtx)
		_ = traceProvider.Stop()
	}, nil
}

func runCLI(ctx context.Context, mono monolith.Monolith, variant ui.Variant, opts options, log *logger.Logger) error {
	ctx, span := apm.NewTracer("comexio/cli").Start(ctx, "cli.run")
	defer span.End()

	services := mono.Services()
	importSvc := inferenceDI.GetImportService(services)
	trendSvc := trendsDI.GetTrendService(services)
	renderer := inferenceDI.GetChartRenderer(services)
	out := reporter.NewConsoleReporter(variant)

	categories := catalogDI.GetCatalog(services).IDs()
	if opts.category != "" {
		categories = []string{opts.category}
	}
	span.SetAttributes(attribute.Int("categories", len(categories)))

	var records []domain.InferredImportRecord
	for _, id := range categories {
		batch, err := importSvc.Refresh(ctx, id)
		if err != nil {
			span.Fail(err)
			return err
		}
		if err := out.Report(batch); err != nil {
			return err
		}
		records = append(records, batch.Records...)

		if opts.charts && !batch.IsEmpty() {
			paths, err := renderer.Batch(batch)
			if err != nil {
				log.Warn(ctx, "chart rendering failed", "category", id, "error", err)
			} else {
				out.Artifact("chart", paths...)
			}
		}
	}

	if opts.csvPath != "" {
		if err := csvexport.WriteFile(opts.csvPath, records); err != nil {
			span.Fail(err)
			return err
		}
		out.Artifact("csv", opts.csvPath)
	}

	sources := trendSvc.Sources()
	if opts.trends != "" {
		sources = []string{opts.trends}
	}
	for _, src := range sources {
		report, err := trendSvc.Rank(ctx, src)
		if err != nil {
			// Ranking failures are shown, not fatal.
			log.Warn(ctx, "trend ranking failed", "source", src, "error", err)
			fmt.Fprintf(os.Stdout, "\ntrends %s: %v\n", src, err)
			continue
		}
		if err := out.ReportTrends(report); err != nil {
			return err
		}
		if opts.charts {
			if path, err := renderRanking(renderer, report); err != nil {
				log.Warn(ctx, "ranking chart failed", "source", src, "error", err)
			} else if path != "" {
				out.Artifact("chart", path)
			}
		}
	}

	log.Info(ctx, "cli run complete", "records", len(records))
	return nil
}

func renderRanking(renderer *chart.Renderer, report *trendsApp.Report) (string, error) {
	if len(report.Results) == 0 {
		return "", nil
	}
	labels := make([]string, 0, len(report.Results))
	values := make([]float64, 0, len(report.Results))
	for _, r := range report.Results {
		labels = append(labels, r.EntityKey)
		values = append(values, r.PctChange.InexactFloat64())
	}
	return renderer.Ranking("Variação % · "+report.Source, labels, values, "trends_"+report.Source)
}

func runTUI(ctx context.Context, mono monolith.Monolith, variant ui.Variant, startFunc func() error) error {
	// Channel to receive StartModulesMsg signal
	startSignal := make(chan struct{}, 1)
	ui.OnStartModules = func() {
		select {
		case startSignal <- struct{}{}:
		default:
		}
	}

	services := mono.Services()
	out := reporter.NewTUIReporter()
	cfg := mono.Config()

	latest := func(id string) (*inferenceApp.Batch, error) {
		b, ok := inferenceDI.GetBatchHistory(services).Latest(id)
		if !ok || b.IsEmpty() {
			return nil, fmt.Errorf("no records for %s yet", id)
		}
		return b, nil
	}

	actions := ui.Actions{
		Refresh: func(id string) {
			batch, err := inferenceDI.GetImportService(services).Refresh(ctx, id)
			if err != nil {
				out.Error(err)
				return
			}
			_ = out.Report(batch)
			if variant.ShowCharts && !batch.IsEmpty() {
				if paths, err := inferenceDI.GetChartRenderer(services).Batch(batch); err == nil {
					out.Artifact("chart", paths...)
				}
			}
		},
		Export: func(id string) {
			batch, err := latest(id)
			if err != nil {
				out.Error(err)
				return
			}
			if err := csvexport.WriteFile(cfg.Export.CSVPath, batch.Records); err != nil {
				out.Error(err)
				return
			}
			out.Artifact("csv", cfg.Export.CSVPath)
		},
		Charts: func(id string) {
			batch, err := latest(id)
			if err != nil {
				out.Error(err)
				return
			}
			paths, err := inferenceDI.GetChartRenderer(services).Batch(batch)
			if err != nil {
				out.Error(err)
				return
			}
			out.Artifact("chart", paths...)
		},
		Trends: func(source string) {
			report, err := trendsDI.GetTrendService(services).Rank(ctx, source)
			if err != nil {
				out.Error(err)
				return
			}
			_ = out.ReportTrends(report)
		},
	}

	// Services resolve lazily, so the catalog is available before startup.
	categories := catalogDI.GetCatalog(services).IDs()
	trendSources := trendsDI.GetTrendService(services).Sources()

	// Create and start the TUI program IMMEDIATELY (shows welcome screen)
	p := tea.NewProgram(ui.New(variant, categories, trendSources, actions), tea.WithAltScreen())
	ui.Program = p

	errCh := make(chan error, 1)
	go func() {
		// Wait for welcome screen to complete (StartModulesMsg signal)
		select {
		case <-startSignal:
		case <-ctx.Done():
			errCh <- nil
			return
		}

		if err := startFunc(); err != nil {
			ui.Send(ui.ErrorMsg{Error: err})
			errCh <- err
			return
		}
		errCh <- nil
	}()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("TUI error: %w", err)
	}

	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}
