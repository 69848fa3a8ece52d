package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"vacancystats/internal/config"
	"vacancystats/internal/dataprocessing"
	"vacancystats/internal/errors"
	"vacancystats/internal/exporter"
	"vacancystats/internal/files"
	"vacancystats/internal/infrastructure"
	"vacancystats/internal/validation"
	"vacancystats/pkg/contracts"
	"vacancystats/pkg/contracts/domain"
)

// WorkbookWriter writes statistics to a spreadsheet file.
type WorkbookWriter interface {
	Export(ctx context.Context, stats *domain.Statistics, path string) error
}

// ChartWriter draws statistics to an image file.
type ChartWriter interface {
	Render(ctx context.Context, stats *domain.Statistics, path string) error
}

// DocumentWriter writes the printable report, embedding an existing chart.
type DocumentWriter interface {
	Render(ctx context.Context, stats *domain.Statistics, chartPath, path string) error
}

// Application wires configuration, the processing pipeline and the exporters
// for one command invocation.
type Application struct {
	Config    *config.Config
	Paths     *config.Paths
	Logger    *slog.Logger
	Telemetry *infrastructure.Telemetry
	Metrics   *infrastructure.RunMetrics
	Validator *validation.FileValidator

	Processor dataprocessing.Processor
	Workbook  WorkbookWriter
	Chart     ChartWriter
	Document  DocumentWriter
}

// RunReport summarizes a finished run.
type RunReport struct {
	RunID      string                         `json:"run_id"`
	Mode       domain.OutputMode              `json:"mode"`
	Stats      dataprocessing.ProcessingStats `json:"stats"`
	Statistics *domain.Statistics             `json:"statistics"`
	Artifacts  domain.Artifacts               `json:"artifacts"`
	Duration   time.Duration                  `json:"duration"`
}

// NewApplication builds the application from cfg. telemetry may be nil, in
// which case spans go to the global tracer and no metrics are kept.
func NewApplication(cfg *config.Config, logger *slog.Logger, telemetry *infrastructure.Telemetry) (*Application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	paths, err := cfg.ResolvePaths()
	if err != nil {
		return nil, errors.NewConfigError("failed to resolve paths", err)
	}
	paths.LogPathResolution(logger)

	var tracer trace.Tracer
	var metrics *infrastructure.RunMetrics
	if telemetry != nil {
		tracer = telemetry.Tracer
		metrics, err = infrastructure.NewRunMetrics(telemetry.Meter)
		if err != nil {
			return nil, fmt.Errorf("failed to create run metrics: %w", err)
		}
	}

	browser := exporter.NewBrowser(cfg.Browser, logger)

	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version))

	return &Application{
		Config:    cfg,
		Paths:     paths,
		Logger:    logger,
		Telemetry: telemetry,
		Metrics:   metrics,
		Validator: validation.NewFileValidator(logger),
		Processor: dataprocessing.NewPipeline(logger, tracer),
		Workbook:  exporter.NewWorkbookExporter(logger, tracer),
		Chart:     exporter.NewChartRenderer(browser, cfg.Browser.ViewportWidth, cfg.Browser.ViewportHeight, logger, tracer),
		Document:  exporter.NewDocumentRenderer(browser, paths.TemplateFile, logger, tracer),
	}, nil
}

// Run processes the configured input file once and produces the artifacts
// for mode.
func (app *Application) Run(ctx context.Context, mode domain.OutputMode) (*RunReport, error) {
	start := time.Now()
	ctx, runID := infrastructure.NewRunContext(ctx)
	logger := app.Logger

	parsed, ok := domain.ParseOutputMode(string(mode))
	if !ok {
		return nil, errors.NewUnknownModeError(string(mode))
	}
	mode = parsed

	if err := app.preflight(mode); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Run started",
		slog.String("input", app.Config.Report.InputFile),
		slog.String("profession", app.Config.Report.Profession),
		slog.String("mode", string(mode)))

	result, err := app.Processor.Run(ctx, app.Config.Report.InputFile, app.Config.Report.Profession)
	if err != nil {
		logger.ErrorContext(ctx, "Processing failed", slog.String("error", err.Error()))
		return nil, err
	}
	app.recordRows(ctx, result.Stats)

	artifacts, err := app.Export(ctx, result.Statistics, mode)
	if err != nil {
		logger.ErrorContext(ctx, "Export failed", slog.String("error", err.Error()))
		return nil, err
	}

	report := &RunReport{
		RunID:      runID,
		Mode:       mode,
		Stats:      result.Stats,
		Statistics: result.Statistics,
		Artifacts:  artifacts,
		Duration:   time.Since(start),
	}
	if app.Metrics != nil {
		app.Metrics.RunDuration.Record(ctx, report.Duration.Seconds())
	}

	logger.InfoContext(ctx, "Run complete",
		slog.Int("valid_rows", result.Stats.ValidRows),
		slog.Int("rejected_rows", result.Stats.RejectedRows),
		slog.Duration("duration", report.Duration))
	return report, nil
}

// CandidatesKey is the AppError context key listing CSV files found next to
// a missing input file.
const CandidatesKey = "candidates"

// withCandidates attaches the CSV files found in the input's directory to a
// not-found error.
func (app *Application) withCandidates(err error) error {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) || appErr.Type != errors.ErrTypeNotFound {
		return err
	}
	dir := filepath.Dir(app.Config.Report.InputFile)
	found, findErr := files.NewDiscovery(".").FindCSVFiles(dir)
	if findErr != nil || len(found) == 0 {
		return err
	}
	names := files.Names(found)
	app.Logger.Warn("Input file not found",
		slog.String("input", app.Config.Report.InputFile),
		slog.Any(CandidatesKey, names))
	return appErr.WithContext(CandidatesKey, names)
}

// preflight validates every path the run touches before any work starts.
func (app *Application) preflight(mode domain.OutputMode) error {
	if app.Config.Report.InputFile == "" {
		return errors.NewAppValidationError("no input file given")
	}
	if err := app.Validator.ValidateInputFile(app.Config.Report.InputFile); err != nil {
		return app.withCandidates(err)
	}
	if err := app.Validator.ValidateOutputDirectory(app.Paths.OutputDir); err != nil {
		return err
	}
	if err := app.Paths.EnsureDirectories(); err != nil {
		return errors.NewStorageError("failed to prepare output directories", err)
	}

	if mode == domain.OutputModeSpreadsheet {
		return nil
	}
	if app.Paths.TemplateFile != "" && mode != domain.OutputModeChart {
		if err := app.Validator.ValidateTemplateFile(app.Paths.TemplateFile); err != nil {
			return err
		}
	}
	if app.Config.Browser.ExecPath != "" {
		if err := app.Validator.ValidateExecutable(app.Config.Browser.ExecPath); err != nil {
			return err
		}
	}
	chrome, ok := exporter.FindChrome(app.Config.Browser)
	if !ok {
		app.Logger.Error("No Chrome or Chromium executable found",
			slog.String("exec_path", app.Config.Browser.ExecPath),
			slog.String("mode", string(mode)))
		return errors.NewNotFoundError("chrome executable (set browser.exec_path or --chrome)")
	}
	app.Logger.Debug("Using browser", slog.String("exec_path", chrome))
	return nil
}

// Export produces the artifacts for mode from stats. The document always
// needs a chart, so document mode renders one first.
func (app *Application) Export(ctx context.Context, stats *domain.Statistics, mode domain.OutputMode) (domain.Artifacts, error) {
	var artifacts domain.Artifacts

	switch mode {
	case domain.OutputModeSpreadsheet:
		if err := app.exportWorkbook(ctx, stats); err != nil {
			return artifacts, err
		}
		artifacts.WorkbookPath = app.Paths.WorkbookFile

	case domain.OutputModeChart:
		if err := app.renderChart(ctx, stats); err != nil {
			return artifacts, err
		}
		artifacts.ChartPath = app.Paths.ChartFile

	case domain.OutputModeDocument:
		if err := app.renderChart(ctx, stats); err != nil {
			return artifacts, err
		}
		artifacts.ChartPath = app.Paths.ChartFile
		if err := app.renderDocument(ctx, stats); err != nil {
			return artifacts, err
		}
		artifacts.DocumentPath = app.Paths.DocumentFile

	case domain.OutputModeAll:
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return app.exportWorkbook(gctx, stats) })
		g.Go(func() error { return app.renderChart(gctx, stats) })
		if err := g.Wait(); err != nil {
			return artifacts, err
		}
		artifacts.WorkbookPath = app.Paths.WorkbookFile
		artifacts.ChartPath = app.Paths.ChartFile
		if err := app.renderDocument(ctx, stats); err != nil {
			return artifacts, err
		}
		artifacts.DocumentPath = app.Paths.DocumentFile

	default:
		return artifacts, errors.NewUnknownModeError(string(mode))
	}

	return artifacts, nil
}

func (app *Application) exportWorkbook(ctx context.Context, stats *domain.Statistics) error {
	if err := app.Workbook.Export(ctx, stats, app.Paths.WorkbookFile); err != nil {
		return err
	}
	app.Metrics.RecordArtifact(ctx, "workbook")
	return nil
}

func (app *Application) renderChart(ctx context.Context, stats *domain.Statistics) error {
	if err := app.Chart.Render(ctx, stats, app.Paths.ChartFile); err != nil {
		return err
	}
	app.Metrics.RecordArtifact(ctx, "chart")
	return nil
}

func (app *Application) renderDocument(ctx context.Context, stats *domain.Statistics) error {
	if err := app.Document.Render(ctx, stats, app.Paths.ChartFile, app.Paths.DocumentFile); err != nil {
		return err
	}
	app.Metrics.RecordArtifact(ctx, "document")
	return nil
}

func (app *Application) recordRows(ctx context.Context, stats dataprocessing.ProcessingStats) {
	if app.Metrics == nil {
		return
	}
	app.Metrics.RowsRead.Add(ctx, int64(stats.DataRows))
	app.Metrics.RowsRejected.Add(ctx, int64(stats.RejectedRows))
}

// Shutdown writes the metrics snapshot when configured and flushes
// telemetry.
func (app *Application) Shutdown(ctx context.Context) error {
	if app.Telemetry == nil {
		return nil
	}
	var metricsErr error
	if path := app.Config.Metrics.TextfilePath; path != "" {
		metricsErr = app.Telemetry.WriteMetrics(path)
	}
	if err := app.Telemetry.Shutdown(ctx); err != nil {
		return err
	}
	return metricsErr
}
