package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"vacancystats/internal/config"
	"vacancystats/pkg/contracts"
)

const (
	ServiceName     = "vacancystats"
	Instrumentation = "vacancystats"
)

// Telemetry holds the OpenTelemetry providers for one process.
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter

	registry  *prometheus.Registry
	traceFile *os.File
	logger    *slog.Logger
}

// InitializeTelemetry sets up tracing according to cfg and an in-process
// metrics registry that can be snapshotted with WriteMetrics.
func InitializeTelemetry(cfg config.TracingConfig, logger *slog.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = slog.Default()
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(contracts.Version),
	)

	t := &Telemetry{logger: logger}

	if err := t.initializeTracing(cfg, res); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	if err := t.initializeMetrics(res); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	logger.Info("Telemetry initialized",
		slog.String("trace_exporter", cfg.Exporter),
		slog.Float64("sample_ratio", cfg.SampleRatio))

	return t, nil
}

func (t *Telemetry) initializeTracing(cfg config.TracingConfig, res *resource.Resource) error {
	var out io.Writer

	switch cfg.Exporter {
	case "stdout":
		out = os.Stdout
	case "file":
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
			return fmt.Errorf("failed to create trace directory: %w", err)
		}
		file, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open trace file: %w", err)
		}
		t.traceFile = file
		out = file
	case "none", "":
		// Global no-op tracer
		t.Tracer = otel.Tracer(Instrumentation)
		return nil
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.Exporter)
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(out), stdouttrace.WithPrettyPrint())
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
	)

	t.TracerProvider = tp
	t.Tracer = tp.Tracer(Instrumentation, trace.WithInstrumentationVersion(contracts.Version))
	otel.SetTracerProvider(tp)

	return nil
}

func (t *Telemetry) initializeMetrics(res *resource.Resource) error {
	t.registry = prometheus.NewRegistry()

	// target_info carries dotted resource keys; the textfile must stay in the
	// classic format, and the run already identifies itself in traces.
	exporter, err := otelprom.New(
		otelprom.WithRegisterer(t.registry),
		otelprom.WithoutTargetInfo(),
	)
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	t.MeterProvider = mp
	t.Meter = mp.Meter(Instrumentation, metric.WithInstrumentationVersion(contracts.Version))
	return nil
}

// WriteMetrics writes the current metric values in the Prometheus text
// format to path, replacing the file atomically.
func (t *Telemetry) WriteMetrics(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, t.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	t.logger.Debug("Metrics written", slog.String("path", path))
	return nil
}

// Shutdown flushes pending spans and releases the trace file.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if t.TracerProvider != nil {
		if err := t.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}
	if t.MeterProvider != nil {
		if err := t.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}
	if t.traceFile != nil {
		if err := t.traceFile.Close(); err != nil {
			errs = append(errs, err)
		}
		t.traceFile = nil
	}
	return errors.Join(errs...)
}

// RunMetrics are the counters recorded for every run.
type RunMetrics struct {
	RowsRead     metric.Int64Counter
	RowsRejected metric.Int64Counter
	Artifacts    metric.Int64Counter
	RunDuration  metric.Float64Histogram
}

// NewRunMetrics registers the run instruments on meter.
func NewRunMetrics(meter metric.Meter) (*RunMetrics, error) {
	rowsRead, err := meter.Int64Counter(
		"vacancystats_rows_read",
		metric.WithDescription("Data rows read from the input file"),
	)
	if err != nil {
		return nil, err
	}

	rowsRejected, err := meter.Int64Counter(
		"vacancystats_rows_rejected",
		metric.WithDescription("Rows skipped for a field count mismatch or an empty field"),
	)
	if err != nil {
		return nil, err
	}

	artifacts, err := meter.Int64Counter(
		"vacancystats_artifacts_written",
		metric.WithDescription("Output files produced, by kind"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"vacancystats_run_duration",
		metric.WithDescription("Wall time of a complete run"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &RunMetrics{
		RowsRead:     rowsRead,
		RowsRejected: rowsRejected,
		Artifacts:    artifacts,
		RunDuration:  duration,
	}, nil
}

// RecordArtifact counts one produced file of the given kind.
func (m *RunMetrics) RecordArtifact(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.Artifacts.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// RecordError marks span as failed with err
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
