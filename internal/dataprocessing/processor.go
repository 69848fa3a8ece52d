package dataprocessing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"vacancystats/internal/errors"
)

const tracerName = "vacancystats/dataprocessing"

// Pipeline reads a vacancies CSV, validates each row and aggregates the
// valid ones. The whole file is loaded before processing starts.
type Pipeline struct {
	logger *slog.Logger
	tracer trace.Tracer
}

// NewPipeline creates a pipeline. A nil logger falls back to slog.Default and
// a nil tracer to the global OpenTelemetry tracer.
func NewPipeline(logger *slog.Logger, tracer trace.Tracer) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return &Pipeline{
		logger: logger.With(slog.String("component", "pipeline")),
		tracer: tracer,
	}
}

// Run opens path and processes it.
func (p *Pipeline) Run(ctx context.Context, path, profession string) (*Result, error) {
	ctx, span := p.tracer.Start(ctx, "pipeline.run",
		trace.WithAttributes(
			attribute.String("input.path", path),
			attribute.String("profession", profession),
		))
	defer span.End()

	file, err := os.Open(path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.NewStorageError("failed to open vacancies file", err).WithContext("path", path)
	}
	defer file.Close()

	p.logger.InfoContext(ctx, "processing vacancies file",
		slog.String("path", path),
		slog.String("profession", profession))

	result, err := p.Process(ctx, file, profession)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return result, nil
}

// Process reads all rows from r and aggregates them.
//
// Rows failing the field count or empty field checks are skipped and counted.
// A malformed salary, a malformed year or an unknown currency aborts the run
// with an error naming the row.
func (p *Pipeline) Process(ctx context.Context, r io.Reader, profession string) (*Result, error) {
	rows, err := p.read(ctx, r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.NewAppValidationError("input has no header row")
	}

	header, err := NewHeader(rows[0])
	if err != nil {
		return nil, err
	}
	p.logger.DebugContext(ctx, "header resolved",
		slog.Int("columns", header.Width()),
		slog.Int("rows", len(rows)-1))

	agg := NewAggregator(profession)
	stats := ProcessingStats{DataRows: len(rows) - 1}

	_, span := p.tracer.Start(ctx, "pipeline.aggregate",
		trace.WithAttributes(attribute.Int("rows.data", stats.DataRows)))
	defer span.End()

	for i, row := range rows[1:] {
		record, err := header.Parse(row)
		if err != nil {
			if errors.IsSkippable(err) {
				stats.RejectedRows++
				p.logger.DebugContext(ctx, "row skipped",
					slog.Int("row", i+2),
					slog.String("reason", err.Error()))
				continue
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			p.logger.ErrorContext(ctx, "aborting on malformed row",
				slog.Int("row", i+2),
				slog.String("error", err.Error()))
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		agg.Add(record)
	}
	stats.ValidRows = agg.Total()

	span.SetAttributes(
		attribute.Int("rows.valid", stats.ValidRows),
		attribute.Int("rows.rejected", stats.RejectedRows))

	statistics, err := agg.Finalize()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		p.logger.WarnContext(ctx, "nothing to aggregate",
			slog.Int("data_rows", stats.DataRows),
			slog.Int("rejected_rows", stats.RejectedRows))
		return nil, err
	}

	p.logger.InfoContext(ctx, "aggregation complete",
		slog.Int("data_rows", stats.DataRows),
		slog.Int("valid_rows", stats.ValidRows),
		slog.Int("rejected_rows", stats.RejectedRows),
		slog.Int("years", len(statistics.Years)),
		slog.Int("ranked_cities", len(statistics.ShareByCity)))

	return &Result{Statistics: statistics, Stats: stats}, nil
}

func (p *Pipeline) read(ctx context.Context, r io.Reader) ([][]string, error) {
	_, span := p.tracer.Start(ctx, "pipeline.parse")
	defer span.End()

	rows, err := ReadRows(r)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("rows.total", len(rows)))
	return rows, nil
}
