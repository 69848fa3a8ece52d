package exporter

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"vacancystats/internal/errors"
	"vacancystats/internal/files"
	"vacancystats/internal/infrastructure"
	"vacancystats/pkg/contracts/domain"
)

// A4 in inches
const (
	paperWidth  = 8.27
	paperHeight = 11.69
)

// ReportData is the value the document template is executed with.
type ReportData struct {
	Profession   string
	ChartURI     template.URL
	YearHeaders  []string
	Years        []YearRow
	SalaryByCity []domain.CitySalary
	ShareByCity  []ShareRow
}

// DocumentRenderer prints the statistics report to PDF.
type DocumentRenderer struct {
	browser      *Browser
	templateFile string
	logger       *slog.Logger
	tracer       trace.Tracer
	files        *files.Manager
}

// NewDocumentRenderer creates a document renderer. An empty templateFile
// selects the built-in template.
func NewDocumentRenderer(browser *Browser, templateFile string, logger *slog.Logger, tracer trace.Tracer) *DocumentRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return &DocumentRenderer{
		browser:      browser,
		templateFile: templateFile,
		logger:       infrastructure.WithComponent(logger, "document"),
		tracer:       tracer,
		files:        files.NewManager(logger),
	}
}

// Render writes the PDF report to path, embedding the chart image found at
// chartPath.
func (r *DocumentRenderer) Render(ctx context.Context, stats *domain.Statistics, chartPath, path string) (err error) {
	ctx, span := r.tracer.Start(ctx, "export.document",
		trace.WithAttributes(
			attribute.String("path", path),
			attribute.String("chart", chartPath)))
	defer func() {
		infrastructure.RecordError(span, err)
		span.End()
	}()

	chart, err := os.ReadFile(chartPath)
	if err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to read chart %s", chartPath), err)
	}

	html, err := r.ReportHTML(stats, chart)
	if err != nil {
		return errors.NewRenderError("document", err)
	}

	var pdf []byte
	printPDF := chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		pdf, _, err = page.PrintToPDF().
			WithPrintBackground(true).
			WithPaperWidth(paperWidth).
			WithPaperHeight(paperHeight).
			Do(ctx)
		return err
	})
	if err := r.browser.Run(ctx, html, printPDF); err != nil {
		return errors.NewRenderError("document", err)
	}

	if err := r.files.WriteFile(path, pdf); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to write document %s", path), err)
	}

	r.logger.InfoContext(ctx, "Document written",
		slog.String("path", path),
		slog.Int("bytes", len(pdf)))
	return nil
}

// ReportHTML executes the report template. chart holds PNG bytes and may be
// empty, in which case the image is left out.
func (r *DocumentRenderer) ReportHTML(stats *domain.Statistics, chart []byte) (string, error) {
	tmpl, err := r.loadTemplate()
	if err != nil {
		return "", err
	}

	data := ReportData{
		Profession:   stats.Profession,
		YearHeaders:  YearHeaders(stats.Profession),
		Years:        YearRows(stats),
		SalaryByCity: stats.SalaryByCity,
		ShareByCity:  ShareRows(stats),
	}
	if len(chart) > 0 {
		data.ChartURI = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(chart))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func (r *DocumentRenderer) loadTemplate() (*template.Template, error) {
	if r.templateFile == "" {
		return template.ParseFS(templateFS, "templates/report.html")
	}
	tmpl, err := template.New(filepath.Base(r.templateFile)).ParseFiles(r.templateFile)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to load template %s", r.templateFile), err)
	}
	return tmpl, nil
}
