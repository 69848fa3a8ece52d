package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"vacancystats/internal/errors"
	"vacancystats/internal/infrastructure"
	"vacancystats/pkg/contracts/domain"
)

const tracerName = "vacancystats/exporter"

// Sheet names
const (
	YearSheet = "Статистика по годам"
	CitySheet = "Статистика по городам"
)

// percentFormat is the built-in "0.00%" number format.
const percentFormat = 10

// WorkbookExporter writes statistics to an xlsx workbook with one sheet per
// breakdown.
type WorkbookExporter struct {
	logger *slog.Logger
	tracer trace.Tracer
}

// NewWorkbookExporter creates a workbook exporter. Nil arguments fall back
// to the global logger and tracer.
func NewWorkbookExporter(logger *slog.Logger, tracer trace.Tracer) *WorkbookExporter {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return &WorkbookExporter{
		logger: infrastructure.WithComponent(logger, "workbook"),
		tracer: tracer,
	}
}

// workbookStyles holds the style IDs shared by both sheets.
type workbookStyles struct {
	header  int
	cell    int
	percent int
}

// Export writes the workbook to path.
func (e *WorkbookExporter) Export(ctx context.Context, stats *domain.Statistics, path string) (err error) {
	ctx, span := e.tracer.Start(ctx, "export.workbook",
		trace.WithAttributes(attribute.String("path", path)))
	defer func() {
		infrastructure.RecordError(span, err)
		span.End()
	}()

	f := excelize.NewFile()
	defer f.Close()

	styles, err := newWorkbookStyles(f)
	if err != nil {
		return errors.NewRenderError("workbook", err)
	}

	if err := f.SetSheetName("Sheet1", YearSheet); err != nil {
		return errors.NewRenderError("workbook", err)
	}
	if err := writeYearSheet(f, styles, stats); err != nil {
		return errors.NewRenderError("workbook", err)
	}

	if _, err := f.NewSheet(CitySheet); err != nil {
		return errors.NewRenderError("workbook", err)
	}
	if err := writeCitySheet(f, styles, stats); err != nil {
		return errors.NewRenderError("workbook", err)
	}

	if err := f.SaveAs(path); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to save workbook %s", path), err)
	}

	e.logger.InfoContext(ctx, "Workbook written",
		slog.String("path", path),
		slog.Int("years", len(stats.Years)),
		slog.Int("cities", len(stats.SalaryByCity)))
	return nil
}

func newWorkbookStyles(f *excelize.File) (workbookStyles, error) {
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	var s workbookStyles
	var err error
	if s.header, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, Border: border}); err != nil {
		return s, err
	}
	if s.cell, err = f.NewStyle(&excelize.Style{Border: border}); err != nil {
		return s, err
	}
	if s.percent, err = f.NewStyle(&excelize.Style{Border: border, NumFmt: percentFormat}); err != nil {
		return s, err
	}
	return s, nil
}

// YearHeaders returns the year sheet header row for profession.
func YearHeaders(profession string) []string {
	return []string{
		"Год",
		"Средняя зарплата",
		"Средняя зарплата - " + profession,
		"Количество вакансий",
		"Количество вакансий - " + profession,
	}
}

func writeYearSheet(f *excelize.File, styles workbookStyles, stats *domain.Statistics) error {
	t := newSheetTable(f, YearSheet)
	t.header(1, YearHeaders(stats.Profession), styles.header)

	for i, row := range YearRows(stats) {
		values := []interface{}{row.Year, row.Salary, row.FilteredSalary, row.Count, row.FilteredCount}
		t.row(1, i+2, values, styles.cell)
	}

	return t.finish()
}

func writeCitySheet(f *excelize.File, styles workbookStyles, stats *domain.Statistics) error {
	t := newSheetTable(f, CitySheet)

	t.header(1, []string{"Город", "Уровень зарплат"}, styles.header)
	for i, cs := range stats.SalaryByCity {
		t.row(1, i+2, []interface{}{cs.City, cs.Salary}, styles.cell)
	}

	// Column C stays empty between the two tables.
	t.header(4, []string{"Город", "Доля вакансий"}, styles.header)
	for i, row := range ShareRows(stats) {
		t.row(4, i+2, []interface{}{row.City}, styles.cell)
		// Width is measured on the displayed percentage, not the raw float.
		t.cell(5, i+2, row.Share, row.Percent, styles.percent)
	}

	return t.finish()
}

// sheetTable writes cells and tracks the widest value per column.
type sheetTable struct {
	f      *excelize.File
	sheet  string
	widths map[int]int
	err    error
}

func newSheetTable(f *excelize.File, sheet string) *sheetTable {
	return &sheetTable{f: f, sheet: sheet, widths: make(map[int]int)}
}

func (t *sheetTable) header(col int, names []string, style int) {
	for i, name := range names {
		t.cell(col+i, 1, name, name, style)
	}
}

func (t *sheetTable) row(col, row int, values []interface{}, style int) {
	for i, v := range values {
		t.cell(col+i, row, v, fmt.Sprint(v), style)
	}
}

func (t *sheetTable) cell(col, row int, value interface{}, display string, style int) {
	if t.err != nil {
		return
	}
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		t.err = err
		return
	}
	if err := t.f.SetCellValue(t.sheet, name, value); err != nil {
		t.err = err
		return
	}
	if err := t.f.SetCellStyle(t.sheet, name, name, style); err != nil {
		t.err = err
		return
	}
	if n := utf8.RuneCountInString(display); n > t.widths[col] {
		t.widths[col] = n
	}
}

// finish fits every used column to its widest value.
func (t *sheetTable) finish() error {
	if t.err != nil {
		return t.err
	}
	for col, width := range t.widths {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		if err := t.f.SetColWidth(t.sheet, name, name, float64(width+2)); err != nil {
			return err
		}
	}
	return nil
}
