package exporter

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"math"
	"strings"

	"github.com/chromedp/chromedp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"vacancystats/internal/errors"
	"vacancystats/internal/files"
	"vacancystats/internal/infrastructure"
	"vacancystats/pkg/contracts/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

var chartTemplate = template.Must(template.New("chart.html").
	Funcs(template.FuncMap{"lineDY": lineDY}).
	ParseFS(templateFS, "templates/chart.html"))

// Panel geometry in SVG user units.
const (
	panelWidth   = 560.0
	panelHeight  = 400.0
	plotTop      = 56.0
	plotBottom   = 350.0
	plotLeft     = 64.0
	plotRight    = 545.0
	cityAxisLeft = 150.0
)

// palette follows the usual ten-color categorical scheme.
var palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

type chartBar struct {
	X, Y, Width, Height float64
	Color               string
	Value               int
}

type chartTick struct {
	X, Y  float64
	Lines []string
}

type legendItem struct {
	Color string
	Lines []string
}

type chartPanel struct {
	Title      string
	Horizontal bool
	Bars       []chartBar
	// Grid holds value-axis ticks, Labels category-axis ticks.
	Grid   []chartTick
	Labels []chartTick
	Legend []legendItem
}

type pieSlice struct {
	Path   string
	Full   bool
	Color  string
	Label  string
	LabelX float64
	LabelY float64
	Anchor string
}

type pieChart struct {
	Title  string
	CX, CY float64
	Radius float64
	Slices []pieSlice
}

type chartPage struct {
	Width, Height int
	SalaryByYear  chartPanel
	CountByYear   chartPanel
	SalaryByCity  chartPanel
	ShareByCity   pieChart
}

// ChartRenderer draws the four-panel statistics chart to a PNG file.
type ChartRenderer struct {
	browser *Browser
	width   int
	height  int
	logger  *slog.Logger
	tracer  trace.Tracer
	files   *files.Manager
}

// NewChartRenderer creates a chart renderer that rasterizes with browser at
// the given page size.
func NewChartRenderer(browser *Browser, width, height int, logger *slog.Logger, tracer trace.Tracer) *ChartRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return &ChartRenderer{
		browser: browser,
		width:   width,
		height:  height,
		logger:  infrastructure.WithComponent(logger, "chart"),
		tracer:  tracer,
		files:   files.NewManager(logger),
	}
}

// Render writes the chart PNG to path.
func (r *ChartRenderer) Render(ctx context.Context, stats *domain.Statistics, path string) (err error) {
	ctx, span := r.tracer.Start(ctx, "export.chart",
		trace.WithAttributes(attribute.String("path", path)))
	defer func() {
		infrastructure.RecordError(span, err)
		span.End()
	}()

	html, err := ChartHTML(stats, r.width, r.height)
	if err != nil {
		return errors.NewRenderError("chart", err)
	}

	var png []byte
	if err := r.browser.Run(ctx, html, chromedp.FullScreenshot(&png, 100)); err != nil {
		return errors.NewRenderError("chart", err)
	}

	if err := r.files.WriteFile(path, png); err != nil {
		return errors.NewStorageError(fmt.Sprintf("failed to write chart %s", path), err)
	}

	r.logger.InfoContext(ctx, "Chart written",
		slog.String("path", path),
		slog.Int("bytes", len(png)))
	return nil
}

// ChartHTML renders the chart page as a standalone HTML document.
func ChartHTML(stats *domain.Statistics, width, height int) (string, error) {
	data := buildChartPage(stats, width, height)

	var buf bytes.Buffer
	if err := chartTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func buildChartPage(stats *domain.Statistics, width, height int) chartPage {
	rows := YearRows(stats)
	profession := strings.ToLower(stats.Profession)

	years := make([]int, len(rows))
	salary := make([][2]int, len(rows))
	count := make([][2]int, len(rows))
	for i, row := range rows {
		years[i] = row.Year
		salary[i] = [2]int{row.Salary, row.FilteredSalary}
		count[i] = [2]int{row.Count, row.FilteredCount}
	}

	return chartPage{
		Width:  width,
		Height: height,
		SalaryByYear: groupedBars("Уровень зарплат по годам", years, salary,
			[2][]string{{"средняя з/п"}, {"з/п " + profession}}),
		CountByYear: groupedBars("Количество вакансий по годам", years, count,
			[2][]string{{"Количество вакансий"}, {"Количество вакансий", profession}}),
		SalaryByCity: cityBars("Уровень зарплат по городам", stats.SalaryByCity),
		ShareByCity:  sharePie("Доля вакансий по городам", stats),
	}
}

// groupedBars lays out two bars per year, all vacancies first.
func groupedBars(title string, years []int, values [][2]int, legend [2][]string) chartPanel {
	panel := chartPanel{
		Title: title,
		Legend: []legendItem{
			{Color: palette[0], Lines: legend[0]},
			{Color: palette[1], Lines: legend[1]},
		},
	}

	maxValue := 0
	for _, v := range values {
		maxValue = max(maxValue, v[0], v[1])
	}
	top := niceCeil(float64(maxValue))
	panel.Grid = valueTicks(top, func(pos float64) (float64, float64) {
		return plotLeft - 6, plotBottom - pos*(plotBottom-plotTop)
	})

	if len(years) == 0 {
		return panel
	}
	group := (plotRight - plotLeft) / float64(len(years))
	barWidth := group * 0.4
	for i, year := range years {
		x := plotLeft + float64(i)*group + group*0.1
		for j := 0; j < 2; j++ {
			// Negative averages draw as empty bars.
			h := max(0, float64(values[i][j])/top*(plotBottom-plotTop))
			panel.Bars = append(panel.Bars, chartBar{
				X:      x + float64(j)*barWidth,
				Y:      plotBottom - h,
				Width:  barWidth,
				Height: h,
				Color:  palette[j],
				Value:  values[i][j],
			})
		}
		panel.Labels = append(panel.Labels, chartTick{
			X:     x + barWidth,
			Y:     plotBottom + 8,
			Lines: []string{formatInt(year)},
		})
	}
	return panel
}

// cityBars lays out horizontal bars with the best-paid city on top.
func cityBars(title string, cities []domain.CitySalary) chartPanel {
	panel := chartPanel{Title: title, Horizontal: true}

	maxValue := 0
	for _, c := range cities {
		maxValue = max(maxValue, c.Salary)
	}
	top := niceCeil(float64(maxValue))
	panel.Grid = valueTicks(top, func(pos float64) (float64, float64) {
		return cityAxisLeft + pos*(plotRight-cityAxisLeft), plotBottom + 14
	})

	if len(cities) == 0 {
		return panel
	}
	slot := (plotBottom - plotTop) / float64(len(cities))
	for i, c := range cities {
		y := plotTop + float64(i)*slot
		w := max(0, float64(c.Salary)/top*(plotRight-cityAxisLeft))
		panel.Bars = append(panel.Bars, chartBar{
			X:      cityAxisLeft,
			Y:      y + slot*0.1,
			Width:  w,
			Height: slot * 0.8,
			Color:  palette[0],
			Value:  c.Salary,
		})
		panel.Labels = append(panel.Labels, chartTick{
			X:     cityAxisLeft - 6,
			Y:     y + slot/2,
			Lines: wrapLabel(c.City),
		})
	}
	return panel
}

// sharePie builds the share pie, ranked cities first and the remainder last.
func sharePie(title string, stats *domain.Statistics) pieChart {
	pie := pieChart{
		Title:  title,
		CX:     panelWidth / 2,
		CY:     (plotTop+plotBottom)/2 + 10,
		Radius: 125,
	}

	type share struct {
		label string
		value float64
	}
	shares := make([]share, 0, len(stats.ShareByCity)+1)
	for _, cs := range stats.ShareByCity {
		shares = append(shares, share{cs.City, cs.Share})
	}
	if other := OtherShare(stats); other > 0 {
		shares = append(shares, share{OtherLabel, other})
	}

	total := 0.0
	for _, s := range shares {
		total += s.value
	}
	if total == 0 {
		return pie
	}

	// Angles run counter-clockwise from three o'clock.
	angle := 0.0
	for i, s := range shares {
		sweep := s.value / total * 2 * math.Pi
		slice := pieSlice{
			Color: palette[i%len(palette)],
			Label: s.label,
		}
		if sweep >= 2*math.Pi-1e-9 {
			slice.Full = true
		} else {
			x0, y0 := pie.point(angle, pie.Radius)
			x1, y1 := pie.point(angle+sweep, pie.Radius)
			large := 0
			if sweep > math.Pi {
				large = 1
			}
			slice.Path = fmt.Sprintf("M%.2f,%.2f L%.2f,%.2f A%.2f,%.2f 0 %d 0 %.2f,%.2f Z",
				pie.CX, pie.CY, x0, y0, pie.Radius, pie.Radius, large, x1, y1)
		}

		mid := angle + sweep/2
		slice.LabelX, slice.LabelY = pie.point(mid, pie.Radius*1.12)
		slice.Anchor = "start"
		if math.Cos(mid) < 0 {
			slice.Anchor = "end"
		}

		pie.Slices = append(pie.Slices, slice)
		angle += sweep
	}
	return pie
}

func (p pieChart) point(angle, radius float64) (float64, float64) {
	return p.CX + radius*math.Cos(angle), p.CY - radius*math.Sin(angle)
}

// valueTicks returns five evenly spaced ticks from 0 to top.
func valueTicks(top float64, place func(pos float64) (float64, float64)) []chartTick {
	ticks := make([]chartTick, 0, 5)
	for i := 0; i <= 4; i++ {
		x, y := place(float64(i) / 4)
		ticks = append(ticks, chartTick{X: x, Y: y, Lines: []string{formatInt(int(top * float64(i) / 4))}})
	}
	return ticks
}

// niceCeil rounds v up to 1, 2, 4 or 5 times a power of ten so that quarter
// ticks stay readable. Non-positive values give 1.
func niceCeil(v float64) float64 {
	if v <= 0 {
		return 1
	}
	magnitude := math.Pow(10, math.Floor(math.Log10(v)))
	for _, step := range []float64{1, 2, 4, 5, 10} {
		if candidate := step * magnitude; candidate >= v {
			return candidate
		}
	}
	return 10 * magnitude
}

// lineDY returns the dy offset of line i out of n so that a multi-line label
// stays vertically centered on its anchor.
func lineDY(i, n int) string {
	if i == 0 {
		return fmt.Sprintf("%.2fem", 0.35-float64(n-1)*0.55)
	}
	return "1.1em"
}

// wrapLabel breaks a city name after spaces and hyphens.
func wrapLabel(name string) []string {
	var lines []string
	var current strings.Builder
	for _, r := range name {
		switch r {
		case ' ':
			lines = append(lines, current.String())
			current.Reset()
		case '-':
			current.WriteRune(r)
			lines = append(lines, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 || len(lines) == 0 {
		lines = append(lines, current.String())
	}
	return lines
}
