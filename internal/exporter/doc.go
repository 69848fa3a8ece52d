// Package exporter turns aggregated vacancy statistics into output files.
//
// WorkbookExporter writes an xlsx workbook with a per-year sheet and a
// per-city sheet. ChartRenderer draws a four-panel chart (salary and
// vacancy count by year, salary by city, share by city) as SVG and
// rasterizes it to PNG with headless Chrome. DocumentRenderer fills an HTML
// report with the chart and the three tables and prints it to PDF through
// the same browser.
//
// Example usage:
//
//	browser := exporter.NewBrowser(cfg.Browser, logger)
//	chart := exporter.NewChartRenderer(browser, 1200, 900, logger, nil)
//	if err := chart.Render(ctx, stats, "graph.png"); err != nil {
//		return err
//	}
//	doc := exporter.NewDocumentRenderer(browser, "", logger, nil)
//	err := doc.Render(ctx, stats, "graph.png", "report.pdf")
//
// None of the exporters modify the statistics they are given.
package exporter
