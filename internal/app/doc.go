// Package app wires the vacancystats components together for one run.
//
// # Run Flow
//
//	1. Validate the input file, output directory, template and browser paths
//	2. Parse and aggregate the vacancies file (dataprocessing.Pipeline)
//	3. Produce the artifacts for the selected mode:
//	   - spreadsheet: xlsx workbook
//	   - chart: PNG chart
//	   - document: PNG chart, then the PDF report that embeds it
//	   - all: workbook and chart in parallel, then the PDF report
//
// Each run carries a UUID run ID in its context which the logger adds to
// every record.
//
// # Interactive Use
//
// Prompter asks for the input file, the profession and the output mode when
// they are not given on the command line. Only document, chart and
// spreadsheet are offered; any other answer yields an error wrapping
// errors.ErrUnknownMode and nothing is produced.
package app
