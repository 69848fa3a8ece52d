// Package config loads vacancystats settings.
//
// # Configuration Sources
//
// Values are applied in order, later sources winning:
//
//	1. Default()
//	2. YAML file (--config flag, ./vacancystats.yaml or ./configs/vacancystats.yaml)
//	3. Environment variables prefixed VACSTATS_
//
// # Environment Variables
//
//	VACSTATS_REPORT_INPUT_FILE=vacancies_by_year.csv
//	VACSTATS_REPORT_PROFESSION=Аналитик
//	VACSTATS_REPORT_MODE=document
//	VACSTATS_PATHS_OUTPUT_DIR=out
//	VACSTATS_BROWSER_EXEC_PATH=/usr/bin/chromium
//	VACSTATS_LOGGING_LEVEL=debug
//	VACSTATS_TRACING_EXPORTER=stdout
//	VACSTATS_METRICS_TEXTFILE_PATH=out/vacancystats.prom
//
// # Validation
//
// The loaded struct is checked with go-playground/validator tags. Output
// artifacts and the Chrome binary are always taken from configuration;
// nothing is hard-coded to a machine layout.
package config
