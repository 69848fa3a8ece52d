package config

import "time"

// Application constants
const (
	AppName  = "vacancystats"
	AppUsage = "salary and vacancy statistics by year and city"

	// EnvPrefix namespaces every environment variable, e.g.
	// VACSTATS_REPORT_PROFESSION.
	EnvPrefix = "VACSTATS"

	DefaultConfigFile = "vacancystats.yaml"

	// Output defaults
	DefaultOutputDir    = "."
	DefaultChartFile    = "graph.png"
	DefaultWorkbookFile = "report.xlsx"
	DefaultDocumentFile = "report.pdf"

	DefaultBrowserTimeout = 60 * time.Second
	DefaultLogLevel       = "info"
)
