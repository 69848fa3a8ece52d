package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Report  ReportConfig  `yaml:"report" envconfig:"REPORT"`
	Paths   PathsConfig   `yaml:"paths" envconfig:"PATHS"`
	Browser BrowserConfig `yaml:"browser" envconfig:"BROWSER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Tracing TracingConfig `yaml:"tracing" envconfig:"TRACING"`
	Metrics MetricsConfig `yaml:"metrics" envconfig:"METRICS"`
}

// ReportConfig selects the input and what to produce from it. Empty values
// are asked for interactively by the CLI.
type ReportConfig struct {
	InputFile  string `yaml:"input_file" envconfig:"INPUT_FILE"`
	Profession string `yaml:"profession" envconfig:"PROFESSION"`
	Mode       string `yaml:"mode" envconfig:"MODE" validate:"omitempty,oneof=document chart spreadsheet all"`
}

// PathsConfig contains output locations. Relative file names are resolved
// against OutputDir.
type PathsConfig struct {
	OutputDir    string `yaml:"output_dir" envconfig:"OUTPUT_DIR" validate:"required"`
	ChartFile    string `yaml:"chart_file" envconfig:"CHART_FILE" validate:"required"`
	WorkbookFile string `yaml:"workbook_file" envconfig:"WORKBOOK_FILE" validate:"required"`
	DocumentFile string `yaml:"document_file" envconfig:"DOCUMENT_FILE" validate:"required"`
	// TemplateFile overrides the built-in document template when set.
	TemplateFile string `yaml:"template_file" envconfig:"TEMPLATE_FILE"`
}

// BrowserConfig controls the headless Chrome used to rasterize charts and
// print documents.
type BrowserConfig struct {
	// ExecPath is the Chrome or Chromium binary. Empty lets chromedp search
	// the usual install locations.
	ExecPath       string        `yaml:"exec_path" envconfig:"EXEC_PATH"`
	Headless       bool          `yaml:"headless" envconfig:"HEADLESS"`
	// NoSandbox is needed when Chrome runs as root, e.g. inside containers.
	NoSandbox      bool          `yaml:"no_sandbox" envconfig:"NO_SANDBOX"`
	Timeout        time.Duration `yaml:"timeout" envconfig:"TIMEOUT" validate:"gt=0"`
	ViewportWidth  int           `yaml:"viewport_width" envconfig:"VIEWPORT_WIDTH" validate:"min=320"`
	ViewportHeight int           `yaml:"viewport_height" envconfig:"VIEWPORT_HEIGHT" validate:"min=240"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_unless=Output console"`
}

// TracingConfig contains OpenTelemetry tracing configuration
type TracingConfig struct {
	Exporter    string  `yaml:"exporter" envconfig:"EXPORTER" validate:"oneof=none stdout file"`
	FilePath    string  `yaml:"file_path" envconfig:"FILE_PATH" validate:"required_if=Exporter file"`
	SampleRatio float64 `yaml:"sample_ratio" envconfig:"SAMPLE_RATIO" validate:"min=0,max=1"`
}

// MetricsConfig controls the run metrics snapshot. An empty TextfilePath
// disables it.
type MetricsConfig struct {
	TextfilePath string `yaml:"textfile_path" envconfig:"TEXTFILE_PATH"`
}

// Load builds the configuration from defaults, then the YAML file, then
// VACSTATS_* environment variables. configFile may be empty, in which case
// the usual locations are searched.
func Load(configFile string) (*Config, error) {
	cfg := Default()

	if configFile == "" {
		configFile = findConfigFile()
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file %s: %w", configFile, err)
		}
	}

	// Unset variables leave the file or default value in place.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate normalizes the report mode, then checks struct tags.
func (c *Config) Validate() error {
	c.Report.Mode = strings.ToLower(strings.TrimSpace(c.Report.Mode))
	if err := validator.New().Struct(c); err != nil {
		return err
	}
	if c.Logging.Level == "warning" {
		c.Logging.Level = "warn"
	}
	return nil
}

// findConfigFile returns the first config file found in common locations
func findConfigFile() string {
	locations := []string{
		DefaultConfigFile,
		"configs/" + DefaultConfigFile,
	}

	for _, location := range locations {
		if FileExists(location) {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Report: ReportConfig{},
		Paths: PathsConfig{
			OutputDir:    DefaultOutputDir,
			ChartFile:    DefaultChartFile,
			WorkbookFile: DefaultWorkbookFile,
			DocumentFile: DefaultDocumentFile,
		},
		Browser: BrowserConfig{
			Headless:       true,
			Timeout:        DefaultBrowserTimeout,
			ViewportWidth:  1200,
			ViewportHeight: 900,
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Output:   "console",
			FilePath: "logs/vacancystats.log",
		},
		Tracing: TracingConfig{
			Exporter:    "none",
			SampleRatio: 1.0,
		},
		Metrics: MetricsConfig{},
	}
}
