package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvVars = []string{
	"VACSTATS_REPORT_INPUT_FILE", "VACSTATS_REPORT_PROFESSION", "VACSTATS_REPORT_MODE",
	"VACSTATS_PATHS_OUTPUT_DIR", "VACSTATS_PATHS_CHART_FILE", "VACSTATS_PATHS_TEMPLATE_FILE",
	"VACSTATS_BROWSER_EXEC_PATH", "VACSTATS_BROWSER_HEADLESS", "VACSTATS_BROWSER_TIMEOUT",
	"VACSTATS_LOGGING_LEVEL", "VACSTATS_LOGGING_OUTPUT",
	"VACSTATS_TRACING_EXPORTER", "VACSTATS_TRACING_FILE_PATH", "VACSTATS_TRACING_SAMPLE_RATIO",
	"VACSTATS_METRICS_TEXTFILE_PATH",
}

// clearConfigEnv unsets every variable Load reads and restores them after the test.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vacancystats.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// TestLoad tests the Load function with various scenarios
func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults with no env vars",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultOutputDir, cfg.Paths.OutputDir)
				assert.Equal(t, "graph.png", cfg.Paths.ChartFile)
				assert.Equal(t, "report.xlsx", cfg.Paths.WorkbookFile)
				assert.Equal(t, "report.pdf", cfg.Paths.DocumentFile)
				assert.True(t, cfg.Browser.Headless)
				assert.Equal(t, 60*time.Second, cfg.Browser.Timeout)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "none", cfg.Tracing.Exporter)
				assert.Empty(t, cfg.Report.Mode)
				assert.Empty(t, cfg.Metrics.TextfilePath)
			},
		},
		{
			name: "env vars override defaults",
			env: map[string]string{
				"VACSTATS_REPORT_PROFESSION":     "Аналитик",
				"VACSTATS_REPORT_MODE":           "spreadsheet",
				"VACSTATS_PATHS_OUTPUT_DIR":      "out",
				"VACSTATS_BROWSER_EXEC_PATH":     "/usr/bin/chromium",
				"VACSTATS_BROWSER_HEADLESS":      "false",
				"VACSTATS_BROWSER_TIMEOUT":       "15s",
				"VACSTATS_LOGGING_LEVEL":         "debug",
				"VACSTATS_METRICS_TEXTFILE_PATH": "run.prom",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "Аналитик", cfg.Report.Profession)
				assert.Equal(t, "spreadsheet", cfg.Report.Mode)
				assert.Equal(t, "out", cfg.Paths.OutputDir)
				assert.Equal(t, "/usr/bin/chromium", cfg.Browser.ExecPath)
				assert.False(t, cfg.Browser.Headless)
				assert.Equal(t, 15*time.Second, cfg.Browser.Timeout)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "run.prom", cfg.Metrics.TextfilePath)
			},
		},
		{
			name: "file values are applied",
			file: `
report:
  input_file: vacancies.csv
  profession: Программист
paths:
  output_dir: reports
  template_file: custom.html
browser:
  timeout: 90s
tracing:
  exporter: stdout
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "vacancies.csv", cfg.Report.InputFile)
				assert.Equal(t, "Программист", cfg.Report.Profession)
				assert.Equal(t, "reports", cfg.Paths.OutputDir)
				assert.Equal(t, "custom.html", cfg.Paths.TemplateFile)
				assert.Equal(t, 90*time.Second, cfg.Browser.Timeout)
				assert.Equal(t, "stdout", cfg.Tracing.Exporter)
				// Untouched sections keep their defaults
				assert.Equal(t, "graph.png", cfg.Paths.ChartFile)
				assert.True(t, cfg.Browser.Headless)
			},
		},
		{
			name: "env wins over file",
			env:  map[string]string{"VACSTATS_PATHS_OUTPUT_DIR": "from-env"},
			file: "paths:\n  output_dir: from-file\n",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "from-env", cfg.Paths.OutputDir)
			},
		},
		{
			name: "warning level is normalized",
			env:  map[string]string{"VACSTATS_LOGGING_LEVEL": "warning"},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "warn", cfg.Logging.Level)
			},
		},
		{
			name:    "unknown mode",
			env:     map[string]string{"VACSTATS_REPORT_MODE": "video"},
			wantErr: true,
		},
		{
			name:    "invalid log level",
			env:     map[string]string{"VACSTATS_LOGGING_LEVEL": "verbose"},
			wantErr: true,
		},
		{
			name:    "file tracing without a path",
			env:     map[string]string{"VACSTATS_TRACING_EXPORTER": "file"},
			wantErr: true,
		},
		{
			name:    "sample ratio out of range",
			env:     map[string]string{"VACSTATS_TRACING_SAMPLE_RATIO": "1.5"},
			wantErr: true,
		},
		{
			name:    "malformed duration",
			env:     map[string]string{"VACSTATS_BROWSER_TIMEOUT": "soon"},
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			file:    "paths: [unclosed",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			var file string
			if tt.file != "" {
				file = writeConfigFile(t, tt.file)
			}

			cfg, err := Load(file)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, cfg)
			if tt.validateCfg != nil {
				tt.validateCfg(t, cfg)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearConfigEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "absent.yaml")
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"empty output dir", func(c *Config) { c.Paths.OutputDir = "" }, true},
		{"empty chart file", func(c *Config) { c.Paths.ChartFile = "" }, true},
		{"zero timeout", func(c *Config) { c.Browser.Timeout = 0 }, true},
		{"tiny viewport", func(c *Config) { c.Browser.ViewportWidth = 10 }, true},
		{"file logging without path", func(c *Config) {
			c.Logging.Output = "file"
			c.Logging.FilePath = ""
		}, true},
		{"console logging without path", func(c *Config) { c.Logging.FilePath = "" }, false},
		{"all mode", func(c *Config) { c.Report.Mode = "all" }, false},
		{"mode in upper case", func(c *Config) { c.Report.Mode = " Chart " }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
