package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains resolved absolute locations for every artifact a run may
// write.
type Paths struct {
	OutputDir    string
	ChartFile    string
	WorkbookFile string
	DocumentFile string
	// TemplateFile is empty when the built-in document template is used.
	TemplateFile string
}

// ResolvePaths turns the configured paths into absolute ones. File names
// that are already absolute are kept as they are.
func (c *Config) ResolvePaths() (*Paths, error) {
	outputDir, err := filepath.Abs(c.Paths.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve output directory: %w", err)
	}

	paths := &Paths{
		OutputDir:    outputDir,
		ChartFile:    resolveIn(outputDir, c.Paths.ChartFile),
		WorkbookFile: resolveIn(outputDir, c.Paths.WorkbookFile),
		DocumentFile: resolveIn(outputDir, c.Paths.DocumentFile),
	}
	if c.Paths.TemplateFile != "" {
		paths.TemplateFile, err = filepath.Abs(c.Paths.TemplateFile)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve template file: %w", err)
		}
	}
	return paths, nil
}

func resolveIn(dir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

// EnsureDirectories creates the output directory and the parent directory
// of every artifact.
func (p *Paths) EnsureDirectories() error {
	dirs := []string{
		p.OutputDir,
		filepath.Dir(p.ChartFile),
		filepath.Dir(p.WorkbookFile),
		filepath.Dir(p.DocumentFile),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetReportPath returns filename inside the output directory
func (p *Paths) GetReportPath(filename string) string {
	return filepath.Join(p.OutputDir, filename)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LogPathResolution logs all resolved paths for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	template := p.TemplateFile
	if template == "" {
		template = "(built-in)"
	}
	logger.Debug("Resolved paths",
		slog.String("output_dir", p.OutputDir),
		slog.String("chart", p.ChartFile),
		slog.String("workbook", p.WorkbookFile),
		slog.String("document", p.DocumentFile),
		slog.String("template", template))
}
