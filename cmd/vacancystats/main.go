// vacancystats - salary and vacancy statistics from a vacancies CSV export
//
// Usage:
//
//	vacancystats --file vacancies_by_year.csv --profession Аналитик --mode document
//	vacancystats --mode all --out reports
//	vacancystats version
package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"vacancystats/internal/app"
	"vacancystats/internal/config"
	"vacancystats/internal/errors"
	"vacancystats/internal/infrastructure"
	"vacancystats/pkg/contracts"
	"vacancystats/pkg/contracts/domain"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newCLI(os.Stdin, os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newCLI(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      config.AppName,
		Usage:     config.AppUsage,
		Version:   contracts.GetFullVersionString(),
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Vacancies CSV file (asked for when omitted)",
			},
			&cli.StringFlag{
				Name:    "profession",
				Aliases: []string{"p"},
				Usage:   "Profession substring matched against vacancy titles (asked for when omitted)",
			},
			&cli.StringFlag{
				Name:    "mode",
				Aliases: []string{"m"},
				Usage:   "Output mode (document, chart, spreadsheet, all); asked for when omitted",
			},
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Output directory",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML configuration file",
			},
			&cli.StringFlag{
				Name:  "chrome",
				Usage: "Chrome or Chromium executable used for charts and documents",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the run report as JSON",
			},
		},

		Action: func(c *cli.Context) error {
			return run(c, stdin, stdout)
		},

		Commands: []*cli.Command{
			{
				Name:  "version",
				Usage: "Print version information",
				Action: func(c *cli.Context) error {
					fmt.Fprintln(c.App.Writer, contracts.GetFullVersionString())
					return nil
				},
			},
		},
	}
}

func run(c *cli.Context, stdin io.Reader, stdout io.Writer) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer infrastructure.CloseLogFile()

	prompter := app.NewPrompter(stdin, stdout)
	mode, err := resolveInputs(cfg, prompter)
	if stderrors.Is(err, errors.ErrUnknownMode) {
		// An unrecognized answer ends the run without output.
		fmt.Fprintf(stdout, "Неизвестный формат вывода. Доступны: document, chart, spreadsheet\n")
		logger.Warn("Unknown output mode", slog.String("error", err.Error()))
		return nil
	}
	if err != nil {
		return err
	}

	telemetry, err := infrastructure.InitializeTelemetry(cfg.Tracing, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	application, err := app.NewApplication(cfg, logger, telemetry)
	if err != nil {
		telemetry.Shutdown(context.Background())
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := application.Shutdown(ctx); err != nil {
			logger.Error("Shutdown failed", slog.String("error", err.Error()))
		}
	}()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := application.Run(ctx, mode)
	if err != nil {
		printCandidates(stdout, err)
		return err
	}

	if c.Bool("json") {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printSummary(stdout, report)
	return nil
}

// loadConfig reads configuration and applies command line overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, errors.NewConfigError("failed to load configuration", err)
	}

	if c.IsSet("file") {
		cfg.Report.InputFile = c.String("file")
	}
	if c.IsSet("profession") {
		cfg.Report.Profession = c.String("profession")
	}
	if c.IsSet("mode") {
		cfg.Report.Mode = c.String("mode")
	}
	if c.IsSet("out") {
		cfg.Paths.OutputDir = c.String("out")
	}
	if c.IsSet("chrome") {
		cfg.Browser.ExecPath = c.String("chrome")
	}
	if c.IsSet("log-level") {
		cfg.Logging.Level = c.String("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.NewConfigError("invalid configuration", err)
	}
	return cfg, nil
}

// resolveInputs asks for whatever the configuration left open and returns
// the output mode.
func resolveInputs(cfg *config.Config, prompter *app.Prompter) (domain.OutputMode, error) {
	var err error
	if cfg.Report.InputFile == "" {
		if cfg.Report.InputFile, err = prompter.Ask(app.FilePrompt); err != nil {
			return "", fmt.Errorf("failed to read file name: %w", err)
		}
	}
	if cfg.Report.Profession == "" {
		if cfg.Report.Profession, err = prompter.Ask(app.ProfessionPrompt); err != nil {
			return "", fmt.Errorf("failed to read profession: %w", err)
		}
	}
	if cfg.Report.Mode == "" {
		return prompter.Mode()
	}
	mode, ok := domain.ParseOutputMode(cfg.Report.Mode)
	if !ok {
		return "", errors.NewUnknownModeError(cfg.Report.Mode)
	}
	return mode, nil
}

func printSummary(w io.Writer, report *app.RunReport) {
	fmt.Fprintf(w, "Обработано строк: %d, пропущено: %d\n", report.Stats.DataRows, report.Stats.RejectedRows)
	for _, path := range []string{report.Artifacts.ChartPath, report.Artifacts.WorkbookPath, report.Artifacts.DocumentPath} {
		if path != "" {
			fmt.Fprintf(w, "Создан файл: %s\n", path)
		}
	}
}

// printCandidates lists the CSV files the preflight found when the input
// file was missing.
func printCandidates(w io.Writer, err error) {
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		return
	}
	names, ok := appErr.Context[app.CandidatesKey].([]string)
	if !ok || len(names) == 0 {
		return
	}
	fmt.Fprintf(w, "Файл не найден. Доступные CSV файлы: %s\n", strings.Join(names, ", "))
}
