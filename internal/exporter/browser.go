package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"vacancystats/internal/config"
	"vacancystats/internal/errors"
)

// chromeCandidates are the executable names searched when no path is set.
var chromeCandidates = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"headless-shell",
	"chrome",
}

// Browser runs one-shot headless Chrome sessions.
type Browser struct {
	cfg    config.BrowserConfig
	logger *slog.Logger
}

// NewBrowser creates a browser launcher for cfg.
func NewBrowser(cfg config.BrowserConfig, logger *slog.Logger) *Browser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Browser{cfg: cfg, logger: logger.With("component", "browser")}
}

// FindChrome returns the configured executable when it exists, otherwise the
// first known Chrome binary on PATH.
func FindChrome(cfg config.BrowserConfig) (string, bool) {
	if cfg.ExecPath != "" {
		if info, err := os.Stat(cfg.ExecPath); err == nil && !info.IsDir() {
			return cfg.ExecPath, true
		}
		return "", false
	}
	for _, name := range chromeCandidates {
		if path, err := exec.LookPath(name); err == nil {
			return path, true
		}
	}
	return "", false
}

// allocatorOptions builds the launch flags for the executable at execPath.
// An empty execPath leaves the lookup to chromedp.
func (b *Browser) allocatorOptions(execPath string) []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", b.cfg.Headless),
		chromedp.WindowSize(b.cfg.ViewportWidth, b.cfg.ViewportHeight),
	)
	if b.cfg.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	if execPath != "" {
		opts = append(opts, chromedp.ExecPath(execPath))
	}
	return opts
}

// Run starts a fresh browser, loads html into a blank tab and runs actions
// against it. The browser is closed before Run returns.
func (b *Browser) Run(ctx context.Context, html string, actions ...chromedp.Action) error {
	execPath, ok := FindChrome(b.cfg)
	if !ok {
		return errors.NewNotFoundError("chrome executable")
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, b.allocatorOptions(execPath)...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx,
		chromedp.WithErrorf(func(format string, args ...interface{}) {
			b.logger.Debug("chromedp", slog.String("detail", fmt.Sprintf(format, args...)))
		}))
	defer cancelTab()

	runCtx, cancelRun := context.WithTimeout(tabCtx, b.cfg.Timeout)
	defer cancelRun()

	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(int64(b.cfg.ViewportWidth), int64(b.cfg.ViewportHeight)),
		chromedp.Navigate("about:blank"),
		loadHTML(html),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
	tasks = append(tasks, actions...)

	b.logger.DebugContext(ctx, "Starting headless browser",
		slog.Bool("headless", b.cfg.Headless),
		slog.String("exec_path", execPath))

	if err := chromedp.Run(runCtx, tasks); err != nil {
		return fmt.Errorf("browser session failed: %w", err)
	}
	return nil
}

// loadHTML replaces the current document of the main frame with html.
func loadHTML(html string) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		tree, err := page.GetFrameTree().Do(ctx)
		if err != nil {
			return err
		}
		return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
	})
}
