package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/conneroisu/a11yscan/internal/analyzerapi"
	"github.com/conneroisu/a11yscan/internal/config"
	"github.com/conneroisu/a11yscan/internal/diag"
	"github.com/conneroisu/a11yscan/internal/docmodel"
	"github.com/conneroisu/a11yscan/internal/logging"
	"github.com/conneroisu/a11yscan/internal/report"
	"github.com/conneroisu/a11yscan/internal/rules"
	"github.com/conneroisu/a11yscan/internal/watcher"
)

var (
	scanFormat      string
	scanOutputFile  string
	scanMinSeverity string
	scanWatch       bool
	scanQuiet       bool
	scanVerbose     bool
)

// scanCmd represents the scan command, the analyzer's sole entry point:
// ingest sources under the given paths, build the document model, run
// every registered pass, and render the resulting issues.
var scanCmd = &cobra.Command{
	Use:   "scan [paths...]",
	Short: "Scan source files for accessibility issues",
	Long: `Scan walks the given paths (or the configured scan paths if none are
given), reads every HTML/JSX, JS/TS, and CSS source file it finds, and
runs the full accessibility analyzer pass set against them.

Examples:
  a11yscan scan .                      Scan the current directory
  a11yscan scan --format json ./src    Emit a JSON report
  a11yscan scan --watch ./src          Re-scan on every file change`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVarP(&scanFormat, "format", "o", "", "report format: json, markdown, console (default from config)")
	scanCmd.Flags().StringVarP(&scanOutputFile, "output-file", "f", "", "output file path (stdout if not specified)")
	scanCmd.Flags().StringVarP(&scanMinSeverity, "min-severity", "s", "", "minimum severity to report: error, warning, info")
	scanCmd.Flags().BoolVarP(&scanWatch, "watch", "w", false, "re-run the scan on every file change")
	scanCmd.Flags().BoolVarP(&scanQuiet, "quiet", "q", false, "suppress non-error log output")
	scanCmd.Flags().BoolVarP(&scanVerbose, "verbose", "v", false, "enable verbose log output")
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	loggerConfig := logging.DefaultConfig()
	loggerConfig.Component = "scan"
	if scanQuiet {
		loggerConfig.Level = logging.LevelError
	} else if scanVerbose {
		loggerConfig.Level = logging.LevelDebug
	}
	logger := logging.NewLogger(loggerConfig)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	applyScanOverrides(cfg)

	roots := args
	if len(roots) == 0 {
		roots = cfg.Scan.Paths
	}

	orch := analyzerapi.NewOrchestrator(logger)
	rules.RegisterAll(orch)

	if err := runOneScan(ctx, logger, orch, cfg, roots); err != nil {
		return err
	}
	if !scanWatch {
		return nil
	}
	return watchAndRescan(ctx, logger, orch, cfg, roots)
}

func applyScanOverrides(cfg *config.Config) {
	if scanFormat != "" {
		cfg.Report.Format = scanFormat
	}
	if scanOutputFile != "" {
		cfg.Report.Output = scanOutputFile
	}
	if scanMinSeverity != "" {
		cfg.Rules.MinSeverity = scanMinSeverity
	}
}

func runOneScan(ctx context.Context, logger logging.Logger, orch *analyzerapi.Orchestrator, cfg *config.Config, roots []string) error {
	coll, err := buildCollection(cfg, roots)
	if err != nil {
		return fmt.Errorf("failed to collect source files: %w", err)
	}
	if !scanQuiet {
		logger.Info(ctx, "collected sources",
			"html", len(coll.HTMLSources), "js", len(coll.JSSources), "css", len(coll.CSSSources))
	}

	var diags diag.Collector
	doc := docmodel.Build(coll, &diags)
	for _, d := range diags.All() {
		logger.Warn(ctx, d.Cause, d.Message, "kind", d.Kind, "location", d.Location.String())
	}

	issues := orch.Run(ctx, doc, nil, coll.Scope)
	issues = filterBySeverity(issues, cfg.Rules.MinSeverity)

	out, err := report.Render(report.Format(cfg.Report.Format), issues)
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if cfg.Report.Output == "" {
		fmt.Fprint(os.Stdout, out)
	} else if err := os.WriteFile(cfg.Report.Output, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to write report to %s: %w", cfg.Report.Output, err)
	}

	if !scanQuiet {
		logger.Info(ctx, "scan complete", "issues", len(issues))
	}
	return nil
}

var severityRank = map[string]int{"info": 0, "warning": 1, "error": 2}

func filterBySeverity(issues []analyzerapi.Issue, min string) []analyzerapi.Issue {
	minRank, ok := severityRank[min]
	if !ok {
		return issues
	}
	out := make([]analyzerapi.Issue, 0, len(issues))
	for _, iss := range issues {
		if severityRank[string(iss.Severity)] >= minRank {
			out = append(out, iss)
		}
	}
	return out
}

func watchAndRescan(parent context.Context, logger logging.Logger, orch *analyzerapi.Orchestrator, cfg *config.Config, roots []string) error {
	debounce := time.Duration(cfg.Watch.DebounceMs) * time.Millisecond
	fw, err := watcher.NewFileWatcher(debounce)
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer fw.Stop()

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	fw.AddFilter(watcher.NoGitFilter)
	fw.AddFilter(watcher.NoVendorFilter)
	fw.AddFilter(watcher.NoNodeModulesFilter)
	fw.AddFilter(func(path string) bool {
		return watcher.HTMLFilter(path) || watcher.JSFilter(path) || watcher.CSSFilter(path)
	})

	fw.AddHandler(func(events []watcher.ChangeEvent) error {
		logger.Info(ctx, "file changes detected", "count", len(events))
		if err := runOneScan(ctx, logger, orch, cfg, roots); err != nil {
			logger.Error(ctx, err, "rescan failed")
		}
		return nil
	})

	for _, root := range roots {
		if err := fw.AddRecursive(root); err != nil {
			return fmt.Errorf("failed to watch %s: %w", root, err)
		}
	}

	if err := fw.Start(ctx); err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}

	logger.Info(ctx, "watching for changes", "paths", roots)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logger.Info(ctx, "stopping file watcher")
	cancel()
	return nil
}
