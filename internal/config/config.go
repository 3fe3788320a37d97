// Package config provides configuration management for the a11yscan CLI
// using Viper for flexible configuration loading from a YAML file,
// A11Y_-prefixed environment variables, and command-line flags.
//
// This configuration belongs entirely to the external CLI collaborator
// (spec §1, §6): the core analyzer package never reads it, the same way
// its AuditConfiguration is a parameter handed in by a caller.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the CLI's full configuration surface.
type Config struct {
	Scan   ScanConfig   `yaml:"scan"`
	Rules  RulesConfig  `yaml:"rules"`
	Report ReportConfig `yaml:"report"`
	Watch  WatchConfig  `yaml:"watch"`

	TargetFiles []string `yaml:"-"` // CLI positional arguments, not from config file
}

// ScanConfig controls which sources the CLI reads before handing them to
// the core as a source.Collection.
type ScanConfig struct {
	Paths           []string `yaml:"paths"`
	ExcludePatterns []string `yaml:"exclude_patterns"`
	Scope           string   `yaml:"scope"` // file | page | workspace
}

// RulesConfig holds the rule settings Load reads and validates. The scan
// command applies MinSeverity (issues below it are dropped); it does not
// apply Include, Exclude or WCAGLevel: every registered pass runs and the
// reporters print every WCAG criterion an issue carries.
type RulesConfig struct {
	Include     []string `yaml:"include"`
	Exclude     []string `yaml:"exclude"`
	WCAGLevel   string   `yaml:"wcag_level"`   // A | AA | AAA
	MinSeverity string   `yaml:"min_severity"` // error | warning | info
}

// ReportConfig controls the reporter the CLI selects (internal/report).
type ReportConfig struct {
	Format string `yaml:"format"` // json | markdown | console
	Output string `yaml:"output"` // "" means stdout
}

// WatchConfig controls the optional fsnotify-backed re-run loop.
type WatchConfig struct {
	Enabled      bool `yaml:"enabled"`
	DebounceMs   int  `yaml:"debounce_ms"`
}

// Load reads the bound Viper configuration into a Config, applies
// defaults for anything unset, and validates the result.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if viper.IsSet("scan.paths") && len(cfg.Scan.Paths) == 0 {
		if paths := viper.GetStringSlice("scan.paths"); len(paths) > 0 {
			cfg.Scan.Paths = paths
		}
	}
	if viper.IsSet("scan.exclude_patterns") && len(cfg.Scan.ExcludePatterns) == 0 {
		if patterns := viper.GetStringSlice("scan.exclude_patterns"); len(patterns) > 0 {
			cfg.Scan.ExcludePatterns = patterns
		}
	}
	if viper.IsSet("rules.include") && len(cfg.Rules.Include) == 0 {
		cfg.Rules.Include = viper.GetStringSlice("rules.include")
	}
	if viper.IsSet("rules.exclude") && len(cfg.Rules.Exclude) == 0 {
		cfg.Rules.Exclude = viper.GetStringSlice("rules.exclude")
	}
	if viper.IsSet("rules.wcag_level") && cfg.Rules.WCAGLevel == "" {
		cfg.Rules.WCAGLevel = viper.GetString("rules.wcag_level")
	}
	if viper.IsSet("rules.min_severity") && cfg.Rules.MinSeverity == "" {
		cfg.Rules.MinSeverity = viper.GetString("rules.min_severity")
	}
	if viper.IsSet("report.format") && cfg.Report.Format == "" {
		cfg.Report.Format = viper.GetString("report.format")
	}
	if viper.IsSet("watch.debounce_ms") && cfg.Watch.DebounceMs == 0 {
		cfg.Watch.DebounceMs = viper.GetInt("watch.debounce_ms")
	}

	if len(cfg.Scan.Paths) == 0 {
		cfg.Scan.Paths = []string{"."}
	}
	if len(cfg.Scan.ExcludePatterns) == 0 {
		cfg.Scan.ExcludePatterns = []string{"node_modules", ".git", "dist", "build"}
	}
	if cfg.Scan.Scope == "" {
		cfg.Scan.Scope = "workspace"
	}
	if cfg.Rules.WCAGLevel == "" {
		cfg.Rules.WCAGLevel = "AA"
	}
	if cfg.Rules.MinSeverity == "" {
		cfg.Rules.MinSeverity = "info"
	}
	if cfg.Report.Format == "" {
		cfg.Report.Format = "console"
	}
	if cfg.Watch.DebounceMs == 0 {
		cfg.Watch.DebounceMs = 250
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	for _, p := range cfg.Scan.Paths {
		if err := validatePath(p); err != nil {
			return fmt.Errorf("scan path %q: %w", p, err)
		}
	}
	switch cfg.Scan.Scope {
	case "file", "page", "workspace":
	default:
		return fmt.Errorf("scan.scope must be one of file|page|workspace, got %q", cfg.Scan.Scope)
	}
	switch cfg.Rules.WCAGLevel {
	case "A", "AA", "AAA":
	default:
		return fmt.Errorf("rules.wcag_level must be one of A|AA|AAA, got %q", cfg.Rules.WCAGLevel)
	}
	switch cfg.Report.Format {
	case "json", "markdown", "console":
	default:
		return fmt.Errorf("report.format must be one of json|markdown|console, got %q", cfg.Report.Format)
	}
	return nil
}

// validatePath rejects path-traversal attempts and shell metacharacters in
// a configured scan path, mirroring the teacher's security validation
// pattern for any user-supplied filesystem path.
func validatePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}
	clean := filepath.Clean(path)
	if strings.Contains(clean, "..") {
		return fmt.Errorf("path contains traversal: %s", path)
	}
	for _, ch := range []string{";", "&", "|", "$", "`", "<", ">", "\"", "'"} {
		if strings.Contains(clean, ch) {
			return fmt.Errorf("path contains dangerous character %q", ch)
		}
	}
	return nil
}
