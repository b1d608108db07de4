package config

import (
	"fmt"
	"slices"
	"strings"
)

var (
	logLevels  = []string{"trace", "debug", "info", "warn", "warning", "error", "fatal", "panic"}
	logFormats = []string{"text", "json"}
	logOutputs = []string{"console", "file", "both"}
)

// Validate checks the configuration for consistency.
// All violations are reported together.
func (c *Config) Validate() error {
	var errs []string

	// P4 validation
	if strings.TrimSpace(c.P4.Executable) == "" {
		errs = append(errs, "p4.executable must not be empty")
	}
	if strings.TrimSpace(c.P4.P4VExecutable) == "" {
		errs = append(errs, "p4.p4v_executable must not be empty")
	}
	if strings.TrimSpace(c.P4.CompareTool) == "" {
		errs = append(errs, "p4.compare_tool must not be empty")
	}

	// Catalog validation
	if c.Catalog.Concurrency < 1 {
		errs = append(errs, "catalog.concurrency must be >= 1")
	}

	// Log validation
	if !slices.Contains(logLevels, strings.ToLower(c.Log.Level)) {
		errs = append(errs, fmt.Sprintf("log.level %q is not a known level", c.Log.Level))
	}
	if !slices.Contains(logFormats, strings.ToLower(c.Log.Format)) {
		errs = append(errs, "log.format must be text or json")
	}
	output := strings.ToLower(c.Log.Output)
	if !slices.Contains(logOutputs, output) {
		errs = append(errs, "log.output must be console, file or both")
	}
	if (output == "file" || output == "both") && c.Log.FilePath == "" {
		errs = append(errs, "log.file_path is required when log.output writes to a file")
	}
	if c.Log.MaxSize < 1 {
		errs = append(errs, "log.max_size must be >= 1")
	}
	if c.Log.MaxBackups < 0 {
		errs = append(errs, "log.max_backups must be >= 0")
	}
	if c.Log.MaxAge < 0 {
		errs = append(errs, "log.max_age must be >= 0")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
