package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigDir is the directory name under ~/.config
	ConfigDir = "p4bridge"
	// ConfigFile is the config file name
	ConfigFile = "config.json"
	// EnvPrefix prefixes environment overrides, e.g. P4BRIDGE_P4_EXECUTABLE
	EnvPrefix = "P4BRIDGE"
)

// FileSystem abstracts file operations for testability
type FileSystem interface {
	UserHomeDir() (string, error)
	ReadFile(path string) ([]byte, error)
}

// ConfigFileReader implements FileSystem using the real OS for config loading
type ConfigFileReader struct{}

func (ConfigFileReader) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

func (ConfigFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Loader handles configuration loading with injected dependencies
type Loader struct {
	fs FileSystem
}

// NewLoader creates a production Loader using the real filesystem
func NewLoader() *Loader {
	return &Loader{fs: ConfigFileReader{}}
}

// NewLoaderWithFS creates a Loader with a custom filesystem (for testing)
func NewLoaderWithFS(fs FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Path returns the dotfile location, or "" when the home directory is unknown.
func (l *Loader) Path() string {
	homeDir, err := l.fs.UserHomeDir()
	if err != nil || homeDir == "" {
		return ""
	}
	return filepath.Join(homeDir, ".config", ConfigDir, ConfigFile)
}

// Load reads configuration from ~/.config/p4bridge/config.json and the
// P4BRIDGE_* environment, layered over defaults.
// Returns default config if the dotfile doesn't exist.
// Returns error only for parse errors, permission issues, or validation failures.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	setDefaults(v, cfg)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := l.Path(); path != "" {
		data, err := l.fs.ReadFile(path)
		switch {
		case err == nil:
			v.SetConfigType("json")
			if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
				return nil, &ParseError{Path: path, Cause: err}
			}
		case os.IsNotExist(err):
			// defaults and environment only
		default:
			return nil, &ReadError{Path: path, Cause: err}
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, &ParseError{Path: l.Path(), Cause: err}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can see it during Unmarshal.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("p4.executable", cfg.P4.Executable)
	v.SetDefault("p4.p4v_executable", cfg.P4.P4VExecutable)
	v.SetDefault("p4.p4vc_executable", cfg.P4.P4VCExecutable)
	v.SetDefault("p4.settings_file", cfg.P4.SettingsFile)
	v.SetDefault("p4.compare_tool", cfg.P4.CompareTool)
	v.SetDefault("p4.echo", cfg.P4.Echo)

	v.SetDefault("catalog.concurrency", cfg.Catalog.Concurrency)
	v.SetDefault("catalog.include_all_clients", cfg.Catalog.IncludeAllClients)
	v.SetDefault("catalog.machine_name", cfg.Catalog.MachineName)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.output", cfg.Log.Output)
	v.SetDefault("log.file_path", cfg.Log.FilePath)
	v.SetDefault("log.max_size", cfg.Log.MaxSize)
	v.SetDefault("log.max_backups", cfg.Log.MaxBackups)
	v.SetDefault("log.max_age", cfg.Log.MaxAge)
	v.SetDefault("log.compress", cfg.Log.Compress)
}

// Load is a convenience function using the default loader
func Load() (*Config, error) {
	return NewLoader().Load()
}
