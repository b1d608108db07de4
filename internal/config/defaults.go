package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via the dotfile
// or P4BRIDGE_* environment variables.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	P4      P4Config      `mapstructure:"p4"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Log     LogConfig     `mapstructure:"log"`
}

type P4Config struct {
	// Executables
	Executable     string `mapstructure:"executable"`      // Default: "p4"
	P4VExecutable  string `mapstructure:"p4v_executable"`  // Default: "p4v"
	P4VCExecutable string `mapstructure:"p4vc_executable"` // Default: "p4vc"

	// Companion GUI settings file. Empty means ~/.p4qt/ApplicationSettings.xml
	SettingsFile string `mapstructure:"settings_file"`

	// Fallback diff tool when the GUI settings name none
	CompareTool string `mapstructure:"compare_tool"` // Default: "p4merge"

	// Echo every invocation's output to the log
	Echo bool `mapstructure:"echo"` // Default: false
}

type CatalogConfig struct {
	Concurrency       int    `mapstructure:"concurrency"`         // Default: 4
	IncludeAllClients bool   `mapstructure:"include_all_clients"` // Default: false
	MachineName       string `mapstructure:"machine_name"`        // Default: "" (os.Hostname)
}

// LogConfig mirrors logger.Config so it can be converted directly.
type LogConfig struct {
	Level      string `mapstructure:"level"`       // Default: "info"
	Format     string `mapstructure:"format"`      // Default: "text"
	Output     string `mapstructure:"output"`      // Default: "console"
	FilePath   string `mapstructure:"file_path"`   // Default: ""
	MaxSize    int    `mapstructure:"max_size"`    // Default: 10 (MB)
	MaxBackups int    `mapstructure:"max_backups"` // Default: 3
	MaxAge     int    `mapstructure:"max_age"`     // Default: 28 (days)
	Compress   bool   `mapstructure:"compress"`    // Default: true
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		P4: P4Config{
			Executable:     "p4",
			P4VExecutable:  "p4v",
			P4VCExecutable: "p4vc",
			CompareTool:    "p4merge",
		},
		Catalog: CatalogConfig{
			Concurrency: 4,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "text",
			Output:     "console",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		},
	}
}
