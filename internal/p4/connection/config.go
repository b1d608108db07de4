// Package connection holds the connection configuration passed to every CLI
// invocation and the process-wide "current connection" state.
package connection

import (
	"strings"

	"github.com/Cyclone1070/p4bridge/internal/p4/endpoint"
)

// Config is the connection configuration for one invocation.
// It is a plain value: assignment copies it and no field is ever aliased.
type Config struct {
	Host            string `mapstructure:"host"`
	Port            string `mapstructure:"port"`
	Client          string `mapstructure:"client"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	Ignore          string `mapstructure:"ignore"`
	ConfigDirectory string `mapstructure:"config_directory"`
}

// Clone returns a field-by-field copy of c.
func (c Config) Clone() Config {
	return Config{
		Host:            c.Host,
		Port:            c.Port,
		Client:          c.Client,
		User:            c.User,
		Password:        c.Password,
		Ignore:          c.Ignore,
		ConfigDirectory: c.ConfigDirectory,
	}
}

// ApplyConnection overwrites Port, User and Client with every non-empty
// counterpart in src.
func (c *Config) ApplyConnection(src Config) {
	if src.Port != "" {
		c.Port = src.Port
	}
	if src.User != "" {
		c.User = src.User
	}
	if src.Client != "" {
		c.Client = src.Client
	}
}

// InheritConnection fills Port, User and Client only where c is still empty.
func (c *Config) InheritConnection(src Config) {
	if c.Port == "" {
		c.Port = src.Port
	}
	if c.User == "" {
		c.User = src.User
	}
	if c.Client == "" {
		c.Client = src.Client
	}
}

// Overlay overwrites every field of c for which src has a non-empty value.
func (c *Config) Overlay(src Config) {
	c.ApplyConnection(src)
	if src.Host != "" {
		c.Host = src.Host
	}
	if src.Password != "" {
		c.Password = src.Password
	}
	if src.Ignore != "" {
		c.Ignore = src.Ignore
	}
	if src.ConfigDirectory != "" {
		c.ConfigDirectory = src.ConfigDirectory
	}
}

// Args returns the global CLI flags for c. Empty fields emit nothing.
func (c Config) Args() []string {
	var args []string
	args = appendFlag(args, "-H", c.Host)
	args = appendFlag(args, "-p", c.Port)
	args = appendFlag(args, "-c", c.Client)
	args = appendFlag(args, "-u", c.User)
	args = appendFlag(args, "-P", c.Password)
	return args
}

// P4VArgs returns the flags understood by the companion GUI tool.
func (c Config) P4VArgs() []string {
	var args []string
	args = appendFlag(args, "-p", c.Port)
	args = appendFlag(args, "-c", c.Client)
	args = appendFlag(args, "-u", c.User)
	return args
}

func appendFlag(args []string, flag, value string) []string {
	if value == "" {
		return args
	}
	return append(args, flag, value)
}

// PortName is the host part of Port.
func (c Config) PortName() string {
	return endpoint.Parse(c.Port).PortName
}

// PortNumber is the numeric part of Port.
func (c Config) PortNumber() string {
	return endpoint.Parse(c.Port).PortNumber
}

// Connection returns the (Port, User, Client) triple of c.
func (c Config) Connection() Connection {
	return Connection{Port: c.Port, User: c.User, Client: c.Client}
}

// ConnectionString is the canonical "Port, User, Client" form, skipping empty parts.
func (c Config) ConnectionString() string {
	return c.Connection().String()
}

// IsComplete reports whether Port, User and Client are all set.
func (c Config) IsComplete() bool {
	return c.Port != "" && c.User != "" && c.Client != ""
}

// Connection identifies a server/workspace pairing.
type Connection struct {
	Port   string
	User   string
	Client string
}

// String returns the canonical "Port, User, Client" form used as a display and
// dedup key. Empty parts are skipped.
func (c Connection) String() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{c.Port, c.User, c.Client} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// Config returns a Config carrying only the connection triple.
func (c Connection) Config() Config {
	return Config{Port: c.Port, User: c.User, Client: c.Client}
}

// PortName is the host part of Port.
func (c Connection) PortName() string {
	return endpoint.Parse(c.Port).PortName
}

// ParseConnectionString parses "Port, User, Client". Exactly three non-empty
// comma-separated tokens are required.
func ParseConnectionString(text string) (Connection, bool) {
	var tokens []string
	for _, t := range strings.Split(text, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tokens = append(tokens, t)
		}
	}
	if len(tokens) != 3 {
		return Connection{}, false
	}
	return Connection{Port: tokens[0], User: tokens[1], Client: tokens[2]}, true
}
