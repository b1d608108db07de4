package resolver

import (
	"context"
	"strings"

	"github.com/Cyclone1070/p4bridge/internal/p4/connection"
)

// Environment variable names the CLI understands.
const (
	EnvUser     = "P4USER"
	EnvHost     = "P4HOST"
	EnvPort     = "P4PORT"
	EnvClient   = "P4CLIENT"
	EnvPassword = "P4PASSWD"
)

// EnvironmentVariables returns the resolved connection as CLI environment
// variables. Empty fields are omitted.
func (r *Resolver) EnvironmentVariables(ctx context.Context, explicit *connection.Config) map[string]string {
	cfg := r.Connection(ctx, explicit)
	vars := make(map[string]string, 4)
	for name, value := range map[string]string{
		EnvUser:   cfg.User,
		EnvHost:   cfg.Host,
		EnvPort:   cfg.Port,
		EnvClient: cfg.Client,
	} {
		if value != "" {
			vars[name] = value
		}
	}
	return vars
}

// EnvironmentVariable returns one variable from the resolved connection,
// falling back to the process environment. The password is never resolved
// and is only taken from explicit.
func (r *Resolver) EnvironmentVariable(ctx context.Context, name string, explicit *connection.Config) string {
	if name == "" {
		return ""
	}

	var value string
	switch strings.ToUpper(name) {
	case EnvUser:
		value = r.Connection(ctx, explicit).User
	case EnvHost:
		value = r.Connection(ctx, explicit).Host
	case EnvPort:
		value = r.Connection(ctx, explicit).Port
	case EnvClient:
		value = r.Connection(ctx, explicit).Client
	case EnvPassword:
		if explicit != nil {
			value = explicit.Password
		}
	}

	if value == "" {
		value = r.getenv(name)
	}
	return value
}
