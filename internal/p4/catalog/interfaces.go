package catalog

import (
	"context"

	"github.com/Cyclone1070/p4bridge/internal/p4/connection"
	"github.com/Cyclone1070/p4bridge/internal/p4/executor"
	"github.com/Cyclone1070/p4bridge/internal/p4/p4v"
)

// Executor runs one CLI command.
type Executor interface {
	Execute(ctx context.Context, cfg connection.Config, command string, args []string, opts executor.Options) *executor.Result
}

// Resolver provides the current connection and port normalization.
type Resolver interface {
	Connection(ctx context.Context, explicit *connection.Config) connection.Config
	Environment(ctx context.Context, dir string) connection.Config
	NormalizePort(ctx context.Context, cfg, env connection.Config) connection.Config
}

// SettingsSource supplies the GUI client's saved connections.
type SettingsSource interface {
	Settings() *p4v.Settings
}
