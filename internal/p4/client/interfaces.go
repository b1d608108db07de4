package client

import (
	"context"

	"github.com/Cyclone1070/p4bridge/internal/p4/connection"
	"github.com/Cyclone1070/p4bridge/internal/p4/executor"
)

// Executor runs one CLI command.
type Executor interface {
	Execute(ctx context.Context, cfg connection.Config, command string, args []string, opts executor.Options) *executor.Result
}

// DirectoryResolver scopes a connection to the directory of a set of paths.
type DirectoryResolver interface {
	DirectoryConfig(base connection.Config, paths []string) connection.Config
}

// ConnectionSource provides the current connection.
type ConnectionSource interface {
	Current() connection.Config
}
