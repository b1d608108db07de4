package resolver

import (
	"context"

	"github.com/Cyclone1070/p4bridge/internal/p4/connection"
	"github.com/Cyclone1070/p4bridge/internal/p4/executor"
)

// Executor runs one CLI command.
type Executor interface {
	Execute(ctx context.Context, cfg connection.Config, command string, args []string, opts executor.Options) *executor.Result
}
