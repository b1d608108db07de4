package ui

import (
	"context"

	"github.com/Cyclone1070/p4bridge/internal/p4/catalog"
	"github.com/Cyclone1070/p4bridge/internal/p4/connection"
)

// Loader starts a background connection discovery.
type Loader interface {
	LoadAsync(ctx context.Context) *catalog.Pending
}

// Applier makes a connection current.
type Applier interface {
	Apply(cfg connection.Config) connection.Config
}
