// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/twin/internal/adapters/config"
	_ "go.trai.ch/twin/internal/adapters/fs"
	_ "go.trai.ch/twin/internal/adapters/git"
	_ "go.trai.ch/twin/internal/adapters/logger"
	_ "go.trai.ch/twin/internal/adapters/shell"
	_ "go.trai.ch/twin/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/twin/internal/app"
	_ "go.trai.ch/twin/internal/engine/copier"
	_ "go.trai.ch/twin/internal/engine/detection"
	_ "go.trai.ch/twin/internal/engine/selection"
)
