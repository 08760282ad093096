// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"
)

// Executor defines the interface for running the reconciliation command.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Run executes command through the shell with dir as working directory,
	// streaming its output as it is produced. Nil writers route output
	// through the logger line by line.
	//
	// It returns an error carrying the exit code if the command fails.
	Run(ctx context.Context, dir, command string, stdout, stderr io.Writer) error
}
