package steps

import (
	"context"
	"io"
	"os"
)

// Env provides the runtime environment for a build step.
type Env struct {
	WorkDir string
	Stdout  io.Writer // tool output, defaults to os.Stdout
	Stderr  io.Writer // tool diagnostics, defaults to os.Stderr
}

func (e Env) stdout() io.Writer {
	if e.Stdout != nil {
		return e.Stdout
	}
	return os.Stdout
}

func (e Env) stderr() io.Writer {
	if e.Stderr != nil {
		return e.Stderr
	}
	return os.Stderr
}

// Step is the interface all build steps implement. Run blocks until the
// step's subprocess terminates; cancellation goes through ctx.
type Step interface {
	Name() string
	Run(ctx context.Context, env Env) error
}
