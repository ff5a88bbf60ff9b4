package steps

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"

	"github.com/smartisanos/wallkit/pkg/api"
)

type interpreterStep struct {
	cfg *api.InterpreterConfig
}

// NewInterpreterStep creates the interpreter presence check.
func NewInterpreterStep(cfg *api.InterpreterConfig) Step {
	return &interpreterStep{cfg: cfg}
}

func (s *interpreterStep) Name() string { return "interpreter" }

// Run queries the interpreter version with output discarded. Only the exit
// status matters here.
func (s *interpreterStep) Run(ctx context.Context, env Env) error {
	if _, err := exec.LookPath(s.cfg.Command); err != nil {
		return fmt.Errorf("%s not found in PATH: %w", s.cfg.Command, err)
	}

	slog.Debug("checking interpreter", "command", s.cfg.Command)

	cmd := exec.CommandContext(ctx, s.cfg.Command, "--version")
	cmd.Dir = env.WorkDir
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s --version failed: %w", s.cfg.Command, err)
	}
	return nil
}
