package steps

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"

	"github.com/smartisanos/wallkit/pkg/api"
)

type installStep struct {
	cfg *api.DependencyConfig
}

// NewInstallStep creates the dependency installation step.
func NewInstallStep(cfg *api.DependencyConfig) Step {
	return &installStep{cfg: cfg}
}

func (s *installStep) Name() string { return "install" }

func (s *installStep) Run(ctx context.Context, env Env) error {
	if len(s.cfg.Packages) == 0 {
		slog.Info("no dependencies to install")
		return nil
	}

	if _, err := exec.LookPath(s.cfg.Installer); err != nil {
		return fmt.Errorf("%s not found in PATH: %w", s.cfg.Installer, err)
	}

	args := s.args()
	slog.Info("installing dependencies",
		"installer", s.cfg.Installer, "packages", s.cfg.Packages, "indexURL", s.cfg.IndexURL)

	// Installer output stays visible; the summary only needs the exit status.
	cmd := exec.CommandContext(ctx, s.cfg.Installer, args...)
	cmd.Dir = env.WorkDir
	cmd.Stdout = env.stdout()
	cmd.Stderr = env.stderr()

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s install failed: %w", s.cfg.Installer, err)
	}
	return nil
}

func (s *installStep) args() []string {
	args := append([]string{"install"}, s.cfg.Packages...)
	if s.cfg.IndexURL != "" {
		args = append(args, "-i", s.cfg.IndexURL)
	}
	return args
}
