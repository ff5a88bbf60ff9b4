package steps

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/smartisanos/wallkit/pkg/api"
)

type packageStep struct {
	cfg *api.PackagingConfig
}

// NewPackageStep creates the packaging step.
func NewPackageStep(cfg *api.PackagingConfig) Step {
	return &packageStep{cfg: cfg}
}

func (s *packageStep) Name() string { return "package" }

func (s *packageStep) Run(ctx context.Context, env Env) error {
	if _, err := exec.LookPath(s.cfg.Tool); err != nil {
		return fmt.Errorf("%s not found in PATH: %w", s.cfg.Tool, err)
	}

	args, err := s.args(env.WorkDir)
	if err != nil {
		return err
	}

	slog.Info("packaging", "tool", s.cfg.Tool, "entry", s.cfg.Entry, "name", s.cfg.Name)
	slog.Debug("packaging arguments", "args", args)

	cmd := exec.CommandContext(ctx, s.cfg.Tool, args...)
	cmd.Dir = env.WorkDir
	cmd.Stdout = env.stdout()
	cmd.Stderr = env.stderr()

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", s.cfg.Tool, err)
	}
	return nil
}

func (s *packageStep) args(workDir string) ([]string, error) {
	var args []string
	if s.cfg.IsOneFile() {
		args = append(args, "--onefile")
	}
	if s.cfg.IsWindowed() {
		args = append(args, "--windowed")
	}

	for _, res := range s.cfg.Data {
		sources, err := expandDataSource(workDir, res.Source)
		if err != nil {
			return nil, err
		}
		dest := res.Dest
		if dest == "" {
			dest = "."
		}
		for _, src := range sources {
			args = append(args, "--add-data", src+dataSeparator()+dest)
		}
	}

	if s.cfg.Icon != "" {
		args = append(args, "--icon", s.cfg.Icon)
	}
	args = append(args, "--name", s.cfg.Name)
	args = append(args, s.cfg.ExtraArgs...)
	args = append(args, s.cfg.Entry)
	return args, nil
}

// expandDataSource resolves a data source pattern against the working
// directory. A pattern with no matches is passed through literally: the
// packaging tool reports missing files itself, presence is not pre-validated.
func expandDataSource(workDir, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(workDir), pattern)
	if err != nil {
		return nil, fmt.Errorf("data glob %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return []string{pattern}, nil
	}
	return matches, nil
}

// dataSeparator is the --add-data source/dest separator, which the packaging
// tool changes per platform.
func dataSeparator() string {
	if runtime.GOOS == "windows" {
		return ";"
	}
	return ":"
}
