package steps

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/smartisanos/wallkit/pkg/api"
)

type cleanStep struct {
	cfg *api.PackagingConfig
}

// NewCleanStep creates the step removing packaging leftovers (the build/
// scratch directory and the generated spec file). The bundled output under
// dist/ is kept.
func NewCleanStep(cfg *api.PackagingConfig) Step {
	return &cleanStep{cfg: cfg}
}

func (s *cleanStep) Name() string { return "clean" }

func (s *cleanStep) Run(ctx context.Context, env Env) error {
	leftovers := []string{"build", s.cfg.Name + ".spec"}
	for _, rel := range leftovers {
		p := filepath.Join(env.WorkDir, rel)
		slog.Debug("removing packaging leftover", "path", p)
		if err := os.RemoveAll(p); err != nil {
			slog.Warn("failed to remove packaging leftover", "path", p, "error", err)
		}
	}
	return nil
}
