package build

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"time"

	"github.com/smartisanos/wallkit/pkg/api"
	"github.com/smartisanos/wallkit/pkg/steps"
)

// StepReport records one completed step.
type StepReport struct {
	Name     string
	Duration time.Duration
}

// Report summarizes a build run. Steps holds the steps that completed;
// OutputPath is where the packaging tool leaves the executable.
type Report struct {
	Steps      []StepReport
	OutputPath string
}

// Runner executes a manifest's build steps sequentially. A step failure stops
// the run; the returned error is a *StepError carrying the step's kind.
type Runner struct {
	Manifest *api.Manifest
	Env      steps.Env
}

// NewRunner creates a Runner working in the manifest's directory.
func NewRunner(m *api.Manifest) *Runner {
	return &Runner{
		Manifest: m,
		Env:      steps.Env{WorkDir: m.Dir},
	}
}

type plannedStep struct {
	step steps.Step
	kind Kind
}

func (r *Runner) plan() []plannedStep {
	m := r.Manifest
	plan := []plannedStep{
		{steps.NewInterpreterStep(&m.Interpreter), KindEnvironment},
		{steps.NewInstallStep(&m.Dependencies), KindDependency},
		{steps.NewPackageStep(&m.Packaging), KindPackaging},
	}
	if m.Packaging.Clean {
		plan = append(plan, plannedStep{steps.NewCleanStep(&m.Packaging), KindPackaging})
	}
	return plan
}

// Run executes the build. The report covers completed steps even when a later
// step fails.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	report := &Report{OutputPath: OutputPath(r.Manifest)}

	for _, p := range r.plan() {
		slog.Info("running step", "step", p.step.Name())
		start := time.Now()

		if err := p.step.Run(ctx, r.Env); err != nil {
			return report, &StepError{Step: p.step.Name(), Kind: p.kind, Err: err}
		}

		elapsed := time.Since(start)
		slog.Info("step succeeded", "step", p.step.Name(), "duration", elapsed)
		report.Steps = append(report.Steps, StepReport{Name: p.step.Name(), Duration: elapsed})
	}

	return report, nil
}

// OutputPath returns where the packaging tool places the bundled executable:
// dist/<name> under the manifest directory, with .exe appended on windows.
func OutputPath(m *api.Manifest) string {
	name := m.Packaging.Name
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	return filepath.Join(m.Dir, "dist", name)
}
