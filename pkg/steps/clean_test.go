package steps

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartisanos/wallkit/pkg/api"
)

func TestCleanStep_RemovesLeftovers(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "build", "App"), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "dist"), 0o750); err != nil {
		t.Fatal(err)
	}
	writeTestFile(t, dir, "App.spec", "# generated")
	writeTestFile(t, filepath.Join(dir, "dist"), "App", "binary")

	step := NewCleanStep(&api.PackagingConfig{Name: "App"})
	if err := step.Run(context.Background(), Env{WorkDir: dir}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "build")); !os.IsNotExist(err) {
		t.Error("build directory should be removed")
	}
	if _, err := os.Stat(filepath.Join(dir, "App.spec")); !os.IsNotExist(err) {
		t.Error("spec file should be removed")
	}
	if _, err := os.Stat(filepath.Join(dir, "dist", "App")); err != nil {
		t.Errorf("dist output must be kept: %v", err)
	}
}

func TestCleanStep_NothingToRemove(t *testing.T) {
	step := NewCleanStep(&api.PackagingConfig{Name: "App"})
	if err := step.Run(context.Background(), Env{WorkDir: t.TempDir()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
