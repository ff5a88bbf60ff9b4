package steps

import (
	"context"
	"strings"
	"testing"

	"github.com/smartisanos/wallkit/pkg/api"
)

func TestInterpreterStep_NotOnPath(t *testing.T) {
	step := NewInterpreterStep(&api.InterpreterConfig{Command: "definitely-not-a-real-interpreter"})

	err := step.Run(context.Background(), Env{WorkDir: t.TempDir()})
	if err == nil {
		t.Fatal("expected error for missing interpreter")
	}
	if !strings.Contains(err.Error(), "not found in PATH") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestInterpreterStep_VersionCheckSucceeds(t *testing.T) {
	logFile := makeStubTool(t, "fakepython", 0)

	step := NewInterpreterStep(&api.InterpreterConfig{Command: "fakepython"})
	if err := step.Run(context.Background(), Env{WorkDir: t.TempDir()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	calls := stubInvocations(t, logFile)
	if len(calls) != 1 || calls[0] != "--version" {
		t.Fatalf("expected one --version invocation, got %v", calls)
	}
}

func TestInterpreterStep_VersionCheckFails(t *testing.T) {
	makeStubTool(t, "fakepython", 9)

	step := NewInterpreterStep(&api.InterpreterConfig{Command: "fakepython"})
	err := step.Run(context.Background(), Env{WorkDir: t.TempDir()})
	if err == nil {
		t.Fatal("expected error for failing version check")
	}
	if !strings.Contains(err.Error(), "--version failed") {
		t.Fatalf("unexpected error: %v", err)
	}
}
