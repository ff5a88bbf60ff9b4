package build

import (
	"errors"
	"fmt"
)

// Kind classifies a failed build by the step that caused it.
type Kind string

const (
	// KindEnvironment: the interpreter is absent or unusable.
	KindEnvironment Kind = "environment"
	// KindDependency: dependency installation failed. The original build
	// script ignored this outcome and carried on; here it aborts the build
	// with its own kind so the failure is attributable.
	KindDependency Kind = "dependency"
	// KindPackaging: the packaging tool exited non-zero.
	KindPackaging Kind = "packaging"
)

// StepError wraps a step failure with the step name and its error kind.
type StepError struct {
	Step string
	Kind Kind
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %q (%s error): %v", e.Step, e.Kind, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// ErrKind extracts the error kind from a build error, or "" if err is not a
// step failure.
func ErrKind(err error) Kind {
	var se *StepError
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}
