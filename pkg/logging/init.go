package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

const (
	JSON = "json"
	Text = "text"
	Tint = "tint"
)

// Initialize installs the process-wide slog handler writing to stderr, so
// step subprocess output on stdout stays separable from the build log.
func Initialize(loggingType string, logLevelName string) error {
	handler, err := NewHandler(os.Stderr, loggingType, logLevelName)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("logging initialized", "type", loggingType, "level", logLevelName)
	return nil
}

// NewHandler builds a slog handler of the given type writing to w.
func NewHandler(w io.Writer, loggingType string, logLevelName string) (slog.Handler, error) {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(logLevelName)); err != nil {
		return nil, fmt.Errorf("could not parse log level: %v", err)
	}

	opts := slog.HandlerOptions{Level: logLevel}

	switch loggingType {
	case JSON:
		return slog.NewJSONHandler(w, &opts), nil
	case Text:
		return slog.NewTextHandler(w, &opts), nil
	case Tint:
		return tint.NewHandler(w, &tint.Options{Level: opts.Level}), nil
	default:
		return nil, fmt.Errorf("unknown logging type: %s", loggingType)
	}
}
