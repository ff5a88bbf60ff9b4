package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/smartisanos/wallkit/pkg/api"
	"github.com/smartisanos/wallkit/pkg/build"
	"github.com/smartisanos/wallkit/pkg/logging"
)

var version = "dev"

const (
	_ = iota
	exitDotenvError
	exitLoadManifestFailed
	exitLoadContextFailed
	exitInterpolateFailed
	exitWorkDirError
	exitEnvironmentError
	exitDependencyError
	exitPackagingError
)

var (
	manifestFile string
	contextFile  string
	loggingType  string
	logLevel     string
	showVersion  bool
)

func init() {
	flag.StringVar(
		&manifestFile,
		"manifest",
		"",
		"wallbuild.yaml to use (default: ./wallbuild.yaml, or built-in configuration if absent)")
	flag.StringVar(
		&contextFile,
		"context-file",
		"",
		"global context YAML file")
	flag.StringVar(
		&loggingType,
		"logging-type",
		"tint",
		"logging type: json, text or tint")
	flag.StringVar(
		&logLevel,
		"log-level",
		"info",
		"logging level: debug, info, warn, error")
	flag.BoolVar(
		&showVersion,
		"version",
		false,
		"print version and exit")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	_ = logging.Initialize(loggingType, logLevel)

	includeEnv()

	manifest := loadManifest()
	globalContext := loadGlobalContext()

	if err := build.Interpolate(manifest, globalContext); err != nil {
		slog.Error("failed to render manifest templates", "error", err)
		os.Exit(exitInterpolateFailed)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := build.NewRunner(manifest).Run(ctx)
	if err != nil {
		reportFailure(manifest, err)
	}

	slog.Info("build succeeded", "output", report.OutputPath)
}

func reportFailure(manifest *api.Manifest, err error) {
	slog.Error("build failed", "error", err)

	switch build.ErrKind(err) {
	case build.KindEnvironment:
		slog.Error("interpreter not available: install it and make sure it is on PATH",
			"interpreter", manifest.Interpreter.Command)
		os.Exit(exitEnvironmentError)
	case build.KindDependency:
		slog.Error("dependency installation failed: packaging was not attempted",
			"installer", manifest.Dependencies.Installer)
		os.Exit(exitDependencyError)
	default:
		os.Exit(exitPackagingError)
	}
}

func loadManifest() *api.Manifest {
	filename := manifestFile

	if filename == "" {
		filename = api.DefaultManifestFilename
		if _, err := os.Stat(filename); os.IsNotExist(err) {
			slog.Info("no wallbuild.yaml found, using built-in configuration")
			wd, wdErr := os.Getwd()
			if wdErr != nil {
				slog.Error("failed to resolve working directory", "error", wdErr)
				os.Exit(exitWorkDirError)
			}
			return api.DefaultManifest(wd)
		}
	}

	m, err := api.LoadManifest(filename)
	if err != nil {
		slog.Error("failed to load manifest", "filename", filename, "error", err)
		os.Exit(exitLoadManifestFailed)
	}
	return m
}

func loadGlobalContext() map[string]any {
	if contextFile == "" {
		return nil
	}

	ctx, err := build.LoadContextFile(contextFile)
	if err != nil {
		slog.Error("failed to load context file", "filename", contextFile, "error", err)
		os.Exit(exitLoadContextFailed)
	}
	return ctx
}

func includeEnv() {
	err := godotenv.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Error("failed to load .env", "error", err)
			os.Exit(exitDotenvError)
		}
		slog.Debug("no .env file found")
	} else {
		slog.Info("using .env file")
	}
}
