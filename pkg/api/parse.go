package api

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadManifest reads a wallbuild.yaml file, sets Dir/FilePath, fills in
// defaults for omitted sections, and validates it.
func LoadManifest(filename string) (*Manifest, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading manifest file: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest file: %w", err)
	}

	absPath, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("resolving absolute path: %w", err)
	}
	m.FilePath = absPath
	m.Dir = filepath.Dir(absPath)

	m.applyDefaults()

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("validating manifest %s: %w", filename, err)
	}

	return &m, nil
}

// applyDefaults fills omitted fields with the built-in build configuration so
// a partial manifest only needs to state what differs from it.
func (m *Manifest) applyDefaults() {
	if m.Interpreter.Command == "" {
		m.Interpreter.Command = DefaultInterpreter
	}
	if m.Dependencies.Installer == "" {
		m.Dependencies.Installer = DefaultInstaller
	}
	if len(m.Dependencies.Packages) == 0 {
		m.Dependencies.Packages = append([]string(nil), DefaultPackages...)
	}
	if m.Dependencies.IndexURL == "" {
		m.Dependencies.IndexURL = DefaultIndexURL
	}
	if m.Packaging.Tool == "" {
		m.Packaging.Tool = DefaultTool
	}
	if m.Packaging.Entry == "" {
		m.Packaging.Entry = DefaultEntry
	}
	if m.Packaging.Name == "" {
		m.Packaging.Name = DefaultName
	}
}
