package api

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadManifest_Valid(t *testing.T) {
	content := `
context:
  product: wallpapers
interpreter:
  command: python3
dependencies:
  packages: [requests, pyinstaller]
  indexURL: https://pypi.org/simple
packaging:
  entry: wallpaper_downloader.py
  name: Wallpaper_Downloader
  icon: hyw.ico
  data:
    - source: hyw.ico
      dest: "."
  clean: true
`
	dir := t.TempDir()
	f := filepath.Join(dir, DefaultManifestFilename)
	if err := os.WriteFile(f, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	m, err := LoadManifest(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Interpreter.Command != "python3" {
		t.Errorf("expected interpreter python3, got %q", m.Interpreter.Command)
	}
	if m.Dir != dir {
		t.Errorf("expected Dir=%q, got %q", dir, m.Dir)
	}
	if m.Context["product"] != "wallpapers" {
		t.Errorf("expected product=wallpapers, got %v", m.Context["product"])
	}
	if len(m.Packaging.Data) != 1 || m.Packaging.Data[0].Source != "hyw.ico" {
		t.Errorf("unexpected data resources: %+v", m.Packaging.Data)
	}
}

func TestLoadManifest_DefaultsFillOmittedSections(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, DefaultManifestFilename)
	if err := os.WriteFile(f, []byte("context: {}\n"), 0600); err != nil {
		t.Fatal(err)
	}

	m, err := LoadManifest(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if m.Interpreter.Command != DefaultInterpreter {
		t.Errorf("expected default interpreter, got %q", m.Interpreter.Command)
	}
	if m.Dependencies.Installer != DefaultInstaller {
		t.Errorf("expected default installer, got %q", m.Dependencies.Installer)
	}
	if len(m.Dependencies.Packages) != len(DefaultPackages) {
		t.Errorf("expected default packages, got %v", m.Dependencies.Packages)
	}
	if m.Dependencies.IndexURL != DefaultIndexURL {
		t.Errorf("expected default index URL, got %q", m.Dependencies.IndexURL)
	}
	if m.Packaging.Name != DefaultName {
		t.Errorf("expected default name, got %q", m.Packaging.Name)
	}
	if !m.Packaging.IsOneFile() || !m.Packaging.IsWindowed() {
		t.Error("onefile and windowed should default to true")
	}
}

func TestLoadManifest_ExplicitFalseFlags(t *testing.T) {
	content := `
packaging:
  onefile: false
  windowed: false
`
	dir := t.TempDir()
	f := filepath.Join(dir, DefaultManifestFilename)
	if err := os.WriteFile(f, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	m, err := LoadManifest(f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Packaging.IsOneFile() {
		t.Error("onefile: false should disable single-file output")
	}
	if m.Packaging.IsWindowed() {
		t.Error("windowed: false should disable windowed mode")
	}
}

func TestLoadManifest_FileNotFound(t *testing.T) {
	_, err := LoadManifest("/nonexistent/wallbuild.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "reading manifest file") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadManifest_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, DefaultManifestFilename)
	if err := os.WriteFile(f, []byte("{{invalid"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadManifest(f)
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "parsing manifest file") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadManifest_ValidationFails(t *testing.T) {
	content := `
dependencies:
  indexURL: "::not a url"
`
	dir := t.TempDir()
	f := filepath.Join(dir, DefaultManifestFilename)
	if err := os.WriteFile(f, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadManifest(f)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "validating manifest") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDefaultManifest(t *testing.T) {
	m := DefaultManifest("/tmp/work")

	if err := m.Validate(); err != nil {
		t.Fatalf("default manifest should validate: %v", err)
	}
	if m.Dir != "/tmp/work" {
		t.Errorf("expected Dir=/tmp/work, got %q", m.Dir)
	}
	if m.Packaging.Entry != "wallpaper_downloader.py" {
		t.Errorf("unexpected entry: %q", m.Packaging.Entry)
	}
	if m.Packaging.Name != "SmartisanOS_Wallpaper_Downloader" {
		t.Errorf("unexpected name: %q", m.Packaging.Name)
	}
	if !m.Packaging.Clean {
		t.Error("default manifest should clean packaging leftovers")
	}
}
