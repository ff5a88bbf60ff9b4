package api

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the manifest configuration for errors. It expects defaults
// to have been applied already.
func (m *Manifest) Validate() error {
	if m.Interpreter.Command == "" {
		return fmt.Errorf("interpreter.command is required")
	}
	if strings.TrimSpace(m.Interpreter.Command) != m.Interpreter.Command {
		return fmt.Errorf("interpreter.command %q has surrounding whitespace", m.Interpreter.Command)
	}

	if err := m.Dependencies.validate(); err != nil {
		return err
	}
	return m.Packaging.validate()
}

func (d *DependencyConfig) validate() error {
	if d.Installer == "" {
		return fmt.Errorf("dependencies.installer is required")
	}
	for i, pkg := range d.Packages {
		if strings.TrimSpace(pkg) == "" {
			return fmt.Errorf("dependencies.packages[%d] is empty", i)
		}
	}
	if d.IndexURL != "" {
		u, err := url.Parse(d.IndexURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("dependencies.indexURL %q is not a valid URL", d.IndexURL)
		}
	}
	return nil
}

func (p *PackagingConfig) validate() error {
	if p.Tool == "" {
		return fmt.Errorf("packaging.tool is required")
	}
	if p.Entry == "" {
		return fmt.Errorf("packaging.entry is required")
	}
	if p.Name == "" {
		return fmt.Errorf("packaging.name is required")
	}
	for i, d := range p.Data {
		if d.Source == "" {
			return fmt.Errorf("packaging.data[%d]: source is required", i)
		}
	}
	return nil
}
