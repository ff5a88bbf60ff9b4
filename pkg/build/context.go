package build

import (
	"bytes"
	"fmt"
	"maps"
	"os"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/smartisanos/wallkit/pkg/api"
	"gopkg.in/yaml.v3"
)

// LoadContextFile reads a YAML file and returns it as a map.
func LoadContextFile(filename string) (map[string]any, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reading context file: %w", err)
	}

	var ctx map[string]any
	if err := yaml.Unmarshal(data, &ctx); err != nil {
		return nil, fmt.Errorf("parsing context file: %w", err)
	}

	if ctx == nil {
		ctx = make(map[string]any)
	}

	return ctx, nil
}

// MergeContext performs a shallow merge of manifest context over global
// context. Manifest keys override global keys at the top level.
func MergeContext(global, local map[string]any) map[string]any {
	merged := make(map[string]any, len(global)+len(local))
	maps.Copy(merged, global)
	maps.Copy(merged, local)
	return merged
}

// Interpolate renders the manifest's string fields as templates against the
// merged context. Fields without template markers pass through untouched.
func Interpolate(m *api.Manifest, globalContext map[string]any) error {
	data := MergeContext(globalContext, m.Context)

	fields := []*string{
		&m.Interpreter.Command,
		&m.Dependencies.Installer,
		&m.Dependencies.IndexURL,
		&m.Packaging.Tool,
		&m.Packaging.Entry,
		&m.Packaging.Name,
		&m.Packaging.Icon,
	}
	for i := range m.Dependencies.Packages {
		fields = append(fields, &m.Dependencies.Packages[i])
	}
	for i := range m.Packaging.Data {
		fields = append(fields, &m.Packaging.Data[i].Source, &m.Packaging.Data[i].Dest)
	}
	for i := range m.Packaging.ExtraArgs {
		fields = append(fields, &m.Packaging.ExtraArgs[i])
	}

	for _, f := range fields {
		rendered, err := renderField(*f, data)
		if err != nil {
			return err
		}
		*f = rendered
	}
	return nil
}

func renderField(s string, data map[string]any) (string, error) {
	if !strings.Contains(s, "{{") {
		return s, nil
	}

	tmpl, err := template.New("field").Funcs(sprig.FuncMap()).Parse(s)
	if err != nil {
		return "", fmt.Errorf("parsing template %q: %w", s, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering template %q: %w", s, err)
	}
	return buf.String(), nil
}
