package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/point-o/sham/internal/value"
)

// SaveYAML writes a snapshot to path as one YAML document mapping
// variable names to kind-tagged records. Variables with no serialized
// form are skipped; the count of skipped variables is returned so the
// caller can report it.
func SaveYAML(path string, vars map[string]value.Value) (skipped int, err error) {
	doc := make(map[string]record, len(vars))
	for name, v := range vars {
		rec, ok := encode(v)
		if !ok {
			skipped++
			continue
		}
		doc[name] = rec
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return skipped, fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return skipped, fmt.Errorf("writing snapshot: %w", err)
	}
	return skipped, nil
}

// LoadYAML reads back a snapshot written by SaveYAML.
func LoadYAML(path string) (map[string]value.Value, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var doc map[string]record
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}

	vars := make(map[string]value.Value, len(doc))
	for name, rec := range doc {
		v, err := decode(rec)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", name, err)
		}
		vars[name] = v
	}
	return vars, nil
}
