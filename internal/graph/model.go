package graph

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/grupocolav/UkuPacha/internal/errs"
)

// TableShape describes one table's place within the target document model.
// A table participates in document construction only if it has an entry in
// the Fields descriptor — rows for tables without one are dropped.
type TableShape struct {
	// Alias renames the table's slot in the assembled document.
	// Empty means the table name itself is used.
	Alias string `yaml:"alias,omitempty" json:"alias,omitempty"`

	// Fields optionally maps column names to output aliases.
	// Only consulted by FillAliased; Fill copies rows verbatim.
	Fields map[string]string `yaml:"fields,omitempty" json:"fields,omitempty"`
}

// Fields is the descriptor mapping logical table names to their shapes.
// It is read-only once document construction starts.
type Fields map[string]TableShape

// Has reports whether table is a known participant in the document model.
func (f Fields) Has(table string) bool {
	_, ok := f[table]
	return ok
}

// SlotName returns the document slot a table's data lands in: the shape's
// alias when set, otherwise the table name.
func (f Fields) SlotName(table string) string {
	if shape, ok := f[table]; ok && shape.Alias != "" {
		return shape.Alias
	}
	return table
}

// LoadFields reads a Fields descriptor from a YAML or JSON model file.
// (JSON documents parse as YAML, so both formats go through one decoder.)
func LoadFields(path string) (Fields, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput,
			fmt.Sprintf("cannot read model file %q", path), err)
	}

	var fields Fields
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput,
			fmt.Sprintf("cannot parse model file %q", path), err)
	}
	return fields, nil
}

// LoadModel reads a full nested document template from a YAML or JSON file.
// The template is the skeleton the slot filler populates table by table.
func LoadModel(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput,
			fmt.Sprintf("cannot read model file %q", path), err)
	}

	var model map[string]any
	if err := yaml.Unmarshal(data, &model); err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput,
			fmt.Sprintf("cannot parse model file %q", path), err)
	}
	return normalizeKeys(model).(map[string]any), nil
}

// normalizeKeys rewrites yaml's map[any]any containers into map[string]any
// so templates compose with the rest of the document pipeline.
func normalizeKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeKeys(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalizeKeys(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeKeys(val)
		}
		return out
	default:
		return v
	}
}
