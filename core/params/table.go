// core/params/table.go
// Thermodynamic parameter tables: a flat map from composite key
// (section + subkey, e.g. "neighborAA/TT") to an enthalpy/entropy pair.
//
// Files are YAML (JSON parses too):
//
//	model: san04
//	source: SantaLucia & Hicks (2004)
//	sections:
//	  neighbor:
//	    "AA/TT": {enthalpy: -7600, entropy: -21.3}
//
// Units: enthalpy cal/mol, entropy cal/(K·mol).

package params

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"tmcalc/core/thermo"
)

// Table is read-only after construction.
type Table struct {
	name   string
	values map[string]thermo.Thermodynamics
}

// NewTable copies values into a new table.
func NewTable(name string, values map[string]thermo.Thermodynamics) *Table {
	cp := make(map[string]thermo.Thermodynamics, len(values))
	for k, v := range values {
		cp[k] = v
	}
	return &Table{name: name, values: cp}
}

// Name is the logical file name the table was loaded from.
func (t *Table) Name() string { return t.name }

// Len is the number of keys.
func (t *Table) Len() int { return len(t.values) }

// Get returns the value stored under key.
func (t *Table) Get(key string) (thermo.Thermodynamics, bool) {
	v, ok := t.values[key]
	return v, ok
}

// Keys returns every key, sorted.
func (t *Table) Keys() []string {
	out := make([]string, 0, len(t.values))
	for k := range t.values {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Merge returns a new table holding t and then others; later tables
// override earlier ones key by key.
func (t *Table) Merge(others ...*Table) *Table {
	name := t.name
	values := make(map[string]thermo.Thermodynamics, len(t.values))
	for k, v := range t.values {
		values[k] = v
	}
	for _, o := range others {
		if o == nil {
			continue
		}
		name += "+" + o.name
		for k, v := range o.values {
			values[k] = v
		}
	}
	return &Table{name: name, values: values}
}

type fileFormat struct {
	Model    string                                      `yaml:"model"`
	Source   string                                      `yaml:"source"`
	Sections map[string]map[string]thermo.Thermodynamics `yaml:"sections"`
}

// Decode parses one table file.
func Decode(name string, data []byte) (*Table, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("params: parse %s: %w", name, err)
	}
	if len(f.Sections) == 0 {
		return nil, fmt.Errorf("params: %s has no sections", name)
	}
	values := make(map[string]thermo.Thermodynamics)
	for section, entries := range f.Sections {
		for sub, v := range entries {
			values[section+sub] = v
		}
	}
	return &Table{name: name, values: values}, nil
}
