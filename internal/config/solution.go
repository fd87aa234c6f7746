// internal/config/solution.go
package config

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"tmcalc/core/correction"
)

// Concentration is a value in mol/L (ions, oligomers) or in % (DMSO,
// formamide) that may be written with a unit.
type Concentration float64

// ParseConc parses "0.05", "50mM", "250nM", "3uM" or "5%".
// A bare number is taken as is.
func ParseConc(s string) (float64, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	i := len(s)
	for i > 0 && !isNumberByte(s[i-1]) {
		i--
	}
	num, unit := s[:i], strings.TrimSpace(s[i:])
	val, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid concentration %q", s)
	}
	switch unit {
	case "", "m", "%":
		return val, nil
	case "mm":
		return val * 1e-3, nil
	case "um", "μm":
		return val * 1e-6, nil
	case "nm":
		return val * 1e-9, nil
	}
	return 0, fmt.Errorf("unknown unit %q in %q", unit, s)
}

func isNumberByte(c byte) bool {
	return c >= '0' && c <= '9' || c == '.'
}

// Solution is the solution composition as written in a config file or on
// the command line.
type Solution struct {
	Na        Concentration `mapstructure:"Na"`
	K         Concentration `mapstructure:"K"`
	Mg        Concentration `mapstructure:"Mg"`
	Tris      Concentration `mapstructure:"Tris"`
	DNTP      Concentration `mapstructure:"dNTP"`
	DMSO      Concentration `mapstructure:"DMSO"`
	Formamide Concentration `mapstructure:"formamide"`
}

// Correction converts s to the core type.
func (s Solution) Correction() correction.Solution {
	return correction.Solution{
		Na:        float64(s.Na),
		K:         float64(s.K),
		Mg:        float64(s.Mg),
		Tris:      float64(s.Tris),
		DNTP:      float64(s.DNTP),
		DMSO:      float64(s.DMSO),
		Formamide: float64(s.Formamide),
	}
}

// String renders s in the colon-separated form with components in a fixed order and
// zero components left out. ParseSolution(s.String()) == s.
func (s Solution) String() string {
	parts := []struct {
		key string
		v   Concentration
	}{
		{"Na", s.Na}, {"K", s.K}, {"Mg", s.Mg}, {"Tris", s.Tris},
		{"dNTP", s.DNTP}, {"DMSO", s.DMSO}, {"formamide", s.Formamide},
	}
	var out []string
	for _, p := range parts {
		if p.v != 0 {
			out = append(out, p.key+"="+strconv.FormatFloat(float64(p.v), 'g', -1, 64))
		}
	}
	return strings.Join(out, ":")
}

var solutionKeys = []string{"Na", "K", "Mg", "Tris", "dNTP", "DMSO", "formamide"}

// ParseSolution parses the composition string
// "Na=0.05:Mg=1.5mM:DMSO=5". Component names are case-insensitive, and ","
// separates components as well as ":".
func ParseSolution(s string) (Solution, error) {
	raw := map[string]string{}
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ':' || r == ',' })
	for _, f := range fields {
		k, v, ok := strings.Cut(f, "=")
		if !ok {
			return Solution{}, fmt.Errorf("solution component %q is not NAME=VALUE", f)
		}
		k = strings.TrimSpace(k)
		known := false
		for _, name := range solutionKeys {
			if strings.EqualFold(k, name) {
				k, known = name, true
				break
			}
		}
		if !known {
			sorted := append([]string(nil), solutionKeys...)
			sort.Strings(sorted)
			return Solution{}, fmt.Errorf("unknown solution component %q; allowed: %s", k, strings.Join(sorted, ", "))
		}
		if _, dup := raw[k]; dup {
			return Solution{}, fmt.Errorf("solution component %s given twice", k)
		}
		raw[k] = v
	}
	var out Solution
	if err := decode(raw, &out); err != nil {
		return Solution{}, err
	}
	return out, nil
}

// decodeHook turns strings into Concentration (with units) and Solution
// (composition string) values, on top of mapstructure's duration hook.
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		concentrationHook,
		solutionHook,
		mapstructure.StringToTimeDurationHookFunc(),
	)
}

func concentrationHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(Concentration(0)) {
		return data, nil
	}
	if strings.TrimSpace(data.(string)) == "" {
		return Concentration(0), nil
	}
	v, err := ParseConc(data.(string))
	if err != nil {
		return nil, err
	}
	return Concentration(v), nil
}

func solutionHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(Solution{}) {
		return data, nil
	}
	if strings.TrimSpace(data.(string)) == "" {
		return Solution{}, nil
	}
	return ParseSolution(data.(string))
}

func decode(input, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       decodeHook(),
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}
