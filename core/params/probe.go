package params

import "tmcalc/core/thermo"

// Value is the stored thermodynamic pair.
type Value = thermo.Thermodynamics

// Probe runs a model's lookups against a table and records every required
// key that is absent. A model evaluates once through a Probe; the same pass
// serves the missing-parameter check and the computation, so a missing key
// can never silently count as zero.
type Probe struct {
	t       *Table
	missing []string
	seen    map[string]bool
	err     error
}

// Probe starts a lookup pass over t.
func (t *Table) Probe() *Probe {
	return &Probe{t: t, seen: map[string]bool{}}
}

// Table is the probed table.
func (p *Probe) Table() *Table { return p.t }

// Need returns the value under k, or records k as missing and returns zero.
func (p *Probe) Need(k Key) Value {
	v, ok := p.t.Lookup(k)
	if !ok {
		p.miss(k.primary)
	}
	return v
}

// Opt returns the value under k without recording a miss.
func (p *Probe) Opt(k Key) (Value, bool) { return p.t.Lookup(k) }

// NeedKey is Need for keys built by a function that can fail.
func (p *Probe) NeedKey(k Key, err error) Value {
	if err != nil {
		p.Fail(err)
		return Value{}
	}
	return p.Need(k)
}

// Fail records an error other than a missing key; the first one wins.
func (p *Probe) Fail(err error) {
	if p.err == nil && err != nil {
		p.err = err
	}
}

// Missing lists the absent keys in lookup order, without duplicates.
func (p *Probe) Missing() []string {
	out := make([]string, len(p.missing))
	copy(out, p.missing)
	return out
}

// Err returns the first recorded failure; missing keys come back as a
// *thermo.MissingParameterError attributed to model.
func (p *Probe) Err(model string) error {
	if p.err != nil {
		return p.err
	}
	if len(p.missing) > 0 {
		return &thermo.MissingParameterError{Model: model, Keys: p.Missing()}
	}
	return nil
}

func (p *Probe) miss(key string) {
	if p.seen[key] {
		return
	}
	p.seen[key] = true
	p.missing = append(p.missing, key)
}
