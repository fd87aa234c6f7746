// core/method/registry.go
// Registry maps (motif kind, model name) to a Spec. A Resolver instantiates
// the selected Spec of each kind lazily, once per run, loading its tables
// through a params.Loader. Nothing here is shared between runs except the
// immutable default Registry.

package method

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"tmcalc/core/motif"
	"tmcalc/core/params"
	"tmcalc/core/thermo"
	"tmcalc/core/trace"
)

// Spec describes one registered model.
type Spec struct {
	Name  string
	Title string // literature reference
	File  string // default parameter table
	// Aux lists kinds whose selected table is merged under this model's own.
	Aux []motif.Kind
	New func(*params.Table) Strategy
}

// Registry is the catalogue of models per motif kind.
type Registry struct {
	specs map[motif.Kind]map[string]Spec
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{specs: map[motif.Kind]map[string]Spec{}}
}

// Register adds s under kind, replacing any model of the same name.
func (r *Registry) Register(kind motif.Kind, s Spec) {
	if r.specs[kind] == nil {
		r.specs[kind] = map[string]Spec{}
	}
	r.specs[kind][s.Name] = s
}

// Lookup returns the model registered as name for kind.
func (r *Registry) Lookup(kind motif.Kind, name string) (Spec, bool) {
	s, ok := r.specs[kind][name]
	return s, ok
}

// Names lists the models of kind, sorted.
func (r *Registry) Names(kind motif.Kind) []string {
	out := make([]string, 0, len(r.specs[kind]))
	for n := range r.specs[kind] {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Default returns the registry of every built-in model. It is built once
// and must not be modified.
func Default() *Registry { return defaultRegistry() }

var defaultRegistry = sync.OnceValue(func() *Registry {
	r := NewRegistry()
	for kind, specs := range builtins {
		for _, s := range specs {
			r.Register(kind, s)
		}
	}
	return r
})

var builtins = map[motif.Kind][]Spec{
	motif.CrickPair: {
		{Name: "all97", Title: "Allawi and SantaLucia (1997)", File: "AllawiSantalucia1997nn", New: newAllawi97},
		{Name: "bre86", Title: "Breslauer et al. (1986)", File: "Breslauer1986nn", New: newBreslauer86},
		{Name: "fre86", Title: "Freier et al. (1986)", File: "Freier1986nn", New: newFreier86},
		{Name: "san04", Title: "SantaLucia and Hicks (2004)", File: "Santalucia2004nn", New: newSantalucia04},
		{Name: "san96", Title: "SantaLucia et al. (1996)", File: "Santalucia1996nn", New: newSantalucia96},
		{Name: "sug95", Title: "Sugimoto et al. (1995)", File: "Sugimoto1995nn", New: newSugimoto95},
		{Name: "sug96", Title: "Sugimoto et al. (1996)", File: "Sugimoto1996nn", New: newSugimoto96},
		{Name: "tan04", Title: "Tanaka et al. (2004)", File: "Tanaka2004nn", New: newTanaka04},
		{Name: "tur06", Title: "Kierzek et al. (2006)", File: "Turner2006nn", New: newTurner06},
		{Name: "xia98", Title: "Xia et al. (1998)", File: "Xia1998nn", New: newXia98},
	},
	motif.SingleMismatch: {
		{Name: "allsanpey", Title: "Allawi, SantaLucia and Peyret (1997, 1998, 1999)", File: "AllawiSantaluciaPeyret1997_1998_1999mm", New: newAllawiSantaluciaPeyret},
		{Name: "tur06", Title: "Lu, Turner and Mathews (2006)", File: "Turner1999_2006longmm", New: newTurner06Mismatch},
		{Name: "wat11", Title: "Watkins et al. (2011)", File: "Watkins2011mm", New: newWatkins11Mismatch},
		{Name: "zno07", Title: "Davis and Znosko (2007)", File: "Znosko2007mm", New: newZnosko07Mismatch},
		{Name: "zno08", Title: "Davis and Znosko (2008)", File: "Znosko2008mm", New: newZnosko08Mismatch},
	},
	motif.TandemMismatch: {
		{Name: "allsanpey", Title: "Allawi, SantaLucia and Peyret (1997, 1998, 1999)", File: "AllawiSantaluciaPeyret1997_1998_1999tanmm",
			Aux: []motif.Kind{motif.SingleMismatch}, New: newAllawiSantaluciaPeyret},
		{Name: "tur06", Title: "Lu, Turner and Mathews (2006)", File: "Turner1999_2006tanmm", New: newTurner06Tandem},
	},
	motif.Wobble: {
		{Name: "tur99", Title: "Mathews et al. (1999)", File: "Turner1999wobble", New: newTurner99Wobble},
		{Name: "ser12", Title: "Chen, Serra et al. (2012)", File: "Serra2012wobble", New: newSerra12Wobble},
	},
	motif.InternalLoop: {
		{Name: "san04", Title: "SantaLucia and Hicks (2004)", File: "Santalucia2004longmm",
			Aux: []motif.Kind{motif.SingleMismatch}, New: newSantalucia04Loop},
		{Name: "tur06", Title: "Lu, Turner and Mathews (2006)", File: "Turner1999_2006longmm", New: newTurner06Loop},
		{Name: "zno07", Title: "Badhwar and Znosko (2007)", File: "Znosko20071x2loop", New: newZnosko07Loop},
	},
	motif.SingleBulgeLoop: {
		{Name: "san04", Title: "SantaLucia and Hicks (2004)", File: "Santalucia2004longbulge",
			Aux: []motif.Kind{motif.CrickPair}, New: newSantalucia04SingleBulge},
		{Name: "tan04", Title: "Tanaka et al. (2004)", File: "Tanaka2004bulge", New: newTanaka04SingleBulge},
		{Name: "tur06", Title: "Lu, Turner and Mathews (2006)", File: "Turner1999_2006longbulge",
			Aux: []motif.Kind{motif.CrickPair, motif.Wobble}, New: newTurner06SingleBulge},
		{Name: "ser07", Title: "Blose, Serra et al. (2007)", File: "Serra2007bulge", New: newSerra07SingleBulge},
	},
	motif.LongBulgeLoop: {
		{Name: "san04", Title: "SantaLucia and Hicks (2004)", File: "Santalucia2004longbulge", New: newSantalucia04LongBulge},
		{Name: "tur06", Title: "Lu, Turner and Mathews (2006)", File: "Turner1999_2006longbulge", New: newTurner06LongBulge},
	},
	motif.SingleDanglingEnd: {
		{Name: "bom00", Title: "Bommarito et al. (2000)", File: "Bommarito2000de", New: newBommarito00},
		{Name: "ser08", Title: "Serra et al. (2006, 2008)", File: "Serra2006_2008de", New: newSerra08},
		{Name: "sugdna02", Title: "Ohmichi, Sugimoto et al. (2002)", File: "Sugimoto2002longdde", New: newSugimoto02DNA},
		{Name: "sugrna02", Title: "Ohmichi, Sugimoto et al. (2002)", File: "Sugimoto2002longrde", New: newSugimoto02RNA},
	},
	motif.DoubleDanglingEnd: {
		{Name: "ser05", Title: "O'Toole, Serra et al. (2005)", File: "Serra2005doublede",
			Aux: []motif.Kind{motif.SingleDanglingEnd}, New: newSerra05},
		{Name: "ser06", Title: "O'Toole, Serra et al. (2006)", File: "Serra2006doublede",
			Aux: []motif.Kind{motif.SingleDanglingEnd}, New: newSerra06},
		{Name: "sugdna02", Title: "Ohmichi, Sugimoto et al. (2002)", File: "Sugimoto2002longdde", New: newSugimoto02DNA},
		{Name: "sugrna02", Title: "Ohmichi, Sugimoto et al. (2002)", File: "Sugimoto2002longrde", New: newSugimoto02RNA},
	},
	motif.LongDanglingEnd: {
		{Name: "sugdna02", Title: "Ohmichi, Sugimoto et al. (2002)", File: "Sugimoto2002longdde", New: newSugimoto02DNA},
		{Name: "sugrna02", Title: "Ohmichi, Sugimoto et al. (2002)", File: "Sugimoto2002longrde", New: newSugimoto02RNA},
	},
	motif.CNGRepeat: {
		{Name: "bro05", Title: "Broda et al. (2005)", File: "Broda2005CNG", New: newBroda05},
	},
	motif.Inosine: {
		{Name: "san05", Title: "Watkins and SantaLucia (2005)", File: "Santalucia2005inomn", New: newSantalucia05Inosine},
		{Name: "zno07", Title: "Wright, Znosko et al. (2007)", File: "Znosko2007inomn", New: newZnosko07Inosine},
	},
	motif.Azobenzene: {
		{Name: "asa05", Title: "Asanuma et al. (2005)", File: "Asanuma2005azobenmn", New: newAsanuma05},
	},
	motif.LockedNucleicAcid: {
		{Name: "mct04", Title: "McTigue et al. (2004)", File: "McTigue2004lockedmn",
			Aux: []motif.Kind{motif.CrickPair}, New: newMcTigue04},
	},
	motif.Hydroxyadenine: {
		{Name: "sug01", Title: "Kawakami, Sugimoto et al. (2001)", File: "Sugimoto2001hydroxyAmn",
			Aux: []motif.Kind{motif.CrickPair}, New: newSugimoto01},
	},
}

// Selection is the model chosen per kind. A value may carry a table
// override as "name:file".
type Selection map[motif.Kind]string

// choice splits "name:file" into its parts; file is empty when absent.
func choice(v string) (name, file string) {
	name, file, _ = strings.Cut(strings.TrimSpace(v), ":")
	return name, file
}

// Resolver hands out the strategy of each kind for one run.
type Resolver struct {
	reg    *Registry
	loader *params.Loader
	sel    Selection
	trace  *trace.Trace
	cache  map[motif.Kind]Strategy
}

// NewResolver binds the registry to a loader and a selection for one run.
func (r *Registry) NewResolver(loader *params.Loader, sel Selection, tr *trace.Trace) *Resolver {
	return &Resolver{reg: r, loader: loader, sel: sel, trace: tr, cache: map[motif.Kind]Strategy{}}
}

// Selected returns the model name chosen for kind, without any file override.
func (res *Resolver) Selected(kind motif.Kind) string {
	name, _ := choice(res.sel[kind])
	return name
}

// Resolve returns the strategy selected for kind, building it on first use.
func (res *Resolver) Resolve(kind motif.Kind) (Strategy, error) {
	if s, ok := res.cache[kind]; ok {
		return s, nil
	}
	spec, file, err := res.spec(kind)
	if err != nil {
		return nil, err
	}
	table, err := res.loader.Load(file)
	if err != nil {
		return nil, tableError(kind, spec.Name, err)
	}
	var aux []*params.Table
	for _, k := range spec.Aux {
		t, err := res.auxTable(k)
		if err != nil {
			return nil, err
		}
		if t != nil {
			aux = append(aux, t)
		}
	}
	if len(aux) > 0 {
		table = aux[0].Merge(append(aux[1:], table)...)
	}
	s := spec.New(table)
	res.cache[kind] = s
	res.trace.Method(kind.Option(), spec.Name, file)
	return s, nil
}

func (res *Resolver) spec(kind motif.Kind) (Spec, string, error) {
	name, file := choice(res.sel[kind])
	if name == "" {
		return Spec{}, "", &thermo.NoMethodError{Option: kind.Option(), Msg: "no model selected for " + kind.String()}
	}
	spec, ok := res.reg.Lookup(kind, name)
	if !ok {
		return Spec{}, "", &thermo.NoMethodError{
			Option: kind.Option(),
			Method: name,
			Msg:    "unknown model; known: " + strings.Join(res.reg.Names(kind), ", "),
		}
	}
	if file == "" {
		file = spec.File
	}
	return spec, file, nil
}

// auxTable loads the table of the model selected for kind. An unselected
// kind contributes nothing; a table that cannot be found is skipped with a
// warning, so the keys it would have provided show up as missing.
func (res *Resolver) auxTable(kind motif.Kind) (*params.Table, error) {
	if res.Selected(kind) == "" {
		return nil, nil
	}
	spec, file, err := res.spec(kind)
	if err != nil {
		return nil, err
	}
	t, err := res.loader.Load(file)
	if errors.Is(err, params.ErrNotFound) {
		res.trace.Warnf("%s table %s is not available: %v", kind.Option(), file, err)
		return nil, nil
	}
	if err != nil {
		return nil, tableError(kind, spec.Name, err)
	}
	return t, nil
}

func tableError(kind motif.Kind, name string, err error) error {
	if errors.Is(err, params.ErrNotFound) {
		return &thermo.NoMethodError{Option: kind.Option(), Method: name, Msg: err.Error()}
	}
	return fmt.Errorf("%s %s: %w", kind.Option(), name, err)
}
