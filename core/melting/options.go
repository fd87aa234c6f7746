// core/melting/options.go
// Options is the fully resolved input of one computation. The outer layers
// (CLI flags, config file, HTTP request) all end up here; the core never
// parses strings beyond the sequences themselves.

package melting

import (
	"errors"
	"fmt"
	"strings"

	"tmcalc/core/correction"
	"tmcalc/core/duplex"
	"tmcalc/core/method"
	"tmcalc/core/motif"
)

// Mode chooses between the nearest-neighbor model and the approximative
// formulas.
type Mode string

const (
	ModeDefault Mode = "def" // by length against Threshold
	ModeNN      Mode = "NN"
	ModeApprox  Mode = "A"
)

// ParseMode accepts def, NN and A, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "def", "":
		return ModeDefault, nil
	case "nn":
		return ModeNN, nil
	case "a":
		return ModeApprox, nil
	}
	return "", &OptionError{Option: "mode", Msg: fmt.Sprintf("%q is not one of def, NN, A", s)}
}

// ErrInvalidOption matches every *OptionError.
var ErrInvalidOption = errors.New("invalid option")

// OptionError reports an option value the computation cannot start with.
type OptionError struct {
	Option string
	Msg    string
}

func (e *OptionError) Error() string        { return "option --" + e.Option + ": " + e.Msg }
func (e *OptionError) Is(target error) bool { return target == ErrInvalidOption }

// Options is the input of Compute.
type Options struct {
	Sequence      string // top strand, 5'→3'
	Complementary string // bottom strand, 3'→5'; inferred when empty
	Hybridization duplex.Hybridization
	OligoConc     float64 // mol/L
	Solution      correction.Solution

	// SelfComplementary forces the self-complementary treatment.
	SelfComplementary bool
	// Factor is the F of ln(CT/F); 0 picks 1 for self-complementary
	// duplexes and 4 otherwise.
	Factor    int
	Mode      Mode
	Threshold int

	Methods     method.Selection
	Approx      string
	Corrections correction.Pipeline

	// DataDir is searched for parameter tables before the embedded ones.
	DataDir string
}

// DefaultThreshold is the duplex length above which def mode switches to
// the approximative formulas.
const DefaultThreshold = 60

type defaults struct {
	methods map[motif.Kind]string
	approx  string
}

var (
	dnaDefaults = defaults{
		methods: map[motif.Kind]string{
			motif.CrickPair:         "all97",
			motif.SingleMismatch:    "allsanpey",
			motif.TandemMismatch:    "allsanpey",
			motif.InternalLoop:      "san04",
			motif.SingleBulgeLoop:   "tan04",
			motif.LongBulgeLoop:     "san04",
			motif.SingleDanglingEnd: "bom00",
			motif.DoubleDanglingEnd: "sugdna02",
			motif.LongDanglingEnd:   "sugdna02",
			motif.Inosine:           "san05",
			motif.Hydroxyadenine:    "sug01",
			motif.Azobenzene:        "asa05",
			motif.LockedNucleicAcid: "mct04",
		},
		approx: "wetdna91",
	}
	rnaDefaults = defaults{
		methods: map[motif.Kind]string{
			motif.CrickPair:         "xia98",
			motif.SingleMismatch:    "zno07",
			motif.TandemMismatch:    "tur06",
			motif.InternalLoop:      "tur06",
			motif.SingleBulgeLoop:   "tur06",
			motif.LongBulgeLoop:     "tur06",
			motif.SingleDanglingEnd: "ser08",
			motif.DoubleDanglingEnd: "ser06",
			motif.LongDanglingEnd:   "sugrna02",
			motif.Wobble:            "ser12",
			motif.CNGRepeat:         "bro05",
			motif.Inosine:           "zno07",
		},
		approx: "wetrna91",
	}
	hybridDefaults = defaults{
		methods: map[motif.Kind]string{
			motif.CrickPair:      "sug95",
			motif.SingleMismatch: "wat11",
		},
		approx: "wetdnarna91",
	}
	modifiedRNADefaults = defaults{
		methods: map[motif.Kind]string{
			motif.CrickPair: "tur06",
		},
	}
)

func defaultsFor(h duplex.Hybridization) defaults {
	switch {
	case h == duplex.RNARNA:
		return rnaDefaults
	case h.IsHybrid():
		return hybridDefaults
	case h.IsModifiedRNA():
		return modifiedRNADefaults
	}
	return dnaDefaults
}

// DefaultOptions returns the customary options for h: the
// per-hybridization model set, automatic ion correction, factor chosen by
// self-complementarity, def mode and a threshold of 60.
func DefaultOptions(h duplex.Hybridization) Options {
	d := defaultsFor(h)
	sel := method.Selection{}
	for k, v := range d.methods {
		sel[k] = v
	}
	return Options{
		Hybridization: h,
		Mode:          ModeDefault,
		Threshold:     DefaultThreshold,
		Methods:       sel,
		Approx:        d.approx,
		Corrections:   correction.DefaultPipeline(),
	}
}

// DefaultMethod is the model DefaultOptions selects for kind, or "".
func DefaultMethod(h duplex.Hybridization, kind motif.Kind) string {
	return defaultsFor(h).methods[kind]
}

// DefaultApprox is the approximative formula DefaultOptions selects, or "".
func DefaultApprox(h duplex.Hybridization) string { return defaultsFor(h).approx }

// Validate checks the options that do not need the duplex.
func (o *Options) Validate() error {
	if strings.TrimSpace(o.Sequence) == "" {
		return &OptionError{Option: "sequence", Msg: "required"}
	}
	if _, err := duplex.ParseHybridization(string(o.Hybridization)); err != nil {
		return &OptionError{Option: "hybridization", Msg: err.Error()}
	}
	if o.OligoConc <= 0 {
		return &OptionError{Option: "oligo-conc", Msg: "must be > 0"}
	}
	if !o.Solution.HasIons() {
		return &OptionError{Option: "solution", Msg: "at least one of Na, Mg, K or Tris must be > 0"}
	}
	sol := o.Solution
	for _, v := range []float64{sol.Na, sol.K, sol.Mg, sol.Tris, sol.DNTP, sol.DMSO, sol.Formamide} {
		if v < 0 {
			return &OptionError{Option: "solution", Msg: "concentrations must not be negative"}
		}
	}
	switch o.Factor {
	case 0, 1, 4:
	default:
		return &OptionError{Option: "factor", Msg: fmt.Sprintf("%d is not 1 or 4", o.Factor)}
	}
	if _, err := ParseMode(string(o.Mode)); err != nil {
		return err
	}
	if o.Threshold <= 0 {
		return &OptionError{Option: "threshold", Msg: "must be > 0"}
	}
	return nil
}
