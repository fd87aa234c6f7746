// pkg/api/tm_v1.go
package api

// RequestV1 is the stable JSON schema of one computation request. It is the
// body of POST /v1/tm and the normalized form hashed by the result cache.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type RequestV1 struct {
	Sequence      string  `json:"sequence"`
	Complementary string  `json:"complementary,omitempty"`
	Hybridization string  `json:"hybridization"`
	OligoConc     float64 `json:"oligo_conc"` // mol/L
	// Solution is the composition string, e.g. "Na=0.05:Mg=1.5mM:DMSO=5".
	Solution          string `json:"solution"`
	SelfComplementary bool   `json:"self_complementary,omitempty"`
	Factor            int    `json:"factor,omitempty"`
	Mode              string `json:"mode,omitempty"`
	Threshold         int    `json:"threshold,omitempty"`

	// Methods maps an option (nn, sinMM, ...) to "model" or "model:file".
	Methods         map[string]string `json:"methods,omitempty"`
	Approx          string            `json:"am,omitempty"`
	Ion             string            `json:"ion,omitempty"`
	NaEq            string            `json:"naeq,omitempty"`
	DMSOMethod      string            `json:"dmso_method,omitempty"`
	FormamideMethod string            `json:"formamide_method,omitempty"`

	// Trace asks for the full computation trace in the result.
	Trace bool `json:"trace,omitempty"`
}

// ResultV1 is the stable schema of one computed duplex.
type ResultV1 struct {
	ID                string  `json:"id,omitempty"`
	Sequence          string  `json:"sequence"`
	Complementary     string  `json:"complementary"`
	Hybridization     string  `json:"hybridization"`
	SelfComplementary bool    `json:"self_complementary"`
	Mode              string  `json:"mode"`
	Enthalpy          float64 `json:"enthalpy"` // cal/mol
	Entropy           float64 `json:"entropy"`  // cal/(mol·K)
	Tm                float64 `json:"tm"`       // °C

	Segments    []SegmentV1    `json:"segments,omitempty"`
	Corrections []CorrectionV1 `json:"corrections,omitempty"`
	Warnings    []string       `json:"warnings,omitempty"`
	Trace       []TraceEntryV1 `json:"trace,omitempty"`
}

// SegmentV1 is one motif range, 1-based and inclusive.
type SegmentV1 struct {
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Kind   string `json:"kind"`
	Method string `json:"method"`
}

// CorrectionV1 names one correction that ran.
type CorrectionV1 struct {
	Family string `json:"family"`
	Method string `json:"method"`
}

// TraceEntryV1 is one trace line.
type TraceEntryV1 struct {
	Kind  string         `json:"kind"`
	Text  string         `json:"text"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// MethodsV1 lists the selectable models of every option for one
// hybridization.
type MethodsV1 struct {
	Hybridization string            `json:"hybridization"`
	Options       []OptionMethodsV1 `json:"options"`
}

// OptionMethodsV1 is the catalogue of one option.
type OptionMethodsV1 struct {
	Option  string     `json:"option"`
	Default string     `json:"default,omitempty"`
	Methods []MethodV1 `json:"methods"`
}

// MethodV1 is one selectable model or formula.
type MethodV1 struct {
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
	File  string `json:"file,omitempty"`
}

// ErrorV1 is the body of a failed HTTP request.
type ErrorV1 struct {
	Error   string   `json:"error"`
	Kind    string   `json:"kind"`
	Reasons []string `json:"reasons,omitempty"`
}
