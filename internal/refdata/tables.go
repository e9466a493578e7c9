// Package refdata holds the static coding reference tables the rule catalog
// evaluates against. Tables are embedded at build time, parsed once, and
// shared read-only across concurrent scans.
package refdata

import (
	_ "embed"
	"sync"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var rawTables []byte

// Tables is the parsed, indexed form of the embedded reference data.
type Tables struct {
	// NCCIPairs maps a comprehensive code to its disallowed component codes.
	NCCIPairs map[string][]string

	// SeparatingModifiers are the modifiers that unbundle an NCCI component.
	SeparatingModifiers map[string]struct{}

	// DrugUnitCeilings maps an HCPCS drug code to its max plausible units.
	DrugUnitCeilings map[string]int64

	TimedTherapyCodes   map[string]struct{}
	PreventiveCodes     map[string]struct{}
	EMVisitCodes        map[string]struct{}
	MinorProcedureCodes map[string]struct{}

	FacilityPOS  map[string]struct{}
	OfficePOS    map[string]struct{}
	EmergencyPOS map[string]struct{}
}

type rawFile struct {
	NCCIPairs           map[string][]string `yaml:"ncci_pairs"`
	SeparatingModifiers []string            `yaml:"separating_modifiers"`
	DrugUnitCeilings    map[string]int64    `yaml:"drug_unit_ceilings"`
	TimedTherapyCodes   []string            `yaml:"timed_therapy_codes"`
	PreventiveCodes     []string            `yaml:"preventive_codes"`
	EMVisitCodes        []string            `yaml:"em_visit_codes"`
	MinorProcedureCodes []string            `yaml:"minor_procedure_codes"`
	FacilityPOS         []string            `yaml:"facility_pos"`
	OfficePOS           []string            `yaml:"office_pos"`
	EmergencyPOS        []string            `yaml:"emergency_pos"`
}

// Load parses the embedded tables. Callers normally use Default instead.
func Load() (*Tables, error) {
	var raw rawFile
	if err := yaml.Unmarshal(rawTables, &raw); err != nil {
		return nil, eris.Wrap(err, "refdata: parse tables")
	}

	t := &Tables{
		NCCIPairs:           raw.NCCIPairs,
		DrugUnitCeilings:    raw.DrugUnitCeilings,
		SeparatingModifiers: toSet(raw.SeparatingModifiers),
		TimedTherapyCodes:   toSet(raw.TimedTherapyCodes),
		PreventiveCodes:     toSet(raw.PreventiveCodes),
		EMVisitCodes:        toSet(raw.EMVisitCodes),
		MinorProcedureCodes: toSet(raw.MinorProcedureCodes),
		FacilityPOS:         toSet(raw.FacilityPOS),
		OfficePOS:           toSet(raw.OfficePOS),
		EmergencyPOS:        toSet(raw.EmergencyPOS),
	}

	if len(t.NCCIPairs) == 0 {
		return nil, eris.New("refdata: empty NCCI pair table")
	}
	if len(t.SeparatingModifiers) == 0 {
		return nil, eris.New("refdata: empty separating modifier list")
	}
	return t, nil
}

var (
	defaultOnce   sync.Once
	defaultTables *Tables
	defaultErr    error
)

// Default returns the process-wide shared tables, loading them on first use.
func Default() (*Tables, error) {
	defaultOnce.Do(func() {
		defaultTables, defaultErr = Load()
	})
	return defaultTables, defaultErr
}

func toSet(vals []string) map[string]struct{} {
	s := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		s[v] = struct{}{}
	}
	return s
}
