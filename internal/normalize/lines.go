package normalize

import (
	"strings"

	"github.com/wyng-health/billaudit/internal/model"
)

// Line returns a canonical copy of a raw priced line. Codes and modifiers are
// cleaned, units default to 1, and the doc type defaults to unknown. Missing
// monetary fields stay nil so rules that need a known amount can skip the
// line instead of misreading an absent value as zero.
func Line(raw model.PricedLine) model.PricedLine {
	l := raw

	l.Code = Code(raw.Code)
	l.CodeSystem = Code(raw.CodeSystem)
	l.Modifiers = Modifiers(raw.Modifiers)
	l.Description = Description(raw.Description)
	l.DateOfService = strings.TrimSpace(raw.DateOfService)
	l.PlaceOfService = Code(raw.PlaceOfService)

	if l.DocType == "" {
		l.DocType = model.DocTypeUnknown
	}
	if raw.Units == nil || *raw.Units <= 0 {
		one := int64(1)
		l.Units = &one
	} else {
		u := *raw.Units
		l.Units = &u
	}

	l.ChargeCents = copyCents(raw.ChargeCents)
	l.AllowedCents = copyCents(raw.AllowedCents)
	l.PlanPaidCents = copyCents(raw.PlanPaidCents)
	l.PatientRespCents = copyCents(raw.PatientRespCents)

	return l
}

// Lines normalizes every line of a summary without reordering, so indices in
// the result still identify the same positions as the caller's input array.
func Lines(raw []model.PricedLine) []model.PricedLine {
	if raw == nil {
		return nil
	}
	out := make([]model.PricedLine, len(raw))
	for i, l := range raw {
		out[i] = Line(l)
	}
	return out
}

func copyCents(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
