package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wyng-health/billaudit/internal/model"
	"github.com/wyng-health/billaudit/internal/normalize"
)

// evalDuplicateServiceLines groups lines by exact code, code system, date of
// service, and charge; any group with two or more members is one detection.
// A charge mismatch breaks the match, and lines with an unknown charge are
// skipped rather than fuzzily matched.
func evalDuplicateServiceLines(in *Input) []model.Detection {
	type groupKey struct {
		code, system, dos string
		charge            int64
	}

	groups := make(map[groupKey][]int)
	var order []groupKey
	for i, l := range in.Lines {
		if l.Code == "" {
			continue
		}
		charge, ok := known(l.ChargeCents)
		if !ok {
			continue
		}
		k := groupKey{code: l.Code, system: l.CodeSystem, dos: l.DateOfService, charge: charge}
		if _, exists := groups[k]; !exists {
			order = append(order, k)
		}
		groups[k] = append(groups[k], i)
	}

	var dets []model.Detection
	for _, k := range order {
		refs := groups[k]
		if len(refs) < 2 {
			continue
		}
		dets = append(dets, model.Detection{
			Evidence: model.DuplicateEvidence{
				LineRefs:      refs,
				Code:          k.code,
				CodeSystem:    k.system,
				DateOfService: k.dos,
				ChargeCents:   k.charge,
				Count:         len(refs),
			},
			Explanation: fmt.Sprintf(
				"Code %s was billed %d times for the same date of service at %s each. This looks like a duplicate charge.",
				k.code, len(refs), normalize.FormatCents(k.charge)),
			SuggestedQuestions: []string{
				fmt.Sprintf("Why does code %s appear %d times on this bill for the same date?", k.code, len(refs)),
				"Can you provide documentation that each of these services was performed separately?",
			},
			PolicyCitations: []string{
				"CMS Pub 100-04, Medicare Claims Processing Manual, Ch. 1",
			},
		})
	}
	return dets
}

// evalUnbundlingNCCI fires when a comprehensive code and one of its NCCI
// component codes appear for the same date of service and the component line
// carries no separating modifier.
func evalUnbundlingNCCI(in *Input) []model.Detection {
	var dets []model.Detection
	seen := make(map[string]struct{})

	for i, comp := range in.Lines {
		components, ok := in.Tables.NCCIPairs[comp.Code]
		if !ok {
			continue
		}
		for _, componentCode := range components {
			pairKey := comp.Code + "|" + componentCode + "|" + comp.DateOfService
			if _, done := seen[pairKey]; done {
				continue
			}

			refs := []int{i}
			found := false
			for j, l := range in.Lines {
				if j == i || l.Code != componentCode || l.DateOfService != comp.DateOfService {
					continue
				}
				if hasSeparatingModifier(&l, in) {
					continue
				}
				refs = append(refs, j)
				found = true
			}
			if !found {
				continue
			}
			seen[pairKey] = struct{}{}

			// Also pull in any sibling comprehensive lines so the evidence
			// covers the whole pairing.
			for j, l := range in.Lines {
				if j != i && l.Code == comp.Code && l.DateOfService == comp.DateOfService {
					refs = append(refs, j)
				}
			}
			sort.Ints(refs)

			dets = append(dets, model.Detection{
				Evidence: model.UnbundlingEvidence{
					LineRefs:          refs,
					ComprehensiveCode: comp.Code,
					ComponentCode:     componentCode,
					DateOfService:     comp.DateOfService,
				},
				Explanation: fmt.Sprintf(
					"Code %s is a component of %s under NCCI edits and should not be billed separately without a qualifying modifier (%s).",
					componentCode, comp.Code, strings.Join(separatingModifierList(in), ", ")),
				SuggestedQuestions: []string{
					fmt.Sprintf("Why was %s billed separately from %s when coding guidelines bundle them?", componentCode, comp.Code),
				},
				PolicyCitations: []string{
					"NCCI Policy Manual for Medicare Services",
					"CMS NCCI Procedure-to-Procedure (PTP) edit files",
				},
			})
		}
	}
	return dets
}

func hasSeparatingModifier(l *model.PricedLine, in *Input) bool {
	for _, m := range l.Modifiers {
		if _, ok := in.Tables.SeparatingModifiers[m]; ok {
			return true
		}
	}
	return false
}

func separatingModifierList(in *Input) []string {
	mods := make([]string, 0, len(in.Tables.SeparatingModifiers))
	for m := range in.Tables.SeparatingModifiers {
		mods = append(mods, m)
	}
	sort.Strings(mods)
	return mods
}

// evalModifier26TCConflict flags any single line carrying both the
// professional (26) and technical (TC) component modifiers.
func evalModifier26TCConflict(in *Input) []model.Detection {
	var dets []model.Detection
	for i, l := range in.Lines {
		if !l.HasModifier("26") || !l.HasModifier("TC") {
			continue
		}
		dets = append(dets, model.Detection{
			Evidence: model.ModifierEvidence{
				LineRefs:      []int{i},
				Code:          l.Code,
				Modifiers:     l.Modifiers,
				DateOfService: l.DateOfService,
			},
			Explanation: fmt.Sprintf(
				"Code %s carries both modifier 26 (professional component) and TC (technical component) on one line. These are mutually exclusive; billing both on a single line is contradictory.",
				l.Code),
			SuggestedQuestions: []string{
				"Was this service billed as the professional component, the technical component, or the global service?",
			},
			PolicyCitations: []string{
				"CPT Appendix A, modifiers 26 and TC",
			},
		})
	}
	return dets
}

// evalProfTechDoubleBilling flags the same code billed twice for one date,
// once with modifier 26 and once globally (neither 26 nor TC) — the
// professional component is then charged twice.
func evalProfTechDoubleBilling(in *Input) []model.Detection {
	type groupKey struct{ code, dos string }

	groups := make(map[groupKey][]int)
	var order []groupKey
	for i, l := range in.Lines {
		if l.Code == "" {
			continue
		}
		k := groupKey{code: l.Code, dos: l.DateOfService}
		if _, exists := groups[k]; !exists {
			order = append(order, k)
		}
		groups[k] = append(groups[k], i)
	}

	var dets []model.Detection
	for _, k := range order {
		var withProf, global []int
		for _, i := range groups[k] {
			l := in.Lines[i]
			switch {
			case l.HasModifier("26"):
				withProf = append(withProf, i)
			case !l.HasModifier("TC"):
				global = append(global, i)
			}
		}
		if len(withProf) == 0 || len(global) == 0 {
			continue
		}
		refs := append(append([]int{}, withProf...), global...)
		sort.Ints(refs)

		dets = append(dets, model.Detection{
			Evidence: model.ModifierEvidence{
				LineRefs:      refs,
				Code:          k.code,
				Modifiers:     []string{"26"},
				DateOfService: k.dos,
			},
			Explanation: fmt.Sprintf(
				"Code %s was billed globally and again with modifier 26 for the same date. The global charge already includes the professional component, so it appears to be billed twice.",
				k.code),
			SuggestedQuestions: []string{
				fmt.Sprintf("Why is %s billed both as a global service and separately with modifier 26?", k.code),
			},
			PolicyCitations: []string{
				"CMS Pub 100-04, Ch. 13 (professional/technical component billing)",
			},
		})
	}
	return dets
}
