package engine

import (
	"fmt"
	"sort"

	"github.com/wyng-health/billaudit/internal/model"
	"github.com/wyng-health/billaudit/internal/normalize"
)

// evalFacilityFeeSurprise flags the same code billed twice for one date with
// place-of-service codes in different classes — one facility, one office.
// That pattern usually means a separate facility fee the patient did not
// expect.
func evalFacilityFeeSurprise(in *Input) []model.Detection {
	type groupKey struct{ code, dos string }

	groups := make(map[groupKey][]int)
	var order []groupKey
	for i, l := range in.Lines {
		if l.Code == "" || l.PlaceOfService == "" {
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
		var facility, office []int
		var places []string
		for _, i := range groups[k] {
			pos := in.Lines[i].PlaceOfService
			if _, ok := in.Tables.FacilityPOS[pos]; ok {
				facility = append(facility, i)
				places = append(places, pos)
			}
			if _, ok := in.Tables.OfficePOS[pos]; ok {
				office = append(office, i)
				places = append(places, pos)
			}
		}
		if len(facility) == 0 || len(office) == 0 {
			continue
		}
		refs := append(append([]int{}, facility...), office...)
		sort.Ints(refs)

		dets = append(dets, model.Detection{
			Evidence: model.SiteOfServiceEvidence{
				LineRefs:      refs,
				Code:          k.code,
				DateOfService: k.dos,
				Places:        uniqueSortedStrings(places),
			},
			Explanation: fmt.Sprintf(
				"Code %s appears twice for the same date under different places of service, once in an office setting and once in a facility setting. The facility-side line is often an unexpected facility fee.",
				k.code),
			SuggestedQuestions: []string{
				"Was I told in advance that this visit would include a separate facility fee?",
				"Which of these two charges covers the actual service I received?",
			},
			PolicyCitations: []string{
				"CMS Place of Service code set",
			},
		})
	}
	return dets
}

// evalNSAEmergencyProtection flags emergency place-of-service lines where the
// patient's cost share exceeds the configured fraction of the billed charge.
// Both amounts must be known; the No Surprises Act limits emergency cost
// share to in-network levels regardless of the provider's network status.
func evalNSAEmergencyProtection(in *Input) []model.Detection {
	var dets []model.Detection
	for i, l := range in.Lines {
		if _, ok := in.Tables.EmergencyPOS[l.PlaceOfService]; !ok {
			continue
		}
		charge, chargeOK := known(l.ChargeCents)
		resp, respOK := known(l.PatientRespCents)
		if !chargeOK || !respOK || charge <= 0 {
			continue
		}
		if float64(resp) <= in.Cfg.NSAEmergencyCostShareFraction*float64(charge) {
			continue
		}
		dets = append(dets, model.Detection{
			Evidence: model.CostShareEvidence{
				LineRefs:         []int{i},
				Code:             l.Code,
				ChargeCents:      charge,
				PatientRespCents: resp,
			},
			Explanation: fmt.Sprintf(
				"An emergency service line charges you %s of a %s billed amount. The No Surprises Act limits emergency cost sharing to in-network levels, so a share this large deserves scrutiny.",
				normalize.FormatCents(resp), normalize.FormatCents(charge)),
			SuggestedQuestions: []string{
				"Was this emergency claim processed at my in-network cost-sharing level as the No Surprises Act requires?",
				"Can you reprocess this claim under the federal surprise-billing protections?",
			},
			PolicyCitations: []string{
				"No Surprises Act, Pub. L. 116-260, Div. BB",
				"45 CFR 149.110 (emergency services cost-sharing)",
			},
		})
	}
	return dets
}
