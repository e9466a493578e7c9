package engine

import (
	"fmt"

	"github.com/wyng-health/billaudit/internal/model"
	"github.com/wyng-health/billaudit/internal/normalize"
)

// evalPreventiveMiscoded flags preventive-category codes billed with a known
// nonzero patient responsibility. ACA-mandated preventive care is covered at
// no cost share when delivered in network.
func evalPreventiveMiscoded(in *Input) []model.Detection {
	var dets []model.Detection
	for i, l := range in.Lines {
		if _, ok := in.Tables.PreventiveCodes[l.Code]; !ok {
			continue
		}
		resp, ok := known(l.PatientRespCents)
		if !ok || resp <= 0 {
			continue
		}
		charge, _ := known(l.ChargeCents)
		dets = append(dets, model.Detection{
			Evidence: model.CostShareEvidence{
				LineRefs:         []int{i},
				Code:             l.Code,
				ChargeCents:      charge,
				PatientRespCents: resp,
			},
			Explanation: fmt.Sprintf(
				"Code %s is a preventive service that should carry $0 patient cost share under the ACA preventive-care mandate, but you were billed %s. It may have been miscoded as diagnostic.",
				l.Code, normalize.FormatCents(resp)),
			SuggestedQuestions: []string{
				"Why was this preventive visit billed with patient cost sharing?",
				"Can this claim be recoded and reprocessed as preventive care?",
			},
			PolicyCitations: []string{
				"ACA 2713; 45 CFR 147.130 (preventive services)",
			},
		})
	}
	return dets
}

// evalPatientRespExceedsCharge flags lines where the known patient
// responsibility is larger than the known billed charge.
func evalPatientRespExceedsCharge(in *Input) []model.Detection {
	var dets []model.Detection
	for i, l := range in.Lines {
		charge, chargeOK := known(l.ChargeCents)
		resp, respOK := known(l.PatientRespCents)
		if !chargeOK || !respOK || resp <= charge {
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
				"Your responsibility of %s on this line exceeds the billed charge of %s. Patient cost share should never be more than the charge itself.",
				normalize.FormatCents(resp), normalize.FormatCents(charge)),
			SuggestedQuestions: []string{
				"How can my share of this line exceed what was billed for it?",
			},
		})
	}
	return dets
}

// evalBalanceBillingSuspect flags lines where plan paid plus patient
// responsibility exceeds the payer's allowed amount — the classic signature
// of a provider balance-billing above the adjudicated rate.
func evalBalanceBillingSuspect(in *Input) []model.Detection {
	var dets []model.Detection
	for i, l := range in.Lines {
		allowed, allowedOK := known(l.AllowedCents)
		paid, paidOK := known(l.PlanPaidCents)
		resp, respOK := known(l.PatientRespCents)
		if !allowedOK || !paidOK || !respOK {
			continue
		}
		if paid+resp <= allowed+in.Cfg.BalanceBillingToleranceCents {
			continue
		}
		dets = append(dets, model.Detection{
			Evidence: model.BalanceBillingEvidence{
				LineRefs:         []int{i},
				Code:             l.Code,
				AllowedCents:     allowed,
				PlanPaidCents:    paid,
				PatientRespCents: resp,
			},
			Explanation: fmt.Sprintf(
				"Plan payment (%s) plus your responsibility (%s) exceeds the allowed amount of %s on this line. You may be balance-billed above the adjudicated rate.",
				normalize.FormatCents(paid), normalize.FormatCents(resp), normalize.FormatCents(allowed)),
			SuggestedQuestions: []string{
				"Why am I being asked to pay more than the allowed amount on this service?",
				"Is this provider permitted to balance bill me under my plan and applicable law?",
			},
			PolicyCitations: []string{
				"45 CFR 149.410 (balance billing protections)",
			},
		})
	}
	return dets
}
