package engine

import (
	"fmt"
	"strings"

	"github.com/wyng-health/billaudit/internal/model"
	"github.com/wyng-health/billaudit/internal/normalize"
)

// evalMathErrorBilledTotal reconciles the sum of line charges against the
// reported billed total. The rule only runs when every line charge is known;
// otherwise a missing datum would masquerade as a math error.
func evalMathErrorBilledTotal(in *Input) []model.Detection {
	if len(in.Lines) == 0 {
		return nil
	}
	var calculated int64
	for _, l := range in.Lines {
		charge, ok := known(l.ChargeCents)
		if !ok {
			return nil
		}
		calculated += charge
	}

	reported := in.Summary.Totals.BilledCents
	if absInt64(calculated-reported) <= in.Cfg.MathToleranceCents {
		return nil
	}

	return []model.Detection{{
		Evidence: model.MathEvidence{
			LineRefs:   allLineRefs(len(in.Lines)),
			Field:      "billed",
			Calculated: calculated,
			Reported:   reported,
		},
		Explanation: fmt.Sprintf(
			"The line items add up to %s, but the bill reports a total of %s. The totals do not reconcile.",
			normalize.FormatCents(calculated), normalize.FormatCents(reported)),
		SuggestedQuestions: []string{
			"Can you provide a corrected bill whose line items add up to the stated total?",
		},
	}}
}

// evalMathErrorPatientTotal reconciles per-line patient responsibility
// against the reported patient total. A reported total of zero is treated as
// "not stated" rather than reconciled, since many bills omit it.
func evalMathErrorPatientTotal(in *Input) []model.Detection {
	if len(in.Lines) == 0 {
		return nil
	}
	reported := in.Summary.Totals.PatientRespCents
	if reported == 0 {
		return nil
	}

	var calculated int64
	for _, l := range in.Lines {
		resp, ok := known(l.PatientRespCents)
		if !ok {
			return nil
		}
		calculated += resp
	}
	if absInt64(calculated-reported) <= in.Cfg.MathToleranceCents {
		return nil
	}

	return []model.Detection{{
		Evidence: model.MathEvidence{
			LineRefs:   allLineRefs(len(in.Lines)),
			Field:      "patient_resp",
			Calculated: calculated,
			Reported:   reported,
		},
		Explanation: fmt.Sprintf(
			"Per-line patient responsibility adds up to %s, but the document reports %s as your total. The amounts do not reconcile.",
			normalize.FormatCents(calculated), normalize.FormatCents(reported)),
		SuggestedQuestions: []string{
			"Which amount is correct: the per-line patient responsibility or the stated total?",
		},
	}}
}

// evalNonProviderAdminFee matches line descriptions against the configured
// administrative-fee keyword list, case-insensitively. One detection covers
// all matching lines.
func evalNonProviderAdminFee(in *Input) []model.Detection {
	var refs []int
	var descriptions []string
	for i, l := range in.Lines {
		lower := strings.ToLower(l.Description)
		for _, kw := range in.Cfg.AdminFeeKeywords {
			if kw == "" {
				continue
			}
			if strings.Contains(lower, strings.ToLower(kw)) {
				refs = append(refs, i)
				descriptions = append(descriptions, l.Description)
				break
			}
		}
	}
	if len(refs) == 0 {
		return nil
	}

	return []model.Detection{{
		Evidence: model.KeywordEvidence{
			LineRefs:     refs,
			Descriptions: descriptions,
		},
		Explanation: fmt.Sprintf(
			"This bill includes administrative charges that are not medical services (%s). These fees are frequently waivable on request.",
			strings.Join(descriptions, "; ")),
		SuggestedQuestions: []string{
			"Can these administrative fees be removed from my bill?",
		},
	}}
}

// evalAllowedExceedsCharge flags lines where the payer's allowed amount is
// larger than the billed charge, which usually indicates a data or
// adjudication anomaly worth double-checking.
func evalAllowedExceedsCharge(in *Input) []model.Detection {
	var dets []model.Detection
	for i, l := range in.Lines {
		charge, chargeOK := known(l.ChargeCents)
		allowed, allowedOK := known(l.AllowedCents)
		if !chargeOK || !allowedOK || allowed <= charge {
			continue
		}
		dets = append(dets, model.Detection{
			Evidence: model.AmountAnomalyEvidence{
				LineRefs:     []int{i},
				Code:         l.Code,
				ChargeCents:  charge,
				AllowedCents: allowed,
			},
			Explanation: fmt.Sprintf(
				"The allowed amount (%s) on this line is higher than the billed charge (%s), which is unusual and may indicate a processing error.",
				normalize.FormatCents(allowed), normalize.FormatCents(charge)),
		})
	}
	return dets
}

// evalMissingItemizedBill flags a high total concentrated in very few lines,
// the signature of an unitemized statement.
func evalMissingItemizedBill(in *Input) []model.Detection {
	var refs []int
	var total int64
	for i, l := range in.Lines {
		charge, ok := known(l.ChargeCents)
		if !ok || charge <= 0 {
			continue
		}
		refs = append(refs, i)
		total += charge
	}
	if len(refs) == 0 || len(refs) > in.Cfg.HighValueMaxLines || total < in.Cfg.HighValueBillCents {
		return nil
	}

	return []model.Detection{{
		Evidence: model.ConcentrationEvidence{
			LineRefs:         refs,
			LineCount:        len(refs),
			TotalChargeCents: total,
		},
		Explanation: fmt.Sprintf(
			"A total of %s is billed across only %d line(s). You are entitled to a fully itemized bill before paying a charge this large.",
			normalize.FormatCents(total), len(refs)),
		SuggestedQuestions: []string{
			"Can you send a fully itemized bill listing each service, code, and charge?",
		},
	}}
}

// evalLowConfidenceHighValue surfaces expensive lines whose extraction was
// flagged low-confidence without vendor consensus, so the reader verifies
// them against the original document before acting on other findings.
func evalLowConfidenceHighValue(in *Input) []model.Detection {
	var refs []int
	var total int64
	for i, l := range in.Lines {
		if !l.LowConf || l.VendorConsensus {
			continue
		}
		charge, ok := known(l.ChargeCents)
		if !ok || charge < in.Cfg.LowConfidenceChargeCents {
			continue
		}
		refs = append(refs, i)
		total += charge
	}
	if len(refs) == 0 {
		return nil
	}

	return []model.Detection{{
		Evidence: model.ConfidenceEvidence{
			LineRefs:         refs,
			TotalChargeCents: total,
		},
		Explanation: fmt.Sprintf(
			"%d high-value line(s) totaling %s were read with low confidence from the source document. Verify these amounts against the original bill.",
			len(refs), normalize.FormatCents(total)),
	}}
}
