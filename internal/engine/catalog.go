package engine

import "github.com/wyng-health/billaudit/internal/model"

// CatalogVersion identifies the rule catalog release. Bumped whenever a rule
// is added, removed, or its reference tables change meaningfully.
const CatalogVersion = "2026.2"

// Rule is one declarative catalog entry. Severity is a constant attribute of
// the key; the dispatcher stamps it onto every detection the evaluator emits.
type Rule struct {
	Key      string
	Severity model.Severity
	Evaluate func(*Input) []model.Detection
}

// Catalog returns the full fixed rule catalog. Evaluators are mutually
// independent pure functions over the shared input; order here is the
// declaration order only and never affects output.
func Catalog() []Rule {
	return []Rule{
		// Duplication & unbundling
		{Key: "duplicate_service_lines", Severity: model.SeverityHigh, Evaluate: evalDuplicateServiceLines},
		{Key: "unbundling_ncci", Severity: model.SeverityHigh, Evaluate: evalUnbundlingNCCI},
		{Key: "modifier_26_tc_conflict", Severity: model.SeverityHigh, Evaluate: evalModifier26TCConflict},
		{Key: "prof_tech_double_billing", Severity: model.SeverityHigh, Evaluate: evalProfTechDoubleBilling},

		// Site of service & surprise billing
		{Key: "facility_fee_surprise", Severity: model.SeverityHigh, Evaluate: evalFacilityFeeSurprise},
		{Key: "nsa_emergency_protection", Severity: model.SeverityHigh, Evaluate: evalNSAEmergencyProtection},

		// Cost-share correctness
		{Key: "preventive_miscoded", Severity: model.SeverityWarn, Evaluate: evalPreventiveMiscoded},
		{Key: "patient_resp_exceeds_charge", Severity: model.SeverityWarn, Evaluate: evalPatientRespExceedsCharge},
		{Key: "balance_billing_suspect", Severity: model.SeverityHigh, Evaluate: evalBalanceBillingSuspect},

		// Utilization sanity
		{Key: "drug_units_implausible", Severity: model.SeverityWarn, Evaluate: evalDrugUnitsImplausible},
		{Key: "therapy_time_excessive", Severity: model.SeverityWarn, Evaluate: evalTherapyTimeExcessive},
		{Key: "em_procedure_same_day", Severity: model.SeverityWarn, Evaluate: evalEMProcedureSameDay},

		// Math / administrative
		{Key: "math_error_billed_total", Severity: model.SeverityWarn, Evaluate: evalMathErrorBilledTotal},
		{Key: "math_error_patient_total", Severity: model.SeverityWarn, Evaluate: evalMathErrorPatientTotal},
		{Key: "non_provider_admin_fee", Severity: model.SeverityWarn, Evaluate: evalNonProviderAdminFee},
		{Key: "allowed_exceeds_charge", Severity: model.SeverityInfo, Evaluate: evalAllowedExceedsCharge},
		{Key: "missing_itemized_bill", Severity: model.SeverityInfo, Evaluate: evalMissingItemizedBill},
		{Key: "low_confidence_high_value", Severity: model.SeverityInfo, Evaluate: evalLowConfidenceHighValue},
	}
}
