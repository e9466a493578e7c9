package model

// DuplicateEvidence backs duplicate_service_lines detections.
type DuplicateEvidence struct {
	LineRefs      []int  `json:"line_refs"`
	Code          string `json:"code"`
	CodeSystem    string `json:"code_system,omitempty"`
	DateOfService string `json:"date_of_service,omitempty"`
	ChargeCents   int64  `json:"charge_cents"`
	Count         int    `json:"count"`
}

func (e DuplicateEvidence) Refs() []int { return e.LineRefs }

// UnbundlingEvidence backs unbundling_ncci detections.
type UnbundlingEvidence struct {
	LineRefs          []int  `json:"line_refs"`
	ComprehensiveCode string `json:"comprehensive_code"`
	ComponentCode     string `json:"component_code"`
	DateOfService     string `json:"date_of_service,omitempty"`
}

func (e UnbundlingEvidence) Refs() []int { return e.LineRefs }

// ModifierEvidence backs modifier conflict and same-day modifier detections.
type ModifierEvidence struct {
	LineRefs      []int    `json:"line_refs"`
	Code          string   `json:"code"`
	Modifiers     []string `json:"modifiers,omitempty"`
	DateOfService string   `json:"date_of_service,omitempty"`
}

func (e ModifierEvidence) Refs() []int { return e.LineRefs }

// SiteOfServiceEvidence backs facility_fee_surprise detections.
type SiteOfServiceEvidence struct {
	LineRefs      []int    `json:"line_refs"`
	Code          string   `json:"code"`
	DateOfService string   `json:"date_of_service,omitempty"`
	Places        []string `json:"places"`
}

func (e SiteOfServiceEvidence) Refs() []int { return e.LineRefs }

// CostShareEvidence backs patient cost-share detections (NSA emergency,
// preventive miscoding, patient responsibility above charge).
type CostShareEvidence struct {
	LineRefs         []int  `json:"line_refs"`
	Code             string `json:"code,omitempty"`
	ChargeCents      int64  `json:"charge_cents"`
	PatientRespCents int64  `json:"patient_resp_cents"`
}

func (e CostShareEvidence) Refs() []int { return e.LineRefs }

// BalanceBillingEvidence backs balance_billing_suspect detections.
type BalanceBillingEvidence struct {
	LineRefs         []int  `json:"line_refs"`
	Code             string `json:"code,omitempty"`
	AllowedCents     int64  `json:"allowed_cents"`
	PlanPaidCents    int64  `json:"plan_paid_cents"`
	PatientRespCents int64  `json:"patient_resp_cents"`
}

func (e BalanceBillingEvidence) Refs() []int { return e.LineRefs }

// UnitsEvidence backs drug_units_implausible detections.
type UnitsEvidence struct {
	LineRefs []int  `json:"line_refs"`
	Code     string `json:"code"`
	Units    int64  `json:"units"`
	MaxUnits int64  `json:"max_units"`
}

func (e UnitsEvidence) Refs() []int { return e.LineRefs }

// TherapyTimeEvidence backs therapy_time_excessive detections.
type TherapyTimeEvidence struct {
	LineRefs      []int    `json:"line_refs"`
	DateOfService string   `json:"date_of_service,omitempty"`
	Codes         []string `json:"codes"`
	TotalUnits    int64    `json:"total_units"`
	TotalMinutes  int64    `json:"total_minutes"`
	DailyCeiling  int64    `json:"daily_ceiling_minutes"`
}

func (e TherapyTimeEvidence) Refs() []int { return e.LineRefs }

// MathEvidence backs total-reconciliation detections.
type MathEvidence struct {
	LineRefs   []int  `json:"line_refs"`
	Field      string `json:"field"`
	Calculated int64  `json:"calculated"`
	Reported   int64  `json:"reported"`
}

func (e MathEvidence) Refs() []int { return e.LineRefs }

// KeywordEvidence backs description keyword-match detections.
type KeywordEvidence struct {
	LineRefs     []int    `json:"line_refs"`
	Descriptions []string `json:"descriptions"`
}

func (e KeywordEvidence) Refs() []int { return e.LineRefs }

// ConcentrationEvidence backs missing_itemized_bill detections.
type ConcentrationEvidence struct {
	LineRefs         []int `json:"line_refs"`
	LineCount        int   `json:"line_count"`
	TotalChargeCents int64 `json:"total_charge_cents"`
}

func (e ConcentrationEvidence) Refs() []int { return e.LineRefs }

// AmountAnomalyEvidence backs allowed_exceeds_charge detections.
type AmountAnomalyEvidence struct {
	LineRefs     []int  `json:"line_refs"`
	Code         string `json:"code,omitempty"`
	ChargeCents  int64  `json:"charge_cents"`
	AllowedCents int64  `json:"allowed_cents"`
}

func (e AmountAnomalyEvidence) Refs() []int { return e.LineRefs }

// ConfidenceEvidence backs low_confidence_high_value detections.
type ConfidenceEvidence struct {
	LineRefs         []int `json:"line_refs"`
	TotalChargeCents int64 `json:"total_charge_cents"`
}

func (e ConfidenceEvidence) Refs() []int { return e.LineRefs }
