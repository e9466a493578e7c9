package model

// DocType identifies the kind of source document a line was extracted from.
type DocType string

const (
	DocTypeBill    DocType = "bill"
	DocTypeEOB     DocType = "eob"
	DocTypeUnknown DocType = "unknown"
)

// PricedLine is one normalized service line from a bill or EOB.
// Monetary fields are integer cents; nil means the amount was not present in
// the source document, which is distinct from a known zero.
type PricedLine struct {
	CaseRef    string `json:"case_ref,omitempty"`
	ArticleRef string `json:"article_ref,omitempty"`
	Page       int    `json:"page"`
	Row        int    `json:"row"`

	DocType     DocType  `json:"doc_type"`
	Code        string   `json:"code"`
	CodeSystem  string   `json:"code_system"`
	Description string   `json:"description"`
	Modifiers   []string `json:"modifiers,omitempty"`
	Units       *int64   `json:"units,omitempty"`

	ChargeCents      *int64 `json:"charge_cents,omitempty"`
	AllowedCents     *int64 `json:"allowed_cents,omitempty"`
	PlanPaidCents    *int64 `json:"plan_paid_cents,omitempty"`
	PatientRespCents *int64 `json:"patient_resp_cents,omitempty"`

	DateOfService  string `json:"date_of_service,omitempty"`
	PlaceOfService string `json:"place_of_service,omitempty"`

	Conf            float64 `json:"conf,omitempty"`
	LowConf         bool    `json:"low_conf,omitempty"`
	VendorConsensus bool    `json:"vendor_consensus,omitempty"`
}

// HasModifier reports whether the line carries the given modifier.
// A nil modifier set is treated as empty.
func (l *PricedLine) HasModifier(mod string) bool {
	for _, m := range l.Modifiers {
		if m == mod {
			return true
		}
	}
	return false
}

// UnitCount returns the line's unit count, defaulting to 1 when absent.
func (l *PricedLine) UnitCount() int64 {
	if l.Units == nil || *l.Units <= 0 {
		return 1
	}
	return *l.Units
}

// Header carries provider and payer identifiers for a priced summary.
type Header struct {
	ProviderName string `json:"provider_name,omitempty"`
	ProviderNPI  string `json:"provider_npi,omitempty"`
	PayerName    string `json:"payer_name,omitempty"`
	ClaimID      string `json:"claim_id,omitempty"`
}

// Totals holds the document-level amounts reported on the bill or EOB.
type Totals struct {
	BilledCents      int64 `json:"billed_cents"`
	AllowedCents     int64 `json:"allowed_cents"`
	PlanPaidCents    int64 `json:"plan_paid_cents"`
	PatientRespCents int64 `json:"patient_resp_cents"`
}

// PricedSummary is the engine's input: a fully priced representation of one
// bill/EOB case, built upstream by the extraction pipeline.
type PricedSummary struct {
	CaseID string       `json:"case_id"`
	Header Header       `json:"header"`
	Totals *Totals      `json:"totals"`
	Lines  []PricedLine `json:"lines"`
}
