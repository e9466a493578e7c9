package model

// Severity classifies how strongly a detection suggests a billing problem.
// Severity is a fixed attribute of each rule; no rule escalates based on data.
type Severity string

const (
	SeverityInfo Severity = "info"
	SeverityWarn Severity = "warn"
	SeverityHigh Severity = "high"
)

// severityRank orders severities for output sorting. Lower rank sorts first.
var severityRank = map[Severity]int{
	SeverityHigh: 0,
	SeverityWarn: 1,
	SeverityInfo: 2,
}

// Rank returns the sort rank of the severity. Unknown severities sort last.
func (s Severity) Rank() int {
	r, ok := severityRank[s]
	if !ok {
		return len(severityRank)
	}
	return r
}

// Evidence is the rule-specific structured payload attached to a detection.
// Every variant carries zero-based indices into the input line array.
type Evidence interface {
	// Refs returns the referenced input line indices in ascending order.
	Refs() []int
}

// Detection is one finding emitted by a rule evaluator.
type Detection struct {
	RuleKey            string   `json:"rule_key"`
	Severity           Severity `json:"severity"`
	Evidence           Evidence `json:"evidence"`
	Explanation        string   `json:"explanation"`
	SuggestedQuestions []string `json:"suggested_questions,omitempty"`
	PolicyCitations    []string `json:"policy_citations,omitempty"`
}
