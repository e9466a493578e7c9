package engine

import (
	"sort"
	"strconv"
	"strings"

	"github.com/wyng-health/billaudit/internal/model"
)

// aggregate flattens per-rule outputs into one ordered list. Exact duplicates
// (same rule key, same sorted line refs) are suppressed; the final order is
// severity rank, then rule key, then line refs — independent of evaluator
// execution order.
func aggregate(perRule [][]model.Detection) []model.Detection {
	out := make([]model.Detection, 0)
	seen := make(map[string]struct{})

	for _, dets := range perRule {
		for _, d := range dets {
			key := d.RuleKey + "|" + refsKey(d.Evidence)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, d)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() < b.Severity.Rank()
		}
		if a.RuleKey != b.RuleKey {
			return a.RuleKey < b.RuleKey
		}
		return lessRefs(sortedRefs(a.Evidence), sortedRefs(b.Evidence))
	})

	return out
}

func sortedRefs(e model.Evidence) []int {
	if e == nil {
		return nil
	}
	refs := append([]int(nil), e.Refs()...)
	sort.Ints(refs)
	return refs
}

func refsKey(e model.Evidence) string {
	refs := sortedRefs(e)
	parts := make([]string, len(refs))
	for i, r := range refs {
		parts[i] = strconv.Itoa(r)
	}
	return strings.Join(parts, ",")
}

func lessRefs(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
