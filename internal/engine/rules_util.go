package engine

import "sort"

// known unwraps an optional cents value. Rules that require the datum skip
// the line when ok is false; they never treat an absent amount as zero.
func known(v *int64) (int64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// sortedGroupKeys returns map keys in a fixed order so grouped rules iterate
// deterministically regardless of map layout.
func sortedGroupKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func uniqueSortedStrings(vals []string) []string {
	seen := make(map[string]struct{}, len(vals))
	var out []string
	for _, v := range vals {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func allLineRefs(n int) []int {
	refs := make([]int, n)
	for i := range refs {
		refs[i] = i
	}
	return refs
}
