// Package strings provides string slice utilities.
package strings

// Union returns base followed by every element of extra not already present,
// with duplicates removed. Order is preserved: base's relative order first,
// then newly introduced values in extra's order. Values are compared exactly.
//
// Example:
//
//	Union([]string{"a", "b"}, []string{"b", "c", "c"})
//	// Returns: []string{"a", "b", "c"}
func Union(base, extra []string) []string {
	seen := make(map[string]struct{}, len(base)+len(extra))
	result := make([]string, 0, len(base)+len(extra))

	for _, list := range [][]string{base, extra} {
		for _, v := range list {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			result = append(result, v)
		}
	}

	return result
}

// ContainsAll reports whether every element of subset appears in set.
// An empty subset is always contained.
func ContainsAll(set, subset []string) bool {
	if len(subset) == 0 {
		return true
	}
	index := make(map[string]struct{}, len(set))
	for _, v := range set {
		index[v] = struct{}{}
	}
	for _, v := range subset {
		if _, ok := index[v]; !ok {
			return false
		}
	}
	return true
}

// Contains reports whether v appears in values.
func Contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
