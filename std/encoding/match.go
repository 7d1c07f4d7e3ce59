package encoding

// LongestMatch implements the C1 name-matching rule shared by the PIT,
// CST, and key cache (spec.md §4.1): among the candidates whose name is a
// prefix of (or equal to) target, return the one with the greatest
// component count, breaking ties by earliest position in candidates.
//
// nameOf extracts the candidate's name; candidates with no match return
// found=false.
func LongestMatch[T any](candidates []T, target Name, nameOf func(T) Name) (best T, found bool) {
	bestLen := -1
	for _, cand := range candidates {
		name := nameOf(cand)
		if !name.Match(target) {
			continue
		}
		if name.Len() > bestLen {
			bestLen = name.Len()
			best = cand
			found = true
		}
	}
	return best, found
}

// FirstMatch implements the C3 CST rule (spec.md §4.3, §9): return the
// first candidate, in iteration order, whose name is a prefix of target.
// Kept distinct from LongestMatch because spec.md requires the CST to
// preserve first-match semantics rather than switch to longest-match.
func FirstMatch[T any](candidates []T, target Name, nameOf func(T) Name) (best T, found bool) {
	for _, cand := range candidates {
		if nameOf(cand).Match(target) {
			return cand, true
		}
	}
	return best, false
}
