// Package validator compares a learner's block order against the canonical
// solution.
package validator

// Result is the outcome of comparing two block orders.
type Result struct {
	// ExactMatch is true when both orders have the same length and agree
	// at every index.
	ExactMatch bool

	// MatchingPositions lists, in ascending order, every index at which
	// both orders hold the same id.
	MatchingPositions []int
}

// Evaluate compares current against canonical. It has no side effects.
func Evaluate(current, canonical []string) Result {
	n := min(len(current), len(canonical))
	matching := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if current[i] == canonical[i] {
			matching = append(matching, i)
		}
	}

	return Result{
		ExactMatch:        isExactMatch(current, canonical),
		MatchingPositions: matching,
	}
}

func isExactMatch(current, canonical []string) bool {
	if len(current) != len(canonical) {
		return false
	}
	for i := range current {
		if current[i] != canonical[i] {
			return false
		}
	}
	return true
}

// Contains reports whether position i is in the matching set.
func (r Result) Contains(i int) bool {
	for _, p := range r.MatchingPositions {
		if p == i {
			return true
		}
		if p > i {
			return false
		}
	}
	return false
}
