package matching

// FailureFunction holds, for each pattern position i, the length of the
// longest proper prefix of pattern[0..i] that is also a suffix of it.
type FailureFunction []int

// BuildFailureFunction computes the failure function of pattern.
// An empty pattern yields an empty table.
func BuildFailureFunction(pattern []byte) FailureFunction {
	failure, _ := buildFailureFunction(pattern)
	return failure
}

// buildFailureFunction also returns the number of loop iterations spent,
// counting every retry of the same index.
//
// matchLength is the length of the current border. On a mismatch with a
// non-empty border the border shrinks to failure[matchLength-1] and the same
// index is tested again; i only advances on a match or once the border is empty.
func buildFailureFunction(pattern []byte) (FailureFunction, int64) {
	m := len(pattern)
	failure := make(FailureFunction, m)
	if m == 0 {
		return failure, 0
	}

	var steps int64
	matchLength := 0
	i := 1
	for i < m {
		steps++
		switch {
		case pattern[i] == pattern[matchLength]:
			matchLength++
			failure[i] = matchLength
			i++
		case matchLength == 0:
			failure[i] = 0
			i++
		default:
			matchLength = failure[matchLength-1]
		}
	}
	return failure, steps
}

// Valid reports whether f satisfies failure[0] == 0 and 0 <= failure[i] <= i.
func (f FailureFunction) Valid() bool {
	for i, v := range f {
		if v < 0 || v > i {
			return false
		}
	}
	return len(f) == 0 || f[0] == 0
}
