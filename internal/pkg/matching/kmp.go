package matching

import "slices"

// KMP scans the text once, using the failure function to fall back after a
// mismatch instead of restarting at the next offset.
type KMP struct {
	base

	// failure is built on the first search and cached with its build cost,
	// so later searches report the same preprocessing steps.
	failure      FailureFunction
	failureSteps int64
}

// NewKMP creates a failure-function matcher.
func NewKMP(pattern, text []byte, opts ...Option) (*KMP, error) {
	b, _, err := newBase(pattern, text, opts)
	if err != nil {
		return nil, err
	}
	return &KMP{base: b}, nil
}

// Algorithm returns AlgorithmKMP.
func (k *KMP) Algorithm() Algorithm {
	return AlgorithmKMP
}

// FailureFunction returns a copy of the pattern's failure function.
func (k *KMP) FailureFunction() FailureFunction {
	k.prepare()
	return slices.Clone(k.failure)
}

// Search scans the text.
func (k *KMP) Search() Result {
	return k.timed(k.search)
}

func (k *KMP) prepare() {
	if k.failure != nil {
		return
	}
	k.failure, k.failureSteps = buildFailureFunction(k.pattern)
}

func (k *KMP) search() Result {
	if res, ok := k.shortCircuit(); ok {
		return res
	}
	k.prepare()

	res := Result{PreprocessSteps: k.failureSteps}
	res.Offsets, res.ScanSteps = scanKMP(k.pattern, k.failure, k.text, nil)
	res.Occurrences = len(res.Offsets)
	return res
}

// scanKMP runs the failure-function scan. i is the number of pattern symbols
// currently matched, j the text cursor. A mismatch with i > 0 falls back to
// failure[i-1] and re-tests text[j] without advancing j. After a full match i
// resets to failure[m-1] so overlapping occurrences are found.
//
// visit, when non-nil, receives the state after each text symbol is consumed.
func scanKMP(pattern []byte, failure FailureFunction, text []byte, visit func(j, state int)) ([]int, int64) {
	var (
		offsets []int
		steps   int64
	)
	m := len(pattern)
	i, j := 0, 0
	for j < len(text) {
		steps++
		if text[j] == pattern[i] {
			i++
			if i == m {
				offsets = append(offsets, j-m+1)
				i = failure[m-1]
			}
		} else if i > 0 {
			i = failure[i-1]
			continue
		}
		if visit != nil {
			visit(j, i)
		}
		j++
	}
	return offsets, steps
}
