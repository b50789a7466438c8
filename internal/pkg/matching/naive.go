package matching

// Naive is the brute-force baseline. Every candidate offset in [0, n-m] is
// compared symbol by symbol until the first mismatch.
type Naive struct {
	base
}

// NewNaive creates a brute-force matcher.
func NewNaive(pattern, text []byte, opts ...Option) (*Naive, error) {
	b, _, err := newBase(pattern, text, opts)
	if err != nil {
		return nil, err
	}
	return &Naive{base: b}, nil
}

// Algorithm returns AlgorithmNaive.
func (n *Naive) Algorithm() Algorithm {
	return AlgorithmNaive
}

// Search scans every offset.
func (n *Naive) Search() Result {
	return n.timed(n.search)
}

func (n *Naive) search() Result {
	if res, ok := n.shortCircuit(); ok {
		return res
	}

	var res Result
	pattern, text := n.pattern, n.text
	m := len(pattern)
	for i := 0; i <= len(text)-m; i++ {
		j := 0
		for j < m {
			res.ScanSteps++
			if text[i+j] != pattern[j] {
				break
			}
			j++
		}
		if j == m {
			res.Offsets = append(res.Offsets, i)
		}
	}
	res.Occurrences = len(res.Offsets)
	return res
}
