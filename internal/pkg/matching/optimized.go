package matching

// Optimized scans the text as a deterministic automaton driven by a
// transition table, taking exactly one state transition per input symbol.
type Optimized struct {
	base
	dense bool

	// table and its build cost are cached across searches.
	table           TransitionTable
	preprocessSteps int64
}

// NewOptimized creates a table-driven matcher.
func NewOptimized(pattern, text []byte, opts ...Option) (*Optimized, error) {
	b, o, err := newBase(pattern, text, opts)
	if err != nil {
		return nil, err
	}
	return &Optimized{base: b, dense: o.dense}, nil
}

// Algorithm returns AlgorithmOptimized.
func (o *Optimized) Algorithm() Algorithm {
	return AlgorithmOptimized
}

// Table returns the transition table, building it if needed.
func (o *Optimized) Table() TransitionTable {
	o.prepare()
	return o.table
}

// Search scans the text.
func (o *Optimized) Search() Result {
	return o.timed(o.search)
}

// prepare builds the failure function and the table derived from it. Each
// filled table cell counts as one preprocessing step.
func (o *Optimized) prepare() {
	if o.table != nil {
		return
	}
	failure, steps := buildFailureFunction(o.pattern)
	if o.dense {
		o.table = BuildDenseTransitionTable(o.pattern, failure)
	} else {
		o.table = BuildTransitionTable(o.pattern, failure)
	}
	o.preprocessSteps = steps + int64(len(o.table.Alphabet())*o.table.States())
}

func (o *Optimized) search() Result {
	if res, ok := o.shortCircuit(); ok {
		return res
	}
	o.prepare()

	res := Result{PreprocessSteps: o.preprocessSteps}
	res.Offsets, res.ScanSteps = scanAutomaton(o.pattern, o.table, o.text, nil)
	res.Occurrences = len(res.Offsets)
	return res
}

// scanAutomaton runs the table-driven scan. state is the number of pattern
// symbols matched so far and is always below m.
//
// On the terminal comparison the next state is taken from the entry of the
// state before it, table[state-1][c]. With c == pattern[m-1] that entry
// equals failure[m-1], the same reset the failure-function scan performs, so
// both scans visit identical states.
func scanAutomaton(pattern []byte, table TransitionTable, text []byte, visit func(j, state int)) ([]int, int64) {
	var (
		offsets []int
		steps   int64
	)
	last := len(pattern) - 1
	state := 0
	for j, c := range text {
		steps++
		switch {
		case pattern[state] == c && state == last:
			offsets = append(offsets, j-state)
			if state > 0 {
				state = table.Lookup(state-1, c)
			}
		case pattern[state] == c:
			state++
		case state > 0:
			state = table.Lookup(state-1, c)
		}
		if visit != nil {
			visit(j, state)
		}
	}
	return offsets, steps
}
