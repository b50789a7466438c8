package matching

import (
	"slices"
)

// TransitionTable maps (state, symbol) to the next automaton state.
//
// Entry (i, c) is the state reached when the automaton holds i+1 matched
// symbols, falls back through the failure function, and consumes c. Only
// symbols that occur in the pattern have rows; every other symbol leads to
// state 0 from any state.
type TransitionTable interface {
	// Lookup returns entry (state, c), or 0 for a symbol outside the alphabet.
	Lookup(state int, c byte) int

	// Row returns a copy of the row for c and whether c is in the alphabet.
	Row(c byte) ([]int, bool)

	// Alphabet returns the distinct pattern symbols in ascending order.
	Alphabet() []byte

	// States returns the number of states per row (the pattern length).
	States() int
}

// fillRow computes the row for symbol c in increasing state order, so the
// recursive case always reads an entry that is already filled.
func fillRow[T int | int32](pattern []byte, failure FailureFunction, c byte, row []T) {
	for i, f := range failure {
		switch {
		case pattern[f] == c:
			row[i] = T(f + 1)
		case f == 0:
			row[i] = 0
		default:
			row[i] = row[f-1]
		}
	}
}

// alphabetOf returns the distinct symbols of pattern in ascending order.
func alphabetOf(pattern []byte) []byte {
	var seen [256]bool
	alphabet := make([]byte, 0, len(pattern))
	for _, c := range pattern {
		if !seen[c] {
			seen[c] = true
			alphabet = append(alphabet, c)
		}
	}
	slices.Sort(alphabet)
	return alphabet
}

// SparseTable keeps one row per observed symbol in a map.
type SparseTable struct {
	rows     map[byte][]int
	alphabet []byte
	states   int
}

// BuildTransitionTable derives the sparse transition table from pattern and
// its failure function.
func BuildTransitionTable(pattern []byte, failure FailureFunction) *SparseTable {
	alphabet := alphabetOf(pattern)
	t := &SparseTable{
		rows:     make(map[byte][]int, len(alphabet)),
		alphabet: alphabet,
		states:   len(pattern),
	}
	for _, c := range alphabet {
		row := make([]int, len(pattern))
		fillRow(pattern, failure, c, row)
		t.rows[c] = row
	}
	return t
}

// Lookup returns entry (state, c).
func (t *SparseTable) Lookup(state int, c byte) int {
	row, ok := t.rows[c]
	if !ok {
		return 0
	}
	return row[state]
}

// Row returns a copy of the row for c.
func (t *SparseTable) Row(c byte) ([]int, bool) {
	row, ok := t.rows[c]
	if !ok {
		return nil, false
	}
	return slices.Clone(row), true
}

// Alphabet returns the observed symbols.
func (t *SparseTable) Alphabet() []byte {
	return slices.Clone(t.alphabet)
}

// States returns the pattern length.
func (t *SparseTable) States() int {
	return t.states
}

// DenseTable stores all rows in one contiguous block indexed through a
// 256-entry byte-class map. It suits small fixed alphabets such as
// nucleotide codes, where the map lookup of SparseTable dominates the scan.
//
// Memory: 512 bytes for the class map plus 4*m bytes per observed symbol.
type DenseTable struct {
	// class maps a byte to its row index, -1 for symbols not in the pattern.
	class [256]int16

	// rows holds len(alphabet) rows of length states, row-major.
	rows []int32

	alphabet []byte
	states   int
}

// BuildDenseTransitionTable derives the dense transition table. Entries are
// identical to BuildTransitionTable.
func BuildDenseTransitionTable(pattern []byte, failure FailureFunction) *DenseTable {
	alphabet := alphabetOf(pattern)
	m := len(pattern)
	t := &DenseTable{
		rows:     make([]int32, len(alphabet)*m),
		alphabet: alphabet,
		states:   m,
	}
	for i := range t.class {
		t.class[i] = -1
	}
	for k, c := range alphabet {
		t.class[c] = int16(k)
		fillRow(pattern, failure, c, t.rows[k*m:(k+1)*m])
	}
	return t
}

// Lookup returns entry (state, c).
func (t *DenseTable) Lookup(state int, c byte) int {
	k := t.class[c]
	if k < 0 {
		return 0
	}
	return int(t.rows[int(k)*t.states+state])
}

// Row returns a copy of the row for c.
func (t *DenseTable) Row(c byte) ([]int, bool) {
	k := t.class[c]
	if k < 0 {
		return nil, false
	}
	src := t.rows[int(k)*t.states : (int(k)+1)*t.states]
	row := make([]int, len(src))
	for i, v := range src {
		row[i] = int(v)
	}
	return row, true
}

// Alphabet returns the observed symbols.
func (t *DenseTable) Alphabet() []byte {
	return slices.Clone(t.alphabet)
}

// States returns the pattern length.
func (t *DenseTable) States() int {
	return t.states
}
