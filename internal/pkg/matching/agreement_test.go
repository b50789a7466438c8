package matching

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomPatterns returns count non-empty patterns of length up to maxLen,
// drawn from alphabet with a fixed seed.
func randomPatterns(count, maxLen int, alphabet string) [][]byte {
	r := rand.New(rand.NewSource(7<<32 | 11))
	patterns := make([][]byte, count)
	for i := range patterns {
		patterns[i] = randomBytes(r, 1+r.Intn(maxLen), alphabet)
	}
	return patterns
}

func randomBytes(r *rand.Rand, n int, alphabet string) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[r.Intn(len(alphabet))]
	}
	return b
}

func TestMatchers_AgreeOnRandomInputs(t *testing.T) {
	r := rand.New(rand.NewSource(1<<32 | 2))
	alphabets := []string{"A", "AB", "ACGT", "ACGTN"}

	for round := 0; round < 500; round++ {
		alphabet := alphabets[round%len(alphabets)]
		pattern := randomBytes(r, 1+r.Intn(6), alphabet)
		text := randomBytes(r, r.Intn(60), alphabet)

		var want []int
		for i, m := range newAll(t, string(pattern), string(text)) {
			got := m.Search().Offsets
			if i == 0 {
				want = got
				continue
			}
			require.Equal(t, want, got, "pattern %q text %q algorithm %s", pattern, text, m.Algorithm())
		}
	}
}

func TestScan_OptimizedTraceMatchesKMP(t *testing.T) {
	r := rand.New(rand.NewSource(3<<32 | 4))

	for round := 0; round < 300; round++ {
		alphabet := "ABC"
		if round%2 == 0 {
			alphabet = "ACGT"
		}
		pattern := randomBytes(r, 1+r.Intn(8), alphabet)
		// Include a symbol outside the pattern alphabet.
		text := randomBytes(r, 1+r.Intn(80), alphabet+"N")

		failure := BuildFailureFunction(pattern)
		var kmpTrace []int
		kmpOffsets, _ := scanKMP(pattern, failure, text, func(_, state int) {
			kmpTrace = append(kmpTrace, state)
		})
		require.Len(t, kmpTrace, len(text))

		for name, table := range buildTables(pattern) {
			var trace []int
			offsets, steps := scanAutomaton(pattern, table, text, func(_, state int) {
				trace = append(trace, state)
			})
			assert.Equal(t, kmpTrace, trace, "%s table, pattern %q text %q", name, pattern, text)
			assert.Equal(t, kmpOffsets, offsets)
			assert.Equal(t, int64(len(text)), steps)
		}
	}
}

func TestScan_StatesStayBelowPatternLength(t *testing.T) {
	pattern := []byte("AAAA")
	text := []byte("AAAAAAAAAA")
	table := BuildTransitionTable(pattern, BuildFailureFunction(pattern))

	offsets, _ := scanAutomaton(pattern, table, text, func(_, state int) {
		assert.Less(t, state, len(pattern))
	})
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, offsets)
}
