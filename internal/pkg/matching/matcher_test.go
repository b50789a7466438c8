package matching

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAll(t *testing.T, pattern, text string, opts ...Option) []Matcher {
	t.Helper()
	var matchers []Matcher
	for _, alg := range Algorithms() {
		m, err := New(alg, []byte(pattern), []byte(text), opts...)
		require.NoError(t, err)
		matchers = append(matchers, m)
	}
	dense, err := NewOptimized([]byte(pattern), []byte(text), append(opts, WithDenseTable())...)
	require.NoError(t, err)
	return append(matchers, dense)
}

func TestMatchers_Offsets(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		text    string
		want    []int
	}{
		{
			name:    "single match after partial prefixes",
			pattern: "ABABCABAB",
			text:    "ABABDABACDABABCABAB",
			want:    []int{10},
		},
		{
			name:    "pattern equals text",
			pattern: "HELLO",
			text:    "HELLO",
			want:    []int{0},
		},
		{
			name:    "equal length without match",
			pattern: "HELLO",
			text:    "HELLP",
			want:    nil,
		},
		{
			name:    "pattern longer than text",
			pattern: "ACGTACGT",
			text:    "ACGT",
			want:    nil,
		},
		{
			name:    "empty text",
			pattern: "A",
			text:    "",
			want:    nil,
		},
		{
			name:    "overlapping occurrences",
			pattern: "AA",
			text:    "AAAA",
			want:    []int{0, 1, 2},
		},
		{
			name:    "overlapping with border",
			pattern: "ABA",
			text:    "ABABABA",
			want:    []int{0, 2, 4},
		},
		{
			name:    "single symbol adjacent occurrences",
			pattern: "A",
			text:    "ABAA",
			want:    []int{0, 2, 3},
		},
		{
			name:    "match at the last offset",
			pattern: "GT",
			text:    "ACGT",
			want:    []int{2},
		},
		{
			name:    "symbol outside pattern alphabet resets",
			pattern: "ACA",
			text:    "ACNACACA",
			want:    []int{3, 5},
		},
		{
			name:    "no match",
			pattern: "TTT",
			text:    "ACGACGACG",
			want:    nil,
		},
		{
			name:    "dna repeats",
			pattern: "GATA",
			text:    "GATAGATACGATATA",
			want:    []int{0, 4, 9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, m := range newAll(t, tt.pattern, tt.text) {
				res := m.Search()
				assert.Equal(t, tt.want, res.Offsets, "algorithm %s", m.Algorithm())
				assert.Equal(t, len(tt.want), res.Occurrences, "algorithm %s", m.Algorithm())
			}
		})
	}
}

func TestMatchers_InvalidPattern(t *testing.T) {
	for _, alg := range Algorithms() {
		t.Run(string(alg), func(t *testing.T) {
			m, err := New(alg, nil, []byte("ACGT"))
			require.ErrorIs(t, err, ErrInvalidPattern)
			assert.Nil(t, m)
		})
	}

	_, err := NewNaive([]byte{}, []byte("A"))
	assert.ErrorIs(t, err, ErrInvalidPattern)
	_, err = NewKMP([]byte{}, []byte("A"))
	assert.ErrorIs(t, err, ErrInvalidPattern)
	_, err = NewOptimized([]byte{}, []byte("A"), WithDenseTable())
	assert.ErrorIs(t, err, ErrInvalidPattern)
}

func TestMatchers_PatternLongerThanTextTakesNoSteps(t *testing.T) {
	for _, m := range newAll(t, "ACGTT", "ACG") {
		res := m.Search()
		assert.Equal(t, Result{}, res, "algorithm %s", m.Algorithm())
		assert.Zero(t, res.Steps())
	}
}

func TestMatchers_EqualLengthShortCircuit(t *testing.T) {
	for _, m := range newAll(t, "HELLO", "HELLO") {
		res := m.Search()
		assert.Equal(t, []int{0}, res.Offsets)
		assert.Zero(t, res.Steps(), "algorithm %s should not scan", m.Algorithm())
	}
}

func TestMatchers_StepCounts(t *testing.T) {
	naive, err := NewNaive([]byte("AB"), []byte("ABC"))
	require.NoError(t, err)
	res := naive.Search()
	assert.Equal(t, int64(0), res.PreprocessSteps)
	assert.Equal(t, int64(3), res.ScanSteps) // A,B at 0 then mismatch at 1

	kmp, err := NewKMP([]byte("AB"), []byte("ABC"))
	require.NoError(t, err)
	res = kmp.Search()
	assert.Equal(t, int64(1), res.PreprocessSteps)
	assert.Equal(t, int64(3), res.ScanSteps)

	opt, err := NewOptimized([]byte("AB"), []byte("ABC"))
	require.NoError(t, err)
	res = opt.Search()
	assert.Equal(t, int64(1+2*2), res.PreprocessSteps)
	assert.Equal(t, int64(3), res.ScanSteps)
	assert.Equal(t, int64(8), res.Steps())
}

func TestKMP_RetriesCountAsSteps(t *testing.T) {
	// "AAB" against "AAAB": the mismatch at j=2 falls back once and re-tests.
	kmp, err := NewKMP([]byte("AAB"), []byte("AAAB"))
	require.NoError(t, err)
	res := kmp.Search()
	assert.Equal(t, []int{1}, res.Offsets)
	assert.Equal(t, int64(5), res.ScanSteps)

	// The optimized scan never retries: one step per symbol.
	opt, err := NewOptimized([]byte("AAB"), []byte("AAAB"))
	require.NoError(t, err)
	assert.Equal(t, int64(4), opt.Search().ScanSteps)
}

func TestMatchers_Idempotent(t *testing.T) {
	for _, m := range newAll(t, "ABA", "XABABAYABA") {
		first := m.Search()
		second := m.Search()
		assert.Equal(t, first, second, "algorithm %s", m.Algorithm())
		assert.Equal(t, []int{1, 3, 7}, second.Offsets)
	}
}

func TestMatchers_ResultIsNotShared(t *testing.T) {
	kmp, err := NewKMP([]byte("A"), []byte("AAA"))
	require.NoError(t, err)
	first := kmp.Search()
	first.Offsets[0] = 99
	assert.Equal(t, []int{0, 1, 2}, kmp.Search().Offsets)
}

func TestMatchers_ElapsedUsesClock(t *testing.T) {
	now := time.Unix(0, 0)
	clock := func() time.Time {
		now = now.Add(5 * time.Millisecond)
		return now
	}
	for _, m := range newAll(t, "AC", "ACAC", WithClock(clock)) {
		assert.Zero(t, m.Elapsed())
		m.Search()
		assert.Equal(t, 5*time.Millisecond, m.Elapsed(), "algorithm %s", m.Algorithm())
	}
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		input   string
		want    Algorithm
		wantErr bool
	}{
		{input: "naive", want: AlgorithmNaive},
		{input: "Brute-Force", want: AlgorithmNaive},
		{input: "KMP", want: AlgorithmKMP},
		{input: " optimized ", want: AlgorithmOptimized},
		{input: "dfa", want: AlgorithmOptimized},
		{input: "boyer-moore", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAlgorithm(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownAlgorithm)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAlgorithms(t *testing.T) {
	algs, err := ParseAlgorithms(nil)
	require.NoError(t, err)
	assert.Equal(t, Algorithms(), algs)

	algs, err = ParseAlgorithms([]string{"kmp", "naive", "KMP"})
	require.NoError(t, err)
	assert.Equal(t, []Algorithm{AlgorithmKMP, AlgorithmNaive}, algs)

	_, err = ParseAlgorithms([]string{"kmp", "rabin-karp"})
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestNew_UnknownAlgorithm(t *testing.T) {
	_, err := New("rabin-karp", []byte("A"), []byte("A"))
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}

func TestAlgorithm_DisplayName(t *testing.T) {
	assert.Equal(t, "Naive", AlgorithmNaive.DisplayName())
	assert.Equal(t, "KMP", AlgorithmKMP.DisplayName())
	assert.Equal(t, "Optimized KMP", AlgorithmOptimized.DisplayName())
	assert.Equal(t, "other", Algorithm("other").DisplayName())
}
