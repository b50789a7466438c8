package matching

import (
	"bytes"
	"math/rand"
	"testing"
)

func benchmarkInputs(n int) (pattern, text []byte) {
	r := rand.New(rand.NewSource(42<<32 | 42))
	text = randomBytes(r, n, "ACGT")
	pattern = bytes.Clone(text[n/2 : n/2+24])
	return pattern, text
}

// Worst case for the naive scan: long runs of one symbol.
func adversarialInputs(n int) (pattern, text []byte) {
	pattern = append(bytes.Repeat([]byte("A"), 31), 'C')
	text = bytes.Repeat([]byte("A"), n)
	return pattern, text
}

func benchmarkMatcher(b *testing.B, alg Algorithm, pattern, text []byte, opts ...Option) {
	b.SetBytes(int64(len(text)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m, err := New(alg, pattern, text, opts...)
		if err != nil {
			b.Fatal(err)
		}
		_ = m.Search()
	}
}

func BenchmarkNaive_Random(b *testing.B) {
	pattern, text := benchmarkInputs(1 << 20)
	benchmarkMatcher(b, AlgorithmNaive, pattern, text)
}

func BenchmarkKMP_Random(b *testing.B) {
	pattern, text := benchmarkInputs(1 << 20)
	benchmarkMatcher(b, AlgorithmKMP, pattern, text)
}

func BenchmarkOptimized_Random(b *testing.B) {
	pattern, text := benchmarkInputs(1 << 20)
	benchmarkMatcher(b, AlgorithmOptimized, pattern, text)
}

func BenchmarkOptimizedDense_Random(b *testing.B) {
	pattern, text := benchmarkInputs(1 << 20)
	benchmarkMatcher(b, AlgorithmOptimized, pattern, text, WithDenseTable())
}

func BenchmarkNaive_Adversarial(b *testing.B) {
	pattern, text := adversarialInputs(1 << 18)
	benchmarkMatcher(b, AlgorithmNaive, pattern, text)
}

func BenchmarkKMP_Adversarial(b *testing.B) {
	pattern, text := adversarialInputs(1 << 18)
	benchmarkMatcher(b, AlgorithmKMP, pattern, text)
}

func BenchmarkOptimizedDense_Adversarial(b *testing.B) {
	pattern, text := adversarialInputs(1 << 18)
	benchmarkMatcher(b, AlgorithmOptimized, pattern, text, WithDenseTable())
}

func BenchmarkBuildTransitionTable(b *testing.B) {
	pattern := bytes.Repeat([]byte("ACGTACGA"), 64)
	failure := BuildFailureFunction(pattern)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = BuildTransitionTable(pattern, failure)
	}
}

func BenchmarkBuildDenseTransitionTable(b *testing.B) {
	pattern := bytes.Repeat([]byte("ACGTACGA"), 64)
	failure := BuildFailureFunction(pattern)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = BuildDenseTransitionTable(pattern, failure)
	}
}
