package ordering_test

import (
	"testing"

	"github.com/katalvlaran/factree/builder"
	"github.com/katalvlaran/factree/core"
	"github.com/katalvlaran/factree/ordering"
)

// benchmarkCompute is a helper that orders an anchored rows×cols grid with
// the given strategy. It builds the graph and its variable index outside
// the timed loop and fails on unexpected errors.
func benchmarkCompute(b *testing.B, rows, cols int, algo ordering.Algorithm) {
	g, err := builder.Grid(rows, cols)
	if err != nil {
		b.Fatalf("grid %dx%d: %v", rows, cols, err)
	}
	vi, err := core.NewVariableIndex(g)
	if err != nil {
		b.Fatalf("variable index: %v", err)
	}

	b.ResetTimer() // ignore setup time
	for i := 0; i < b.N; i++ {
		if _, err := ordering.Compute(vi, algo); err != nil {
			b.Fatalf("%s failed: %v", algo, err)
		}
	}
}

// BenchmarkCompute_MinFillSmall benchmarks the greedy fill heuristic on a
// 10×10 grid (100 variables).
func BenchmarkCompute_MinFillSmall(b *testing.B) {
	benchmarkCompute(b, 10, 10, ordering.MinFillOrder)
}

// BenchmarkCompute_MinFillMedium benchmarks MinFill on a 20×20 grid
// (400 variables), where the fill bookkeeping dominates.
func BenchmarkCompute_MinFillMedium(b *testing.B) {
	benchmarkCompute(b, 20, 20, ordering.MinFillOrder)
}

// BenchmarkCompute_NestedDissectionSmall benchmarks the recursive separator
// strategy on a 10×10 grid.
func BenchmarkCompute_NestedDissectionSmall(b *testing.B) {
	benchmarkCompute(b, 10, 10, ordering.NestedDissectionOrder)
}

// BenchmarkCompute_NestedDissectionMedium benchmarks NestedDissection on a
// 20×20 grid.
func BenchmarkCompute_NestedDissectionMedium(b *testing.B) {
	benchmarkCompute(b, 20, 20, ordering.NestedDissectionOrder)
}

// BenchmarkCompute_NaturalMedium benchmarks the index-order baseline on a
// 20×20 grid; it only copies the key slice.
func BenchmarkCompute_NaturalMedium(b *testing.B) {
	benchmarkCompute(b, 20, 20, ordering.NaturalOrder)
}
