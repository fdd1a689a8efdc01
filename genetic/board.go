package genetic

import (
	"github.com/sourcegraph/conc/pool"

	"github.com/lixenwraith/queen-placement/parameter"
)

// Board is a read-only, non-owning view over a chromosome that scores
// queen conflicts. It never mutates the chromosome and holds no state of
// its own, so one chromosome may back any number of concurrent boards.
type Board struct {
	chromosome *Chromosome
}

// NewBoard wraps c without copying it.
func NewBoard(c *Chromosome) Board {
	return Board{chromosome: c}
}

// Chromosome returns the underlying chromosome.
func (b Board) Chromosome() *Chromosome {
	return b.chromosome
}

// beaten reports whether the queen on row i is attacked by any other
// queen: same column, or offset along a diagonal by equal row and column
// distance.
func (b Board) beaten(i int) bool {
	genes := b.chromosome.genes
	queen := genes[i]
	for j, other := range genes {
		if i == j {
			continue
		}
		if queen == other || absDiff(i, j) == absDiff(int(queen), int(other)) {
			return true
		}
	}
	return false
}

// HasBeats reports whether any queen is under attack. It short-circuits
// on the first conflict.
func (b Board) HasBeats() bool {
	for i := range b.chromosome.genes {
		if b.beaten(i) {
			return true
		}
	}
	return false
}

// BeatsCount counts the queens attacked by at least one other queen —
// attacked queens, not attack pairs, so a mutually attacking pair counts
// as two. Boards past the scan threshold split the rows across
// goroutines; every task writes only its own slots and reads only the
// immutable genes, so no coordination is needed.
func (b Board) BeatsCount() int {
	n := len(b.chromosome.genes)
	if n < parameter.DiagonalScanThreshold {
		count := 0
		for i := 0; i < n; i++ {
			if b.beaten(i) {
				count++
			}
		}
		return count
	}

	beaten := make([]bool, n)
	chunk := (n + parameter.Parallelism - 1) / parameter.Parallelism
	p := pool.New().WithMaxGoroutines(parameter.Parallelism)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		p.Go(func() {
			for i := lo; i < hi; i++ {
				beaten[i] = b.beaten(i)
			}
		})
	}
	p.Wait()

	count := 0
	for _, hit := range beaten {
		if hit {
			count++
		}
	}
	return count
}

// Fitness normalizes the conflict count into (0, 1].
//
// The goal is to maximize the function to be 1: 1.0 means a valid
// placement, and the value strictly decreases as more queens are
// attacked, which gives selection a gradient instead of a boolean.
func (b Board) Fitness() float64 {
	return 1.0 / (float64(b.BeatsCount()) + 1.0)
}

// Solved reports a conflict-free placement, equivalent to Fitness() == 1.
func (b Board) Solved() bool {
	return !b.HasBeats()
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
