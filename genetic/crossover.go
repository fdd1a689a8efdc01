package genetic

import (
	"fmt"
	"math/rand/v2"
)

// Crossover produces one offspring from two parents of equal length.
//
// With probability mutation the offspring is a brand-new random
// permutation, a catastrophic mutation that discards all inherited
// structure. Otherwise every position where both parents carry the same
// gene is copied verbatim (schema both parents agree on survives), and
// the gene values unused by those positions are shuffled into the
// remaining positions. Agreed values are distinct because each parent is
// itself a permutation, and the fill set is exactly their complement, so
// either branch yields a permutation of 0..N.
//
// Parents of different lengths are a caller contract breach and panic.
func Crossover(parent1, parent2 Chromosome, mutation Probability, rng *rand.Rand) Chromosome {
	if parent1.Len() != parent2.Len() {
		panic(fmt.Sprintf("genetic: crossover parents of different lengths %d and %d",
			parent1.Len(), parent2.Len()))
	}

	if rng.Float64() < float64(mutation) {
		return NewChromosome(parent1.Len(), rng)
	}

	n := parent1.Len()
	genes := make([]Gene, n)
	used := make([]bool, n)
	agreed := make([]bool, n)
	for i, g := range parent1.genes {
		if g == parent2.genes[i] {
			genes[i] = g
			used[g] = true
			agreed[i] = true
		}
	}

	free := make([]Gene, 0, n)
	for v := 0; v < n; v++ {
		if !used[v] {
			free = append(free, Gene(v))
		}
	}
	rng.Shuffle(len(free), func(i, j int) {
		free[i], free[j] = free[j], free[i]
	})

	next := 0
	for i := range genes {
		if !agreed[i] {
			genes[i] = free[next]
			next++
		}
	}
	return Chromosome{genes: genes}
}
