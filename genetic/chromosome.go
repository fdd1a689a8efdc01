package genetic

import (
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/lixenwraith/queen-placement/parameter"
)

// NewChromosome builds a uniformly random permutation of 0..boardSize.
func NewChromosome(boardSize int, rng *rand.Rand) Chromosome {
	genes := make([]Gene, boardSize)
	for i := range genes {
		genes[i] = Gene(i)
	}
	rng.Shuffle(len(genes), func(i, j int) {
		genes[i], genes[j] = genes[j], genes[i]
	})
	return Chromosome{genes: genes}
}

// FromGenes wraps an explicit gene sequence, copying it so the caller
// keeps ownership. It does not enforce the permutation invariant; the
// evaluator must hold for arbitrary sequences (the conflict fixtures
// exercise duplicate columns).
func FromGenes(genes []Gene) Chromosome {
	owned := make([]Gene, len(genes))
	copy(owned, genes)
	return Chromosome{genes: owned}
}

// Genes returns a copy of the gene sequence; the chromosome's own genes
// stay unreachable.
func (c Chromosome) Genes() []Gene {
	genes := make([]Gene, len(c.genes))
	copy(genes, c.genes)
	return genes
}

// Len returns the board size.
func (c Chromosome) Len() int {
	return len(c.genes)
}

// Equal reports gene-for-gene equality.
func (c Chromosome) Equal(other Chromosome) bool {
	if len(c.genes) != len(other.genes) {
		return false
	}
	for i, g := range c.genes {
		if g != other.genes[i] {
			return false
		}
	}
	return true
}

// String renders the genes space-separated, e.g. "1 3 0 2".
func (c Chromosome) String() string {
	var sb strings.Builder
	for i, g := range c.genes {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(int(g)))
	}
	return sb.String()
}

// NewGeneration seeds populationSize random chromosomes of the given
// board size in parallel. Each task owns an independent generator derived
// from rng, so seeding is reproducible for a fixed seed and free of
// generator contention.
func NewGeneration(boardSize, populationSize int, rng *rand.Rand) Generation {
	gen := make(Generation, populationSize)
	rngs := spawnRNGs(rng, populationSize)
	p := pool.New().WithMaxGoroutines(parameter.Parallelism)
	for i := 0; i < populationSize; i++ {
		p.Go(func() {
			gen[i] = NewChromosome(boardSize, rngs[i])
		})
	}
	p.Wait()
	return gen
}

// spawnRNGs derives n independent PCG generators from parent. Seed words
// are drawn serially up front; after that the generators share no state.
func spawnRNGs(parent *rand.Rand, n int) []*rand.Rand {
	rngs := make([]*rand.Rand, n)
	for i := range rngs {
		rngs[i] = rand.New(rand.NewPCG(parent.Uint64(), parent.Uint64()))
	}
	return rngs
}
