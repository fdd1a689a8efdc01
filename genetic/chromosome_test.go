package genetic

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requirePermutation asserts genes is a permutation of 0..len(genes).
func requirePermutation(t *testing.T, genes []Gene) {
	t.Helper()
	seen := make([]bool, len(genes))
	for _, g := range genes {
		require.GreaterOrEqual(t, int(g), 0)
		require.Less(t, int(g), len(genes))
		require.False(t, seen[g], "duplicate gene %d", g)
		seen[g] = true
	}
}

func TestNewChromosome_IsPermutation(t *testing.T) {
	for _, seed := range []uint64{1, 2, 3, 42, 1000} {
		rng := rand.New(rand.NewPCG(seed, seed))
		for size := 2; size <= 32; size++ {
			c := NewChromosome(size, rng)
			require.Equal(t, size, c.Len())
			requirePermutation(t, c.Genes())
		}
	}
}

func TestChromosome_GenesIsACopy(t *testing.T) {
	c := FromGenes([]Gene{1, 3, 0, 2})
	genes := c.Genes()
	genes[0] = 99
	assert.Equal(t, []Gene{1, 3, 0, 2}, c.Genes())
}

func TestFromGenes_CopiesInput(t *testing.T) {
	input := []Gene{0, 2, 4}
	c := FromGenes(input)
	input[0] = 99
	assert.Equal(t, []Gene{0, 2, 4}, c.Genes())
}

func TestChromosome_String(t *testing.T) {
	assert.Equal(t, "1 3 0 2", FromGenes([]Gene{1, 3, 0, 2}).String())
	assert.Equal(t, "", FromGenes(nil).String())
}

func TestChromosome_Equal(t *testing.T) {
	a := FromGenes([]Gene{1, 3, 0, 2})
	b := FromGenes([]Gene{1, 3, 0, 2})
	c := FromGenes([]Gene{2, 0, 3, 1})
	short := FromGenes([]Gene{1, 3, 0})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(short))
}

func TestNewGeneration(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 5))
	gen := NewGeneration(8, 40, rng)

	require.Len(t, gen, 40)
	for _, c := range gen {
		require.Equal(t, 8, c.Len())
		requirePermutation(t, c.Genes())
	}
}

func TestNewGeneration_DeterministicForSeed(t *testing.T) {
	first := NewGeneration(8, 20, rand.New(rand.NewPCG(9, 9)))
	second := NewGeneration(8, 20, rand.New(rand.NewPCG(9, 9)))

	require.Len(t, second, len(first))
	for i := range first {
		assert.True(t, first[i].Equal(second[i]), "slot %d diverged", i)
	}
}
