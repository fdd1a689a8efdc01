package genetic

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Two of the 4-queens solutions, used as known fitness-1.0 individuals.
var (
	solutionA = []Gene{1, 3, 0, 2}
	solutionB = []Gene{2, 0, 3, 1}
)

func containsChromosome(gen Generation, genes []Gene) bool {
	want := FromGenes(genes)
	for _, c := range gen {
		if c.Equal(want) {
			return true
		}
	}
	return false
}

func TestNextGeneration_RejectsTinyPopulations(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))

	for _, gen := range []Generation{nil, {FromGenes(solutionA)}} {
		_, err := NextGeneration(gen, AdamAndEve, 0.1, rng)
		require.ErrorIs(t, err, ErrPopulationTooSmall)
	}
}

func TestNextGeneration_RejectsUnknownStrategy(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	gen := NewGeneration(4, 4, rng)

	_, err := NextGeneration(gen, SelectionStrategy(9), 0.1, rng)
	require.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestAdamAndEve_KeepsTopTwoVerbatim(t *testing.T) {
	gen := Generation{
		FromGenes([]Gene{0, 1, 2, 3}),
		FromGenes(solutionA),
		FromGenes([]Gene{3, 2, 1, 0}),
		FromGenes(solutionB),
		FromGenes([]Gene{0, 2, 1, 3}),
		FromGenes([]Gene{3, 1, 2, 0}),
	}
	rng := rand.New(rand.NewPCG(3, 3))

	next, err := NextGeneration(gen, AdamAndEve, 0.1, rng)
	require.NoError(t, err)
	require.Len(t, next, len(gen))
	assert.True(t, containsChromosome(next, solutionA))
	assert.True(t, containsChromosome(next, solutionB))
}

func TestKillTheHalf_KeepsTopTwoVerbatim(t *testing.T) {
	gen := Generation{
		FromGenes([]Gene{0, 1, 2, 3}),
		FromGenes(solutionA),
		FromGenes([]Gene{3, 2, 1, 0}),
		FromGenes(solutionB),
		FromGenes([]Gene{0, 2, 1, 3}),
		FromGenes([]Gene{3, 1, 2, 0}),
	}
	rng := rand.New(rand.NewPCG(5, 5))

	next, err := NextGeneration(gen, KillTheHalf, 0.1, rng)
	require.NoError(t, err)
	require.Len(t, next, len(gen))
	assert.True(t, containsChromosome(next, solutionA))
	assert.True(t, containsChromosome(next, solutionB))
}

// Every strategy must return exactly as many chromosomes as it was
// given, for even and odd sizes down to the minimum.
func TestNextGeneration_PreservesPopulationSize(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))

	for _, strategy := range []SelectionStrategy{AdamAndEve, KillTheHalf, Tournament} {
		t.Run(strategy.String(), func(t *testing.T) {
			for _, size := range []int{2, 3, 4, 5, 7, 10, 33, 100} {
				gen := NewGeneration(6, size, rng)
				next, err := NextGeneration(gen, strategy, 0.1, rng)
				require.NoError(t, err)
				assert.Len(t, next, size, "population size %d", size)
			}
		})
	}
}

// A population of identical solved individuals stays solved under every
// strategy when mutation is off.
func TestNextGeneration_SolvedPopulationStaysSolved(t *testing.T) {
	rng := rand.New(rand.NewPCG(9, 9))

	for _, strategy := range []SelectionStrategy{AdamAndEve, KillTheHalf, Tournament} {
		t.Run(strategy.String(), func(t *testing.T) {
			gen := make(Generation, 10)
			for i := range gen {
				gen[i] = FromGenes(solutionA)
			}

			next, err := NextGeneration(gen, strategy, 0, rng)
			require.NoError(t, err)
			require.Len(t, next, 10)
			for i := range next {
				assert.Equal(t, 1.0, NewBoard(&next[i]).Fitness(), "slot %d", i)
			}
		})
	}
}

func TestNextGeneration_OffspringKeepPermutationInvariant(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 11))

	for _, strategy := range []SelectionStrategy{AdamAndEve, KillTheHalf, Tournament} {
		gen := NewGeneration(8, 30, rng)
		next, err := NextGeneration(gen, strategy, 0.2, rng)
		require.NoError(t, err)
		for _, c := range next {
			requirePermutation(t, c.Genes())
		}
	}
}

func TestFitnesses_MatchesPerBoardEvaluation(t *testing.T) {
	rng := rand.New(rand.NewPCG(13, 13))
	gen := NewGeneration(7, 25, rng)

	scores := Fitnesses(gen)
	require.Len(t, scores, len(gen))
	for i := range gen {
		assert.Equal(t, NewBoard(&gen[i]).Fitness(), scores[i], "slot %d", i)
	}
}

func TestBest_PicksMaximumFitness(t *testing.T) {
	gen := Generation{
		FromGenes([]Gene{0, 1, 2, 3}),
		FromGenes(solutionA),
		FromGenes([]Gene{3, 2, 1, 0}),
	}

	best, fitness := Best(gen)
	assert.Equal(t, 1.0, fitness)
	assert.True(t, best.Equal(FromGenes(solutionA)))
}

func TestHasSolution(t *testing.T) {
	unsolved := Generation{
		FromGenes([]Gene{0, 1, 2, 3}),
		FromGenes([]Gene{3, 2, 1, 0}),
	}
	assert.False(t, HasSolution(unsolved))

	assert.True(t, HasSolution(append(unsolved, FromGenes(solutionA))))
}

func TestSolutions_DistinctSolvedOnly(t *testing.T) {
	gen := Generation{
		FromGenes(solutionA),
		FromGenes([]Gene{0, 1, 2, 3}),
		FromGenes(solutionB),
		FromGenes(solutionA),
	}

	solutions := Solutions(gen)
	require.Len(t, solutions, 2)
	assert.True(t, solutions[0].Equal(FromGenes(solutionA)))
	assert.True(t, solutions[1].Equal(FromGenes(solutionB)))
}

func TestTopTwo_TieBrokenByDiscoveryOrder(t *testing.T) {
	first, second := topTwo([]float64{0.5, 1.0, 1.0, 0.25})
	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestTournamentWinner_PicksFittestOfBracket(t *testing.T) {
	rng := rand.New(rand.NewPCG(17, 17))
	scores := []float64{0.1, 0.2, 1.0}

	// Bracket size covers the whole population here, so the winner is
	// always the global maximum.
	for trial := 0; trial < 20; trial++ {
		assert.Equal(t, 2, tournamentWinner(scores, rng))
	}
}

func TestEndToEnd_FourQueens(t *testing.T) {
	for _, strategy := range []SelectionStrategy{AdamAndEve, KillTheHalf} {
		t.Run(strategy.String(), func(t *testing.T) {
			rng := rand.New(rand.NewPCG(31, 31))
			mutation, err := NewProbability(0.1)
			require.NoError(t, err)

			gen := NewGeneration(4, 50, rng)
			generations := 1
			for !HasSolution(gen) {
				require.Less(t, generations, 5000, "no solution within generation bound")
				gen, err = NextGeneration(gen, strategy, mutation, rng)
				require.NoError(t, err)
				generations++
			}

			solutions := Solutions(gen)
			require.NotEmpty(t, solutions)
			for i := range solutions {
				requirePermutation(t, solutions[i].Genes())
				assert.True(t, NewBoard(&solutions[i]).Solved())
			}
		})
	}
}

func TestNewProbability(t *testing.T) {
	for _, valid := range []float64{0, 0.1, 0.5, 1} {
		p, err := NewProbability(valid)
		require.NoError(t, err)
		assert.Equal(t, Probability(valid), p)
	}

	for _, invalid := range []float64{-0.01, 1.01, -5, 100, math.NaN()} {
		_, err := NewProbability(invalid)
		assert.Error(t, err, "value %v", invalid)
	}
}

func TestSelectionStrategy_RoundTrip(t *testing.T) {
	for _, strategy := range []SelectionStrategy{AdamAndEve, KillTheHalf, Tournament} {
		parsed, err := ParseSelectionStrategy(strategy.String())
		require.NoError(t, err)
		assert.Equal(t, strategy, parsed)
	}

	_, err := ParseSelectionStrategy("roulette")
	require.ErrorIs(t, err, ErrUnknownStrategy)
}
