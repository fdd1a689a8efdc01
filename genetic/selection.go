package genetic

import (
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/sourcegraph/conc/pool"

	"github.com/lixenwraith/queen-placement/parameter"
)

// NextGeneration turns one generation into the next under the given
// strategy and mutation probability. The output has the same size as the
// input; the engine keeps no state between calls. Populations smaller
// than two cannot reproduce and are rejected.
func NextGeneration(gen Generation, strategy SelectionStrategy, mutation Probability, rng *rand.Rand) (Generation, error) {
	if len(gen) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrPopulationTooSmall, len(gen))
	}

	switch strategy {
	case AdamAndEve:
		return adamAndEve(gen, mutation, rng), nil
	case KillTheHalf:
		return killTheHalf(gen, mutation, rng), nil
	case Tournament:
		return tournament(gen, mutation, rng), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, uint8(strategy))
	}
}

// Fitnesses evaluates every chromosome in parallel. Slot i of the result
// belongs to gen[i]; tasks share nothing but the immutable generation.
func Fitnesses(gen Generation) []float64 {
	scores := make([]float64, len(gen))
	p := pool.New().WithMaxGoroutines(parameter.Parallelism)
	for i := range gen {
		p.Go(func() {
			scores[i] = NewBoard(&gen[i]).Fitness()
		})
	}
	p.Wait()
	return scores
}

// Best returns the fittest chromosome and its fitness.
func Best(gen Generation) (Chromosome, float64) {
	scores := Fitnesses(gen)
	best := 0
	for i, score := range scores {
		if score > scores[best] {
			best = i
		}
	}
	return gen[best], scores[best]
}

// HasSolution reports whether any chromosome is a conflict-free
// placement.
func HasSolution(gen Generation) bool {
	solved := make([]bool, len(gen))
	p := pool.New().WithMaxGoroutines(parameter.Parallelism)
	for i := range gen {
		p.Go(func() {
			solved[i] = NewBoard(&gen[i]).Solved()
		})
	}
	p.Wait()
	for _, ok := range solved {
		if ok {
			return true
		}
	}
	return false
}

// Solutions returns the distinct conflict-free chromosomes of the
// generation, in first-seen order.
func Solutions(gen Generation) Generation {
	seen := make(map[string]struct{})
	var solutions Generation
	for i := range gen {
		if !NewBoard(&gen[i]).Solved() {
			continue
		}
		key := gen[i].String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		solutions = append(solutions, gen[i])
	}
	return solutions
}

// --- Strategies ---

// adamAndEve is pure elitism: the two fittest individuals survive
// verbatim and the entire rest of the next generation descends from
// exactly that pair.
func adamAndEve(gen Generation, mutation Probability, rng *rand.Rand) Generation {
	scores := Fitnesses(gen)
	first, second := topTwo(scores)
	parent1, parent2 := gen[first], gen[second]

	next := make(Generation, 0, len(gen))
	next = append(next, breed(parent1, parent2, len(gen)-2, mutation, rng)...)
	next = append(next, parent1, parent2)
	return next
}

// killTheHalf culls the bottom half of the fitness-sorted population
// outright. The two fittest survive verbatim, the above-median tier
// (sorted ranks [2, P/2)) survives unchanged, and offspring bred from
// the top pair replace the culled half.
func killTheHalf(gen Generation, mutation Probability, rng *rand.Rand) Generation {
	scores := Fitnesses(gen)
	order := make([]int, len(gen))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	parent1, parent2 := gen[order[0]], gen[order[1]]

	half := len(gen) / 2
	if half < 2 {
		half = 2
	}
	survivors := order[2:half]

	next := make(Generation, 0, len(gen))
	for _, idx := range survivors {
		next = append(next, gen[idx])
	}
	next = append(next, breed(parent1, parent2, len(gen)-2-len(survivors), mutation, rng)...)
	next = append(next, parent1, parent2)
	return next
}

// tournament breeds every offspring slot from the winners of two
// brackets sampled without replacement. No individual survives verbatim;
// the driver tests termination before selecting, so a found solution is
// reported before selection could discard it.
func tournament(gen Generation, mutation Probability, rng *rand.Rand) Generation {
	scores := Fitnesses(gen)
	next := make(Generation, len(gen))
	rngs := spawnRNGs(rng, len(gen))
	p := pool.New().WithMaxGoroutines(parameter.Parallelism)
	for i := range next {
		p.Go(func() {
			taskRNG := rngs[i]
			parent1 := gen[tournamentWinner(scores, taskRNG)]
			parent2 := gen[tournamentWinner(scores, taskRNG)]
			next[i] = Crossover(parent1, parent2, mutation, taskRNG)
		})
	}
	p.Wait()
	return next
}

// breed generates count offspring from a fixed parent pair, one
// independent generator per task. The parents are shared read-only
// across all tasks and every task writes only its own slot, so the
// fan-out needs no locking.
func breed(parent1, parent2 Chromosome, count int, mutation Probability, rng *rand.Rand) []Chromosome {
	offspring := make([]Chromosome, count)
	rngs := spawnRNGs(rng, count)
	p := pool.New().WithMaxGoroutines(parameter.Parallelism)
	for i := 0; i < count; i++ {
		p.Go(func() {
			offspring[i] = Crossover(parent1, parent2, mutation, rngs[i])
		})
	}
	p.Wait()
	return offspring
}

// topTwo returns the indices of the two best scores, ties broken by
// discovery order.
func topTwo(scores []float64) (first, second int) {
	first, second = 0, 1
	if scores[second] > scores[first] {
		first, second = second, first
	}
	for i := 2; i < len(scores); i++ {
		switch {
		case scores[i] > scores[first]:
			first, second = i, first
		case scores[i] > scores[second]:
			second = i
		}
	}
	return first, second
}

// tournamentWinner samples a bracket of distinct individuals and returns
// the index of its fittest member.
func tournamentWinner(scores []float64, rng *rand.Rand) int {
	k := parameter.TournamentSize
	if k > len(scores) {
		k = len(scores)
	}
	winner := -1
	for _, idx := range rng.Perm(len(scores))[:k] {
		if winner < 0 || scores[idx] > scores[winner] {
			winner = idx
		}
	}
	return winner
}
