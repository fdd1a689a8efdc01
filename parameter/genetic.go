package parameter

// Genetic Algorithm - Engine Configuration
const (
	// DefaultBoardSize is the side length of the chess board
	DefaultBoardSize = 8

	// DefaultGenerationSize is the number of chromosomes per generation
	DefaultGenerationSize = 100

	// DefaultMutationProbability is the chance an offspring is replaced by
	// a fresh random permutation instead of a crossover product (0.0-1.0)
	DefaultMutationProbability = 0.1

	// TournamentSize is the bracket size for tournament selection pressure
	TournamentSize = 3
)

// Genetic Algorithm - Parallelism
const (
	// Parallelism bounds goroutine fan-out for batch evaluation and
	// offspring generation
	Parallelism = 8

	// DiagonalScanThreshold is the minimum board size before the pairwise
	// conflict scan inside one board is split across goroutines; below it
	// the serial scan wins on overhead
	DiagonalScanThreshold = 64
)
