package genetic

import (
	"errors"
	"fmt"
	"math"
)

// --- Core Types ---

// Gene is the column index assigned to one row of the board.
type Gene int

// Chromosome encodes a full board layout: position is the row, the gene
// value at that position is the column of the queen in that row.
// The gene sequence is always a permutation of 0..N, which makes row and
// column attacks structurally impossible. Chromosomes are immutable after
// construction; mutation produces a new Chromosome.
type Chromosome struct {
	genes []Gene
}

// Generation is one fixed-size population of chromosomes. Slot order is
// deterministic so parallel aggregation stays reproducible under a fixed
// seed.
type Generation []Chromosome

// Probability is a scalar in the closed interval [0, 1].
// Construct through NewProbability; out-of-range values are rejected,
// never clamped.
type Probability float64

// NewProbability validates v and wraps it.
func NewProbability(v float64) (Probability, error) {
	if math.IsNaN(v) || v < 0.0 || v > 1.0 {
		return 0, fmt.Errorf("probability %v is outside [0, 1]", v)
	}
	return Probability(v), nil
}

// --- Selection Strategies ---

// SelectionStrategy selects the reproduction policy governing one
// generation transition.
type SelectionStrategy uint8

const (
	// AdamAndEve keeps the two fittest individuals and breeds the entire
	// rest of the next generation from exactly that pair.
	AdamAndEve SelectionStrategy = iota

	// KillTheHalf culls the bottom half of the sorted population outright,
	// keeps the two fittest unchanged, and refills from that pair.
	KillTheHalf

	// Tournament breeds every offspring from the winners of two
	// sample-without-replacement tournaments.
	Tournament
)

func (s SelectionStrategy) String() string {
	switch s {
	case AdamAndEve:
		return "adam-and-eve"
	case KillTheHalf:
		return "kill-the-half"
	case Tournament:
		return "tournament"
	default:
		return fmt.Sprintf("selection-strategy(%d)", uint8(s))
	}
}

// ParseSelectionStrategy maps a CLI spelling back to its strategy.
func ParseSelectionStrategy(s string) (SelectionStrategy, error) {
	switch s {
	case "adam-and-eve":
		return AdamAndEve, nil
	case "kill-the-half":
		return KillTheHalf, nil
	case "tournament":
		return Tournament, nil
	default:
		return 0, fmt.Errorf("%w: %q (valid: adam-and-eve, kill-the-half, tournament)", ErrUnknownStrategy, s)
	}
}

// --- Errors ---

var (
	// ErrPopulationTooSmall is returned when a generation transition is
	// requested for fewer than two individuals.
	ErrPopulationTooSmall = errors.New("population must hold at least two chromosomes")

	// ErrUnknownStrategy is returned for a strategy value outside the
	// closed enumeration.
	ErrUnknownStrategy = errors.New("unknown selection strategy")
)
