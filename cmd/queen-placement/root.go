package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"runtime/debug"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/queen-placement/genetic"
	"github.com/lixenwraith/queen-placement/parameter"
	"github.com/lixenwraith/queen-placement/render"
)

type options struct {
	boardSize      int
	generationSize int
	mutation       probabilityValue
	strategy       strategyValue
	seed           uint64
	plain          bool
}

func newRootCommand() *cobra.Command {
	opts := &options{
		mutation: probabilityValue(parameter.DefaultMutationProbability),
		strategy: strategyValue(genetic.AdamAndEve),
	}

	cmd := &cobra.Command{
		Use:          "queen-placement",
		Short:        "Place N queens on an NxN board with a genetic algorithm",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	cmd.Flags().IntVarP(&opts.boardSize, "board-size", "b",
		parameter.DefaultBoardSize, "size of the chess board")
	cmd.Flags().IntVarP(&opts.generationSize, "generation-size", "g",
		parameter.DefaultGenerationSize, "size of the population in one generation")
	cmd.Flags().VarP(&opts.mutation, "mutation-probability", "p",
		"probability of mutation in [0, 1]")
	cmd.Flags().VarP(&opts.strategy, "selection-strategy", "s",
		"strategy for selecting the best individuals for the next generation (adam-and-eve, kill-the-half, tournament)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0,
		"random seed for reproducible runs (0 seeds from entropy)")
	cmd.Flags().BoolVar(&opts.plain, "plain", false,
		"log progress instead of drawing the live board")
	return cmd
}

func run(opts *options) error {
	// The engine is only ever handed valid configurations; sizes are
	// refused here before any population exists.
	if opts.boardSize < 1 {
		return fmt.Errorf("board size must be at least 1, got %d", opts.boardSize)
	}
	if opts.generationSize < 2 {
		return fmt.Errorf("generation size must be at least 2, got %d", opts.generationSize)
	}

	var rng *rand.Rand
	if opts.seed == 0 {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	} else {
		rng = rand.New(rand.NewPCG(opts.seed, opts.seed))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if opts.plain {
		return runPlain(ctx, opts, rng)
	}
	return runLive(ctx, opts, rng)
}

// runLive drives the search with the tcell progress view and prints the
// distinct solutions once the loop terminates.
func runLive(ctx context.Context, opts *options, rng *rand.Rand) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	display, err := render.NewDisplay(cancel)
	if err != nil {
		return fmt.Errorf("initialize display: %w", err)
	}

	// Restore the terminal before reporting a crash, otherwise the stack
	// trace lands on a raw-mode screen.
	defer func() {
		if r := recover(); r != nil {
			display.Close()
			fmt.Fprintf(os.Stderr, "queen-placement crashed: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	gen := genetic.NewGeneration(opts.boardSize, opts.generationSize, rng)
	count := 1
	best, fitness := genetic.Best(gen)
	display.Update(count, best, fitness)

	for !genetic.HasSolution(gen) {
		if ctx.Err() != nil {
			display.Close()
			fmt.Printf("interrupted after %d generations, best fitness %.4f\n", count, fitness)
			return nil
		}

		gen, err = genetic.NextGeneration(gen,
			genetic.SelectionStrategy(opts.strategy), genetic.Probability(opts.mutation), rng)
		if err != nil {
			display.Close()
			return err
		}
		count++
		best, fitness = genetic.Best(gen)
		display.Update(count, best, fitness)
	}

	display.Close()
	printSolutions(gen, count, render.Styled)
	return nil
}

// runPlain drives the same loop without a terminal screen, logging one
// line per generation. Used for dumb terminals and piped output.
func runPlain(ctx context.Context, opts *options, rng *rand.Rand) error {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	defer logger.Sync()
	log := logger.Sugar()

	log.Infow("starting search",
		"board_size", opts.boardSize,
		"generation_size", opts.generationSize,
		"mutation_probability", float64(opts.mutation),
		"selection_strategy", genetic.SelectionStrategy(opts.strategy).String(),
		"seed", opts.seed,
	)

	gen := genetic.NewGeneration(opts.boardSize, opts.generationSize, rng)
	count := 1

	for !genetic.HasSolution(gen) {
		best, fitness := genetic.Best(gen)
		log.Infow("generation evolved",
			"generation", count,
			"best_fitness", fitness,
			"best", best.String(),
		)

		if ctx.Err() != nil {
			log.Infow("interrupted", "generation", count, "best_fitness", fitness)
			return nil
		}

		gen, err = genetic.NextGeneration(gen,
			genetic.SelectionStrategy(opts.strategy), genetic.Probability(opts.mutation), rng)
		if err != nil {
			return err
		}
		count++
	}

	log.Infow("solution found", "generation", count)
	printSolutions(gen, count, render.Plain)
	return nil
}

func printSolutions(gen genetic.Generation, generations int, draw func(genetic.Chromosome) string) {
	for _, solution := range genetic.Solutions(gen) {
		fmt.Printf("%s\n%s(%d generations)\n\n", solution, draw(solution), generations)
	}
}
