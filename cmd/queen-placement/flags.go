package main

import (
	"strconv"

	"github.com/lixenwraith/queen-placement/genetic"
)

// probabilityValue adapts genetic.Probability to pflag.Value so
// out-of-range values are rejected while flags are parsed, never inside
// the engine.
type probabilityValue genetic.Probability

func (p *probabilityValue) String() string {
	return strconv.FormatFloat(float64(*p), 'g', -1, 64)
}

func (p *probabilityValue) Set(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	prob, err := genetic.NewProbability(v)
	if err != nil {
		return err
	}
	*p = probabilityValue(prob)
	return nil
}

func (p *probabilityValue) Type() string {
	return "probability"
}

// strategyValue adapts genetic.SelectionStrategy to pflag.Value; the
// error for an unknown spelling lists the valid ones.
type strategyValue genetic.SelectionStrategy

func (s *strategyValue) String() string {
	return genetic.SelectionStrategy(*s).String()
}

func (s *strategyValue) Set(v string) error {
	strategy, err := genetic.ParseSelectionStrategy(v)
	if err != nil {
		return err
	}
	*s = strategyValue(strategy)
	return nil
}

func (s *strategyValue) Type() string {
	return "strategy"
}
