package match

import (
	"github.com/axicon-labs/constable/pkg/document"
	"github.com/axicon-labs/constable/pkg/registry"
)

// Engine matches tokens against one immutable registry index. The engine
// holds no mutable state, so a single instance serves concurrent callers.
type Engine struct {
	index      *registry.Index
	strategies []Strategy
	tolerances Tolerances
	nearMisses bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithTolerances overrides the default tier tolerances.
func WithTolerances(tol Tolerances) Option {
	return func(e *Engine) {
		e.tolerances = tol
	}
}

// WithNearMisses keeps evaluating lower tiers after a token is claimed
// and records their candidates, flagged, for audit transparency.
func WithNearMisses(enabled bool) Option {
	return func(e *Engine) {
		e.nearMisses = enabled
	}
}

// WithStrategies replaces the tier list. Order is significant: earlier
// strategies claim tokens first.
func WithStrategies(strategies ...Strategy) Option {
	return func(e *Engine) {
		e.strategies = strategies
	}
}

// NewEngine creates an Engine over the given index.
func NewEngine(idx *registry.Index, opts ...Option) *Engine {
	e := &Engine{
		index:      idx,
		strategies: DefaultStrategies(),
		tolerances: DefaultTolerances(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Tolerances returns the tolerances the engine evaluates with.
func (e *Engine) Tolerances() Tolerances {
	return e.tolerances
}

// Match runs the token through the tiers in order. The first tier that
// produces candidates wins; later tiers are evaluated only when near-miss
// recording is on, and their candidates never repeat a path already
// claimed at a higher tier.
func (e *Engine) Match(tok document.Token) Match {
	m := Match{Token: tok}
	seen := make(map[registry.Path]struct{})

	for _, strat := range e.strategies {
		cands := strat.Evaluate(tok, e.index, e.tolerances)
		if len(cands) == 0 {
			continue
		}

		if !m.Matched() {
			m.Tier = strat.Tier()
			m.Candidates = cands
			for _, c := range cands {
				seen[c.Path] = struct{}{}
			}
			if !e.nearMisses {
				return m
			}
			continue
		}

		for _, c := range cands {
			if _, dup := seen[c.Path]; dup {
				continue
			}
			seen[c.Path] = struct{}{}
			c.NearMiss = true
			m.NearMisses = append(m.NearMisses, c)
		}
	}
	return m
}

// MatchAll matches every token in order.
func (e *Engine) MatchAll(tokens []document.Token) []Match {
	out := make([]Match, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, e.Match(tok))
	}
	return out
}
