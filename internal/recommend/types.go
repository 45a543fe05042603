// Package recommend implements the deterministic two-stage recommendation
// pipeline: hard pre-filter, weighted multi-criteria scoring, and the
// threshold-based top-pick/alternate split.
package recommend

import (
	"gearmatch/internal/domain"
)

// Outcome is one rule's verdict for one product. Score is partial credit in
// [0, MaxScore]. Reason is surfaced when the rule contributed positively,
// Concern when it flags a risk or scored low.
type Outcome struct {
	Score    float64
	MaxScore float64
	Details  string
	Reason   string
	Concern  string
}

// Rule is a stateless, pure scoring dimension for one category.
type Rule struct {
	ID       string
	MaxScore float64
	Evaluate func(domain.Answers, domain.Product) Outcome
}

// Predicate is a hard eliminate-or-keep check run before scoring. Predicates
// are total over (answers, product); an absent answer means "no constraint"
// and must keep the product.
type Predicate struct {
	ID   string
	Keep func(domain.Answers, domain.Product) bool
}

// FilterResult is the pre-filter stage's output.
type FilterResult struct {
	Filtered   []domain.Product
	Eliminated int
	Total      int
}

// Options tunes the scoring and split stages. Zero values take defaults.
type Options struct {
	MinScore      int `json:"minScore,omitempty"`
	TopPickCount  int `json:"topPickCount,omitempty"`
	FallbackCount int `json:"fallbackCount,omitempty"`
	ReasonCount   int `json:"reasonCount,omitempty"`
	ConcernCount  int `json:"concernCount,omitempty"`
}

const (
	defaultMinScore      = 50
	defaultTopPickCount  = 3
	defaultFallbackCount = 5
	defaultReasonCount   = 3
	defaultConcernCount  = 2
)

func (o Options) withDefaults() Options {
	if o.MinScore <= 0 {
		o.MinScore = defaultMinScore
	}
	if o.TopPickCount <= 0 {
		o.TopPickCount = defaultTopPickCount
	}
	if o.FallbackCount <= 0 {
		o.FallbackCount = defaultFallbackCount
	}
	if o.ReasonCount <= 0 {
		o.ReasonCount = defaultReasonCount
	}
	if o.ConcernCount <= 0 {
		o.ConcernCount = defaultConcernCount
	}
	return o
}
