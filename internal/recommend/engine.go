package recommend

import (
	"math"
	"sort"

	"gearmatch/internal/domain"
)

// ruleFailedConcern is the visible outcome of an isolated rule failure.
const ruleFailedConcern = "rule evaluation failed"

// Score evaluates every rule against every product and returns the scored
// list sorted by score descending (ties broken by product id for
// determinism). Overall score is round(100 * sum(score) / sum(maxScore)).
func Score(answers domain.Answers, products []domain.Product, rules []Rule, opts Options) []domain.ScoredProduct {
	opts = opts.withDefaults()
	scored := make([]domain.ScoredProduct, 0, len(products))
	for _, p := range products {
		scored = append(scored, scoreProduct(answers, p, rules, opts))
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Product.ID < scored[j].Product.ID
	})
	return scored
}

type ruleResult struct {
	id      string
	outcome Outcome
}

func scoreProduct(answers domain.Answers, p domain.Product, rules []Rule, opts Options) domain.ScoredProduct {
	results := make([]ruleResult, 0, len(rules))
	breakdown := make(map[string]domain.BreakdownEntry, len(rules))
	var sum, sumMax float64

	for _, rule := range rules {
		outcome := evaluateIsolated(rule, answers, p)
		if outcome.MaxScore <= 0 {
			outcome.MaxScore = rule.MaxScore
		}
		outcome.Score = clamp(outcome.Score, 0, outcome.MaxScore)
		results = append(results, ruleResult{id: rule.ID, outcome: outcome})
		breakdown[rule.ID] = domain.BreakdownEntry{
			Score:    outcome.Score,
			MaxScore: outcome.MaxScore,
			Details:  outcome.Details,
		}
		sum += outcome.Score
		sumMax += outcome.MaxScore
	}

	score := 0
	if sumMax > 0 {
		score = int(math.Round(100 * sum / sumMax))
	}

	return domain.ScoredProduct{
		Product:   p,
		Score:     score,
		Breakdown: breakdown,
		Reasons:   topReasons(results, opts.ReasonCount),
		Concerns:  topConcerns(results, opts.ConcernCount),
	}
}

// evaluateIsolated guards a single rule call. A panicking rule degrades to a
// zero-score outcome with a visible concern instead of aborting the scoring
// pass for the rest of the product or the batch.
func evaluateIsolated(rule Rule, answers domain.Answers, p domain.Product) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = Outcome{
				Score:    0,
				MaxScore: rule.MaxScore,
				Details:  "evaluation failed",
				Concern:  ruleFailedConcern,
			}
		}
	}()
	return rule.Evaluate(answers, p)
}

// topReasons keeps the n highest-contributing positive outcomes, ordered by
// contribution magnitude rather than rule order.
func topReasons(results []ruleResult, n int) []string {
	candidates := make([]ruleResult, 0, len(results))
	for _, r := range results {
		if r.outcome.Reason != "" && r.outcome.Score > 0 {
			candidates = append(candidates, r)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].outcome.Score > candidates[j].outcome.Score
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	reasons := make([]string, 0, len(candidates))
	for _, r := range candidates {
		reasons = append(reasons, r.outcome.Reason)
	}
	return reasons
}

// topConcerns keeps the n outcomes with the largest missing credit.
func topConcerns(results []ruleResult, n int) []string {
	candidates := make([]ruleResult, 0, len(results))
	for _, r := range results {
		if r.outcome.Concern != "" {
			candidates = append(candidates, r)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		di := candidates[i].outcome.MaxScore - candidates[i].outcome.Score
		dj := candidates[j].outcome.MaxScore - candidates[j].outcome.Score
		return di > dj
	})
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	concerns := make([]string, 0, len(candidates))
	for _, r := range candidates {
		concerns = append(concerns, r.outcome.Concern)
	}
	return concerns
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
