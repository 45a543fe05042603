package recommend

import (
	"time"

	"gearmatch/internal/domain"
)

// Narrow intersects a product list with a candidate id set. An empty id
// list means no narrowing; the full list passes through.
func Narrow(products []domain.Product, candidateIDs []string) []domain.Product {
	if len(candidateIDs) == 0 {
		return products
	}
	allowed := make(map[string]bool, len(candidateIDs))
	for _, id := range candidateIDs {
		allowed[id] = true
	}
	narrowed := make([]domain.Product, 0, len(candidateIDs))
	for _, p := range products {
		if allowed[p.ID] {
			narrowed = append(narrowed, p)
		}
	}
	return narrowed
}

// Run composes pre-filter, scoring and threshold split for one category.
// TotalEvaluated counts the products handed in, before the pre-filter.
func Run(category domain.Category, answers domain.Answers, products []domain.Product, opts Options) (domain.RecommendationResult, error) {
	if !category.Valid() {
		return domain.RecommendationResult{}, domain.ErrUnknownCategory
	}
	start := time.Now()

	filtered := Apply(answers, products, PredicatesFor(category))
	prefilterEliminated.WithLabelValues(string(category)).Observe(float64(filtered.Eliminated))

	scored := Score(answers, filtered.Filtered, RulesFor(category), opts)
	topPicks, alternates := Split(scored, opts)

	if len(topPicks) > 0 && topPicks[0].Score < opts.withDefaults().MinScore {
		fallbackEngaged.WithLabelValues(string(category)).Inc()
	}
	pipelineDuration.WithLabelValues(string(category)).Observe(time.Since(start).Seconds())

	return domain.RecommendationResult{
		TopPicks:       topPicks,
		Alternates:     alternates,
		Filters:        domain.ResultFilters{Category: category},
		TotalEvaluated: len(products),
	}, nil
}
