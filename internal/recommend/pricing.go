package recommend

import (
	"log"

	"gearmatch/internal/domain"
)

// PriceTiers is the ordered tier list; lower index is cheaper.
var PriceTiers = []string{
	"budget",
	"lower_midrange",
	"midrange",
	"upper_midrange",
	"premium",
	"flagship",
}

// budgetTierCaps maps budget-keyword answers to the highest allowed tier
// index. "no-limit" is absent on purpose: it means no cap at all.
var budgetTierCaps = map[string]int{
	"budget":         1,
	"lower_midrange": 1,
	"midrange":       3,
	"upper_midrange": 3,
	"premium":        5,
	"flagship":       5,
}

// MaxPriceTierIndex resolves a set of budget keywords to the most permissive
// allowed tier index among them. ok is false when no cap applies ("no-limit",
// or no keywords at all). Unrecognized keywords fall back conservatively to
// tier index 1 with a logged warning.
func MaxPriceTierIndex(keywords []string) (int, bool) {
	if len(keywords) == 0 {
		return 0, false
	}
	max := -1
	capped := false
	for _, kw := range keywords {
		if kw == "no-limit" {
			return 0, false
		}
		idx, ok := budgetTierCaps[kw]
		if !ok {
			log.Printf("recommend: unrecognized budget keyword %q, capping at tier %s", kw, PriceTiers[1])
			idx = 1
		}
		capped = true
		if idx > max {
			max = idx
		}
	}
	if !capped {
		return 0, false
	}
	return max, true
}

// PriceTierIndex derives a product's tier index, preferring an explicit
// price_tier attribute and falling back to the price-range midpoint.
// Unknown tiers map to the top index so a cap never accidentally admits them.
func PriceTierIndex(p domain.Product) int {
	if tier := p.AttrString("price_tier"); tier != "" {
		for i, t := range PriceTiers {
			if t == tier {
				return i
			}
		}
		return len(PriceTiers) - 1
	}
	mid := (p.PriceRange[0] + p.PriceRange[1]) / 2
	switch {
	case mid < 40:
		return 0
	case mid < 80:
		return 1
	case mid < 150:
		return 2
	case mid < 250:
		return 3
	case mid < 450:
		return 4
	default:
		return 5
	}
}

// WithinBudget reports whether a product's tier passes the cap derived from
// the user's budget answer. Products always pass when no cap applies.
func WithinBudget(answers domain.Answers, p domain.Product) bool {
	keywords, ok := answers.Strings("budget")
	if !ok {
		return true
	}
	maxIdx, capped := MaxPriceTierIndex(keywords)
	if !capped {
		return true
	}
	return PriceTierIndex(p) <= maxIdx
}
