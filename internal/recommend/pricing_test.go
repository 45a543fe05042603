package recommend

import (
	"testing"

	"gearmatch/internal/domain"
)

func TestMaxPriceTierIndex(t *testing.T) {
	if idx, capped := MaxPriceTierIndex([]string{"budget"}); !capped || idx != 1 {
		t.Fatalf("budget keyword should cap at tier 1, got idx=%d capped=%v", idx, capped)
	}
	if _, capped := MaxPriceTierIndex([]string{"no-limit"}); capped {
		t.Fatalf("no-limit must mean no cap")
	}
	// Unrecognized keywords default conservatively to tier 1.
	if idx, capped := MaxPriceTierIndex([]string{"unknown-value"}); !capped || idx != 1 {
		t.Fatalf("unknown keyword should cap at tier 1, got idx=%d capped=%v", idx, capped)
	}
	// Multiple keywords take the most permissive cap.
	if idx, _ := MaxPriceTierIndex([]string{"budget", "premium"}); idx != 5 {
		t.Fatalf("expected the premium cap to win, got %d", idx)
	}
	if _, capped := MaxPriceTierIndex(nil); capped {
		t.Fatalf("no keywords means no cap")
	}
}

func TestPriceTierIndexPrefersExplicitAttribute(t *testing.T) {
	p := domain.Product{
		Attrs:      map[string]any{"price_tier": "premium"},
		PriceRange: [2]float64{10, 20}, // would be a budget midpoint
	}
	if idx := PriceTierIndex(p); idx != 4 {
		t.Fatalf("explicit price_tier should win, got %d", idx)
	}

	p = domain.Product{PriceRange: [2]float64{100, 160}}
	if idx := PriceTierIndex(p); idx != 2 {
		t.Fatalf("130 midpoint should land in midrange, got %d", idx)
	}

	// Unknown tier names never slip under a cap.
	p = domain.Product{Attrs: map[string]any{"price_tier": "mystery"}}
	if idx := PriceTierIndex(p); idx != len(PriceTiers)-1 {
		t.Fatalf("unknown tier should map to the top index, got %d", idx)
	}
}

func TestWithinBudget(t *testing.T) {
	cheap := domain.Product{Attrs: map[string]any{"price_tier": "budget"}}
	pricey := domain.Product{Attrs: map[string]any{"price_tier": "flagship"}}

	if !WithinBudget(domain.Answers{}, pricey) {
		t.Fatalf("absent budget answer must not constrain")
	}
	if WithinBudget(domain.Answers{"budget": "budget"}, pricey) {
		t.Fatalf("flagship exceeds the budget cap")
	}
	if !WithinBudget(domain.Answers{"budget": "budget"}, cheap) {
		t.Fatalf("budget tier fits the budget cap")
	}
}
