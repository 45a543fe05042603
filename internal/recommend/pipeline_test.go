package recommend

import (
	"errors"
	"testing"

	"gearmatch/internal/domain"
)

func TestRunCountsPreFilterInput(t *testing.T) {
	products := []domain.Product{
		{ID: "a", Category: domain.CategoryMouse, Attrs: map[string]any{"wireless": true, "grip_styles": []string{"claw"}, "weight_grams": 65.0, "price_tier": "budget"}},
		{ID: "b", Category: domain.CategoryMouse, Attrs: map[string]any{"wireless": false}},
	}
	answers := domain.Answers{"wireless": "wireless", "grip": "claw", "weight": "light", "budget": "no-limit"}

	result, err := Run(domain.CategoryMouse, answers, products, Options{MinScore: 10})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.TotalEvaluated != 2 {
		t.Fatalf("totalEvaluated counts the pre-filter input, got %d", result.TotalEvaluated)
	}
	if result.Filters.Category != domain.CategoryMouse {
		t.Fatalf("filters should echo the category")
	}
	total := len(result.TopPicks) + len(result.Alternates)
	if total != 1 {
		t.Fatalf("the wired mouse should have been pre-filtered, got %d survivors", total)
	}
	if result.TopPicks[0].Product.ID != "a" {
		t.Fatalf("expected product a on top, got %+v", result.TopPicks[0].Product)
	}
}

func TestRunRejectsUnknownCategory(t *testing.T) {
	_, err := Run("toaster", domain.Answers{}, nil, Options{})
	if !errors.Is(err, domain.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	products := []domain.Product{
		{ID: "a", Attrs: map[string]any{"wireless": true, "weight_grams": 62.0, "price_tier": "midrange"}},
		{ID: "b", Attrs: map[string]any{"wireless": true, "weight_grams": 64.0, "price_tier": "midrange"}},
		{ID: "c", Attrs: map[string]any{"wireless": true, "weight_grams": 90.0, "price_tier": "premium"}},
	}
	answers := domain.Answers{"weight": "light", "budget": "midrange"}

	first, err := Run(domain.CategoryMouse, answers, products, Options{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Run(domain.CategoryMouse, answers, products, Options{})
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if len(again.TopPicks) != len(first.TopPicks) {
			t.Fatalf("run %d: pick count changed", i)
		}
		for j := range again.TopPicks {
			if again.TopPicks[j].Product.ID != first.TopPicks[j].Product.ID ||
				again.TopPicks[j].Score != first.TopPicks[j].Score {
				t.Fatalf("run %d: ordering or scores changed", i)
			}
		}
	}
}
