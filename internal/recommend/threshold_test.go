package recommend

import (
	"testing"

	"gearmatch/internal/domain"
)

func scoredFixture(scores ...int) []domain.ScoredProduct {
	out := make([]domain.ScoredProduct, 0, len(scores))
	for i, s := range scores {
		out = append(out, domain.ScoredProduct{
			Product: domain.Product{ID: string(rune('a' + i))},
			Score:   s,
		})
	}
	return out
}

func TestSplitHonorsTopPickCount(t *testing.T) {
	scored := scoredFixture(90, 85, 80, 75, 60)
	topPicks, alternates := Split(scored, Options{MinScore: 50, TopPickCount: 3})

	if len(topPicks) != 3 {
		t.Fatalf("expected 3 top picks, got %d", len(topPicks))
	}
	if len(alternates) != 2 || alternates[0].Score != 75 {
		t.Fatalf("alternates must be the qualifying remainder, got %+v", alternates)
	}
}

func TestSplitFiltersBelowMinScore(t *testing.T) {
	scored := scoredFixture(90, 40, 30)
	topPicks, alternates := Split(scored, Options{MinScore: 50, TopPickCount: 3})

	if len(topPicks) != 1 || topPicks[0].Score != 90 {
		t.Fatalf("only the 90 should qualify, got %+v", topPicks)
	}
	if len(alternates) != 0 {
		t.Fatalf("expected no alternates, got %+v", alternates)
	}
}

func TestFallbackTagsTopFiveExactlyOnce(t *testing.T) {
	scored := scoredFixture(45, 42, 40, 35, 30)
	topPicks, alternates := Split(scored, Options{MinScore: 50, TopPickCount: 3})

	if len(topPicks) != 3 || len(alternates) != 2 {
		t.Fatalf("fallback should surface all 5, split 3/2, got %d/%d", len(topPicks), len(alternates))
	}
	for _, sp := range append(topPicks, alternates...) {
		if len(sp.Concerns) == 0 || sp.Concerns[0] != LowConfidenceConcern {
			t.Fatalf("expected the low-confidence concern prepended, got %v", sp.Concerns)
		}
	}

	// Splitting the same backing slice again must not duplicate the tag.
	topPicks, alternates = Split(scored, Options{MinScore: 50, TopPickCount: 3})
	for _, sp := range append(topPicks, alternates...) {
		count := 0
		for _, c := range sp.Concerns {
			if c == LowConfidenceConcern {
				count++
			}
		}
		if count != 1 {
			t.Fatalf("fallback concern must appear exactly once, got %d in %v", count, sp.Concerns)
		}
	}
}

func TestFallbackCapsAtFallbackCount(t *testing.T) {
	scored := scoredFixture(45, 42, 40, 35, 30, 25, 20)
	topPicks, alternates := Split(scored, Options{MinScore: 50, TopPickCount: 3, FallbackCount: 5})

	if len(topPicks)+len(alternates) != 5 {
		t.Fatalf("fallback should keep the first 5 only, got %d", len(topPicks)+len(alternates))
	}
}

func TestSplitEmptyInput(t *testing.T) {
	topPicks, alternates := Split(nil, Options{})
	if len(topPicks) != 0 || len(alternates) != 0 {
		t.Fatalf("empty input yields empty output")
	}
}
