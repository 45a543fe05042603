package recommend

import (
	"gearmatch/internal/domain"
)

// Apply runs every predicate over every product and keeps the products that
// pass all of them. The output is always a subset of the input;
// Eliminated == Total - len(Filtered).
func Apply(answers domain.Answers, products []domain.Product, predicates []Predicate) FilterResult {
	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		keep := true
		for _, pred := range predicates {
			if !pred.Keep(answers, p) {
				keep = false
				break
			}
		}
		if keep {
			filtered = append(filtered, p)
		}
	}
	return FilterResult{
		Filtered:   filtered,
		Eliminated: len(products) - len(filtered),
		Total:      len(products),
	}
}

// PredicatesFor returns the ordered hard-eliminate predicate list for a
// category. Soft concerns such as budget fit are deliberately left to
// scoring; the only exception is the HTTP candidate endpoint, see
// CandidatePredicate.
func PredicatesFor(category domain.Category) []Predicate {
	switch category {
	case domain.CategoryMouse:
		return mousePredicates()
	case domain.CategoryAudio:
		return audioPredicates()
	case domain.CategoryKeyboard:
		return keyboardPredicates()
	case domain.CategoryMonitor:
		return monitorPredicates()
	}
	return nil
}

// CandidatePredicate is the server-side mirror used by the candidate filter
// endpoint: the category's hard predicates plus a soft price-tier cutoff
// derived from the budget answer.
func CandidatePredicate(category domain.Category) func(domain.Answers, domain.Product) bool {
	predicates := PredicatesFor(category)
	return func(answers domain.Answers, p domain.Product) bool {
		for _, pred := range predicates {
			if !pred.Keep(answers, p) {
				return false
			}
		}
		return WithinBudget(answers, p)
	}
}

// wirelessPredicate is shared by every category that asks about wireless:
// a hard match unless the answer is "either" or absent.
func wirelessPredicate(answerID string) Predicate {
	return Predicate{
		ID: "wireless",
		Keep: func(answers domain.Answers, p domain.Product) bool {
			want, ok := answers.String(answerID)
			if !ok || want == "either" {
				return true
			}
			switch want {
			case "wireless":
				return p.AttrBool("wireless")
			case "wired":
				return !p.AttrBool("wireless")
			}
			return true
		},
	}
}

func mousePredicates() []Predicate {
	return []Predicate{
		wirelessPredicate("wireless"),
		{
			ID: "handedness",
			Keep: func(answers domain.Answers, p domain.Product) bool {
				want, ok := answers.String("handedness")
				if !ok {
					return true
				}
				var allowed map[string]bool
				switch want {
				case "left":
					allowed = map[string]bool{"left": true, "ambi": true, "ergo_left": true}
				case "ambidextrous":
					allowed = map[string]bool{"ambi": true}
				default:
					// Right-handed users can use nearly everything.
					return true
				}
				return allowed[p.AttrString("handedness")]
			},
		},
	}
}

func audioPredicates() []Predicate {
	// Budget is intentionally not pre-filtered here; price fit is a soft,
	// weighted concern handled in scoring only.
	return []Predicate{
		{
			ID: "microphone",
			Keep: func(answers domain.Answers, p domain.Product) bool {
				want, ok := answers.String("mic")
				if !ok || want != "yes" {
					return true
				}
				return p.AttrBool("microphone")
			},
		},
		wirelessPredicate("wireless"),
	}
}

func keyboardPredicates() []Predicate {
	return []Predicate{
		wirelessPredicate("wireless"),
	}
}

// resolutionNeighbors maps each requested resolution class to the allow-list
// of itself plus one step up.
var resolutionNeighbors = map[string][]string{
	"1080p": {"1080p", "1440p"},
	"1440p": {"1440p", "4k"},
	"4k":    {"4k", "5k"},
}

func monitorPredicates() []Predicate {
	return []Predicate{
		{
			ID: "resolution",
			Keep: func(answers domain.Answers, p domain.Product) bool {
				requested, ok := answers.Strings("resolution")
				if !ok || len(requested) == 0 {
					return true
				}
				allowed := make(map[string]bool)
				for _, res := range requested {
					for _, n := range resolutionNeighbors[res] {
						allowed[n] = true
					}
				}
				if len(allowed) == 0 {
					// Nothing recognized; no constraint.
					return true
				}
				return allowed[p.AttrString("resolution")]
			},
		},
		{
			ID: "size",
			Keep: func(answers domain.Answers, p domain.Product) bool {
				want, ok := answers.String("size")
				if !ok || want != "ultrawide" {
					// Size is a hard constraint only when ultrawide is
					// explicitly requested.
					return true
				}
				return p.AttrString("size_class") == "ultrawide"
			},
		},
	}
}
