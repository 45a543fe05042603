package recommend

import (
	"fmt"

	"gearmatch/internal/domain"
)

// RulesFor returns the weighted rule set for a category. Rule weights are
// relative; the engine normalizes against the summed max scores.
func RulesFor(category domain.Category) []Rule {
	switch category {
	case domain.CategoryMouse:
		return mouseRules()
	case domain.CategoryAudio:
		return audioRules()
	case domain.CategoryKeyboard:
		return keyboardRules()
	case domain.CategoryMonitor:
		return monitorRules()
	}
	return nil
}

// budgetRule rewards products near or under the user's price cap. Budget is
// never a hard filter in the local pipeline; this rule is where it bites.
func budgetRule(maxScore float64) Rule {
	return Rule{
		ID:       "budget_fit",
		MaxScore: maxScore,
		Evaluate: func(answers domain.Answers, p domain.Product) Outcome {
			keywords, ok := answers.Strings("budget")
			if !ok {
				return Outcome{Score: maxScore, MaxScore: maxScore, Details: "no budget stated"}
			}
			capIdx, capped := MaxPriceTierIndex(keywords)
			if !capped {
				return Outcome{Score: maxScore, MaxScore: maxScore, Details: "no price cap"}
			}
			tier := PriceTierIndex(p)
			if tier <= capIdx {
				return Outcome{
					Score:    maxScore,
					MaxScore: maxScore,
					Details:  fmt.Sprintf("%s tier fits the budget", PriceTiers[tier]),
					Reason:   "fits your budget",
				}
			}
			over := tier - capIdx
			score := maxScore - float64(over)*(maxScore/2)
			return Outcome{
				Score:    score,
				MaxScore: maxScore,
				Details:  fmt.Sprintf("%d tier(s) above the budget cap", over),
				Concern:  "priced above your budget",
			}
		},
	}
}

// wirelessPrefRule is the soft counterpart of the hard wireless predicate.
// With a hard answer the survivors already match and earn full credit; with
// "either" wireless products get a small edge for flexibility.
func wirelessPrefRule(maxScore float64) Rule {
	return Rule{
		ID:       "wireless_pref",
		MaxScore: maxScore,
		Evaluate: func(answers domain.Answers, p domain.Product) Outcome {
			want, ok := answers.String("wireless")
			if !ok || want == "either" {
				if p.AttrBool("wireless") {
					return Outcome{Score: maxScore, MaxScore: maxScore, Details: "wireless, works either way"}
				}
				return Outcome{Score: maxScore * 0.8, MaxScore: maxScore, Details: "wired only"}
			}
			return Outcome{
				Score:    maxScore,
				MaxScore: maxScore,
				Details:  "matches the " + want + " requirement",
				Reason:   "matches your " + want + " preference",
			}
		},
	}
}

// attrListContains reports whether a list-valued attribute contains want.
func attrListContains(p domain.Product, key, want string) bool {
	switch v := p.Attrs[key].(type) {
	case []string:
		for _, s := range v {
			if s == want {
				return true
			}
		}
	case []any:
		for _, e := range v {
			if s, ok := e.(string); ok && s == want {
				return true
			}
		}
	case string:
		return v == want
	}
	return false
}
