package recommend

import (
	"fmt"

	"gearmatch/internal/domain"
)

func keyboardRules() []Rule {
	return []Rule{
		{
			ID:       "layout_size",
			MaxScore: 20,
			Evaluate: func(answers domain.Answers, p domain.Product) Outcome {
				want, ok := answers.String("size")
				if !ok {
					return Outcome{Score: 14, MaxScore: 20, Details: "no layout preference"}
				}
				got := p.AttrString("layout")
				if got == want {
					return Outcome{
						Score:    20,
						MaxScore: 20,
						Details:  "layout matches",
						Reason:   "comes in the " + want + " layout you wanted",
					}
				}
				return Outcome{
					Score:    8,
					MaxScore: 20,
					Details:  "layout is " + got + ", you wanted " + want,
					Concern:  "different layout size than requested",
				}
			},
		},
		{
			ID:       "switch_feel",
			MaxScore: 20,
			Evaluate: func(answers domain.Answers, p domain.Product) Outcome {
				want, ok := answers.String("switches")
				if !ok {
					return Outcome{Score: 14, MaxScore: 20, Details: "no switch preference"}
				}
				if want == "quiet" {
					// Quiet typists are served by linear or dampened boards.
					if p.AttrBool("dampened") || p.AttrString("switch_type") == "linear" {
						return Outcome{Score: 20, MaxScore: 20, Details: "quiet switch options", Reason: "stays quiet under heavy typing"}
					}
					return Outcome{Score: 5, MaxScore: 20, Details: "audible switches", Concern: "switches are on the loud side"}
				}
				if attrListContains(p, "switch_options", want) || p.AttrString("switch_type") == want {
					return Outcome{
						Score:    20,
						MaxScore: 20,
						Details:  want + " switches available",
						Reason:   "available with " + want + " switches",
					}
				}
				return Outcome{
					Score:    7,
					MaxScore: 20,
					Details:  "no " + want + " switch option",
					Concern:  "not offered with your preferred switches",
				}
			},
		},
		{
			ID:       "usage_fit",
			MaxScore: 15,
			Evaluate: func(answers domain.Answers, p domain.Product) Outcome {
				use, ok := answers.String("use")
				if !ok {
					return Outcome{Score: 11, MaxScore: 15, Details: "no usage stated"}
				}
				if use == "gaming" {
					rate, hasRate := p.AttrFloat("polling_hz")
					if hasRate && rate >= 1000 {
						return Outcome{Score: 15, MaxScore: 15, Details: fmt.Sprintf("%.0f Hz polling", rate), Reason: "polling rate suits gaming"}
					}
					return Outcome{Score: 8, MaxScore: 15, Details: "standard polling rate"}
				}
				return Outcome{Score: 13, MaxScore: 15, Details: "fine for " + use}
			},
		},
		{
			ID:       "extras",
			MaxScore: 15,
			Evaluate: func(answers domain.Answers, p domain.Product) Outcome {
				wanted, ok := answers.Strings("extras")
				if !ok || len(wanted) == 0 {
					return Outcome{Score: 11, MaxScore: 15, Details: "no extras requested"}
				}
				matched := 0
				for _, f := range wanted {
					if attrListContains(p, "features", f) {
						matched++
					}
				}
				score := 15 * float64(matched) / float64(len(wanted))
				out := Outcome{
					Score:    score,
					MaxScore: 15,
					Details:  fmt.Sprintf("%d of %d requested extras", matched, len(wanted)),
				}
				if matched == len(wanted) {
					out.Reason = "covers every extra you picked"
				} else if matched == 0 {
					out.Concern = "missing the extras you picked"
				}
				return out
			},
		},
		wirelessPrefRule(10),
		budgetRule(20),
	}
}
