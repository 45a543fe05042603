package recommend

import (
	"fmt"

	"gearmatch/internal/domain"
)

func mouseRules() []Rule {
	return []Rule{
		{
			ID:       "grip_fit",
			MaxScore: 20,
			Evaluate: func(answers domain.Answers, p domain.Product) Outcome {
				grip, ok := answers.String("grip")
				if !ok {
					return Outcome{Score: 14, MaxScore: 20, Details: "no grip preference"}
				}
				if attrListContains(p, "grip_styles", grip) {
					return Outcome{
						Score:    20,
						MaxScore: 20,
						Details:  "shape suits " + grip + " grip",
						Reason:   "comfortable for your " + grip + " grip",
					}
				}
				return Outcome{
					Score:    6,
					MaxScore: 20,
					Details:  "not shaped for " + grip + " grip",
					Concern:  "shape may not suit a " + grip + " grip",
				}
			},
		},
		{
			ID:       "weight_fit",
			MaxScore: 20,
			Evaluate: func(answers domain.Answers, p domain.Product) Outcome {
				pref, ok := answers.String("weight")
				grams, hasWeight := p.AttrFloat("weight_grams")
				if !ok || !hasWeight {
					return Outcome{Score: 14, MaxScore: 20, Details: "weight not compared"}
				}
				class := "heavy"
				switch {
				case grams < 70:
					class = "light"
				case grams <= 100:
					class = "medium"
				}
				if class == pref {
					return Outcome{
						Score:    20,
						MaxScore: 20,
						Details:  fmt.Sprintf("%.0fg matches the %s preference", grams, pref),
						Reason:   fmt.Sprintf("%.0fg is the weight you asked for", grams),
					}
				}
				return Outcome{
					Score:    8,
					MaxScore: 20,
					Details:  fmt.Sprintf("%.0fg is %s, you wanted %s", grams, class, pref),
					Concern:  "weight differs from your preference",
				}
			},
		},
		{
			ID:       "sensor",
			MaxScore: 15,
			Evaluate: func(answers domain.Answers, p domain.Product) Outcome {
				use, _ := answers.String("use")
				dpi, hasDPI := p.AttrFloat("dpi")
				if use != "gaming" {
					return Outcome{Score: 12, MaxScore: 15, Details: "sensor uncritical outside gaming"}
				}
				wantHigh, _ := answers.String("dpi")
				if !hasDPI {
					return Outcome{Score: 7, MaxScore: 15, Details: "sensor DPI unknown"}
				}
				if wantHigh == "high" && dpi < 16000 {
					return Outcome{
						Score:    6,
						MaxScore: 15,
						Details:  fmt.Sprintf("%.0f DPI below the high-DPI bar", dpi),
						Concern:  "sensor resolution below what you asked for",
					}
				}
				return Outcome{
					Score:    15,
					MaxScore: 15,
					Details:  fmt.Sprintf("%.0f DPI gaming sensor", dpi),
					Reason:   "sensor is well suited for gaming",
				}
			},
		},
		wirelessPrefRule(10),
		budgetRule(20),
		{
			ID:       "features",
			MaxScore: 15,
			Evaluate: func(answers domain.Answers, p domain.Product) Outcome {
				wanted, ok := answers.Strings("features")
				if !ok || len(wanted) == 0 {
					return Outcome{Score: 11, MaxScore: 15, Details: "no extra features requested"}
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
					Details:  fmt.Sprintf("%d of %d requested features", matched, len(wanted)),
				}
				if matched == len(wanted) {
					out.Reason = "has every extra feature you picked"
				} else if matched == 0 {
					out.Concern = "missing the extra features you picked"
				}
				return out
			},
		},
	}
}
