package recommend

import (
	"gearmatch/internal/domain"
)

func audioRules() []Rule {
	return []Rule{
		{
			ID:       "form_factor",
			MaxScore: 20,
			Evaluate: func(answers domain.Answers, p domain.Product) Outcome {
				want, ok := answers.String("type")
				if !ok {
					return Outcome{Score: 14, MaxScore: 20, Details: "no form factor stated"}
				}
				if p.AttrString("form_factor") == want {
					return Outcome{
						Score:    20,
						MaxScore: 20,
						Details:  "form factor matches",
						Reason:   "it is the " + want + " form factor you wanted",
					}
				}
				return Outcome{
					Score:    4,
					MaxScore: 20,
					Details:  "form factor is " + p.AttrString("form_factor"),
					Concern:  "different form factor than requested",
				}
			},
		},
		{
			ID:       "noise_cancelling",
			MaxScore: 15,
			Evaluate: func(answers domain.Answers, p domain.Product) Outcome {
				want, ok := answers.String("anc")
				if !ok || want != "yes" {
					return Outcome{Score: 12, MaxScore: 15, Details: "ANC not requested"}
				}
				if p.AttrBool("anc") {
					return Outcome{
						Score:    15,
						MaxScore: 15,
						Details:  "active noise cancelling on board",
						Reason:   "has the noise cancelling you asked for",
					}
				}
				return Outcome{
					Score:    3,
					MaxScore: 15,
					Details:  "no active noise cancelling",
					Concern:  "lacks active noise cancelling",
				}
			},
		},
		{
			ID:       "surround",
			MaxScore: 10,
			Evaluate: func(answers domain.Answers, p domain.Product) Outcome {
				want, ok := answers.String("surround")
				if !ok || want != "yes" {
					return Outcome{Score: 8, MaxScore: 10, Details: "surround not requested"}
				}
				if p.AttrBool("surround") {
					return Outcome{Score: 10, MaxScore: 10, Details: "virtual surround supported", Reason: "supports virtual surround"}
				}
				return Outcome{Score: 4, MaxScore: 10, Details: "stereo only", Concern: "no virtual surround support"}
			},
		},
		{
			ID:       "mic_quality",
			MaxScore: 15,
			Evaluate: func(answers domain.Answers, p domain.Product) Outcome {
				mic, _ := answers.String("mic")
				if mic != "yes" {
					return Outcome{Score: 12, MaxScore: 15, Details: "microphone not needed"}
				}
				wantType, hasType := answers.String("mic_type")
				got := p.AttrString("mic_type")
				if !hasType {
					if got != "" {
						return Outcome{Score: 13, MaxScore: 15, Details: "has a " + got + " microphone"}
					}
					return Outcome{Score: 10, MaxScore: 15, Details: "microphone style unknown"}
				}
				if got == wantType {
					return Outcome{
						Score:    15,
						MaxScore: 15,
						Details:  "microphone style matches",
						Reason:   "has the " + wantType + " microphone you prefer",
					}
				}
				return Outcome{
					Score:    7,
					MaxScore: 15,
					Details:  "microphone is " + got + ", you wanted " + wantType,
					Concern:  "microphone style differs from your preference",
				}
			},
		},
		wirelessPrefRule(10),
		budgetRule(20),
	}
}
