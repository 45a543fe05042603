package recommend

import (
	"fmt"

	"gearmatch/internal/domain"
)

func monitorRules() []Rule {
	return []Rule{
		{
			ID:       "resolution_pref",
			MaxScore: 20,
			Evaluate: func(answers domain.Answers, p domain.Product) Outcome {
				requested, ok := answers.Strings("resolution")
				if !ok || len(requested) == 0 {
					return Outcome{Score: 14, MaxScore: 20, Details: "no resolution preference"}
				}
				got := p.AttrString("resolution")
				for _, res := range requested {
					if res == got {
						return Outcome{
							Score:    20,
							MaxScore: 20,
							Details:  got + " is exactly what you asked for",
							Reason:   "native " + got + " resolution",
						}
					}
				}
				// The pre-filter only admits one-step-up neighbors, so
				// anything else here is an acceptable upgrade.
				return Outcome{Score: 14, MaxScore: 20, Details: got + " is one step above your request"}
			},
		},
		{
			ID:       "refresh_rate",
			MaxScore: 20,
			Evaluate: func(answers domain.Answers, p domain.Product) Outcome {
				want, ok := answers.String("refresh")
				hz, hasHz := p.AttrFloat("refresh_hz")
				if !ok {
					return Outcome{Score: 14, MaxScore: 20, Details: "no refresh preference"}
				}
				var wantHz float64
				switch want {
				case "240":
					wantHz = 240
				case "144":
					wantHz = 144
				default:
					wantHz = 60
				}
				if !hasHz {
					return Outcome{Score: 8, MaxScore: 20, Details: "refresh rate unknown"}
				}
				if hz >= wantHz {
					return Outcome{
						Score:    20,
						MaxScore: 20,
						Details:  fmt.Sprintf("%.0f Hz meets the %.0f Hz target", hz, wantHz),
						Reason:   fmt.Sprintf("refresh rate of %.0f Hz meets your target", hz),
					}
				}
				return Outcome{
					Score:    20 * hz / wantHz,
					MaxScore: 20,
					Details:  fmt.Sprintf("%.0f Hz below the %.0f Hz target", hz, wantHz),
					Concern:  "refresh rate below your target",
				}
			},
		},
		{
			ID:       "panel_type",
			MaxScore: 15,
			Evaluate: func(answers domain.Answers, p domain.Product) Outcome {
				want, ok := answers.String("panel")
				if !ok {
					return Outcome{Score: 11, MaxScore: 15, Details: "no panel preference"}
				}
				got := p.AttrString("panel")
				if got == want {
					return Outcome{
						Score:    15,
						MaxScore: 15,
						Details:  got + " panel",
						Reason:   "uses the " + want + " panel you prefer",
					}
				}
				return Outcome{
					Score:    6,
					MaxScore: 15,
					Details:  "panel is " + got + ", you wanted " + want,
					Concern:  "panel technology differs from your preference",
				}
			},
		},
		{
			ID:       "size_pref",
			MaxScore: 15,
			Evaluate: func(answers domain.Answers, p domain.Product) Outcome {
				want, ok := answers.String("size")
				if !ok || want == "ultrawide" {
					// Ultrawide is enforced by the pre-filter.
					return Outcome{Score: 12, MaxScore: 15, Details: "size handled upstream"}
				}
				if p.AttrString("size_class") == want {
					return Outcome{
						Score:    15,
						MaxScore: 15,
						Details:  want + " inch class",
						Reason:   "matches your preferred screen size",
					}
				}
				return Outcome{Score: 7, MaxScore: 15, Details: "size differs from preference"}
			},
		},
		{
			ID:       "hdr",
			MaxScore: 10,
			Evaluate: func(answers domain.Answers, p domain.Product) Outcome {
				want, ok := answers.String("hdr")
				if !ok || want != "yes" {
					return Outcome{Score: 8, MaxScore: 10, Details: "HDR not requested"}
				}
				if p.AttrBool("hdr") {
					return Outcome{Score: 10, MaxScore: 10, Details: "HDR capable", Reason: "supports the HDR you asked for"}
				}
				return Outcome{Score: 2, MaxScore: 10, Details: "no HDR support", Concern: "lacks HDR support"}
			},
		},
		budgetRule(20),
	}
}
