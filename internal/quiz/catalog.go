package quiz

import (
	"gearmatch/internal/domain"
)

// QuestionsFor returns the authored question catalog for a product category.
// The slices are rebuilt per call so engines can never share ShowWhen
// closures or option slices.
func QuestionsFor(category domain.Category) []domain.Question {
	switch category {
	case domain.CategoryMouse:
		return mouseQuestions()
	case domain.CategoryAudio:
		return audioQuestions()
	case domain.CategoryKeyboard:
		return keyboardQuestions()
	case domain.CategoryMonitor:
		return monitorQuestions()
	}
	return nil
}

func opts(pairs ...string) []domain.QuestionOption {
	out := make([]domain.QuestionOption, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, domain.QuestionOption{ID: pairs[i], Label: pairs[i+1]})
	}
	return out
}

func mouseQuestions() []domain.Question {
	return []domain.Question{
		{
			ID: "use", Tier: domain.TierCore, Importance: 5,
			Options: opts("gaming", "Gaming", "office", "Office & productivity", "creative", "Creative work"),
		},
		{
			ID: "wireless", Tier: domain.TierCore, Importance: 4, DefaultValue: "either",
			Options: opts("wireless", "Wireless only", "wired", "Wired only", "either", "No preference"),
		},
		{
			ID: "handedness", Tier: domain.TierCore, Importance: 5, DefaultValue: "right",
			Options: opts("right", "Right-handed", "left", "Left-handed", "ambidextrous", "Ambidextrous"),
		},
		{
			ID: "budget", Tier: domain.TierCore, Importance: 4, DefaultValue: "midrange",
			Options: opts("budget", "Budget", "midrange", "Mid-range", "premium", "Premium", "no-limit", "No limit"),
		},
		{
			ID: "grip", Tier: domain.TierStandard, Importance: 3,
			Options: opts("palm", "Palm grip", "claw", "Claw grip", "fingertip", "Fingertip grip"),
		},
		{
			ID: "weight", Tier: domain.TierStandard, Importance: 3, DefaultValue: "medium",
			Options: opts("light", "Ultralight", "medium", "Medium", "heavy", "Heavier"),
		},
		{
			ID: "dpi", Tier: domain.TierAdvanced, Importance: 2,
			ShowWhen: func(a domain.Answers) bool {
				use, _ := a.String("use")
				return use == "gaming"
			},
			Options: opts("low", "Up to 8k DPI", "high", "High-DPI sensor"),
		},
		{
			ID: "features", Tier: domain.TierAdvanced, Importance: 1, MultiSelect: true,
			Options: opts("rgb", "RGB lighting", "onboard_memory", "Onboard profiles", "adjustable_weight", "Adjustable weights"),
		},
	}
}

func audioQuestions() []domain.Question {
	return []domain.Question{
		{
			ID: "type", Tier: domain.TierCore, Importance: 5,
			Options: opts("headset", "Headset", "earbuds", "Earbuds", "speakers", "Speakers"),
		},
		{
			ID: "mic", Tier: domain.TierCore, Importance: 4, DefaultValue: "no",
			Options: opts("yes", "Microphone required", "no", "No microphone needed"),
		},
		{
			ID: "wireless", Tier: domain.TierCore, Importance: 4, DefaultValue: "either",
			Options: opts("wireless", "Wireless only", "wired", "Wired only", "either", "No preference"),
		},
		{
			ID: "budget", Tier: domain.TierCore, Importance: 4, DefaultValue: "midrange",
			Options: opts("budget", "Budget", "midrange", "Mid-range", "premium", "Premium", "no-limit", "No limit"),
		},
		{
			ID: "anc", Tier: domain.TierStandard, Importance: 3,
			Options: opts("yes", "Active noise cancelling", "no", "Not needed"),
		},
		{
			ID: "surround", Tier: domain.TierStandard, Importance: 2,
			Options: opts("yes", "Virtual surround", "no", "Stereo is fine"),
		},
		{
			ID: "mic_type", Tier: domain.TierAdvanced, Importance: 2,
			ShowWhen: func(a domain.Answers) bool {
				mic, _ := a.String("mic")
				return mic == "yes"
			},
			Options: opts("boom", "Detachable boom", "inline", "In-line", "builtin", "Built-in"),
		},
	}
}

func keyboardQuestions() []domain.Question {
	return []domain.Question{
		{
			ID: "use", Tier: domain.TierCore, Importance: 5,
			Options: opts("gaming", "Gaming", "typing", "Typing & coding", "mixed", "A bit of both"),
		},
		{
			ID: "wireless", Tier: domain.TierCore, Importance: 4, DefaultValue: "either",
			Options: opts("wireless", "Wireless only", "wired", "Wired only", "either", "No preference"),
		},
		{
			ID: "size", Tier: domain.TierCore, Importance: 4, DefaultValue: "tkl",
			Options: opts("full", "Full size", "tkl", "Tenkeyless", "sixty", "60-65%"),
		},
		{
			ID: "budget", Tier: domain.TierCore, Importance: 4, DefaultValue: "midrange",
			Options: opts("budget", "Budget", "midrange", "Mid-range", "premium", "Premium", "no-limit", "No limit"),
		},
		{
			ID: "switches", Tier: domain.TierStandard, Importance: 3,
			Options: opts("linear", "Linear", "tactile", "Tactile", "clicky", "Clicky", "quiet", "As quiet as possible"),
		},
		{
			ID: "extras", Tier: domain.TierAdvanced, Importance: 1, MultiSelect: true,
			Options: opts("hotswap", "Hot-swap sockets", "rgb", "RGB lighting", "macro", "Macro keys"),
		},
	}
}

func monitorQuestions() []domain.Question {
	return []domain.Question{
		{
			ID: "use", Tier: domain.TierCore, Importance: 5,
			Options: opts("gaming", "Gaming", "office", "Office work", "creative", "Color-critical work"),
		},
		{
			ID: "resolution", Tier: domain.TierCore, Importance: 5, MultiSelect: true, DefaultValue: "1440p",
			Options: opts("1080p", "1080p", "1440p", "1440p", "4k", "4K"),
		},
		{
			ID: "size", Tier: domain.TierCore, Importance: 4,
			Options: opts("24", "24 inch", "27", "27 inch", "32", "32 inch", "ultrawide", "Ultrawide"),
		},
		{
			ID: "budget", Tier: domain.TierCore, Importance: 4, DefaultValue: "midrange",
			Options: opts("budget", "Budget", "midrange", "Mid-range", "premium", "Premium", "no-limit", "No limit"),
		},
		{
			ID: "refresh", Tier: domain.TierStandard, Importance: 3,
			ShowWhen: func(a domain.Answers) bool {
				use, _ := a.String("use")
				return use != "office"
			},
			Options: opts("60", "60 Hz", "144", "144 Hz", "240", "240 Hz and up"),
		},
		{
			ID: "panel", Tier: domain.TierAdvanced, Importance: 2,
			Options: opts("ips", "IPS", "va", "VA", "oled", "OLED"),
		},
		{
			ID: "hdr", Tier: domain.TierAdvanced, Importance: 1, DefaultValue: "no",
			Options: opts("yes", "HDR matters", "no", "Not important"),
		},
	}
}
