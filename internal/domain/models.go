package domain

// Category identifies a product category the advisor can recommend in.
type Category string

const (
	CategoryMouse    Category = "mouse"
	CategoryAudio    Category = "audio"
	CategoryKeyboard Category = "keyboard"
	CategoryMonitor  Category = "monitor"
)

// Categories lists every supported product category.
func Categories() []Category {
	return []Category{CategoryMouse, CategoryAudio, CategoryKeyboard, CategoryMonitor}
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategoryMouse, CategoryAudio, CategoryKeyboard, CategoryMonitor:
		return true
	}
	return false
}

// Mode is the quiz depth selected by the user. Each mode unlocks a superset
// of question tiers: quick, then personalized, then expert.
type Mode string

const (
	ModeQuick        Mode = "quick"
	ModePersonalized Mode = "personalized"
	ModeExpert       Mode = "expert"
)

// QuestionTier gates a question behind a quiz mode. Distinct from the
// product Category above.
type QuestionTier string

const (
	TierCore     QuestionTier = "core"
	TierStandard QuestionTier = "standard"
	TierAdvanced QuestionTier = "advanced"
)

// TiersForMode returns the question tiers a mode unlocks. Unknown modes get
// the full expert set.
func TiersForMode(m Mode) map[QuestionTier]bool {
	switch m {
	case ModeQuick:
		return map[QuestionTier]bool{TierCore: true}
	case ModePersonalized:
		return map[QuestionTier]bool{TierCore: true, TierStandard: true}
	default:
		return map[QuestionTier]bool{TierCore: true, TierStandard: true, TierAdvanced: true}
	}
}

// Answers maps question ids to the selected option id (string) or, for
// multi-select questions, a list of option ids ([]string). Values arrive
// from JSON, so multi-select lists may also appear as []any.
type Answers map[string]any

// String returns the single-select answer for id; ok is false when the
// answer is absent or not a single option id.
func (a Answers) String(id string) (string, bool) {
	v, ok := a[id]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Strings normalizes the answer for id into a list of option ids. A
// single-select answer is returned as a one-element list.
func (a Answers) Strings(id string) ([]string, bool) {
	v, ok := a[id]
	if !ok {
		return nil, false
	}
	switch vv := v.(type) {
	case string:
		return []string{vv}, true
	case []string:
		return vv, true
	case []any:
		out := make([]string, 0, len(vv))
		for _, e := range vv {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out, true
	}
	return nil, false
}

// Has reports whether any answer was recorded for id.
func (a Answers) Has(id string) bool {
	_, ok := a[id]
	return ok
}

// Clone returns a shallow copy of the answer map.
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// QuestionOption is a selectable choice for a question.
type QuestionOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Question is immutable quiz catalog data, authored externally.
// ShowWhen, when set, gates visibility on the current answer snapshot.
type Question struct {
	ID           string             `json:"id"`
	Tier         QuestionTier       `json:"tier"`
	Importance   int                `json:"importance"`
	MultiSelect  bool               `json:"multiSelect"`
	Options      []QuestionOption   `json:"options"`
	DefaultValue any                `json:"defaultValue,omitempty"`
	ShowWhen     func(Answers) bool `json:"-"`
}

// Product is a read-only catalog entry, loaded externally per category.
// Attrs is an open attribute bag; keys depend on the category.
type Product struct {
	ID         string         `json:"id"`
	Category   Category       `json:"category"`
	Name       string         `json:"name,omitempty"`
	Attrs      map[string]any `json:"core_attributes"`
	PriceRange [2]float64     `json:"price_range"`
}

// AttrString returns a string attribute or "".
func (p Product) AttrString(key string) string {
	s, _ := p.Attrs[key].(string)
	return s
}

// AttrBool returns a boolean attribute; absent or non-bool values are false.
func (p Product) AttrBool(key string) bool {
	b, _ := p.Attrs[key].(bool)
	return b
}

// AttrFloat returns a numeric attribute. JSON decodes numbers as float64;
// int values from hand-built catalogs are accepted too.
func (p Product) AttrFloat(key string) (float64, bool) {
	switch v := p.Attrs[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

// BreakdownEntry preserves one rule's own contribution for later inspection.
type BreakdownEntry struct {
	Score    float64 `json:"score"`
	MaxScore float64 `json:"maxScore"`
	Details  string  `json:"details"`
}

// ScoredProduct is the scoring engine's per-product output. It is recomputed
// on every pass and never mutated afterwards, except for the threshold
// splitter's single idempotent low-confidence concern injection.
type ScoredProduct struct {
	Product   Product                   `json:"product"`
	Score     int                       `json:"score"`
	Breakdown map[string]BreakdownEntry `json:"breakdown"`
	Reasons   []string                  `json:"reasons"`
	Concerns  []string                  `json:"concerns"`
}

// ResultFilters echoes the pipeline inputs that shaped a result.
type ResultFilters struct {
	Category Category `json:"category"`
}

// RecommendationResult is the pipeline's final output.
type RecommendationResult struct {
	TopPicks       []ScoredProduct `json:"topPicks"`
	Alternates     []ScoredProduct `json:"alternates"`
	Filters        ResultFilters   `json:"filters"`
	TotalEvaluated int             `json:"totalEvaluated"`
}
