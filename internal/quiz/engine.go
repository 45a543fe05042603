// Package quiz implements the mode-gated quiz state machine that produces
// the answer set consumed by the recommendation pipeline.
package quiz

import (
	"gearmatch/internal/domain"
)

// Engine walks a user through one category's question catalog. It owns its
// state exclusively; one engine per quiz session, never shared between
// goroutines.
type Engine struct {
	questions []domain.Question
	mode      domain.Mode
	index     int
	answers   domain.Answers
	skipped   map[string]bool
}

// NewEngine starts a quiz over the given question catalog in the given mode.
func NewEngine(questions []domain.Question, mode domain.Mode) *Engine {
	return &Engine{
		questions: questions,
		mode:      mode,
		answers:   make(domain.Answers),
		skipped:   make(map[string]bool),
	}
}

// Mode returns the active quiz mode.
func (e *Engine) Mode() domain.Mode { return e.mode }

// VisibleQuestions returns the questions unlocked by the current mode whose
// ShowWhen predicate (if any) holds against the current answer snapshot.
// Recomputed on every call; visibility shifts as answers change.
func (e *Engine) VisibleQuestions() []domain.Question {
	tiers := domain.TiersForMode(e.mode)
	visible := make([]domain.Question, 0, len(e.questions))
	for _, q := range e.questions {
		if !tiers[q.Tier] {
			continue
		}
		if q.ShowWhen != nil && !q.ShowWhen(e.answers) {
			continue
		}
		visible = append(visible, q)
	}
	return visible
}

// CurrentQuestion returns the question at the current index, if any.
func (e *Engine) CurrentQuestion() (domain.Question, bool) {
	visible := e.VisibleQuestions()
	if e.index < 0 || e.index >= len(visible) {
		return domain.Question{}, false
	}
	return visible[e.index], true
}

// SetAnswer records a value for a question and clears any skip flag for it.
// Option-list validation is the transport layer's responsibility.
func (e *Engine) SetAnswer(id string, value any) {
	e.answers[id] = value
	delete(e.skipped, id)
}

// Answer returns the recorded answer for id.
func (e *Engine) Answer(id string) (any, bool) {
	v, ok := e.answers[id]
	return v, ok
}

// Skipped reports whether id is currently marked skipped.
func (e *Engine) Skipped(id string) bool { return e.skipped[id] }

// SkipQuestion marks a question skipped. When the question declares a
// default value, that value is recorded as the answer. Adding to the skip
// set is idempotent.
func (e *Engine) SkipQuestion(id string) {
	for _, q := range e.questions {
		if q.ID == id {
			if q.DefaultValue != nil {
				e.answers[id] = q.DefaultValue
			}
			break
		}
	}
	e.skipped[id] = true
}

// Next advances to the following visible question. Returns false, without
// moving, when already at the last one.
func (e *Engine) Next() bool {
	visible := e.VisibleQuestions()
	if e.index >= len(visible)-1 {
		return false
	}
	e.index++
	return true
}

// Back moves to the previous visible question. Returns false at the front.
func (e *Engine) Back() bool {
	if e.index <= 0 {
		return false
	}
	e.index--
	return true
}

// SetMode switches the unlocked tier set. The engine tries to stay on the
// same question by id if it remains visible under the new mode; otherwise
// the index resets to 0. Best-effort continuity, not index stability.
func (e *Engine) SetMode(mode domain.Mode) {
	current, hadCurrent := e.CurrentQuestion()
	e.mode = mode
	e.index = 0
	if !hadCurrent {
		return
	}
	for i, q := range e.VisibleQuestions() {
		if q.ID == current.ID {
			e.index = i
			return
		}
	}
}

// Complete reports whether the current index sits on (or past) the last
// visible question.
func (e *Engine) Complete() bool {
	return e.index >= len(e.VisibleQuestions())-1
}

// FinalAnswers materializes the answer set for scoring: a copy of the
// recorded answers, plus the default value of every question in the full
// catalog (visible or not) that has one and was never answered. Quick-mode
// sessions skip most questions yet still yield a complete answer set.
//
// Answers whose questions are currently hidden are retained, not purged;
// pre-filter predicates and scoring rules treat them like any other answer.
func (e *Engine) FinalAnswers() domain.Answers {
	final := e.answers.Clone()
	for _, q := range e.questions {
		if q.DefaultValue == nil {
			continue
		}
		if !final.Has(q.ID) {
			final[q.ID] = q.DefaultValue
		}
	}
	return final
}
