package app

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"gearmatch/internal/domain"
	"gearmatch/internal/quiz"
	"gearmatch/internal/recommend"
)

// SessionRepository abstracts how quiz sessions are stored (in-memory, Redis-marked, etc).
type SessionRepository interface {
	GetOrCreate(sessionID string, category domain.Category, mode domain.Mode) *Session
	Get(sessionID string) (*Session, bool)
	Delete(sessionID string)
}

// CatalogRepository loads a category's product list (from cache/backing store).
type CatalogRepository interface {
	Products(ctx context.Context, category domain.Category) ([]domain.Product, error)
}

// PrefsStore is an opaque key-value store for user preferences such as
// saved picks.
type PrefsStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Scorer runs the pipeline; satisfied by the worker dispatcher. It must
// produce results byte-identical to an inline run over the same products.
// candidateIDs narrows the catalog before scoring; empty means no
// narrowing.
type Scorer interface {
	Score(ctx context.Context, category domain.Category, answers domain.Answers, opts recommend.Options, candidateIDs []string) (domain.RecommendationResult, error)
}

// CandidateFilter optionally narrows the product list before the pipeline
// runs (the remote pre-filter endpoint). Failures must degrade silently.
type CandidateFilter interface {
	CandidateIDs(ctx context.Context, category domain.Category, answers domain.Answers) ([]string, error)
}

// RefitPolicy decides how saved-pick categories are reconciled when the
// catalog (re)loads.
type RefitPolicy string

const (
	// RefitOnce reconciles on the first catalog load only.
	RefitOnce RefitPolicy = "once"
	// RefitAlways re-reconciles on every load, picking up catalog updates.
	RefitAlways RefitPolicy = "always"
)

const savedPicksKey = "saved_picks"

// AdvisorService contains the peripheral-advisor use cases: quiz sessions,
// recommendation runs, and saved-pick preferences.
type AdvisorService struct {
	sessions  SessionRepository
	catalogs  CatalogRepository
	prefs     PrefsStore
	scorer    Scorer
	candidate CandidateFilter
	opts      recommend.Options

	refitPolicy RefitPolicy
	refitOnce   sync.Once
}

// NewAdvisorService wires the advisor use cases. scorer may be nil, in
// which case the pipeline runs inline on the calling goroutine. candidate
// may be nil to disable the remote pre-filter.
func NewAdvisorService(store SessionRepository, catalogs CatalogRepository, prefs PrefsStore, scorer Scorer, candidate CandidateFilter, opts recommend.Options, refit RefitPolicy) *AdvisorService {
	if refit != RefitAlways {
		refit = RefitOnce
	}
	return &AdvisorService{
		sessions:    store,
		catalogs:    catalogs,
		prefs:       prefs,
		scorer:      scorer,
		candidate:   candidate,
		opts:        opts,
		refitPolicy: refit,
	}
}

// StartSession creates (or resumes) a quiz session for a category. The
// catalog is preloaded so sessions cannot start against unknown categories.
func (s *AdvisorService) StartSession(ctx context.Context, sessionID string, category domain.Category, mode domain.Mode) (*Session, error) {
	if !category.Valid() {
		return nil, domain.ErrUnknownCategory
	}
	if _, err := s.catalogs.Products(ctx, category); err != nil {
		return nil, err
	}
	return s.sessions.GetOrCreate(sessionID, category, mode), nil
}

// Session returns an active session.
func (s *AdvisorService) Session(sessionID string) (*Session, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// EndSession discards a session; engines have no teardown state.
func (s *AdvisorService) EndSession(sessionID string) {
	s.sessions.Delete(sessionID)
}

// Recommend materializes a session's final answers and runs the pipeline.
func (s *AdvisorService) Recommend(ctx context.Context, sessionID string) (domain.RecommendationResult, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return domain.RecommendationResult{}, domain.ErrSessionNotFound
	}
	return s.RecommendAnswers(ctx, session.Category(), session.FinalAnswers())
}

// RecommendAnswers runs the pipeline for an explicit answer set. Pick
// reconciliation and remote candidate resolution happen here, before any
// delegation, so the worker and inline paths score the same narrowed
// product set and produce identical results.
func (s *AdvisorService) RecommendAnswers(ctx context.Context, category domain.Category, answers domain.Answers) (domain.RecommendationResult, error) {
	s.reconcilePicks(ctx)
	candidateIDs := s.candidateIDs(ctx, category, answers)

	if s.scorer != nil {
		return s.scorer.Score(ctx, category, answers, s.opts, candidateIDs)
	}

	products, err := s.catalogs.Products(ctx, category)
	if err != nil {
		return domain.RecommendationResult{}, err
	}
	return recommend.Run(category, answers, recommend.Narrow(products, candidateIDs), s.opts)
}

// candidateIDs resolves the remote pre-filter's candidate set. Any failure
// of the remote call degrades silently to nil, meaning the full catalog;
// this path never errors to the caller.
func (s *AdvisorService) candidateIDs(ctx context.Context, category domain.Category, answers domain.Answers) []string {
	if s.candidate == nil {
		return nil
	}
	ids, err := s.candidate.CandidateIDs(ctx, category, answers)
	if err != nil {
		log.Printf("advisor: remote pre-filter unavailable, using full catalog: %v", err)
		return nil
	}
	return ids
}

// SavePick stores a product a user wants to keep, keyed by product id.
func (s *AdvisorService) SavePick(ctx context.Context, productID string, category domain.Category) error {
	picks, err := s.loadPicks(ctx)
	if err != nil {
		return err
	}
	picks[productID] = category
	return s.storePicks(ctx, picks)
}

// SavedPicks returns the saved product-id to category map.
func (s *AdvisorService) SavedPicks(ctx context.Context) (map[string]domain.Category, error) {
	return s.loadPicks(ctx)
}

// reconcilePicks corrects stale category assignments in the saved-pick map
// against the loaded catalogs. Under RefitOnce this runs a single time per
// process; under RefitAlways it re-runs on every recommendation so later
// catalog reloads with different category assignments are picked up.
func (s *AdvisorService) reconcilePicks(ctx context.Context) {
	switch s.refitPolicy {
	case RefitAlways:
		s.refitPicks(ctx)
	default:
		s.refitOnce.Do(func() { s.refitPicks(ctx) })
	}
}

func (s *AdvisorService) refitPicks(ctx context.Context) {
	picks, err := s.loadPicks(ctx)
	if err != nil || len(picks) == 0 {
		return
	}
	changed := false
	for _, category := range domain.Categories() {
		products, err := s.catalogs.Products(ctx, category)
		if err != nil {
			continue
		}
		for _, p := range products {
			if got, ok := picks[p.ID]; ok && got != p.Category {
				picks[p.ID] = p.Category
				changed = true
			}
		}
	}
	if changed {
		if err := s.storePicks(ctx, picks); err != nil {
			log.Printf("advisor: refit saved picks: %v", err)
		}
	}
}

func (s *AdvisorService) loadPicks(ctx context.Context) (map[string]domain.Category, error) {
	picks := make(map[string]domain.Category)
	if s.prefs == nil {
		return picks, nil
	}
	raw, ok, err := s.prefs.Get(ctx, savedPicksKey)
	if err != nil || !ok {
		return picks, err
	}
	if err := json.Unmarshal([]byte(raw), &picks); err != nil {
		return make(map[string]domain.Category), nil
	}
	return picks, nil
}

func (s *AdvisorService) storePicks(ctx context.Context, picks map[string]domain.Category) error {
	if s.prefs == nil {
		return nil
	}
	raw, err := json.Marshal(picks)
	if err != nil {
		return err
	}
	return s.prefs.Set(ctx, savedPicksKey, string(raw))
}

// NewSession is exported for infrastructure layers that need to seed sessions.
func NewSession(id string, category domain.Category, mode domain.Mode) *Session {
	return newSession(id, category, mode)
}

// Session owns one quiz engine. The engine itself is single-goroutine by
// design; the session's mutex serializes access from transport goroutines.
type Session struct {
	id       string
	category domain.Category

	mu     sync.Mutex
	engine *quiz.Engine
}

func newSession(id string, category domain.Category, mode domain.Mode) *Session {
	return &Session{
		id:       id,
		category: category,
		engine:   quiz.NewEngine(quiz.QuestionsFor(category), mode),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Category returns the product category this session shops for.
func (s *Session) Category() domain.Category { return s.category }

// Current returns the question the session is on, plus completion state.
func (s *Session) Current() (domain.Question, bool, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.engine.CurrentQuestion()
	return q, ok, s.engine.Complete()
}

// SetAnswer records an answer.
func (s *Session) SetAnswer(id string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.SetAnswer(id, value)
}

// Skip marks a question skipped, applying its default when present.
func (s *Session) Skip(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.SkipQuestion(id)
}

// Next advances the quiz; reports whether movement occurred.
func (s *Session) Next() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Next()
}

// Back retreats the quiz; reports whether movement occurred.
func (s *Session) Back() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Back()
}

// SetMode switches quiz depth, keeping the current question when possible.
func (s *Session) SetMode(mode domain.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.SetMode(mode)
}

// FinalAnswers returns the scoring-ready answer set.
func (s *Session) FinalAnswers() domain.Answers {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.FinalAnswers()
}
