package app_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"gearmatch/internal/app"
	"gearmatch/internal/domain"
	"gearmatch/internal/infra/memory"
	"gearmatch/internal/recommend"
	"gearmatch/internal/worker"
)

func testProducts() map[domain.Category][]domain.Product {
	return map[domain.Category][]domain.Product{
		domain.CategoryMouse: {
			{ID: "m1", Category: domain.CategoryMouse, Attrs: map[string]any{"wireless": true, "weight_grams": 63.0, "grip_styles": []string{"claw"}, "price_tier": "midrange"}},
			{ID: "m2", Category: domain.CategoryMouse, Attrs: map[string]any{"wireless": false, "weight_grams": 110.0, "price_tier": "budget"}},
		},
		domain.CategoryKeyboard: {
			{ID: "k1", Category: domain.CategoryKeyboard, Attrs: map[string]any{"wireless": true, "layout": "tkl", "price_tier": "midrange"}},
		},
	}
}

func newTestService(scorer app.Scorer, candidate app.CandidateFilter, refit app.RefitPolicy) *app.AdvisorService {
	catalogs := memory.NewCatalogRepository(memory.NewStaticCatalogLoader(testProducts()), 5*time.Minute)
	return app.NewAdvisorService(memory.NewSessionStore(), catalogs, memory.NewPrefsStore(), scorer, candidate, recommend.Options{MinScore: 10}, refit)
}

func TestStartSessionValidatesCategoryAndCatalog(t *testing.T) {
	ctx := context.Background()
	service := newTestService(nil, nil, app.RefitOnce)

	if _, err := service.StartSession(ctx, "s1", "toaster", domain.ModeQuick); !errors.Is(err, domain.ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
	// Audio is a valid category but has no catalog in the test loader.
	if _, err := service.StartSession(ctx, "s1", domain.CategoryAudio, domain.ModeQuick); !errors.Is(err, domain.ErrCatalogNotFound) {
		t.Fatalf("expected ErrCatalogNotFound, got %v", err)
	}
	if _, err := service.StartSession(ctx, "s1", domain.CategoryMouse, domain.ModeQuick); err != nil {
		t.Fatalf("start session: %v", err)
	}
}

func TestRecommendFromQuickSessionUsesDefaults(t *testing.T) {
	ctx := context.Background()
	service := newTestService(nil, nil, app.RefitOnce)

	session, err := service.StartSession(ctx, "s1", domain.CategoryMouse, domain.ModeQuick)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	session.SetAnswer("wireless", "wireless")

	result, err := service.Recommend(ctx, "s1")
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if result.TotalEvaluated != 2 {
		t.Fatalf("expected both mice evaluated, got %d", result.TotalEvaluated)
	}
	picks := append(result.TopPicks, result.Alternates...)
	if len(picks) != 1 || picks[0].Product.ID != "m1" {
		t.Fatalf("wired mouse should be pre-filtered out, got %+v", picks)
	}
}

func TestRecommendUnknownSession(t *testing.T) {
	service := newTestService(nil, nil, app.RefitOnce)
	if _, err := service.Recommend(context.Background(), "ghost"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestWorkerAndInlinePathsAgree(t *testing.T) {
	ctx := context.Background()
	answers := domain.Answers{"wireless": "either", "weight": "light", "budget": "midrange"}

	inlineService := newTestService(nil, nil, app.RefitOnce)
	inline, err := inlineService.RecommendAnswers(ctx, domain.CategoryMouse, answers)
	if err != nil {
		t.Fatalf("inline recommend: %v", err)
	}

	catalogs := memory.NewCatalogRepository(memory.NewStaticCatalogLoader(testProducts()), 5*time.Minute)
	dispatcher := worker.NewDispatcher(catalogs)
	defer dispatcher.Terminate()
	workerService := app.NewAdvisorService(memory.NewSessionStore(), catalogs, memory.NewPrefsStore(), dispatcher, nil, recommend.Options{MinScore: 10}, app.RefitOnce)

	delegated, err := workerService.RecommendAnswers(ctx, domain.CategoryMouse, answers)
	if err != nil {
		t.Fatalf("worker recommend: %v", err)
	}
	if !reflect.DeepEqual(inline, delegated) {
		t.Fatalf("inline and worker results must be identical:\ninline: %+v\nworker: %+v", inline, delegated)
	}
}

type stubCandidates struct {
	ids []string
	err error
}

func (s *stubCandidates) CandidateIDs(context.Context, domain.Category, domain.Answers) ([]string, error) {
	return s.ids, s.err
}

func TestRemoteFilterNarrowsCandidates(t *testing.T) {
	ctx := context.Background()
	service := newTestService(nil, &stubCandidates{ids: []string{"m2"}}, app.RefitOnce)

	result, err := service.RecommendAnswers(ctx, domain.CategoryMouse, domain.Answers{})
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	picks := append(result.TopPicks, result.Alternates...)
	if len(picks) != 1 || picks[0].Product.ID != "m2" {
		t.Fatalf("expected intersection with candidate ids, got %+v", picks)
	}
}

func TestRemoteFilterFailureFallsBackSilently(t *testing.T) {
	ctx := context.Background()
	service := newTestService(nil, &stubCandidates{err: errors.New("connection refused")}, app.RefitOnce)

	result, err := service.RecommendAnswers(ctx, domain.CategoryMouse, domain.Answers{})
	if err != nil {
		t.Fatalf("remote filter failure must never surface: %v", err)
	}
	if result.TotalEvaluated != 2 {
		t.Fatalf("fallback should use the full catalog, got %d", result.TotalEvaluated)
	}
}

func TestWorkerPathAppliesRemoteFilter(t *testing.T) {
	ctx := context.Background()
	catalogs := memory.NewCatalogRepository(memory.NewStaticCatalogLoader(testProducts()), 5*time.Minute)
	dispatcher := worker.NewDispatcher(catalogs)
	defer dispatcher.Terminate()
	service := app.NewAdvisorService(memory.NewSessionStore(), catalogs, memory.NewPrefsStore(), dispatcher, &stubCandidates{ids: []string{"m2"}}, recommend.Options{MinScore: 10}, app.RefitOnce)

	result, err := service.RecommendAnswers(ctx, domain.CategoryMouse, domain.Answers{})
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if result.TotalEvaluated != 1 {
		t.Fatalf("candidate narrowing must reach the worker, got %d evaluated", result.TotalEvaluated)
	}
	picks := append(result.TopPicks, result.Alternates...)
	if len(picks) != 1 || picks[0].Product.ID != "m2" {
		t.Fatalf("expected the worker to score only candidate m2, got %+v", picks)
	}
}

func TestWorkerPathStillRefitsSavedPicks(t *testing.T) {
	ctx := context.Background()
	catalogs := memory.NewCatalogRepository(memory.NewStaticCatalogLoader(testProducts()), 5*time.Minute)
	dispatcher := worker.NewDispatcher(catalogs)
	defer dispatcher.Terminate()
	service := app.NewAdvisorService(memory.NewSessionStore(), catalogs, memory.NewPrefsStore(), dispatcher, nil, recommend.Options{MinScore: 10}, app.RefitAlways)

	if err := service.SavePick(ctx, "k1", domain.CategoryMouse); err != nil {
		t.Fatalf("save pick: %v", err)
	}
	if _, err := service.RecommendAnswers(ctx, domain.CategoryMouse, domain.Answers{}); err != nil {
		t.Fatalf("recommend: %v", err)
	}

	picks, err := service.SavedPicks(ctx)
	if err != nil {
		t.Fatalf("saved picks: %v", err)
	}
	if picks["k1"] != domain.CategoryKeyboard {
		t.Fatalf("refit must run on the worker path too, got %v", picks["k1"])
	}
}

func TestSavedPickRefitCorrectsCategories(t *testing.T) {
	ctx := context.Background()
	service := newTestService(nil, nil, app.RefitAlways)

	// A pick hydrated with a stale category assignment.
	if err := service.SavePick(ctx, "k1", domain.CategoryMouse); err != nil {
		t.Fatalf("save pick: %v", err)
	}
	if _, err := service.RecommendAnswers(ctx, domain.CategoryMouse, domain.Answers{}); err != nil {
		t.Fatalf("recommend: %v", err)
	}

	picks, err := service.SavedPicks(ctx)
	if err != nil {
		t.Fatalf("saved picks: %v", err)
	}
	if picks["k1"] != domain.CategoryKeyboard {
		t.Fatalf("refit should correct k1 to keyboard, got %v", picks["k1"])
	}
}

func TestEndSessionDiscardsEngine(t *testing.T) {
	ctx := context.Background()
	service := newTestService(nil, nil, app.RefitOnce)

	if _, err := service.StartSession(ctx, "s1", domain.CategoryMouse, domain.ModeQuick); err != nil {
		t.Fatalf("start session: %v", err)
	}
	service.EndSession("s1")
	if _, err := service.Session("s1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected session discarded, got %v", err)
	}
}
