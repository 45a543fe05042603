package memory_test

import (
	"context"
	"testing"

	"gearmatch/internal/domain"
	"gearmatch/internal/infra/memory"
)

func TestSessionStoreLifecycle(t *testing.T) {
	store := memory.NewSessionStore()

	created := store.GetOrCreate("s1", domain.CategoryMouse, domain.ModeQuick)
	if created.ID() != "s1" || created.Category() != domain.CategoryMouse {
		t.Fatalf("unexpected session %v / %v", created.ID(), created.Category())
	}

	// Same id resumes the existing session, category argument notwithstanding.
	resumed := store.GetOrCreate("s1", domain.CategoryAudio, domain.ModeExpert)
	if resumed != created {
		t.Fatal("expected the original session to be resumed")
	}

	got, ok := store.Get("s1")
	if !ok || got != created {
		t.Fatal("Get should return the stored session")
	}

	store.Delete("s1")
	if _, ok := store.Get("s1"); ok {
		t.Fatal("session should be gone after Delete")
	}
	store.Delete("s1") // idempotent
}

func TestPrefsStoreRoundTrip(t *testing.T) {
	store := memory.NewPrefsStore()
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}
	if err := store.Set(ctx, "saved_picks", `{"m1":"mouse"}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, ok, err := store.Get(ctx, "saved_picks")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if value != `{"m1":"mouse"}` {
		t.Fatalf("unexpected value %q", value)
	}
}
