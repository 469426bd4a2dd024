package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/robalobadob/wordsearch/internal/game"
)

func newSession(t *testing.T) *game.Session {
	t.Helper()
	s, err := game.NewSession(10, 10, []string{"CAT"}, game.WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	s := newSession(t)

	if err := st.View(ctx, s.ID, func(*game.Session) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Fatalf("View before Save = %v, want ErrNotFound", err)
	}
	if err := st.Save(ctx, s); err != nil {
		t.Fatal(err)
	}

	var remaining []string
	if err := st.View(ctx, s.ID, func(g *game.Session) error {
		remaining = g.Remaining()
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 1 {
		t.Fatalf("remaining = %v", remaining)
	}

	boom := errors.New("boom")
	if err := st.Update(ctx, s.ID, func(*game.Session) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("Update should pass through fn's error, got %v", err)
	}

	if err := st.Delete(ctx, s.ID); err != nil {
		t.Fatal(err)
	}
	if err := st.Update(ctx, s.ID, func(*game.Session) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update after Delete = %v, want ErrNotFound", err)
	}
	if err := st.Delete(ctx, "missing"); err != nil {
		t.Fatalf("Delete of a missing id = %v", err)
	}
}

func TestConcurrentClaimsConsumeOnce(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	s := newSession(t)
	p := s.Placements()[0]
	if err := st.Save(ctx, s); err != nil {
		t.Fatal(err)
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = st.Update(ctx, s.ID, func(g *game.Session) error {
				ok, err := g.Claim(p.Word, p.Row, p.Col, p.Direction)
				if err != nil {
					return err
				}
				if ok {
					mu.Lock()
					wins++
					mu.Unlock()
				}
				return nil
			})
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Fatalf("%d claims succeeded, want exactly 1", wins)
	}
	_ = st.View(ctx, s.ID, func(g *game.Session) error {
		if g.Attempts() != 16 || !g.Done() {
			t.Errorf("attempts=%d done=%v", g.Attempts(), g.Done())
		}
		return nil
	})
}

func TestIdleListsUntouchedSessions(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	m := &memory{sessions: make(map[string]entry), now: func() time.Time { return clock }}

	stale, fresh := newSession(t), newSession(t)
	if err := m.Save(ctx, stale); err != nil {
		t.Fatal(err)
	}
	if err := m.Save(ctx, fresh); err != nil {
		t.Fatal(err)
	}

	clock = clock.Add(time.Hour)
	// a claim keeps a session alive
	if err := m.Update(ctx, fresh.ID, func(*game.Session) error { return nil }); err != nil {
		t.Fatal(err)
	}

	ids, err := m.Idle(ctx, clock.Add(-30*time.Minute))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{stale.ID}, ids); diff != "" {
		t.Fatalf("idle ids (-want +got):\n%s", diff)
	}

	if ids, _ := m.Idle(ctx, clock.Add(-2*time.Hour)); len(ids) != 0 {
		t.Fatalf("nothing is older than two hours, got %v", ids)
	}
}
