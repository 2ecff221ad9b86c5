package game

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/park285/Cheese-chesscore/internal/analysis"
)

type recordingArchive struct {
	mu    sync.Mutex
	saved []*Game
	err   error
}

func (a *recordingArchive) SaveResult(_ context.Context, g *Game) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.saved = append(a.saved, g)
	return a.err
}

func newTestManager(t *testing.T) (*Manager, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	store, err := OpenStore(context.Background(), fmt.Sprintf("redis://%s/0", mr.Addr()), time.Hour)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	m := NewManager(store, nil)
	t.Cleanup(func() { _ = m.Close() })
	return m, mr
}

func TestManagerCreatePlayLoad(t *testing.T) {
	m, mr := newTestManager(t)
	ctx := context.Background()

	g, err := m.Create(ctx, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID == "" {
		t.Fatalf("empty id")
	}
	if ttl := mr.TTL("game:" + g.ID); ttl != time.Hour {
		t.Fatalf("ttl = %v", ttl)
	}

	g1, mv, err := m.Play(ctx, g.ID, PlayRequest{Move: "e2e4"})
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if mv.UCI() != "e2e4" || len(g1.Records) != 1 {
		t.Fatalf("move = %s records = %d", mv.UCI(), len(g1.Records))
	}

	loaded, err := m.Load(ctx, g.ID)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.FEN != g1.FEN || len(loaded.Records) != 1 {
		t.Fatalf("loaded = %+v", loaded)
	}

	moves, err := m.LegalMoves(ctx, g.ID)
	if err != nil || len(moves) != 20 {
		t.Fatalf("LegalMoves = %d, %v", len(moves), err)
	}
}

func TestManagerRejectionsLeaveStateUnchanged(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()
	g, _ := m.Create(ctx, "")

	if _, _, err := m.Play(ctx, g.ID, PlayRequest{Move: "e2e5"}); err == nil {
		t.Fatalf("expected illegal move error")
	}
	zero := 0
	if _, _, err := m.Play(ctx, g.ID, PlayRequest{Move: "e2e4", ExpectedPly: &zero}); err != nil {
		t.Fatalf("Play with ply 0: %v", err)
	}
	if _, _, err := m.Play(ctx, g.ID, PlayRequest{Move: "e7e5", ExpectedPly: &zero}); !errors.Is(err, ErrConcurrentUpdate) {
		t.Fatalf("stale play: %v", err)
	}
	cur, _ := m.Load(ctx, g.ID)
	if len(cur.Records) != 1 {
		t.Fatalf("records = %d", len(cur.Records))
	}
	if _, err := m.Load(ctx, "missing"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("missing: %v", err)
	}
	if _, _, err := m.Play(ctx, "missing", PlayRequest{Move: "e2e4"}); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("play missing: %v", err)
	}
}

func TestManagerArchivesFinishedGames(t *testing.T) {
	m, _ := newTestManager(t)
	arch := &recordingArchive{}
	m.AttachArchive(arch)
	ctx := context.Background()

	g, _ := m.Create(ctx, "")
	for _, mv := range []string{"f2f3", "e7e5", "g2g4"} {
		if _, _, err := m.Play(ctx, g.ID, PlayRequest{Move: mv}); err != nil {
			t.Fatalf("Play(%s): %v", mv, err)
		}
	}
	if len(arch.saved) != 0 {
		t.Fatalf("archived before the end")
	}
	final, _, err := m.Play(ctx, g.ID, PlayRequest{Move: "d8h4"})
	if err != nil {
		t.Fatalf("mate: %v", err)
	}
	if final.Result != analysis.BlackWon || len(arch.saved) != 1 || arch.saved[0].ID != g.ID {
		t.Fatalf("result = %s archived = %d", final.Result, len(arch.saved))
	}
	moves, err := m.LegalMoves(ctx, g.ID)
	if err != nil || moves != nil {
		t.Fatalf("finished game moves = %v, %v", moves, err)
	}

	arch.err = errors.New("db down")
	if _, err := m.Create(ctx, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"); err != nil {
		t.Fatalf("archive failure must not fail Create: %v", err)
	}
	if len(arch.saved) != 2 {
		t.Fatalf("stalemate start not archived")
	}
}

func TestStoreUpdateDetectsConcurrentWrite(t *testing.T) {
	m, mr := newTestManager(t)
	ctx := context.Background()
	g, _ := m.Create(ctx, "")

	other := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer other.Close()

	_, err := m.store.Update(ctx, g.ID, func(cur *Game) (*Game, error) {
		if err := other.Set(ctx, "game:"+g.ID, `{"id":"`+g.ID+`"}`, time.Hour).Err(); err != nil {
			t.Fatalf("racing write: %v", err)
		}
		return cur, nil
	})
	if !errors.Is(err, ErrConcurrentUpdate) {
		t.Fatalf("err = %v", err)
	}
}

func TestDisabledManager(t *testing.T) {
	m := NewManager(nil, nil)
	if _, err := m.Create(context.Background(), ""); !errors.Is(err, ErrStoreDisabled) {
		t.Fatalf("err = %v", err)
	}
	if _, err := m.Watch(context.Background(), "x"); !errors.Is(err, ErrStoreDisabled) {
		t.Fatalf("Watch err = %v", err)
	}
	if _, err := OpenStore(context.Background(), " ", 0); !errors.Is(err, ErrStoreDisabled) {
		t.Fatalf("OpenStore err = %v", err)
	}
}

func TestManagerWatchStreamsMoves(t *testing.T) {
	m, _ := newTestManager(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	g, err := m.Create(ctx, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	updates, err := m.Watch(ctx, g.ID)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	for _, mv := range []string{"e4", "e5"} {
		if _, _, err := m.Play(ctx, g.ID, PlayRequest{Move: mv}); err != nil {
			t.Fatalf("Play %s: %v", mv, err)
		}
	}
	for want := 1; want <= 2; want++ {
		select {
		case got := <-updates:
			if got.ID != g.ID || len(got.Records) != want {
				t.Fatalf("update %d = %+v", want, got)
			}
		case <-ctx.Done():
			t.Fatalf("timed out waiting for update %d", want)
		}
	}

	cancel()
	for range updates {
	}
}
