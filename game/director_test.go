package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/they4kman/prizegrid/storage/memory"
)

// scanDirector opens boxes in id order.
type scanDirector struct {
	store *Store
	next  int
}

func (director *scanDirector) Init(store *Store) {
	director.store = store
	director.next = 0
}

func (director *scanDirector) Act(ctx context.Context) (Box, bool, error) {
	for director.next < director.store.TotalBoxes() {
		id := director.next
		director.next++
		opened, err := director.store.OpenBox(ctx, id)
		if opened {
			box, _ := director.store.Box(id)
			return box, true, err
		}
	}
	return Box{}, false, nil
}

func TestPlayOpensEverything(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, memory.New())
	if err := store.StartGame(ctx, Config{Width: 3, Height: 3, SmallPrizeCount: 2}); err != nil {
		t.Fatalf("start game: %v", err)
	}
	if _, err := store.OpenBox(ctx, 4); err != nil {
		t.Fatalf("open: %v", err)
	}

	opened, err := Play(ctx, store, &scanDirector{}, 0, 0)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if len(opened) != 8 {
		t.Fatalf("expected the 8 closed boxes to be opened, got %d", len(opened))
	}
	if stats := store.Stats(); stats.Remaining != 0 {
		t.Fatalf("expected no remaining boxes, got %d", stats.Remaining)
	}
}

func TestPlayStopsAtLimit(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, memory.New())
	if err := store.StartGame(ctx, Config{Width: 4, Height: 4}); err != nil {
		t.Fatalf("start game: %v", err)
	}

	opened, err := Play(ctx, store, &scanDirector{}, 3, time.Millisecond)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if len(opened) != 3 || store.Stats().Opened != 3 {
		t.Fatalf("expected 3 opens, got %d", len(opened))
	}
}

func TestPlayHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := newTestStore(t, memory.New())
	if err := store.StartGame(ctx, Config{Width: 2, Height: 2}); err != nil {
		t.Fatalf("start game: %v", err)
	}
	cancel()

	opened, err := Play(ctx, store, &scanDirector{}, 0, 0)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(opened) != 0 {
		t.Fatalf("expected nothing opened, got %v", opened)
	}
}
