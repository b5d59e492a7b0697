package game

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/they4kman/prizegrid/storage/memory"
)

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t, memory.New(), WithRand(lastRand{}))
	if err := store.StartGame(ctx, Config{Width: 3, Height: 2, LargePrizeCount: 1, SmallPrizeCount: 2, Minigame: true}); err != nil {
		t.Fatalf("start game: %v", err)
	}
	for _, id := range []int{0, 2, 4} {
		if _, err := store.OpenBox(ctx, id); err != nil {
			t.Fatalf("open %d: %v", id, err)
		}
	}

	snapshot := store.Snapshot()
	if snapshot.SerializedBoard != "*s$\n#.#" {
		t.Fatalf("unexpected board %q", snapshot.SerializedBoard)
	}

	loaded, err := LoadSnapshot(snapshot.Serialize())
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if !reflect.DeepEqual(snapshot, loaded) {
		t.Fatalf("expected %+v, got %+v", snapshot, loaded)
	}

	other := newTestStore(t, memory.New())
	if err := other.ApplySnapshot(ctx, loaded, false); err != nil {
		t.Fatalf("apply snapshot: %v", err)
	}
	if !reflect.DeepEqual(store.State(), other.State()) {
		t.Fatalf("expected identical state\nwant: %+v\ngot:  %+v", store.State(), other.State())
	}
}

func TestSnapshotFreshClosesBoxes(t *testing.T) {
	snapshot := &BoardSnapshot{Started: true, SerializedBoard: "*.\n$#\n"}

	state, err := snapshot.State(true)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state.Width != 2 || state.Height != 2 || state.LargePrizeCount != 1 || state.SmallPrizeCount != 1 {
		t.Fatalf("unexpected config %v", state.Config)
	}
	for _, box := range state.Boxes {
		if box.Opened {
			t.Fatalf("expected %v to be closed", box)
		}
	}
	if !state.GameStarted {
		t.Fatal("expected started flag to be kept")
	}
}

func TestSnapshotAcceptsCRLF(t *testing.T) {
	unix := &BoardSnapshot{Started: true, SerializedBoard: "*s$\n#.#\n"}
	windows := &BoardSnapshot{Started: true, SerializedBoard: "*s$\r\n#.#\r\n"}

	want, err := unix.State(false)
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	got, err := windows.State(false)
	if err != nil {
		t.Fatalf("state with CRLF rows: %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if got.Width != 3 || got.Height != 2 {
		t.Fatalf("expected a 3x2 grid, got %dx%d", got.Width, got.Height)
	}

	loaded, err := LoadSnapshot("minigame: false\r\nstarted: true\r\nboard: |-\r\n  *s$\r\n  #.#\r\n")
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if got, err := loaded.State(false); err != nil || !reflect.DeepEqual(want, got) {
		t.Fatalf("expected CRLF document to load as %+v, got %+v (%v)", want, got, err)
	}
}

func TestSnapshotRejectsMalformedBoards(t *testing.T) {
	tests := map[string]string{
		"empty":        "",
		"ragged":       "##\n#",
		"unknown char": "#?",
		"stray CR":     "#\r#",
	}
	for name, board := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := (&BoardSnapshot{SerializedBoard: board}).State(false)
			if !errors.Is(err, ErrMalformedState) {
				t.Fatalf("expected ErrMalformedState, got %v", err)
			}
		})
	}
}
