package game

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"
)

// BoardSnapshot is a human-editable layout of a grid: one text row per grid
// row, one character per box.
type BoardSnapshot struct {
	Minigame        bool   `yaml:"minigame"`
	Started         bool   `yaml:"started"`
	SerializedBoard string `yaml:"board"`
}

func (snapshot *BoardSnapshot) Serialize() string {
	out, err := yaml.Marshal(snapshot)
	if err != nil {
		panic(err)
	}

	return string(out)
}

// State rebuilds a game state from the snapshot. Dimensions and prize counts
// are derived from the board. With fresh set, every box starts closed.
func (snapshot *BoardSnapshot) State(fresh bool) (State, error) {
	board := strings.ReplaceAll(snapshot.SerializedBoard, "\r\n", "\n")
	rows := strings.Split(strings.TrimRight(board, "\n"), "\n")

	height := len(rows)
	width := len(rows[0])
	if width == 0 {
		return State{}, fmt.Errorf("%w: empty board", ErrMalformedState)
	}

	state := State{
		Config: Config{
			Width:    width,
			Height:   height,
			Minigame: snapshot.Minigame,
		},
		GameStarted: snapshot.Started,
		Boxes:       make([]Box, 0, width*height),
	}

	for y, row := range rows {
		if len(row) != width {
			return State{}, fmt.Errorf("%w: row %d has %d boxes, expected %d", ErrMalformedState, y, len(row), width)
		}
		for x, c := range row {
			box := Box{ID: y*width + x}
			if !box.deserialize(c, fresh) {
				return State{}, fmt.Errorf("%w: unknown box %q at (%d, %d)", ErrMalformedState, c, x, y)
			}

			switch box.Prize {
			case LargePrize:
				state.LargePrizeCount++
			case SmallPrize:
				state.SmallPrizeCount++
			}
			state.Boxes = append(state.Boxes, box)
		}
	}

	if err := state.Validate(); err != nil {
		return State{}, err
	}
	return state, nil
}

// Snapshot exports the current grid layout.
func (store *Store) Snapshot() *BoardSnapshot {
	store.mu.Lock()
	defer store.mu.Unlock()

	var board strings.Builder
	width := store.state.Width
	for idx, box := range store.state.Boxes {
		if idx > 0 && idx%width == 0 {
			board.WriteByte('\n')
		}
		board.WriteByte(box.serialize())
	}

	return &BoardSnapshot{
		Minigame:        store.state.Minigame,
		Started:         store.state.GameStarted,
		SerializedBoard: board.String(),
	}
}

// ApplySnapshot replaces the game state with the snapshot's and persists it.
func (store *Store) ApplySnapshot(ctx context.Context, snapshot *BoardSnapshot, fresh bool) error {
	state, err := snapshot.State(fresh)
	if err != nil {
		return err
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	store.state = state
	store.history.clear()
	return store.saveLocked(ctx)
}

func LoadSnapshot(in string) (*BoardSnapshot, error) {
	var snapshot BoardSnapshot
	if err := yaml.Unmarshal([]byte(in), &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}
