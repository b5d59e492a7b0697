package game

import (
	"encoding/json"
	"fmt"

	"github.com/they4kman/prizegrid/util/collections"
)

// State is everything the store persists.
type State struct {
	Config
	GameStarted bool
	Boxes       []Box
}

// persistedState is the wire shape of the durable slot. Field order and
// names are fixed.
type persistedState struct {
	Width           int   `json:"width"`
	Height          int   `json:"height"`
	Prize100Count   int   `json:"prize100Count"`
	Prize25000Count int   `json:"prize25000Count"`
	Minigame        bool  `json:"minigame"`
	GameStarted     bool  `json:"gameStarted"`
	Boxes           []Box `json:"boxes"`
}

func (state State) clone() State {
	out := state
	if state.Boxes != nil {
		out.Boxes = make([]Box, len(state.Boxes))
		copy(out.Boxes, state.Boxes)
	}
	return out
}

func (state State) MarshalJSON() ([]byte, error) {
	boxes := state.Boxes
	if boxes == nil {
		boxes = []Box{}
	}
	return json.Marshal(persistedState{
		Width:           state.Width,
		Height:          state.Height,
		Prize100Count:   state.SmallPrizeCount,
		Prize25000Count: state.LargePrizeCount,
		Minigame:        state.Minigame,
		GameStarted:     state.GameStarted,
		Boxes:           boxes,
	})
}

func (state *State) UnmarshalJSON(data []byte) error {
	var persisted persistedState
	if err := json.Unmarshal(data, &persisted); err != nil {
		return err
	}
	*state = State{
		Config: Config{
			Width:           persisted.Width,
			Height:          persisted.Height,
			LargePrizeCount: persisted.Prize25000Count,
			SmallPrizeCount: persisted.Prize100Count,
			Minigame:        persisted.Minigame,
		},
		GameStarted: persisted.GameStarted,
		Boxes:       persisted.Boxes,
	}
	return nil
}

// Validate checks that state describes a grid the store could have
// generated: valid config, one box per position, unique ids in range and a
// prize multiset matching the configured counts.
func (state State) Validate() error {
	if err := state.Config.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedState, err)
	}

	total := state.TotalBoxes()
	if len(state.Boxes) != total {
		return fmt.Errorf("%w: %d boxes for a grid of %d", ErrMalformedState, len(state.Boxes), total)
	}

	seen := make(collections.Set[int], total)
	large, small := 0, 0
	for _, box := range state.Boxes {
		if box.ID < 0 || box.ID >= total {
			return fmt.Errorf("%w: box id %d out of range", ErrMalformedState, box.ID)
		}
		if seen.Contains(box.ID) {
			return fmt.Errorf("%w: duplicate box id %d", ErrMalformedState, box.ID)
		}
		seen.Add(box.ID)

		switch box.Prize {
		case LargePrize:
			large++
		case SmallPrize:
			small++
		case NoPrize:
		default:
			return fmt.Errorf("%w: box %d has unknown prize %d", ErrMalformedState, box.ID, box.Prize)
		}
	}

	if large != state.LargePrizeCount || small != state.SmallPrizeCount {
		return fmt.Errorf("%w: found %d large and %d small prizes, expected %d and %d",
			ErrMalformedState, large, small, state.LargePrizeCount, state.SmallPrizeCount)
	}

	return nil
}
