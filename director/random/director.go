package random

import (
	"context"

	"github.com/they4kman/prizegrid/game"
)

// Director opens the closed boxes of a store in a random order.
type Director struct {
	rng   game.Rand
	store *game.Store
	order []int
}

func New(rng game.Rand) *Director {
	return &Director{rng: rng}
}

func (director *Director) Init(store *game.Store) {
	director.store = store
	director.order = director.order[:0]

	for _, box := range store.Boxes() {
		if !box.Opened {
			director.order = append(director.order, box.ID)
		}
	}

	for i := len(director.order) - 1; i > 0; i-- {
		j := director.rng.Intn(i + 1)
		director.order[i], director.order[j] = director.order[j], director.order[i]
	}
}

func (director *Director) Act(ctx context.Context) (game.Box, bool, error) {
	for len(director.order) > 0 {
		id := director.order[0]
		director.order = director.order[1:]

		opened, err := director.store.OpenBox(ctx, id)
		if !opened {
			// Opened by someone else since Init
			continue
		}
		box, _ := director.store.Box(id)
		return box, true, err
	}

	return game.Box{}, false, nil
}
