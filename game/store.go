package game

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/they4kman/prizegrid/storage"
)

// CelebrationFunc is notified once for every opened box holding a prize.
type CelebrationFunc func(box Box)

type Option func(store *Store)

// WithRand sets the random source used to shuffle new grids.
func WithRand(rng Rand) Option {
	return func(store *Store) {
		store.rng = rng
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(store *Store) {
		store.log = log
	}
}

// WithHistorySize bounds RecentOpens. Zero disables the history.
func WithHistorySize(size int) Option {
	return func(store *Store) {
		store.history.size = size
	}
}

func OnCelebrate(fn CelebrationFunc) Option {
	return func(store *Store) {
		store.celebrate = append(store.celebrate, fn)
	}
}

// Store owns the game state. Every mutation goes through its methods and is
// written to the slot before the method returns.
type Store struct {
	mu sync.Mutex

	slot      storage.Slot
	rng       Rand
	log       logrus.FieldLogger
	celebrate []CelebrationFunc
	history   history

	state State
}

// NewStore returns a store holding the default configuration and no boxes.
// Call Load to rehydrate from slot.
func NewStore(slot storage.Slot, opts ...Option) *Store {
	store := &Store{
		slot:    slot,
		log:     logrus.StandardLogger(),
		history: history{size: defaultHistorySize},
		state:   State{Config: NewConfig()},
	}
	for _, opt := range opts {
		opt(store)
	}

	if store.rng == nil {
		rng, err := NewRand(0)
		if err != nil {
			store.log.WithError(err).Warn("falling back to time-seeded random source")
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		store.rng = rng
	}

	return store
}

// AddCelebrationListener registers fn for every future celebration.
func (store *Store) AddCelebrationListener(fn CelebrationFunc) {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.celebrate = append(store.celebrate, fn)
}

func (store *Store) Config() Config {
	store.mu.Lock()
	defer store.mu.Unlock()

	return store.state.Config
}

func (store *Store) GameStarted() bool {
	store.mu.Lock()
	defer store.mu.Unlock()

	return store.state.GameStarted
}

// TotalBoxes is Width*Height of the live configuration.
func (store *Store) TotalBoxes() int {
	store.mu.Lock()
	defer store.mu.Unlock()

	return store.state.TotalBoxes()
}

// Boxes returns a copy of the collection in display order.
func (store *Store) Boxes() []Box {
	store.mu.Lock()
	defer store.mu.Unlock()

	return store.state.clone().Boxes
}

func (store *Store) Box(id int) (Box, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()

	idx := store.indexOf(id)
	if idx < 0 {
		return Box{}, false
	}
	return store.state.Boxes[idx], true
}

// State returns a deep copy of the whole game state.
func (store *Store) State() State {
	store.mu.Lock()
	defer store.mu.Unlock()

	return store.state.clone()
}

// RecentOpens returns the last opened boxes, oldest first.
func (store *Store) RecentOpens() []Box {
	store.mu.Lock()
	defer store.mu.Unlock()

	return store.history.list()
}

// Stats summarizes progress through the current grid.
type Stats struct {
	Total      int
	Opened     int
	Remaining  int
	LargeFound int
	SmallFound int
	Winnings   int
}

func (store *Store) Stats() Stats {
	store.mu.Lock()
	defer store.mu.Unlock()

	stats := Stats{Total: len(store.state.Boxes)}
	for _, box := range store.state.Boxes {
		if !box.Opened {
			continue
		}
		stats.Opened++
		stats.Winnings += box.Prize
		switch box.Prize {
		case LargePrize:
			stats.LargeFound++
		case SmallPrize:
			stats.SmallFound++
		}
	}
	stats.Remaining = stats.Total - stats.Opened
	return stats
}

// InitializeGrid replaces the boxes with a freshly shuffled grid for the
// current configuration and persists it.
func (store *Store) InitializeGrid(ctx context.Context) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	return store.initializeLocked(ctx)
}

// StartGame sets a new configuration, marks the game started and generates
// a fresh grid. An invalid config leaves the store untouched.
func (store *Store) StartGame(ctx context.Context, config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	store.state.Config = config
	store.state.GameStarted = true
	return store.initializeLocked(ctx)
}

// ResetGame marks the game as not started. Boxes and their progress are kept.
func (store *Store) ResetGame(ctx context.Context) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.state.GameStarted = false
	store.log.Debug("game reset")
	return store.saveLocked(ctx)
}

// OpenBox opens the box with the given id. Unknown ids and boxes that are
// already open are ignored, so opened reports whether anything changed.
// Any error comes from persisting the new state; the box stays opened.
func (store *Store) OpenBox(ctx context.Context, id int) (opened bool, err error) {
	store.mu.Lock()

	idx := store.indexOf(id)
	if idx < 0 || store.state.Boxes[idx].Opened {
		store.mu.Unlock()
		return false, nil
	}

	store.state.Boxes[idx].Opened = true
	box := store.state.Boxes[idx]
	store.history.record(box)
	err = store.saveLocked(ctx)

	listeners := make([]CelebrationFunc, len(store.celebrate))
	copy(listeners, store.celebrate)
	store.mu.Unlock()

	store.log.WithFields(logrus.Fields{"box": box.ID, "prize": box.Prize}).Debug("box opened")

	if box.HasPrize() {
		store.signal(listeners, box)
	}

	return true, err
}

// Save writes the whole state to the slot.
func (store *Store) Save(ctx context.Context) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	return store.saveLocked(ctx)
}

// Load replaces the in-memory state with the saved one.
//
// An empty slot is not an error: a grid is generated from the current
// configuration (the game stays not started) and saved. A saved value that
// does not describe a valid grid is discarded in favour of a fresh default
// grid, and Load returns a *PersistenceError wrapping ErrMalformedState so
// the caller can report it. If the slot itself fails, the state is left as
// it was.
func (store *Store) Load(ctx context.Context) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	data, err := store.slot.Get(ctx, StorageKey)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		store.log.Info("no saved game found, generating a new grid")
		return store.initializeLocked(ctx)
	case err != nil:
		return &PersistenceError{Op: "load", Key: StorageKey, Err: err}
	}

	var loaded State
	if err := json.Unmarshal(data, &loaded); err != nil {
		err = fmt.Errorf("%w: %v", ErrMalformedState, err)
		return store.discardLocked(ctx, err)
	}
	if err := loaded.Validate(); err != nil {
		return store.discardLocked(ctx, err)
	}

	store.state = loaded
	store.history.clear()
	store.log.WithField("config", loaded.Config.String()).Debug("game loaded")
	return nil
}

func (store *Store) discardLocked(ctx context.Context, cause error) error {
	loadErr := &PersistenceError{Op: "load", Key: StorageKey, Err: cause}
	store.log.WithError(loadErr).Warn("discarding saved game")

	store.state = State{Config: NewConfig()}
	if err := store.initializeLocked(ctx); err != nil {
		return errors.Join(loadErr, err)
	}
	return loadErr
}

func (store *Store) initializeLocked(ctx context.Context) error {
	if err := store.state.Config.Validate(); err != nil {
		return err
	}

	store.state.Boxes = generateBoxes(store.state.Config, store.rng)
	store.history.clear()

	store.log.WithField("config", store.state.Config.String()).Debug("grid initialized")
	return store.saveLocked(ctx)
}

func (store *Store) saveLocked(ctx context.Context) error {
	data, err := json.Marshal(store.state)
	if err != nil {
		return &PersistenceError{Op: "save", Key: StorageKey, Err: err}
	}
	if err := store.slot.Put(ctx, StorageKey, data); err != nil {
		return &PersistenceError{Op: "save", Key: StorageKey, Err: err}
	}
	return nil
}

// indexOf returns the position of the box with id, or -1.
func (store *Store) indexOf(id int) int {
	boxes := store.state.Boxes
	if id >= 0 && id < len(boxes) && boxes[id].ID == id {
		return id
	}
	for idx, box := range boxes {
		if box.ID == id {
			return idx
		}
	}
	return -1
}

// signal runs every listener. A panicking listener is logged and skipped.
func (store *Store) signal(listeners []CelebrationFunc, box Box) {
	for _, fn := range listeners {
		func() {
			defer func() {
				if r := recover(); r != nil {
					store.log.WithFields(logrus.Fields{"box": box.ID, "panic": r}).Error("celebration listener failed")
				}
			}()
			fn(box)
		}()
	}
}
