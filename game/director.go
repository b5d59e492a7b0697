package game

import (
	"context"
	"time"
)

type Director interface {
	/**
	 * Initialize the director
	 */
	Init(*Store)

	/**
	 * Open a single box. Reports false once nothing is left to open
	 */
	Act(ctx context.Context) (Box, bool, error)
}

// Play lets director open boxes until limit boxes were opened (no limit if
// limit <= 0), the director runs out of boxes, or ctx is done. With a
// positive interval, Play waits that long between opens. It returns the
// boxes opened, in order.
func Play(ctx context.Context, store *Store, director Director, limit int, interval time.Duration) ([]Box, error) {
	director.Init(store)

	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	var opened []Box
	for limit <= 0 || len(opened) < limit {
		if err := ctx.Err(); err != nil {
			return opened, err
		}

		box, ok, err := director.Act(ctx)
		if ok {
			opened = append(opened, box)
		}
		if err != nil {
			return opened, err
		}
		if !ok {
			break
		}

		if tick != nil && (limit <= 0 || len(opened) < limit) {
			select {
			case <-ctx.Done():
				return opened, ctx.Err()
			case <-tick:
			}
		}
	}

	return opened, nil
}
