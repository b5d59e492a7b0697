package game

// prizePool lists every prize for config: large prizes first, then small
// prizes, padded with NoPrize up to TotalBoxes.
func prizePool(config Config) []int {
	total := config.TotalBoxes()
	prizes := make([]int, 0, total)

	for i := 0; i < config.LargePrizeCount; i++ {
		prizes = append(prizes, LargePrize)
	}
	for i := 0; i < config.SmallPrizeCount; i++ {
		prizes = append(prizes, SmallPrize)
	}
	for len(prizes) < total {
		prizes = append(prizes, NoPrize)
	}

	return prizes
}

// shuffle is a Fisher–Yates shuffle: walk i from the last index down to 1
// and swap with a uniformly drawn j in [0, i].
func shuffle(prizes []int, rng Rand) {
	for i := len(prizes) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		prizes[i], prizes[j] = prizes[j], prizes[i]
	}
}

// generateBoxes builds a fresh, fully closed grid. config must be valid.
func generateBoxes(config Config, rng Rand) []Box {
	prizes := prizePool(config)
	shuffle(prizes, rng)

	boxes := make([]Box, len(prizes))
	for idx, prize := range prizes {
		boxes[idx] = Box{
			ID:     idx,
			Prize:  prize,
			Opened: false,
		}
	}

	return boxes
}
