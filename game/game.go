package game

import (
	"fmt"
)

// Config describes the grid to generate.
type Config struct {
	Width, Height   int
	LargePrizeCount int
	SmallPrizeCount int

	// Whether the minigame mode is enabled
	Minigame bool
}

func NewConfig() Config {
	return Config{
		Width:           defaultWidth,
		Height:          defaultHeight,
		LargePrizeCount: defaultLargePrizeCount,
		SmallPrizeCount: defaultSmallPrizeCount,
		Minigame:        false,
	}
}

func (config Config) String() string {
	return fmt.Sprintf("%dx%d (large=%d, small=%d, minigame=%t)",
		config.Width, config.Height, config.LargePrizeCount, config.SmallPrizeCount, config.Minigame)
}

// TotalBoxes is always derived from the dimensions.
func (config Config) TotalBoxes() int {
	return config.Width * config.Height
}

// Validate returns a *ConfigurationError if no grid can be built from config.
func (config Config) Validate() error {
	var err error
	switch {
	case config.Width <= 0 || config.Height <= 0:
		err = ErrInvalidDimensions
	case config.Width > MaxBoxes/config.Height:
		err = ErrGridTooLarge
	case config.LargePrizeCount < 0 || config.SmallPrizeCount < 0:
		err = ErrNegativePrizeCount
	case config.LargePrizeCount > config.TotalBoxes() ||
		config.SmallPrizeCount > config.TotalBoxes()-config.LargePrizeCount:
		err = ErrTooManyPrizes
	}
	if err != nil {
		return &ConfigurationError{Config: config, Err: err}
	}
	return nil
}
