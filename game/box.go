package game

import (
	"fmt"
)

// Box is one cell of the prize grid. ID and Prize never change after
// generation; Opened only ever goes from false to true.
type Box struct {
	ID     int  `json:"id"`
	Prize  int  `json:"prize"`
	Opened bool `json:"opened"`
}

func (box Box) String() string {
	return fmt.Sprintf("Box(%d, prize=%d, opened=%t)", box.ID, box.Prize, box.Opened)
}

func (box Box) HasPrize() bool {
	return box.Prize > 0
}

func (box Box) serialize() byte {
	switch {
	case box.Opened && box.Prize == LargePrize:
		return snapOpenedLarge
	case box.Opened && box.Prize == SmallPrize:
		return snapOpenedSmall
	case box.Opened:
		return snapOpenedEmpty
	case box.Prize == LargePrize:
		return snapClosedLarge
	case box.Prize == SmallPrize:
		return snapClosedSmall
	default:
		return snapClosedEmpty
	}
}

func (box *Box) deserialize(c rune, fresh bool) bool {
	switch c {
	case snapClosedEmpty, snapOpenedEmpty:
		box.Prize = NoPrize
	case snapClosedSmall, snapOpenedSmall:
		box.Prize = SmallPrize
	case snapClosedLarge, snapOpenedLarge:
		box.Prize = LargePrize
	default:
		return false
	}

	switch c {
	case snapOpenedEmpty, snapOpenedSmall, snapOpenedLarge:
		box.Opened = !fresh
	default:
		box.Opened = false
	}

	return true
}
