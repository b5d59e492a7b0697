package game

// Prize amounts, in whole euros.
const (
	LargePrize = 25000
	SmallPrize = 100
	NoPrize    = 0
)

// StorageKey is the durable slot holding the whole game state.
const StorageKey = "calendarState"

const (
	defaultWidth           = 100
	defaultHeight          = 100
	defaultSmallPrizeCount = 100
	defaultLargePrizeCount = 1

	defaultHistorySize = 10
)

// MaxBoxes bounds the number of boxes in a grid.
const MaxBoxes = 1 << 20

// Snapshot board characters
const (
	snapClosedEmpty = '#'
	snapClosedSmall = 's'
	snapClosedLarge = 'L'
	snapOpenedEmpty = '.'
	snapOpenedSmall = '$'
	snapOpenedLarge = '*'
)
