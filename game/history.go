package game

import (
	"github.com/gammazero/deque"
)

// history remembers the most recently opened boxes, oldest first.
type history struct {
	size  int
	opens deque.Deque[Box]
}

func (h *history) record(box Box) {
	if h.size <= 0 {
		return
	}
	h.opens.PushBack(box)
	for h.opens.Len() > h.size {
		h.opens.PopFront()
	}
}

func (h *history) list() []Box {
	out := make([]Box, h.opens.Len())
	for i := range out {
		out[i] = h.opens.At(i)
	}
	return out
}

func (h *history) clear() {
	h.opens.Clear()
}
