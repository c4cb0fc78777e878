package tui

import "strconv"

// Viewport is a fixed-height window over a list that follows its tail.
type Viewport struct {
	Height int // Rows visible at once; 0 or less shows everything
	offset int
}

// NewViewport creates a viewport of the given height.
func NewViewport(height int) *Viewport {
	return &Viewport{Height: height}
}

// ScrollTo positions the window so that index is the last visible row.
func (v *Viewport) ScrollTo(index int) {
	if v.Height <= 0 || index < v.Height {
		v.offset = 0
		return
	}
	v.offset = index - v.Height + 1
}

// Follow scrolls to the last index of a list of length total and returns the
// visible half-open range [start, end).
func (v *Viewport) Follow(total int) (start, end int) {
	v.ScrollTo(total - 1)
	return v.Range(total)
}

// Range returns the visible half-open range for a list of length total.
func (v *Viewport) Range(total int) (start, end int) {
	start = v.offset
	if start > total {
		start = total
	}
	end = total
	if v.Height > 0 && start+v.Height < end {
		end = start + v.Height
	}
	return start, end
}

// Offset is the index of the first visible row.
func (v *Viewport) Offset() int {
	return v.offset
}

func itoa(i int) string {
	return strconv.Itoa(i)
}
