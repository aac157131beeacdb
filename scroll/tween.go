package scroll

import (
	"github.com/milk9111/scrollscrub/common"
)

// Tween interpolates an element's opacity and vertical shift across a
// trigger's progress.
type Tween struct {
	FromOpacity, ToOpacity float64
	FromY, ToY             float64
}

// At returns the opacity and y shift for progress.
func (tw Tween) At(progress float64) (opacity, y float64) {
	progress = common.Clamp01(progress)
	return common.Lerp(tw.FromOpacity, tw.ToOpacity, progress), common.Lerp(tw.FromY, tw.ToY, progress)
}

// Overlay dims while its element is on screen.
type Overlay struct {
	Element common.Rect
	// Opacity applied while visible.
	Opacity float64
}

// At returns the overlay opacity for the given viewport.
func (o Overlay) At(view common.Rect) float64 {
	if o.Element.Intersects(view) {
		return o.Opacity
	}
	return 0
}

// Pin keeps an element fixed on screen while offset is inside [Start, End].
type Pin struct {
	Start, End float64
}

// ScreenY returns where an element at page position top appears on screen.
func (p Pin) ScreenY(top, offset float64) float64 {
	switch {
	case offset < p.Start:
		return top - offset
	case offset > p.End:
		return top - offset + (p.End - p.Start)
	default:
		return top - p.Start
	}
}

// Sticky returns the screen y of a viewport-sized canvas that sticks to the
// top of the screen while its section [top, top+height] scrolls past.
func Sticky(top, height, offset, viewport float64) float64 {
	y := top - offset
	if y > 0 {
		return y
	}
	bottom := top + height - viewport - offset
	if bottom < 0 {
		return bottom
	}
	return 0
}
