// Package scroll turns page scrolling into progress values for scroll-linked
// animations, in the spirit of ScrollTrigger.
package scroll

import (
	"math"

	"github.com/milk9111/scrollscrub/common"
)

// Page tracks the vertical scroll offset of a page taller than its viewport.
type Page struct {
	Height   float64
	Viewport float64
	// Smoothing is the fraction of the remaining distance covered per tick.
	// Zero or one jumps straight to the target.
	Smoothing float64

	offset float64
	target float64
}

func NewPage(height, viewport, smoothing float64) *Page {
	return &Page{Height: height, Viewport: viewport, Smoothing: smoothing}
}

func (p *Page) maxOffset() float64 {
	return math.Max(0, p.Height-p.Viewport)
}

// ScrollBy moves the target offset by dy page units.
func (p *Page) ScrollBy(dy float64) {
	p.ScrollTo(p.target + dy)
}

// ScrollTo sets the target offset, clamped to the page.
func (p *Page) ScrollTo(y float64) {
	p.target = math.Max(0, math.Min(y, p.maxOffset()))
}

// Jump moves to y without smoothing.
func (p *Page) Jump(y float64) {
	p.ScrollTo(y)
	p.offset = p.target
}

// Update advances the visible offset toward the target.
func (p *Page) Update() {
	if p.Smoothing <= 0 || p.Smoothing >= 1 {
		p.offset = p.target
		return
	}
	p.offset = common.Lerp(p.offset, p.target, p.Smoothing)
	if math.Abs(p.target-p.offset) < 0.5 {
		p.offset = p.target
	}
}

func (p *Page) Offset() float64 { return p.offset }

func (p *Page) Target() float64 { return p.target }

// View returns the visible part of the page in page coordinates.
func (p *Page) View() common.Rect {
	return common.Rect{Y: p.offset, Width: common.BaseWidth, Height: p.Viewport}
}

// Fraction reports how far down the page the viewport is, 0..1.
func (p *Page) Fraction() float64 {
	m := p.maxOffset()
	if m == 0 {
		return 0
	}
	return p.offset / m
}
