package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/scrollscrub/common"
)

const (
	navHeight  = 44
	navSpacing = 36
	blurFactor = 8
)

var (
	navItems = []string{"Overview", "Why Apple Vision Pro", "Tech Specs", "Buy"}
	navBar   = color.NRGBA{R: 0x16, G: 0x16, B: 0x17, A: 0xcc}
)

// navRects lays the header items out right-aligned in the header bar.
func (g *Game) navRects() []common.Rect {
	rects := make([]common.Rect, len(navItems))
	x := float64(common.BaseWidth) - navSpacing
	for i := len(navItems) - 1; i >= 0; i-- {
		w, h := text.Measure(navItems[i], g.navFace, 0)
		x -= w
		rects[i] = common.Rect{X: x, Y: (navHeight - h) / 2, Width: w, Height: h}
		x -= navSpacing
	}
	return rects
}

// navHovered reports whether the cursor is over a header item.
func (g *Game) navHovered() bool {
	cx, cy := ebiten.CursorPosition()
	cursor := common.Rect{X: float64(cx), Y: float64(cy), Width: 1, Height: 1}
	for _, r := range g.navRects() {
		if r.Intersects(cursor) {
			return true
		}
	}
	return false
}

func (g *Game) drawNav(screen *ebiten.Image) {
	vector.FillRect(screen, 0, 0, common.BaseWidth, navHeight, navBar, false)
	for i, r := range g.navRects() {
		op := &text.DrawOptions{}
		op.GeoM.Translate(r.X, r.Y)
		op.ColorScale.ScaleWithColor(hudWhite)
		text.Draw(screen, navItems[i], g.navFace, op)
	}
}
