// Package placeholder draws the stand-in frames shown when a sequence asset is
// missing: a hue gradient keyed by frame index, a light card and a frame label.
package placeholder

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	cardRadius     = 20
	captionSpacing = 30
)

var (
	labelColor = color.RGBA{0x33, 0x33, 0x33, 0xff}
	cardColor  = color.NRGBA{0xff, 0xff, 0xff, 0xe6}
)

// Renderer produces deterministic placeholder frames. The zero value numbers
// frames from 0, steps the hue by 1 degree and draws no caption.
type Renderer struct {
	// HueStep is how many degrees the gradient hue moves per frame.
	HueStep float64
	// Caption is an optional second label line.
	Caption string
	// NumberBase is added to the index in the "Frame N" label.
	NumberBase int
}

var (
	fontOnce sync.Once
	fontErr  error
	goFont   *opentype.Font
)

func loadFont() (*opentype.Font, error) {
	fontOnce.Do(func() {
		goFont, fontErr = opentype.Parse(goregular.TTF)
		if fontErr != nil {
			fontErr = fmt.Errorf("placeholder: parse font: %w", fontErr)
		}
	})
	return goFont, fontErr
}

// Render draws frame index at w x h. It is safe for concurrent use.
func (r Renderer) Render(w, h, index int) image.Image {
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	r.fillGradient(img, index)
	fillCard(img)
	r.drawLabels(img, index)
	return img
}

func (r Renderer) hues(index int) (colorful.Color, colorful.Color) {
	step := r.HueStep
	if step == 0 {
		step = 1
	}
	hue := float64(index) * step
	from := colorful.Hsl(wrapHue(hue), 0.7, 0.5)
	to := colorful.Hsl(wrapHue(hue+60), 0.7, 0.3)
	return from, to
}

func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// fillGradient paints a linear gradient from the top-left to the
// bottom-right corner.
func (r Renderer) fillGradient(img *image.RGBA, index int) {
	from, to := r.hues(index)
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	denom := w*w + h*h
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			t := (float64(x)*w + float64(y)*h) / denom
			cr, cg, cb := from.BlendRgb(to, t).Clamped().RGB255()
			i := img.PixOffset(x, y)
			img.Pix[i+0] = cr
			img.Pix[i+1] = cg
			img.Pix[i+2] = cb
			img.Pix[i+3] = 0xff
		}
	}
}

func fillCard(img *image.RGBA) {
	b := img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	card := image.Rect(int(w*0.2), int(h*0.3), int(w*0.8), int(h*0.7))
	mask := &roundedRect{rect: card, radius: cardRadius}
	draw.DrawMask(img, card, image.NewUniform(cardColor), image.Point{}, mask, card.Min, draw.Over)
}

func (r Renderer) drawLabels(img *image.RGBA, index int) {
	f, err := loadFont()
	if err != nil {
		return
	}
	h := img.Bounds().Dy()
	size := math.Floor(float64(h) / 15)
	if size < 1 {
		return
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return
	}
	defer face.Close()

	centerX := img.Bounds().Dx() / 2
	drawCentered(img, face, fmt.Sprintf("Frame %d", index+r.NumberBase), centerX, h/2)
	if r.Caption != "" {
		drawCentered(img, face, r.Caption, centerX, h/2+captionSpacing)
	}
}

func drawCentered(dst draw.Image, face font.Face, s string, cx, baseline int) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(labelColor), Face: face}
	width := d.MeasureString(s).Round()
	d.Dot = fixed.P(cx-width/2, baseline)
	d.DrawString(s)
}

// roundedRect is an alpha mask covering rect with rounded corners.
type roundedRect struct {
	rect   image.Rectangle
	radius int
}

func (m *roundedRect) ColorModel() color.Model { return color.AlphaModel }

func (m *roundedRect) Bounds() image.Rectangle { return m.rect }

func (m *roundedRect) At(x, y int) color.Color {
	if !(image.Point{x, y}).In(m.rect) {
		return color.Alpha{}
	}
	r := min(m.radius, m.rect.Dx()/2, m.rect.Dy()/2)
	cx := clampInt(x, m.rect.Min.X+r, m.rect.Max.X-1-r)
	cy := clampInt(y, m.rect.Min.Y+r, m.rect.Max.Y-1-r)
	dx, dy := x-cx, y-cy
	if dx*dx+dy*dy > r*r {
		return color.Alpha{}
	}
	return color.Alpha{A: 0xff}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
