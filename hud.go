package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/scrollscrub/common"
	"github.com/milk9111/scrollscrub/media"
	"github.com/milk9111/scrollscrub/page"
)

const (
	ringRadius  = 22
	ringWidth   = 4
	ringSteps   = 48
	barWidth    = 6
	barInset    = 24
	counterSize = 16
)

var (
	hudWhite = colornames.White
	hudTrack = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x40}
)

// HUD draws the frame counter and progress bar of the sequence in view, a
// play/pause button per video and the progress ring of ring videos.
type HUD struct {
	g        *Game
	ui       *ebitenui.UI
	controls []videoControl
	face     *text.GoTextFace
}

type videoControl struct {
	section *page.Section
	button  *widget.Button
}

// NewHUD builds controls for the videos of the game's current page.
func NewHUD(g *Game, src *text.GoTextFaceSource) *HUD {
	h := &HUD{g: g, face: &text.GoTextFace{Source: src, Size: counterSize}}

	btnImg := imageui.NewNineSliceColor(colornames.Darkslategray)
	btnPressed := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xc0})

	var face text.Face = text.NewGoXFace(basicfont.Face7x13)

	corner := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Bottom: 26, Right: 90}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionEnd,
				VerticalPosition:   widget.AnchorLayoutPositionEnd,
			}),
		),
	)

	for _, s := range g.page.Videos() {
		button := widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnPressed}),
			widget.ButtonOpts.Text(controlLabel(s), &face, &widget.ButtonTextColor{Idle: hudWhite}),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(96, 28)),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				s.Video.Toggle()
			}),
		)
		h.controls = append(h.controls, videoControl{section: s, button: button})
		corner.AddChild(button)
	}

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(corner)

	h.ui = &ebitenui.UI{Container: root}
	return h
}

func controlLabel(s *page.Section) string {
	return s.Video.Name + ": " + iconLabel(s.Video.Icon())
}

func iconLabel(icon media.Icon) string {
	if icon == media.IconPlay {
		return "Play"
	}
	return "Pause"
}

// focus returns the sequence section driving the viewport: the one whose
// trigger is active, else the last one scrolled past.
func (h *HUD) focus() *page.Section {
	offset := h.g.page.Scroll.Offset()
	var last *page.Section
	for _, s := range h.g.page.Sections {
		if s.Player == nil {
			continue
		}
		if s.Trigger.Active(offset) {
			return s
		}
		if last == nil || offset >= s.Trigger.Start {
			last = s
		}
	}
	return last
}

// ToggleVideo plays or pauses the video on screen.
func (h *HUD) ToggleVideo() {
	if s := h.g.page.VideoInView(); s != nil {
		s.Video.Toggle()
	}
}

func (h *HUD) Update() {
	for _, c := range h.controls {
		c.button.Text().Label = controlLabel(c.section)
	}
	h.ui.Update()
}

func (h *HUD) Draw(screen *ebiten.Image) {
	if s := h.focus(); s != nil {
		h.drawProgress(screen, s)
	}
	if len(h.controls) == 0 {
		return
	}
	h.ui.Draw(screen)
	view := h.g.page.Scroll.View()
	for _, c := range h.controls {
		if c.section.VideoRing && c.section.Rect.Intersects(view) {
			drawRing(screen, common.BaseWidth-50, common.BaseHeight-40, c.section.Video.Percent())
			break
		}
	}
}

// drawProgress shows "current / total" and a vertical fill bar on the right
// edge of the screen.
func (h *HUD) drawProgress(screen *ebiten.Image, s *page.Section) {
	p := s.Player
	if !p.Ready() {
		op := &text.DrawOptions{}
		op.GeoM.Translate(barInset, barInset)
		op.ColorScale.ScaleWithColor(hudWhite)
		text.Draw(screen, fmt.Sprintf("Loading %s...", p.Config().Name), h.face, op)
		return
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(barInset, barInset)
	op.ColorScale.ScaleWithColor(hudWhite)
	text.Draw(screen, fmt.Sprintf("%d / %d", p.Current()+1, p.Len()), h.face, op)

	x := float32(common.BaseWidth - barInset - barWidth)
	top := float32(barInset)
	height := float32(common.BaseHeight - 2*barInset)
	vector.FillRect(screen, x, top, barWidth, height, hudTrack, false)
	vector.FillRect(screen, x, top, barWidth, height*float32(p.Percent()/100), hudWhite, false)
}

// drawRing strokes a circle that fills clockwise from 12 o'clock as percent
// goes from 0 to 100.
func drawRing(screen *ebiten.Image, cx, cy, percent float64) {
	vector.StrokeCircle(screen, float32(cx), float32(cy), ringRadius, ringWidth, hudTrack, true)

	circ := media.Circumference(ringRadius)
	filled := 1 - media.RingOffset(circ, percent)/circ
	steps := int(math.Ceil(filled * ringSteps))
	for i := 0; i < steps; i++ {
		a0 := -math.Pi/2 + 2*math.Pi*float64(i)/ringSteps
		a1 := -math.Pi/2 + 2*math.Pi*math.Min(float64(i+1)/ringSteps, filled)
		vector.StrokeLine(screen,
			float32(cx+ringRadius*math.Cos(a0)), float32(cy+ringRadius*math.Sin(a0)),
			float32(cx+ringRadius*math.Cos(a1)), float32(cy+ringRadius*math.Sin(a1)),
			ringWidth, hudWhite, true)
	}
}
