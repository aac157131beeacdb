package main

import (
	"bytes"
	"fmt"
	"image/color"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/milk9111/scrollscrub/assets"
	"github.com/milk9111/scrollscrub/common"
	"github.com/milk9111/scrollscrub/page"
	"github.com/milk9111/scrollscrub/prefabs"
	"github.com/milk9111/scrollscrub/render"
	"github.com/milk9111/scrollscrub/sequence"
)

// Options configures a Game.
type Options struct {
	AssetDirs   []string
	LoadTimeout time.Duration
	Watch       bool
	WatchDir    string
	Debug       bool
}

type Game struct {
	opts    Options
	fetcher sequence.Fetcher
	page    *page.Page
	bg      color.Color
	hud     *HUD
	watcher *prefabs.Watcher

	fontSrc   *text.GoTextFaceSource
	titleFace *text.GoTextFace
	navFace   *text.GoTextFace
	blurSrc   *ebiten.Image
	blurBuf   *ebiten.Image
	dt        time.Duration
	frames    int
}

func NewGame(opts Options) (*Game, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	g := &Game{
		opts:      opts,
		fetcher:   assets.NewAuto(opts.AssetDirs...),
		fontSrc:   src,
		titleFace: &text.GoTextFace{Source: src, Size: 48},
		navFace:   &text.GoTextFace{Source: src, Size: 15},
		dt:        time.Second / time.Duration(ebiten.TPS()),
	}

	if err := g.loadPage(); err != nil {
		return nil, err
	}
	g.hud = NewHUD(g, src)

	if opts.Watch {
		w, err := prefabs.NewWatcher(opts.WatchDir)
		if err != nil {
			log.Printf("prefab watcher disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// loadSequence builds a player for a sequence prefab, applying the
// command-line timeout when the prefab sets none.
func (g *Game) loadSequence(file string) (*sequence.Player, error) {
	spec, err := prefabs.LoadSequenceSpec(file)
	if err != nil {
		return nil, err
	}
	cfg := spec.Config()
	if cfg.LoadTimeout == 0 {
		cfg.LoadTimeout = g.opts.LoadTimeout
	}
	return sequence.New(cfg, g.fetcher, spec.Renderer())
}

// loadPage (re)builds the page from page.yaml, keeping the scroll position
// of the page it replaces.
func (g *Game) loadPage() error {
	spec, err := prefabs.LoadPageSpec()
	if err != nil {
		return err
	}
	pg, err := page.Build(spec, g.loadSequence)
	if err != nil {
		return err
	}
	if g.page != nil {
		pg.Scroll.Jump(g.page.Scroll.Target())
		for _, pl := range g.page.Sequences() {
			render.Forget(pl.Config().Name + "/")
		}
		g.page.Close()
	}
	g.page = pg
	g.bg = spec.Background.Or(color.Black)
	if g.hud != nil {
		g.hud = NewHUD(g, g.fontSrc)
	}
	return nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		g.watcher.Close()
	}
	g.page.Close()
}

func (g *Game) Update() error {
	g.frames++

	g.pollReload()

	if _, wy := ebiten.Wheel(); wy != 0 {
		g.page.ScrollBy(-wy)
	}
	g.handleKeys()

	g.page.SetHidden(!ebiten.IsFocused())
	g.page.SetHeaderHover(g.navHovered())
	g.page.Update(g.dt)
	g.hud.Update()
	return nil
}

func (g *Game) handleKeys() {
	vp := g.page.Scroll.Viewport
	switch {
	case ebiten.IsKeyPressed(ebiten.KeyArrowDown):
		g.page.ScrollBy(0.25)
	case ebiten.IsKeyPressed(ebiten.KeyArrowUp):
		g.page.ScrollBy(-0.25)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) {
		g.page.Scroll.ScrollBy(vp)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		g.page.Scroll.ScrollBy(-vp)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		g.page.Scroll.ScrollTo(0)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnd) {
		g.page.Scroll.ScrollTo(g.page.Scroll.Height)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.hud.ToggleVideo()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.opts.Debug = !g.opts.Debug
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.bg)

	offset := g.page.Scroll.Offset()
	vp := g.page.Scroll.Viewport
	view := g.page.Scroll.View()

	for _, s := range g.page.Sections {
		if !s.Rect.Intersects(view) {
			continue
		}
		y := s.ScreenY(offset, vp)
		if s.VideoPlayer != nil {
			if s.Blurred {
				g.drawBlurred(screen, s.VideoPlayer, y, vp)
			} else {
				drawPlayer(screen, s.VideoPlayer, y, vp)
			}
		}
		if s.Player != nil {
			drawPlayer(screen, s.Player, y, vp)
		}
		if s.Overlay != nil && s.OverlayOpacity > 0 {
			vector.FillRect(screen, 0, 0, common.BaseWidth, float32(vp), overlayColor(s.OverlayColor, s.OverlayOpacity), false)
		}
		if s.Text != "" {
			g.drawText(screen, s, y, vp)
		}
	}

	g.drawNav(screen)
	g.hud.Draw(screen)

	if g.opts.Debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS %0.1f  FPS %0.1f  offset %.0f/%.0f",
			ebiten.ActualTPS(), ebiten.ActualFPS(), offset, g.page.Scroll.Height-vp))
	}
}

// overlayColor scales c's alpha by opacity.
func overlayColor(c color.Color, opacity float64) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(math.Round(float64(n.A) * common.Clamp01(opacity)))
	return n
}

// drawPlayer fits the visible frame into the viewport at screen y.
func drawPlayer(screen *ebiten.Image, p *sequence.Player, y, vp float64) {
	slot, ok := p.VisibleFrame()
	if !ok || slot.Asset == nil {
		return
	}
	img := render.Frame(render.FrameKey(p.Config().Name, slot.Index), slot.Asset)
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	scale := math.Min(common.BaseWidth/float64(b.Dx()), vp/float64(b.Dy()))
	w, h := float64(b.Dx())*scale, float64(b.Dy())*scale

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate((common.BaseWidth-w)/2, y+(vp-h)/2)
	screen.DrawImage(img, op)
}

// drawBlurred draws the player's frame shrunk into a small buffer and
// stretched back up with linear filtering.
func (g *Game) drawBlurred(screen *ebiten.Image, p *sequence.Player, y, vp float64) {
	if g.blurSrc == nil {
		g.blurSrc = ebiten.NewImage(common.BaseWidth, common.BaseHeight)
		g.blurBuf = ebiten.NewImage(common.BaseWidth/blurFactor, common.BaseHeight/blurFactor)
	}
	g.blurSrc.Clear()
	g.blurBuf.Clear()
	drawPlayer(g.blurSrc, p, 0, vp)

	op := &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear
	op.GeoM.Scale(1.0/blurFactor, 1.0/blurFactor)
	g.blurBuf.DrawImage(g.blurSrc, op)

	op = &ebiten.DrawImageOptions{}
	op.Filter = ebiten.FilterLinear
	op.GeoM.Scale(blurFactor, blurFactor)
	op.GeoM.Translate(0, y)
	screen.DrawImage(g.blurBuf, op)
}

func (g *Game) drawText(screen *ebiten.Image, s *page.Section, y, vp float64) {
	if s.Opacity <= 0 {
		return
	}
	op := &text.DrawOptions{}
	op.PrimaryAlign = text.AlignCenter
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate(common.BaseWidth/2, y+vp/2+s.ShiftY)
	op.ColorScale.ScaleWithColor(color.White)
	op.ColorScale.ScaleAlpha(float32(s.Opacity))
	text.Draw(screen, s.Text, g.titleFace, op)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}
