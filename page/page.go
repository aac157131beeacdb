// Package page assembles the scroll-driven page from its prefab description:
// sequence players bound to scroll triggers, tweened text, overlays and
// videos.
package page

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/milk9111/scrollscrub/common"
	"github.com/milk9111/scrollscrub/media"
	"github.com/milk9111/scrollscrub/prefabs"
	"github.com/milk9111/scrollscrub/scroll"
	"github.com/milk9111/scrollscrub/sequence"
)

const (
	defaultStart = "top center"
	defaultEnd   = "bottom center"
)

// SequenceLoader builds a player for a sequence prefab file.
type SequenceLoader func(file string) (*sequence.Player, error)

// Section is one block of the page.
type Section struct {
	Name string
	Text string
	Rect common.Rect

	// Scroll-driven sequence.
	SequenceFile string
	Player       *sequence.Player
	Trigger      *scroll.Trigger
	armed        bool

	// Text fade/shift, optionally pinned while it plays.
	Tween        *scroll.Tween
	TweenTrigger *scroll.Trigger
	Pin          *scroll.Pin
	Opacity      float64
	ShiftY       float64

	Overlay        *scroll.Overlay
	OverlayOpacity float64
	OverlayColor   color.Color

	Video       *media.Video
	VideoFile   string
	VideoPlayer *sequence.Player
	// VideoRing shows playback progress as a ring around the video's button.
	VideoRing bool

	// HoverBlur sections are drawn blurred while the header is hovered.
	HoverBlur bool
	Blurred   bool
}

func (s *Section) close() {
	if s.Player != nil {
		s.Player.Close()
	}
	if s.VideoPlayer != nil {
		s.VideoPlayer.Close()
	}
}

// Armed reports whether the section's trigger is driving its player.
func (s *Section) Armed() bool { return s.armed }

// ScreenY is where the section's content is drawn for the page offset.
func (s *Section) ScreenY(offset, viewport float64) float64 {
	switch {
	case s.Pin != nil:
		return s.Pin.ScreenY(s.Rect.Y, offset)
	case s.Player != nil:
		return scroll.Sticky(s.Rect.Y, s.Rect.Height, offset, viewport)
	default:
		return s.Rect.Y - offset
	}
}

// Page is the runtime state of a page.
type Page struct {
	Name       string
	Scroll     *scroll.Page
	Sections   []*Section
	Guard      *media.VisibilityGuard
	WheelSpeed float64

	load SequenceLoader
}

// Build constructs a page and starts loading every sequence it references.
func Build(spec *prefabs.PageSpec, load SequenceLoader) (*Page, error) {
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("page: %w", err)
	}
	p := &Page{
		Name:       spec.Name,
		Scroll:     scroll.NewPage(spec.Height(), spec.Viewport, spec.Smoothing),
		Guard:      media.NewVisibilityGuard(),
		WheelSpeed: spec.WheelSpeed,
		load:       load,
	}
	if p.WheelSpeed <= 0 {
		p.WheelSpeed = 60
	}

	for i := range spec.Sections {
		s, err := p.buildSection(spec, &spec.Sections[i])
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("page: section %q: %w", spec.Sections[i].Name, err)
		}
		p.Sections = append(p.Sections, s)
	}
	return p, nil
}

func (p *Page) buildSection(spec *prefabs.PageSpec, ss *prefabs.SectionSpec) (_ *Section, err error) {
	s := &Section{
		Name:      ss.Name,
		Text:      ss.Text,
		Rect:      common.Rect{Y: ss.Top, Width: common.BaseWidth, Height: ss.Height},
		Opacity:   1,
		HoverBlur: ss.HoverBlur,
	}
	defer func() {
		if err != nil {
			s.close()
		}
	}()

	if ss.Sequence != "" {
		trigger, err := buildTrigger(spec, ss, ss.Trigger)
		if err != nil {
			return nil, err
		}
		player, err := p.load(ss.Sequence)
		if err != nil {
			return nil, err
		}
		s.SequenceFile = ss.Sequence
		s.Player = player
		s.Trigger = trigger
	}

	if ss.Tween != nil {
		tw := &scroll.Tween{
			FromOpacity: ss.Tween.FromOpacity,
			ToOpacity:   ss.Tween.ToOpacity,
			FromY:       ss.Tween.FromY,
			ToY:         ss.Tween.ToY,
		}
		trigger, err := buildTrigger(spec, ss, &prefabs.TriggerSpec{Start: ss.Tween.Start, End: ss.Tween.End})
		if err != nil {
			return nil, err
		}
		s.Tween = tw
		s.TweenTrigger = trigger
		s.Opacity, s.ShiftY = tw.At(0)
		trigger.OnUpdate = func(progress float64) {
			s.Opacity, s.ShiftY = tw.At(progress)
		}
		if ss.Tween.Pin {
			s.Pin = &scroll.Pin{Start: trigger.Start, End: trigger.End}
		}
	}

	if ss.Overlay != nil {
		s.Overlay = &scroll.Overlay{Element: s.Rect, Opacity: ss.Overlay.Opacity}
		s.OverlayColor = ss.Overlay.Color.Or(color.Black)
	}

	if ss.Video != nil {
		player, err := p.load(ss.Video.Sequence)
		if err != nil {
			return nil, err
		}
		s.Video = media.NewVideo(ss.Video.Name, time.Duration(ss.Video.DurationMS)*time.Millisecond, ss.Video.Loop, ss.Video.Autoplay)
		s.VideoFile = ss.Video.Sequence
		s.VideoPlayer = player
		s.VideoRing = ss.Video.Ring
		p.Guard.Add(s.Video)
	}
	return s, nil
}

func buildTrigger(spec *prefabs.PageSpec, owner *prefabs.SectionSpec, ts *prefabs.TriggerSpec) (*scroll.Trigger, error) {
	startSec, endSec := owner, owner
	if ts.StartSection != "" {
		startSec, _ = spec.Section(ts.StartSection)
	}
	if ts.EndSection != "" {
		endSec, _ = spec.Section(ts.EndSection)
	}
	start, err := scroll.ParsePosition(orDefault(ts.Start, defaultStart))
	if err != nil {
		return nil, err
	}
	end, err := scroll.ParsePosition(orDefault(ts.End, defaultEnd))
	if err != nil {
		return nil, err
	}
	ease, err := scroll.NewEase(ts.Ease)
	if err != nil {
		return nil, err
	}
	t := scroll.NewTrigger(start, end, startSec.Top, startSec.Height, endSec.Top, endSec.Height, spec.Viewport)
	t.Scrub = ts.Scrub
	t.Ease = ease
	return t, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// ScrollBy scrolls by wheel notches.
func (p *Page) ScrollBy(notches float64) {
	p.Scroll.ScrollBy(notches * p.WheelSpeed)
}

// SetHeaderHover blurs every HoverBlur section while the header is hovered.
func (p *Page) SetHeaderHover(hover bool) {
	for _, s := range p.Sections {
		s.Blurred = s.HoverBlur && hover
	}
}

// SetHidden pauses or resumes videos as the page loses or regains focus.
func (p *Page) SetHidden(hidden bool) {
	p.Guard.SetHidden(hidden)
}

// Update advances scrolling, triggers and videos by dt.
func (p *Page) Update(dt time.Duration) {
	p.Scroll.Update()
	offset := p.Scroll.Offset()
	view := p.Scroll.View()
	secs := dt.Seconds()

	for _, s := range p.Sections {
		if s.Player != nil {
			p.arm(s)
			if s.armed {
				s.Trigger.Update(offset, secs)
			}
		}
		if s.TweenTrigger != nil {
			s.TweenTrigger.Update(offset, secs)
		}
		if s.Overlay != nil {
			s.OverlayOpacity = s.Overlay.At(view)
		}
		if s.Video != nil {
			s.Video.Advance(dt)
			s.VideoPlayer.Seek(s.Video.Frame(s.VideoPlayer.Len()))
		}
	}
}

// arm binds a section's trigger to its player once the player is ready.
func (p *Page) arm(s *Section) {
	if s.armed {
		return
	}
	select {
	case <-s.Player.Done():
	default:
		return
	}
	player := s.Player
	s.Trigger.OnUpdate = player.Update
	s.armed = true
	log.Printf("page: %s: sequence %s ready, scroll trigger armed", p.Name, player.Config().Name)
}

// ReplaceSequence reloads every section using file, keeping scroll state.
// Either every section gets a new player or, on error, none does.
func (p *Page) ReplaceSequence(file string) error {
	type swap struct {
		s     *Section
		video bool
		next  *sequence.Player
	}
	var swaps []swap
	for _, s := range p.Sections {
		for _, video := range []bool{false, true} {
			if (!video && s.SequenceFile != file) || (video && s.VideoFile != file) {
				continue
			}
			next, err := p.load(file)
			if err != nil {
				for _, sw := range swaps {
					sw.next.Close()
				}
				return fmt.Errorf("page: reload %s: %w", file, err)
			}
			swaps = append(swaps, swap{s: s, video: video, next: next})
		}
	}

	for _, sw := range swaps {
		s := sw.s
		if sw.video {
			s.VideoPlayer.Close()
			s.VideoPlayer = sw.next
			continue
		}
		s.Player.Close()
		s.Player = sw.next
		s.armed = false
		s.Trigger.OnUpdate = nil
		s.Trigger.Reset()
	}
	return nil
}

// Videos returns the sections that play a video, in page order.
func (p *Page) Videos() []*Section {
	var out []*Section
	for _, s := range p.Sections {
		if s.Video != nil {
			out = append(out, s)
		}
	}
	return out
}

// VideoInView returns the first video section on screen, if any.
func (p *Page) VideoInView() *Section {
	view := p.Scroll.View()
	for _, s := range p.Videos() {
		if s.Rect.Intersects(view) {
			return s
		}
	}
	return nil
}

// Sequences returns every player on the page.
func (p *Page) Sequences() []*sequence.Player {
	var out []*sequence.Player
	for _, s := range p.Sections {
		if s.Player != nil {
			out = append(out, s.Player)
		}
		if s.VideoPlayer != nil {
			out = append(out, s.VideoPlayer)
		}
	}
	return out
}

// Close abandons outstanding asset loads.
func (p *Page) Close() {
	for _, s := range p.Sections {
		s.close()
	}
}
