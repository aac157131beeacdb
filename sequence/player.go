package sequence

import (
	"context"
	"fmt"
	"image"
	"log"
	"math"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Fetcher loads the real asset for a frame path.
type Fetcher interface {
	Fetch(ctx context.Context, path string) (image.Image, error)
}

// Renderer synthesizes a stand-in image for a frame whose asset could not be
// loaded. It must always succeed and be deterministic in (w, h, index).
type Renderer interface {
	Render(w, h, index int) image.Image
}

// Slot is one position in the sequence.
type Slot struct {
	Index       int
	Asset       image.Image
	Placeholder bool
	Visible     bool
}

// Player maps scroll progress onto one visible frame of a preloaded image
// sequence. Frames resolve concurrently in the background; Update is ignored
// until every frame has either loaded or fallen back to a placeholder.
type Player struct {
	cfg      Config
	fetcher  Fetcher
	renderer Renderer

	// assets are written once per slot by the loader and only read after ready.
	frames []Slot

	mu          sync.RWMutex
	current     int
	transitions int

	ready  atomic.Bool
	done   chan struct{}
	cancel context.CancelFunc
}

// New allocates every slot, starts resolving their assets and returns
// immediately. Slot 0 starts visible.
func New(cfg Config, fetcher Fetcher, renderer Renderer) (*Player, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("sequence: new %q: %w", cfg.Name, err)
	}
	if fetcher == nil || renderer == nil {
		return nil, fmt.Errorf("sequence: new %q: fetcher and renderer are required", cfg.Name)
	}

	p := &Player{
		cfg:      cfg,
		fetcher:  fetcher,
		renderer: renderer,
		frames:   make([]Slot, cfg.TotalFrames),
		done:     make(chan struct{}),
	}
	for i := range p.frames {
		p.frames[i] = Slot{Index: i, Visible: i == 0}
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	go p.preload(ctx)
	return p, nil
}

func (p *Player) preload(ctx context.Context) {
	var g errgroup.Group
	if p.cfg.MaxConcurrentLoads > 0 {
		g.SetLimit(p.cfg.MaxConcurrentLoads)
	}
	var placeholders atomic.Int32
	for i := range p.frames {
		g.Go(func() error {
			if !p.resolve(ctx, i) {
				placeholders.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	p.ready.Store(true)
	close(p.done)
	log.Printf("sequence: %s: %d frames loaded (%d placeholders)", p.cfg.Name, len(p.frames), placeholders.Load())
}

// resolve fills slot i and reports whether the real asset was used.
func (p *Player) resolve(ctx context.Context, i int) bool {
	path := p.cfg.Path(i)
	fetchCtx := ctx
	if p.cfg.LoadTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, p.cfg.LoadTimeout)
		defer cancel()
	}

	img, err := p.fetcher.Fetch(fetchCtx, path)
	if err == nil && img != nil {
		p.frames[i].Asset = img
		return true
	}
	if err != nil {
		log.Printf("sequence: %s: frame %d: using placeholder: %v", p.cfg.Name, i, err)
	}
	p.frames[i].Asset = p.renderer.Render(p.cfg.PlaceholderWidth, p.cfg.PlaceholderHeight, i)
	p.frames[i].Placeholder = true
	return false
}

// Close abandons any fetches still in flight. Abandoned slots fall back to
// placeholders, so Done still fires.
func (p *Player) Close() {
	if p.cancel != nil {
		p.cancel()
	}
}

func (p *Player) Config() Config { return p.cfg }

func (p *Player) Len() int { return len(p.frames) }

// Ready reports whether every frame has finished resolving.
func (p *Player) Ready() bool { return p.ready.Load() }

// IsLoaded is an alias of Ready.
func (p *Player) IsLoaded() bool { return p.Ready() }

// Done is closed once the player becomes ready.
func (p *Player) Done() <-chan struct{} { return p.done }

// Wait blocks until the player is ready or ctx ends.
func (p *Player) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// MapProgress converts a progress value into a frame index. Values outside
// [0, 1] are clamped.
func (p *Player) MapProgress(progress float64) int {
	return MapProgress(progress, len(p.frames))
}

// MapProgress returns floor(clamp(progress) * (frames-1)).
func MapProgress(progress float64, frames int) int {
	if frames <= 1 || math.IsNaN(progress) {
		return 0
	}
	progress = math.Max(0, math.Min(1, progress))
	return int(math.Floor(progress * float64(frames-1)))
}

// Update shows the frame for progress and hides the previous one. It does
// nothing before the player is ready or when the target frame is already shown.
func (p *Player) Update(progress float64) {
	if !p.Ready() {
		return
	}
	p.swap(p.MapProgress(progress))
}

// Seek shows frame i directly. Out-of-range indices are clamped.
func (p *Player) Seek(i int) {
	if !p.Ready() {
		return
	}
	p.swap(max(0, min(i, len(p.frames)-1)))
}

func (p *Player) swap(target int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if target == p.current {
		return
	}
	p.frames[p.current].Visible = false
	p.frames[target].Visible = true
	p.current = target
	p.transitions++
}

// Current returns the index of the visible frame.
func (p *Player) Current() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Percent is how far through the sequence the visible frame is, 0..100.
func (p *Player) Percent() float64 {
	if len(p.frames) <= 1 {
		return 0
	}
	return float64(p.Current()) / float64(len(p.frames)-1) * 100
}

// Transitions counts visibility swaps performed so far.
func (p *Player) Transitions() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.transitions
}

// Frame returns a copy of slot i. Assets are nil until the player is ready.
func (p *Player) Frame(i int) (Slot, bool) {
	if i < 0 || i >= len(p.frames) {
		return Slot{}, false
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.Ready() {
		return Slot{Index: i, Visible: p.frames[i].Visible}, true
	}
	return p.frames[i], true
}

// VisibleFrame returns the slot currently shown.
func (p *Player) VisibleFrame() (Slot, bool) {
	return p.Frame(p.Current())
}

// VisibleCount returns how many slots are flagged visible.
func (p *Player) VisibleCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	n := 0
	for i := range p.frames {
		if p.frames[i].Visible {
			n++
		}
	}
	return n
}
