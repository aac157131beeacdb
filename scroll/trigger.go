package scroll

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/milk9111/scrollscrub/common"
)

// Position is a "<element> <viewport>" pair such as "top center": the point
// on the element that must meet the point on the viewport.
type Position struct {
	Element  float64
	Viewport float64
}

var keywords = map[string]float64{
	"top":    0,
	"center": 0.5,
	"bottom": 1,
}

// ParsePosition parses "top center", "bottom top", "top 25%" and similar.
func ParsePosition(s string) (Position, error) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return Position{}, fmt.Errorf("scroll: position %q: want two words", s)
	}
	el, err := parseAnchor(parts[0])
	if err != nil {
		return Position{}, fmt.Errorf("scroll: position %q: %w", s, err)
	}
	vp, err := parseAnchor(parts[1])
	if err != nil {
		return Position{}, fmt.Errorf("scroll: position %q: %w", s, err)
	}
	return Position{Element: el, Viewport: vp}, nil
}

func parseAnchor(s string) (float64, error) {
	if v, ok := keywords[strings.ToLower(s)]; ok {
		return v, nil
	}
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(pct, 64)
		if err != nil {
			return 0, fmt.Errorf("bad percentage %q", s)
		}
		return v / 100, nil
	}
	return 0, fmt.Errorf("unknown anchor %q", s)
}

// Offset is the page offset at which the position is reached for an element
// spanning [top, top+height].
func (p Position) Offset(top, height, viewport float64) float64 {
	return top + p.Element*height - p.Viewport*viewport
}

// Trigger maps a page offset range onto progress 0..1 and reports changes to
// OnUpdate.
type Trigger struct {
	Start float64
	End   float64
	// Scrub is how many seconds the reported progress takes to catch up with
	// the scroll position. Zero follows immediately.
	Scrub float64
	Ease  *Ease

	OnUpdate func(progress float64)

	progress float64
	reported float64
	started  bool
}

// NewTrigger builds a trigger for an element from start/end positions. The
// end may refer to a different element (endTop, endHeight), as with
// ScrollTrigger's endTrigger.
func NewTrigger(start, end Position, top, height, endTop, endHeight, viewport float64) *Trigger {
	return &Trigger{
		Start: start.Offset(top, height, viewport),
		End:   end.Offset(endTop, endHeight, viewport),
	}
}

// Raw returns the unsmoothed progress at offset.
func (t *Trigger) Raw(offset float64) float64 {
	span := t.End - t.Start
	if span <= 0 {
		if offset >= t.End {
			return 1
		}
		return 0
	}
	return common.Clamp01((offset - t.Start) / span)
}

// Update advances the trigger to offset after dt seconds and calls OnUpdate
// when the eased progress changed.
func (t *Trigger) Update(offset, dt float64) {
	raw := t.Raw(offset)
	if t.Scrub <= 0 || !t.started {
		t.progress = raw
	} else {
		t.progress = common.Lerp(t.progress, raw, math.Min(1, dt/t.Scrub))
		if math.Abs(raw-t.progress) < 1e-4 {
			t.progress = raw
		}
	}

	eased := t.Ease.Apply(t.progress)
	if t.started && eased == t.reported {
		return
	}
	t.started = true
	t.reported = eased
	if t.OnUpdate != nil {
		t.OnUpdate(eased)
	}
}

// Reset forgets the reported progress so the next Update reports again.
func (t *Trigger) Reset() {
	t.started = false
}

// Progress is the last eased progress reported.
func (t *Trigger) Progress() float64 { return t.reported }

// Active reports whether offset lies inside the trigger range.
func (t *Trigger) Active(offset float64) bool {
	return offset >= t.Start && offset <= t.End
}
