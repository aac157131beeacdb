package media

import (
	"math"
	"testing"
	"time"
)

func TestVideoToggle(t *testing.T) {
	v := NewVideo("hero", 10*time.Second, true, false)
	if !v.Paused() || v.Icon() != IconPlay {
		t.Fatalf("new non-autoplay video should be paused with play icon")
	}
	if icon := v.Toggle(); icon != IconPause || v.Paused() {
		t.Fatalf("toggle from paused: icon=%v paused=%v", icon, v.Paused())
	}
	if icon := v.Toggle(); icon != IconPlay || !v.Paused() {
		t.Fatalf("toggle from playing: icon=%v paused=%v", icon, v.Paused())
	}
}

func TestVideoAdvance(t *testing.T) {
	cases := []struct {
		name       string
		loop       bool
		steps      []time.Duration
		wantPos    time.Duration
		wantPaused bool
	}{
		{"plays", true, []time.Duration{time.Second, 2 * time.Second}, 3 * time.Second, false},
		{"loops", true, []time.Duration{9 * time.Second, 3 * time.Second}, 2 * time.Second, false},
		{"stops_at_end", false, []time.Duration{9 * time.Second, 3 * time.Second}, 10 * time.Second, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := NewVideo(c.name, 10*time.Second, c.loop, true)
			for _, s := range c.steps {
				v.Advance(s)
			}
			if v.Position() != c.wantPos || v.Paused() != c.wantPaused {
				t.Fatalf("position=%v paused=%v, want %v %v", v.Position(), v.Paused(), c.wantPos, c.wantPaused)
			}
		})
	}

	paused := NewVideo("paused", 10*time.Second, true, false)
	paused.Advance(time.Second)
	if paused.Position() != 0 {
		t.Fatalf("paused video advanced")
	}
}

func TestEndedVideoRestarts(t *testing.T) {
	v := NewVideo("hero", time.Second, false, true)
	v.Advance(2 * time.Second)
	if !v.Ended() || !v.Paused() || v.Progress() != 1 {
		t.Fatalf("expected ended and paused: ended=%v paused=%v progress=%v", v.Ended(), v.Paused(), v.Progress())
	}

	if icon := v.Toggle(); icon != IconPause {
		t.Fatalf("toggle on ended video: icon=%v", icon)
	}
	v.Advance(time.Second / 60)
	if v.Paused() || v.Position() != time.Second/60 {
		t.Fatalf("ended video did not restart: paused=%v position=%v", v.Paused(), v.Position())
	}

	v.Advance(2 * time.Second)
	v.Play()
	if v.Paused() || v.Position() != 0 {
		t.Fatalf("Play on ended video: paused=%v position=%v", v.Paused(), v.Position())
	}
}

func TestVideoFrame(t *testing.T) {
	cases := []struct {
		name   string
		loop   bool
		at     time.Duration
		frames int
		want   int
	}{
		{"start", true, 0, 12, 0},
		{"middle", true, 500 * time.Millisecond, 11, 5},
		{"last_before_wrap", true, 999 * time.Millisecond, 12, 11},
		{"wrapped", true, 1100 * time.Millisecond, 10, 1},
		{"ended", false, 3 * time.Second, 12, 11},
		{"no_frames", true, 500 * time.Millisecond, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			v := NewVideo(c.name, time.Second, c.loop, true)
			v.Advance(c.at)
			if got := v.Frame(c.frames); got != c.want {
				t.Fatalf("Frame(%d) at %v = %d, want %d", c.frames, c.at, got, c.want)
			}
		})
	}
}

func TestVideoProgress(t *testing.T) {
	v := NewVideo("digital", 4*time.Second, true, true)
	v.Advance(time.Second)
	if v.Progress() != 0.25 || v.Percent() != 25 {
		t.Fatalf("progress=%v percent=%v", v.Progress(), v.Percent())
	}
	if (&Video{}).Progress() != 0 {
		t.Fatalf("zero-duration video should report 0")
	}
}

func TestRingOffset(t *testing.T) {
	c := Circumference(10)
	if math.Abs(c-62.83185307179586) > 1e-9 {
		t.Fatalf("circumference = %v", c)
	}
	cases := []struct{ percent, want float64 }{
		{0, c},
		{50, c / 2},
		{100, 0},
		{150, 0},
		{-5, c},
	}
	for _, tc := range cases {
		if got := RingOffset(c, tc.percent); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("RingOffset(%v) = %v, want %v", tc.percent, got, tc.want)
		}
	}
}

func TestVisibilityGuard(t *testing.T) {
	playing := NewVideo("playing", time.Second, true, true)
	stopped := NewVideo("stopped", time.Second, true, false)
	g := NewVisibilityGuard(playing, stopped)

	g.SetHidden(true)
	if !playing.Paused() || !stopped.Paused() {
		t.Fatalf("all videos should be paused while hidden")
	}
	g.SetHidden(true)

	g.SetHidden(false)
	if playing.Paused() {
		t.Fatalf("video playing before hide should resume")
	}
	if !stopped.Paused() {
		t.Fatalf("video paused before hide should stay paused")
	}

	// A second hide/show cycle starts from fresh bookkeeping.
	playing.Pause()
	g.SetHidden(true)
	g.SetHidden(false)
	if !playing.Paused() {
		t.Fatalf("video paused by the user should not be resumed")
	}
}
