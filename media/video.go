// Package media holds the playback state behind the page's video controls.
package media

import (
	"math"
	"time"
)

// Icon names the control glyph a video's toggle button should show.
type Icon string

const (
	IconPlay  Icon = "play"
	IconPause Icon = "pause"
)

// Video is a looping clip with a play/pause toggle. It only tracks time; a
// sequence player or other surface renders Progress.
type Video struct {
	Name     string
	Duration time.Duration
	Loop     bool

	position time.Duration
	paused   bool
}

// NewVideo returns a video that starts playing when autoplay is set.
func NewVideo(name string, duration time.Duration, loop, autoplay bool) *Video {
	return &Video{Name: name, Duration: duration, Loop: loop, paused: !autoplay}
}

func (v *Video) Paused() bool { return v.paused }

// Play resumes playback, restarting from the beginning once a non-looping
// video has ended.
func (v *Video) Play() {
	if v.Ended() {
		v.position = 0
	}
	v.paused = false
}

func (v *Video) Pause() { v.paused = true }

// Toggle flips between playing and paused and returns the new icon.
func (v *Video) Toggle() Icon {
	if v.paused {
		v.Play()
	} else {
		v.Pause()
	}
	return v.Icon()
}

// Ended reports whether a non-looping video has played to its end.
func (v *Video) Ended() bool {
	return !v.Loop && v.Duration > 0 && v.position >= v.Duration
}

// Icon is the glyph for the button: play while paused, pause while playing.
func (v *Video) Icon() Icon {
	if v.paused {
		return IconPlay
	}
	return IconPause
}

// Advance moves playback forward by dt while playing.
func (v *Video) Advance(dt time.Duration) {
	if v.paused || v.Duration <= 0 || dt <= 0 {
		return
	}
	v.position += dt
	if v.position < v.Duration {
		return
	}
	if v.Loop {
		v.position %= v.Duration
		return
	}
	v.position = v.Duration
	v.paused = true
}

func (v *Video) Position() time.Duration { return v.position }

// Progress is the playback position as 0..1.
func (v *Video) Progress() float64 {
	if v.Duration <= 0 {
		return 0
	}
	return math.Min(1, float64(v.position)/float64(v.Duration))
}

// Frame maps the playback position onto one of frames evenly timed frames.
// A looping video shows its last frame just before it wraps.
func (v *Video) Frame(frames int) int {
	if frames <= 0 {
		return 0
	}
	return min(int(v.Progress()*float64(frames)), frames-1)
}

// Percent is Progress scaled to 0..100.
func (v *Video) Percent() float64 { return v.Progress() * 100 }

// RingOffset returns the stroke dash offset that reveals percent of a
// progress ring with the given circumference.
func RingOffset(circumference, percent float64) float64 {
	percent = math.Max(0, math.Min(100, percent))
	return circumference - percent/100*circumference
}

// Circumference of a ring with radius r.
func Circumference(r float64) float64 { return 2 * math.Pi * r }
