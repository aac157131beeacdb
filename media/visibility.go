package media

// VisibilityGuard pauses videos while the page is hidden and resumes the ones
// it paused when the page comes back.
type VisibilityGuard struct {
	videos     []*Video
	wasPlaying map[*Video]bool
	hidden     bool
}

func NewVisibilityGuard(videos ...*Video) *VisibilityGuard {
	return &VisibilityGuard{videos: videos, wasPlaying: map[*Video]bool{}}
}

func (g *VisibilityGuard) Add(v *Video) {
	g.videos = append(g.videos, v)
}

func (g *VisibilityGuard) Hidden() bool { return g.hidden }

// SetHidden applies a visibility change. Repeated calls with the same value
// are ignored.
func (g *VisibilityGuard) SetHidden(hidden bool) {
	if hidden == g.hidden {
		return
	}
	g.hidden = hidden
	if hidden {
		for _, v := range g.videos {
			if !v.Paused() {
				v.Pause()
				g.wasPlaying[v] = true
			}
		}
		return
	}
	for _, v := range g.videos {
		if g.wasPlaying[v] {
			v.Play()
			delete(g.wasPlaying, v)
		}
	}
}
