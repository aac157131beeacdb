package scroll

import (
	"math"
	"testing"

	"github.com/milk9111/scrollscrub/common"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestParsePosition(t *testing.T) {
	cases := []struct {
		in      string
		want    Position
		wantErr bool
	}{
		{"top center", Position{0, 0.5}, false},
		{"bottom top", Position{1, 0}, false},
		{"TOP bottom", Position{0, 1}, false},
		{"top 25%", Position{0, 0.25}, false},
		{"top", Position{}, true},
		{"middle center", Position{}, true},
		{"top x%", Position{}, true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParsePosition(c.in)
			if (err != nil) != c.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, c.wantErr)
			}
			if !c.wantErr && got != c.want {
				t.Fatalf("got %+v, want %+v", got, c.want)
			}
		})
	}
}

func TestTriggerRange(t *testing.T) {
	start, _ := ParsePosition("top center")
	end, _ := ParsePosition("bottom center")
	// Element at 1000..2000 with a 720 viewport.
	tr := NewTrigger(start, end, 1000, 1000, 1000, 1000, 720)
	if !near(tr.Start, 640) || !near(tr.End, 1640) {
		t.Fatalf("range = [%v, %v], want [640, 1640]", tr.Start, tr.End)
	}

	cases := []struct {
		offset, want float64
	}{
		{0, 0},
		{640, 0},
		{1140, 0.5},
		{1640, 1},
		{5000, 1},
	}
	for _, c := range cases {
		if got := tr.Raw(c.offset); !near(got, c.want) {
			t.Fatalf("Raw(%v) = %v, want %v", c.offset, got, c.want)
		}
	}
}

func TestTriggerReportsOnlyChanges(t *testing.T) {
	var got []float64
	tr := &Trigger{Start: 0, End: 100, OnUpdate: func(p float64) { got = append(got, p) }}

	tr.Update(0, 1.0/60)
	tr.Update(0, 1.0/60)
	tr.Update(50, 1.0/60)
	tr.Update(50, 1.0/60)
	tr.Update(100, 1.0/60)

	want := []float64{0, 0.5, 1}
	if len(got) != len(want) {
		t.Fatalf("updates = %v, want %v", got, want)
	}
	for i := range want {
		if !near(got[i], want[i]) {
			t.Fatalf("updates = %v, want %v", got, want)
		}
	}
}

func TestTriggerScrubLags(t *testing.T) {
	tr := &Trigger{Start: 0, End: 100, Scrub: 0.5}
	tr.Update(0, 1.0/60)
	tr.Update(100, 1.0/60)
	if p := tr.Progress(); p <= 0 || p >= 1 {
		t.Fatalf("scrubbed progress should lag: %v", p)
	}
	for i := 0; i < 600; i++ {
		tr.Update(100, 1.0/60)
	}
	if p := tr.Progress(); p != 1 {
		t.Fatalf("scrubbed progress should settle at 1, got %v", p)
	}
}

func TestTriggerDegenerateRange(t *testing.T) {
	tr := &Trigger{Start: 10, End: 10}
	if tr.Raw(9) != 0 || tr.Raw(10) != 1 {
		t.Fatalf("degenerate range: Raw(9)=%v Raw(10)=%v", tr.Raw(9), tr.Raw(10))
	}
}

func TestEase(t *testing.T) {
	t.Run("linear_is_nil", func(t *testing.T) {
		for _, name := range []string{"", "none", "Linear"} {
			e, err := NewEase(name)
			if err != nil || e != nil {
				t.Fatalf("NewEase(%q) = %v, %v", name, e, err)
			}
		}
		var e *Ease
		if e.Apply(0.3) != 0.3 || e.Apply(2) != 1 {
			t.Fatalf("nil ease should be clamped identity")
		}
	})

	t.Run("expression", func(t *testing.T) {
		e, err := NewEase("p * p")
		if err != nil {
			t.Fatalf("NewEase: %v", err)
		}
		if got := e.Apply(0.5); !near(got, 0.25) {
			t.Fatalf("Apply(0.5) = %v, want 0.25", got)
		}
	})

	t.Run("named_with_math_module", func(t *testing.T) {
		e, err := NewEase("sine.inOut")
		if err != nil {
			t.Fatalf("NewEase: %v", err)
		}
		if got := e.Apply(0.5); math.Abs(got-0.5) > 1e-9 {
			t.Fatalf("Apply(0.5) = %v, want 0.5", got)
		}
		if e.Apply(0) != 0 || math.Abs(e.Apply(1)-1) > 1e-9 {
			t.Fatalf("endpoints not preserved")
		}
	})

	t.Run("result_clamped", func(t *testing.T) {
		e, err := NewEase("p * 3")
		if err != nil {
			t.Fatalf("NewEase: %v", err)
		}
		if got := e.Apply(0.9); got != 1 {
			t.Fatalf("Apply(0.9) = %v, want 1", got)
		}
	})

	t.Run("compile_error", func(t *testing.T) {
		if _, err := NewEase("p *"); err == nil {
			t.Fatalf("expected compile error")
		}
	})
}

func TestPageScroll(t *testing.T) {
	p := NewPage(3000, 720, 0.5)
	p.ScrollBy(-100)
	if p.Target() != 0 {
		t.Fatalf("target should clamp at 0, got %v", p.Target())
	}
	p.ScrollBy(10000)
	if p.Target() != 2280 {
		t.Fatalf("target should clamp at 2280, got %v", p.Target())
	}
	p.Update()
	if p.Offset() != 1140 {
		t.Fatalf("smoothed offset = %v, want 1140", p.Offset())
	}
	for i := 0; i < 100; i++ {
		p.Update()
	}
	if p.Offset() != 2280 || p.Fraction() != 1 {
		t.Fatalf("offset did not settle: %v (fraction %v)", p.Offset(), p.Fraction())
	}
	p.Jump(100)
	if p.Offset() != 100 {
		t.Fatalf("Jump: offset %v", p.Offset())
	}
}

func TestTweenAndOverlay(t *testing.T) {
	tw := Tween{FromOpacity: 0, ToOpacity: 1, FromY: 0, ToY: -100}
	if o, y := tw.At(0.5); !near(o, 0.5) || !near(y, -50) {
		t.Fatalf("At(0.5) = %v, %v", o, y)
	}
	if o, y := tw.At(4); o != 1 || y != -100 {
		t.Fatalf("At(4) = %v, %v", o, y)
	}

	ov := Overlay{Element: common.Rect{Y: 1000, Width: 100, Height: 200}, Opacity: 0.5}
	if got := ov.At(common.Rect{Y: 0, Width: 1280, Height: 720}); got != 0 {
		t.Fatalf("overlay above element: %v", got)
	}
	if got := ov.At(common.Rect{Y: 600, Width: 1280, Height: 720}); got != 0.5 {
		t.Fatalf("overlay with element on screen: %v", got)
	}
}

func TestPinScreenY(t *testing.T) {
	p := Pin{Start: 100, End: 300}
	cases := []struct{ offset, want float64 }{
		{0, 500},
		{100, 400},
		{250, 400},
		{300, 400},
		{400, 300},
	}
	for _, c := range cases {
		if got := p.ScreenY(500, c.offset); got != c.want {
			t.Fatalf("ScreenY(500, %v) = %v, want %v", c.offset, got, c.want)
		}
	}
}

func TestSticky(t *testing.T) {
	// Section 1000..3000, viewport 720: sticks from offset 1000 to 2280.
	cases := []struct{ offset, want float64 }{
		{0, 1000},
		{1000, 0},
		{2000, 0},
		{2280, 0},
		{2380, -100},
	}
	for _, c := range cases {
		if got := Sticky(1000, 2000, c.offset, 720); got != c.want {
			t.Fatalf("Sticky at %v = %v, want %v", c.offset, got, c.want)
		}
	}
}
