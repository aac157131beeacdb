package placeholder

import (
	"bytes"
	"image"
	"sync"
	"testing"
)

func rgba(t *testing.T, img image.Image) *image.RGBA {
	t.Helper()
	out, ok := img.(*image.RGBA)
	if !ok {
		t.Fatalf("expected *image.RGBA, got %T", img)
	}
	return out
}

func TestRenderIsDeterministic(t *testing.T) {
	r := Renderer{HueStep: 4, Caption: "Vision Pro", NumberBase: 1}
	a := rgba(t, r.Render(160, 90, 12))
	b := rgba(t, r.Render(160, 90, 12))
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatalf("same index produced different pixels")
	}
}

func TestRenderVariesByIndex(t *testing.T) {
	r := Renderer{HueStep: 2}
	a := rgba(t, r.Render(80, 45, 3))
	b := rgba(t, r.Render(80, 45, 40))
	if bytes.Equal(a.Pix, b.Pix) {
		t.Fatalf("different indices produced identical frames")
	}
}

func TestRenderSize(t *testing.T) {
	cases := []struct {
		name string
		w, h int
		want image.Rectangle
	}{
		{"regular", 800, 450, image.Rect(0, 0, 800, 450)},
		{"tiny", 3, 2, image.Rect(0, 0, 3, 2)},
		{"degenerate", 0, 10, image.Rect(0, 0, 1, 1)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := (Renderer{}).Render(c.w, c.h, 0).Bounds(); got != c.want {
				t.Fatalf("bounds = %v, want %v", got, c.want)
			}
		})
	}
}

func TestRenderDrawsCard(t *testing.T) {
	img := rgba(t, Renderer{HueStep: 4}.Render(200, 100, 0))
	// Inside the card, left of the centred label.
	c := img.RGBAAt(50, 40)
	if c.R < 0xd0 || c.G < 0xd0 || c.B < 0xd0 {
		t.Fatalf("expected light card pixel, got %v", c)
	}
	// Top-left corner is pure gradient and should be saturated, not card white.
	corner := img.RGBAAt(0, 0)
	if corner.R > 0xd0 && corner.G > 0xd0 && corner.B > 0xd0 {
		t.Fatalf("corner looks like card colour: %v", corner)
	}
}

func TestRenderConcurrent(t *testing.T) {
	r := Renderer{HueStep: 4, Caption: "Vision Pro"}
	want := rgba(t, r.Render(64, 36, 5)).Pix

	var wg sync.WaitGroup
	results := make([][]byte, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = r.Render(64, 36, 5).(*image.RGBA).Pix
		}()
	}
	wg.Wait()
	for i, got := range results {
		if !bytes.Equal(got, want) {
			t.Fatalf("concurrent render %d differs", i)
		}
	}
}

func TestWrapHue(t *testing.T) {
	cases := map[float64]float64{0: 0, 364: 4, 720: 0, -30: 330}
	for in, want := range cases {
		if got := wrapHue(in); got != want {
			t.Fatalf("wrapHue(%v) = %v, want %v", in, got, want)
		}
	}
}
