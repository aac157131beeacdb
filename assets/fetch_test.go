package assets

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{R: 0xff, A: 0xff})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestCleanAssetPath(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"./gif/001.jpg", "gif/001.jpg"},
		{"images/0001.JPG", "images/0001.JPG"},
		{"assets/frames/a.png", "frames/a.png"},
		{"/home/me/site/assets/frames/a.png", "frames/a.png"},
		{"/tmp/a.png", "a.png"},
		{"../secret.png", ""},
	}
	for _, c := range cases {
		if got := cleanAssetPath(c.in); got != c.want {
			t.Fatalf("cleanAssetPath(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFSFetcher(t *testing.T) {
	first := fstest.MapFS{
		"gif/001.jpg": &fstest.MapFile{Data: []byte("not an image")},
	}
	second := fstest.MapFS{
		"gif/002.png": &fstest.MapFile{Data: pngBytes(t, 4, 3)},
	}
	f := NewFSFetcher(first, second)
	ctx := context.Background()

	t.Run("found_in_later_source", func(t *testing.T) {
		img, err := f.Fetch(ctx, "./gif/002.png")
		if err != nil {
			t.Fatalf("Fetch: %v", err)
		}
		if img.Bounds() != image.Rect(0, 0, 4, 3) {
			t.Fatalf("unexpected bounds %v", img.Bounds())
		}
	})
	t.Run("missing", func(t *testing.T) {
		if _, err := f.Fetch(ctx, "./gif/003.png"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
	t.Run("undecodable", func(t *testing.T) {
		_, err := f.Fetch(ctx, "./gif/001.jpg")
		if err == nil || errors.Is(err, ErrNotFound) {
			t.Fatalf("expected decode error, got %v", err)
		}
	})
	t.Run("cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		if _, err := f.Fetch(cctx, "./gif/002.png"); !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	})
}

func TestHTTPFetcher(t *testing.T) {
	body := pngBytes(t, 2, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/frames/0000.png":
			_, _ = w.Write(body)
		case "/frames/broken.png":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := &HTTPFetcher{Client: srv.Client()}
	ctx := context.Background()

	if _, err := f.Fetch(ctx, srv.URL+"/frames/0000.png"); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if _, err := f.Fetch(ctx, srv.URL+"/frames/0001.png"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := f.Fetch(ctx, srv.URL+"/frames/broken.png"); err == nil {
		t.Fatalf("expected error for 500 response")
	}
}

func TestAutoRoutesByScheme(t *testing.T) {
	body := pngBytes(t, 5, 5)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	a := &Auto{
		Local:  NewFSFetcher(fstest.MapFS{"images/0000.png": &fstest.MapFile{Data: pngBytes(t, 1, 1)}}),
		Remote: &HTTPFetcher{Client: srv.Client()},
	}
	ctx := context.Background()

	local, err := a.Fetch(ctx, "./images/0000.png")
	if err != nil || local.Bounds().Dx() != 1 {
		t.Fatalf("local fetch: img=%v err=%v", local, err)
	}
	remote, err := a.Fetch(ctx, srv.URL+"/anything.png")
	if err != nil || remote.Bounds().Dx() != 5 {
		t.Fatalf("remote fetch: img=%v err=%v", remote, err)
	}
}
