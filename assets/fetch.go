// Package assets resolves sequence frame paths to decoded images, from local
// directories or over HTTP.
package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrNotFound is returned when no source holds the requested asset.
var ErrNotFound = errors.New("assets: not found")

// FSFetcher decodes images from one or more file systems, trying each in
// order.
type FSFetcher struct {
	sources []fs.FS
}

// NewFSFetcher searches the given file systems in order.
func NewFSFetcher(sources ...fs.FS) *FSFetcher {
	return &FSFetcher{sources: sources}
}

// NewDirFetcher searches the given directories in order. With no directories
// it searches the working directory and ./assets.
func NewDirFetcher(dirs ...string) *FSFetcher {
	if len(dirs) == 0 {
		dirs = []string{".", "assets"}
	}
	sources := make([]fs.FS, 0, len(dirs))
	for _, d := range dirs {
		sources = append(sources, os.DirFS(d))
	}
	return NewFSFetcher(sources...)
}

// Fetch implements sequence.Fetcher.
func (f *FSFetcher) Fetch(ctx context.Context, p string) (image.Image, error) {
	name := cleanAssetPath(p)
	if name == "" {
		return nil, fmt.Errorf("assets: empty path")
	}
	for _, src := range f.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b, err := fs.ReadFile(src, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("assets: read %s: %w", p, err)
		}
		return decode(p, b)
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, p)
}

// HTTPFetcher downloads images over HTTP(S).
type HTTPFetcher struct {
	Client *http.Client
}

// Fetch implements sequence.Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (image.Image, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("assets: request %s: %w", url, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("assets: get %s: %w", url, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("assets: get %s: status %s", url, resp.Status)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", url, err)
	}
	return decode(url, b)
}

// Auto sends http(s) URLs to Remote and everything else to Local.
type Auto struct {
	Local  *FSFetcher
	Remote *HTTPFetcher
}

// NewAuto builds an Auto fetcher over the given local directories.
func NewAuto(dirs ...string) *Auto {
	return &Auto{Local: NewDirFetcher(dirs...), Remote: &HTTPFetcher{}}
}

// Fetch implements sequence.Fetcher.
func (a *Auto) Fetch(ctx context.Context, p string) (image.Image, error) {
	if isRemote(p) {
		return a.Remote.Fetch(ctx, p)
	}
	return a.Local.Fetch(ctx, p)
}

func isRemote(p string) bool {
	lower := strings.ToLower(p)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func decode(name string, b []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", name, err)
	}
	return img, nil
}

// cleanAssetPath turns page-style paths ("./gif/001.jpg", "/abs/assets/x.png")
// into fs.FS names.
func cleanAssetPath(p string) string {
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(p)
	if filepath.IsAbs(p) {
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return path.Base(s)
	}
	s = path.Clean(s)
	s = strings.TrimPrefix(s, "assets/")
	if s == "." || strings.HasPrefix(s, "../") || s == ".." {
		return ""
	}
	return s
}
