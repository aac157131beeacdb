// Package render keeps GPU copies of decoded frames.
package render

import (
	"fmt"
	"image"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

var images = map[string]*ebiten.Image{}

// RegisterImage stores an image by key.
func RegisterImage(key string, img *ebiten.Image) {
	if key == "" || img == nil {
		return
	}
	images[key] = img
}

// GetImage returns a cached image by key.
func GetImage(key string) *ebiten.Image {
	if key == "" {
		return nil
	}
	return images[key]
}

// FrameKey names frame index of a sequence in the cache.
func FrameKey(sequence string, index int) string {
	return fmt.Sprintf("%s/%d", sequence, index)
}

// Frame returns the GPU image for src, uploading it on first use.
func Frame(key string, src image.Image) *ebiten.Image {
	if src == nil {
		return nil
	}
	if img := GetImage(key); img != nil {
		return img
	}
	img := ebiten.NewImageFromImage(src)
	RegisterImage(key, img)
	return img
}

// Forget drops and deallocates every cached image whose key starts with prefix.
func Forget(prefix string) {
	for key, img := range images {
		if strings.HasPrefix(key, prefix) {
			img.Deallocate()
			delete(images, key)
		}
	}
}
