package sequence

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config describes one image sequence: how many frames it has, where each
// frame's asset lives and how big a synthesized placeholder should be.
type Config struct {
	Name string

	TotalFrames    int
	ImagePath      string
	ImagePrefix    string
	ImageExtension string
	PaddingZeros   int
	// NumberBase is added to the frame index when building file names, so a
	// value of 1 maps index 0 to "001".
	NumberBase int

	PlaceholderWidth  int
	PlaceholderHeight int

	// LoadTimeout bounds each asset fetch. Zero waits forever.
	LoadTimeout time.Duration
	// MaxConcurrentLoads limits in-flight fetches. Zero starts them all at once.
	MaxConcurrentLoads int
}

var (
	ErrNoFrames        = errors.New("sequence: total frames must be positive")
	ErrPlaceholderSize = errors.New("sequence: placeholder size must be positive")
)

// Validate reports configuration errors that make a sequence unusable.
func (c Config) Validate() error {
	if c.TotalFrames <= 0 {
		return fmt.Errorf("%w (got %d)", ErrNoFrames, c.TotalFrames)
	}
	if c.PlaceholderWidth <= 0 || c.PlaceholderHeight <= 0 {
		return fmt.Errorf("%w (got %dx%d)", ErrPlaceholderSize, c.PlaceholderWidth, c.PlaceholderHeight)
	}
	if c.PaddingZeros < 0 {
		return fmt.Errorf("sequence: negative padding %d", c.PaddingZeros)
	}
	if c.NumberBase < 0 {
		return fmt.Errorf("sequence: negative number base %d", c.NumberBase)
	}
	return nil
}

// Path returns the asset path for the zero-based frame index i.
func (c Config) Path(i int) string {
	num := strconv.Itoa(i + c.NumberBase)
	if pad := c.PaddingZeros - len(num); pad > 0 {
		num = strings.Repeat("0", pad) + num
	}
	return c.ImagePath + c.ImagePrefix + num + c.ImageExtension
}
