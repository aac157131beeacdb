package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/scrollscrub/placeholder"
	"github.com/milk9111/scrollscrub/sequence"
)

const PageFile = "page.yaml"

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type SequenceSpec struct {
	Name               string          `yaml:"name"`
	TotalFrames        int             `yaml:"total_frames"`
	ImagePath          string          `yaml:"image_path"`
	ImagePrefix        string          `yaml:"image_prefix"`
	ImageExtension     string          `yaml:"image_extension"`
	PaddingZeros       int             `yaml:"padding_zeros"`
	NumberBase         int             `yaml:"number_base"`
	LoadTimeoutMS      int             `yaml:"load_timeout_ms"`
	MaxConcurrentLoads int             `yaml:"max_concurrent_loads"`
	Placeholder        PlaceholderSpec `yaml:"placeholder"`
}

type PlaceholderSpec struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	HueStep   float64 `yaml:"hue_step"`
	Caption   string  `yaml:"caption"`
	LabelBase int     `yaml:"label_base"`
}

func LoadSequenceSpec(filename string) (*SequenceSpec, error) {
	spec, err := LoadSpec[SequenceSpec](filename)
	if err != nil {
		return nil, err
	}
	if spec.Name == "" {
		spec.Name = strings.TrimSuffix(cleanPrefabPath(filename), ".yaml")
	}
	if err := spec.Config().Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

// Config converts the spec into a sequence configuration.
func (s *SequenceSpec) Config() sequence.Config {
	return sequence.Config{
		Name:               s.Name,
		TotalFrames:        s.TotalFrames,
		ImagePath:          s.ImagePath,
		ImagePrefix:        s.ImagePrefix,
		ImageExtension:     s.ImageExtension,
		PaddingZeros:       s.PaddingZeros,
		NumberBase:         s.NumberBase,
		PlaceholderWidth:   s.Placeholder.Width,
		PlaceholderHeight:  s.Placeholder.Height,
		LoadTimeout:        time.Duration(s.LoadTimeoutMS) * time.Millisecond,
		MaxConcurrentLoads: s.MaxConcurrentLoads,
	}
}

// Renderer returns the placeholder renderer for the sequence.
func (s *SequenceSpec) Renderer() placeholder.Renderer {
	return placeholder.Renderer{
		HueStep:    s.Placeholder.HueStep,
		Caption:    s.Placeholder.Caption,
		NumberBase: s.Placeholder.LabelBase,
	}
}

type PageSpec struct {
	Name       string        `yaml:"name"`
	Viewport   float64       `yaml:"viewport"`
	Smoothing  float64       `yaml:"smoothing"`
	WheelSpeed float64       `yaml:"wheel_speed"`
	Background *YAMLColor    `yaml:"background"`
	Sections   []SectionSpec `yaml:"sections"`
}

type SectionSpec struct {
	Name      string       `yaml:"name"`
	Top       float64      `yaml:"top"`
	Height    float64      `yaml:"height"`
	Text      string       `yaml:"text"`
	Sequence  string       `yaml:"sequence"`
	Trigger   *TriggerSpec `yaml:"trigger"`
	Tween     *TweenSpec   `yaml:"tween"`
	Overlay   *OverlaySpec `yaml:"overlay"`
	Video     *VideoSpec   `yaml:"video"`
	HoverBlur bool         `yaml:"hover_blur"`
}

type TriggerSpec struct {
	// StartSection and EndSection default to the owning section.
	StartSection string  `yaml:"start_section"`
	EndSection   string  `yaml:"end_section"`
	Start        string  `yaml:"start"`
	End          string  `yaml:"end"`
	Scrub        float64 `yaml:"scrub"`
	Ease         string  `yaml:"ease"`
}

type TweenSpec struct {
	Start       string  `yaml:"start"`
	End         string  `yaml:"end"`
	FromOpacity float64 `yaml:"from_opacity"`
	ToOpacity   float64 `yaml:"to_opacity"`
	FromY       float64 `yaml:"from_y"`
	ToY         float64 `yaml:"to_y"`
	Pin         bool    `yaml:"pin"`
}

type OverlaySpec struct {
	Opacity float64    `yaml:"opacity"`
	Color   *YAMLColor `yaml:"color"`
}

type VideoSpec struct {
	Name       string `yaml:"name"`
	Sequence   string `yaml:"sequence"`
	DurationMS int    `yaml:"duration_ms"`
	Loop       bool   `yaml:"loop"`
	Autoplay   bool   `yaml:"autoplay"`
	Ring       bool   `yaml:"ring"`
}

func LoadPageSpec() (*PageSpec, error) {
	spec, err := LoadSpec[PageSpec](PageFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", PageFile, err)
	}
	return &spec, nil
}

// Height is the bottom edge of the lowest section.
func (p *PageSpec) Height() float64 {
	h := p.Viewport
	for _, s := range p.Sections {
		h = max(h, s.Top+s.Height)
	}
	return h
}

// Section finds a section by name.
func (p *PageSpec) Section(name string) (*SectionSpec, bool) {
	for i := range p.Sections {
		if p.Sections[i].Name == name {
			return &p.Sections[i], true
		}
	}
	return nil, false
}

func (p *PageSpec) Validate() error {
	if p.Viewport <= 0 {
		return errors.New("viewport must be positive")
	}
	seen := make(map[string]bool, len(p.Sections))
	for _, s := range p.Sections {
		if s.Name == "" {
			return errors.New("section without a name")
		}
		if seen[s.Name] {
			return fmt.Errorf("duplicate section %q", s.Name)
		}
		seen[s.Name] = true
		if s.Height <= 0 {
			return fmt.Errorf("section %q: height must be positive", s.Name)
		}
	}
	for _, s := range p.Sections {
		if s.Sequence != "" && s.Trigger == nil {
			return fmt.Errorf("section %q: sequence needs a trigger", s.Name)
		}
		if s.Trigger != nil {
			for _, ref := range []string{s.Trigger.StartSection, s.Trigger.EndSection} {
				if ref != "" && !seen[ref] {
					return fmt.Errorf("section %q: unknown trigger section %q", s.Name, ref)
				}
			}
		}
		if s.Video != nil && s.Video.Sequence == "" {
			return fmt.Errorf("section %q: video needs a sequence", s.Name)
		}
	}
	return nil
}

// SequenceFiles lists every sequence prefab the page references.
func (p *PageSpec) SequenceFiles() []string {
	var out []string
	for _, s := range p.Sections {
		if s.Sequence != "" {
			out = append(out, s.Sequence)
		}
		if s.Video != nil {
			out = append(out, s.Video.Sequence)
		}
	}
	return out
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns the colour, or fallback when unset.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}
