package config

import (
	"fmt"
	"strings"

	"github.com/peco/dmenu/internal/util"
)

// Placement says where the menu window sits on the screen.
type Placement string

const (
	PlacementTop    Placement = "top"
	PlacementBottom Placement = "bottom"
	PlacementCenter Placement = "center"
)

// Defaults mirror the classic build-time configuration.
const (
	DefaultFont           = "monospace:size=10"
	DefaultLineHeight     = 1
	DefaultMinWidth       = 80
	DefaultWordDelimiters = " "
)

// Config holds every option the menu recognises. Resources seed it,
// command line flags override it.
type Config struct {
	Bottom         bool     `json:"Bottom" yaml:"Bottom" toml:"Bottom"`
	FastStart      bool     `json:"FastStart" yaml:"FastStart" toml:"FastStart"`
	Centered       bool     `json:"Centered" yaml:"Centered" toml:"Centered"`
	Fuzzy          bool     `json:"Fuzzy" yaml:"Fuzzy" toml:"Fuzzy"`
	IgnoreCase     bool     `json:"IgnoreCase" yaml:"IgnoreCase" toml:"IgnoreCase"`
	Password       bool     `json:"Password" yaml:"Password" toml:"Password"`
	Lines          int      `json:"Lines" yaml:"Lines" toml:"Lines"`
	LineHeight     int      `json:"LineHeight" yaml:"LineHeight" toml:"LineHeight"`
	MinWidth       int      `json:"MinWidth" yaml:"MinWidth" toml:"MinWidth"`
	Prompt         string   `json:"Prompt" yaml:"Prompt" toml:"Prompt"`
	Monitor        int      `json:"Monitor" yaml:"Monitor" toml:"Monitor"`
	EmbedWindow    string   `json:"EmbedWindow" yaml:"EmbedWindow" toml:"EmbedWindow"`
	BorderWidth    int      `json:"BorderWidth" yaml:"BorderWidth" toml:"BorderWidth"`
	HighPriority   []string `json:"HighPriority" yaml:"HighPriority" toml:"HighPriority"`
	DynamicCommand string   `json:"DynamicCommand" yaml:"DynamicCommand" toml:"DynamicCommand"`
	Font           string   `json:"Font" yaml:"Font" toml:"Font"`
	WordDelimiters string   `json:"WordDelimiters" yaml:"WordDelimiters" toml:"WordDelimiters"`
	Colors         ColorSet `json:"Colors" yaml:"Colors" toml:"Colors"`
}

// Init initializes the Config with default values
func (c *Config) Init() {
	*c = Config{
		Fuzzy:          true,
		LineHeight:     DefaultLineHeight,
		MinWidth:       DefaultMinWidth,
		Monitor:        -1,
		Font:           DefaultFont,
		WordDelimiters: DefaultWordDelimiters,
	}
	c.Colors.Init()
}

// New creates a Config with default values.
func New() *Config {
	c := &Config{}
	c.Init()
	return c
}

// Placement derives the window placement. Centering wins over the
// bottom anchor.
func (c *Config) Placement() Placement {
	switch {
	case c.Centered:
		return PlacementCenter
	case c.Bottom:
		return PlacementBottom
	}
	return PlacementTop
}

// ApplyResources seeds the fields that the resource database may
// provide: font, color4 (normal fg, selected bg), color0 (normal bg,
// selected fg) and prompt.
func (c *Config) ApplyResources(r Resources) {
	if v, ok := r.Get("font"); ok {
		c.Font = v
	}
	if v, ok := r.Get("color4"); ok {
		c.Colors.Norm.Fg = v
		c.Colors.Sel.Bg = v
	}
	if v, ok := r.Get("color0"); ok {
		c.Colors.Norm.Bg = v
		c.Colors.Sel.Fg = v
	}
	if v, ok := r.Get("prompt"); ok {
		c.Prompt = v
	}
}

// Validate checks ranges and colours.
func (c *Config) Validate() error {
	if c.Lines < 0 {
		return fmt.Errorf("invalid number of lines: %d", c.Lines)
	}
	if c.LineHeight < 1 {
		c.LineHeight = 1
	}
	if c.BorderWidth < 0 {
		return fmt.Errorf("invalid border width: %d", c.BorderWidth)
	}
	if c.MinWidth < 0 {
		return fmt.Errorf("invalid minimum width: %d", c.MinWidth)
	}
	if strings.TrimSpace(c.DynamicCommand) == "" {
		c.DynamicCommand = ""
	}
	if err := c.Colors.Validate(); err != nil {
		return fmt.Errorf("invalid colors: %w", err)
	}
	return nil
}

var homedirFunc = util.Homedir
