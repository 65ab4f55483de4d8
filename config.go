package tui

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the tunables shared by presenters, scroll viewers and the
// layout manager. It is usually read from a TOML file:
//
//	estimated_item_size = 1
//	max_layout_passes = 10
//	direction = "vertical"
//	scrollbar = true
//	page_overlap = 1
//
//	[log]
//	debug = true
//	file = "/tmp/vlist.log"
type Config struct {
	// Size assumed for an item along the scrolling axis before any item
	// has been measured.
	EstimatedItemSize float64 `toml:"estimated_item_size"`
	// Upper bound on measure/arrange rounds per layout pass.
	MaxLayoutPasses int    `toml:"max_layout_passes"`
	Direction       string `toml:"direction"`
	Scrollbar       bool   `toml:"scrollbar"`
	// Rows kept visible when paging.
	PageOverlap int       `toml:"page_overlap"`
	Log         LogConfig `toml:"log"`
}

// LogConfig controls debug logging.
type LogConfig struct {
	Debug bool   `toml:"debug"`
	File  string `toml:"file"`
}

// DefaultEstimatedItemSize is the item size used until something has been
// measured.
const DefaultEstimatedItemSize = 25

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		EstimatedItemSize: DefaultEstimatedItemSize,
		MaxLayoutPasses:   10,
		Direction:         "vertical",
		Scrollbar:         true,
	}
}

// ParseConfig decodes TOML over the defaults and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadConfig reads a TOML config file. An empty path yields DefaultConfig.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("failed to read %s: %w", path, err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Marshal encodes the config as TOML.
func (c Config) Marshal() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

func (c Config) validate() error {
	if c.EstimatedItemSize <= 0 {
		return fmt.Errorf("%w: estimated_item_size must be positive, got %v", ErrArgumentRange, c.EstimatedItemSize)
	}
	if c.MaxLayoutPasses <= 0 {
		return fmt.Errorf("%w: max_layout_passes must be positive, got %d", ErrArgumentRange, c.MaxLayoutPasses)
	}
	if c.PageOverlap < 0 {
		return fmt.Errorf("%w: page_overlap must not be negative, got %d", ErrArgumentRange, c.PageOverlap)
	}
	if _, err := parseDirection(c.Direction); err != nil {
		return err
	}
	return nil
}

// Orientation returns the configured scrolling direction.
func (c Config) Orientation() Direction {
	d, _ := parseDirection(c.Direction)
	return d
}

func parseDirection(s string) (Direction, error) {
	switch s {
	case "", "vertical":
		return Vertical, nil
	case "horizontal":
		return Horizontal, nil
	}
	return Vertical, fmt.Errorf("%w: unknown direction %q", ErrNotSupported, s)
}
