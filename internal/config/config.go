// Package config loads the paneldock demo configuration: defaults, then an
// optional TOML file, then PANELDOCK_* environment variables. Command-line
// flags are applied on top by cmd/paneldock.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"paneldock/internal/dock"
)

// Backend names a terminal host.
const (
	BackendBubbleTea = "bubbletea"
	BackendTcell     = "tcell"
)

// Config is the demo application configuration.
type Config struct {
	Backend string `toml:"backend"`
	// CellWidth and CellHeight are the layout units per terminal cell.
	CellWidth  int    `toml:"cell_width"`
	CellHeight int    `toml:"cell_height"`
	Leader     string `toml:"leader"`
	Shell      string `toml:"shell"`
	LogFile    string `toml:"log_file"`
	LogLevel   string `toml:"log_level"`
	TraceHTTP  bool   `toml:"trace_http"`
	// Tabs are created, in order, after the Main tab.
	Tabs []string `toml:"tabs"`
	Dock Dock     `toml:"dock"`
}

// Dock overrides dock.DefaultConfig. Unset fields keep the default.
type Dock struct {
	Margin           *float32 `toml:"margin"`
	Gap              *float32 `toml:"gap"`
	TopReserved      *float32 `toml:"top_reserved"`
	TitleBarHeight   *float32 `toml:"title_bar_height"`
	DragThreshold    *float32 `toml:"drag_threshold"`
	DockEdgeFraction *float32 `toml:"dock_edge_fraction"`
	DockMinEdgeSize  *float32 `toml:"dock_min_edge_size"`
	MaxTabs          *int     `toml:"max_tabs"`
	ReleasePolicy    string   `toml:"release_policy"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Backend:    BackendBubbleTea,
		CellWidth:  8,
		CellHeight: 16,
		Leader:     "ctrl+a",
		LogLevel:   "info",
	}
}

// Load builds the configuration. path may be empty, in which case
// PANELDOCK_CONFIG names the file; with neither set only defaults and the
// environment apply.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("PANELDOCK_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := Decode(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode parses TOML into cfg. Unknown keys are an error.
func Decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("unknown keys:\n%s", strict.String())
		}
		return err
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PANELDOCK_BACKEND"); v != "" {
		c.Backend = v
	}
	if v := os.Getenv("PANELDOCK_LOG"); v != "" {
		c.LogFile = v
	}
	for _, e := range []struct {
		name string
		dst  *int
	}{
		{"PANELDOCK_CELL_WIDTH", &c.CellWidth},
		{"PANELDOCK_CELL_HEIGHT", &c.CellHeight},
	} {
		v := os.Getenv(e.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", e.name, err)
		}
		*e.dst = n
	}
	return nil
}

// Validate checks the settings that are not dock metrics.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendBubbleTea, BackendTcell:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendBubbleTea, BackendTcell)
	}
	if c.CellWidth <= 0 || c.CellHeight <= 0 {
		return fmt.Errorf("cell size must be positive, got %dx%d", c.CellWidth, c.CellHeight)
	}
	if strings.TrimSpace(c.Leader) == "" {
		return errors.New("leader key must not be empty")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	_, err := c.DockConfig()
	return err
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log level: %w", err)
	}
	return l, nil
}

// DockConfig returns dock.DefaultConfig fitted to the cell size, with the
// [dock] overrides applied and validated.
func (c Config) DockConfig() (dock.Config, error) {
	dc := dock.DefaultConfig()
	c.cellMetrics(&dc)
	d := c.Dock
	set := func(dst *float32, v *float32) {
		if v != nil {
			*dst = *v
		}
	}
	set(&dc.Margin, d.Margin)
	set(&dc.Gap, d.Gap)
	set(&dc.TopReserved, d.TopReserved)
	set(&dc.TitleBarHeight, d.TitleBarHeight)
	set(&dc.DragThreshold, d.DragThreshold)
	set(&dc.DockEdgeFraction, d.DockEdgeFraction)
	set(&dc.DockMinEdgeSize, d.DockMinEdgeSize)
	if d.MaxTabs != nil {
		dc.MaxTabs = *d.MaxTabs
	}
	if d.ReleasePolicy != "" {
		p, err := dock.ParseReleasePolicy(d.ReleasePolicy)
		if err != nil {
			return dock.Config{}, err
		}
		dc.ReleasePolicy = p
	}
	if err := dc.Validate(); err != nil {
		return dock.Config{}, err
	}
	return dc, nil
}

// cellMetrics puts the tab strip, title bars and gutters on whole cells.
func (c Config) cellMetrics(dc *dock.Config) {
	cw, ch := float32(c.CellWidth), float32(c.CellHeight)
	dc.Margin = 0
	dc.TopReserved = ch
	dc.Gap = ch
	dc.TitleBarHeight = ch
	dc.HeaderButtonWidth = 8 * cw
	dc.HeaderButtonHeight = max(ch-2, 1)
	dc.HeaderButtonMargin = cw
}
