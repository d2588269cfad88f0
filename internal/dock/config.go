package dock

import (
	"fmt"
	"math"
)

// ReleasePolicy decides what a drag released outside every dock zone does.
type ReleasePolicy int

const (
	// ReleaseAbandon leaves the panel where it was.
	ReleaseAbandon ReleasePolicy = iota
	// ReleaseFloat detaches a detachable panel at the pointer.
	ReleaseFloat
)

func (p ReleasePolicy) String() string {
	switch p {
	case ReleaseAbandon:
		return "abandon"
	case ReleaseFloat:
		return "float"
	default:
		return "unknown"
	}
}

// ParseReleasePolicy parses "abandon" or "float".
func ParseReleasePolicy(s string) (ReleasePolicy, error) {
	switch s {
	case "abandon", "":
		return ReleaseAbandon, nil
	case "float":
		return ReleaseFloat, nil
	}
	return ReleaseAbandon, fmt.Errorf("%w: release policy %q", ErrInvalidArgument, s)
}

// Config holds the layout metrics and capacities of a workspace. All
// lengths are surface pixels.
type Config struct {
	Margin      float32 // inset of the dock area from the viewport edges
	TopReserved float32 // strip above the dock area kept for a menu bar
	Gap         float32 // gutter thickness between bands, columns and stacked panels

	MinLeftWidth    float32
	MinCenterWidth  float32
	MinRightWidth   float32
	MinTopHeight    float32
	MinMiddleHeight float32
	MinBottomHeight float32

	TitleBarHeight     float32
	HeaderButtonWidth  float32
	HeaderButtonHeight float32
	HeaderButtonMargin float32

	DockEdgeFraction float32
	DockMinEdgeSize  float32
	// DragThreshold is the squared pointer travel that turns a press on a
	// title bar into a drag.
	DragThreshold float32

	MinDetachedWidth  float32
	MinDetachedHeight float32

	MaxPanels int
	MaxTabs   int

	ReleasePolicy ReleasePolicy

	// InitialWidth and InitialHeight stand in for the viewport until the
	// first frame reports a real one.
	InitialWidth  int
	InitialHeight int
}

// DefaultConfig returns the stock metrics.
func DefaultConfig() Config {
	return Config{
		Margin:             12,
		TopReserved:        34,
		Gap:                10,
		MinLeftWidth:       220,
		MinCenterWidth:     320,
		MinRightWidth:      260,
		MinTopHeight:       120,
		MinMiddleHeight:    120,
		MinBottomHeight:    120,
		TitleBarHeight:     28,
		HeaderButtonWidth:  56,
		HeaderButtonHeight: 18,
		HeaderButtonMargin: 6,
		DockEdgeFraction:   0.24,
		DockMinEdgeSize:    110,
		DragThreshold:      25,
		MinDetachedWidth:   240,
		MinDetachedHeight:  180,
		MaxPanels:          32,
		MaxTabs:            16,
		ReleasePolicy:      ReleaseAbandon,
		InitialWidth:       1600,
		InitialHeight:      900,
	}
}

// Validate checks that every metric is usable.
func (c Config) Validate() error {
	nonNeg := []struct {
		name string
		v    float32
	}{
		{"margin", c.Margin},
		{"top reserved", c.TopReserved},
		{"gap", c.Gap},
		{"min left width", c.MinLeftWidth},
		{"min center width", c.MinCenterWidth},
		{"min right width", c.MinRightWidth},
		{"min top height", c.MinTopHeight},
		{"min middle height", c.MinMiddleHeight},
		{"min bottom height", c.MinBottomHeight},
		{"header button margin", c.HeaderButtonMargin},
		{"drag threshold", c.DragThreshold},
	}
	for _, f := range nonNeg {
		if f.v < 0 || !finite(f.v) {
			return fmt.Errorf("%w: %s must be a non-negative number, got %v", ErrInvalidArgument, f.name, f.v)
		}
	}
	positive := []struct {
		name string
		v    float32
	}{
		{"title bar height", c.TitleBarHeight},
		{"header button width", c.HeaderButtonWidth},
		{"header button height", c.HeaderButtonHeight},
		{"dock edge fraction", c.DockEdgeFraction},
		{"dock min edge size", c.DockMinEdgeSize},
		{"min detached width", c.MinDetachedWidth},
		{"min detached height", c.MinDetachedHeight},
	}
	for _, f := range positive {
		if f.v <= 0 || !finite(f.v) {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidArgument, f.name, f.v)
		}
	}
	if c.MaxPanels <= 0 {
		return fmt.Errorf("%w: max panels must be positive, got %d", ErrInvalidArgument, c.MaxPanels)
	}
	if c.MaxTabs <= 0 {
		return fmt.Errorf("%w: max tabs must be positive, got %d", ErrInvalidArgument, c.MaxTabs)
	}
	if c.ReleasePolicy != ReleaseAbandon && c.ReleasePolicy != ReleaseFloat {
		return fmt.Errorf("%w: release policy %d", ErrInvalidArgument, c.ReleasePolicy)
	}
	if c.InitialWidth <= 0 || c.InitialHeight <= 0 {
		return fmt.Errorf("%w: initial viewport %dx%d", ErrInvalidArgument, c.InitialWidth, c.InitialHeight)
	}
	return nil
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
