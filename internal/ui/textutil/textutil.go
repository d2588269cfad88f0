// Package textutil provides unicode-aware text utilities for cell rendering.
package textutil

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

// TruncateEllipsis is the unicode ellipsis character used for truncation.
const TruncateEllipsis = "…"

// VisualWidth returns the number of terminal columns s occupies.
func VisualWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate truncates a string to fit within maxWidth visual columns.
// If truncation is needed, it appends the unicode ellipsis character (…).
// The result will be at most maxWidth visual columns wide.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisualWidth(s) <= maxWidth {
		return s
	}

	// The ellipsis takes 1 column.
	availableWidth := maxWidth - VisualWidth(TruncateEllipsis)
	if availableWidth < 0 {
		return TruncateEllipsis
	}

	result := make([]rune, 0, len(s))
	currentWidth := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if currentWidth+w > availableWidth {
			break
		}
		result = append(result, r)
		currentWidth += w
	}
	return string(result) + TruncateEllipsis
}

// PadRightVisual pads a string to the right to reach targetWidth visual columns.
// If the string is already wider than targetWidth, it's truncated.
func PadRightVisual(s string, targetWidth int) string {
	currentWidth := VisualWidth(s)
	if currentWidth >= targetWidth {
		return Truncate(s, targetWidth)
	}
	return s + runewidth.FillRight("", targetWidth-currentWidth)
}

// Wrap wraps s at word boundaries to width columns and hard-wraps words
// longer than width. It returns one entry per line.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	wrapped := wrap.String(wordwrap.String(s, width), width)
	return strings.Split(wrapped, "\n")
}

// Plain strips ANSI escape sequences and carriage returns, leaving text a
// cell grid can place.
func Plain(s string) string {
	return strings.ReplaceAll(ansi.Strip(s), "\r", "")
}
