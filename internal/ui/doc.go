// Package ui hosts the dock engine in a terminal.
//
// TermSurface implements dock.Surface over a Canvas of cells: layout
// pixels are mapped to cells through a Grid, windows are buffered per id
// and composited in z-order at the end of each frame. App wires a tabbed
// workspace of demo panels (keys, notes, shell, inspector, log) to a
// leader-key binding system and modal prompts. The same App runs under
// Bubble Tea (AsTeaModel) or directly on a tcell screen (TcellHost).
package ui
