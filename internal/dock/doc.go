// Package dock implements a panel-docking layout engine for immediate-mode
// GUIs.
//
// Core abstractions:
//   - Registry: ordered panel descriptors shared by every workspace tab
//   - Workspace: per-tab panel state (visibility, slot, detached bounds),
//     splitter ratios and the transient splitter/drag interaction state
//   - Resolve: pure function from workspace + viewport to rectangles
//   - Surface: the host toolkit capabilities the engine draws through
//   - Tabs: named, switchable workspaces over one registry
//
// A host calls Workspace.Frame once per UI frame. The frame resolves the
// layout, applies splitter drags, runs the drag-to-dock gesture, routes the
// scroll wheel to a single panel and invokes each visible panel's Draw.
//
// Everything here runs on the UI goroutine. Nothing blocks and nothing is
// safe for concurrent use.
package dock
