package ui

import (
	"strings"

	"paneldock/internal/dock"
	"paneldock/internal/ui/textutil"
)

const keyColumn = 12

// KeysPanel lists the key bindings of the current mode.
type KeysPanel struct {
	grid   Grid
	keys   *KeyHandler
	mode   func() AppMode
	offset int
}

var _ dock.Panel = (*KeysPanel)(nil)

// NewKeysPanel lists the bindings of keys in the mode reported by mode.
func NewKeysPanel(grid Grid, keys *KeyHandler, mode func() AppMode) *KeysPanel {
	return &KeysPanel{grid: grid, keys: keys, mode: mode}
}

// Init implements dock.Panel.
func (p *KeysPanel) Init() error { return nil }

// Shutdown implements dock.Panel.
func (p *KeysPanel) Shutdown() {}

// Draw implements dock.Panel.
func (p *KeysPanel) Draw(dc dock.DrawContext) {
	drawPanel(dc, p.grid, func(s dock.Surface, rows []dock.Rect) {
		bindings := p.keys.Registry.Bindings(p.mode())
		p.offset = max(min(p.offset-wheelLines(s), len(bindings)-len(rows)), 0)
		for i, row := range rows {
			j := i + p.offset
			if j >= len(bindings) {
				return
			}
			b := bindings[j]
			seq := strings.Replace(b.Seq, LeaderSeq, p.keys.LeaderKey, 1)
			key, desc := row, row
			key.W = min(keyColumn*p.grid.CellW, row.W)
			desc.X += key.W
			desc.W = max(row.W-key.W, 0)
			s.Text(key, textutil.Truncate(seq, keyColumn-1), accentColor)
			s.Text(desc, b.Desc, textColor)
		}
	})
}
