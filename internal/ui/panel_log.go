package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"paneldock/internal/dock"
)

const defaultLogLines = 500

type logStore struct {
	mu      sync.Mutex
	lines   []string
	max     int
	version uint64
}

func (s *logStore) add(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
	if over := len(s.lines) - s.max; over > 0 {
		s.lines = append(s.lines[:0], s.lines[over:]...)
	}
	s.version++
}

func (s *logStore) snapshot() ([]string, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lines...), s.version
}

// LogBuffer is a slog.Handler that keeps the most recent records as
// single lines for the log panel.
type LogBuffer struct {
	store  *logStore
	level  slog.Leveler
	prefix string // rendered WithAttrs attributes
	group  string
}

var _ slog.Handler = (*LogBuffer)(nil)

// NewLogBuffer keeps up to maxLines records at or above level.
func NewLogBuffer(maxLines int, level slog.Leveler) *LogBuffer {
	if maxLines <= 0 {
		maxLines = defaultLogLines
	}
	if level == nil {
		level = slog.LevelInfo
	}
	return &LogBuffer{store: &logStore{max: maxLines}, level: level}
}

// Enabled implements slog.Handler.
func (b *LogBuffer) Enabled(_ context.Context, l slog.Level) bool {
	return l >= b.level.Level()
}

// Handle implements slog.Handler.
func (b *LogBuffer) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder
	sb.WriteString(r.Time.Format("15:04:05"))
	sb.WriteByte(' ')
	sb.WriteString(levelTag(r.Level))
	sb.WriteByte(' ')
	sb.WriteString(r.Message)
	sb.WriteString(b.prefix)
	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&sb, b.group, a)
		return true
	})
	b.store.add(sb.String())
	return nil
}

// WithAttrs implements slog.Handler.
func (b *LogBuffer) WithAttrs(attrs []slog.Attr) slog.Handler {
	var sb strings.Builder
	sb.WriteString(b.prefix)
	for _, a := range attrs {
		writeAttr(&sb, b.group, a)
	}
	c := *b
	c.prefix = sb.String()
	return &c
}

// WithGroup implements slog.Handler.
func (b *LogBuffer) WithGroup(name string) slog.Handler {
	if name == "" {
		return b
	}
	c := *b
	if c.group != "" {
		c.group += "."
	}
	c.group += name
	return &c
}

// Lines returns the kept lines, oldest first.
func (b *LogBuffer) Lines() []string {
	lines, _ := b.store.snapshot()
	return lines
}

func writeAttr(sb *strings.Builder, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		g := a.Key
		if group != "" && g != "" {
			g = group + "." + g
		} else if g == "" {
			g = group
		}
		for _, ga := range a.Value.Group() {
			writeAttr(sb, g, ga)
		}
		return
	}
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	fmt.Fprintf(sb, " %s=%v", key, a.Value.Any())
}

func levelTag(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERR"
	case l >= slog.LevelWarn:
		return "WRN"
	case l >= slog.LevelInfo:
		return "INF"
	default:
		return "DBG"
	}
}

// teeHandler sends every record to each of its handlers.
type teeHandler []slog.Handler

// NewTeeHandler fans records out to hs.
func NewTeeHandler(hs ...slog.Handler) slog.Handler {
	return teeHandler(hs)
}

func (t teeHandler) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range t {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithGroup(name)
	}
	return out
}

// LogPanel shows a LogBuffer, following the tail unless scrolled up.
type LogPanel struct {
	grid     Grid
	buf      *LogBuffer
	vp       viewport.Model
	version  uint64
	follow   bool
	lastRows int
}

var _ dock.Panel = (*LogPanel)(nil)

// NewLogPanel shows buf.
func NewLogPanel(grid Grid, buf *LogBuffer) *LogPanel {
	return &LogPanel{grid: grid, buf: buf, vp: viewport.New(0, 0), follow: true}
}

// Init implements dock.Panel.
func (p *LogPanel) Init() error { return nil }

// Shutdown implements dock.Panel.
func (p *LogPanel) Shutdown() {}

// Draw implements dock.Panel.
func (p *LogPanel) Draw(dc dock.DrawContext) {
	drawPanel(dc, p.grid, func(s dock.Surface, rows []dock.Rect) {
		h, w := rowsCols(p.grid, rows)
		p.vp.Width, p.vp.Height = w, h
		p.refresh(h != p.lastRows)
		p.lastRows = h
		p.scroll(wheelLines(s))
		for i, line := range viewportLines(&p.vp, p.grid, rows) {
			if i >= len(rows) {
				break
			}
			col := textColor
			switch {
			case strings.Contains(line, " ERR "):
				col = errorColor
			case strings.Contains(line, " WRN "):
				col = warnColor
			case strings.Contains(line, " DBG "):
				col = mutedColor
			}
			s.Text(rows[i], line, col)
		}
	})
}

func (p *LogPanel) refresh(force bool) {
	lines, v := p.buf.store.snapshot()
	if v == p.version && !force {
		return
	}
	p.version = v
	p.vp.SetContent(strings.Join(lines, "\n"))
	if p.follow {
		p.vp.GotoBottom()
	}
}

// scroll moves n lines toward the top (negative toward the tail).
func (p *LogPanel) scroll(n int) {
	switch {
	case n > 0:
		p.vp.LineUp(n)
	case n < 0:
		p.vp.LineDown(-n)
	default:
		return
	}
	p.follow = p.vp.AtBottom()
}

// HandleKey implements KeyReceiver.
func (p *LogPanel) HandleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "k", "up":
		p.scroll(1)
	case "j", "down":
		p.scroll(-1)
	case "pgup":
		p.scroll(max(p.vp.Height-1, 1))
	case "pgdown":
		p.scroll(-max(p.vp.Height-1, 1))
	case "g", "home":
		p.vp.GotoTop()
		p.follow = p.vp.AtBottom()
	case "G", "end":
		p.vp.GotoBottom()
		p.follow = true
	}
	return nil
}
