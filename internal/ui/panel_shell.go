package ui

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"paneldock/internal/dock"
	"paneldock/internal/pty"
	"paneldock/internal/ui/textutil"
)

const maxShellLines = 1000

// ShellOutputMsg carries bytes read from the shell's PTY.
type ShellOutputMsg struct {
	Data []byte
}

// ShellExitedMsg is sent when the shell's PTY closes.
type ShellExitedMsg struct{}

// ShellPanel runs a shell in a PTY and shows its output as plain text.
// Keys go to the shell while the panel has focus.
type ShellPanel struct {
	grid    Grid
	runner  pty.Runner
	shell   string
	logger  *slog.Logger
	session *pty.Session
	vp      viewport.Model

	lines  []string
	dirty  bool
	exited bool
	err    error
}

var (
	_ dock.Panel  = (*ShellPanel)(nil)
	_ KeyReceiver = (*ShellPanel)(nil)
)

// NewShellPanel creates a panel that runs shell (or $SHELL, or sh) through
// runner once Start is called.
func NewShellPanel(grid Grid, runner pty.Runner, shell string, logger *slog.Logger) *ShellPanel {
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "sh"
	}
	return &ShellPanel{
		grid:   grid,
		runner: runner,
		shell:  shell,
		logger: logger,
		vp:     viewport.New(0, 0),
		lines:  []string{""},
	}
}

// Start spawns the shell and returns the command that waits for its
// output.
func (p *ShellPanel) Start(ctx context.Context) tea.Cmd {
	if p.session != nil {
		return nil
	}
	cmd := exec.Command(p.shell)
	cmd.Env = append(os.Environ(), "TERM=dumb")
	s, err := pty.Spawn(ctx, p.runner, cmd, pty.Size{Rows: 24, Cols: 80})
	if err != nil {
		p.err = err
		p.logger.Error("shell failed to start", "shell", p.shell, "err", err)
		return nil
	}
	p.session = s
	p.logger.Info("shell started", "shell", p.shell)
	return p.wait()
}

func (p *ShellPanel) wait() tea.Cmd {
	s := p.session
	if s == nil {
		return nil
	}
	return func() tea.Msg {
		data, ok := <-s.Output()
		if !ok {
			return ShellExitedMsg{}
		}
		return ShellOutputMsg{Data: data}
	}
}

// Append adds shell output and returns the command for the next chunk.
func (p *ShellPanel) Append(data []byte) tea.Cmd {
	for _, r := range textutil.Plain(string(data)) {
		last := &p.lines[len(p.lines)-1]
		switch r {
		case '\n':
			p.lines = append(p.lines, "")
		case '\b':
			if rs := []rune(*last); len(rs) > 0 {
				*last = string(rs[:len(rs)-1])
			}
		case '\a', 0:
		case '\t':
			*last += "    "
		default:
			*last += string(r)
		}
	}
	if over := len(p.lines) - maxShellLines; over > 0 {
		p.lines = append(p.lines[:0], p.lines[over:]...)
	}
	p.dirty = true
	return p.wait()
}

// Exited records that the shell went away.
func (p *ShellPanel) Exited() {
	p.exited = true
	p.logger.Info("shell exited", "shell", p.shell)
}

// Text returns the shell output so far.
func (p *ShellPanel) Text() string { return strings.Join(p.lines, "\n") }

// Init implements dock.Panel.
func (p *ShellPanel) Init() error { return nil }

// Shutdown implements dock.Panel.
func (p *ShellPanel) Shutdown() {
	if p.session != nil {
		_ = p.session.Close()
	}
}

// Draw implements dock.Panel.
func (p *ShellPanel) Draw(dc dock.DrawContext) {
	drawPanel(dc, p.grid, func(s dock.Surface, rows []dock.Rect) {
		h, w := rowsCols(p.grid, rows)
		if p.session != nil && h > 0 && w > 0 {
			if err := p.session.Resize(pty.Size{Rows: uint16(h), Cols: uint16(w)}); err != nil {
				p.logger.Warn("shell resize failed", "err", err)
			}
		}
		switch {
		case p.err != nil:
			drawRows(s, rows, textutil.Wrap("shell: "+p.err.Error(), w), errorColor)
			return
		case p.exited:
			p.vp.SetContent(p.Text() + "\n[process exited]")
		case p.dirty:
			p.vp.SetContent(p.Text())
			p.vp.GotoBottom()
			p.dirty = false
		}
		if n := wheelLines(s); n > 0 {
			p.vp.LineUp(n)
		} else if n < 0 {
			p.vp.LineDown(-n)
		}
		drawRows(s, rows, viewportLines(&p.vp, p.grid, rows), textColor)
	})
}

// HandleKey implements KeyReceiver.
func (p *ShellPanel) HandleKey(msg tea.KeyMsg) tea.Cmd {
	if p.session == nil || p.exited {
		return nil
	}
	if b := keyToPTYBytes(msg); len(b) > 0 {
		if _, err := p.session.Write(b); err != nil {
			p.logger.Warn("shell write failed", "err", err)
		}
		p.vp.GotoBottom()
	}
	return nil
}

// keyToPTYBytes converts a key to the bytes a terminal would send.
func keyToPTYBytes(msg tea.KeyMsg) []byte {
	switch msg.Type {
	case tea.KeyEnter:
		return []byte{'\r'}
	case tea.KeyBackspace:
		return []byte{0x7f}
	case tea.KeyTab:
		return []byte{'\t'}
	case tea.KeySpace:
		return []byte{' '}
	case tea.KeyUp:
		return []byte("\x1b[A")
	case tea.KeyDown:
		return []byte("\x1b[B")
	case tea.KeyRight:
		return []byte("\x1b[C")
	case tea.KeyLeft:
		return []byte("\x1b[D")
	case tea.KeyEsc:
		return []byte{0x1b}
	case tea.KeyRunes:
		b := []byte(string(msg.Runes))
		if msg.Alt {
			b = append([]byte{0x1b}, b...)
		}
		return b
	}
	if msg.Type >= tea.KeyCtrlAt && msg.Type <= tea.KeyCtrlUnderscore {
		return []byte{byte(msg.Type)}
	}
	return nil
}
