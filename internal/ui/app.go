package ui

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"paneldock/internal/config"
	"paneldock/internal/dock"
	"paneldock/internal/pty"
	"paneldock/internal/trace"
)

// Panel IDs of the demo workspace.
const (
	PanelKeys      = "keys"
	PanelNotes     = "notes"
	PanelShell     = "shell"
	PanelInspector = "inspector"
	PanelLog       = "log"
)

const welcomeNotes = "Drag a title bar onto a dock zone to move a panel. " +
	"Drag the gutters to resize columns and rows. " +
	"Detach floats a panel; drag its title to move it and its corner to resize it.\n\n"

// Options are the dependencies of an App.
type Options struct {
	Config config.Config
	Logger *slog.Logger
	// LogBuffer feeds the log panel. It should also be one of Logger's
	// handlers.
	LogBuffer *LogBuffer
	// Recorder adds frame timings to the inspector. It may be nil.
	Recorder *trace.Recorder
	Runner   pty.Runner
	// Cols and Rows are the initial terminal size.
	Cols, Rows int
}

// App is the demo application: a tabbed dock workspace drawn onto a
// terminal cell canvas. Both terminal hosts drive it through Update and
// read the result from Canvas.
type App struct {
	ctx    context.Context
	cfg    config.Config
	logger *slog.Logger

	tabs    *dock.Tabs
	surface *TermSurface
	pointer *Pointer
	strip   *TabStrip
	keys    *KeyHandler
	focus   *FocusManager
	modals  ModalStack
	shell   *ShellPanel

	status    string
	statusErr bool
}

// NewApp builds the workspace, registers the demo panels and creates the
// configured tabs.
func NewApp(ctx context.Context, opts Options) (*App, error) {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	buf := opts.LogBuffer
	if buf == nil {
		buf = NewLogBuffer(0, nil)
	}
	runner := opts.Runner
	if runner == nil {
		runner = &pty.CreackPTY{}
	}

	dc, err := cfg.DockConfig()
	if err != nil {
		return nil, fmt.Errorf("dock config: %w", err)
	}
	ws, err := dock.NewWorkspace(dc)
	if err != nil {
		return nil, err
	}
	ws.SetLogger(logger.With("component", "dock"))

	grid := Grid{CellW: float32(cfg.CellWidth), CellH: float32(cfg.CellHeight)}
	a := &App{
		ctx:     ctx,
		cfg:     cfg,
		logger:  logger,
		tabs:    dock.NewTabs(ws),
		surface: NewTermSurface(grid, max(opts.Cols, 1), max(opts.Rows, 1)),
		pointer: NewPointer(grid),
		strip:   NewTabStrip(grid),
		keys:    NewKeyHandler(NewKeybindRegistry(), cfg.Leader),
		focus:   &FocusManager{},
	}
	a.focus.OnChange = func(_, to string) { a.surface.SetFocusedWindow(to) }
	a.shell = NewShellPanel(grid, runner, cfg.Shell, logger.With("component", "shell"))

	panels := []dock.Descriptor{
		{ID: PanelKeys, Title: "Keys", Panel: NewKeysPanel(grid, a.keys, a.Mode), DefaultSlot: dock.SlotTopLeft, DefaultVisible: true},
		{ID: PanelNotes, Title: "Notes", Panel: NewNotesPanel(grid, welcomeNotes), DefaultSlot: dock.SlotLeft, DefaultVisible: true, DefaultDetachable: true},
		{ID: PanelShell, Title: "Shell", Panel: a.shell, DefaultSlot: dock.SlotCenter, DefaultVisible: true, DefaultDetachable: true},
		{ID: PanelInspector, Title: "Inspector", Panel: NewInspectorPanel(grid, opts.Recorder), DefaultSlot: dock.SlotRight, DefaultVisible: true, DefaultDetachable: true},
		{ID: PanelLog, Title: "Log", Panel: NewLogPanel(grid, buf), DefaultSlot: dock.SlotBottom, DefaultVisible: true, DefaultDetachable: true},
	}
	for _, d := range panels {
		if _, err := a.tabs.Register(d); err != nil {
			return nil, fmt.Errorf("register %s: %w", d.ID, err)
		}
	}
	for _, name := range cfg.Tabs {
		if _, err := a.tabs.Create(name); err != nil {
			return nil, fmt.Errorf("create tab %q: %w", name, err)
		}
	}
	a.bindKeys()
	a.frame(a.pointer.Idle())
	return a, nil
}

// Tabs returns the tab list.
func (a *App) Tabs() *dock.Tabs { return a.tabs }

// Workspace returns the live workspace of the active tab.
func (a *App) Workspace() *dock.Workspace { return a.tabs.Workspace() }

// Canvas returns the last composited frame.
func (a *App) Canvas() *Canvas { return a.surface.Canvas() }

// Focused returns the ID of the focused panel, or "".
func (a *App) Focused() string { return a.focus.Current }

// Status returns the status line text.
func (a *App) Status() string { return a.status }

// Mode reports where keys currently go.
func (a *App) Mode() AppMode {
	switch {
	case a.modals.Len() > 0:
		return ModeModal
	case a.focus.Current == PanelShell:
		return ModeShell
	default:
		return ModeDock
	}
}

// Init returns the startup commands.
func (a *App) Init() tea.Cmd {
	return a.shell.Start(a.ctx)
}

// Update handles one message, redraws, and returns the follow-up command.
func (a *App) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	in := a.pointer.Idle()
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.surface.Resize(msg.Width, msg.Height)
	case tea.MouseMsg:
		if a.modals.Len() == 0 {
			in = a.pointer.Mouse(msg)
		}
	case tea.KeyMsg:
		cmd = a.handleKey(msg)
	case ShellOutputMsg:
		cmd = a.shell.Append(msg.Data)
	case ShellExitedMsg:
		a.shell.Exited()
	case DismissModalMsg:
		a.modals.Pop()
		if msg.Then != nil {
			return a.Update(msg.Then)
		}
	default:
		cmd = a.handleCommand(msg)
	}
	a.frame(in)
	return cmd
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if a.modals.Len() > 0 {
		cmd, _ := a.modals.UpdateTop(msg)
		return cmd
	}
	if consumed, cmd := a.keys.Handle(msg, a.Mode()); consumed {
		return cmd
	}
	if r, ok := a.panel(a.focus.Current).(KeyReceiver); ok {
		return r.HandleKey(msg)
	}
	return nil
}

func (a *App) panel(id string) dock.Panel {
	reg := a.Workspace().Registry()
	h, ok := reg.Lookup(id)
	if !ok {
		return nil
	}
	return reg.Descriptor(h).Panel
}

// frame runs one engine frame with in and composites the result.
func (a *App) frame(in dock.Input) {
	s := a.surface
	cols, rows := s.Canvas().Size()
	s.BeginFrame(in)

	a.strip.Layout(a.tabs.Names(), cols)
	if in.Pressed {
		if i := a.strip.Hit(s.Grid().Cell(in.Pointer)); i >= 0 {
			a.switchTab(i)
		}
	}
	statusCol := mutedColor
	if a.statusErr {
		statusCol = errorColor
	}
	a.strip.Draw(s, a.tabs.Names(), a.tabs.Active(), cols, a.status, statusCol)

	w, h := s.Viewport()
	a.Workspace().Frame(a.ctx, s, w, h)
	s.EndFrame()
	a.syncFocus()

	c := s.Canvas()
	c.ResetClip()
	if m, ok := a.modals.Peek(); ok {
		block := m.View()
		bw, bh := lipgloss.Size(block)
		c.Blit((cols-bw)/2, (rows-bh)/2, block, colorTitle, colorModal)
	}
	if help := RenderKeybindHelp(a.keys, a.Mode(), cols); help != "" {
		_, bh := lipgloss.Size(help)
		c.Blit(0, rows-bh, help, colorText, colorModal)
	}
}

// syncFocus keeps keyboard focus on a visible panel and follows clicks.
func (a *App) syncFocus() {
	ws := a.Workspace()
	var order []string
	for i := range ws.Count() {
		if ws.IsVisibleAt(i) {
			order = append(order, ws.IDAt(i))
		}
	}
	a.focus.Sync(order)
	if f := a.surface.FocusedWindow(); f != a.focus.Current && !a.focus.SetFocus(f) {
		a.surface.SetFocusedWindow(a.focus.Current)
	}
}

func (a *App) setStatus(text string) {
	a.status, a.statusErr = text, false
}

func (a *App) report(err error) bool {
	if err == nil {
		return false
	}
	a.status, a.statusErr = err.Error(), true
	a.logger.Warn("command failed", "err", err)
	return true
}

// AsTeaModel returns a tea.Model for tea.NewProgram.
func (a *App) AsTeaModel() tea.Model {
	return &appModelAdapter{App: a}
}

var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps App to implement tea.Model.
type appModelAdapter struct {
	*App
}

// Init implements tea.Model.
func (m *appModelAdapter) Init() tea.Cmd { return m.App.Init() }

// Update implements tea.Model.
func (m *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m, m.App.Update(msg)
}

// View implements tea.Model.
func (m *appModelAdapter) View() string { return m.Canvas().Render() }
