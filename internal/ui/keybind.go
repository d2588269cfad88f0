package ui

import (
	"slices"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// LeaderSeq is the token that stands for the leader key in sequences:
// "SPC t n" is leader, t, n whatever key the leader is bound to.
const LeaderSeq = "SPC"

// KeybindRegistry maps key sequences to commands.
// Single keys use tea.KeyMsg.String() notation: "ctrl+q", "tab", "esc".
type KeybindRegistry struct {
	bindings     map[string]tea.Cmd
	descriptions map[string]string
	modeFilter   map[string][]AppMode // empty = every mode
}

// NewKeybindRegistry creates an empty registry.
func NewKeybindRegistry() *KeybindRegistry {
	return &KeybindRegistry{
		bindings:     make(map[string]tea.Cmd),
		descriptions: make(map[string]string),
		modeFilter:   make(map[string][]AppMode),
	}
}

// Bind registers a key sequence to a command in every mode, replacing any
// existing binding.
func (r *KeybindRegistry) Bind(seq string, cmd tea.Cmd, desc string) {
	r.BindForMode(seq, cmd, desc, nil)
}

// BindForMode registers a key sequence that only applies in modes. A nil
// or empty modes applies everywhere.
func (r *KeybindRegistry) BindForMode(seq string, cmd tea.Cmd, desc string, modes []AppMode) {
	n := normalizeSeq(seq)
	r.bindings[n] = cmd
	if desc != "" {
		r.descriptions[n] = desc
	}
	if len(modes) > 0 {
		r.modeFilter[n] = modes
	} else {
		delete(r.modeFilter, n)
	}
}

// Lookup returns the command for a key sequence in mode, or nil.
func (r *KeybindRegistry) Lookup(seq string, mode AppMode) tea.Cmd {
	n := normalizeSeq(seq)
	if !r.appliesToMode(n, mode) {
		return nil
	}
	return r.bindings[n]
}

// HasPrefix reports whether a longer binding starts with seq.
func (r *KeybindRegistry) HasPrefix(seq string) bool {
	prefix := normalizeSeq(seq) + " "
	for k := range r.bindings {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}

// Binding is one registered sequence.
type Binding struct {
	Seq  string
	Desc string
}

// Bindings returns the described bindings that apply in mode, sorted by
// sequence.
func (r *KeybindRegistry) Bindings(mode AppMode) []Binding {
	var out []Binding
	for seq, cmd := range r.bindings {
		if d := r.descriptions[seq]; cmd != nil && d != "" && r.appliesToMode(seq, mode) {
			out = append(out, Binding{Seq: seq, Desc: d})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

// submenuLabel names leader keys that open a submenu.
var submenuLabel = map[string]string{
	"t": "Tab",
	"p": "Panel",
}

// LeaderHints returns the next keys after currentSeq (the bare leader when
// empty) with their descriptions, for bindings that apply in mode.
func (r *KeybindRegistry) LeaderHints(currentSeq string, mode AppMode) map[string]string {
	out := make(map[string]string)
	prefix := LeaderSeq + " "
	if currentSeq != "" {
		prefix = normalizeSeq(currentSeq) + " "
	}
	for seq, cmd := range r.bindings {
		if cmd == nil || !strings.HasPrefix(seq, prefix) || !r.appliesToMode(seq, mode) {
			continue
		}
		rest := strings.TrimPrefix(seq, prefix)
		next, _, _ := strings.Cut(rest, " ")
		switch {
		case r.HasPrefix(prefix + next):
			if label, ok := submenuLabel[next]; ok {
				out[next] = label
			} else {
				out[next] = next + "…"
			}
		case r.descriptions[seq] != "":
			out[next] = r.descriptions[seq]
		default:
			out[next] = seq
		}
	}
	return out
}

func (r *KeybindRegistry) appliesToMode(seq string, mode AppMode) bool {
	modes, ok := r.modeFilter[seq]
	return !ok || slices.Contains(modes, mode)
}

// normalizeSeq rewrites space to the SPC token.
func normalizeSeq(seq string) string {
	parts := strings.Fields(seq)
	for i, p := range parts {
		parts[i] = keyToSeqPart(p)
	}
	return strings.Join(parts, " ")
}

func keyToSeqPart(s string) string {
	if s == " " || s == "space" {
		return "SPC"
	}
	return s
}

// KeyHandler tracks the leader state and dispatches to the registry.
type KeyHandler struct {
	Registry *KeybindRegistry
	// LeaderKey is the tea.KeyMsg.String() of the leader.
	LeaderKey     string
	LeaderWaiting bool
	Buffer        []string // sequence typed since the leader
}

// NewKeyHandler creates a handler with the given leader key.
func NewKeyHandler(reg *KeybindRegistry, leader string) *KeyHandler {
	if leader == "space" {
		leader = " "
	}
	return &KeyHandler{Registry: reg, LeaderKey: leader}
}

// Handle processes a key in mode. consumed reports whether the key
// belonged to the keybind system; cmd is the bound command, if any.
func (h *KeyHandler) Handle(msg tea.KeyMsg, mode AppMode) (consumed bool, cmd tea.Cmd) {
	s := msg.String()

	if h.LeaderWaiting {
		if s == "esc" {
			h.reset()
			return true, nil
		}
		h.Buffer = append(h.Buffer, keyToSeqPart(s))
		seq := strings.Join(h.Buffer, " ")
		if c := h.Registry.Lookup(seq, mode); c != nil {
			h.reset()
			return true, c
		}
		if !h.Registry.HasPrefix(seq) {
			h.reset()
		}
		return true, nil
	}

	if keyToSeqPart(s) == keyToSeqPart(h.LeaderKey) {
		h.LeaderWaiting = true
		h.Buffer = []string{LeaderSeq}
		return true, nil
	}
	if c := h.Registry.Lookup(keyToSeqPart(s), mode); c != nil {
		return true, c
	}
	return false, nil
}

func (h *KeyHandler) reset() {
	h.LeaderWaiting = false
	h.Buffer = nil
}

// CurrentSeq returns the sequence typed so far, or "".
func (h *KeyHandler) CurrentSeq() string { return strings.Join(h.Buffer, " ") }

// KeyMap implements help.KeyMap over the hints that follow the typed
// sequence.
type KeyMap struct {
	registry *KeybindRegistry
	handler  *KeyHandler
	mode     AppMode
}

// NewKeyMap creates a KeyMap for the given handler and mode.
func NewKeyMap(handler *KeyHandler, mode AppMode) *KeyMap {
	return &KeyMap{registry: handler.Registry, handler: handler, mode: mode}
}

// ShortHelp implements help.KeyMap.
func (km *KeyMap) ShortHelp() []key.Binding {
	hints := km.registry.LeaderHints(km.handler.CurrentSeq(), km.mode)
	if len(hints) == 0 {
		return nil
	}
	keys := make([]string, 0, len(hints))
	for k := range hints {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bindings := make([]key.Binding, 0, len(keys)+1)
	for _, k := range keys {
		bindings = append(bindings, key.NewBinding(key.WithKeys(k), key.WithHelp(k, hints[k])))
	}
	return append(bindings, key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")))
}

// FullHelp implements help.KeyMap.
func (km *KeyMap) FullHelp() [][]key.Binding {
	short := km.ShortHelp()
	if len(short) == 0 {
		return nil
	}
	return [][]key.Binding{short}
}
