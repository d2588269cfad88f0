package dock

var (
	headerButtonFill  = RGBA(48, 59, 73, 255)
	headerButtonHover = RGBA(62, 77, 95, 255)
	headerButtonLine  = RGBA(67, 81, 100, 255)
	headerButtonText  = RGBA(223, 228, 236, 255)
)

// BeginWindow opens the host window of panel id at its resolved bounds and
// returns the content area below the title bar. Docked panels get a fixed
// background window; floating panels get a movable, resizable, closable
// one whose moved or resized bounds are read back into DetachedBounds.
// Closing a floating window hides the panel. Detachable panels get a
// header button that floats or docks them.
//
// When BeginWindow returns true the caller must call Surface.EndWindow.
func (w *Workspace) BeginWindow(s Surface, id string, extra WindowFlags) (bool, Rect) {
	h, err := w.handle(id)
	if err != nil || !w.states[h].Visible {
		return false, Rect{}
	}
	st := &w.states[h]
	bounds := st.ResolvedBounds
	bounds.W = floor1(bounds.W)
	bounds.H = floor1(bounds.H)

	flags := FlagBorder | FlagTitle | extra
	if st.Detached {
		flags |= FlagMovable | FlagResizable | FlagClosable
	} else {
		flags |= FlagBackground
	}

	s.ShowWindow(id, true)
	open := s.BeginWindow(id, w.reg.Descriptor(h).Title, bounds, flags)
	if st.Detached && s.WindowClosed(id) {
		if open {
			s.EndWindow()
		}
		s.ShowWindow(id, false)
		w.setVisible(h, false)
		w.logger.Debug("floating panel closed", "id", id)
		return false, Rect{}
	}
	if !open {
		return false, Rect{}
	}

	if st.Detached {
		if got := s.WindowBounds(); !got.Empty() && got != bounds {
			st.DetachedBounds = w.sanitize(got)
			st.ResolvedBounds = st.DetachedBounds
			bounds = got
		}
	}

	if st.Detachable {
		w.headerButton(s, h, bounds)
	}

	title := min(w.cfg.TitleBarHeight, bounds.H)
	return true, Rect{X: bounds.X, Y: bounds.Y + title, W: bounds.W, H: floor1(bounds.H - title)}
}

func (w *Workspace) headerButton(s Surface, h Handle, window Rect) {
	st := w.states[h]
	b := HeaderButtonBounds(window, w.cfg)
	in := s.Input()
	over := b.Contains(in.Pointer)

	fill := headerButtonFill
	if over {
		fill = headerButtonHover
	}
	label := "Detach"
	if st.Detached {
		label = "Dock"
	}
	s.FillRect(b, 3, fill)
	s.StrokeRect(b, 3, 1, headerButtonLine)
	s.Text(b, label, headerButtonText)

	if over && in.Pressed {
		if err := w.setDetached(h, !st.Detached); err != nil {
			w.logger.Debug("header button toggle failed", "id", w.reg.Descriptor(h).ID, "err", err)
		}
	}
}
