package editor

import (
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/shg8/silverbullet/internal/config"
	"github.com/shg8/silverbullet/internal/log"
	"github.com/shg8/silverbullet/internal/mathtree"
	"github.com/shg8/silverbullet/internal/mode"
	"github.com/shg8/silverbullet/internal/preview"
	"github.com/shg8/silverbullet/internal/pubsub"
	"github.com/shg8/silverbullet/internal/ui/docview"
)

// Update implements mode.Controller.
func (m Model) Update(msg tea.Msg) (mode.Controller, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case PreviewRebuiltMsg:
		if m.ctrl != nil {
			m.view = m.view.SetDecorations(m.ctrl.Decorations())
		}
		return m, nil

	case FileChangedMsg:
		return m.handleFileChanged(msg)

	case pubsub.Event[preview.EditIntent]:
		return m.handleEditIntent(msg.Payload)

	case statusMsg:
		m.status = msg.text
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (mode.Controller, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
		return m, nil

	case key.Matches(msg, m.keymap.TogglePreview):
		return m.togglePreview()

	case key.Matches(msg, m.keymap.Save):
		return m.save()

	case key.Matches(msg, m.keymap.Escape):
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		m.anchor = -1
		return m.applySelection(preview.CursorOnly(m.sel.Cursor)), nil

	case key.Matches(msg, m.keymap.Up):
		off := m.offsetAbove(m.sel.Cursor)
		return m.moveCursor(off, false), nil
	case key.Matches(msg, m.keymap.Down):
		off := m.offsetBelow(m.sel.Cursor)
		return m.moveCursor(off, false), nil
	case key.Matches(msg, m.keymap.Left):
		return m.moveCursor(m.prevOffset(m.sel.Cursor), true), nil
	case key.Matches(msg, m.keymap.Right):
		return m.moveCursor(m.nextOffset(m.sel.Cursor), true), nil
	case key.Matches(msg, m.keymap.Home):
		return m.moveCursor(m.doc.LineStart(m.doc.LineAt(m.sel.Cursor)), true), nil
	case key.Matches(msg, m.keymap.End):
		return m.moveCursor(m.doc.LineEnd(m.doc.LineAt(m.sel.Cursor)), true), nil

	case key.Matches(msg, m.keymap.SelectLeft):
		return m.extendSelection(m.prevOffset(m.sel.Cursor)), nil
	case key.Matches(msg, m.keymap.SelectRight):
		return m.extendSelection(m.nextOffset(m.sel.Cursor)), nil
	case key.Matches(msg, m.keymap.SelectUp):
		off := m.offsetAbove(m.sel.Cursor)
		return m.extendSelection(off), nil
	case key.Matches(msg, m.keymap.SelectDown):
		off := m.offsetBelow(m.sel.Cursor)
		return m.extendSelection(off), nil
	}

	switch msg.Type {
	case tea.KeyRunes:
		return m.insert(string(msg.Runes)), nil
	case tea.KeySpace:
		return m.insert(" "), nil
	case tea.KeyEnter:
		return m.insert("\n"), nil
	case tea.KeyTab:
		return m.insert("\t"), nil
	case tea.KeyBackspace:
		return m.deleteBackward(), nil
	case tea.KeyDelete:
		return m.deleteForward(), nil
	}

	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (mode.Controller, tea.Cmd) {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.view = m.view.SetScroll(m.view.Scroll() - 1)
		return m.syncViewport(), nil

	case msg.Button == tea.MouseButtonWheelDown:
		m.view = m.view.SetScroll(m.view.Scroll() + 1)
		return m.syncViewport(), nil

	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		return m.handleMousePress(msg), nil

	case msg.Action == tea.MouseActionMotion && msg.Button == tea.MouseButtonLeft:
		return m.handleMouseDrag(msg), nil

	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease:
		return m.handleMouseRelease(msg), nil
	}

	return m, nil
}

func (m Model) handleMousePress(msg tea.MouseMsg) Model {
	if m.ctrl != nil {
		m.ctrl.HandlePointer(preview.PointerEvent{Type: preview.PointerDown})
	}

	// Pressing on a widget defers everything to release: moving the cursor
	// here would be the default click behavior the widget must swallow.
	if i, ok := m.widgetUnder(msg); ok {
		m.pressedWidget = i
		return m
	}

	m.pressedWidget = -1
	offset := m.view.OffsetAt(msg.X, msg.Y-1)
	m.anchor = offset
	return m.applySelection(preview.CursorOnly(offset))
}

func (m Model) handleMouseDrag(msg tea.MouseMsg) Model {
	if m.pressedWidget >= 0 {
		return m
	}
	if m.ctrl != nil {
		m.ctrl.HandlePointer(preview.PointerEvent{Type: preview.PointerMove})
	}

	offset := m.view.OffsetAt(msg.X, msg.Y-1)
	return m.applySelection(m.selectionTo(offset))
}

func (m Model) handleMouseRelease(msg tea.MouseMsg) Model {
	if m.pressedWidget >= 0 {
		pressed := m.pressedWidget
		m.pressedWidget = -1
		if m.ctrl != nil {
			m.ctrl.HandlePointer(preview.PointerEvent{Type: preview.PointerUp})
			if i, ok := m.widgetUnder(msg); ok && i == pressed {
				decorations := m.ctrl.Decorations().Decorations()
				if i < len(decorations) {
					// Terminals do not report a meta key; pass what we have.
					m.ctrl.Activate(decorations[i].Span.From, false, msg.Ctrl, msg.Alt)
				}
			}
		}
		return m
	}

	// Record the final selection before ending the drag, so the deferred
	// settle rebuild (not the raw release) recomputes against it.
	offset := m.view.OffsetAt(msg.X, msg.Y-1)
	m = m.applySelection(m.selectionTo(offset))
	if m.ctrl != nil {
		m.ctrl.HandlePointer(preview.PointerEvent{Type: preview.PointerUp})
	}
	return m
}

// widgetUnder resolves the mouse position to a decoration index via the
// zone manager.
func (m Model) widgetUnder(msg tea.MouseMsg) (int, bool) {
	if m.ctrl == nil {
		return 0, false
	}
	for i := range m.ctrl.Decorations().Decorations() {
		if z := zone.Get(docview.WidgetZoneID(i)); z != nil && z.InBounds(msg) {
			return i, true
		}
	}
	return 0, false
}

func (m Model) handleFileChanged(msg FileChangedMsg) (mode.Controller, tea.Cmd) {
	changed, ok := m.doc.SetText(msg.Text)
	if !ok {
		return m, nil
	}
	log.Info(log.CatDoc, "reloaded from disk", "path", m.services.FilePath,
		"changedFrom", changed.From, "changedTo", changed.To)

	m.modified = false
	m = m.reparse()

	// Keep the cursor inside the new bounds.
	sel := m.sel
	if sel.Cursor > m.doc.Len() {
		sel = preview.CursorOnly(m.doc.Len())
	}
	m = m.applySelection(sel)
	m.status = "reloaded from disk"
	return m, nil
}

func (m Model) handleEditIntent(intent preview.EditIntent) (mode.Controller, tea.Cmd) {
	if intent.DocumentID != m.doc.ID() {
		return m, nil
	}

	m.anchor = -1
	m = m.applySelection(preview.CursorOnly(intent.Offset))
	m.view = m.view.EnsureCursorVisible()
	return m.syncViewport(), nil
}

func (m Model) togglePreview() (mode.Controller, tea.Cmd) {
	m.previewEnabled = !m.previewEnabled
	m.services.Config.Preview.Enabled = m.previewEnabled

	if m.previewEnabled {
		m.ctrl = m.newController(mathtree.Parse(m.doc.Text()))
		m.view = m.view.SetDecorations(m.ctrl.Decorations())
		m.status = "math preview on"
	} else {
		if m.ctrl != nil {
			m.ctrl.Dispose()
			m.ctrl = nil
		}
		m.view = m.view.SetDecorations(nil)
		m.status = "math preview off"
	}

	if m.services.ConfigPath != "" {
		if err := config.SavePreviewEnabled(m.services.ConfigPath, m.previewEnabled); err != nil {
			log.Warn(log.CatConfig, "failed to persist preview toggle", "error", err)
		}
	}
	return m, nil
}

func (m Model) save() (mode.Controller, tea.Cmd) {
	if err := os.WriteFile(m.services.FilePath, []byte(m.doc.Text()), 0o644); err != nil { //nolint:gosec // user's own document
		log.ErrorErr(log.CatDoc, "save failed", err, "path", m.services.FilePath)
		m.status = "save failed: " + err.Error()
		return m, nil
	}
	m.modified = false
	m.status = "saved"
	return m, nil
}

// moveCursor moves the cursor, dropping any selection. resetGoal refreshes
// the remembered column for vertical movement.
func (m Model) moveCursor(offset int, resetGoal bool) Model {
	m.anchor = -1
	if resetGoal {
		m.goalCol = -1
	}
	m = m.applySelection(preview.CursorOnly(offset))
	m.view = m.view.EnsureCursorVisible()
	return m.syncViewport()
}

// extendSelection grows the selection from the anchor to the new cursor.
func (m Model) extendSelection(offset int) Model {
	if m.anchor < 0 {
		m.anchor = m.sel.Cursor
	}
	m = m.applySelection(m.selectionTo(offset))
	m.view = m.view.EnsureCursorVisible()
	return m.syncViewport()
}

// selectionTo builds the selection state for a cursor at offset with the
// current anchor.
func (m Model) selectionTo(offset int) preview.SelectionState {
	if m.anchor < 0 || m.anchor == offset {
		return preview.CursorOnly(offset)
	}
	from, to := m.anchor, offset
	if from > to {
		from, to = to, from
	}
	return preview.SelectionState{Cursor: offset, Ranges: []preview.Range{{From: from, To: to}}}
}

// applySelection pushes a new selection to the controller and the view. The
// controller decides whether to rebuild now or after the drag settles; the
// view always shows the selection immediately.
func (m Model) applySelection(sel preview.SelectionState) Model {
	m.sel = sel
	if m.ctrl != nil {
		m.ctrl.SetSelection(sel)
		m.view = m.view.SetDecorations(m.ctrl.Decorations())
	}
	m.view = m.view.SetSelection(sel)
	return m
}

// syncViewport pushes the current visible ranges to the controller after a
// scroll or resize.
func (m Model) syncViewport() Model {
	if m.ctrl != nil {
		m.ctrl.SetViewport(m.view.VisibleRanges())
		m.view = m.view.SetDecorations(m.ctrl.Decorations())
	}
	return m
}

// reparse rebuilds the math tree after a text change.
func (m Model) reparse() Model {
	if m.ctrl != nil {
		m.ctrl.SetTree(mathtree.Parse(m.doc.Text()))
		m.view = m.view.SetDecorations(m.ctrl.Decorations())
	}
	return m
}

// insert splices text at the cursor, replacing any selection.
func (m Model) insert(text string) Model {
	from, to := m.sel.Cursor, m.sel.Cursor
	if len(m.sel.Ranges) > 0 {
		from, to = m.sel.Ranges[0].From, m.sel.Ranges[0].To
	}

	full := m.doc.Text()
	m.doc.SetText(full[:from] + text + full[to:])
	m.modified = true
	m.anchor = -1
	m.goalCol = -1

	m = m.reparse()
	m = m.applySelection(preview.CursorOnly(from + len(text)))
	m.view = m.view.EnsureCursorVisible()
	return m.syncViewport()
}

func (m Model) deleteBackward() Model {
	if len(m.sel.Ranges) > 0 {
		return m.insert("")
	}
	if m.sel.Cursor == 0 {
		return m
	}
	from := m.prevOffset(m.sel.Cursor)
	full := m.doc.Text()
	m.doc.SetText(full[:from] + full[m.sel.Cursor:])
	m.modified = true
	m.goalCol = -1

	m = m.reparse()
	m = m.applySelection(preview.CursorOnly(from))
	m.view = m.view.EnsureCursorVisible()
	return m.syncViewport()
}

func (m Model) deleteForward() Model {
	if len(m.sel.Ranges) > 0 {
		return m.insert("")
	}
	if m.sel.Cursor >= m.doc.Len() {
		return m
	}
	to := m.nextOffset(m.sel.Cursor)
	full := m.doc.Text()
	m.doc.SetText(full[:m.sel.Cursor] + full[to:])
	m.modified = true

	m = m.reparse()
	m = m.applySelection(preview.CursorOnly(m.sel.Cursor))
	return m.syncViewport()
}
