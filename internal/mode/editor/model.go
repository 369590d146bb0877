// Package editor is the main mode: a plain-text editor over one markdown
// file with live math preview. Formula spans render as typeset widgets until
// the cursor or a selection touches them.
package editor

import (
	"path/filepath"

	"github.com/shg8/silverbullet/internal/document"
	"github.com/shg8/silverbullet/internal/keys"
	"github.com/shg8/silverbullet/internal/mathtree"
	"github.com/shg8/silverbullet/internal/mode"
	"github.com/shg8/silverbullet/internal/preview"
	"github.com/shg8/silverbullet/internal/ui/docview"

	tea "github.com/charmbracelet/bubbletea"
)

// chromeRows is the number of rows taken by the title and status bars.
const chromeRows = 2

// Model is the editor mode state.
type Model struct {
	services mode.Services
	keymap   keys.KeyMap

	doc  *document.Document
	ctrl *preview.Controller
	view docview.Model
	sel  preview.SelectionState

	// anchor is the fixed end of a keyboard or mouse selection.
	anchor int
	// goalCol keeps the cursor column stable across vertical movement.
	goalCol int
	// pressedWidget is the zone-resolved decoration index under the last
	// mouse press, or -1.
	pressedWidget int

	notifier *Notifier

	width  int
	height int

	previewEnabled bool
	modified       bool
	showHelp       bool
	status         string
}

// New creates the editor mode over the given file content.
func New(services mode.Services, text string) Model {
	doc := document.NewWithID(services.FilePath, text)

	m := Model{
		services:       services,
		keymap:         keys.Default,
		doc:            doc,
		view:           docview.New(doc),
		sel:            preview.CursorOnly(0),
		anchor:         -1,
		pressedWidget:  -1,
		notifier:       &Notifier{},
		previewEnabled: services.Config.Preview.Enabled,
	}

	if m.previewEnabled {
		m.ctrl = m.newController(mathtree.Parse(text))
		m.view = m.view.SetDecorations(m.ctrl.Decorations())
	}

	return m
}

func (m *Model) newController(tree *mathtree.Tree) *preview.Controller {
	return preview.NewController(preview.Options{
		Typesetter:  m.services.Typesetter,
		Document:    m.doc,
		Tree:        tree,
		Visible:     m.view.VisibleRanges(),
		Selection:   m.sel,
		Intents:     m.services.Intents,
		SettleDelay: m.services.Config.Preview.SettleDelay(),
		CacheTTL:    m.services.Config.Preview.CacheTTL(),
		OnRebuild:   m.notifier.call,
	})
}

// Notifier exposes the rebuild notifier so the program can be wired in after
// construction.
func (m Model) Notifier() *Notifier {
	return m.notifier
}

// Controller exposes the preview controller, nil when preview is disabled.
func (m Model) Controller() *preview.Controller {
	return m.ctrl
}

// Dispose releases the preview controller's listeners and timers.
func (m Model) Dispose() {
	if m.ctrl != nil {
		m.ctrl.Dispose()
	}
}

// Init implements mode.Controller.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetSize implements mode.Controller.
func (m Model) SetSize(width, height int) mode.Controller {
	m.width = width
	m.height = height
	m.view = m.view.SetSize(width, max(height-chromeRows, 0))
	if m.ctrl != nil {
		m.ctrl.SetViewport(m.view.VisibleRanges())
		m.view = m.view.SetDecorations(m.ctrl.Decorations())
	}
	return m
}

// fileName returns the base name of the open file for the title bar.
func (m Model) fileName() string {
	return filepath.Base(m.services.FilePath)
}

var _ mode.Controller = Model{}
