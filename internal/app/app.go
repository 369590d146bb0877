// Package app contains the root application model.
package app

import (
	"context"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/shg8/silverbullet/internal/config"
	"github.com/shg8/silverbullet/internal/keys"
	"github.com/shg8/silverbullet/internal/log"
	"github.com/shg8/silverbullet/internal/mode"
	"github.com/shg8/silverbullet/internal/mode/editor"
	"github.com/shg8/silverbullet/internal/preview"
	"github.com/shg8/silverbullet/internal/pubsub"
	"github.com/shg8/silverbullet/internal/typeset"
	"github.com/shg8/silverbullet/internal/ui/logoverlay"
	"github.com/shg8/silverbullet/internal/watcher"
)

// Model is the root application state.
type Model struct {
	currentMode mode.AppMode
	editor      editor.Model

	// Shared services (passed to mode controllers)
	services mode.Services

	// Global state
	width  int
	height int

	// Debug log overlay (Ctrl+X toggle when debug mode is on)
	debugMode    bool
	logOverlay   logoverlay.Model
	logListenCmd tea.Cmd

	// Edit intents published by preview widgets, routed back to the editor
	intents        *pubsub.Broker[preview.EditIntent]
	intentCtx      context.Context
	intentCancel   context.CancelFunc
	intentListener *pubsub.ContinuousListener[preview.EditIntent]

	// File watcher for auto-reload (pubsub-based)
	watcherHandle   *watcher.Watcher
	watcherCtx      context.Context
	watcherCancel   context.CancelFunc
	watcherListener *pubsub.ContinuousListener[watcher.WatcherEvent]
}

// NewWithConfig creates a new application model with the provided
// configuration. filePath is the markdown file being edited, text its
// current content, and configPath the config file for persisting toggles.
// debugMode enables the log overlay (Ctrl+X toggle).
func NewWithConfig(cfg config.Config, filePath, configPath, text string, debugMode bool) Model {
	// Initialize file watcher if auto-reload is enabled
	var (
		watcherHandle   *watcher.Watcher
		watcherCtx      context.Context
		watcherCancel   context.CancelFunc
		watcherListener *pubsub.ContinuousListener[watcher.WatcherEvent]
	)

	if cfg.AutoReload && filePath != "" {
		w, err := watcher.New(watcher.DefaultConfig(filePath))
		if err == nil {
			if err := w.Start(); err == nil {
				watcherHandle = w
				watcherCtx, watcherCancel = context.WithCancel(context.Background())
				watcherListener = pubsub.NewContinuousListener(watcherCtx, w.Broker())
			} else {
				// Cleanup on start failure
				_ = w.Stop()
			}
		}
		// Silently ignore watcher init errors - the editor works fine
		// without auto-reload
	}

	intents := pubsub.NewBroker[preview.EditIntent]()
	intentCtx, intentCancel := context.WithCancel(context.Background())

	// Create shared services
	services := mode.Services{
		Config:     &cfg,
		ConfigPath: configPath,
		FilePath:   filePath,
		Typesetter: typeset.NewTreeBlood(cfg.Preview.Macros),
		Intents:    intents,
	}

	// Create log overlay and start listening if debug mode is enabled
	overlay := logoverlay.New()
	var logListenCmd tea.Cmd
	if debugMode {
		logListenCmd = overlay.StartListening()
	}

	return Model{
		currentMode:     mode.ModeEditor,
		editor:          editor.New(services, text),
		services:        services,
		debugMode:       debugMode,
		logOverlay:      overlay,
		logListenCmd:    logListenCmd,
		intents:         intents,
		intentCtx:       intentCtx,
		intentCancel:    intentCancel,
		intentListener:  pubsub.NewContinuousListener(intentCtx, intents),
		watcherHandle:   watcherHandle,
		watcherCtx:      watcherCtx,
		watcherCancel:   watcherCancel,
		watcherListener: watcherListener,
	}
}

// Notifier exposes the editor's rebuild notifier so the program can push
// redraw messages after asynchronous decoration rebuilds.
func (m Model) Notifier() *editor.Notifier {
	return m.editor.Notifier()
}

// Init implements tea.Model. Starts the intent listener and the watcher
// listener when auto-reload is enabled.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.editor.Init(),
		m.intentListener.Listen(),
	}

	if m.watcherListener != nil {
		cmds = append(cmds, m.watcherListener.Listen())
	}
	if m.logListenCmd != nil {
		cmds = append(cmds, m.logListenCmd)
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor = m.editor.SetSize(msg.Width, msg.Height).(editor.Model)
		m.logOverlay.SetSize(msg.Width, msg.Height)
		return m, nil

	case log.LogEvent:
		var cmd tea.Cmd
		m.logOverlay, cmd = m.logOverlay.Update(msg)
		return m, cmd

	case logoverlay.CloseMsg:
		m.logOverlay.Hide()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Default.Quit) {
			_ = m.Close()
			return m, tea.Quit
		}
		if m.debugMode && key.Matches(msg, keys.Default.ToggleLogs) {
			m.logOverlay.Toggle()
			return m, nil
		}
		// A visible log overlay takes precedence for key input
		if m.logOverlay.Visible() {
			var cmd tea.Cmd
			m.logOverlay, cmd = m.logOverlay.Update(msg)
			return m, cmd
		}

	case tea.MouseMsg:
		if m.logOverlay.Visible() {
			return m, nil
		}

	case pubsub.Event[watcher.WatcherEvent]:
		switch msg.Payload.Type {
		case watcher.FileChanged:
			text, err := os.ReadFile(msg.Payload.Path)
			if err != nil {
				log.Warn(log.CatWatcher, "failed to read changed file", "path", msg.Payload.Path, "error", err)
				return m, m.watcherListener.Listen()
			}
			var cmd tea.Cmd
			m.editor, cmd = m.updateEditor(editor.FileChangedMsg{Text: string(text)})
			return m, tea.Batch(cmd, m.watcherListener.Listen())

		case watcher.WatcherError:
			log.Warn(log.CatWatcher, "watcher error received", "error", msg.Payload.Error)
			return m, m.watcherListener.Listen()
		}

		// Continue listening for unknown event types
		return m, m.watcherListener.Listen()

	case pubsub.Event[preview.EditIntent]:
		var cmd tea.Cmd
		m.editor, cmd = m.updateEditor(msg)
		return m, tea.Batch(cmd, m.intentListener.Listen())
	}

	// Delegate all messages to the active mode controller
	var cmd tea.Cmd
	m.editor, cmd = m.updateEditor(msg)
	return m, cmd
}

func (m Model) updateEditor(msg tea.Msg) (editor.Model, tea.Cmd) {
	next, cmd := m.editor.Update(msg)
	return next.(editor.Model), cmd
}

// View implements tea.Model. The zone scan strips zone markers and records
// widget bounds for mouse hit testing.
func (m Model) View() string {
	view := zone.Scan(m.editor.View())

	if m.debugMode && m.logOverlay.Visible() {
		view = m.logOverlay.Overlay(view)
	}
	return view
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	m.logOverlay.StopListening()
	m.editor.Dispose()

	m.intentCancel()
	m.intents.Close()

	// Cancel watcher subscription context (stops listener)
	if m.watcherCancel != nil {
		m.watcherCancel()
	}

	// Close watcher if we own it
	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			return err
		}
	}

	return nil
}
