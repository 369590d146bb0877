// Package mode defines the mode controller interface and shared services.
package mode

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/shg8/silverbullet/internal/config"
	"github.com/shg8/silverbullet/internal/preview"
	"github.com/shg8/silverbullet/internal/pubsub"
	"github.com/shg8/silverbullet/internal/typeset"
)

// AppMode identifies the current application mode.
type AppMode int

const (
	ModeEditor AppMode = iota
)

// Controller defines the interface all modes must implement.
type Controller interface {
	// Init returns initial commands for the mode.
	Init() tea.Cmd

	// Update handles messages and returns updated model and commands.
	Update(msg tea.Msg) (Controller, tea.Cmd)

	// View renders the mode's UI.
	View() string

	// SetSize handles terminal resize events.
	SetSize(width, height int) Controller
}

// Services contains shared dependencies injected into mode controllers.
type Services struct {
	Config     *config.Config
	ConfigPath string
	FilePath   string
	Typesetter typeset.Typesetter
	Intents    *pubsub.Broker[preview.EditIntent]
}
