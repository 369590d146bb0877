package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/require"

	"github.com/shg8/silverbullet/internal/config"
)

func TestApp_ProgramLifecycle(t *testing.T) {
	cfg := config.Defaults()
	cfg.AutoReload = false

	// Digits survive typesetting as plain ASCII, unlike letters which map
	// to the math alphabet code points.
	path := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("hello $1+2$ world"), 0o644))

	m := NewWithConfig(cfg, path, "", "hello $1+2$ world", false)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	// The title bar and the typeset widget should both reach the screen.
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("notes.md")) &&
			bytes.Contains(bts, []byte("1+2")) &&
			!bytes.Contains(bts, []byte("$1+2$"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))
}

func TestApp_TogglePreviewShowsRawSource(t *testing.T) {
	cfg := config.Defaults()
	cfg.AutoReload = false

	path := filepath.Join(t.TempDir(), "notes.md")
	m := NewWithConfig(cfg, path, "", "see $a_1$ here", false)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlP})
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("$a_1$"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))
}
