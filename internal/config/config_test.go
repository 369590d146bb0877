package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	require.True(t, cfg.AutoReload)
	require.True(t, cfg.Preview.Enabled)
	require.Equal(t, 75, cfg.Preview.SettleDelayMS)
	require.Empty(t, cfg.Preview.ErrorColor) // empty inherits the theme's widget.error
	require.True(t, cfg.UI.ShowStatusBar)
	require.Equal(t, "dark", cfg.UI.MarkdownStyle)
}

func TestPreviewConfig_SettleDelay(t *testing.T) {
	p := PreviewConfig{SettleDelayMS: 200}
	require.Equal(t, 200*time.Millisecond, p.SettleDelay())
}

func TestPreviewConfig_SettleDelay_DefaultWhenZero(t *testing.T) {
	p := PreviewConfig{}
	require.Equal(t, 75*time.Millisecond, p.SettleDelay())
}

func TestPreviewConfig_SettleDelay_DefaultWhenNegative(t *testing.T) {
	p := PreviewConfig{SettleDelayMS: -10}
	require.Equal(t, 75*time.Millisecond, p.SettleDelay())
}

func TestPreviewConfig_CacheTTL(t *testing.T) {
	p := PreviewConfig{CacheTTLMinutes: 5}
	require.Equal(t, 5*time.Minute, p.CacheTTL())

	require.Equal(t, 10*time.Minute, PreviewConfig{}.CacheTTL())
}

func TestWriteDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	err := WriteDefaultConfig(path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "preview:")
	require.Contains(t, string(data), "settle_delay_ms: 75")
}

func TestWriteDefaultConfig_FailsIfExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("auto_reload: false\n"), 0o644))

	err := WriteDefaultConfig(path)
	require.Error(t, err)

	// Existing content untouched
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "auto_reload: false\n", string(data))
}
