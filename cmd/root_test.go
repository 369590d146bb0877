package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shg8/silverbullet/internal/config"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestRenderCommand_PrintsMathMLForEachSpan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.md")
	text := "intro $x+y$ and\n$$\n\\int_0^1 x\\,dx\n$$\n"
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))

	out := execute(t, "render", path)

	require.Contains(t, out, "inline")
	require.Contains(t, out, "display")
	require.Contains(t, out, "x+y")
	require.Contains(t, out, "<math")
}

func TestRenderCommand_PrintsSpanOffsets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("broken $x$ here"), 0o644))

	out := execute(t, "render", path)
	require.Contains(t, out, "inline [7,10)")
}

func TestRenderCommand_MissingFileFails(t *testing.T) {
	rootCmd.SetArgs([]string{"render", filepath.Join(t.TempDir(), "missing.md")})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)

	require.Error(t, rootCmd.Execute())
}

func TestConfigInitCommand_WritesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfgFile = path
	t.Cleanup(func() { cfgFile = "" })

	out := execute(t, "config", "init")
	require.Contains(t, out, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "preview:")

	// A second run must not clobber the existing file.
	rootCmd.SetArgs([]string{"config", "init"})
	require.Error(t, rootCmd.Execute())
}

func TestConfigDefaultsRoundTrip(t *testing.T) {
	defaults := config.Defaults()
	require.True(t, defaults.Preview.Enabled)
	require.True(t, defaults.AutoReload)
	require.Equal(t, "default", defaults.Theme.Preset)
}
