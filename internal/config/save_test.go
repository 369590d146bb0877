package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readPreviewEnabled(t *testing.T, path string) bool {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var parsed struct {
		Preview struct {
			Enabled bool `yaml:"enabled"`
		} `yaml:"preview"`
	}
	require.NoError(t, yaml.Unmarshal(data, &parsed))
	return parsed.Preview.Enabled
}

func TestSavePreviewEnabled_UpdatesExistingKey(t *testing.T) {
	path := writeConfigFile(t, "preview:\n  enabled: true\n  settle_delay_ms: 75\n")

	require.NoError(t, SavePreviewEnabled(path, false))
	require.False(t, readPreviewEnabled(t, path))

	// Other keys survive
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "settle_delay_ms: 75")
}

func TestSavePreviewEnabled_AppendsMissingSection(t *testing.T) {
	path := writeConfigFile(t, "auto_reload: true\n")

	require.NoError(t, SavePreviewEnabled(path, true))
	require.True(t, readPreviewEnabled(t, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "auto_reload: true")
}

func TestSavePreviewEnabled_PreservesComments(t *testing.T) {
	path := writeConfigFile(t, "# my settings\npreview:\n  enabled: true\n")

	require.NoError(t, SavePreviewEnabled(path, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "# my settings")
}

func TestSavePreviewEnabled_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, SavePreviewEnabled(path, true))
	require.True(t, readPreviewEnabled(t, path))
}
