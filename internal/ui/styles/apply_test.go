package styles

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyTheme_DefaultPreset(t *testing.T) {
	require.NoError(t, ApplyTheme(ThemeConfig{Preset: "default"}))
}

func TestApplyTheme_KnownPresets(t *testing.T) {
	for name := range Presets {
		require.NoError(t, ApplyTheme(ThemeConfig{Preset: name}), "preset %s", name)
	}
}

func TestApplyTheme_UnknownPreset(t *testing.T) {
	err := ApplyTheme(ThemeConfig{Preset: "solarized-disco"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown theme preset")
}

func TestApplyTheme_ColorOverride(t *testing.T) {
	err := ApplyTheme(ThemeConfig{
		Preset: "default",
		Colors: map[string]string{"widget.inline": "#FF0000"},
	})
	require.NoError(t, err)
	require.Equal(t, "#FF0000", WidgetInlineColor.Dark)

	t.Cleanup(func() { _ = ApplyTheme(ThemeConfig{Preset: "default"}) })
}

func TestApplyTheme_UnknownToken(t *testing.T) {
	err := ApplyTheme(ThemeConfig{
		Colors: map[string]string{"widget.sparkle": "#FF0000"},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown color token")
}

func TestApplyTheme_InvalidHex(t *testing.T) {
	for _, bad := range []string{"red", "#12", "#GGHHII", "FF0000"} {
		err := ApplyTheme(ThemeConfig{
			Colors: map[string]string{"widget.inline": bad},
		})
		require.Error(t, err, "expected %q to be rejected", bad)
	}
}

func TestSetWidgetErrorColor_OverridesTheme(t *testing.T) {
	t.Cleanup(func() { _ = ApplyTheme(ThemeConfig{Preset: "default"}) })

	require.NoError(t, ApplyTheme(ThemeConfig{Preset: "catppuccin"}))
	require.Equal(t, "#F38BA8", WidgetErrorColor.Dark)

	// The config override wins over the preset's widget.error token.
	require.NoError(t, SetWidgetErrorColor("#CC0000"))
	require.Equal(t, "#CC0000", WidgetErrorColor.Dark)
	require.Equal(t, WidgetErrorColor, WidgetErrorStyle.GetForeground())
}

func TestSetWidgetErrorColor_InvalidHex(t *testing.T) {
	before := WidgetErrorColor
	for _, bad := range []string{"red", "#12", "#GGHHII", "CC0000"} {
		require.Error(t, SetWidgetErrorColor(bad), "expected %q to be rejected", bad)
	}
	require.Equal(t, before, WidgetErrorColor)
}

func TestPresets_CoverAllTokens(t *testing.T) {
	for name, preset := range Presets {
		for token := range allTokens {
			require.Contains(t, preset.Colors, token, "preset %s missing %s", name, token)
		}
	}
}

func TestTruncateString(t *testing.T) {
	require.Equal(t, "hello", TruncateString("hello", 10))
	require.Equal(t, "hel...", TruncateString("hello world", 6))
	require.Equal(t, "..", TruncateString("hello", 2))
	require.Equal(t, "", TruncateString("hello", 0))
}
