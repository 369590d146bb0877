package styles

import (
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styleRebuilders holds callbacks to rebuild styles in other packages.
// This avoids import cycles (styles can't import the packages that use it,
// but they can register).
var styleRebuilders []func()

// RegisterStyleRebuilder adds a callback that will be called after ApplyTheme
// updates colors. Use this to rebuild styles in packages that depend on styles.
func RegisterStyleRebuilder(fn func()) {
	styleRebuilders = append(styleRebuilders, fn)
}

// ThemeConfig mirrors config.ThemeConfig to avoid circular imports.
type ThemeConfig struct {
	Preset string
	Colors map[string]string
}

// ApplyTheme applies a complete theme configuration.
// Order of application:
// 1. Start with default colors
// 2. Apply preset (if specified)
// 3. Apply individual color overrides
// 4. Rebuild all Style objects
func ApplyTheme(cfg ThemeConfig) error {
	colors := maps.Clone(DefaultPreset.Colors)

	if cfg.Preset != "" && cfg.Preset != "default" {
		preset, ok := Presets[cfg.Preset]
		if !ok {
			return fmt.Errorf("unknown theme preset: %s", cfg.Preset)
		}
		maps.Copy(colors, preset.Colors)
	}

	for key, value := range cfg.Colors {
		token := ColorToken(key)
		if _, ok := allTokens[token]; !ok {
			return fmt.Errorf("unknown color token: %s", key)
		}
		if !isValidHexColor(value) {
			return fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		colors[token] = value
	}

	applyColors(colors)
	rebuildStyles()

	return nil
}

func applyColors(colors map[ColorToken]string) {
	makeColor := func(hex string) lipgloss.AdaptiveColor {
		return lipgloss.AdaptiveColor{Light: hex, Dark: hex}
	}

	if c, ok := colors[TokenTextPrimary]; ok {
		TextPrimaryColor = makeColor(c)
	}
	if c, ok := colors[TokenTextMuted]; ok {
		TextMutedColor = makeColor(c)
	}
	if c, ok := colors[TokenBorderDefault]; ok {
		BorderDefaultColor = makeColor(c)
	}
	if c, ok := colors[TokenBorderFocus]; ok {
		BorderFocusColor = makeColor(c)
	}
	if c, ok := colors[TokenStatusError]; ok {
		StatusErrorColor = makeColor(c)
	}
	if c, ok := colors[TokenWidgetInline]; ok {
		WidgetInlineColor = makeColor(c)
	}
	if c, ok := colors[TokenWidgetDisplay]; ok {
		WidgetDisplayColor = makeColor(c)
	}
	if c, ok := colors[TokenWidgetError]; ok {
		WidgetErrorColor = makeColor(c)
	}
	if c, ok := colors[TokenSelectionBg]; ok {
		SelectionBgColor = makeColor(c)
	}
	if c, ok := colors[TokenStatusBarBg]; ok {
		StatusBarBgColor = makeColor(c)
	}
	if c, ok := colors[TokenStatusBarTxt]; ok {
		StatusBarTextColor = makeColor(c)
	}
}

// SetWidgetErrorColor overrides the widget.error color independently of the
// theme. Used for the preview.error_color config key, which wins over the
// theme's token when set. Call after ApplyTheme.
func SetWidgetErrorColor(hex string) error {
	if !isValidHexColor(hex) {
		return fmt.Errorf("invalid hex color: %s", hex)
	}
	WidgetErrorColor = lipgloss.AdaptiveColor{Light: hex, Dark: hex}
	rebuildStyles()
	return nil
}

// isValidHexColor checks for a #RGB or #RRGGBB hex string.
func isValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 32)
	return err == nil
}
