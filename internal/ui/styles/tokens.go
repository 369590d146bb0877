// Package styles contains Lip Gloss style definitions.
package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens organized by category.
// These are the keys users can override in their config.
const (
	// Text hierarchy
	TokenTextPrimary ColorToken = "text.primary"
	TokenTextMuted   ColorToken = "text.muted"

	// Borders
	TokenBorderDefault ColorToken = "border.default"
	TokenBorderFocus   ColorToken = "border.focus"

	// Status indicators
	TokenStatusError ColorToken = "status.error"

	// Math widgets
	TokenWidgetInline  ColorToken = "widget.inline"
	TokenWidgetDisplay ColorToken = "widget.display"
	TokenWidgetError   ColorToken = "widget.error"

	// Editor chrome
	TokenSelectionBg  ColorToken = "selection.background"
	TokenStatusBarBg  ColorToken = "statusbar.background"
	TokenStatusBarTxt ColorToken = "statusbar.text"
)

// allTokens is the set of valid tokens, used to validate config overrides.
var allTokens = map[ColorToken]struct{}{
	TokenTextPrimary:   {},
	TokenTextMuted:     {},
	TokenBorderDefault: {},
	TokenBorderFocus:   {},
	TokenStatusError:   {},
	TokenWidgetInline:  {},
	TokenWidgetDisplay: {},
	TokenWidgetError:   {},
	TokenSelectionBg:   {},
	TokenStatusBarBg:   {},
	TokenStatusBarTxt:  {},
}
