package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"}
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"}
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#3498DB"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	WidgetInlineColor  = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"}
	WidgetDisplayColor = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#89B4FA"}
	WidgetErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	SelectionBgColor   = lipgloss.AdaptiveColor{Light: "#D0D7E2", Dark: "#44475A"}
	StatusBarBgColor   = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#2D3436"}
	StatusBarTextColor = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"}
)

var (
	// WidgetInlineStyle renders a typeset inline formula.
	WidgetInlineStyle = lipgloss.NewStyle().Foreground(WidgetInlineColor)

	// WidgetDisplayStyle renders the content of a display math block.
	WidgetDisplayStyle = lipgloss.NewStyle().Foreground(WidgetDisplayColor).Bold(true)

	// WidgetErrorStyle marks a formula that failed to typeset; the raw
	// delimited source is shown in this style.
	WidgetErrorStyle = lipgloss.NewStyle().Foreground(WidgetErrorColor).Underline(true)

	// SelectionStyle highlights selected document text.
	SelectionStyle = lipgloss.NewStyle().Background(SelectionBgColor)

	// CursorStyle marks the cursor cell.
	CursorStyle = lipgloss.NewStyle().Reverse(true)

	// TextStyle renders plain document text.
	TextStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor)

	// MutedStyle renders hints and footers.
	MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	// StatusBarStyle renders the bottom status bar.
	StatusBarStyle = lipgloss.NewStyle().
			Background(StatusBarBgColor).
			Foreground(StatusBarTextColor).
			Padding(0, 1)

	// ErrorStyle renders error messages.
	ErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor).Bold(true)
)

// rebuildStyles recreates every Style object from the current color
// variables. Called after ApplyTheme mutates the colors.
func rebuildStyles() {
	WidgetInlineStyle = lipgloss.NewStyle().Foreground(WidgetInlineColor)
	WidgetDisplayStyle = lipgloss.NewStyle().Foreground(WidgetDisplayColor).Bold(true)
	WidgetErrorStyle = lipgloss.NewStyle().Foreground(WidgetErrorColor).Underline(true)
	SelectionStyle = lipgloss.NewStyle().Background(SelectionBgColor)
	TextStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	StatusBarStyle = lipgloss.NewStyle().
		Background(StatusBarBgColor).
		Foreground(StatusBarTextColor).
		Padding(0, 1)
	ErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor).Bold(true)

	for _, fn := range styleRebuilders {
		fn()
	}
}
