package styles

// Preset is a named color scheme covering every token.
type Preset struct {
	Name   string
	Colors map[ColorToken]string
}

// DefaultPreset is the built-in scheme applied before any overrides.
var DefaultPreset = Preset{
	Name: "default",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#CCCCCC",
		TokenTextMuted:     "#696969",
		TokenBorderDefault: "#696969",
		TokenBorderFocus:   "#3498DB",
		TokenStatusError:   "#FF8787",
		TokenWidgetInline:  "#89B4FA",
		TokenWidgetDisplay: "#89B4FA",
		TokenWidgetError:   "#FF8787",
		TokenSelectionBg:   "#44475A",
		TokenStatusBarBg:   "#2D3436",
		TokenStatusBarTxt:  "#CCCCCC",
	},
}

// Presets maps preset names to their color schemes.
var Presets = map[string]Preset{
	"default": DefaultPreset,
	"catppuccin": {
		Name: "catppuccin",
		Colors: map[ColorToken]string{
			TokenTextPrimary:   "#CDD6F4",
			TokenTextMuted:     "#6C7086",
			TokenBorderDefault: "#6C7086",
			TokenBorderFocus:   "#89B4FA",
			TokenStatusError:   "#F38BA8",
			TokenWidgetInline:  "#89B4FA",
			TokenWidgetDisplay: "#CBA6F7",
			TokenWidgetError:   "#F38BA8",
			TokenSelectionBg:   "#45475A",
			TokenStatusBarBg:   "#313244",
			TokenStatusBarTxt:  "#CDD6F4",
		},
	},
	"nord": {
		Name: "nord",
		Colors: map[ColorToken]string{
			TokenTextPrimary:   "#D8DEE9",
			TokenTextMuted:     "#4C566A",
			TokenBorderDefault: "#4C566A",
			TokenBorderFocus:   "#88C0D0",
			TokenStatusError:   "#BF616A",
			TokenWidgetInline:  "#88C0D0",
			TokenWidgetDisplay: "#81A1C1",
			TokenWidgetError:   "#BF616A",
			TokenSelectionBg:   "#434C5E",
			TokenStatusBarBg:   "#3B4252",
			TokenStatusBarTxt:  "#D8DEE9",
		},
	},
}
