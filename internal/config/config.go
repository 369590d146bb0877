// Package config provides configuration types, defaults, and persistence for silverbullet.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// PreviewConfig holds live math preview configuration.
type PreviewConfig struct {
	// Enabled toggles math preview entirely. When false, formulas always
	// show as raw source.
	Enabled bool `mapstructure:"enabled"`

	// SettleDelayMS is the delay in milliseconds between the end of a
	// pointer drag and the decoration rebuild. Lets the selection settle
	// before recomputing.
	SettleDelayMS int `mapstructure:"settle_delay_ms"`

	// ErrorColor overrides the theme's widget.error color for formulas
	// that failed to typeset, e.g. "#CC0000". Empty uses the theme color.
	ErrorColor string `mapstructure:"error_color"`

	// CacheTTLMinutes is how long rendered widgets stay cached, keyed by
	// formula text. 0 uses the default.
	CacheTTLMinutes int `mapstructure:"cache_ttl_minutes"`

	// Macros are TeX macro definitions made available to every formula.
	Macros map[string]string `mapstructure:"macros"`
}

// SettleDelay returns the post-drag settle delay as a duration.
func (p PreviewConfig) SettleDelay() time.Duration {
	if p.SettleDelayMS <= 0 {
		return 75 * time.Millisecond
	}
	return time.Duration(p.SettleDelayMS) * time.Millisecond
}

// CacheTTL returns the widget cache TTL as a duration.
func (p PreviewConfig) CacheTTL() time.Duration {
	if p.CacheTTLMinutes <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(p.CacheTTLMinutes) * time.Minute
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar bool   `mapstructure:"show_status_bar"`
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default) or "light"
}

// ThemeConfig holds theme customization options. Preset picks a named color
// scheme; Colors overrides individual color tokens on top of it.
type ThemeConfig struct {
	Preset string            `mapstructure:"preset"`
	Colors map[string]string `mapstructure:"colors"`
}

// Config holds all configuration options for silverbullet.
type Config struct {
	AutoReload bool          `mapstructure:"auto_reload"` // Reload the document when the file changes on disk
	Preview    PreviewConfig `mapstructure:"preview"`
	UI         UIConfig      `mapstructure:"ui"`
	Theme      ThemeConfig   `mapstructure:"theme"`
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		AutoReload: true,
		Preview: PreviewConfig{
			Enabled:         true,
			SettleDelayMS:   75,
			CacheTTLMinutes: 10,
		},
		UI: UIConfig{
			ShowStatusBar: true,
			MarkdownStyle: "dark",
		},
		Theme: ThemeConfig{
			Preset: "default",
		},
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Silverbullet Configuration

# Reload the open document when the file changes on disk
auto_reload: true

# Live math preview
preview:
  enabled: true          # Replace $...$ and $$...$$ with typeset output
  settle_delay_ms: 75    # Delay between drag end and decoration rebuild
  cache_ttl_minutes: 10  # Rendered widget cache lifetime
  # Override the theme's color for formulas that failed to typeset:
  # error_color: "#CC0000"
  # TeX macros available to every formula:
  # macros:
  #   "\\R": "\\mathbb{R}"

# UI settings
ui:
  show_status_bar: true  # Show status bar at bottom
  # markdown_style: dark # Help rendering style: "dark" (default) or "light"

# Theme configuration
theme:
  preset: default        # Color scheme: "default", "catppuccin", "nord"
  # Individual token overrides:
  # colors:
  #   widget.inline: "#89B4FA"
  #   status.error: "#F38BA8"
`
}

// WriteDefaultConfig writes the commented default config to the given path,
// creating parent directories as needed. Fails if the file already exists.
func WriteDefaultConfig(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o644); err != nil { //nolint:gosec // config file is not sensitive
		return fmt.Errorf("writing default config: %w", err)
	}

	return nil
}
