package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shg8/silverbullet/internal/app"
	"github.com/shg8/silverbullet/internal/config"
	"github.com/shg8/silverbullet/internal/log"
	"github.com/shg8/silverbullet/internal/mode/editor"
	"github.com/shg8/silverbullet/internal/ui/styles"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:     "silverbullet [file]",
	Short:   "A markdown editor with live math preview",
	Long:    `A terminal markdown editor that typesets $...$ and $$...$$ TeX formulas in place. Formulas render as widgets until the cursor touches them, then revert to editable source.`,
	Version: version,
	Args:    cobra.ExactArgs(1),
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/silverbullet/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"write a debug log to .silverbullet/debug.log")
	rootCmd.Flags().Bool("no-preview", false,
		"start with math preview disabled")
	rootCmd.Flags().Bool("no-auto-reload", false,
		"disable reloading the document when the file changes on disk")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("auto_reload", defaults.AutoReload)
	viper.SetDefault("preview.enabled", defaults.Preview.Enabled)
	viper.SetDefault("preview.settle_delay_ms", defaults.Preview.SettleDelayMS)
	viper.SetDefault("preview.error_color", defaults.Preview.ErrorColor)
	viper.SetDefault("preview.cache_ttl_minutes", defaults.Preview.CacheTTLMinutes)
	viper.SetDefault("ui.show_status_bar", defaults.UI.ShowStatusBar)
	viper.SetDefault("ui.markdown_style", defaults.UI.MarkdownStyle)
	viper.SetDefault("theme.preset", defaults.Theme.Preset)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .silverbullet/config.yaml (current directory)
		// 2. ~/.config/silverbullet/config.yaml (user config)
		if _, err := os.Stat(".silverbullet/config.yaml"); err == nil {
			viper.SetConfigFile(".silverbullet/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "silverbullet"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - continue with defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "warning: reading config: %v\n", err)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

func runApp(cmd *cobra.Command, args []string) error {
	debug := debugFlag || os.Getenv("SILVERBULLET_DEBUG") != ""
	if debug {
		logPath := filepath.Join(".silverbullet", "debug.log")
		_ = os.MkdirAll(filepath.Dir(logPath), 0o755)
		if cleanup, err := log.Init(logPath); err == nil {
			defer cleanup()
		}
	}

	if noPreview, _ := cmd.Flags().GetBool("no-preview"); noPreview {
		cfg.Preview.Enabled = false
	}
	if noAutoReload, _ := cmd.Flags().GetBool("no-auto-reload"); noAutoReload {
		cfg.AutoReload = false
	}

	if err := styles.ApplyTheme(styles.ThemeConfig{
		Preset: cfg.Theme.Preset,
		Colors: cfg.Theme.Colors,
	}); err != nil {
		return fmt.Errorf("invalid theme configuration: %w", err)
	}
	if cfg.Preview.ErrorColor != "" {
		if err := styles.SetWidgetErrorColor(cfg.Preview.ErrorColor); err != nil {
			return fmt.Errorf("invalid preview.error_color: %w", err)
		}
	}

	filePath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving file path: %w", err)
	}

	// A missing file opens as an empty document and is created on save.
	text, err := os.ReadFile(filePath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading %s: %w", filePath, err)
	}

	// Store the config file path for persisting the preview toggle
	configFilePath := viper.ConfigFileUsed()

	zone.NewGlobal()

	model := app.NewWithConfig(cfg, filePath, configFilePath, string(text), debug)
	p := tea.NewProgram(
		&model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// Decoration rebuilds finish off the update loop (drag settle, async
	// cache fills); push a message so the view repaints.
	model.Notifier().Set(func() {
		p.Send(editor.PreviewRebuiltMsg{})
	})

	_, err = p.Run()

	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
