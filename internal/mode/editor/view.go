package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/shg8/silverbullet/internal/log"
	"github.com/shg8/silverbullet/internal/ui/markdown"
	"github.com/shg8/silverbullet/internal/ui/styles"
)

const helpText = `## Keys

| Key | Action |
| --- | --- |
| arrows | move cursor |
| shift+arrows | select |
| ctrl+p | toggle math preview |
| ctrl+s | save |
| ctrl+g | toggle this help |
| esc | clear selection |
| ctrl+c | quit |

Click a typeset formula to jump into its source.
`

// View implements mode.Controller.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	if m.showHelp {
		return m.helpView()
	}

	var b strings.Builder
	b.WriteString(m.titleBar())
	b.WriteString("\n")
	b.WriteString(m.view.View())
	if m.services.Config.UI.ShowStatusBar {
		b.WriteString("\n")
		b.WriteString(m.statusBar())
	}
	return b.String()
}

func (m Model) titleBar() string {
	name := m.fileName()
	if m.modified {
		name += " •"
	}
	title := styles.TruncateString(name, m.width-2)
	return styles.StatusBarStyle.Width(m.width).Render(title)
}

func (m Model) statusBar() string {
	line := m.doc.LineAt(m.sel.Cursor)
	col := m.col(m.sel.Cursor)

	left := fmt.Sprintf("%d:%d", line+1, col+1)
	if m.status != "" {
		left += "  " + m.status
	}

	preview := "preview off"
	if m.previewEnabled {
		preview = fmt.Sprintf("preview on · %d widgets", m.widgetCount())
	}
	right := preview + " · ctrl+g help"

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return styles.StatusBarStyle.Width(m.width).
		Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) widgetCount() int {
	if m.ctrl == nil {
		return 0
	}
	return m.ctrl.Decorations().Len()
}

func (m Model) helpView() string {
	width := min(m.width-4, 60)

	r, err := markdown.New(width-4, m.services.Config.UI.MarkdownStyle)
	if err != nil {
		log.Warn(log.CatUI, "help renderer unavailable", "error", err)
		return wordwrap.String(helpText, width)
	}
	body, err := r.Render(helpText)
	if err != nil {
		log.Warn(log.CatUI, "help render failed", "error", err)
		body = wordwrap.String(helpText, width-4)
	}

	panel := styles.RenderWithTitleBorder(strings.TrimRight(body, "\n"), "Help", width, true)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel)
}
