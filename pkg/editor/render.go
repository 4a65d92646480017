package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#5599FF"})

	cellStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(16)

	emptyCellStyle = cellStyle.
			Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#555555"})

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"})

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#008000", Dark: "#55FF55"})

	buttonOnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#FFAA00"})

	buttonOffStyle = labelStyle
)

func renderFull(f *Full) string {
	cells := make([]string, EncodersPerPage)
	for i := range cells {
		c := f.Encoder(i)
		if c == nil {
			cells[i] = emptyCellStyle.Render("-\n ")
			continue
		}
		text := c.Text()
		if pos := c.Position(); pos != "" {
			text += " " + labelStyle.Render(pos)
		}
		cells[i] = cellStyle.Render(labelStyle.Render(c.Label()) + "\n" + text)
	}

	header := titleStyle.Render(fmt.Sprintf("%s  page %d/%d", f.title, f.page+1, f.NumPages()))
	rows := []string{header, lipgloss.JoinHorizontal(lipgloss.Top, cells...)}

	if len(f.buttons) > 0 {
		buttons := make([]string, len(f.buttons))
		for i, b := range f.buttons {
			style := buttonOffStyle
			if b.On() {
				style = buttonOnStyle
			}
			buttons[i] = style.Render("[" + b.Label() + "]")
		}
		rows = append(rows, strings.Join(buttons, " "))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderMini(m *Mini) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(m.title))
	sb.WriteByte('\n')

	width := 0
	for _, c := range m.controls {
		width = max(width, lipgloss.Width(c.Label()))
	}

	for i, c := range m.controls {
		marker := "  "
		line := fmt.Sprintf("%-*s %s", width, c.Label(), c.Text())
		if pos := c.Position(); pos != "" {
			line += " (" + pos + ")"
		}
		if i == m.cursor {
			marker = "> "
			line = selectedStyle.Render(line)
		}
		sb.WriteString(marker + line + "\n")
	}
	if len(m.controls) == 0 {
		sb.WriteString(labelStyle.Render("no parameters") + "\n")
	}
	return sb.String()
}
