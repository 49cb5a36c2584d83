package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CardWidth is the width cards are rendered at by Output.
const CardWidth = 72

// Theme defines the color scheme for the TUI.
type Theme struct {
	Primary lipgloss.Color // Main accent color
	Dim     lipgloss.Color // Dimmed/help text color
}

// DefaultTheme is the default warm amber theme.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#e3b341"),
	Dim:     lipgloss.Color("#6e7681"),
}

// Styles holds all styles derived from a theme.
type Styles struct {
	Title  lipgloss.Style
	Label  lipgloss.Style
	Border lipgloss.Style
	Help   lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Padding(0, 1),
		Label:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Border: lipgloss.NewStyle().Foreground(t.Primary),
		Help:   lipgloss.NewStyle().Foreground(t.Dim),
	}
}

// Section is a labeled block of text inside a card.
type Section struct {
	Label string
	Text  string
}

// Card renders a bordered block with a title, an optional status tag,
// labeled sections and a footer line.
type Card struct {
	Styles   Styles
	Title    string
	Status   string
	Sections []Section
	Footer   string
}

// Render renders the card at the given width. Section text is word-wrapped
// to fit.
func (c Card) Render(width int) string {
	if width < 10 {
		width = 10
	}
	bc := c.Styles.Border
	maxContentWidth := width - 4

	var lines []string
	lines = append(lines, bc.Render("╭"+strings.Repeat("─", width-2)+"╮"))

	// │ title [status]    │
	title := c.Styles.Title.Render(truncateString(c.Title, maxContentWidth-2))
	head := title
	if c.Status != "" {
		head += " " + c.Styles.Help.Render("["+c.Status+"]")
	}
	lines = append(lines, c.row(bc, head, maxContentWidth))

	for _, sec := range c.Sections {
		// ├─Label────────┤
		labelText := c.Styles.Label.Render(sec.Label)
		padding := max(0, width-3-lipgloss.Width(labelText))
		lines = append(lines, bc.Render("├─")+labelText+
			bc.Render(strings.Repeat("─", padding)+"┤"))
		for _, l := range wrap(sec.Text, maxContentWidth) {
			lines = append(lines, c.row(bc, l, maxContentWidth))
		}
	}

	lines = append(lines, bc.Render("╰"+strings.Repeat("─", width-2)+"╯"))
	if c.Footer != "" {
		lines = append(lines, c.Styles.Help.Render(c.Footer))
	}
	return strings.Join(lines, "\n")
}

func (c Card) row(bc lipgloss.Style, text string, maxContentWidth int) string {
	if lipgloss.Width(text) > maxContentWidth {
		text = truncateString(text, maxContentWidth-1) + "…"
	}
	return bc.Render("│") + " " + text +
		strings.Repeat(" ", max(0, maxContentWidth-lipgloss.Width(text))) + " " + bc.Render("│")
}

// wrap splits text into lines no wider than width, breaking on spaces and
// keeping explicit newlines. Words longer than width are truncated by row.
func wrap(text string, width int) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if lipgloss.Width(line)+1+lipgloss.Width(w) > width {
				out = append(out, line)
				line = w
				continue
			}
			line += " " + w
		}
		out = append(out, line)
	}
	return out
}

// truncateString safely truncates a string to the given width,
// handling multi-byte characters correctly.
func truncateString(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	currentWidth := 0
	for i, r := range runes {
		w := lipgloss.Width(string(r))
		if currentWidth+w > width {
			return string(runes[:i])
		}
		currentWidth += w
	}
	return s
}
