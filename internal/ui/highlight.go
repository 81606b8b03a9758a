package ui

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var MatchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e5c07b")).Bold(true).Underline(true)

// HighlightMatch styles every case-insensitive occurrence of query in text
// with MatchStyle and the rest with base.
func HighlightMatch(text, query string, base lipgloss.Style) string {
	if strings.TrimSpace(query) == "" || text == "" {
		return base.Render(text)
	}

	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(query))
	if err != nil {
		return base.Render(text)
	}
	matches := re.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return base.Render(text)
	}

	var b strings.Builder
	last := 0
	for _, loc := range matches {
		if loc[0] > last {
			b.WriteString(base.Render(text[last:loc[0]]))
		}
		b.WriteString(MatchStyle.Render(text[loc[0]:loc[1]]))
		last = loc[1]
	}
	if last < len(text) {
		b.WriteString(base.Render(text[last:]))
	}
	return b.String()
}
