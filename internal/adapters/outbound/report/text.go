package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/abdidvp/reviewkit/internal/domain"
)

var severityColors = map[domain.Severity]lipgloss.Color{
	domain.SeverityCritical: lipgloss.Color("#EF4444"), // red
	domain.SeverityHigh:     lipgloss.Color("#FB923C"), // orange
	domain.SeverityMedium:   lipgloss.Color("#F59E0B"), // amber-yellow
	domain.SeverityLow:      lipgloss.Color("#8B949E"), // soft blue-gray
	domain.SeverityInfo:     lipgloss.Color("#6B7280"), // muted gray
}

// TextRenderer writes the plain-text report. Styling is bound to the output
// writer, so files and pipes receive unstyled text.
type TextRenderer struct{}

func (TextRenderer) Render(w io.Writer, r *domain.Report) error {
	re := lipgloss.NewRenderer(w)
	titleStyle := re.NewStyle().Bold(true)
	dimStyle := re.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	passStyle := re.NewStyle().Foreground(lipgloss.Color("#22C55E"))

	rule := strings.Repeat("=", 80)
	thin := strings.Repeat("-", 40)

	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString(titleStyle.Render(strings.ToUpper(title(r))) + "\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Generated: %s\n", r.GeneratedAt.Format(timeLayout))
	fmt.Fprintf(&b, "Files checked: %d\n", r.Stats.FilesChecked)
	fmt.Fprintf(&b, "Lines of code: %d\n", r.Stats.LineCount)
	if r.Tool == domain.ToolStyle {
		fmt.Fprintf(&b, "Files fixed: %d\n", r.Stats.FilesFixed)
	}
	b.WriteString("\n")

	b.WriteString(titleStyle.Render("SUMMARY") + "\n")
	b.WriteString(thin + "\n")
	fmt.Fprintf(&b, "Total issues: %d\n", len(r.Issues))
	if r.Tool == domain.ToolStyle {
		fmt.Fprintf(&b, "Issues fixed: %d\n", r.FixedCount())
	}
	counts := r.Counts()
	for _, s := range domain.Severities {
		if counts[s] > 0 {
			sevStyle := re.NewStyle().Foreground(severityColors[s])
			fmt.Fprintf(&b, "  %s: %d\n", sevStyle.Render(strings.ToUpper(s.String())), counts[s])
		}
	}

	for _, g := range r.Groups() {
		sevStyle := re.NewStyle().Bold(true).Foreground(severityColors[g.Severity])
		b.WriteString("\n" + sevStyle.Render(strings.ToUpper(g.Severity.String())+" ISSUES") + "\n")
		b.WriteString(thin + "\n")
		for n, i := range g.Issues {
			fmt.Fprintf(&b, "\n%d. %s\n", n+1, i.Message)
			fmt.Fprintf(&b, "   File: %s\n", dimStyle.Render(fmt.Sprintf("%s:%d", i.File, i.Line)))
			fmt.Fprintf(&b, "   Category: %s\n", i.Category)
			fmt.Fprintf(&b, "   Rule: %s\n", i.Rule)
			if snippet := strings.TrimSpace(i.CodeSnippet); snippet != "" {
				fmt.Fprintf(&b, "   Code: %s\n", snippet)
			}
			if i.Suggestion != "" {
				fmt.Fprintf(&b, "   Suggestion: %s\n", i.Suggestion)
			}
			fmt.Fprintf(&b, "   Recommendation: %s\n", i.Recommendation)
			if r.Tool == domain.ToolStyle {
				status := fixStatus(i)
				if i.Fixed {
					status = passStyle.Render(status)
				}
				fmt.Fprintf(&b, "   Status: %s\n", status)
			}
		}
	}
	if len(r.Issues) == 0 {
		b.WriteString("\n" + passStyle.Render("No issues found.") + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}
