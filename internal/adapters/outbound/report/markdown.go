package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/abdidvp/reviewkit/internal/domain"
)

// MarkdownRenderer writes a Markdown report with fenced snippets.
type MarkdownRenderer struct{}

func (MarkdownRenderer) Render(w io.Writer, r *domain.Report) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", title(r))
	fmt.Fprintf(&b, "**Generated:** %s  \n", r.GeneratedAt.Format(timeLayout))
	fmt.Fprintf(&b, "**Files checked:** %d  \n", r.Stats.FilesChecked)
	fmt.Fprintf(&b, "**Lines of code:** %d  \n", r.Stats.LineCount)
	if r.Tool == domain.ToolStyle {
		fmt.Fprintf(&b, "**Files fixed:** %d  \n", r.Stats.FilesFixed)
		fmt.Fprintf(&b, "**Issues fixed:** %d  \n", r.FixedCount())
	}
	fmt.Fprintf(&b, "**Total issues:** %d\n\n", len(r.Issues))

	b.WriteString("## Summary\n\n")
	b.WriteString("| Severity | Count |\n")
	b.WriteString("|----------|-------|\n")
	counts := r.Counts()
	for _, s := range domain.Severities {
		fmt.Fprintf(&b, "| %s | %d |\n", capitalize(s.String()), counts[s])
	}

	for _, g := range r.Groups() {
		fmt.Fprintf(&b, "\n## %s Issues\n", capitalize(g.Severity.String()))
		for n, i := range g.Issues {
			fmt.Fprintf(&b, "\n### %d. %s\n\n", n+1, i.Message)
			fmt.Fprintf(&b, "- **File:** `%s:%d`\n", i.File, i.Line)
			fmt.Fprintf(&b, "- **Category:** %s\n", i.Category)
			fmt.Fprintf(&b, "- **Rule:** %s\n", i.Rule)
			if i.Suggestion != "" {
				fmt.Fprintf(&b, "- **Suggestion:** `%s`\n", i.Suggestion)
			}
			fmt.Fprintf(&b, "- **Recommendation:** %s\n", i.Recommendation)
			if r.Tool == domain.ToolStyle {
				fmt.Fprintf(&b, "- **Status:** %s\n", fixStatus(i))
			}
			if i.CodeSnippet != "" {
				fence := fenceFor(i.CodeSnippet)
				fmt.Fprintf(&b, "\n%s\n%s\n%s\n", fence, i.CodeSnippet, fence)
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// fenceFor returns a backtick fence longer than any backtick run in s.
func fenceFor(s string) string {
	longest, run := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	return strings.Repeat("`", max(3, longest+1))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
