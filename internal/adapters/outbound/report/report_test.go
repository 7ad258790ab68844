package report_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/abdidvp/reviewkit/internal/adapters/outbound/report"
	"github.com/abdidvp/reviewkit/internal/domain"
)

var generated = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func reviewReport() *domain.Report {
	return &domain.Report{
		Tool:        domain.ToolReview,
		GeneratedAt: generated,
		Stats:       domain.RunStatistics{FilesChecked: 2, LineCount: 120},
		Issues: []domain.Issue{
			{
				Severity: domain.SeverityMedium, Category: domain.CategoryQuality, Rule: "todo-comment",
				File: "app.py", Line: 3, Message: "TODO marker", Recommendation: "Resolve it",
				CodeSnippet: "    # TODO: later",
			},
			{
				Severity: domain.SeverityCritical, Category: domain.CategorySecurity, Rule: "hardcoded-password",
				File: "app.py", Line: 1, Column: 1, Message: "Hardcoded password detected",
				Recommendation: "Use environment variables", CodeSnippet: `password = "hunter2"`,
			},
		},
	}
}

func styleReport() *domain.Report {
	return &domain.Report{
		Tool:        domain.ToolStyle,
		GeneratedAt: generated,
		Stats:       domain.RunStatistics{FilesChecked: 1, FilesFixed: 1, LineCount: 10},
		Issues: []domain.Issue{
			{
				Severity: domain.SeverityLow, Category: domain.CategoryStyle, Rule: "trailing-whitespace",
				File: "a.js", Line: 2, Message: "Trailing whitespace", Recommendation: "Remove it", Fixed: true,
			},
			{
				Severity: domain.SeverityLow, Category: domain.CategoryStyle, Rule: "naming",
				File: "a.js", Line: 4, Message: "Variable 'my_var' should be camelCase",
				Recommendation: "Rename to myVar", Suggestion: "myVar",
			},
		},
	}
}

func render(t *testing.T, f report.Format, r *domain.Report) string {
	t.Helper()
	renderer, err := report.New(f)
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, renderer.Render(&buf, r))
	return buf.String()
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want report.Format
	}{
		{"", report.FormatText},
		{"text", report.FormatText},
		{"TXT", report.FormatText},
		{"json", report.FormatJSON},
		{"md", report.FormatMarkdown},
		{"markdown", report.FormatMarkdown},
		{" html ", report.FormatHTML},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := report.ParseFormat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := report.ParseFormat("pdf")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "pdf")
}

func TestFormat_FlagValue(t *testing.T) {
	f := report.FormatText
	require.NoError(t, f.Set("md"))
	assert.Equal(t, "markdown", f.String())
	assert.Equal(t, "format", f.Type())

	err := f.Set("xml")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	assert.Equal(t, report.FormatMarkdown, f, "failed Set keeps the previous value")
}

func TestNew_UnknownFormat(t *testing.T) {
	_, err := report.New(report.Format("yaml"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestText_Review(t *testing.T) {
	out := render(t, report.FormatText, reviewReport())

	assert.Contains(t, out, "CODE REVIEW REPORT")
	assert.Contains(t, out, "Generated: 2026-03-14 09:26:53")
	assert.Contains(t, out, "Files checked: 2")
	assert.Contains(t, out, "Lines of code: 120")
	assert.Contains(t, out, "Total issues: 2")
	assert.Contains(t, out, "  CRITICAL: 1")
	assert.Contains(t, out, "  MEDIUM: 1")
	assert.NotContains(t, out, "HIGH:")
	assert.NotContains(t, out, "Files fixed")
	assert.NotContains(t, out, "\x1b[", "buffer output carries no ANSI styling")

	crit := strings.Index(out, "CRITICAL ISSUES")
	med := strings.Index(out, "MEDIUM ISSUES")
	require.NotEqual(t, -1, crit)
	require.NotEqual(t, -1, med)
	assert.Less(t, crit, med, "groups follow severity order")

	assert.Contains(t, out, "1. Hardcoded password detected")
	assert.Contains(t, out, "   File: app.py:1")
	assert.Contains(t, out, "   Rule: hardcoded-password")
	assert.Contains(t, out, "   Code: # TODO: later")
}

func TestText_StyleStatus(t *testing.T) {
	out := render(t, report.FormatText, styleReport())

	assert.Contains(t, out, "CODE STYLE REPORT")
	assert.Contains(t, out, "Files fixed: 1")
	assert.Contains(t, out, "Issues fixed: 1")
	assert.Contains(t, out, "Status: fixed")
	assert.Contains(t, out, "Status: not fixed")
	assert.Contains(t, out, "Suggestion: myVar")
}

func TestText_NoIssues(t *testing.T) {
	r := &domain.Report{Tool: domain.ToolReview, GeneratedAt: generated}
	out := render(t, report.FormatText, r)
	assert.Contains(t, out, "Total issues: 0")
	assert.Contains(t, out, "No issues found.")
}

func TestJSON_Document(t *testing.T) {
	out := render(t, report.FormatJSON, reviewReport())

	var doc struct {
		Metadata map[string]any `json:"metadata"`
		Summary  map[string]int `json:"summary"`
		Issues   []struct {
			Severity string `json:"severity"`
			Category string `json:"category"`
			Rule     string `json:"rule"`
			Line     int    `json:"line"`
			Column   int    `json:"column"`
			Fixed    bool   `json:"fixed"`
		} `json:"issues"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, "review", doc.Metadata["tool"])
	assert.Equal(t, "2026-03-14T09:26:53Z", doc.Metadata["generated"])
	assert.EqualValues(t, 2, doc.Metadata["files_checked"])
	assert.EqualValues(t, 2, doc.Metadata["total_issues"])
	assert.Equal(t, map[string]int{"critical": 1, "high": 0, "medium": 1, "low": 0, "info": 0}, doc.Summary)

	require.Len(t, doc.Issues, 2)
	assert.Equal(t, "critical", doc.Issues[0].Severity)
	assert.Equal(t, "security", doc.Issues[0].Category)
	assert.Equal(t, 1, doc.Issues[0].Column)
	assert.Equal(t, "medium", doc.Issues[1].Severity)
}

func TestJSON_KeyOrderAndDeterminism(t *testing.T) {
	first := render(t, report.FormatJSON, reviewReport())
	second := render(t, report.FormatJSON, reviewReport())
	assert.Equal(t, first, second)

	keys := []string{`"critical"`, `"high"`, `"medium"`, `"low"`, `"info"`}
	summary := first[strings.Index(first, `"summary"`):strings.Index(first, `"issues"`)]
	last := -1
	for _, k := range keys {
		idx := strings.Index(summary, k)
		require.NotEqual(t, -1, idx, k)
		assert.Greater(t, idx, last, "summary keys in severity order")
		last = idx
	}
}

func TestJSON_EmptyIssuesIsArray(t *testing.T) {
	out := render(t, report.FormatJSON, &domain.Report{Tool: domain.ToolStyle, GeneratedAt: generated})
	assert.Contains(t, out, `"issues": []`)
}

func TestMarkdown_Review(t *testing.T) {
	out := render(t, report.FormatMarkdown, reviewReport())

	assert.True(t, strings.HasPrefix(out, "# Code Review Report\n"))
	assert.Contains(t, out, "| Critical | 1 |")
	assert.Contains(t, out, "| High | 0 |")
	assert.Contains(t, out, "## Critical Issues")
	assert.Contains(t, out, "### 1. Hardcoded password detected")
	assert.Contains(t, out, "- **File:** `app.py:1`")
	assert.Contains(t, out, "```\npassword = \"hunter2\"\n```")
	assert.NotContains(t, out, "**Status:**")
}

func TestMarkdown_FenceLongerThanSnippetBackticks(t *testing.T) {
	r := reviewReport()
	r.Issues = r.Issues[:1]
	r.Issues[0].CodeSnippet = "s := ```inner```"

	out := render(t, report.FormatMarkdown, r)
	assert.Contains(t, out, "````\ns := ```inner```\n````")
}

func TestMarkdown_StyleStatus(t *testing.T) {
	out := render(t, report.FormatMarkdown, styleReport())
	assert.Contains(t, out, "# Code Style Report")
	assert.Contains(t, out, "**Issues fixed:** 1")
	assert.Contains(t, out, "- **Status:** fixed")
	assert.Contains(t, out, "- **Suggestion:** `myVar`")
}

func TestHTML_ParsesAndEscapes(t *testing.T) {
	r := reviewReport()
	r.Issues[1].Message = "Found <script>alert(1)</script>"
	r.Issues[1].CodeSnippet = `el.innerHTML = "<b>" + x;`

	out := render(t, report.FormatHTML, r)
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")

	doc, err := html.Parse(strings.NewReader(out))
	require.NoError(t, err)

	var titles, pres []string
	var issueDivs int
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Title:
				titles = append(titles, textOf(n))
			case atom.Pre:
				pres = append(pres, textOf(n))
			case atom.Div:
				for _, a := range n.Attr {
					if a.Key == "class" && strings.HasPrefix(a.Val, "issue ") {
						issueDivs++
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	assert.Equal(t, []string{"Code Review Report"}, titles)
	assert.Equal(t, 2, issueDivs)
	assert.Contains(t, pres, `el.innerHTML = "<b>" + x;`)
	assert.Contains(t, out, "1. Found &lt;script&gt;alert(1)&lt;/script&gt;")
}

func TestHTML_StyleMarksFixed(t *testing.T) {
	out := render(t, report.FormatHTML, styleReport())
	assert.Contains(t, out, `<span class="fixed">fixed</span>`)
	assert.Contains(t, out, "<span>not fixed</span>")
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
