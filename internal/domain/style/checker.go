package style

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abdidvp/reviewkit/internal/domain"
	"github.com/abdidvp/reviewkit/internal/domain/rules"
)

// Checker runs the style checks of each file's language rule set.
type Checker struct {
	cfg domain.Config
}

// NewChecker returns a checker bound to a resolved configuration.
func NewChecker(cfg domain.Config) *Checker {
	return &Checker{cfg: cfg}
}

// Check returns the style issues of a file in line order, followed by naming
// issues and the end-of-file issue.
func (c *Checker) Check(file domain.FileRecord) []domain.Issue {
	rs := rules.ForPath(file.Path)
	p := ProfileFor(rs, c.cfg)

	var issues []domain.Issue
	for i, line := range file.Lines {
		issues = append(issues, checkLine(file.Path, i+1, line, p)...)
	}
	issues = append(issues, CheckNaming(file, rs)...)
	if n, ok := finalNewlineProblem(file.Content); ok {
		issues = append(issues, finalNewlineIssue(file, n))
	}
	return issues
}

// CheckAndFix checks the file, fixes it, and marks the issues whose line and
// rule match an applied fix.
func (c *Checker) CheckAndFix(file domain.FileRecord) ([]domain.Issue, FixResult) {
	issues := c.Check(file)
	res := Fix(file.Content, ProfileFor(rules.ForPath(file.Path), c.cfg))
	for i := range issues {
		if res.Has(issues[i].Line, issues[i].Rule) {
			issues[i].Fixed = true
		}
	}
	return issues, res
}

func styleIssue(path string, line, col int, sev domain.Severity, rule, msg, rec, snippet string) domain.Issue {
	return domain.Issue{
		Severity:       sev,
		Category:       domain.CategoryStyle,
		Rule:           rule,
		File:           path,
		Line:           line,
		Column:         col,
		Message:        msg,
		Recommendation: rec,
		CodeSnippet:    snippet,
	}
}

func checkLine(path string, n int, line string, p Profile) []domain.Issue {
	var issues []domain.Issue

	lead := leadingSpace(line)
	switch {
	case p.TabIndentation && strings.Contains(lead, "\t"):
		issues = append(issues, styleIssue(path, n, 1, domain.SeverityMedium, ruleTabs,
			"Tabs used for indentation", fmt.Sprintf("Use %d spaces", p.IndentSize), line))
	case p.IndentWidth && p.IndentSize > 0 && lead != "" && len(lead) < len(line) && len(lead)%p.IndentSize != 0:
		issues = append(issues, styleIssue(path, n, 1, domain.SeverityLow, ruleIndentWidth,
			fmt.Sprintf("Indentation not multiple of %d (found %d)", p.IndentSize, len(lead)),
			fmt.Sprintf("Use %d spaces", len(lead)/p.IndentSize*p.IndentSize), line))
	}

	if p.LineLength && utf8.RuneCountInString(line) > p.MaxLineLength {
		issues = append(issues, styleIssue(path, n, p.MaxLineLength+1, domain.SeverityLow, ruleLineLength,
			fmt.Sprintf("Line too long (%d > %d)", utf8.RuneCountInString(line), p.MaxLineLength),
			"Break into multiple lines", line))
	}

	if trimmed := strings.TrimRight(line, horizontalSpace); trimmed != line {
		issues = append(issues, styleIssue(path, n, len(trimmed)+1, domain.SeverityLow, ruleTrailing,
			"Trailing whitespace", "Remove trailing whitespace", line))
	}

	if p.Semicolons && needsSemicolon(line) {
		issues = append(issues, styleIssue(path, n, len(line), domain.SeverityMedium, ruleSemicolon,
			"Missing semicolon", "Add semicolon", line))
	}
	return issues
}

func finalNewlineIssue(file domain.FileRecord, n int) domain.Issue {
	msg, rec := "Extra blank lines at end of file", "Remove trailing blank lines"
	if !strings.HasSuffix(file.Content, "\n") {
		msg, rec = "Missing final newline", "End the file with a single newline"
	}
	return styleIssue(file.Path, n, 0, domain.SeverityLow, ruleFinalNewline, msg, rec, rules.Snippet(file.Lines, n))
}
