// Package rules holds the declarative detection catalog: rule tables per
// category, the matchers behind them, and the per-language rule sets.
package rules

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/abdidvp/reviewkit/internal/domain"
)

// ColumnMode selects how a rule reports columns.
type ColumnMode uint8

const (
	// ColumnOffset reports the 1-indexed column of the match start.
	ColumnOffset ColumnMode = iota
	// ColumnNone reports column 0 for whole-line or whole-block findings.
	ColumnNone
)

// Match is one hit of a matcher, located by byte offset into the content.
type Match struct {
	Offset int
	Groups []string

	// Message and Recommendation override the rule's templates when set.
	Message        string
	Recommendation string
	NoSnippet      bool
}

// Matcher finds matches of a rule in one file.
type Matcher interface {
	FindAll(file domain.FileRecord, cfg domain.Config) []Match
}

// MatchFunc adapts a function to the Matcher interface.
type MatchFunc func(file domain.FileRecord, cfg domain.Config) []Match

func (f MatchFunc) FindAll(file domain.FileRecord, cfg domain.Config) []Match { return f(file, cfg) }

type regexMatcher struct {
	re *regexp.Regexp
}

// Regex compiles pattern into a content-wide matcher. A malformed pattern
// panics: the catalog is compiled at init and a bad pattern is a build defect.
func Regex(pattern string) Matcher {
	return regexMatcher{re: regexp.MustCompile(pattern)}
}

func (m regexMatcher) FindAll(file domain.FileRecord, _ domain.Config) []Match {
	var out []Match
	for _, loc := range m.re.FindAllStringSubmatchIndex(file.Content, -1) {
		groups := make([]string, 0, len(loc)/2)
		for g := 0; g+1 < len(loc); g += 2 {
			if loc[g] < 0 {
				groups = append(groups, "")
				continue
			}
			groups = append(groups, file.Content[loc[g]:loc[g+1]])
		}
		out = append(out, Match{Offset: loc[0], Groups: groups})
	}
	return out
}

// Rule maps matches of a pattern to issues.
type Rule struct {
	ID             string
	Category       domain.Category
	Severity       domain.Severity
	Matcher        Matcher
	Message        string
	Recommendation string
	Column         ColumnMode

	// SkipTestFiles disables the rule for files whose path contains "test".
	SkipTestFiles bool
}

// Applies reports whether the rule runs for the given path.
func (r Rule) Applies(path string) bool {
	return !r.SkipTestFiles || !strings.Contains(strings.ToLower(path), "test")
}

// Apply runs the rule against one file and returns issues in match order.
func (r Rule) Apply(file domain.FileRecord, cfg domain.Config) []domain.Issue {
	if !r.Applies(file.Path) {
		return nil
	}
	var issues []domain.Issue
	for _, m := range r.Matcher.FindAll(file, cfg) {
		line, col := Locate(file.Content, m.Offset)
		if r.Column == ColumnNone {
			col = 0
		}
		msg := m.Message
		if msg == "" {
			msg = Expand(r.Message, m.Groups)
		}
		rec := m.Recommendation
		if rec == "" {
			rec = Expand(r.Recommendation, m.Groups)
		}
		snippet := ""
		if !m.NoSnippet {
			snippet = Snippet(file.Lines, line)
		}
		issues = append(issues, domain.Issue{
			Severity:       r.Severity,
			Category:       r.Category,
			Rule:           r.ID,
			File:           file.Path,
			Line:           line,
			Column:         col,
			Message:        msg,
			Recommendation: rec,
			CodeSnippet:    snippet,
		})
	}
	return issues
}

// Locate maps a byte offset to a 1-indexed line and column. The line is one
// plus the newlines before offset; the column is offset minus the index of
// the preceding newline.
func Locate(content string, offset int) (line, column int) {
	if offset > len(content) {
		offset = len(content)
	}
	prefix := content[:offset]
	line = strings.Count(prefix, "\n") + 1
	column = offset - strings.LastIndexByte(prefix, '\n')
	return line, column
}

// Snippet returns the given 1-indexed line, or "" past the last line.
func Snippet(lines []string, line int) string {
	if line < 1 || line > len(lines) {
		return ""
	}
	return lines[line-1]
}

// Expand substitutes {0}..{n} in tmpl with the match groups.
func Expand(tmpl string, groups []string) string {
	if !strings.Contains(tmpl, "{") {
		return tmpl
	}
	for i := len(groups) - 1; i >= 0; i-- {
		tmpl = strings.ReplaceAll(tmpl, "{"+strconv.Itoa(i)+"}", groups[i])
	}
	return tmpl
}

// lineOffsets returns the byte offset at which each of the n lines starts.
func lineOffsets(content string, n int) []int {
	offsets := make([]int, 0, n)
	if n == 0 {
		return offsets
	}
	offsets = append(offsets, 0)
	for i := 0; i < len(content) && len(offsets) < n; i++ {
		if content[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

// indentOf counts leading spaces and tabs.
func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}
