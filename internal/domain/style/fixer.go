// Package style checks formatting and naming conventions and applies the
// safe whitespace and terminator fixes.
package style

import (
	"regexp"
	"strings"

	"github.com/abdidvp/reviewkit/internal/domain"
	"github.com/abdidvp/reviewkit/internal/domain/rules"
)

const (
	ruleTabs         = "indentation"
	ruleIndentWidth  = "indent-width"
	ruleLineLength   = "line-length"
	ruleTrailing     = "trailing-whitespace"
	ruleSemicolon    = "semicolon"
	ruleFinalNewline = "final-newline"

	horizontalSpace = " \t\f\v"
	// Lines ending in one of these continue or open a construct.
	openEndings = ";{}([,=+-*/&|?:.`"
)

var terminatedStatement = regexp.MustCompile(`^(const|let|var|return)\s+`)

// Profile is the style policy for one file.
type Profile struct {
	IndentSize     int
	MaxLineLength  int
	TabIndentation bool
	IndentWidth    bool
	LineLength     bool
	Semicolons     bool
}

// ProfileFor derives the profile of a rule set under a configuration.
// Semicolons are required only when the language uses them and the
// language style enables them.
func ProfileFor(rs rules.LanguageRuleSet, cfg domain.Config) Profile {
	caps := rs.Style()
	ls := cfg.Style(rs.Language())
	return Profile{
		IndentSize:     ls.IndentSize,
		MaxLineLength:  ls.MaxLineLength,
		TabIndentation: caps.TabIndentation,
		IndentWidth:    caps.IndentWidth,
		LineLength:     caps.LineLength,
		Semicolons:     caps.Semicolons && ls.Semicolons,
	}
}

// AppliedFix records one fix by 1-indexed line and rule id.
type AppliedFix struct {
	Line int
	Rule string
}

// FixResult is the outcome of one fixer pass.
type FixResult struct {
	Content string
	Changed bool
	Applied []AppliedFix
}

// Has reports whether a fix for rule was applied on line.
func (r FixResult) Has(line int, rule string) bool {
	for _, a := range r.Applied {
		if a.Line == line && a.Rule == rule {
			return true
		}
	}
	return false
}

// Fix applies the automatic fixes line by line, then normalizes the end of
// the file to a single line ending. Line endings are preserved. Applying Fix
// to its own output changes nothing.
func Fix(content string, p Profile) FixResult {
	var applied []AppliedFix
	lines := strings.Split(content, "\n")
	for i, raw := range lines {
		n := i + 1
		body, cr := strings.CutSuffix(raw, "\r")

		if p.TabIndentation && hasTabIndent(body) {
			body = expandIndentTabs(body, p.IndentSize)
			applied = append(applied, AppliedFix{Line: n, Rule: ruleTabs})
		}
		if trimmed := strings.TrimRight(body, horizontalSpace); trimmed != body {
			body = trimmed
			applied = append(applied, AppliedFix{Line: n, Rule: ruleTrailing})
		}
		if p.Semicolons && needsSemicolon(body) {
			body += ";"
			applied = append(applied, AppliedFix{Line: n, Rule: ruleSemicolon})
		}

		if cr {
			body += "\r"
		}
		lines[i] = body
	}

	out := strings.Join(lines, "\n")
	if line, ok := finalNewlineProblem(content); ok {
		out = normalizeEnding(out, lineEnding(content))
		applied = append(applied, AppliedFix{Line: line, Rule: ruleFinalNewline})
	}

	return FixResult{Content: out, Changed: out != content, Applied: applied}
}

func leadingSpace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

func hasTabIndent(line string) bool {
	return strings.Contains(leadingSpace(line), "\t")
}

func expandIndentTabs(line string, width int) string {
	lead := leadingSpace(line)
	return strings.ReplaceAll(lead, "\t", strings.Repeat(" ", width)) + line[len(lead):]
}

func needsSemicolon(line string) bool {
	t := strings.TrimSpace(line)
	if t == "" || strings.HasPrefix(t, "//") || strings.Contains(t, "//") {
		return false
	}
	if !terminatedStatement.MatchString(t) {
		return false
	}
	return !strings.ContainsRune(openEndings, rune(t[len(t)-1]))
}

// finalNewlineProblem reports the last line of content when the file lacks a
// final line ending or ends in blank lines.
func finalNewlineProblem(content string) (int, bool) {
	if content == "" {
		return 0, false
	}
	lines := domain.SplitLines(content)
	if !strings.HasSuffix(content, "\n") {
		return len(lines), true
	}
	if strings.TrimRight(lines[len(lines)-1], horizontalSpace) == "" {
		return len(lines), true
	}
	return 0, false
}

// lineEnding returns the ending of the last terminated line, or "\n".
func lineEnding(content string) string {
	i := strings.LastIndexByte(content, '\n')
	if i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

func normalizeEnding(content, eol string) string {
	trimmed := strings.TrimRight(content, "\r\n"+horizontalSpace)
	if trimmed == "" {
		return ""
	}
	return trimmed + eol
}
