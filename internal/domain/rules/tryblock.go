package rules

import (
	"regexp"
	"strings"

	"github.com/abdidvp/reviewkit/internal/domain"
)

var (
	pythonTry = regexp.MustCompile(`^\s*try\s*:`)
	braceTry  = regexp.MustCompile(`\btry\s*\{`)
)

// pythonUnhandledTry reports `try:` lines whose scope ends without an
// except or finally clause at the same indentation.
func pythonUnhandledTry(file domain.FileRecord, _ domain.Config) []Match {
	offsets := lineOffsets(file.Content, len(file.Lines))
	var out []Match
	for i, line := range file.Lines {
		if !pythonTry.MatchString(line) {
			continue
		}
		indent := indentOf(line)
		handled := false
		for _, next := range file.Lines[i+1:] {
			t := strings.TrimSpace(next)
			if t == "" || strings.HasPrefix(t, "#") || indentOf(next) > indent {
				continue
			}
			handled = indentOf(next) == indent &&
				(strings.HasPrefix(t, "except") || strings.HasPrefix(t, "finally"))
			break
		}
		if !handled {
			out = append(out, Match{Offset: offsets[i]})
		}
	}
	return out
}

// braceUnhandledTry reports `try {` blocks whose closing brace is not
// followed by catch or finally. Unbalanced blocks are not reported.
func braceUnhandledTry(file domain.FileRecord, _ domain.Config) []Match {
	content := file.Content
	var out []Match
	for _, loc := range braceTry.FindAllStringIndex(content, -1) {
		end := closingBrace(content, loc[1]-1)
		if end < 0 {
			continue
		}
		rest := strings.TrimLeft(content[end+1:], " \t\r\n")
		if strings.HasPrefix(rest, "catch") || strings.HasPrefix(rest, "finally") {
			continue
		}
		out = append(out, Match{Offset: loc[0]})
	}
	return out
}

// closingBrace returns the index of the brace closing the one at open, or -1.
func closingBrace(content string, open int) int {
	depth := 0
	for i := open; i < len(content); i++ {
		switch content[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
