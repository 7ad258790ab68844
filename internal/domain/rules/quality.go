package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/abdidvp/reviewkit/internal/domain"
)

var (
	functionSignature = regexp.MustCompile(`(def |function |func |public |private |protected )[^{]+\{?`)
	indentedSignature = regexp.MustCompile(`^\s*(async\s+)?def\s`)
	integerLiteral    = regexp.MustCompile(`\b\d{2,}\b`)
	todoMarker        = regexp.MustCompile(`(?i)(TODO|FIXME|HACK|XXX)`)
)

// allowedNumbers are literals common enough to never count as magic.
var allowedNumbers = map[string]bool{
	"0": true, "1": true, "2": true, "10": true, "100": true, "1000": true,
}

func fileLength(file domain.FileRecord, cfg domain.Config) []Match {
	n := len(file.Lines)
	if n <= cfg.MaxFileLines {
		return nil
	}
	return []Match{{
		Offset:         0,
		Message:        fmt.Sprintf("File too long (%d lines)", n),
		Recommendation: fmt.Sprintf("Consider splitting into smaller modules (max %d lines)", cfg.MaxFileLines),
		NoSnippet:      true,
	}}
}

// openFunction tracks the function whose length is being measured.
type openFunction struct {
	start    int // 1-indexed line of the signature
	indent   int
	indented bool // body delimited by indentation rather than braces
	depth    int
	braced   bool
}

// functionLength measures functions heuristically. Brace-delimited bodies
// close when the brace depth returns to zero; indentation-delimited bodies
// close at the next non-blank line indented no deeper than the signature.
// A signature line always starts a new measurement.
func functionLength(file domain.FileRecord, cfg domain.Config) []Match {
	offsets := lineOffsets(file.Content, len(file.Lines))
	var out []Match
	var cur *openFunction

	closeAt := func(end int) {
		length := end - cur.start
		if length > cfg.MaxMethodLines {
			out = append(out, Match{
				Offset:         offsets[cur.start-1],
				Message:        fmt.Sprintf("Function too long (%d lines)", length),
				Recommendation: fmt.Sprintf("Break down into smaller functions (max %d lines)", cfg.MaxMethodLines),
			})
		}
		cur = nil
	}

	for i, line := range file.Lines {
		n := i + 1
		blank := strings.TrimSpace(line) == ""

		if functionSignature.MatchString(line) {
			if cur != nil && cur.indented && indentOf(line) <= cur.indent {
				closeAt(n)
			}
			cur = &openFunction{
				start:    n,
				indent:   indentOf(line),
				indented: indentedSignature.MatchString(line) && !strings.Contains(line, "{"),
				depth:    strings.Count(line, "{") - strings.Count(line, "}"),
				braced:   strings.Contains(line, "{"),
			}
			continue
		}
		if cur == nil {
			continue
		}

		if cur.indented {
			if !blank && indentOf(line) <= cur.indent {
				closeAt(n)
			}
			continue
		}

		cur.depth += strings.Count(line, "{") - strings.Count(line, "}")
		if strings.Contains(line, "{") {
			cur.braced = true
		}
		if cur.braced && cur.depth <= 0 {
			closeAt(n)
		}
	}
	if cur != nil && cur.indented {
		closeAt(len(file.Lines) + 1)
	}
	return out
}

func isCommentLine(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "#") || strings.HasPrefix(t, "//")
}

func isQuote(b byte) bool { return b == '"' || b == '\'' }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// magicNumbers flags integer literals of two or more digits outside the
// allow-list. Comment lines, quoted numbers and decimal parts are skipped.
func magicNumbers(file domain.FileRecord, _ domain.Config) []Match {
	offsets := lineOffsets(file.Content, len(file.Lines))
	var out []Match
	for i, line := range file.Lines {
		if isCommentLine(line) {
			continue
		}
		for _, loc := range integerLiteral.FindAllStringIndex(line, -1) {
			start, end := loc[0], loc[1]
			lit := line[start:end]
			if allowedNumbers[lit] {
				continue
			}
			if start > 0 && (isQuote(line[start-1]) || line[start-1] == '.') {
				continue
			}
			if end < len(line) && isQuote(line[end]) {
				continue
			}
			if end+1 < len(line) && line[end] == '.' && isDigit(line[end+1]) {
				continue
			}
			out = append(out, Match{Offset: offsets[i] + start, Groups: []string{lit}})
		}
	}
	return out
}

// todoMarkers reports at most one marker per line.
func todoMarkers(file domain.FileRecord, _ domain.Config) []Match {
	offsets := lineOffsets(file.Content, len(file.Lines))
	var out []Match
	for i, line := range file.Lines {
		if loc := todoMarker.FindStringIndex(line); loc != nil {
			out = append(out, Match{Offset: offsets[i] + loc[0]})
		}
	}
	return out
}
