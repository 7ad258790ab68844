package style

import (
	"strings"
	"unicode"

	"github.com/fatih/camelcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/abdidvp/reviewkit/internal/domain/rules"
)

// words splits an identifier into words on underscores, other separators
// and case boundaries. Digit runs stay attached to the preceding word.
func words(name string) []string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var out []string
	for _, part := range parts {
		for _, w := range camelcase.Split(part) {
			if w == "" {
				continue
			}
			if len(out) > 0 && isDigits(w) {
				out[len(out)-1] += w
				continue
			}
			out = append(out, w)
		}
	}
	return out
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

// ToPascal converts an identifier to PascalCase. Acronyms keep their case.
func ToPascal(name string) string {
	title := cases.Title(language.Und, cases.NoLower)
	var b strings.Builder
	for _, w := range words(name) {
		b.WriteString(title.String(w))
	}
	return b.String()
}

// ToCamel converts an identifier to camelCase.
func ToCamel(name string) string {
	ws := words(name)
	if len(ws) == 0 {
		return ""
	}
	title := cases.Title(language.Und, cases.NoLower)
	var b strings.Builder
	b.WriteString(strings.ToLower(ws[0]))
	for _, w := range ws[1:] {
		b.WriteString(title.String(w))
	}
	return b.String()
}

// ToSnake converts an identifier to snake_case.
func ToSnake(name string) string {
	ws := words(name)
	for i, w := range ws {
		ws[i] = strings.ToLower(w)
	}
	return strings.Join(ws, "_")
}

// Convert applies the conversion for a naming convention.
func Convert(name string, c rules.Convention) string {
	switch c {
	case rules.PascalCase:
		return ToPascal(name)
	case rules.SnakeCase:
		return ToSnake(name)
	case rules.CamelCase:
		return ToCamel(name)
	default:
		return name
	}
}
