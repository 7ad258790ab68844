package style_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/reviewkit/internal/domain"
	"github.com/abdidvp/reviewkit/internal/domain/rules"
	"github.com/abdidvp/reviewkit/internal/domain/style"
)

func check(path, content string) []domain.Issue {
	return style.NewChecker(domain.DefaultConfig()).Check(domain.NewFileRecord(path, content))
}

func TestCheck_ClassNamingSuggestion(t *testing.T) {
	issues := check("models.py", "class user_name:\n    pass\n")

	require.Len(t, issues, 1)
	assert.Equal(t, "naming", issues[0].Rule)
	assert.Equal(t, domain.CategoryStyle, issues[0].Category)
	assert.Equal(t, "UserName", issues[0].Suggestion)
	assert.Equal(t, "Class 'user_name' should be PascalCase", issues[0].Message)
	assert.False(t, issues[0].Fixed)
}

func TestCheck_NamingWithoutSuggestionIsSkipped(t *testing.T) {
	issues := check("models.py", "class _:\n    pass\n")

	assert.Empty(t, issues, "an identifier with no words has no usable rename")
}

func TestCheckAndFix_TrailingWhitespace(t *testing.T) {
	file := domain.NewFileRecord("app.py", "x = 1   \ny = 2\n")

	issues, res := style.NewChecker(domain.DefaultConfig()).CheckAndFix(file)

	require.Len(t, issues, 1)
	assert.Equal(t, "trailing-whitespace", issues[0].Rule)
	assert.Equal(t, 6, issues[0].Column)
	assert.True(t, issues[0].Fixed)
	assert.True(t, res.Changed)
	assert.Equal(t, "x = 1\ny = 2\n", res.Content)
}

func TestCheckAndFix_NamingIsNeverFixed(t *testing.T) {
	file := domain.NewFileRecord("app.js", "const user_id = 1\n")

	issues, res := style.NewChecker(domain.DefaultConfig()).CheckAndFix(file)

	require.Len(t, issues, 2)
	assert.Equal(t, "semicolon", issues[0].Rule)
	assert.True(t, issues[0].Fixed)
	assert.Equal(t, "naming", issues[1].Rule)
	assert.Equal(t, "userId", issues[1].Suggestion)
	assert.False(t, issues[1].Fixed)
	assert.Equal(t, "const user_id = 1;\n", res.Content)
}

func TestCheck_PythonRules(t *testing.T) {
	long := "x = '" + strings.Repeat("a", 90) + "'"
	content := "def f():\n\treturn 1\n   y = 2\n" + long + "\n"

	issues := check("m.py", content)

	var got []string
	for _, i := range issues {
		got = append(got, i.Rule)
	}
	assert.Equal(t, []string{"indentation", "indent-width", "line-length"}, got)
	assert.Equal(t, domain.SeverityMedium, issues[0].Severity)
	assert.Equal(t, "Indentation not multiple of 4 (found 3)", issues[1].Message)
	assert.Equal(t, 89, issues[2].Column)
}

func TestCheck_UniversalOnlyChecksWhitespace(t *testing.T) {
	issues := check("main.go", "package main\n\nfunc main() {\n\tprintln(1)  \n}")

	var got []string
	for _, i := range issues {
		got = append(got, i.Rule)
	}
	assert.Equal(t, []string{"trailing-whitespace", "final-newline"}, got)
	assert.Equal(t, "Missing final newline", issues[1].Message)
	assert.Equal(t, 5, issues[1].Line)
}

func TestCheck_StandardPresetDisablesSemicolons(t *testing.T) {
	cfg, err := domain.DefaultConfig().WithPreset("standard")
	require.NoError(t, err)

	issues := style.NewChecker(cfg).Check(domain.NewFileRecord("a.js", "const a = 1\n"))

	assert.Empty(t, issues)
}

func TestFix(t *testing.T) {
	py := style.ProfileFor(rules.PythonRules{}, domain.DefaultConfig())
	js := style.ProfileFor(rules.ScriptRules{}, domain.DefaultConfig())
	uni := style.ProfileFor(rules.UniversalRules{}, domain.DefaultConfig())

	tests := []struct {
		name    string
		profile style.Profile
		in      string
		want    string
	}{
		{"empty stays empty", py, "", ""},
		{"tabs become spaces", py, "if x:\n\ty = 1\n", "if x:\n    y = 1\n"},
		{"script tabs use script width", js, "if (x) {\n\ty();\n}\n", "if (x) {\n  y();\n}\n"},
		{"only leading tabs", py, "x = 'a\tb'\n", "x = 'a\tb'\n"},
		{"crlf preserved", uni, "a \r\nb\r\n", "a\r\nb\r\n"},
		{"missing final newline", uni, "a", "a\n"},
		{"trailing blank lines collapse", uni, "a\n\n\n", "a\n"},
		{"blank only file", uni, "\n\n", ""},
		{"semicolon added", js, "let a = 1\nreturn a\n", "let a = 1;\nreturn a;\n"},
		{"open constructs untouched", js, "const a = {\nreturn (\nconst b = c +\n", "const a = {\nreturn (\nconst b = c +\n"},
		{"comments untouched", js, "// let a = 1\nconst b = 2 // two\n", "// let a = 1\nconst b = 2 // two\n"},
		{"universal keeps tabs", uni, "\tx\n", "\tx\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := style.Fix(tt.in, tt.profile)
			assert.Equal(t, tt.want, res.Content)
			assert.Equal(t, tt.in != tt.want, res.Changed)
		})
	}
}

func TestFix_ReportsAppliedFixes(t *testing.T) {
	js := style.ProfileFor(rules.ScriptRules{}, domain.DefaultConfig())

	res := style.Fix("\tvar a = 1 \nok();", js)

	assert.Equal(t, []style.AppliedFix{
		{Line: 1, Rule: "indentation"},
		{Line: 1, Rule: "trailing-whitespace"},
		{Line: 1, Rule: "semicolon"},
		{Line: 2, Rule: "final-newline"},
	}, res.Applied)
	assert.Equal(t, "  var a = 1;\nok();\n", res.Content)
}

func TestConversions(t *testing.T) {
	tests := []struct {
		in, pascal, camel, snake string
	}{
		{"user_name", "UserName", "userName", "user_name"},
		{"GetHTTPResponse", "GetHTTPResponse", "getHTTPResponse", "get_http_response"},
		{"myClass", "MyClass", "myClass", "my_class"},
		{"Version2", "Version2", "version2", "version2"},
		{"_private", "Private", "private", "private"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.pascal, style.ToPascal(tt.in))
			assert.Equal(t, tt.camel, style.ToCamel(tt.in))
			assert.Equal(t, tt.snake, style.ToSnake(tt.in))
		})
	}
}
