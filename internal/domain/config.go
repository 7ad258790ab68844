package domain

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

const (
	LanguagePython     = "python"
	LanguageJavaScript = "javascript"
)

// LanguageStyle holds the per-language style parameters.
type LanguageStyle struct {
	IndentSize    int    `yaml:"indent_size"     json:"indent_size"`
	MaxLineLength int    `yaml:"max_line_length" json:"max_line_length"`
	StyleGuide    string `yaml:"style_guide"     json:"style_guide,omitempty"`
	Semicolons    bool   `yaml:"semicolons"      json:"semicolons"`
}

// Config is the resolved configuration of a run. It is built once and only
// read afterwards; use the With* methods to derive a modified copy.
type Config struct {
	EnabledChecks     []Category               `yaml:"enabled_checks"     json:"enabled_checks"`
	SeverityThreshold Severity                 `yaml:"severity_threshold" json:"severity_threshold"`
	MaxFileLines      int                      `yaml:"max_file_lines"     json:"max_file_lines"`
	MaxMethodLines    int                      `yaml:"max_method_lines"   json:"max_method_lines"`
	MaxComplexity     int                      `yaml:"max_complexity"     json:"max_complexity"`
	IgnorePaths       []string                 `yaml:"ignore_paths"       json:"ignore_paths"`
	FileExtensions    []string                 `yaml:"file_extensions"    json:"file_extensions"`
	Languages         map[string]LanguageStyle `yaml:"-"                  json:"languages"`

	// Extra keeps unrecognized top-level keys of the configuration document.
	Extra map[string]any `yaml:"-" json:"-"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		EnabledChecks:     slices.Clone(ReviewCategories),
		SeverityThreshold: SeverityLow,
		MaxFileLines:      500,
		MaxMethodLines:    50,
		MaxComplexity:     10,
		IgnorePaths:       []string{"node_modules", ".git", "dist", "build", "__pycache__", "vendor"},
		FileExtensions: []string{
			".py", ".js", ".jsx", ".ts", ".tsx", ".java", ".cs", ".go", ".rb", ".php", ".rs",
		},
		Languages: map[string]LanguageStyle{
			LanguagePython:     {IndentSize: 4, MaxLineLength: 88, StyleGuide: "pep8"},
			LanguageJavaScript: {IndentSize: 2, MaxLineLength: 80, StyleGuide: "airbnb", Semicolons: true},
		},
	}
}

// IsEnabled reports whether the category is among the enabled checks.
func (c Config) IsEnabled(cat Category) bool {
	return slices.Contains(c.EnabledChecks, cat)
}

// Style returns the style block for a language, falling back to the
// built-in defaults and then to neutral values.
func (c Config) Style(language string) LanguageStyle {
	if s, ok := c.Languages[language]; ok {
		return s
	}
	if s, ok := DefaultConfig().Languages[language]; ok {
		return s
	}
	return LanguageStyle{IndentSize: 4, MaxLineLength: 120}
}

// Admits reports whether review rules of severity s run under the
// threshold. The default threshold of low also admits info markers; only a
// stricter threshold suppresses them.
func (c Config) Admits(s Severity) bool {
	if s == SeverityInfo && c.SeverityThreshold == SeverityLow {
		return true
	}
	return s.AtLeast(c.SeverityThreshold)
}

// HasExtension reports whether ext (with leading dot) is an allowed extension.
func (c Config) HasExtension(ext string) bool {
	return slices.Contains(c.FileExtensions, strings.ToLower(ext))
}

// IsIgnoredDir reports whether a directory name contains any ignore substring.
func (c Config) IsIgnoredDir(name string) bool {
	for _, p := range c.IgnorePaths {
		if p != "" && strings.Contains(name, p) {
			return true
		}
	}
	return false
}

// ParseChecks resolves review check names. "all" selects every review
// category; blanks are ignored and duplicates collapse. Style is not a review
// check and is rejected.
func ParseChecks(names []string) ([]Category, error) {
	var out []Category
	for _, n := range names {
		n = strings.TrimSpace(n)
		switch {
		case n == "":
			continue
		case strings.EqualFold(n, "all"):
			return slices.Clone(ReviewCategories), nil
		}
		c, err := ParseCategory(n)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(ReviewCategories, c) {
			return nil, fmt.Errorf("%q is not a review check (valid: security, performance, quality, best_practices; use the style command for style)", n)
		}
		if !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no checks selected")
	}
	return out, nil
}

// WithChecks returns a copy with the given checks enabled.
func (c Config) WithChecks(checks []Category) Config {
	out := c.clone()
	out.EnabledChecks = slices.Clone(checks)
	return out
}

// WithExcludes returns a copy with extra ignore substrings appended.
func (c Config) WithExcludes(excludes []string) Config {
	out := c.clone()
	for _, e := range excludes {
		e = strings.TrimSuffix(strings.TrimSpace(e), "/")
		if e != "" && !slices.Contains(out.IgnorePaths, e) {
			out.IgnorePaths = append(out.IgnorePaths, e)
		}
	}
	return out
}

// WithPreset returns a copy with a named style preset applied.
func (c Config) WithPreset(preset string) (Config, error) {
	out := c.clone()
	py := out.Style(LanguagePython)
	js := out.Style(LanguageJavaScript)

	switch strings.ToLower(preset) {
	case "pep8":
		py.MaxLineLength = 79
		py.StyleGuide = "pep8"
	case "black":
		py.MaxLineLength = 88
		py.StyleGuide = "black"
	case "airbnb":
		js.IndentSize = 2
		js.StyleGuide = "airbnb"
	case "standard":
		js.Semicolons = false
		js.StyleGuide = "standard"
	default:
		return c, fmt.Errorf("%w %q (valid: pep8, black, airbnb, standard)", ErrUnknownPreset, preset)
	}

	out.Languages[LanguagePython] = py
	out.Languages[LanguageJavaScript] = js
	return out, nil
}

// Validate checks the config for invalid values.
func (c Config) Validate() error {
	if len(c.EnabledChecks) == 0 {
		return fmt.Errorf("enabled_checks must name at least one check")
	}
	ints := []struct {
		name  string
		value int
	}{
		{"max_file_lines", c.MaxFileLines},
		{"max_method_lines", c.MaxMethodLines},
		{"max_complexity", c.MaxComplexity},
	}
	for _, f := range ints {
		if f.value <= 0 {
			return fmt.Errorf("%s must be > 0 (got %d)", f.name, f.value)
		}
	}
	for _, ext := range c.FileExtensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("file_extensions entry %q must start with a dot", ext)
		}
	}
	for name, s := range c.Languages {
		if s.IndentSize <= 0 {
			return fmt.Errorf("%s.indent_size must be > 0 (got %d)", name, s.IndentSize)
		}
		if s.MaxLineLength <= 0 {
			return fmt.Errorf("%s.max_line_length must be > 0 (got %d)", name, s.MaxLineLength)
		}
	}
	return nil
}

func (c Config) clone() Config {
	out := c
	out.EnabledChecks = slices.Clone(c.EnabledChecks)
	out.IgnorePaths = slices.Clone(c.IgnorePaths)
	out.FileExtensions = slices.Clone(c.FileExtensions)
	out.Languages = maps.Clone(c.Languages)
	if out.Languages == nil {
		out.Languages = make(map[string]LanguageStyle)
	}
	out.Extra = maps.Clone(c.Extra)
	return out
}
