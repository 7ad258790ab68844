package rules

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/abdidvp/reviewkit/internal/domain"
)

// Convention is an identifier casing convention.
type Convention uint8

const (
	PascalCase Convention = iota
	SnakeCase
	CamelCase
)

func (c Convention) String() string {
	switch c {
	case PascalCase:
		return "PascalCase"
	case SnakeCase:
		return "snake_case"
	case CamelCase:
		return "camelCase"
	default:
		return "unknown"
	}
}

// NamingRule flags identifiers captured by group 1 of Pattern and proposes
// the name converted to Convention.
type NamingRule struct {
	Kind       string
	Pattern    *regexp.Regexp
	Convention Convention
}

// StyleCapabilities describes which style checks a language supports.
type StyleCapabilities struct {
	TabIndentation bool // tabs in leading whitespace are reported and fixed
	IndentWidth    bool // indentation must be a multiple of the indent size
	LineLength     bool
	Semicolons     bool // statement terminators for declarations and returns
	Naming         []NamingRule
}

// LanguageRuleSet is the capability set selected once per file.
type LanguageRuleSet interface {
	// Name identifies the variant in logs.
	Name() string
	// Language is the key of the style block in Config.Languages, or "".
	Language() string
	// Rules returns the review rules of one category.
	Rules(cat domain.Category) []Rule
	// Style returns the style capabilities.
	Style() StyleCapabilities
}

var (
	pythonNaming = []NamingRule{
		{Kind: "Class", Pattern: regexp.MustCompile(`class\s+([a-z_][a-zA-Z0-9_]*)\s*[\(:]`), Convention: PascalCase},
		{Kind: "Function", Pattern: regexp.MustCompile(`def\s+([A-Z][a-zA-Z0-9_]*)\s*\(`), Convention: SnakeCase},
	}
	scriptNaming = []NamingRule{
		{Kind: "Variable", Pattern: regexp.MustCompile(`(?:const|let|var)\s+([a-z]+_[a-z_]+)\s*=`), Convention: CamelCase},
		{Kind: "Class", Pattern: regexp.MustCompile(`class\s+([a-z][a-zA-Z0-9]*)`), Convention: PascalCase},
	}
)

func commonRules(cat domain.Category) []Rule {
	switch cat {
	case domain.CategorySecurity:
		return SecurityRules
	case domain.CategoryPerformance:
		return PerformanceRules
	case domain.CategoryQuality:
		return QualityRules
	default:
		return nil
	}
}

// PythonRules covers indentation-scoped Python sources.
type PythonRules struct{}

func (PythonRules) Name() string     { return "python" }
func (PythonRules) Language() string { return domain.LanguagePython }

func (PythonRules) Rules(cat domain.Category) []Rule {
	if cat == domain.CategoryBestPractices {
		return PythonBestPractices
	}
	return commonRules(cat)
}

func (PythonRules) Style() StyleCapabilities {
	return StyleCapabilities{TabIndentation: true, IndentWidth: true, LineLength: true, Naming: pythonNaming}
}

// ScriptRules covers JavaScript and TypeScript sources.
type ScriptRules struct{}

func (ScriptRules) Name() string     { return "script" }
func (ScriptRules) Language() string { return domain.LanguageJavaScript }

func (ScriptRules) Rules(cat domain.Category) []Rule {
	if cat == domain.CategoryBestPractices {
		return BraceBestPractices
	}
	return commonRules(cat)
}

func (ScriptRules) Style() StyleCapabilities {
	return StyleCapabilities{TabIndentation: true, LineLength: true, Semicolons: true, Naming: scriptNaming}
}

// UniversalRules covers every other accepted extension.
type UniversalRules struct{}

func (UniversalRules) Name() string     { return "universal" }
func (UniversalRules) Language() string { return "" }

func (UniversalRules) Rules(cat domain.Category) []Rule {
	if cat == domain.CategoryBestPractices {
		return BraceBestPractices
	}
	return commonRules(cat)
}

func (UniversalRules) Style() StyleCapabilities { return StyleCapabilities{} }

// ForPath selects the rule set for a file by extension.
func ForPath(path string) LanguageRuleSet {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py":
		return PythonRules{}
	case ".js", ".jsx", ".ts", ".tsx", ".mjs", ".cjs":
		return ScriptRules{}
	default:
		return UniversalRules{}
	}
}
