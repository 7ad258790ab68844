package domain

import (
	"fmt"
	"strings"
)

// Severity ranks an issue for triage and report ordering. Lower values are
// more severe; the declaration order is the report order.
type Severity uint8

const (
	SeverityCritical Severity = iota
	SeverityHigh
	SeverityMedium
	SeverityLow
	SeverityInfo
)

// Severities lists every severity in report order.
var Severities = []Severity{
	SeverityCritical,
	SeverityHigh,
	SeverityMedium,
	SeverityLow,
	SeverityInfo,
}

func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "critical"
	case SeverityHigh:
		return "high"
	case SeverityMedium:
		return "medium"
	case SeverityLow:
		return "low"
	case SeverityInfo:
		return "info"
	default:
		return fmt.Sprintf("severity(%d)", uint8(s))
	}
}

// AtLeast reports whether s is as severe as or more severe than threshold.
func (s Severity) AtLeast(threshold Severity) bool { return s <= threshold }

// MarshalText implements [encoding.TextMarshaler].
func (s Severity) MarshalText() ([]byte, error) {
	if s > SeverityInfo {
		return nil, fmt.Errorf("unknown severity %d", uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (s *Severity) UnmarshalText(text []byte) error {
	v, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseSeverity converts a case-insensitive label into a Severity.
func ParseSeverity(label string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "critical":
		return SeverityCritical, nil
	case "high":
		return SeverityHigh, nil
	case "medium":
		return SeverityMedium, nil
	case "low":
		return SeverityLow, nil
	case "info":
		return SeverityInfo, nil
	default:
		return 0, fmt.Errorf("unknown severity %q (valid: critical, high, medium, low, info)", label)
	}
}

// Category is the concern a rule addresses.
type Category uint8

const (
	CategorySecurity Category = iota
	CategoryPerformance
	CategoryQuality
	CategoryBestPractices
	CategoryStyle
)

// ReviewCategories are the categories the review tool runs, in application order.
var ReviewCategories = []Category{
	CategorySecurity,
	CategoryPerformance,
	CategoryQuality,
	CategoryBestPractices,
}

func (c Category) String() string {
	switch c {
	case CategorySecurity:
		return "security"
	case CategoryPerformance:
		return "performance"
	case CategoryQuality:
		return "quality"
	case CategoryBestPractices:
		return "best_practices"
	case CategoryStyle:
		return "style"
	default:
		return fmt.Sprintf("category(%d)", uint8(c))
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (c Category) MarshalText() ([]byte, error) {
	if c > CategoryStyle {
		return nil, fmt.Errorf("unknown category %d", uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (c *Category) UnmarshalText(text []byte) error {
	v, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseCategory converts a check name into a Category. Both "best_practices"
// and "best-practices" are accepted.
func ParseCategory(name string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "security":
		return CategorySecurity, nil
	case "performance":
		return CategoryPerformance, nil
	case "quality":
		return CategoryQuality, nil
	case "best_practices", "best-practices":
		return CategoryBestPractices, nil
	case "style":
		return CategoryStyle, nil
	default:
		return 0, fmt.Errorf("unknown check %q (valid: security, performance, quality, best_practices, style)", name)
	}
}

// Issue is one detected violation. Everything but Fixed is set at creation.
type Issue struct {
	Severity       Severity `json:"severity"`
	Category       Category `json:"category"`
	Rule           string   `json:"rule"`
	File           string   `json:"file"`
	Line           int      `json:"line"`
	Column         int      `json:"column"`
	Message        string   `json:"message"`
	Recommendation string   `json:"recommendation"`
	CodeSnippet    string   `json:"code_snippet"`
	Suggestion     string   `json:"suggestion,omitempty"`
	Fixed          bool     `json:"fixed"`
}

// FileRecord is the decoded content of one file under analysis.
type FileRecord struct {
	Path    string
	Content string
	Lines   []string
}

// NewFileRecord splits content into lines the way a reader counts them:
// a trailing newline does not start another line and empty content has none.
func NewFileRecord(path, content string) FileRecord {
	return FileRecord{Path: path, Content: content, Lines: SplitLines(content)}
}

// SplitLines splits on \n, dropping a final empty segment and any \r that
// ends a line.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// RunStatistics are the counters kept for one run.
type RunStatistics struct {
	FilesChecked int `json:"files_checked"`
	FilesFixed   int `json:"files_fixed"`
	LineCount    int `json:"line_count"`
}
