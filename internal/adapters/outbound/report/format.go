// Package report renders run reports as text, JSON, Markdown or HTML.
package report

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/abdidvp/reviewkit/internal/domain"
)

// Format names a report format. *Format implements pflag.Value so it can be
// bound directly to a --format flag.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Formats lists the supported formats.
var Formats = []Format{FormatText, FormatJSON, FormatMarkdown, FormatHTML}

var _ pflag.Value = (*Format)(nil)

// ParseFormat resolves a format name. "md" is accepted for markdown.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("%w %q (valid: text, json, markdown, html)", domain.ErrUnsupportedFormat, name)
	}
}

func (f *Format) String() string { return string(*f) }

func (f *Format) Set(v string) error {
	parsed, err := ParseFormat(v)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

func (f *Format) Type() string { return "format" }

// New returns the renderer for a format.
func New(f Format) (domain.ReportRenderer, error) {
	switch f {
	case FormatText, "":
		return TextRenderer{}, nil
	case FormatJSON:
		return JSONRenderer{}, nil
	case FormatMarkdown:
		return MarkdownRenderer{}, nil
	case FormatHTML:
		return HTMLRenderer{}, nil
	default:
		return nil, fmt.Errorf("%w %q", domain.ErrUnsupportedFormat, string(f))
	}
}

const timeLayout = "2006-01-02 15:04:05"

// title is the report heading for a tool.
func title(r *domain.Report) string {
	if r.Tool == domain.ToolStyle {
		return "Code Style Report"
	}
	return "Code Review Report"
}

func fixStatus(i domain.Issue) string {
	if i.Fixed {
		return "fixed"
	}
	return "not fixed"
}
