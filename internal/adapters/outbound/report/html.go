package report

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/abdidvp/reviewkit/internal/domain"
)

const stylesheet = `
body { font-family: system-ui, sans-serif; margin: 2rem; color: #1f2937; }
table { border-collapse: collapse; }
th, td { border: 1px solid #d1d5db; padding: 4px 12px; text-align: left; }
.issue { border-left: 4px solid #9ca3af; margin: 1rem 0; padding: 0.5rem 1rem; background: #f9fafb; }
.critical { border-color: #ef4444; }
.high { border-color: #fb923c; }
.medium { border-color: #f59e0b; }
.low { border-color: #8b949e; }
.info { border-color: #6b7280; }
.fixed { color: #16a34a; }
pre { background: #111827; color: #e5e7eb; padding: 0.5rem; overflow-x: auto; }
`

// HTMLRenderer builds the report as an HTML node tree, so every piece of
// issue text is escaped on render.
type HTMLRenderer struct{}

func (HTMLRenderer) Render(w io.Writer, r *domain.Report) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	head := el(atom.Head,
		withAttr(el(atom.Meta), "charset", "utf-8"),
		el(atom.Title, text(title(r))),
		el(atom.Style, text(stylesheet)),
	)
	body := el(atom.Body, el(atom.H1, text(title(r))))
	body.AppendChild(metadata(r))
	body.AppendChild(el(atom.H2, text("Summary")))
	body.AppendChild(summaryTable(r))

	for _, g := range r.Groups() {
		body.AppendChild(el(atom.H2, text(capitalize(g.Severity.String())+" Issues")))
		for n, i := range g.Issues {
			body.AppendChild(issueNode(r, g.Severity, n+1, i))
		}
	}

	doc.AppendChild(withAttr(el(atom.Html, head, body), "lang", "en"))
	if err := html.Render(w, doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func metadata(r *domain.Report) *html.Node {
	list := withAttr(el(atom.Ul), "class", "metadata")
	add := func(label, value string) {
		list.AppendChild(el(atom.Li, el(atom.Strong, text(label+": ")), text(value)))
	}
	add("Generated", r.GeneratedAt.Format(timeLayout))
	add("Files checked", fmt.Sprint(r.Stats.FilesChecked))
	add("Lines of code", fmt.Sprint(r.Stats.LineCount))
	if r.Tool == domain.ToolStyle {
		add("Files fixed", fmt.Sprint(r.Stats.FilesFixed))
		add("Issues fixed", fmt.Sprint(r.FixedCount()))
	}
	add("Total issues", fmt.Sprint(len(r.Issues)))
	return list
}

func summaryTable(r *domain.Report) *html.Node {
	table := el(atom.Table, el(atom.Tr, el(atom.Th, text("Severity")), el(atom.Th, text("Count"))))
	counts := r.Counts()
	for _, s := range domain.Severities {
		table.AppendChild(el(atom.Tr,
			withAttr(el(atom.Td, text(capitalize(s.String()))), "class", s.String()),
			el(atom.Td, text(fmt.Sprint(counts[s]))),
		))
	}
	return table
}

func issueNode(r *domain.Report, sev domain.Severity, n int, i domain.Issue) *html.Node {
	div := withAttr(el(atom.Div), "class", "issue "+sev.String())
	div.AppendChild(el(atom.H3, text(fmt.Sprintf("%d. %s", n, i.Message))))

	field := func(label string, value *html.Node) {
		div.AppendChild(el(atom.P, el(atom.Strong, text(label+": ")), value))
	}
	field("File", el(atom.Code, text(fmt.Sprintf("%s:%d", i.File, i.Line))))
	field("Category", text(i.Category.String()))
	field("Rule", text(i.Rule))
	if i.Suggestion != "" {
		field("Suggestion", el(atom.Code, text(i.Suggestion)))
	}
	field("Recommendation", text(i.Recommendation))
	if r.Tool == domain.ToolStyle {
		status := el(atom.Span, text(fixStatus(i)))
		if i.Fixed {
			withAttr(status, "class", "fixed")
		}
		field("Status", status)
	}
	if i.CodeSnippet != "" {
		div.AppendChild(el(atom.Pre, el(atom.Code, text(i.CodeSnippet))))
	}
	return div
}

func el(a atom.Atom, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func withAttr(n *html.Node, key, val string) *html.Node {
	for idx, a := range n.Attr {
		if a.Key == key {
			n.Attr[idx].Val = strings.TrimSpace(a.Val + " " + val)
			return n
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
