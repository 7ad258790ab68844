package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/abdidvp/reviewkit/internal/domain"
)

// JSONRenderer writes the structured report document.
type JSONRenderer struct{}

type jsonReport struct {
	Metadata jsonMetadata   `json:"metadata"`
	Summary  jsonSummary    `json:"summary"`
	Issues   []domain.Issue `json:"issues"`
}

type jsonMetadata struct {
	Tool         string `json:"tool"`
	Generated    string `json:"generated"`
	FilesChecked int    `json:"files_checked"`
	FilesFixed   int    `json:"files_fixed"`
	LineCount    int    `json:"line_count"`
	TotalIssues  int    `json:"total_issues"`
	IssuesFixed  int    `json:"issues_fixed"`
}

// jsonSummary is a struct rather than a map so keys keep severity order.
type jsonSummary struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
	Info     int `json:"info"`
}

func (JSONRenderer) Render(w io.Writer, r *domain.Report) error {
	counts := r.Counts()
	doc := jsonReport{
		Metadata: jsonMetadata{
			Tool:         r.Tool,
			Generated:    r.GeneratedAt.Format(time.RFC3339),
			FilesChecked: r.Stats.FilesChecked,
			FilesFixed:   r.Stats.FilesFixed,
			LineCount:    r.Stats.LineCount,
			TotalIssues:  len(r.Issues),
			IssuesFixed:  r.FixedCount(),
		},
		Summary: jsonSummary{
			Critical: counts[domain.SeverityCritical],
			High:     counts[domain.SeverityHigh],
			Medium:   counts[domain.SeverityMedium],
			Low:      counts[domain.SeverityLow],
			Info:     counts[domain.SeverityInfo],
		},
		Issues: grouped(r),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// grouped flattens the severity groups; never nil so JSON gets [].
func grouped(r *domain.Report) []domain.Issue {
	out := make([]domain.Issue, 0, len(r.Issues))
	for _, g := range r.Groups() {
		out = append(out, g.Issues...)
	}
	return out
}
