package domain

import (
	"slices"
	"time"
)

const (
	ToolReview = "review"
	ToolStyle  = "style"
)

// FileResult is what processing one file contributes to a run.
type FileResult struct {
	Path      string
	Issues    []Issue
	LineCount int
	Rewritten bool
}

// Run accumulates the issues and statistics of one invocation. Each command
// creates its own Run; nothing is shared between runs.
type Run struct {
	Tool      string
	StartedAt time.Time

	issues []Issue
	stats  RunStatistics
}

// NewRun starts an empty run.
func NewRun(tool string, startedAt time.Time) *Run {
	return &Run{Tool: tool, StartedAt: startedAt}
}

// Record appends one file's issues in discovery order and bumps the counters.
func (r *Run) Record(res FileResult) {
	r.issues = append(r.issues, res.Issues...)
	r.stats.FilesChecked++
	r.stats.LineCount += res.LineCount
	if res.Rewritten {
		r.stats.FilesFixed++
	}
}

// Issues returns a copy of the recorded issues.
func (r *Run) Issues() []Issue { return slices.Clone(r.issues) }

// Stats returns the current counters.
func (r *Run) Stats() RunStatistics { return r.stats }

// Report snapshots the run for rendering.
func (r *Run) Report(generatedAt time.Time) *Report {
	return &Report{
		Tool:        r.Tool,
		GeneratedAt: generatedAt,
		Stats:       r.stats,
		Issues:      r.Issues(),
	}
}

// Report is an immutable view of a finished run.
type Report struct {
	Tool        string
	GeneratedAt time.Time
	Stats       RunStatistics
	Issues      []Issue
}

// SeverityGroup is the issues of one severity in discovery order.
type SeverityGroup struct {
	Severity Severity
	Issues   []Issue
}

// Groups returns the issues grouped by severity in report order. Severities
// without issues are omitted.
func (r *Report) Groups() []SeverityGroup {
	var groups []SeverityGroup
	for _, s := range Severities {
		var issues []Issue
		for _, i := range r.Issues {
			if i.Severity == s {
				issues = append(issues, i)
			}
		}
		if len(issues) > 0 {
			groups = append(groups, SeverityGroup{Severity: s, Issues: issues})
		}
	}
	return groups
}

// Counts returns the number of issues per severity.
func (r *Report) Counts() map[Severity]int {
	counts := make(map[Severity]int, len(Severities))
	for _, s := range Severities {
		counts[s] = 0
	}
	for _, i := range r.Issues {
		counts[i.Severity]++
	}
	return counts
}

// HasSeverity reports whether any issue has the given severity.
func (r *Report) HasSeverity(s Severity) bool {
	return slices.ContainsFunc(r.Issues, func(i Issue) bool { return i.Severity == s })
}

// Unfixed counts issues that were not fixed.
func (r *Report) Unfixed() int { return len(r.Issues) - r.FixedCount() }

// FixedCount is the number of issues marked fixed.
func (r *Report) FixedCount() int {
	n := 0
	for _, i := range r.Issues {
		if i.Fixed {
			n++
		}
	}
	return n
}
