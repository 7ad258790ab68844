// Package review applies the rule catalog to file content.
package review

import (
	"fmt"

	"github.com/abdidvp/reviewkit/internal/domain"
	"github.com/abdidvp/reviewkit/internal/domain/rules"
)

const duplicateRuleID = "duplicate-block"

// Engine analyzes files against the enabled review categories. It holds no
// per-file state and is safe for concurrent use.
type Engine struct {
	cfg domain.Config
}

// NewEngine returns an engine bound to a resolved configuration.
func NewEngine(cfg domain.Config) *Engine {
	return &Engine{cfg: cfg}
}

// Analyze runs the enabled categories in review order and returns the issues
// in rule-application order, then match order. Rules the configured
// threshold does not admit are skipped.
func (e *Engine) Analyze(file domain.FileRecord) []domain.Issue {
	rs := rules.ForPath(file.Path)
	var issues []domain.Issue
	for _, cat := range domain.ReviewCategories {
		if !e.cfg.IsEnabled(cat) {
			continue
		}
		for _, r := range rs.Rules(cat) {
			if !e.cfg.Admits(r.Severity) {
				continue
			}
			issues = append(issues, r.Apply(file, e.cfg)...)
		}
		if cat == domain.CategoryQuality {
			issues = append(issues, e.duplicates(file)...)
		}
	}
	return issues
}

func (e *Engine) duplicates(file domain.FileRecord) []domain.Issue {
	if !e.cfg.Admits(domain.SeverityLow) {
		return nil
	}
	dup, ok := FindDuplicateBlock(file.Lines)
	if !ok {
		return nil
	}
	return []domain.Issue{{
		Severity:       domain.SeverityLow,
		Category:       domain.CategoryQuality,
		Rule:           duplicateRuleID,
		File:           file.Path,
		Line:           dup.Line,
		Column:         0,
		Message:        fmt.Sprintf("Duplicate code block detected (first seen at line %d)", dup.FirstSeen),
		Recommendation: "Extract duplicate code into a reusable function",
		CodeSnippet:    rules.Snippet(file.Lines, dup.Line),
	}}
}
