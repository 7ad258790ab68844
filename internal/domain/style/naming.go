package style

import (
	"fmt"

	"github.com/abdidvp/reviewkit/internal/domain"
	"github.com/abdidvp/reviewkit/internal/domain/rules"
)

const ruleNaming = "naming"

// CheckNaming reports identifiers that break the rule set's naming
// conventions, each with a converted suggestion. Content is never modified.
func CheckNaming(file domain.FileRecord, rs rules.LanguageRuleSet) []domain.Issue {
	var issues []domain.Issue
	for _, nr := range rs.Style().Naming {
		for _, loc := range nr.Pattern.FindAllStringSubmatchIndex(file.Content, -1) {
			if len(loc) < 4 || loc[2] < 0 {
				continue
			}
			name := file.Content[loc[2]:loc[3]]
			suggestion := Convert(name, nr.Convention)
			if suggestion == "" {
				continue
			}
			line, col := rules.Locate(file.Content, loc[0])
			issues = append(issues, domain.Issue{
				Severity:       domain.SeverityLow,
				Category:       domain.CategoryStyle,
				Rule:           ruleNaming,
				File:           file.Path,
				Line:           line,
				Column:         col,
				Message:        fmt.Sprintf("%s '%s' should be %s", nr.Kind, name, nr.Convention),
				Recommendation: fmt.Sprintf("Rename to %s", suggestion),
				CodeSnippet:    rules.Snippet(file.Lines, line),
				Suggestion:     suggestion,
			})
		}
	}
	return issues
}
