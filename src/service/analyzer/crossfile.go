package analyzer

import (
	"fmt"
	"path/filepath"
	"strings"

	"webguard/src/model"
)

// crossFilePass checks that every artifact of a rule's referenced kind is
// actually referenced from every artifact of the referencing kind present in
// the same file set. Missing references are reported at line 1 of the
// referencing file with the exact snippet to insert.
func (a *Analyzer) crossFilePass(files map[string]string) []model.Issue {
	byLanguage := map[model.Language][]string{}
	for _, path := range sortedPaths(files) {
		if a.exclusions.Matches(path) {
			continue
		}
		lang := model.LanguageForPath(path)
		byLanguage[lang] = append(byLanguage[lang], path)
	}

	var issues []model.Issue
	for _, rule := range a.catalog.CrossFileRules() {
		for _, referenced := range byLanguage[rule.Referenced] {
			base := filepath.Base(referenced)
			for _, referencing := range byLanguage[rule.Referencing] {
				if strings.Contains(files[referencing], base) {
					continue
				}
				issues = append(issues, model.Issue{
					ID:            model.IssueID(referencing, rule.ID+"|"+referenced, rule.IssueType, 1, 1),
					FilePath:      referencing,
					Line:          1,
					Column:        1,
					IssueType:     rule.IssueType,
					Severity:      rule.Severity,
					Message:       fmt.Sprintf("%s: %s is never referenced", rule.Description, referenced),
					FixSuggestion: rule.Snippet(referenced),
					PatternID:     rule.ID,
				})
			}
		}
	}
	return issues
}
