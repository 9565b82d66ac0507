package catalog

import (
	"fmt"

	"webguard/src/model"
)

// crossFileRules describes which artifacts must reference which others.
// The reference is detected by the referenced file's base name appearing in
// the referencing file's content.
func crossFileRules() []model.CrossFileRule {
	return []model.CrossFileRule{
		{
			ID:          "xf-css-link",
			Referencing: model.LanguageMarkup,
			Referenced:  model.LanguageStyle,
			IssueType:   model.IssueMissingCSSLink,
			Severity:    model.SeverityMajor,
			Description: "Markup file does not link a stylesheet produced in the same set",
			Snippet: func(relPath string) string {
				return fmt.Sprintf(`<link rel="stylesheet" href="%s">`, relPath)
			},
		},
		{
			ID:          "xf-js-script",
			Referencing: model.LanguageMarkup,
			Referenced:  model.LanguageScript,
			IssueType:   model.IssueMissingJSScript,
			Severity:    model.SeverityMajor,
			Description: "Markup file does not include a script produced in the same set",
			Snippet: func(relPath string) string {
				return fmt.Sprintf(`<script src="%s"></script>`, relPath)
			},
		},
	}
}
