package analyzer

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"webguard/src/model"
	"webguard/src/util"
)

// ViewportMeta is the snippet inserted when a responsive viewport
// declaration is missing
const ViewportMeta = `<meta name="viewport" content="width=device-width, initial-scale=1.0">`

// markupStructuralPass runs the markup checks that plain patterns cannot
// express: duplicate id declarations, images without accessible text, and
// absence of a responsive viewport declaration. The tokenizer's raw output
// is accumulated so every finding carries a real line/column.
func (a *Analyzer) markupStructuralPass(path, content string) []model.Issue {
	type idOccurrence struct {
		value  string
		offset int
	}

	var (
		ids             []idOccurrence
		imgsMissingAlt  []int
		viewportPresent bool
	)

	z := html.NewTokenizer(strings.NewReader(content))
	offset := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		tokenStart := offset
		offset += len(z.Raw())

		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}

		name, hasAttr := z.TagName()
		tag := string(name)

		var (
			attrs   = map[string]string{}
			hasMore = hasAttr
		)
		for hasMore {
			key, val, more := z.TagAttr()
			attrs[string(key)] = string(val)
			hasMore = more
		}

		if id, ok := attrs["id"]; ok && id != "" {
			ids = append(ids, idOccurrence{value: id, offset: tokenStart})
		}

		switch tag {
		case "img":
			if _, ok := attrs["alt"]; !ok {
				imgsMissingAlt = append(imgsMissingAlt, tokenStart)
			}
		case "meta":
			if strings.EqualFold(attrs["name"], "viewport") {
				viewportPresent = true
			}
		}
	}

	var issues []model.Issue

	// Duplicate identifiers: one issue per occurrence of a repeated value
	counts := map[string]int{}
	for _, occ := range ids {
		counts[occ.value]++
	}
	for _, occ := range ids {
		if counts[occ.value] < 2 {
			continue
		}
		line, col := util.LineColAt(content, occ.offset)
		issues = append(issues, model.Issue{
			ID:            model.IssueID(path, "", model.IssueDuplicateID, line, col),
			FilePath:      path,
			Line:          line,
			Column:        col,
			IssueType:     model.IssueDuplicateID,
			Severity:      model.SeverityCritical,
			Message:       fmt.Sprintf("Duplicate id %q is declared %d times", occ.value, counts[occ.value]),
			FixSuggestion: "Rename to a unique id",
		})
	}

	for _, imgOffset := range imgsMissingAlt {
		line, col := util.LineColAt(content, imgOffset)
		issues = append(issues, model.Issue{
			ID:            model.IssueID(path, "", model.IssueMissingAlt, line, col),
			FilePath:      path,
			Line:          line,
			Column:        col,
			IssueType:     model.IssueMissingAlt,
			Severity:      model.SeverityMajor,
			Message:       "Image element has no alt attribute",
			FixSuggestion: `Add alt="" with a description of the image`,
		})
	}

	if !viewportPresent && strings.TrimSpace(content) != "" {
		issues = append(issues, model.Issue{
			ID:            model.IssueID(path, "", model.IssueMissingViewport, 1, 1),
			FilePath:      path,
			Line:          1,
			Column:        1,
			IssueType:     model.IssueMissingViewport,
			Severity:      model.SeverityMajor,
			Message:       "Document has no responsive viewport declaration",
			FixSuggestion: ViewportMeta,
		})
	}

	return issues
}
