package healer

import (
	"fmt"
	"regexp"
	"strings"

	"webguard/src/model"
	"webguard/src/service/analyzer"
)

// FixStrategy is the rewrite procedure registered for one issue type.
// Apply receives the file as lines and returns the rewritten lines; it must
// not touch lines above the issue in ways that change their numbering, since
// fixes are applied bottom-up within a file.
type FixStrategy interface {
	IssueType() model.IssueType
	Apply(lines []string, issue model.Issue) ([]string, error)
}

var (
	headOpenRe  = regexp.MustCompile(`(?i)<head(\s|>)`)
	headCloseRe = regexp.MustCompile(`(?i)</head>`)
	bodyCloseRe = regexp.MustCompile(`(?i)</body>`)
)

// strategies is the closed registry. An issue type absent from this list has
// no fix and passes through analysis unchanged; adding a type means adding
// its strategy here.
func strategies() []FixStrategy {
	return []FixStrategy{
		insertStrategy{model.IssueMissingViewport, headOpenRe, false, analyzer.ViewportMeta},
		insertStrategy{model.IssueMissingCharset, headOpenRe, false, `<meta charset="UTF-8">`},
		insertStrategy{model.IssueMissingCSSLink, headCloseRe, true, ""},
		insertStrategy{model.IssueMissingJSScript, bodyCloseRe, true, ""},
		doctypeStrategy{},
		altStrategy{},
		duplicateIDStrategy{},
		varStrategy{},
		looseEqualityStrategy{},
		fixedWidthStrategy{},
		commentOutStrategy{model.IssueEvalUsage},
		commentOutStrategy{model.IssueDocumentWrite},
		commentOutStrategy{model.IssueConsoleLog},
		commentOutStrategy{model.IssueSyncXHR},
	}
}

// insertStrategy inserts a snippet relative to an anchor line: after the
// anchor, or before it when before is set. The anchor is a tag-boundary
// regex, not a substring; <head> must not be confused with <header>. The
// snippet comes from the strategy itself or, when empty, from the issue's
// fix suggestion (used by cross-file fixes whose snippet names the missing
// artifact).
type insertStrategy struct {
	issueType model.IssueType
	anchor    *regexp.Regexp
	before    bool
	snippet   string
}

func (s insertStrategy) IssueType() model.IssueType { return s.issueType }

func (s insertStrategy) Apply(lines []string, issue model.Issue) ([]string, error) {
	snippet := s.snippet
	if snippet == "" {
		snippet = issue.FixSuggestion
	}
	if snippet == "" {
		return nil, fmt.Errorf("no snippet to insert for %s", s.issueType)
	}

	for i, line := range lines {
		if !s.anchor.MatchString(line) {
			continue
		}
		indent := leadingWhitespace(line)
		at := i + 1
		if s.before {
			at = i
		} else {
			indent += "  "
		}
		return insertLine(lines, at, indent+snippet), nil
	}
	// No anchor in the document: fall back to the top so the reference
	// still exists after healing.
	return insertLine(lines, 0, snippet), nil
}

// doctypeStrategy prepends the doctype declaration
type doctypeStrategy struct{}

func (doctypeStrategy) IssueType() model.IssueType { return model.IssueMissingDoctype }

func (doctypeStrategy) Apply(lines []string, issue model.Issue) ([]string, error) {
	return insertLine(lines, 0, "<!DOCTYPE html>"), nil
}

var (
	imgTagRe     = regexp.MustCompile(`(?i)<img\b[^>]*?(/?)>`)
	imgSrcRe     = regexp.MustCompile(`(?i)src\s*=\s*["']([^"']+)["']`)
	idAttrRe     = regexp.MustCompile(`id\s*=\s*["']([^"']+)["']`)
	varDeclRe    = regexp.MustCompile(`^(\s*)var(\s+)`)
	looseEqRe    = regexp.MustCompile(`([^=!<>])==([^=])`)
	fixedWidthRe = regexp.MustCompile(`(?i)\bwidth(\s*:\s*)(\d+px)`)
)

// altStrategy adds an alt attribute to the image tag on the issue line,
// derived from the src base name when one exists
type altStrategy struct{}

func (altStrategy) IssueType() model.IssueType { return model.IssueMissingAlt }

func (altStrategy) Apply(lines []string, issue model.Issue) ([]string, error) {
	idx := issue.Line - 1
	if idx < 0 || idx >= len(lines) {
		return nil, fmt.Errorf("line %d out of range", issue.Line)
	}
	line := lines[idx]
	loc := imgTagRe.FindStringIndex(line)
	if loc == nil {
		return nil, fmt.Errorf("no img tag on line %d", issue.Line)
	}
	tag := line[loc[0]:loc[1]]

	alt := ""
	if src := imgSrcRe.FindStringSubmatch(tag); src != nil {
		name := src[1]
		if i := strings.LastIndexByte(name, '/'); i >= 0 {
			name = name[i+1:]
		}
		if i := strings.LastIndexByte(name, '.'); i > 0 {
			name = name[:i]
		}
		alt = strings.ReplaceAll(strings.ReplaceAll(name, "-", " "), "_", " ")
	}

	closer := ">"
	if strings.HasSuffix(tag, "/>") {
		closer = "/>"
	}
	fixed := strings.TrimSuffix(tag, closer)
	fixed = strings.TrimRight(fixed, " ") + fmt.Sprintf(` alt="%s"`, alt)
	if closer == "/>" {
		fixed += " /"
	}
	fixed += ">"

	lines[idx] = line[:loc[0]] + fixed + line[loc[1]:]
	return lines, nil
}

// duplicateIDStrategy makes the id on the issue line unique by suffixing the
// line number, which is stable under bottom-up application
type duplicateIDStrategy struct{}

func (duplicateIDStrategy) IssueType() model.IssueType { return model.IssueDuplicateID }

func (duplicateIDStrategy) Apply(lines []string, issue model.Issue) ([]string, error) {
	idx := issue.Line - 1
	if idx < 0 || idx >= len(lines) {
		return nil, fmt.Errorf("line %d out of range", issue.Line)
	}
	m := idAttrRe.FindStringSubmatchIndex(lines[idx])
	if m == nil {
		return nil, fmt.Errorf("no id attribute on line %d", issue.Line)
	}
	line := lines[idx]
	value := line[m[2]:m[3]]
	lines[idx] = line[:m[2]] + fmt.Sprintf("%s-%d", value, issue.Line) + line[m[3]:]
	return lines, nil
}

// varStrategy rewrites a leading var declaration to let
type varStrategy struct{}

func (varStrategy) IssueType() model.IssueType { return model.IssueVarUsage }

func (varStrategy) Apply(lines []string, issue model.Issue) ([]string, error) {
	idx := issue.Line - 1
	if idx < 0 || idx >= len(lines) {
		return nil, fmt.Errorf("line %d out of range", issue.Line)
	}
	if !varDeclRe.MatchString(lines[idx]) {
		return nil, fmt.Errorf("no var declaration on line %d", issue.Line)
	}
	lines[idx] = varDeclRe.ReplaceAllString(lines[idx], "${1}let${2}")
	return lines, nil
}

// looseEqualityStrategy upgrades the first loose equality on the line
type looseEqualityStrategy struct{}

func (looseEqualityStrategy) IssueType() model.IssueType { return model.IssueLooseEquality }

func (looseEqualityStrategy) Apply(lines []string, issue model.Issue) ([]string, error) {
	idx := issue.Line - 1
	if idx < 0 || idx >= len(lines) {
		return nil, fmt.Errorf("line %d out of range", issue.Line)
	}
	m := looseEqRe.FindStringSubmatchIndex(lines[idx])
	if m == nil {
		return nil, fmt.Errorf("no loose equality on line %d", issue.Line)
	}
	line := lines[idx]
	lines[idx] = line[:m[3]] + "===" + line[m[4]:]
	return lines, nil
}

// fixedWidthStrategy converts a fixed pixel width into a fluid width capped
// by max-width
type fixedWidthStrategy struct{}

func (fixedWidthStrategy) IssueType() model.IssueType { return model.IssueFixedWidth }

func (fixedWidthStrategy) Apply(lines []string, issue model.Issue) ([]string, error) {
	idx := issue.Line - 1
	if idx < 0 || idx >= len(lines) {
		return nil, fmt.Errorf("line %d out of range", issue.Line)
	}
	if !fixedWidthRe.MatchString(lines[idx]) {
		return nil, fmt.Errorf("no fixed width on line %d", issue.Line)
	}
	lines[idx] = replaceFirst(fixedWidthRe, lines[idx], "max-width${1}${2}; width: 100%")
	return lines, nil
}

// commentOutStrategy neutralizes a flagged statement without deleting it,
// preserving auditability of what was removed
type commentOutStrategy struct {
	issueType model.IssueType
}

func (s commentOutStrategy) IssueType() model.IssueType { return s.issueType }

func (s commentOutStrategy) Apply(lines []string, issue model.Issue) ([]string, error) {
	idx := issue.Line - 1
	if idx < 0 || idx >= len(lines) {
		return nil, fmt.Errorf("line %d out of range", issue.Line)
	}
	line := lines[idx]
	if strings.HasPrefix(strings.TrimSpace(line), "//") {
		return lines, nil // already neutralized
	}
	indent := leadingWhitespace(line)
	lines[idx] = indent + "// " + strings.TrimPrefix(line, indent)
	return lines, nil
}

func insertLine(lines []string, at int, line string) []string {
	if at < 0 {
		at = 0
	}
	if at > len(lines) {
		at = len(lines)
	}
	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:at]...)
	out = append(out, line)
	out = append(out, lines[at:]...)
	return out
}

func leadingWhitespace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}

// replaceFirst applies the template to only the first match of re
func replaceFirst(re *regexp.Regexp, s, template string) string {
	m := re.FindStringSubmatchIndex(s)
	if m == nil {
		return s
	}
	return s[:m[0]] + string(re.ExpandString(nil, template, s, m)) + s[m[1]:]
}
