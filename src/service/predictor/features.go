package predictor

import (
	"regexp"
	"strings"

	"webguard/src/model"
)

// Features are the numeric and boolean code-health signals extracted from a
// file set and the issues already found in it. Extraction is deterministic;
// missing signals default to zero or false.
type Features struct {
	AvgComplexity     float64
	NestedLoops       int
	Frameworks        int
	Libraries         int
	UnvalidatedInputs int
	InlineHandlers    int
	FixedWidths       int
	DangerousSinks    int
	ViewportPresent   bool
	FocusStylePresent bool
	ImagesMissingAlt  int
	HoverOnlyStyles   int
}

var (
	functionRe   = regexp.MustCompile(`\bfunction\b|=>`)
	branchRe     = regexp.MustCompile(`\b(if|for|while|switch|case|catch)\b|&&|\|\|`)
	loopRe       = regexp.MustCompile(`\b(for|while)\s*\(`)
	inputTagRe   = regexp.MustCompile(`(?i)<input\b[^>]*>`)
	validationRe = regexp.MustCompile(`(?i)\b(required|pattern|maxlength|minlength|min|max)\b`)

	frameworkSignatures = []string{"react", "vue", "angular", "jquery", "svelte"}
	librarySignatures   = []string{"lodash", "axios", "moment", "d3", "chart.js", "underscore"}
)

// ExtractFeatures derives the signal set from files and prior issues
func ExtractFeatures(files map[string]string, issues []model.Issue) Features {
	f := Features{}

	var (
		functions int
		branches  int
		hasMarkup bool
		hasStyle  bool
	)

	for path, content := range files {
		switch model.LanguageForPath(path) {
		case model.LanguageScript:
			functions += len(functionRe.FindAllString(content, -1))
			branches += len(branchRe.FindAllString(content, -1))
			f.NestedLoops += countNestedLoops(content)
		case model.LanguageMarkup:
			hasMarkup = true
			for _, tag := range inputTagRe.FindAllString(content, -1) {
				if !validationRe.MatchString(tag) {
					f.UnvalidatedInputs++
				}
			}
		case model.LanguageStyle:
			hasStyle = true
		}
	}

	f.Frameworks = countSignatures(files, frameworkSignatures)
	f.Libraries = countSignatures(files, librarySignatures)

	if functions == 0 && branches > 0 {
		functions = 1
	}
	if functions > 0 {
		f.AvgComplexity = float64(branches) / float64(functions)
	}

	missingViewport := false
	missingFocus := false
	for _, issue := range issues {
		switch issue.IssueType {
		case model.IssueInlineEventHandler:
			f.InlineHandlers++
		case model.IssueFixedWidth:
			f.FixedWidths++
		case model.IssueMissingAlt:
			f.ImagesMissingAlt++
		case model.IssueHoverWithoutFocus:
			f.HoverOnlyStyles++
		case model.IssueEvalUsage, model.IssueInnerHTMLAssign:
			f.DangerousSinks++
		case model.IssueMissingViewport:
			missingViewport = true
		case model.IssueMissingFocusVisible:
			missingFocus = true
		}
	}
	// Vacuously present when the file set has no markup or styles to check
	f.ViewportPresent = !hasMarkup || !missingViewport
	f.FocusStylePresent = !hasStyle || !missingFocus

	return f
}

// countNestedLoops counts loop constructs that begin while control is
// already inside another loop's body, tracked by brace depth
func countNestedLoops(content string) int {
	loopIdx := loopRe.FindAllStringIndex(content, -1)
	li := 0
	nested := 0
	loopDepth := 0
	pendingLoop := false
	var stack []bool // brace frames, true when opened by a loop

	for i := 0; i < len(content); i++ {
		if li < len(loopIdx) && i == loopIdx[li][0] {
			if loopDepth > 0 {
				nested++
			}
			pendingLoop = true
			li++
		}
		switch content[i] {
		case '{':
			stack = append(stack, pendingLoop)
			if pendingLoop {
				loopDepth++
			}
			pendingLoop = false
		case '}':
			if n := len(stack); n > 0 {
				if stack[n-1] {
					loopDepth--
				}
				stack = stack[:n-1]
			}
		}
	}
	return nested
}

func countSignatures(files map[string]string, signatures []string) int {
	found := 0
	for _, sig := range signatures {
		for _, content := range files {
			if strings.Contains(strings.ToLower(content), sig) {
				found++
				break
			}
		}
	}
	return found
}
