package analyzer

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"webguard/src/model"
)

// validateScriptSyntax parses script content with the language's own parser.
// On failure it returns exactly one critical issue at the reported location;
// a nil return means the file parsed cleanly.
func validateScriptSyntax(path, content string) *model.Issue {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, []byte(content))
	if err != nil {
		return syntaxIssue(path, 1, 1, err.Error())
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return nil
	}

	node := firstErrorNode(root)
	if node == nil {
		node = root
	}

	line := int(node.StartPoint().Row) + 1
	col := int(node.StartPoint().Column) + 1

	var diag string
	if node.IsMissing() {
		diag = fmt.Sprintf("missing %s", node.Type())
	} else {
		diag = fmt.Sprintf("unexpected %q", snippet(node.Content([]byte(content))))
	}
	return syntaxIssue(path, line, col, diag)
}

// ScriptParses reports whether content parses cleanly as a script. The
// healer uses it to reject rewrites that would introduce a parse error.
func ScriptParses(content string) bool {
	return validateScriptSyntax("", content) == nil
}

func syntaxIssue(path string, line, col int, diag string) *model.Issue {
	return &model.Issue{
		ID:        model.IssueID(path, "", model.IssueSyntaxError, line, col),
		FilePath:  path,
		Line:      line,
		Column:    col,
		IssueType: model.IssueSyntaxError,
		Severity:  model.SeverityCritical,
		Message:   fmt.Sprintf("Script failed to parse: %s", diag),
	}
}

// firstErrorNode walks the tree in document order and returns the first
// ERROR or missing node. HasError prunes clean subtrees.
func firstErrorNode(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child == nil || !child.HasError() {
			continue
		}
		if found := firstErrorNode(child); found != nil {
			return found
		}
	}
	return nil
}

func snippet(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	if len(s) > 40 {
		s = s[:40] + "..."
	}
	return s
}
