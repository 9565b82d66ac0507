package util

import "strings"

// LineColAt converts a byte offset into 1-based line and column numbers
func LineColAt(content string, offset int) (line, col int) {
	if offset > len(content) {
		offset = len(content)
	}
	prefix := content[:offset]
	line = strings.Count(prefix, "\n") + 1
	if idx := strings.LastIndexByte(prefix, '\n'); idx >= 0 {
		col = offset - idx
	} else {
		col = offset + 1
	}
	return line, col
}
