package analyzer

import (
	"strings"

	"webguard/src/model"
)

// scrubComments blanks out commented regions so patterns do not fire on
// neutralized code (comment-out fixes would otherwise never converge).
// Replaced characters become spaces, so byte offsets and line numbers in
// the scrubbed text match the original exactly.
func scrubComments(content string, lang model.Language) string {
	switch lang {
	case model.LanguageScript:
		return scrubScript(content)
	case model.LanguageStyle:
		return scrubDelimited(content, "/*", "*/")
	case model.LanguageMarkup:
		return scrubDelimited(content, "<!--", "-->")
	default:
		return content
	}
}

const (
	stateCode = iota
	stateLineComment
	stateBlockComment
	stateSingleQuote
	stateDoubleQuote
	stateTemplate
)

// scrubScript blanks // and /* */ comments while leaving string and
// template literals untouched, so comment markers inside strings (URLs,
// for one) do not truncate the line
func scrubScript(content string) string {
	out := []byte(content)
	state := stateCode

	for i := 0; i < len(out); i++ {
		c := out[i]
		switch state {
		case stateCode:
			switch {
			case c == '/' && i+1 < len(out) && out[i+1] == '/':
				state = stateLineComment
				out[i] = ' '
			case c == '/' && i+1 < len(out) && out[i+1] == '*':
				state = stateBlockComment
				out[i] = ' '
			case c == '\'':
				state = stateSingleQuote
			case c == '"':
				state = stateDoubleQuote
			case c == '`':
				state = stateTemplate
			}
		case stateLineComment:
			if c == '\n' {
				state = stateCode
			} else {
				out[i] = ' '
			}
		case stateBlockComment:
			if c == '*' && i+1 < len(out) && out[i+1] == '/' {
				out[i] = ' '
				out[i+1] = ' '
				i++
				state = stateCode
			} else if c != '\n' {
				out[i] = ' '
			}
		case stateSingleQuote:
			if c == '\\' {
				i++
			} else if c == '\'' || c == '\n' {
				state = stateCode
			}
		case stateDoubleQuote:
			if c == '\\' {
				i++
			} else if c == '"' || c == '\n' {
				state = stateCode
			}
		case stateTemplate:
			if c == '\\' {
				i++
			} else if c == '`' {
				state = stateCode
			}
		}
	}
	return string(out)
}

// scrubDelimited blanks everything between open and close markers
func scrubDelimited(content, open, close string) string {
	var sb strings.Builder
	sb.Grow(len(content))
	rest := content
	for {
		start := strings.Index(rest, open)
		if start < 0 {
			sb.WriteString(rest)
			return sb.String()
		}
		end := strings.Index(rest[start+len(open):], close)
		if end < 0 {
			sb.WriteString(rest[:start])
			sb.WriteString(blank(rest[start:]))
			return sb.String()
		}
		stop := start + len(open) + end + len(close)
		sb.WriteString(rest[:start])
		sb.WriteString(blank(rest[start:stop]))
		rest = rest[stop:]
	}
}

func blank(s string) string {
	out := []byte(s)
	for i, c := range out {
		if c != '\n' {
			out[i] = ' '
		}
	}
	return string(out)
}
