package util

import (
	"path/filepath"
	"strings"

	"webguard/src/config"
)

// ExclusionMatcher matches file paths against exclusion patterns
type ExclusionMatcher struct {
	filePatterns []string
	files        []string
}

// NewExclusionMatcher creates a new exclusion matcher from config
func NewExclusionMatcher(cfg config.ExclusionsConfig) *ExclusionMatcher {
	return &ExclusionMatcher{
		filePatterns: cfg.FilePatterns,
		files:        cfg.Files,
	}
}

// Matches checks if a file path should be excluded from analysis
func (m *ExclusionMatcher) Matches(filePath string) bool {
	// Check exact file matches
	for _, f := range m.files {
		if filePath == f {
			return true
		}
	}

	// Check file patterns (glob)
	for _, pattern := range m.filePatterns {
		if matched, _ := filepath.Match(pattern, filePath); matched {
			return true
		}
		// Also try matching with ** patterns
		if matchDoubleGlob(pattern, filePath) {
			return true
		}
	}

	return false
}

// matchDoubleGlob handles ** patterns in globs
func matchDoubleGlob(pattern, path string) bool {
	// Handle ** patterns by converting to a simpler check
	if strings.Contains(pattern, "**") {
		parts := strings.Split(pattern, "**")
		if len(parts) == 3 && parts[2] == "" {
			// Patterns like **/vendor/** match the segment anywhere in the path
			segment := strings.Trim(parts[1], "/")
			if segment == "" {
				return true
			}
			return strings.HasPrefix(path, segment+"/") || strings.Contains(path, "/"+segment+"/")
		}
		if len(parts) == 2 {
			prefix := strings.TrimSuffix(parts[0], "/")
			suffix := strings.TrimPrefix(parts[1], "/")

			if prefix == "" && suffix != "" {
				if strings.HasPrefix(suffix, "*.") {
					return strings.HasSuffix(path, strings.TrimPrefix(suffix, "*"))
				}
				return strings.HasSuffix(path, suffix) || strings.Contains(path, "/"+suffix)
			}
			if suffix == "" && prefix != "" {
				return strings.HasPrefix(path, prefix) || strings.Contains(path, prefix+"/")
			}
			if prefix != "" && suffix != "" {
				return strings.Contains(path, prefix) && strings.Contains(path, suffix)
			}
		}
	}
	return false
}

// MatchGlob matches a path against a glob pattern
func MatchGlob(pattern, path string) bool {
	if strings.Contains(pattern, "**") {
		return matchDoubleGlob(pattern, path)
	}
	matched, _ := filepath.Match(pattern, path)
	return matched
}
