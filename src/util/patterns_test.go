package util

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"webguard/src/config"
)

func TestExclusionMatcher(t *testing.T) {
	m := NewExclusionMatcher(config.ExclusionsConfig{
		FilePatterns: []string{"**/node_modules/**", "**/*.min.js", "build/*"},
		Files:        []string{"legacy.html"},
	})

	assert.True(t, m.Matches("legacy.html"))
	assert.True(t, m.Matches("node_modules/react/index.js"))
	assert.True(t, m.Matches("app/node_modules/lib/a.js"))
	assert.True(t, m.Matches("bundle.min.js"))
	assert.True(t, m.Matches("dist/vendor.min.js"))
	assert.True(t, m.Matches("build/out.js"))

	assert.False(t, m.Matches("index.html"))
	assert.False(t, m.Matches("src/app.js"))
	assert.False(t, m.Matches("minjs/app.js"))
}

func TestMatchGlob(t *testing.T) {
	assert.True(t, MatchGlob("*.css", "main.css"))
	assert.False(t, MatchGlob("*.css", "css/main.css"))
	assert.True(t, MatchGlob("**/dist/**", "pkg/dist/app.js"))
}

func TestLineColAt(t *testing.T) {
	content := "first\nsecond\nthird"

	line, col := LineColAt(content, 0)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)

	// Offset of "second"
	line, col = LineColAt(content, 6)
	assert.Equal(t, 2, line)
	assert.Equal(t, 1, col)

	// Offset of "d" in "third"
	line, col = LineColAt(content, len(content)-1)
	assert.Equal(t, 3, line)
	assert.Equal(t, 5, col)

	// Past-the-end offsets clamp instead of panicking
	line, col = LineColAt(content, 999)
	assert.Equal(t, 3, line)
	assert.Equal(t, 6, col)
}
