package reporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPadding(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ab   ", padRight("ab", 5))
	assert.Equal(t, "   ab", padLeft("ab", 5))
	assert.Equal(t, "abcdef", padRight("abcdef", 3))
	assert.Equal(t, "abcdef", padLeft("abcdef", 3))
}

func TestRatio(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "-", ratio(10, 0))
	assert.Equal(t, "50%", ratio(50, 100))
	assert.Equal(t, "5%", ratio(100, 2048))
	assert.Equal(t, "100%", ratio(7, 7))
}

func TestRelPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path, workDir, want string
	}{
		{"/work/a/b.html", "/work", "a/b.html"},
		{"/other/b.html", "/work", "/other/b.html"},
		{"/work/b.html", "", "/work/b.html"},
		{"rel/b.html", "/work", "rel/b.html"},
		{"", "/work", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, relPath(tt.path, tt.workDir), "relPath(%q, %q)", tt.path, tt.workDir)
	}
}
