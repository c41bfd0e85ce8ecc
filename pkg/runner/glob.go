package runner

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
)

// ErrInvalidGlob is returned by Discover for patterns that do not compile.
var ErrInvalidGlob = errors.New("invalid glob pattern")

// pathGlob is a compiled include or exclude pattern. Each slash separated
// segment is matched on its own; a nil segment stands for "**" and spans
// any number of path segments. A pattern without a slash is matched against
// every segment, so "drafts" or "*.tmp.html" apply at any depth.
type pathGlob struct {
	anyDepth bool
	segments []glob.Glob
}

// ValidateGlob reports whether pattern compiles as an include or exclude
// pattern.
func ValidateGlob(pattern string) error {
	_, _, err := compileGlob(pattern)
	return err
}

func compileGlobs(patterns []string) ([]pathGlob, error) {
	globs := make([]pathGlob, 0, len(patterns))
	for _, pattern := range patterns {
		g, ok, err := compileGlob(pattern)
		if err != nil {
			return nil, err
		}
		if ok {
			globs = append(globs, g)
		}
	}
	return globs, nil
}

// compileGlob compiles pattern. ok is false for empty patterns.
func compileGlob(pattern string) (_ pathGlob, ok bool, _ error) {
	pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
	pattern = strings.TrimSuffix(pattern, "/")
	if pattern == "" {
		return pathGlob{}, false, nil
	}

	parts := strings.Split(pattern, "/")
	g := pathGlob{
		anyDepth: len(parts) == 1,
		segments: make([]glob.Glob, len(parts)),
	}
	for i, part := range parts {
		if part == "**" {
			continue
		}
		compiled, err := glob.Compile(part)
		if err != nil {
			return pathGlob{}, false, fmt.Errorf("%w %q: %w", ErrInvalidGlob, pattern, err)
		}
		g.segments[i] = compiled
	}
	return g, true, nil
}

// match reports whether the slash separated relPath matches.
func (g pathGlob) match(relPath string) bool {
	segments := strings.Split(relPath, "/")

	if g.anyDepth {
		if g.segments[0] == nil {
			return true
		}
		for _, seg := range segments {
			if g.segments[0].Match(seg) {
				return true
			}
		}
		return false
	}

	return matchSegments(g.segments, segments)
}

func matchSegments(pattern []glob.Glob, segments []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == nil {
			rest := pattern[1:]
			for i := 0; i <= len(segments); i++ {
				if matchSegments(rest, segments[i:]) {
					return true
				}
			}
			return false
		}

		if len(segments) == 0 || !pattern[0].Match(segments[0]) {
			return false
		}
		pattern, segments = pattern[1:], segments[1:]
	}

	// A directory pattern also covers everything below it.
	return true
}

// matchesAny reports whether relPath matches any of globs.
func matchesAny(relPath string, globs []pathGlob) bool {
	for _, g := range globs {
		if g.match(relPath) {
			return true
		}
	}
	return false
}
