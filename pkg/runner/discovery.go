package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover finds input files matching opts under the given working directory.
// It returns a deterministically sorted list of absolute file paths.
// Files named explicitly in opts.Paths skip the extension filter; files
// found by walking a directory must match it.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	include, err := compileGlobs(opts.IncludeGlobs)
	if err != nil {
		return nil, err
	}
	exclude, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	w := walker{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		include:    include,
		exclude:    exclude,
		opts:       opts,
		seen:       make(map[string]struct{}),
	}
	if opts.OutputDir != "" {
		w.outputDir = absUnder(workDir, opts.OutputDir)
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := absUnder(workDir, inputPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			if err := w.walk(ctx, absPath); err != nil {
				return nil, err
			}
			continue
		}

		if !w.excluded(absPath) {
			w.add(absPath)
		}
	}

	sort.Strings(w.files)

	return w.files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// absUnder resolves p against workDir when it is relative.
func absUnder(workDir, p string) string {
	if !filepath.IsAbs(p) {
		p = filepath.Join(workDir, p)
	}
	return filepath.Clean(p)
}

// walker accumulates discovered files across all input paths.
type walker struct {
	workDir    string
	outputDir  string
	extensions []string
	include    []pathGlob
	exclude    []pathGlob
	opts       Options
	seen       map[string]struct{}
	files      []string
}

func (w *walker) add(p string) {
	if _, ok := w.seen[p]; ok {
		return
	}
	w.seen[p] = struct{}{}
	w.files = append(w.files, p)
}

// rel returns p relative to the working directory, slash separated.
func (w *walker) rel(p string) string {
	relPath, err := filepath.Rel(w.workDir, p)
	if err != nil {
		relPath = p
	}
	return filepath.ToSlash(relPath)
}

func (w *walker) excluded(p string) bool {
	return matchesAny(w.rel(p), w.exclude)
}

// walk recursively collects matching files below root.
func (w *walker) walk(ctx context.Context, root string) error {
	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if p == root {
				return nil
			}
			if strings.HasPrefix(entry.Name(), ".") || p == w.outputDir || w.excluded(p) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			return w.symlink(ctx, p)
		}

		if w.matches(p) {
			w.add(p)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}

	return nil
}

// symlink handles a symlink met during a walk. Broken links are skipped;
// directory links are followed only with FollowSymlinks.
func (w *walker) symlink(ctx context.Context, p string) error {
	realPath, err := filepath.EvalSymlinks(p)
	if err != nil {
		return nil //nolint:nilerr // broken symlinks are skipped
	}
	info, err := os.Stat(realPath)
	if err != nil {
		return nil //nolint:nilerr // inaccessible targets are skipped
	}

	if info.IsDir() {
		if !w.opts.FollowSymlinks {
			return nil
		}
		// Walk the target so WalkDir does not loop on the link itself.
		return w.walk(ctx, realPath)
	}

	if w.matches(p) {
		w.add(p)
	}
	return nil
}

// matches checks a walked file against extensions and globs.
func (w *walker) matches(p string) bool {
	if !hasMatchingExtension(p, w.extensions) {
		return false
	}

	relPath := w.rel(p)
	if matchesAny(relPath, w.exclude) {
		return false
	}
	if len(w.include) > 0 && !matchesAny(relPath, w.include) {
		return false
	}
	return true
}

// hasMatchingExtension checks if the file name ends with one of extensions.
func hasMatchingExtension(p string, extensions []string) bool {
	name := strings.ToLower(filepath.Base(p))
	for _, e := range extensions {
		if e != "" && strings.HasSuffix(name, strings.ToLower(e)) {
			return true
		}
	}
	return false
}
