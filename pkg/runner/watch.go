package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/textorize/internal/logging"
	"github.com/yaklabco/textorize/pkg/fsutil"
)

// Watch converts the files selected by opts, then converts them again each
// time they change until ctx is cancelled. Every outcome, including those
// of the initial pass, is passed to onResult from a single goroutine.
// Files created later below a watched directory are picked up when they
// match the extension and glob filters.
func (r *Runner) Watch(ctx context.Context, opts Options, onResult func(FileOutcome)) error {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return fmt.Errorf("resolve working directory: %w", err)
	}
	opts.WorkingDir = workDir

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	ws := &watchState{
		runner:   r,
		opts:     opts,
		watcher:  watcher,
		logger:   logging.FromContext(ctx),
		onResult: onResult,
		debounce: opts.effectiveDebounce(),
		files:    make(map[string]*fsutil.FileInfo),
		explicit: make(map[string]struct{}),
		outputs:  make(map[string]struct{}),
		timers:   make(map[string]*time.Timer),
		ready:    make(chan string),
		walker: walker{
			workDir:    workDir,
			extensions: opts.effectiveExtensions(),
			opts:       opts,
			seen:       make(map[string]struct{}),
		},
	}
	if opts.OutputDir != "" {
		ws.walker.outputDir = absUnder(workDir, opts.OutputDir)
	}
	defer ws.stopTimers()

	if err := ws.addPaths(ctx); err != nil {
		return err
	}

	files, err := Discover(ctx, opts)
	if err != nil {
		return err
	}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil //nolint:nilerr // cancellation ends the watch
		}
		ws.convert(ctx, path)
	}

	ws.logger.Info("watching for changes", logging.FieldFiles, len(files), logging.FieldDebounce, ws.debounce)

	return ws.loop(ctx)
}

// watchState is owned by the goroutine running Watch.
type watchState struct {
	runner   *Runner
	opts     Options
	watcher  *fsnotify.Watcher
	logger   *log.Logger
	onResult func(FileOutcome)
	debounce time.Duration

	walker   walker
	roots    []string
	files    map[string]*fsutil.FileInfo
	explicit map[string]struct{}
	outputs  map[string]struct{}
	timers   map[string]*time.Timer
	ready    chan string
}

// addPaths registers every input directory tree and the parent directory
// of every explicit file with the watcher.
func (ws *watchState) addPaths(ctx context.Context) error {
	for _, p := range ws.opts.effectivePaths() {
		absPath := absUnder(ws.walker.workDir, p)

		info, err := os.Stat(absPath)
		if err != nil {
			return fmt.Errorf("stat %s: %w", p, err)
		}

		if !info.IsDir() {
			ws.explicit[absPath] = struct{}{}
			if err := ws.watcher.Add(filepath.Dir(absPath)); err != nil {
				return fmt.Errorf("watch %s: %w", filepath.Dir(absPath), err)
			}
			continue
		}

		ws.roots = append(ws.roots, absPath)
		if err := ws.addTree(ctx, absPath); err != nil {
			return err
		}
	}
	return nil
}

// addTree watches root and all its non-hidden, non-excluded subdirectories.
func (ws *watchState) addTree(ctx context.Context, root string) error {
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
		if !entry.IsDir() {
			return nil
		}
		if p != root && ws.skipDir(p) {
			return filepath.SkipDir
		}
		if err := ws.watcher.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch directory %s: %w", root, err)
	}
	return nil
}

func (ws *watchState) skipDir(p string) bool {
	return strings.HasPrefix(filepath.Base(p), ".") || p == ws.walker.outputDir || ws.walker.excluded(p)
}

// wants reports whether a changed path should be converted.
func (ws *watchState) wants(p string) bool {
	if _, ok := ws.outputs[p]; ok {
		return false
	}
	if _, ok := ws.explicit[p]; ok {
		return true
	}
	if strings.HasPrefix(filepath.Base(p), ".") || !ws.underRoot(p) {
		return false
	}
	return ws.walker.matches(p)
}

func (ws *watchState) underRoot(p string) bool {
	for _, root := range ws.roots {
		if rel, err := filepath.Rel(root, p); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (ws *watchState) loop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-ws.watcher.Events:
			if !ok {
				return nil
			}
			ws.handle(ctx, event)

		case err, ok := <-ws.watcher.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				ws.logger.Warn("watch events dropped; some changes may be missed")
				continue
			}
			ws.logger.Warn("watch error", logging.FieldError, err)

		case path := <-ws.ready:
			delete(ws.timers, path)
			ws.convertIfModified(ctx, path)
		}
	}
}

func (ws *watchState) handle(ctx context.Context, event fsnotify.Event) {
	path := filepath.Clean(event.Name)

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		delete(ws.files, path)
		return
	case !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create):
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if ws.underRoot(path) && !ws.skipDir(path) {
				if err := ws.addTree(ctx, path); err != nil {
					ws.logger.Warn("watch new directory", logging.FieldPath, path, logging.FieldError, err)
				}
			}
			return
		}
	}

	if ws.wants(path) {
		ws.schedule(ctx, path)
	}
}

// schedule converts path once no event for it arrived for the debounce interval.
func (ws *watchState) schedule(ctx context.Context, path string) {
	if timer, ok := ws.timers[path]; ok {
		timer.Reset(ws.debounce)
		return
	}
	ws.timers[path] = time.AfterFunc(ws.debounce, func() {
		select {
		case ws.ready <- path:
		case <-ctx.Done():
		}
	})
}

func (ws *watchState) stopTimers() {
	for _, timer := range ws.timers {
		timer.Stop()
	}
}

// convertIfModified skips paths whose content did not change since the
// last conversion, such as a save without edits.
func (ws *watchState) convertIfModified(ctx context.Context, path string) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		delete(ws.files, path)
		return
	}

	if info, ok := ws.files[path]; ok {
		changed, err := fsutil.CheckModified(ctx, info)
		if err == nil && !changed {
			return
		}
	}

	ws.convert(ctx, path)
}

func (ws *watchState) convert(ctx context.Context, path string) {
	outcome := ws.runner.ProcessFile(ctx, path, ws.opts)
	if outcome.Info != nil {
		ws.files[path] = outcome.Info
	}
	if outcome.OutputPath != "" {
		ws.outputs[outcome.OutputPath] = struct{}{}
	}
	if ws.onResult != nil {
		ws.onResult(outcome)
	}
}
