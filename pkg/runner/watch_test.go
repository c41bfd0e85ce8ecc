package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/textorize/pkg/runner"
)

// startWatch runs Watch in the background and returns its outcomes.
func startWatch(t *testing.T, opts runner.Options) <-chan runner.FileOutcome {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	outcomes := make(chan runner.FileOutcome, 64)
	done := make(chan error, 1)

	go func() {
		done <- runner.New(nil).Watch(ctx, opts, func(o runner.FileOutcome) { outcomes <- o })
	}()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("Watch did not stop after cancel")
		}
	})

	return outcomes
}

func nextOutcome(t *testing.T, outcomes <-chan runner.FileOutcome) runner.FileOutcome {
	t.Helper()

	select {
	case o := <-outcomes:
		return o
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a conversion")
		return runner.FileOutcome{}
	}
}

func TestWatch_ReconvertsOnChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.html": "<p>one</p>"})
	input := filepath.Join(dir, "a.html")

	outcomes := startWatch(t, runner.Options{WorkingDir: dir, Debounce: 20 * time.Millisecond})

	first := nextOutcome(t, outcomes)
	require.NoError(t, first.Error)
	assert.Equal(t, input, first.Path)
	assert.Equal(t, "\none\n", readFile(t, filepath.Join(dir, "a.txt")))

	require.NoError(t, os.WriteFile(input, []byte("<p>two</p>"), 0o644))

	second := nextOutcome(t, outcomes)
	require.NoError(t, second.Error)
	assert.True(t, second.Written)
	assert.Equal(t, "\ntwo\n", readFile(t, filepath.Join(dir, "a.txt")))
}

func TestWatch_PicksUpNewFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "docs"), 0o755))

	outcomes := startWatch(t, runner.Options{WorkingDir: dir, Debounce: 20 * time.Millisecond})

	// Give the watcher a moment to register before creating the file.
	time.Sleep(100 * time.Millisecond)
	writeTree(t, dir, map[string]string{
		"docs/new.md":   "Hello *there*\n",
		"docs/skip.css": "p{}",
	})

	got := nextOutcome(t, outcomes)
	require.NoError(t, got.Error)
	assert.Equal(t, filepath.Join(dir, "docs", "new.md"), got.Path)
	assert.Contains(t, readFile(t, filepath.Join(dir, "docs", "new.txt")), "Hello there")

	select {
	case extra := <-outcomes:
		t.Errorf("unexpected conversion of %s", extra.Path)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatch_MissingPath(t *testing.T) {
	t.Parallel()

	err := runner.New(nil).Watch(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Paths:      []string{"missing"},
	}, nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
