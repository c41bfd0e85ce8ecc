package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yaklabco/textorize/pkg/fsutil"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads content and metadata", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "page.html")
		content := []byte("<p>hello</p>")
		if err := os.WriteFile(path, content, 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		got, info, err := fsutil.ReadFile(context.Background(), path, 0)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if string(got) != string(content) {
			t.Errorf("content = %q, want %q", got, content)
		}
		if info.Path != path || info.Size != int64(len(content)) {
			t.Errorf("info = %+v", info)
		}
		if info.Mode.Perm() != 0o600 {
			t.Errorf("mode = %v, want 0600", info.Mode.Perm())
		}
	})

	tests := []struct {
		name    string
		setup   func(t *testing.T, dir string) string
		maxSize int64
		wantErr error
	}{
		{
			name:    "missing file",
			setup:   func(_ *testing.T, dir string) string { return filepath.Join(dir, "missing.html") },
			wantErr: fsutil.ErrNotFound,
		},
		{
			name:    "directory",
			setup:   func(_ *testing.T, dir string) string { return dir },
			wantErr: fsutil.ErrIsDirectory,
		},
		{
			name: "over size limit",
			setup: func(t *testing.T, dir string) string {
				t.Helper()
				path := filepath.Join(dir, "big.html")
				if err := os.WriteFile(path, make([]byte, 128), 0o644); err != nil {
					t.Fatalf("setup: %v", err)
				}
				return path
			},
			maxSize: 64,
			wantErr: fsutil.ErrTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := tt.setup(t, t.TempDir())
			_, _, err := fsutil.ReadFile(context.Background(), path, tt.maxSize)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ReadFile() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, _, err := fsutil.ReadFile(ctx, "irrelevant", 0)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("ReadFile() error = %v, want context.Canceled", err)
		}
	})
}

func TestCheckModified(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("nil info", func(t *testing.T) {
		t.Parallel()

		if _, err := fsutil.CheckModified(ctx, nil); !errors.Is(err, fsutil.ErrNilFileInfo) {
			t.Errorf("CheckModified(nil) error = %v, want ErrNilFileInfo", err)
		}
	})

	t.Run("touch without change", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.html")
		if err := os.WriteFile(path, []byte("same"), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}
		_, info, err := fsutil.ReadFile(ctx, path, 0)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}

		later := time.Now().Add(time.Minute)
		if err := os.Chtimes(path, later, later); err != nil {
			t.Fatalf("chtimes: %v", err)
		}

		modified, err := fsutil.CheckModified(ctx, info)
		if err != nil {
			t.Fatalf("CheckModified() error = %v", err)
		}
		if modified {
			t.Error("CheckModified() = true for unchanged content")
		}
	})

	t.Run("content changed", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.html")
		if err := os.WriteFile(path, []byte("aaaa"), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}
		_, info, err := fsutil.ReadFile(ctx, path, 0)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if err := os.WriteFile(path, []byte("bbbb"), 0o644); err != nil {
			t.Fatalf("rewrite: %v", err)
		}

		modified, err := fsutil.CheckModified(ctx, info)
		if err != nil {
			t.Fatalf("CheckModified() error = %v", err)
		}
		if !modified {
			t.Error("CheckModified() = false for changed content")
		}
	})

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.html")
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}
		_, info, err := fsutil.ReadFile(ctx, path, 0)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if err := os.Remove(path); err != nil {
			t.Fatalf("remove: %v", err)
		}

		modified, err := fsutil.CheckModified(ctx, info)
		if err != nil || !modified {
			t.Errorf("CheckModified() = %v, %v; want true, nil", modified, err)
		}
	})
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		outDir string
		ext    string
		want   string
	}{
		{name: "sibling", input: "docs/page.html", ext: ".txt", want: "docs/page.txt"},
		{name: "default extension", input: "page.md", want: "page.txt"},
		{name: "extension without dot", input: "page.htm", ext: "text", want: "page.text"},
		{name: "no input extension", input: "README", want: "README.txt"},
		{name: "relative into out dir", input: "docs/page.html", outDir: "out", want: filepath.Join("out", "docs", "page.txt")},
		{name: "absolute into out dir", input: "/srv/www/page.html", outDir: "out", want: filepath.Join("out", "page.txt")},
		{name: "parent into out dir", input: "../page.html", outDir: "out", want: filepath.Join("out", "page.txt")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := fsutil.OutputPath(tt.input, tt.outDir, tt.ext); got != tt.want {
				t.Errorf("OutputPath(%q, %q, %q) = %q, want %q", tt.input, tt.outDir, tt.ext, got, tt.want)
			}
		})
	}
}
