package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func startWatch(t *testing.T, dir string, runs *atomic.Int32) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, dir, 50*time.Millisecond, quietLogger(), func(context.Context) error {
			runs.Add(1)
			return nil
		})
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("Watch returned %v", err)
			}
		case <-time.After(2 * time.Second):
			t.Error("watcher did not stop")
		}
	})
	time.Sleep(100 * time.Millisecond)
	return cancel
}

func TestWatch_BurstRunsOnce(t *testing.T) {
	dir := t.TempDir()
	var runs atomic.Int32
	startWatch(t, dir, &runs)

	for _, name := range []string{"a.md", "b.md", "c.png"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	eventually(t, 3*time.Second, 20*time.Millisecond, func() bool {
		return runs.Load() >= 1
	}, "conversion not triggered")
	time.Sleep(200 * time.Millisecond)
	if n := runs.Load(); n != 1 {
		t.Errorf("runs = %d, want 1", n)
	}
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	var runs atomic.Int32
	startWatch(t, dir, &runs)

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)
	if n := runs.Load(); n != 0 {
		t.Errorf("runs = %d, want 0", n)
	}
}

func TestWatch_NewDirectoryIsWatched(t *testing.T) {
	dir := t.TempDir()
	var runs atomic.Int32
	startWatch(t, dir, &runs)

	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	eventually(t, 3*time.Second, 20*time.Millisecond, func() bool {
		return runs.Load() >= 1
	}, "new directory not noticed")

	before := runs.Load()
	if err := os.WriteFile(filepath.Join(sub, "n.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	eventually(t, 3*time.Second, 20*time.Millisecond, func() bool {
		return runs.Load() > before
	}, "change in new directory not noticed")
}

func TestWatch_SkippedFolders(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "_drafts"), 0o755); err != nil {
		t.Fatal(err)
	}
	var runs atomic.Int32
	startWatch(t, dir, &runs)

	if err := os.WriteFile(filepath.Join(dir, "_drafts", "d.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(300 * time.Millisecond)
	if n := runs.Load(); n != 0 {
		t.Errorf("runs = %d, want 0", n)
	}
}

func TestSkipped(t *testing.T) {
	root := filepath.FromSlash("/vault")
	tests := []struct {
		path string
		want bool
	}{
		{"/vault/a.md", false},
		{"/vault/sub/a.md", false},
		{"/vault/_private/a.md", true},
		{"/vault/.obsidian/x.md", true},
		{"/vault/_drafts", false},
	}
	for _, tt := range tests {
		if got := skipped(root, filepath.FromSlash(tt.path)); got != tt.want {
			t.Errorf("skipped(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
