package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sloptastic/internal/logging"
)

func TestFileFiresAfterWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "draft.txt")
	require.NoError(t, os.WriteFile(path, []byte("first"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan string, 4)
	done := make(chan error, 1)
	go func() {
		done <- File(ctx, path, 50*time.Millisecond, func(p string) { changed <- p }, logging.Discard())
	}()

	// Give the watcher time to register before writing.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()

	var got string
wait:
	for {
		select {
		case got = <-changed:
			break wait
		case <-tick.C:
			require.NoError(t, os.WriteFile(path, []byte("second"), 0o644))
		case <-deadline:
			t.Fatal("no change notification")
		}
	}

	abs, err := filepath.Abs(path)
	require.NoError(t, err)
	assert.Equal(t, abs, got)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestFileIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "draft.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	ctx, cancel := context.WithTimeout(context.Background(), 600*time.Millisecond)
	defer cancel()

	fired := make(chan string, 1)
	go func() {
		time.Sleep(150 * time.Millisecond)
		_ = os.WriteFile(filepath.Join(dir, "other.txt"), []byte("y"), 0o644)
	}()

	require.NoError(t, File(ctx, path, 20*time.Millisecond, func(p string) { fired <- p }, logging.Discard()))
	select {
	case p := <-fired:
		t.Fatalf("unexpected notification for %s", p)
	default:
	}
}

func TestFileRejectsMissingAndDirectories(t *testing.T) {
	ctx := context.Background()
	assert.Error(t, File(ctx, filepath.Join(t.TempDir(), "missing.txt"), time.Millisecond, func(string) {}, logging.Discard()))
	assert.Error(t, File(ctx, t.TempDir(), time.Millisecond, func(string) {}, logging.Discard()))
}
