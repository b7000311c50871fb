package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeDeck(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDeckWatcher_ReloadOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "talk.md")
	writeDeck(t, path, "# One\n")

	w, err := New(path, 20*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	assert.True(t, w.IsWatching())

	writeDeck(t, path, "# One\n\n---\n\n# Two\n")

	select {
	case d := <-w.Updates():
		assert.Equal(t, 2, d.SlideCount())
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	stats := w.GetStats()
	assert.GreaterOrEqual(t, stats.Events, 1)
	assert.GreaterOrEqual(t, stats.Reloads, 1)
}

func TestDeckWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "talk.md")
	writeDeck(t, path, "# One\n")

	w, err := New(path, 20*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	writeDeck(t, filepath.Join(dir, "other.md"), "# Unrelated\n")

	select {
	case <-w.Updates():
		t.Fatal("sibling file must not trigger a reload")
	case <-time.After(300 * time.Millisecond):
	}

	assert.Equal(t, 0, w.GetStats().Events)
}

func TestDeckWatcher_LatestParseWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "talk.md")
	writeDeck(t, path, "# One\n")

	w, err := New(path, 10*time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	// Two settles without a receiver; the buffered channel keeps only
	// the newest deck.
	writeDeck(t, path, "# A\n")
	time.Sleep(150 * time.Millisecond)
	writeDeck(t, path, "# A\n\n---\n\n# B\n\n---\n\n# C\n")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case d := <-w.Updates():
			if d.SlideCount() == 3 {
				return
			}
		case <-deadline:
			t.Fatal("never observed the final deck")
		}
	}
}

func TestDeckWatcher_StopIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "talk.md")
	writeDeck(t, path, "# One\n")

	w, err := New(path, 0)
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))

	w.Stop()
	w.Stop()
	assert.False(t, w.IsWatching())
}
