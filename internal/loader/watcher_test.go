package loader

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestWatcherNotifiesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "qwerty.kcm", testBaseSource)

	changed := make(chan string, 8)
	w, err := NewWatcher(func(p string) { changed <- p }, 20*time.Millisecond, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(testOverlaySource), 0o644); err != nil {
		t.Fatalf("rewriting source: %v", err)
	}

	select {
	case got := <-changed:
		if filepath.Base(got) != "qwerty.kcm" {
			t.Errorf("handler called with %q, want qwerty.kcm", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change notification")
	}
}

func TestWatcherIgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "qwerty.kcm", testBaseSource)

	changed := make(chan string, 8)
	w, err := NewWatcher(func(p string) { changed <- p }, 20*time.Millisecond, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	if err := w.Watch(path); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	writeSource(t, dir, "notes.txt", "not a layout")

	select {
	case got := <-changed:
		t.Errorf("handler called for %q, want no notification", got)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(func(string) {}, time.Millisecond, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}
