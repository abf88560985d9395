package eval

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcher_FiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.nr")
	if err := os.WriteFile(path, []byte("fn main(x: Field) {}"), 0o644); err != nil {
		t.Fatal(err)
	}

	var fired int32
	w, err := NewWatcher(path, func() { atomic.AddInt32(&fired, 1) }, nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("fn main(x: Field, y: Field) {}"), 0o644); err != nil {
		t.Fatal(err)
	}

	waitFor(t, func() bool { return atomic.LoadInt32(&fired) > 0 })
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.nr")
	if err := os.WriteFile(path, []byte("fn main() {}"), 0o644); err != nil {
		t.Fatal(err)
	}

	var fired int32
	w, err := NewWatcher(path, func() { atomic.AddInt32(&fired, 1) }, nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "other.nr"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	time.Sleep(400 * time.Millisecond)
	if atomic.LoadInt32(&fired) != 0 {
		t.Error("watcher fired for an unrelated file")
	}
}
