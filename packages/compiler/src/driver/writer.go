package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"ngc-ir/packages/compiler/src/ctxlog"
)

// OutputExtension is appended to the component name of every written listing
const OutputExtension = ".ivy.txt"

// Writer writes component listings below an output directory. It is safe for concurrent use;
// writes to the same path are serialized.
type Writer struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewWriter returns a Writer rooted at dir
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir, locks: map[string]*sync.Mutex{}}
}

// Path returns the file a component listing is written to
func (w *Writer) Path(name string) string {
	return filepath.Join(w.dir, name+OutputExtension)
}

func (w *Writer) lock(path string) *sync.Mutex {
	w.mu.Lock()
	defer w.mu.Unlock()
	l, ok := w.locks[path]
	if !ok {
		l = &sync.Mutex{}
		w.locks[path] = l
	}
	return l
}

// Write stores content for the named component and returns the written path
func (w *Writer) Write(ctx context.Context, name, content string) (string, error) {
	path := w.Path(name)
	l := w.lock(path)
	l.Lock()
	defer l.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory for %s: %w", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	ctxlog.FromContext(ctx).Debug("Wrote component output.", "component", name, "path", path)
	return path, nil
}

// WriteResult renders result and writes it
func (w *Writer) WriteResult(ctx context.Context, result Result) (string, error) {
	return w.Write(ctx, result.Name, Render(result))
}
