package emit

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/natefinch/atomic"
)

// DirSink writes each emission to a staging file in dir and atomically
// moves it to dir/<filename> on commit.
type DirSink struct {
	dir string
}

func NewDirSink(dir string) (*DirSink, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir %s: %w", dir, err)
	}
	return &DirSink{dir: dir}, nil
}

func (d *DirSink) Open(filename, _ string) (Handle, error) {
	base := filepath.Base(strings.TrimSpace(filename))
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return nil, fmt.Errorf("invalid filename %q", filename)
	}

	tmp, err := os.CreateTemp(d.dir, "."+base+".*.partial")
	if err != nil {
		return nil, fmt.Errorf("create staging file: %w", err)
	}

	return &dirHandle{
		file:    tmp,
		staging: tmp.Name(),
		final:   filepath.Join(d.dir, base),
	}, nil
}

type dirHandle struct {
	mu       sync.Mutex
	file     *os.File
	staging  string
	final    string
	released bool
}

func (h *dirHandle) Write(p []byte) (int, error) {
	return h.file.Write(p)
}

func (h *dirHandle) Commit() (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.released {
		return "", fmt.Errorf("handle for %s already released", h.final)
	}
	if err := h.file.Sync(); err != nil {
		return "", fmt.Errorf("sync staging file: %w", err)
	}
	if err := h.file.Close(); err != nil {
		return "", fmt.Errorf("close staging file: %w", err)
	}
	if err := atomic.ReplaceFile(h.staging, h.final); err != nil {
		return "", fmt.Errorf("publish %s: %w", h.final, err)
	}
	return h.final, nil
}

func (h *dirHandle) Release() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.released {
		return nil
	}
	h.released = true

	// Close errors after a successful commit are expected (already closed).
	_ = h.file.Close()
	if err := os.Remove(h.staging); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to remove staging file", "path", h.staging, "error", err)
		return err
	}
	return nil
}
