package emit

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// WriterSink emits payloads to an io.Writer, e.g. stdout. Each handle
// buffers its payload so a failed emission writes nothing.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Open(filename, _ string) (Handle, error) {
	return &writerHandle{sink: s, name: filename}, nil
}

type writerHandle struct {
	sink     *WriterSink
	name     string
	buf      bytes.Buffer
	released bool
}

func (h *writerHandle) Write(p []byte) (int, error) {
	return h.buf.Write(p)
}

func (h *writerHandle) Commit() (string, error) {
	if h.released {
		return "", fmt.Errorf("handle for %s already released", h.name)
	}
	h.sink.mu.Lock()
	defer h.sink.mu.Unlock()
	if _, err := h.sink.w.Write(h.buf.Bytes()); err != nil {
		return "", err
	}
	return "-", nil
}

func (h *writerHandle) Release() error {
	h.released = true
	h.buf.Reset()
	return nil
}
