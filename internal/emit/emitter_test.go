package emit

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	apperrors "github.com/harunnryd/contribdesk/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandle struct {
	writeErr  error
	commitErr error
	released  int
	written   strings.Builder
}

func (h *recordingHandle) Write(p []byte) (int, error) {
	if h.writeErr != nil {
		return 0, h.writeErr
	}
	return h.written.Write(p)
}

func (h *recordingHandle) Commit() (string, error) {
	if h.commitErr != nil {
		return "", h.commitErr
	}
	return "memory://" + h.written.String(), nil
}

func (h *recordingHandle) Release() error {
	h.released++
	return nil
}

type recordingSink struct {
	handle  *recordingHandle
	openErr error
}

func (s *recordingSink) Open(string, string) (Handle, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	return s.handle, nil
}

func TestEmit_ReleasesOnSuccess(t *testing.T) {
	h := &recordingHandle{}
	loc, err := NewEmitter(&recordingSink{handle: h}).Emit(context.Background(), "abc", "a.json", "application/json")
	require.NoError(t, err)
	assert.Equal(t, "memory://abc", loc)
	assert.Equal(t, 1, h.released)
}

func TestEmit_ReleasesOnFailure(t *testing.T) {
	tests := []struct {
		name   string
		handle *recordingHandle
	}{
		{name: "write fails", handle: &recordingHandle{writeErr: errors.New("blocked")}},
		{name: "commit fails", handle: &recordingHandle{commitErr: errors.New("download blocked")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEmitter(&recordingSink{handle: tt.handle}).Emit(context.Background(), "abc", "a.csv", "text/csv")
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrEmissionFailure)
			assert.Equal(t, 1, tt.handle.released)
		})
	}
}

func TestEmit_OpenFailure(t *testing.T) {
	_, err := NewEmitter(&recordingSink{openErr: errors.New("no space")}).Emit(context.Background(), "x", "a.csv", "text/csv")
	assert.ErrorIs(t, err, apperrors.ErrEmissionFailure)
}

func TestEmit_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := &recordingHandle{}
	_, err := NewEmitter(&recordingSink{handle: h}).Emit(ctx, "x", "a.csv", "text/csv")
	assert.ErrorIs(t, err, apperrors.ErrEmissionFailure)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, h.released)
}

func TestDirSink_WritesAndCleansUp(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	sink, err := NewDirSink(dir)
	require.NoError(t, err)

	loc, err := NewEmitter(sink).Emit(context.Background(), "[]", "approved-contributions-2024-01-01.json", "application/json")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "approved-contributions-2024-01-01.json"), loc)

	data, err := os.ReadFile(loc)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "staging file must be gone")
}

func TestDirSink_ReleaseWithoutCommitLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewDirSink(dir)
	require.NoError(t, err)

	h, err := sink.Open("draft.csv", "text/csv")
	require.NoError(t, err)
	_, err = h.Write([]byte("id\n"))
	require.NoError(t, err)

	require.NoError(t, h.Release())
	require.NoError(t, h.Release())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = h.Commit()
	assert.Error(t, err)
}

func TestDirSink_StripsDirectories(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewDirSink(dir)
	require.NoError(t, err)

	loc, err := NewEmitter(sink).Emit(context.Background(), "x", "../../etc/evil.csv", "text/csv")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "evil.csv"), loc)

	_, err = sink.Open("..", "text/csv")
	assert.Error(t, err)
}

func TestDirSink_ConcurrentEmitsOwnTheirHandles(t *testing.T) {
	dir := t.TempDir()
	sink, err := NewDirSink(dir)
	require.NoError(t, err)
	emitter := NewEmitter(sink)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := fmt.Sprintf("export-%d.csv", i)
			_, err := emitter.Emit(context.Background(), strings.Repeat("x", i+1), name, "text/csv")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 8)
	for i := 0; i < 8; i++ {
		data, err := os.ReadFile(filepath.Join(dir, fmt.Sprintf("export-%d.csv", i)))
		require.NoError(t, err)
		assert.Len(t, data, i+1)
	}
}

func TestWriterSink(t *testing.T) {
	var out strings.Builder
	loc, err := NewEmitter(NewWriterSink(&out)).Emit(context.Background(), "id,kind", "a.csv", "text/csv")
	require.NoError(t, err)
	assert.Equal(t, "-", loc)
	assert.Equal(t, "id,kind", out.String())
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("pipe closed")
}

func TestWriterSink_Failure(t *testing.T) {
	_, err := NewEmitter(NewWriterSink(brokenWriter{})).Emit(context.Background(), "x", "a.csv", "text/csv")
	assert.ErrorIs(t, err, apperrors.ErrEmissionFailure)
}
