package console

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/harunnryd/contribdesk/internal/approval"
	apperrors "github.com/harunnryd/contribdesk/internal/errors"
	"github.com/harunnryd/contribdesk/internal/export"
	"github.com/harunnryd/contribdesk/internal/logger"
)

// Source is the approval store as seen by the board.
type Source interface {
	Load(ctx context.Context) []approval.Record
	ClearAll(ctx context.Context) error
}

// Emitter publishes a formatted payload.
type Emitter interface {
	Emit(ctx context.Context, payload, filename, mimeType string) (string, error)
}

// Board is the view over locally stored approvals: it loads them once,
// tracks which rows are expanded, and drives exports and the bulk clear.
// It never reads or writes the storage format itself.
type Board struct {
	source  Source
	emitter Emitter
	confirm Confirmer
	notices io.Writer
	now     func() time.Time

	initOnce  sync.Once
	mu        sync.RWMutex
	records   []approval.Record
	expanded  map[string]bool
	exporting atomic.Bool
	raised    []Notice
}

type BoardOption func(*Board)

// WithNotices sets where user-visible notices are written.
func WithNotices(w io.Writer) BoardOption {
	return func(b *Board) { b.notices = w }
}

// WithClock sets the clock used to date export filenames.
func WithClock(now func() time.Time) BoardOption {
	return func(b *Board) {
		if now != nil {
			b.now = now
		}
	}
}

func NewBoard(source Source, emitter Emitter, confirm Confirmer, opts ...BoardOption) *Board {
	b := &Board{
		source:   source,
		emitter:  emitter,
		confirm:  confirm,
		now:      time.Now,
		expanded: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Init loads the store. Only the first call reads it.
func (b *Board) Init(ctx context.Context) {
	b.initOnce.Do(func() {
		records := b.source.Load(ctx)
		b.mu.Lock()
		b.records = records
		b.mu.Unlock()
		slog.Debug("Board loaded local approvals", "count", len(records))
	})
}

// Records returns a copy of the loaded approvals in store order.
func (b *Board) Records() []approval.Record {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]approval.Record(nil), b.records...)
}

func (b *Board) Empty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.records) == 0
}

// Toggle flips the expanded state of a row and reports the new state.
func (b *Board) Toggle(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.expanded[id] = !b.expanded[id]
	return b.expanded[id]
}

func (b *Board) Expanded(id string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.expanded[id]
}

// Exporting reports whether a bulk export is running.
func (b *Board) Exporting() bool {
	return b.exporting.Load()
}

// Notices returns every notice raised so far.
func (b *Board) Notices() []Notice {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Notice(nil), b.raised...)
}

// ExportRecord emits one approval as a single-element JSON array.
func (b *Board) ExportRecord(ctx context.Context, id string) (string, error) {
	rec, ok := b.find(id)
	if !ok {
		err := apperrors.NotFound(fmt.Sprintf("approval %s", id))
		b.raise(err, "run 'contribdesk list' to see stored ids")
		return "", err
	}

	payload, err := export.Format([]approval.Record{rec}, export.TargetJSON)
	if err != nil {
		b.raise(err, "")
		return "", err
	}

	filename := export.RecordFilename(rec, b.now(), export.TargetJSON)
	location, err := b.emitter.Emit(ctx, payload.Data, filename, payload.MIMEType)
	if err != nil {
		b.raise(err, "check the output location and export the record again")
		return "", err
	}
	return location, nil
}

// ExportAll emits every loaded approval in target's format. Only one bulk
// export runs at a time; a second call while one is running fails with
// ErrExportInFlight.
func (b *Board) ExportAll(ctx context.Context, target export.Target) (string, error) {
	if !b.exporting.CompareAndSwap(false, true) {
		return "", apperrors.ErrExportInFlight
	}
	defer b.exporting.Store(false)

	ctx = logger.WithOperationID(ctx, approval.NewID())
	records := b.Records()

	payload, err := export.Format(records, target)
	if err != nil {
		b.raise(err, "choose one of: json, csv, spreadsheet-csv")
		return "", err
	}

	filename := export.BulkFilename(b.now(), target)
	location, err := b.emitter.Emit(ctx, payload.Data, filename, payload.MIMEType)
	if err != nil {
		b.raise(err, "check the output location and run the export again")
		return "", err
	}

	logger.From(ctx).Info("Bulk export finished", "target", target, "records", len(records))
	return location, nil
}

// Clear wipes the store after an explicit confirmation. A declined
// confirmation leaves everything untouched and returns nil.
func (b *Board) Clear(ctx context.Context) error {
	count := len(b.Records())
	prompt := fmt.Sprintf("Delete all %d locally approved contributions? This cannot be undone.", count)

	ok, err := b.confirm.Confirm(ctx, prompt)
	if err != nil {
		b.raise(err, "")
		return err
	}
	if !ok {
		slog.Info("Clear cancelled", "reason", apperrors.ErrConfirmationDeclined)
		return nil
	}

	if err := b.source.ClearAll(ctx); err != nil {
		b.raise(err, "run 'contribdesk clear' again")
		return err
	}

	b.mu.Lock()
	b.records = nil
	b.expanded = make(map[string]bool)
	b.mu.Unlock()
	return nil
}

func (b *Board) find(id string) (approval.Record, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, r := range b.records {
		if r.ID == id {
			return r, true
		}
	}
	return approval.Record{}, false
}

func (b *Board) raise(err error, retry string) {
	if !apperrors.IsUserFacing(err) {
		return
	}
	n := newNotice(err, retry)
	b.mu.Lock()
	b.raised = append(b.raised, n)
	b.mu.Unlock()
	writeNotice(b.notices, n)
}
