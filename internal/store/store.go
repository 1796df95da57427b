package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/harunnryd/contribdesk/internal/approval"
	"github.com/harunnryd/contribdesk/internal/config"
	apperrors "github.com/harunnryd/contribdesk/internal/errors"
)

// Store is the local approval log: an ordered JSON array of approvals kept
// under a single key. Insertion order is display and export order.
type Store struct {
	kv  KV
	key string
	now func() time.Time
}

type Option func(*Store)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if strings.TrimSpace(key) != "" {
			s.key = key
		}
	}
}

// WithClock overrides the clock used to stamp appended approvals.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func New(kv KV, opts ...Option) *Store {
	s := &Store{
		kv:  kv,
		key: config.DefaultStoreKey,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open builds a store over the backend named by cfg.Backend.
func Open(cfg config.StoreConfig) (*Store, error) {
	if err := ValidateKey(cfg.Key); err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	var kv KV
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", config.StoreBackendFile:
		lockCfg, err := FileLockConfigFrom(cfg)
		if err != nil {
			return nil, err
		}
		fileKV, err := NewFileKV(cfg.DataDir, lockCfg)
		if err != nil {
			return nil, err
		}
		kv = fileKV
	case config.StoreBackendSQLite:
		timeout, _, err := cfg.LockDurations()
		if err != nil {
			return nil, err
		}
		sqliteKV, err := OpenSQLiteKV(cfg.DataDir, timeout)
		if err != nil {
			return nil, err
		}
		kv = sqliteKV
	default:
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown store backend %q", cfg.Backend))
	}

	return New(kv, WithKey(cfg.Key)), nil
}

// Close releases the backend if it holds resources.
func (s *Store) Close() error {
	if closer, ok := s.kv.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (s *Store) Key() string {
	return s.key
}

// Load returns every persisted approval in insertion order. A missing value,
// a read failure, or unparseable content all yield an empty slice; failures
// are logged and never returned.
func (s *Store) Load(ctx context.Context) []approval.Record {
	data, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		slog.Warn("Failed to read local approvals, treating store as empty", "key", s.key, "error", err)
		return []approval.Record{}
	}
	if !ok {
		return []approval.Record{}
	}

	raw, err := decodeLog(data)
	if err != nil {
		slog.Warn("Local approvals are unreadable, treating store as empty",
			"key", s.key,
			"category", apperrors.Category(err),
			"error", err,
		)
		return []approval.Record{}
	}

	return s.readLog(raw)
}

// ClearAll removes every persisted approval. Clearing an empty store is a no-op.
func (s *Store) ClearAll(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.key); err != nil {
		return apperrors.Wrap(err, "clear local approvals")
	}
	slog.Info("Local approvals cleared", "key", s.key)
	return nil
}

// Append validates rec and adds it to the end of the log. An empty ID is
// replaced with a ULID and an empty ApprovedAt with the current UTC time.
// Existing elements are kept byte for byte, including ones Load skips. A
// value that is not a JSON array is first copied to <key>.corrupt-<time>
// and then replaced by a log holding only rec.
func (s *Store) Append(ctx context.Context, rec approval.Record) (approval.Record, error) {
	if rec.ID == "" {
		rec.ID = approval.NewID()
	}
	if strings.TrimSpace(rec.ApprovedAt) == "" {
		rec.ApprovedAt = s.now().UTC().Format("2006-01-02T15:04:05.000Z07:00")
	}
	if err := rec.Validate(); err != nil {
		return approval.Record{}, err
	}

	entry, err := json.Marshal(rec.Encode())
	if err != nil {
		return approval.Record{}, apperrors.Wrap(err, "encode approval")
	}

	var unreadable, quarantined []byte
	build := func(current []byte, ok bool) ([]byte, error) {
		if ok && quarantined != nil && bytes.Equal(current, quarantined) {
			ok = false
		}

		var raw []json.RawMessage
		if ok {
			decoded, err := decodeLog(current)
			if err != nil {
				unreadable = current
				return nil, err
			}
			raw = decoded
		}

		for _, existing := range s.readLog(raw) {
			if existing.ID == rec.ID {
				return nil, apperrors.Conflict(fmt.Sprintf("approval %s already stored", rec.ID))
			}
		}

		return json.MarshalIndent(append(raw, json.RawMessage(entry)), "", "  ")
	}

	err = s.kv.Update(ctx, s.key, build)
	if err != nil && unreadable != nil {
		if err := s.quarantine(ctx, unreadable); err != nil {
			return approval.Record{}, err
		}
		quarantined, unreadable = unreadable, nil
		err = s.kv.Update(ctx, s.key, build)
	}
	if err != nil {
		return approval.Record{}, err
	}

	slog.Info("Approval stored locally", "id", rec.ID, "kind", rec.Kind, "name", rec.Name())
	return rec, nil
}

// quarantine copies an unreadable log aside so replacing it loses nothing.
func (s *Store) quarantine(ctx context.Context, data []byte) error {
	key := fmt.Sprintf("%s.corrupt-%s", s.key, s.now().UTC().Format("20060102T150405.000Z"))
	if err := s.kv.Put(ctx, key, data); err != nil {
		return apperrors.WrapWithCategory(err, "preserve unreadable local approvals", apperrors.ErrStorageCorruption)
	}
	slog.Warn("Moved unreadable local approvals aside", "key", s.key, "copy", key)
	return nil
}

// decodeLog splits the stored value into its array elements. Only a value
// that is not a JSON array is corrupt; element contents are read by readLog.
func decodeLog(data []byte) ([]json.RawMessage, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, apperrors.WrapWithCategory(err, "decode local approvals", apperrors.ErrStorageCorruption)
	}
	return raw, nil
}

// readLog decodes each element on its own and makes ids unique and stable:
// entries without an id get local-<position>, repeated ids get a
// -<position> suffix. Elements that are not objects are skipped but keep
// their position.
func (s *Store) readLog(raw []json.RawMessage) []approval.Record {
	out := make([]approval.Record, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, elem := range raw {
		pos := i + 1
		stored, err := approval.ParseStoredRecord(elem)
		if err != nil {
			slog.Warn("Skipping unreadable local approval",
				"key", s.key,
				"position", pos,
				"error", err,
			)
			continue
		}

		rec := approval.Decode(stored)
		if strings.TrimSpace(rec.ID) == "" {
			rec.ID = fmt.Sprintf("local-%d", pos)
		}
		if _, dup := seen[rec.ID]; dup {
			rec.ID = fmt.Sprintf("%s-%d", rec.ID, pos)
		}
		seen[rec.ID] = struct{}{}
		out = append(out, rec)
	}
	return out
}
