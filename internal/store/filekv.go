package store

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
)

// FileKV stores each key as <dir>/<key>.json. Writes are atomic renames and
// are serialized across processes with a lock file in dir.
type FileKV struct {
	dir     string
	lockCfg *FileLockConfig
}

func NewFileKV(dataDir string, lockCfg *FileLockConfig) (*FileKV, error) {
	dir, err := ResolveDataDir(dataDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %w", dir, err)
	}
	if lockCfg == nil {
		lockCfg = DefaultFileLockConfig()
	}
	return &FileKV{dir: dir, lockCfg: lockCfg}, nil
}

func (f *FileKV) Dir() string {
	return f.dir
}

func (f *FileKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	if err := ValidateKey(key); err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(valuePath(f.dir, key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (f *FileKV) Put(ctx context.Context, key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	return f.withLock(ctx, func() error {
		return atomic.WriteFile(valuePath(f.dir, key), bytes.NewReader(value))
	})
}

func (f *FileKV) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	return f.withLock(ctx, func() error {
		err := os.Remove(valuePath(f.dir, key))
		if err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	})
}

func (f *FileKV) Update(ctx context.Context, key string, fn func([]byte, bool) ([]byte, error)) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	return f.withLock(ctx, func() error {
		current, ok, err := f.Get(ctx, key)
		if err != nil {
			return err
		}
		next, err := fn(current, ok)
		if err != nil {
			return err
		}
		return atomic.WriteFile(valuePath(f.dir, key), bytes.NewReader(next))
	})
}

func (f *FileKV) withLock(ctx context.Context, fn func() error) error {
	lock, err := AcquireFileLock(ctx, lockPath(f.dir), f.lockCfg)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	defer lock.Unlock()
	return fn()
}
