package store

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/harunnryd/contribdesk/internal/pathutil"
)

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

const lockFileName = "store.lock"

// ResolveDataDir resolves the configured data dir.
// If empty, it falls back to ~/.contribdesk/data.
func ResolveDataDir(dataDir string) (string, error) {
	if trimmed := strings.TrimSpace(dataDir); trimmed != "" {
		return pathutil.Expand(trimmed)
	}
	return pathutil.AppDir("data")
}

// ValidateKey rejects keys that cannot be used as a file name.
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) || strings.Contains(key, "..") {
		return fmt.Errorf("invalid store key %q", key)
	}
	return nil
}

func valuePath(dir, key string) string {
	return filepath.Join(dir, key+".json")
}

func lockPath(dir string) string {
	return filepath.Join(dir, lockFileName)
}
