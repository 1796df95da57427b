package config

import (
	"fmt"
	"strings"
	"time"
)

// DurationOrDefault parses a duration string and falls back to defaultValue when empty.
func DurationOrDefault(value string, defaultValue string) (time.Duration, error) {
	candidate := strings.TrimSpace(value)
	if candidate == "" {
		candidate = strings.TrimSpace(defaultValue)
	}
	if candidate == "" {
		return 0, fmt.Errorf("duration value is empty")
	}

	d, err := time.ParseDuration(candidate)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", candidate, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("duration %q must not be negative", candidate)
	}
	return d, nil
}

// LockDurations resolves the store lock timeout and retry interval.
func (c StoreConfig) LockDurations() (timeout time.Duration, retry time.Duration, err error) {
	timeout, err = DurationOrDefault(c.LockTimeout, DefaultStoreLockTimeout)
	if err != nil {
		return 0, 0, fmt.Errorf("store.lock_timeout: %w", err)
	}
	retry, err = DurationOrDefault(c.LockRetry, DefaultStoreLockRetry)
	if err != nil {
		return 0, 0, fmt.Errorf("store.lock_retry: %w", err)
	}
	return timeout, retry, nil
}
