package emit

import "io"

// Sink hands out per-emission handles. Implementations must not share
// staging state between handles.
type Sink interface {
	Open(filename, mimeType string) (Handle, error)
}

// Handle is a transient resource owned by one emission.
type Handle interface {
	io.Writer
	// Commit publishes what was written and returns its final location.
	Commit() (string, error)
	// Release frees the transient resource. It is safe after Commit and
	// safe to call more than once.
	Release() error
}
