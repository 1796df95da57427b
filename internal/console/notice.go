package console

import (
	"fmt"
	"io"

	apperrors "github.com/harunnryd/contribdesk/internal/errors"
)

// Notice is a user-visible message raised by a board action.
type Notice struct {
	Category string
	Message  string
	Retry    string
}

func (n Notice) String() string {
	if n.Retry == "" {
		return fmt.Sprintf("✗ %s", n.Message)
	}
	return fmt.Sprintf("✗ %s\n  retry: %s", n.Message, n.Retry)
}

func newNotice(err error, retry string) Notice {
	return Notice{
		Category: apperrors.Category(err),
		Message:  err.Error(),
		Retry:    retry,
	}
}

func writeNotice(w io.Writer, n Notice) {
	if w == nil {
		return
	}
	fmt.Fprintln(w, n.String())
}
