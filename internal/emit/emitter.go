package emit

import (
	"context"
	"io"
	"strings"

	apperrors "github.com/harunnryd/contribdesk/internal/errors"
	"github.com/harunnryd/contribdesk/internal/logger"
)

// Emitter turns a payload into a file through a Sink.
type Emitter struct {
	sink Sink
}

func NewEmitter(sink Sink) *Emitter {
	return &Emitter{sink: sink}
}

// Emit writes payload under filename and returns where it landed. The
// handle acquired from the sink is released on every path, including panics
// raised while writing. Failures wrap ErrEmissionFailure and are not retried.
func (e *Emitter) Emit(ctx context.Context, payload, filename, mimeType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", apperrors.WrapWithCategory(err, "emit "+filename, apperrors.ErrEmissionFailure)
	}

	h, err := e.sink.Open(filename, mimeType)
	if err != nil {
		return "", apperrors.WrapWithCategory(err, "emit "+filename, apperrors.ErrEmissionFailure)
	}
	defer func() {
		if relErr := h.Release(); relErr != nil {
			logger.From(ctx).Warn("Failed to release emission handle", "file", filename, "error", relErr)
		}
	}()

	if _, err := io.Copy(h, strings.NewReader(payload)); err != nil {
		return "", apperrors.WrapWithCategory(err, "emit "+filename, apperrors.ErrEmissionFailure)
	}

	location, err := h.Commit()
	if err != nil {
		return "", apperrors.WrapWithCategory(err, "emit "+filename, apperrors.ErrEmissionFailure)
	}

	logger.From(ctx).Info("Export emitted", "file", filename, "mime", mimeType, "location", location, "bytes", len(payload))
	return location, nil
}
