package export

import (
	"github.com/harunnryd/contribdesk/internal/approval"
)

// Payload is a formatted export ready for emission.
type Payload struct {
	Data      string
	MIMEType  string
	Extension string
}

type Formatter interface {
	Format([]Entry) (string, error)
}

// NewFormatter returns the formatter for target.
func NewFormatter(target Target) (Formatter, error) {
	switch target {
	case TargetJSON:
		return NewJSONFormatter(), nil
	case TargetCSV:
		return NewCSVFormatter(false), nil
	case TargetSpreadsheetCSV:
		return NewCSVFormatter(true), nil
	default:
		_, err := ParseTarget(string(target))
		return nil, err
	}
}

// Format renders records for target. The output depends only on its inputs.
func Format(records []approval.Record, target Target) (Payload, error) {
	f, err := NewFormatter(target)
	if err != nil {
		return Payload{}, err
	}

	data, err := f.Format(ProjectAll(records))
	if err != nil {
		return Payload{}, err
	}

	return Payload{
		Data:      data,
		MIMEType:  target.MIMEType(),
		Extension: target.Extension(),
	}, nil
}
