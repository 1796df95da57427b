package export

import (
	"encoding/csv"
	"strings"
)

// ByteOrderMark lets spreadsheet applications detect UTF-8.
const ByteOrderMark = "\uFEFF"

// CSVFormatter writes RFC 4180 rows with "\n" terminators and no trailing
// newline. Fields containing quotes, commas, or line breaks are quoted.
type CSVFormatter struct {
	withBOM bool
}

func NewCSVFormatter(withBOM bool) *CSVFormatter {
	return &CSVFormatter{withBOM: withBOM}
}

func (f *CSVFormatter) Format(entries []Entry) (string, error) {
	var sb strings.Builder
	if f.withBOM {
		sb.WriteString(ByteOrderMark)
	}

	w := csv.NewWriter(&sb)
	if err := w.Write(Columns); err != nil {
		return "", err
	}
	for _, e := range entries {
		if err := w.Write(e.Row()); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return strings.TrimSuffix(sb.String(), "\n"), nil
}
