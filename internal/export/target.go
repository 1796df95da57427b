package export

import (
	"fmt"
	"strings"

	apperrors "github.com/harunnryd/contribdesk/internal/errors"
)

type Target string

const (
	TargetJSON           Target = "json"
	TargetCSV            Target = "csv"
	TargetSpreadsheetCSV Target = "spreadsheet-csv"
)

const (
	MIMEJSON           = "application/json"
	MIMECSV            = "text/csv"
	MIMESpreadsheetCSV = "text/csv;charset=utf-8;"
)

// Targets lists every supported target in display order.
func Targets() []Target {
	return []Target{TargetJSON, TargetCSV, TargetSpreadsheetCSV}
}

func (t Target) String() string {
	return string(t)
}

func (t Target) Extension() string {
	if t == TargetJSON {
		return "json"
	}
	return "csv"
}

func (t Target) MIMEType() string {
	switch t {
	case TargetJSON:
		return MIMEJSON
	case TargetSpreadsheetCSV:
		return MIMESpreadsheetCSV
	default:
		return MIMECSV
	}
}

func (t Target) Valid() bool {
	switch t {
	case TargetJSON, TargetCSV, TargetSpreadsheetCSV:
		return true
	default:
		return false
	}
}

func ParseTarget(s string) (Target, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, "_", "-")
	if normalized == "excel" {
		normalized = string(TargetSpreadsheetCSV)
	}

	target := Target(normalized)
	if !target.Valid() {
		return "", apperrors.UnknownExportTarget(
			fmt.Sprintf("invalid export target: %s (supported: json, csv, spreadsheet-csv)", s))
	}
	return target, nil
}
