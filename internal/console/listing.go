package console

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/harunnryd/contribdesk/internal/approval"
	"github.com/harunnryd/contribdesk/internal/export"

	"gopkg.in/yaml.v3"
)

type OutputFormat string

const (
	OutputFormatTable OutputFormat = "table"
	OutputFormatJSON  OutputFormat = "json"
	OutputFormatYAML  OutputFormat = "yaml"
)

func ParseOutputFormat(s string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	switch format {
	case OutputFormatTable, OutputFormatJSON, OutputFormatYAML:
		return format, nil
	default:
		return "", fmt.Errorf("invalid output format: %s (supported: table, json, yaml)", s)
	}
}

// Render writes the board's approvals to w. An empty board writes nothing.
// In table form, expanded rows are followed by their detail view.
func (b *Board) Render(w io.Writer, format OutputFormat) error {
	records := b.Records()
	if len(records) == 0 {
		return nil
	}

	switch format {
	case OutputFormatJSON:
		data, err := json.MarshalIndent(export.ProjectAll(records), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case OutputFormatYAML:
		data, err := yaml.Marshal(export.ProjectAll(records))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, strings.TrimSpace(string(data)))
		return err
	case OutputFormatTable, "":
		renderer := NewTableRenderer()
		if _, err := fmt.Fprintln(w, renderer.RenderList(records)); err != nil {
			return err
		}
		for _, rec := range expandedOnly(b, records) {
			if _, err := fmt.Fprintln(w, renderer.RenderDetail(rec)); err != nil {
				return err
			}
		}
		return nil
	default:
		_, err := ParseOutputFormat(string(format))
		return err
	}
}

func expandedOnly(b *Board, records []approval.Record) []approval.Record {
	out := make([]approval.Record, 0)
	for _, rec := range records {
		if b.Expanded(rec.ID) {
			out = append(out, rec)
		}
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
