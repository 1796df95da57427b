package export

import (
	"strings"
	"time"
	"unicode"

	"github.com/harunnryd/contribdesk/internal/approval"
)

const BulkPrefix = "approved-contributions"

// BulkFilename names a whole-store export: approved-contributions-YYYY-MM-DD.<ext>.
func BulkFilename(date time.Time, target Target) string {
	return filename(BulkPrefix, date, target)
}

// RecordFilename names a single-record export: <kind>-<slug(name)>-YYYY-MM-DD.<ext>.
// Path separators in the name are replaced so the result stays a base name.
func RecordFilename(r approval.Record, date time.Time, target Target) string {
	kind := Slugify(r.Kind.String())
	if kind == "" {
		kind = "record"
	}
	name := strings.NewReplacer("/", "-", `\`, "-").Replace(Slugify(r.Name()))
	if name == "" {
		name = "untitled"
	}
	return filename(kind+"-"+name, date, target)
}

// Slugify lowercases s and collapses each whitespace run into one hyphen.
func Slugify(s string) string {
	return strings.Join(strings.FieldsFunc(strings.ToLower(s), unicode.IsSpace), "-")
}

func filename(prefix string, date time.Time, target Target) string {
	return prefix + "-" + date.Format(time.DateOnly) + "." + target.Extension()
}
