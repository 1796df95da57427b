package approval

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	apperrors "github.com/harunnryd/contribdesk/internal/errors"
)

type ValidationCode string

const (
	CodeMissingField  ValidationCode = "MISSING_FIELD"
	CodeInvalidFormat ValidationCode = "INVALID_FORMAT"
	CodeUnknownKind   ValidationCode = "UNKNOWN_KIND"
)

// ValidationError describes why a record cannot be appended to the store.
type ValidationError struct {
	Field   string
	Message string
	Code    ValidationCode
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return apperrors.ErrInvalidInput
}

// Validate checks the fields a producer must supply. Readers never call it:
// stored records with blank fields are exported as-is.
func (r Record) Validate() error {
	if !r.Kind.IsKnown() {
		return &ValidationError{
			Field:   "type",
			Message: fmt.Sprintf("must be %s or %s (got: %q)", KindSkill, KindTool, r.Kind),
			Code:    CodeUnknownKind,
		}
	}

	if strings.TrimSpace(r.Name()) == "" {
		field := "skillName"
		if r.Kind == KindTool {
			field = "toolName"
		}
		return &ValidationError{Field: field, Message: "cannot be empty", Code: CodeMissingField}
	}

	if strings.TrimSpace(r.Category()) == "" {
		return &ValidationError{Field: "category", Message: "cannot be empty", Code: CodeMissingField}
	}

	if email := strings.TrimSpace(r.ContributorEmail); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return &ValidationError{Field: "contributorEmail", Message: "is not a valid address", Code: CodeInvalidFormat}
		}
	}

	if at := strings.TrimSpace(r.ApprovedAt); at != "" {
		if _, err := time.Parse(time.RFC3339Nano, at); err != nil {
			return &ValidationError{Field: "approvedAt", Message: "must be an ISO-8601 timestamp", Code: CodeInvalidFormat}
		}
	}

	return nil
}
