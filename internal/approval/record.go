package approval

import (
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// UnknownDate is shown in place of a missing or unparseable approval time.
const UnknownDate = "Unknown date"

// Kind tags a record variant. Values outside KindSkill and KindTool are
// carried through untouched.
type Kind string

const (
	KindSkill Kind = "Skill"
	KindTool  Kind = "Tool"
)

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsKnown() bool {
	return k == KindSkill || k == KindTool
}

// SkillFields is the payload of a Skill approval.
type SkillFields struct {
	SkillName         string
	Category          string
	Description       string
	LearningResources string
}

// ToolFields is the payload of a Tool approval.
type ToolFields struct {
	ToolName        string
	Category        string
	Description     string
	PrimaryUseCases string
}

// Record is a normalized approval. Exactly one of Skill or Tool is set for
// known kinds; Extra holds the raw payload of any other kind.
type Record struct {
	ID               string
	Kind             Kind
	Skill            *SkillFields
	Tool             *ToolFields
	Extra            map[string]string
	ContributorEmail string
	ApprovedAt       string
	ReviewNotes      string
}

func (r Record) Name() string {
	switch {
	case r.Skill != nil:
		return r.Skill.SkillName
	case r.Tool != nil:
		return r.Tool.ToolName
	default:
		return ""
	}
}

func (r Record) Category() string {
	switch {
	case r.Skill != nil:
		return r.Skill.Category
	case r.Tool != nil:
		return r.Tool.Category
	default:
		return ""
	}
}

func (r Record) Description() string {
	switch {
	case r.Skill != nil:
		return r.Skill.Description
	case r.Tool != nil:
		return r.Tool.Description
	default:
		return ""
	}
}

// Details returns the kind-specific optional field: learning resources for
// skills, primary use cases for tools.
func (r Record) Details() (label string, value string) {
	switch {
	case r.Skill != nil:
		return "Learning resources", r.Skill.LearningResources
	case r.Tool != nil:
		return "Primary use cases", r.Tool.PrimaryUseCases
	default:
		return "", ""
	}
}

// ApprovedDate renders the approval day for display.
func (r Record) ApprovedDate() string {
	raw := strings.TrimSpace(r.ApprovedAt)
	if raw == "" {
		return UnknownDate
	}
	for _, layout := range []string{time.RFC3339Nano, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC().Format(time.DateOnly)
		}
	}
	return UnknownDate
}

// NewID returns a fresh sortable record id.
func NewID() string {
	return ulid.Make().String()
}

// NewSkill builds a Skill record.
func NewSkill(fields SkillFields) Record {
	return Record{Kind: KindSkill, Skill: &fields}
}

// NewTool builds a Tool record.
func NewTool(fields ToolFields) Record {
	return Record{Kind: KindTool, Tool: &fields}
}
