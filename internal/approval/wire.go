package approval

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// StoredRecord is the persisted shape of an approval under the store key.
type StoredRecord struct {
	ID               string         `json:"_id,omitempty"`
	Type             string         `json:"type"`
	Data             map[string]any `json:"data"`
	ContributorEmail string         `json:"contributorEmail,omitempty"`
	ApprovedAt       string         `json:"approvedAt,omitempty"`
	ReviewNotes      string         `json:"reviewNotes,omitempty"`
}

const (
	fieldSkillName         = "skillName"
	fieldToolName          = "toolName"
	fieldCategory          = "category"
	fieldDescription       = "description"
	fieldLearningResources = "learningResources"
	fieldPrimaryUseCases   = "primaryUseCases"
)

// ParseStoredRecord reads one persisted element without trusting field types:
// scalars of any JSON type are rendered as text and a non-object data payload
// is dropped. Only elements that are not JSON objects are rejected.
func ParseStoredRecord(data []byte) (StoredRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return StoredRecord{}, fmt.Errorf("stored approval is not an object: %w", err)
	}
	if fields == nil {
		return StoredRecord{}, errors.New("stored approval is null")
	}

	s := StoredRecord{
		ID:               text(fields, "_id"),
		Type:             text(fields, "type"),
		ContributorEmail: text(fields, "contributorEmail"),
		ApprovedAt:       text(fields, "approvedAt"),
		ReviewNotes:      text(fields, "reviewNotes"),
	}
	if payload, ok := fields["data"].(map[string]any); ok {
		s.Data = payload
	}
	return s, nil
}

// Decode converts a stored record into its normalized variant. Missing fields
// become empty strings; unknown types keep their raw data in Extra.
func Decode(s StoredRecord) Record {
	r := Record{
		ID:               s.ID,
		Kind:             Kind(s.Type),
		ContributorEmail: s.ContributorEmail,
		ApprovedAt:       s.ApprovedAt,
		ReviewNotes:      s.ReviewNotes,
	}

	switch r.Kind {
	case KindSkill:
		r.Skill = &SkillFields{
			SkillName:         text(s.Data, fieldSkillName),
			Category:          text(s.Data, fieldCategory),
			Description:       text(s.Data, fieldDescription),
			LearningResources: text(s.Data, fieldLearningResources),
		}
	case KindTool:
		r.Tool = &ToolFields{
			ToolName:        text(s.Data, fieldToolName),
			Category:        text(s.Data, fieldCategory),
			Description:     text(s.Data, fieldDescription),
			PrimaryUseCases: text(s.Data, fieldPrimaryUseCases),
		}
	default:
		if len(s.Data) > 0 {
			r.Extra = make(map[string]string, len(s.Data))
			for k := range s.Data {
				r.Extra[k] = text(s.Data, k)
			}
		}
	}

	return r
}

// Encode converts a normalized record back into its persisted shape.
func (r Record) Encode() StoredRecord {
	s := StoredRecord{
		ID:               r.ID,
		Type:             r.Kind.String(),
		Data:             map[string]any{},
		ContributorEmail: r.ContributorEmail,
		ApprovedAt:       r.ApprovedAt,
		ReviewNotes:      r.ReviewNotes,
	}

	put := func(key, value string) {
		if value != "" {
			s.Data[key] = value
		}
	}

	switch {
	case r.Skill != nil:
		put(fieldSkillName, r.Skill.SkillName)
		put(fieldCategory, r.Skill.Category)
		put(fieldDescription, r.Skill.Description)
		put(fieldLearningResources, r.Skill.LearningResources)
	case r.Tool != nil:
		put(fieldToolName, r.Tool.ToolName)
		put(fieldCategory, r.Tool.Category)
		put(fieldDescription, r.Tool.Description)
		put(fieldPrimaryUseCases, r.Tool.PrimaryUseCases)
	default:
		for k, v := range r.Extra {
			s.Data[k] = v
		}
	}

	return s
}

// text reads a payload field as a string; non-string scalars are rendered
// with fmt and missing or null values become "".
func text(data map[string]any, key string) string {
	switch v := data[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
