package export

import (
	"github.com/harunnryd/contribdesk/internal/approval"
)

// Columns is the tabular projection, in header order.
var Columns = []string{"id", "kind", "name", "category", "description", "contributorEmail", "approvedAtTimestamp"}

// Entry is the exported form of one approval. Field order is the JSON key order.
type Entry struct {
	ID                  string `json:"id" yaml:"id"`
	Kind                string `json:"kind" yaml:"kind"`
	Name                string `json:"name" yaml:"name"`
	Category            string `json:"category" yaml:"category"`
	Description         string `json:"description" yaml:"description"`
	ContributorEmail    string `json:"contributorEmail" yaml:"contributorEmail"`
	ApprovedAtTimestamp string `json:"approvedAtTimestamp" yaml:"approvedAtTimestamp"`
	ReviewNotes         string `json:"reviewNotes" yaml:"reviewNotes"`
	LocallyApproved     bool   `json:"locallyApproved" yaml:"locallyApproved"`
	LearningResources   string `json:"learningResources,omitempty" yaml:"learningResources,omitempty"`
	PrimaryUseCases     string `json:"primaryUseCases,omitempty" yaml:"primaryUseCases,omitempty"`
}

// Project maps an approval to its exported form. Missing fields become "".
func Project(r approval.Record) Entry {
	e := Entry{
		ID:                  r.ID,
		Kind:                r.Kind.String(),
		Name:                r.Name(),
		Category:            r.Category(),
		Description:         r.Description(),
		ContributorEmail:    r.ContributorEmail,
		ApprovedAtTimestamp: r.ApprovedAt,
		ReviewNotes:         r.ReviewNotes,
		LocallyApproved:     true,
	}
	if r.Skill != nil {
		e.LearningResources = r.Skill.LearningResources
	}
	if r.Tool != nil {
		e.PrimaryUseCases = r.Tool.PrimaryUseCases
	}
	return e
}

func ProjectAll(records []approval.Record) []Entry {
	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		entries = append(entries, Project(r))
	}
	return entries
}

// Row returns the tabular projection of e in Columns order.
func (e Entry) Row() []string {
	return []string{e.ID, e.Kind, e.Name, e.Category, e.Description, e.ContributorEmail, e.ApprovedAtTimestamp}
}
