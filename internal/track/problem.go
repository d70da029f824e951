package track

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// UnsolvedStage classifies how far an unsolved problem has progressed.
type UnsolvedStage string

const (
	// StageUnseen means nobody has read the statement yet.
	StageUnseen UnsolvedStage = "unseen"

	// StageSeenNoIdea means the statement was read but no approach is known.
	StageSeenNoIdea UnsolvedStage = "seen_no_idea"

	// StageKnowsApproach means the approach is known but not implemented.
	StageKnowsApproach UnsolvedStage = "knows_approach_not_implemented"
)

// Valid reports whether s is one of the defined stages.
func (s UnsolvedStage) Valid() bool {
	switch s {
	case StageUnseen, StageSeenNoIdea, StageKnowsApproach:
		return true
	}
	return false
}

// Problem is one tracked problem as persisted in the problems container.
type Problem struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Link     *string  `json:"link"`
	Source   *string  `json:"source"`
	Tags     []string `json:"tags"`
	Assignee *string  `json:"assignee"`

	Solved              bool           `json:"solved"`
	UnsolvedStage       *UnsolvedStage `json:"unsolved_stage"`
	UnsolvedCustomLabel *string        `json:"unsolved_custom_label"`

	// PassCount is the in-contest pass count; more passes means easier.
	PassCount *int    `json:"pass_count"`
	Notes     *string `json:"notes"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ProblemView is a Problem plus its derived solution flag. The flag is
// computed from side-file presence and never persisted.
type ProblemView struct {
	Problem
	HasSolution bool `json:"has_solution"`
}

// Validate checks the field values supplied at the API boundary.
func (p *Problem) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if p.PassCount != nil && *p.PassCount < 0 {
		return fmt.Errorf("pass_count must be non-negative (got %d)", *p.PassCount)
	}
	if p.UnsolvedStage != nil && !p.UnsolvedStage.Valid() {
		return fmt.Errorf("invalid unsolved_stage %q", *p.UnsolvedStage)
	}
	return nil
}

// ClearUnsolvedIfSolved forces the unsolved-stage fields to null when
// the problem is marked solved. Solved problems carry no unsolved
// metadata; every write path re-applies this.
func (p *Problem) ClearUnsolvedIfSolved() {
	if p.Solved {
		p.UnsolvedStage = nil
		p.UnsolvedCustomLabel = nil
	}
}

// CleanOptionalText trims the optional free-text fields, collapsing
// blank values to null.
func (p *Problem) CleanOptionalText() {
	p.Source = TrimOptional(p.Source)
	p.Assignee = TrimOptional(p.Assignee)
	p.UnsolvedCustomLabel = TrimOptional(p.UnsolvedCustomLabel)
	p.Notes = TrimOptional(p.Notes)
}

// UpdateTimestamp sets UpdatedAt to the current time.
func (p *Problem) UpdateTimestamp() {
	p.UpdatedAt = NowStamp()
}

// TrimOptional trims an optional text value, mapping blank to null.
func TrimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// NewID generates a fresh record identity. Identities are opaque,
// unique, and immutable once assigned.
func NewID() string {
	return uuid.NewString()
}
