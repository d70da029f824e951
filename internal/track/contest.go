package track

import (
	"fmt"
	"strings"
)

// Letters assigns contest problems their display letter by position.
const Letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// MaxContestProblems bounds total_problems; larger values are clamped
// during normalization.
const MaxContestProblems = 15

// Letter returns the display letter for position i (0-indexed A, B, C, ...).
func Letter(i int) string {
	if i < 0 || i >= len(Letters) {
		return ""
	}
	return string(Letters[i])
}

// ContestStatus is the team's outcome on one contest problem.
type ContestStatus string

const (
	StatusAccepted    ContestStatus = "accepted"
	StatusAttempted   ContestStatus = "attempted"
	StatusUnsubmitted ContestStatus = "unsubmitted"
)

// Valid reports whether s is one of the defined statuses.
func (s ContestStatus) Valid() bool {
	switch s {
	case StatusAccepted, StatusAttempted, StatusUnsubmitted:
		return true
	}
	return false
}

// ContestProblem is one per-letter entry in a contest record.
type ContestProblem struct {
	Letter       string        `json:"letter"`
	PassCount    int           `json:"pass_count"`
	AttemptCount int           `json:"attempt_count"`
	MyStatus     ContestStatus `json:"my_status"`
}

// Contest is one contest result as persisted in the contests container.
type Contest struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	TotalProblems int              `json:"total_problems"`
	Problems      []ContestProblem `json:"problems"`

	// RankStr is a free-form "rank/total" string, e.g. "12/300".
	RankStr *string `json:"rank_str"`
	Summary *string `json:"summary"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Validate checks the field values supplied at the API boundary.
func (c *Contest) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if c.TotalProblems < 1 || c.TotalProblems > MaxContestProblems {
		return fmt.Errorf("total_problems must be between 1 and %d (got %d)",
			MaxContestProblems, c.TotalProblems)
	}
	for _, p := range c.Problems {
		if p.PassCount < 0 || p.AttemptCount < 0 {
			return fmt.Errorf("problem counts must be non-negative")
		}
		if p.MyStatus != "" && !p.MyStatus.Valid() {
			return fmt.Errorf("invalid my_status %q", p.MyStatus)
		}
	}
	return nil
}

// Normalize clamps TotalProblems into 1..MaxContestProblems and rebuilds
// the problems list to exactly that length. Letters are reassigned by
// position and unrecognized statuses fall back to unsubmitted; entries
// beyond the bound are dropped and missing ones filled with zero counts.
func (c *Contest) Normalize() {
	if c.TotalProblems < 1 {
		c.TotalProblems = 1
	}
	if c.TotalProblems > MaxContestProblems {
		c.TotalProblems = MaxContestProblems
	}

	problems := make([]ContestProblem, c.TotalProblems)
	for i := range problems {
		entry := ContestProblem{Letter: Letter(i), MyStatus: StatusUnsubmitted}
		if i < len(c.Problems) {
			entry.PassCount = c.Problems[i].PassCount
			entry.AttemptCount = c.Problems[i].AttemptCount
			if c.Problems[i].MyStatus.Valid() {
				entry.MyStatus = c.Problems[i].MyStatus
			}
		}
		problems[i] = entry
	}
	c.Problems = problems
}

// UpdateTimestamp sets UpdatedAt to the current time.
func (c *Contest) UpdateTimestamp() {
	c.UpdatedAt = NowStamp()
}
