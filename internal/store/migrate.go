package store

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/acmcompass/compass/internal/track"
)

// legacySolutionKeys are the deprecated inline solution fields, checked
// in priority order; the first holding non-empty text wins.
var legacySolutionKeys = [...]string{"solution_markdown", "solution_md", "solution"}

// legacyStages maps stage tokens written by earlier versions onto the
// current enum.
var legacyStages = map[string]track.UnsolvedStage{
	"未看题":     track.StageUnseen,
	"已看题无思路": track.StageSeenNoIdea,
	"知道做法未实现": track.StageKnowsApproach,
}

// NormalizeProblem upgrades one raw container record of unknown schema
// vintage to the current problem schema. It returns the normalized
// record, any solution text extracted from a legacy inline field, and
// whether the record changed shape (so the caller can rewrite the
// container).
//
// Normalization is idempotent: running it on its own output changes
// nothing, which matters because every load re-runs it.
func NormalizeProblem(raw map[string]any) (track.Problem, string, bool) {
	var solution string
	for _, key := range legacySolutionKeys {
		if text, ok := raw[key].(string); ok && text != "" {
			solution = text
			break
		}
	}

	p := track.Problem{
		ID:        stringValue(raw["id"]),
		Title:     stringValue(raw["title"]),
		Link:      textValue(raw["link"]),
		Source:    textValue(raw["source"]),
		Tags:      tagsValue(raw["tags"]),
		Assignee:  trimmedValue(raw["assignee"]),
		Notes:     textValue(raw["notes"]),
		CreatedAt: stringValue(raw["created_at"]),
		UpdatedAt: stringValue(raw["updated_at"]),
	}

	// solved falls back to the deprecated status field
	if solved, ok := raw["solved"].(bool); ok {
		p.Solved = solved
	} else if status, ok := raw["status"].(string); ok {
		p.Solved = strings.EqualFold(status, "done")
	}

	// unsolved_stage keeps valid tokens and maps legacy ones; anything
	// else coerces to null
	if s, ok := raw["unsolved_stage"].(string); ok {
		if stage := track.UnsolvedStage(s); stage.Valid() {
			p.UnsolvedStage = &stage
		} else if stage, ok := legacyStages[s]; ok {
			p.UnsolvedStage = &stage
		}
	}

	p.UnsolvedCustomLabel = trimmedValue(raw["unsolved_custom_label"])
	p.PassCount = intValue(raw["pass_count"])

	// assignee migrates from the deprecated owner field
	if p.Assignee == nil {
		p.Assignee = trimmedValue(raw["owner"])
	}

	p.ClearUnsolvedIfSolved()

	return p, solution, migrationChanged(raw, p)
}

// NormalizeContest upgrades one raw contest record to the current
// schema and reports whether it changed shape. The problems list is
// rebuilt to exactly total_problems entries with letters reassigned by
// position.
func NormalizeContest(raw map[string]any) (track.Contest, bool) {
	c := track.Contest{
		ID:        stringValue(raw["id"]),
		Name:      stringValue(raw["name"]),
		RankStr:   textValue(raw["rank_str"]),
		Summary:   textValue(raw["summary"]),
		CreatedAt: stringValue(raw["created_at"]),
		UpdatedAt: stringValue(raw["updated_at"]),
	}

	c.TotalProblems = 1
	if n := intValue(raw["total_problems"]); n != nil && *n > 1 {
		c.TotalProblems = *n
	}

	if entries, ok := raw["problems"].([]any); ok {
		for _, entry := range entries {
			fields, ok := entry.(map[string]any)
			if !ok {
				c.Problems = append(c.Problems, track.ContestProblem{})
				continue
			}
			p := track.ContestProblem{MyStatus: contestStatusValue(fields["my_status"])}
			if n := intValue(fields["pass_count"]); n != nil {
				p.PassCount = *n
			}
			if n := intValue(fields["attempt_count"]); n != nil {
				p.AttemptCount = *n
			}
			c.Problems = append(c.Problems, p)
		}
	}

	c.Normalize()

	return c, migrationChanged(raw, c)
}

// contestStatusValue validates a stored status, mapping the legacy "ac"
// token onto accepted. Anything unrecognized falls back to unsubmitted.
func contestStatusValue(v any) track.ContestStatus {
	s, _ := v.(string)
	if s == "ac" {
		return track.StatusAccepted
	}
	if status := track.ContestStatus(s); status.Valid() {
		return status
	}
	return track.StatusUnsubmitted
}

// migrationChanged reports whether normalization altered the record's
// canonical JSON shape. Both sides marshal through sorted-key maps, so
// key order never causes a false positive.
func migrationChanged(raw map[string]any, normalized any) bool {
	before, err := json.Marshal(raw)
	if err != nil {
		return true
	}
	after, err := canonicalJSON(normalized)
	if err != nil {
		return true
	}
	return !bytes.Equal(before, after)
}

// canonicalJSON marshals v through a map so its keys serialize sorted.
func canonicalJSON(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return json.Marshal(m)
}

// stringValue returns v when it is a string, else "".
func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

// textValue keeps an optional text field as stored: strings pass
// through untouched, everything else becomes null.
func textValue(v any) *string {
	if s, ok := v.(string); ok {
		return &s
	}
	return nil
}

// trimmedValue is textValue plus whitespace trimming, with blank
// collapsing to null.
func trimmedValue(v any) *string {
	s, ok := v.(string)
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// tagsValue extracts a tag list, defaulting to empty. The result is
// always non-nil so the container serializes [] rather than null.
func tagsValue(v any) []string {
	items, ok := v.([]any)
	tags := make([]string, 0, len(items))
	if !ok {
		return tags
	}
	for _, item := range items {
		if s, ok := item.(string); ok {
			tags = append(tags, s)
		}
	}
	return tags
}

// intValue coerces a numeric field to an integer, yielding null when
// the value cannot be coerced rather than failing the load.
func intValue(v any) *int {
	switch n := v.(type) {
	case float64:
		i := int(n)
		return &i
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return &i
		}
	case bool:
		i := 0
		if n {
			i = 1
		}
		return &i
	}
	return nil
}
