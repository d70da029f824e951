// Package track defines the record types for the problem and contest
// collections.
//
// # Records
//
// Problem and Contest are the persisted container records. Optional
// fields are pointers without omitempty so that unset values serialize
// as explicit JSON nulls and the container keeps a stable shape across
// loads.
//
// ProblemView wraps a Problem with its derived has_solution flag. The
// flag is computed from side-file presence on every load and is never
// written back to the container.
//
// # Timestamps
//
// Timestamps are opaque ISO-8601 UTC strings. Records of any vintage
// keep their stored stamps untouched; new stamps come from NowStamp.
//
// # Invariants
//
//   - solved == true implies unsolved_stage and unsolved_custom_label
//     are null (Problem.ClearUnsolvedIfSolved)
//   - len(contest.Problems) == contest.TotalProblems with letters
//     assigned by position (Contest.Normalize)
package track
