package track

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func intptr(i int) *int { return &i }

func TestUnsolvedStage_Valid(t *testing.T) {
	tests := []struct {
		name  string
		stage UnsolvedStage
		want  bool
	}{
		{name: "unseen", stage: StageUnseen, want: true},
		{name: "seen no idea", stage: StageSeenNoIdea, want: true},
		{name: "knows approach", stage: StageKnowsApproach, want: true},
		{name: "empty", stage: UnsolvedStage(""), want: false},
		{name: "unknown token", stage: UnsolvedStage("stuck"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.stage.Valid())
		})
	}
}

func TestProblem_Validate(t *testing.T) {
	stage := StageSeenNoIdea
	badStage := UnsolvedStage("stuck")

	tests := []struct {
		name    string
		problem Problem
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid minimal",
			problem: Problem{Title: "Two Sum"},
			wantErr: false,
		},
		{
			name: "valid with stage and count",
			problem: Problem{
				Title:         "Segment Tree Beats",
				UnsolvedStage: &stage,
				PassCount:     intptr(12),
			},
			wantErr: false,
		},
		{
			name:    "missing title",
			problem: Problem{},
			wantErr: true,
			errMsg:  "title is required",
		},
		{
			name:    "blank title",
			problem: Problem{Title: "   "},
			wantErr: true,
			errMsg:  "title is required",
		},
		{
			name:    "negative pass_count",
			problem: Problem{Title: "x", PassCount: intptr(-1)},
			wantErr: true,
			errMsg:  "pass_count must be non-negative",
		},
		{
			name:    "invalid stage",
			problem: Problem{Title: "x", UnsolvedStage: &badStage},
			wantErr: true,
			errMsg:  "invalid unsolved_stage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.problem.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestProblem_ClearUnsolvedIfSolved(t *testing.T) {
	stage := StageUnseen

	solved := Problem{
		Title:               "x",
		Solved:              true,
		UnsolvedStage:       &stage,
		UnsolvedCustomLabel: strptr("needs review"),
	}
	solved.ClearUnsolvedIfSolved()
	assert.Nil(t, solved.UnsolvedStage)
	assert.Nil(t, solved.UnsolvedCustomLabel)

	unsolved := Problem{
		Title:               "y",
		UnsolvedStage:       &stage,
		UnsolvedCustomLabel: strptr("needs review"),
	}
	unsolved.ClearUnsolvedIfSolved()
	require.NotNil(t, unsolved.UnsolvedStage)
	assert.Equal(t, StageUnseen, *unsolved.UnsolvedStage)
	require.NotNil(t, unsolved.UnsolvedCustomLabel)
	assert.Equal(t, "needs review", *unsolved.UnsolvedCustomLabel)
}

func TestProblem_CleanOptionalText(t *testing.T) {
	p := Problem{
		Title:               "x",
		Source:              strptr("  Codeforces  "),
		Assignee:            strptr("   "),
		UnsolvedCustomLabel: strptr(""),
		Notes:               strptr(" tricky cases "),
	}
	p.CleanOptionalText()

	require.NotNil(t, p.Source)
	assert.Equal(t, "Codeforces", *p.Source)
	assert.Nil(t, p.Assignee)
	assert.Nil(t, p.UnsolvedCustomLabel)
	require.NotNil(t, p.Notes)
	assert.Equal(t, "tricky cases", *p.Notes)
}

func TestTrimOptional(t *testing.T) {
	tests := []struct {
		name string
		in   *string
		want *string
	}{
		{name: "nil", in: nil, want: nil},
		{name: "blank", in: strptr("   "), want: nil},
		{name: "empty", in: strptr(""), want: nil},
		{name: "padded", in: strptr("  alice  "), want: strptr("alice")},
		{name: "clean", in: strptr("bob"), want: strptr("bob")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrimOptional(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestNewID(t *testing.T) {
	a := NewID()
	b := NewID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestNowStamp(t *testing.T) {
	stamp := NowStamp()
	parsed, err := time.Parse(StampLayout, stamp)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), parsed, time.Minute)
}
