package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMode_queue(t *testing.T) {
	// phases still pending for an enclosing IF whose condition was false
	rest := []phase{phaseParseElse, phaseSkipTrailingSep}
	for _, tc := range []struct {
		name      string
		mode      parseMode
		afterRun  []phase
		afterSkip []phase
	}{
		{"normal", modeNormal, rest, rest},
		{"then", modeParseThenSkipElse,
			[]phase{phaseParseStatement, phaseSkipElse, phaseParseElse, phaseSkipTrailingSep},
			[]phase{phaseSkipStatement, phaseSkipElse, phaseParseElse, phaseSkipTrailingSep}},
		{"else", modeSkipThenParseElse,
			[]phase{phaseSkipStatement, phaseParseElse, phaseParseElse, phaseSkipTrailingSep},
			[]phase{phaseSkipStatement, phaseSkipElse, phaseParseElse, phaseSkipTrailingSep}},
		{"then line", modeParseElse,
			[]phase{phaseParseElse, phaseParseElse, phaseSkipTrailingSep},
			[]phase{phaseSkipElse, phaseParseElse, phaseSkipTrailingSep}},
		{"else line", modeSkipElse,
			[]phase{phaseSkipElse, phaseParseElse, phaseSkipTrailingSep},
			[]phase{phaseSkipElse, phaseParseElse, phaseSkipTrailingSep}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.afterRun, tc.mode.afterParse(rest))
			assert.Equal(t, tc.afterSkip, tc.mode.afterSkip(rest))
			assert.Equal(t, []phase{phaseParseElse, phaseSkipTrailingSep}, rest, "pending phases left intact")
		})
	}
}

func TestPhase_String(t *testing.T) {
	assert.Equal(t, "parse", phaseParseStatement.String())
	assert.Equal(t, "skip-else", phaseSkipElse.String())
	assert.Equal(t, "skip-trailing-sep", phaseSkipTrailingSep.String())
}
