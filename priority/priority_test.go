package priority

import (
	"braindumpBackend/utils"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsensusScore(t *testing.T) {
	testCases := []struct {
		name   string
		votes  []Priority
		expect float64
	}{
		{name: "no votes", votes: nil, expect: 2},
		{name: "single high", votes: []Priority{High}, expect: 3},
		{name: "high and low", votes: []Priority{High, Low}, expect: 2},
		{name: "two high one medium", votes: []Priority{High, High, Medium}, expect: 8.0 / 3.0},
		{name: "all low", votes: []Priority{Low, Low, Low}, expect: 1},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expect, ConsensusScore(tt.votes), 1e-9)
		})
	}
}

func TestLabelFor(t *testing.T) {
	testCases := []struct {
		score  float64
		expect Priority
	}{
		{score: 1, expect: Low},
		{score: 1.49, expect: Low},
		{score: 1.5, expect: Medium},
		{score: 2, expect: Medium},
		{score: 2.49, expect: Medium},
		{score: 2.5, expect: High},
		{score: 8.0 / 3.0, expect: High},
		{score: 3, expect: High},
		{score: 0, expect: Low},
		{score: 7, expect: High},
	}

	for _, tt := range testCases {
		t.Run(tt.expect.String(), func(t *testing.T) {
			assert.Equal(t, tt.expect, LabelFor(tt.score), "score %v", tt.score)
		})
	}
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, Summary{VoteCount: 0, Score: 2, Label: Medium}, Summarize(nil))
	assert.Equal(t, Summary{VoteCount: 2, Score: 2.5, Label: High}, Summarize([]Priority{High, Medium}))
}

func TestFromAverage(t *testing.T) {
	assert.Equal(t, Summary{VoteCount: 0, Score: 2, Label: Medium}, FromAverage(0, 0))
	assert.Equal(t, Summary{VoteCount: 1, Score: 3, Label: High}, FromAverage(1, 3))
	assert.Equal(t, Summary{VoteCount: 4, Score: 1.25, Label: Low}, FromAverage(4, 1.25))
}

func TestParse(t *testing.T) {
	for _, value := range []int{1, 2, 3} {
		parsed, err := Parse(value)
		assert.NoError(t, err)
		assert.Equal(t, Priority(value), parsed)
	}

	for _, value := range []int{-1, 0, 4, 100} {
		_, err := Parse(value)
		assert.ErrorIs(t, err, utils.ErrValidationError)
	}
}
