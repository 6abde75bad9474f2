package priority

import (
	"braindumpBackend/utils"
	"fmt"
	"math"
)

type Priority int

const (
	Low    Priority = 1
	Medium Priority = 2
	High   Priority = 3
)

// DefaultScore is the consensus score of an item nobody has voted on.
const DefaultScore = float64(Medium)

type Summary struct {
	VoteCount int      `json:"voteCount"`
	Score     float64  `json:"score"`
	Label     Priority `json:"label"`
}

func (p Priority) Valid() bool {
	return p >= Low && p <= High
}

func (p Priority) String() string {
	switch p {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	}
	return fmt.Sprintf("invalid(%d)", int(p))
}

// Parse converts a raw vote value, rejecting anything outside 1..3.
func Parse(value int) (Priority, error) {
	p := Priority(value)
	if !p.Valid() {
		return 0, fmt.Errorf("%w: priority must be 1, 2 or 3", utils.ErrValidationError)
	}
	return p, nil
}

// ConsensusScore is the arithmetic mean of the votes, or DefaultScore without votes.
func ConsensusScore(votes []Priority) float64 {
	if len(votes) == 0 {
		return DefaultScore
	}

	sum := 0
	for _, vote := range votes {
		sum += int(vote)
	}
	return float64(sum) / float64(len(votes))
}

// LabelFor rounds a score half up to the nearest priority, so 2.5 is High and 1.5 is Medium.
func LabelFor(score float64) Priority {
	label := Priority(math.Floor(score + 0.5))
	return min(max(label, Low), High)
}

func Summarize(votes []Priority) Summary {
	return FromAverage(len(votes), ConsensusScore(votes))
}

// FromAverage builds a summary from a precomputed vote count and average.
// The average is ignored when there are no votes.
func FromAverage(voteCount int, average float64) Summary {
	score := average
	if voteCount <= 0 {
		voteCount = 0
		score = DefaultScore
	}

	return Summary{
		VoteCount: voteCount,
		Score:     score,
		Label:     LabelFor(score),
	}
}
