// Package priority implements the scoring engine that turns a task's
// importance, deadline and complexity into a priority score.
package priority

import (
	"math"
	"time"

	"github.com/phrazzld/smarttask/internal/domain"
)

// Engine computes priority scores with a fixed set of parameters.
// It holds no state between calls; scores must be recomputed whenever the
// reference date changes.
type Engine struct {
	params *Params
}

// NewDefaultEngine creates an engine with the default tiers.
func NewDefaultEngine() *Engine {
	return &Engine{params: NewDefaultParams()}
}

// NewEngineWithParams creates an engine with custom parameters.
func NewEngineWithParams(params *Params) *Engine {
	if params == nil {
		params = NewDefaultParams()
	}
	return &Engine{params: params}
}

// Score returns the priority of task as of the given instant.
func (e *Engine) Score(task domain.Task, asOf time.Time) float64 {
	return calculateScore(task, asOf, e.params)
}

// Scored returns a copy of task with its Score field set.
func (e *Engine) Scored(task domain.Task, asOf time.Time) domain.Task {
	task.Score = e.Score(task, asOf)
	return task
}

// Coefficient returns the urgency multiplier that applies to task as of asOf.
func (e *Engine) Coefficient(task domain.Task, asOf time.Time) float64 {
	return urgencyCoefficient(daysLeft(task.Deadline, asOf), e.params)
}

// DaysLeft returns the number of whole days until the task's deadline.
func DaysLeft(task domain.Task, asOf time.Time) int {
	return daysLeft(task.Deadline, asOf)
}

var defaultEngine = NewDefaultEngine()

// Score scores task with the default parameters.
func Score(task domain.Task, asOf time.Time) float64 {
	return defaultEngine.Score(task, asOf)
}

// Round2 rounds a score to two decimal places for display.
func Round2(score float64) float64 {
	return math.Round(score*100) / 100
}

// Band classifies a score for colour coding.
type Band string

const (
	BandHigh   Band = "high"
	BandMedium Band = "medium"
	BandLow    Band = "low"
)

// Band thresholds.
const (
	HighThreshold   = 10.0
	MediumThreshold = 5.0
)

// BandOf returns the display band of a score.
func BandOf(score float64) Band {
	switch {
	case score >= HighThreshold:
		return BandHigh
	case score >= MediumThreshold:
		return BandMedium
	default:
		return BandLow
	}
}
