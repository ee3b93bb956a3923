package priority

import (
	"math"
	"time"

	"github.com/phrazzld/smarttask/internal/domain"
)

// daysLeft returns the whole number of days between asOf and the deadline.
//
// Both ends are reduced to calendar dates in asOf's location before
// subtracting, so the result does not depend on the time of day, and a
// 23- or 25-hour day around a DST change still counts as one day.
func daysLeft(deadline domain.Date, asOf time.Time) int {
	return domain.DateOf(asOf).DaysUntil(deadline)
}

// urgencyCoefficient looks up the multiplier for the given days left.
//
// Tiers are checked in ascending order and the first one whose MaxDaysLeft is
// not exceeded wins, so any overdue task gets the highest coefficient no
// matter how far in the past its deadline lies.
func urgencyCoefficient(days int, params *Params) float64 {
	for _, tier := range params.Tiers {
		if days <= tier.MaxDaysLeft {
			return tier.Coefficient
		}
	}
	return params.DefaultCoefficient
}

// effectiveComplexity guards the division against zero and negative estimates.
func effectiveComplexity(complexity int, params *Params) int {
	if complexity > 0 {
		return complexity
	}
	if params.MinComplexity > 0 {
		return params.MinComplexity
	}
	return 1
}

// calculateScore combines importance, urgency and complexity into a score.
// The result is never negative.
func calculateScore(task domain.Task, asOf time.Time, params *Params) float64 {
	coefficient := urgencyCoefficient(daysLeft(task.Deadline, asOf), params)
	score := float64(task.Importance) * coefficient / float64(effectiveComplexity(task.Complexity, params))
	if score < 0 || math.IsNaN(score) {
		return 0
	}
	return score
}
