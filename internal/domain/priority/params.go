package priority

import "sort"

// Tier maps a maximum number of days left to an urgency coefficient.
type Tier struct {
	MaxDaysLeft int
	Coefficient float64
}

// Params defines all configurable parameters of the scoring engine
type Params struct {
	// Tiers are evaluated in ascending order of MaxDaysLeft; the first match wins.
	Tiers []Tier

	// DefaultCoefficient applies when no tier matches.
	DefaultCoefficient float64

	// MinComplexity replaces any complexity at or below zero.
	MinComplexity int
}

// ParamsConfig allows overriding the default parameters when creating a new Params instance
type ParamsConfig struct {
	CriticalMaxDays     int
	CriticalCoefficient float64

	SoonMaxDays     int
	SoonCoefficient float64

	DefaultCoefficient float64
}

// NewDefaultParams creates a new Params instance with default values
func NewDefaultParams() *Params {
	return &Params{
		Tiers: []Tier{
			// Due tomorrow, today, or already overdue
			{MaxDaysLeft: 1, Coefficient: 3.0},
			// Due within a week
			{MaxDaysLeft: 7, Coefficient: 1.5},
		},
		DefaultCoefficient: 1.0,
		MinComplexity:      1,
	}
}

// NewParams creates a new Params instance with custom configuration.
// Zero fields keep their defaults.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.CriticalMaxDays > 0 {
		params.Tiers[0].MaxDaysLeft = config.CriticalMaxDays
	}
	if config.CriticalCoefficient > 0 {
		params.Tiers[0].Coefficient = config.CriticalCoefficient
	}
	if config.SoonMaxDays > 0 {
		params.Tiers[1].MaxDaysLeft = config.SoonMaxDays
	}
	if config.SoonCoefficient > 0 {
		params.Tiers[1].Coefficient = config.SoonCoefficient
	}
	if config.DefaultCoefficient > 0 {
		params.DefaultCoefficient = config.DefaultCoefficient
	}

	sort.SliceStable(params.Tiers, func(i, j int) bool {
		return params.Tiers[i].MaxDaysLeft < params.Tiers[j].MaxDaysLeft
	})

	return params
}
