// Package stats derives display-ready compliance values from a day's
// attendance count and the configured headcount.
package stats

import (
	"errors"
	"math"
)

// Tier labels by percent thresholds: >=80 high, >=50 medium, else low.
const (
	TierHigh   = "high"
	TierMedium = "medium"
	TierLow    = "low"
)

// ErrNonPositiveTotal means the configured headcount estimate cannot
// yield a meaningful percentage. It is a configuration problem and is
// meant to be caught at startup, not per cycle.
var ErrNonPositiveTotal = errors.New("total workers estimate must be positive")

// Compliance returns the clamped compliance percentage and its tier.
func Compliance(todayCount, totalEstimate int) (int, string, error) {
	if totalEstimate <= 0 {
		return 0, "", ErrNonPositiveTotal
	}

	percent := int(math.Round(100 * float64(todayCount) / float64(totalEstimate)))
	if percent > 100 {
		percent = 100
	}

	return percent, tierFor(percent), nil
}

func tierFor(percent int) string {
	switch {
	case percent >= 80:
		return TierHigh
	case percent >= 50:
		return TierMedium
	default:
		return TierLow
	}
}
