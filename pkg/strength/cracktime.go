// SPDX-License-Identifier: MIT

package strength

import (
	"fmt"
	"math"
)

// DefaultGuessRate is the assumed offline brute-force speed, in guesses per
// second. Roughly a single modern GPU rig against a fast hash.
const DefaultGuessRate = 1e10

const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
	secondsPerDay    = 86400
	secondsPerYear   = 31536000
)

// CrackTime converts an entropy estimate into a human-readable brute-force
// duration at the given guess rate. Buckets are strict upper bounds, so a
// value of exactly one hour lands in the hours bucket.
func CrackTime(entropy float64, guessesPerSecond float64) string {
	if guessesPerSecond <= 0 {
		guessesPerSecond = DefaultGuessRate
	}

	guesses := math.Pow(2, entropy)
	return humanizeSeconds(guesses / guessesPerSecond)
}

func humanizeSeconds(seconds float64) string {
	switch {
	case seconds < 1:
		return "less than 1 second"
	case seconds < secondsPerMinute:
		return fmt.Sprintf("%.0f seconds", math.Round(seconds))
	case seconds < secondsPerHour:
		return fmt.Sprintf("%.0f minutes", math.Round(seconds/secondsPerMinute))
	case seconds < secondsPerDay:
		return fmt.Sprintf("%.0f hours", math.Round(seconds/secondsPerHour))
	case seconds < secondsPerYear:
		return fmt.Sprintf("%.0f days", math.Round(seconds/secondsPerDay))
	case seconds < secondsPerYear*100:
		return fmt.Sprintf("%.0f years", math.Round(seconds/secondsPerYear))
	default:
		return "centuries or more"
	}
}
