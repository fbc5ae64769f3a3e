package game

import "math"

// DefaultRTP is the configured return-to-player shared by every game.
// House edge = 1 - RTP.
const DefaultRTP = 0.99

// floor2 truncates to 2 decimal places (multiplier display precision).
func floor2(v float64) float64 {
	return math.Floor(v*100) / 100
}

// Payout computes the minor-unit payout for a bet and multiplier.
func Payout(amount int64, multiplier float64) int64 {
	if multiplier <= 0 {
		return 0
	}
	return int64(math.Floor(float64(amount) * multiplier))
}
