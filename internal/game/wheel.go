package game

import (
	"errors"
	"fmt"

	"casino_webapp/internal/rng"
)

// Wheel segments come from fixed 10-slot templates per risk level, tiled to
// the requested segment count. The high-risk wheel is all-or-nothing: a
// single jackpot slot paying segments x RTP.

var wheelValidSegments = map[int]bool{10: true, 20: true, 30: true, 40: true, 50: true}

var wheelLowTemplate = []float64{1.5, 1.2, 1.2, 1.2, 0, 1.2, 1.2, 1.2, 1.2, 0}
var wheelMediumTemplate = []float64{0, 1.9, 0, 1.5, 0, 2, 0, 1.5, 0, 3}

var ErrInvalidWheelSegments = errors.New("wheel segments must be one of 10, 20, 30, 40, 50")

// BuildWheel returns the multiplier for every segment of a wheel.
func BuildWheel(segments int, risk Risk, rtp float64) ([]float64, error) {
	if !wheelValidSegments[segments] {
		return nil, ErrInvalidWheelSegments
	}

	out := make([]float64, segments)
	switch risk {
	case RiskLow:
		for i := range out {
			out[i] = wheelLowTemplate[i%len(wheelLowTemplate)]
		}
	case RiskMedium:
		for i := range out {
			out[i] = wheelMediumTemplate[i%len(wheelMediumTemplate)]
		}
	case RiskHigh:
		out[segments-1] = floor2(float64(segments) * rtp)
	default:
		return nil, ErrInvalidRisk
	}
	return out, nil
}

// ValidateWheelTemplates sanity-checks every wheel that can be built.
// Fatal at startup on failure.
func ValidateWheelTemplates(rtp float64) error {
	for segments := range wheelValidSegments {
		for _, risk := range []Risk{RiskLow, RiskMedium, RiskHigh} {
			wheel, err := BuildWheel(segments, risk, rtp)
			if err != nil {
				return err
			}
			if len(wheel) != segments {
				return fmt.Errorf("wheel: %d segments %s built %d slots", segments, risk, len(wheel))
			}
		}
	}
	return nil
}

// WheelOutcome is the result of one spin.
type WheelOutcome struct {
	Segments   int     `json:"segments"`
	Risk       Risk    `json:"risk"`
	Index      int     `json:"index"`
	Multiplier float64 `json:"multiplier"`
}

// PlayWheel draws a single uniform segment index.
func PlayWheel(segments int, risk Risk, rtp float64, r rng.Source) (WheelOutcome, error) {
	wheel, err := BuildWheel(segments, risk, rtp)
	if err != nil {
		return WheelOutcome{}, err
	}

	index := rng.IntN(r, segments)
	return WheelOutcome{
		Segments:   segments,
		Risk:       risk,
		Index:      index,
		Multiplier: wheel[index],
	}, nil
}
