package ink

import "math"

// Pressure response constants. Pressure 0 maps to pressureFloor of the
// size-implied scale and pressure 1 maps to the full scale, so faint
// touches stay visible instead of vanishing.
const (
	pressureFloor = 0.3
	pressureSpan  = 0.7
)

// StampScale maps normalized pressure to a stamp scale factor for a brush
// of brushSize surface units over a primitive of base diameter units.
//
// Non-finite pressure (NaN, ±Inf) is replaced by fallback before mapping;
// out-of-range finite pressure is clamped to [0, 1]. The result is always
// positive for positive brushSize and base.
func StampScale(pressure, brushSize, base, fallback float64) float64 {
	if math.IsNaN(pressure) || math.IsInf(pressure, 0) {
		pressure = fallback
	}
	if pressure < 0 {
		pressure = 0
	}
	if pressure > 1 {
		pressure = 1
	}
	return (pressureFloor + pressureSpan*pressure) * (brushSize / base)
}
