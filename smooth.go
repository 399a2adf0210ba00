package ink

// Smoother is a velocity-adaptive exponential moving average over pointer
// positions. At low speeds the filter follows the raw input closely, where
// pixel-level jitter is most visible as wobble; at high speeds it lags
// further behind, trading responsiveness it does not need for stability.
//
// The zero value is not useful; construct with NewSmoother or use
// Config.Smoother.
type Smoother struct {
	// K controls the speed at which smoothing kicks in, in surface units
	// per second. The blend factor is k/(k+v) for speed v.
	K float64

	// MinAlpha and MaxAlpha clamp the blend factor. MinAlpha bounds the
	// worst-case lag; MaxAlpha below 1 keeps a little smoothing even at
	// rest.
	MinAlpha float64
	MaxAlpha float64
}

// NewSmoother creates a Smoother with the given parameters.
// K must be positive; MinAlpha and MaxAlpha must lie in (0, 1) with
// MinAlpha <= MaxAlpha. Values outside these ranges are not corrected
// here — Config validation owns that.
func NewSmoother(k, minAlpha, maxAlpha float64) Smoother {
	return Smoother{K: k, MinAlpha: minAlpha, MaxAlpha: maxAlpha}
}

// Smooth blends the raw current point toward the previous smoothed point.
//
// dt is the elapsed time in seconds since the previous sample. If dt <= 0
// the elapsed time is unmeasurable and raw is returned unchanged: smoothing
// without a valid time delta would invent a velocity.
func (s Smoother) Smooth(prev, raw Point, dt float64) Point {
	if dt <= 0 {
		return raw
	}

	v := raw.Distance(prev) / dt
	alpha := s.K / (s.K + v)
	if alpha < s.MinAlpha {
		alpha = s.MinAlpha
	}
	if alpha > s.MaxAlpha {
		alpha = s.MaxAlpha
	}

	return prev.Lerp(raw, alpha)
}

// Alpha returns the clamped blend factor for a given speed in surface
// units per second. Exposed for testing and host-side diagnostics.
func (s Smoother) Alpha(v float64) float64 {
	alpha := s.K / (s.K + v)
	if alpha < s.MinAlpha {
		return s.MinAlpha
	}
	if alpha > s.MaxAlpha {
		return s.MaxAlpha
	}
	return alpha
}
