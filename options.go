package ink

// Brush configuration bounds and defaults.
const (
	// MinBrushSize and MaxBrushSize bound the brush diameter in surface
	// units. SetSize and WithSize clamp to this range.
	MinBrushSize = 1.0
	MaxBrushSize = 400.0

	defaultBrushSize  = 16.0
	defaultSmoothingK = 80.0
	defaultMinAlpha   = 0.15
	defaultMaxAlpha   = 0.9

	// Pressure fallbacks. Historically these differed between stroke
	// start and continuation; they are explicit policy constants here.
	defaultDownPressure = 0.8
	defaultMovePressure = 1.0
)

// Config holds the brush and smoothing configuration read by every
// pipeline stage. It is owned by the Engine instance; there is no ambient
// package-level brush state.
type Config struct {
	// Size is the brush diameter in surface units, in [MinBrushSize,
	// MaxBrushSize].
	Size float64

	// Color is the brush color. Alpha below 1 produces the translucent
	// strokes that make single-blend commits observable.
	Color RGBA

	// SmoothingEnabled bypasses the path smoother entirely when false.
	SmoothingEnabled bool

	// SmoothingK, MinAlpha and MaxAlpha parameterize the smoother; see
	// Smoother.
	SmoothingK float64
	MinAlpha   float64
	MaxAlpha   float64

	// DownPressure substitutes for zero or absent pressure on pointer
	// down; MovePressure substitutes for non-finite pressure on move
	// samples.
	DownPressure float64
	MovePressure float64
}

// DefaultConfig returns the configuration used when no options are given:
// 16px black brush, smoothing on with k=80, alpha clamped to [0.15, 0.9].
func DefaultConfig() Config {
	return Config{
		Size:             defaultBrushSize,
		Color:            Black,
		SmoothingEnabled: true,
		SmoothingK:       defaultSmoothingK,
		MinAlpha:         defaultMinAlpha,
		MaxAlpha:         defaultMaxAlpha,
		DownPressure:     defaultDownPressure,
		MovePressure:     defaultMovePressure,
	}
}

// Smoother returns the smoother parameterized by this configuration.
func (c Config) Smoother() Smoother {
	return NewSmoother(c.SmoothingK, c.MinAlpha, c.MaxAlpha)
}

// clampSize restricts a brush size to the valid range.
func clampSize(size float64) float64 {
	if size < MinBrushSize {
		return MinBrushSize
	}
	if size > MaxBrushSize {
		return MaxBrushSize
	}
	return size
}

// Option configures an Engine during creation.
//
// Example:
//
//	eng, err := ink.NewEngine(800, 600,
//	    ink.WithSize(24),
//	    ink.WithColor(ink.Hex("#1E90FF").WithAlpha(0.6)),
//	    ink.WithSmoothing(true),
//	)
type Option func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	config    Config
	allocator Allocator
	scale     float64
	onStroke  func(StrokeRecord)
}

// defaultEngineOptions returns the default engine options.
func defaultEngineOptions() engineOptions {
	return engineOptions{
		config:    DefaultConfig(),
		allocator: nil, // registry best-available if nil
		scale:     1.0,
	}
}

// WithSize sets the brush diameter in surface units, clamped to
// [MinBrushSize, MaxBrushSize].
func WithSize(size float64) Option {
	return func(o *engineOptions) {
		o.config.Size = clampSize(size)
	}
}

// WithColor sets the brush color.
func WithColor(c RGBA) Option {
	return func(o *engineOptions) {
		o.config.Color = c
	}
}

// WithSmoothing enables or disables path smoothing.
func WithSmoothing(enabled bool) Option {
	return func(o *engineOptions) {
		o.config.SmoothingEnabled = enabled
	}
}

// WithSmoothingK sets the smoothing speed constant. Non-positive values
// are ignored.
func WithSmoothingK(k float64) Option {
	return func(o *engineOptions) {
		if k > 0 {
			o.config.SmoothingK = k
		}
	}
}

// WithAlphaRange sets the smoother's blend factor clamp. Both bounds must
// lie in (0, 1) with minAlpha <= maxAlpha; invalid ranges are ignored.
func WithAlphaRange(minAlpha, maxAlpha float64) Option {
	return func(o *engineOptions) {
		if minAlpha <= 0 || maxAlpha >= 1 || minAlpha > maxAlpha {
			return
		}
		o.config.MinAlpha = minAlpha
		o.config.MaxAlpha = maxAlpha
	}
}

// WithPressureFallback sets the substitute pressure values: down for
// zero/absent pressure on pointer down, move for non-finite pressure on
// move samples.
func WithPressureFallback(down, move float64) Option {
	return func(o *engineOptions) {
		o.config.DownPressure = down
		o.config.MovePressure = move
	}
}

// WithAllocator sets a specific layer allocator, bypassing the registry.
// Use this for dependency injection of custom or test backends.
func WithAllocator(a Allocator) Option {
	return func(o *engineOptions) {
		o.allocator = a
	}
}

// WithScale sets the device scale factor for allocated layers (1.0 = no
// HiDPI scaling). Non-positive values are ignored.
func WithScale(scale float64) Option {
	return func(o *engineOptions) {
		if scale > 0 {
			o.scale = scale
		}
	}
}

// WithStrokeCallback registers a callback invoked after each stroke
// commit with a summary of the committed stroke.
func WithStrokeCallback(fn func(StrokeRecord)) Option {
	return func(o *engineOptions) {
		o.onStroke = fn
	}
}
