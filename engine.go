package ink

import (
	"image"
	"log/slog"
	"math"

	"github.com/google/uuid"
)

// sessionState is the stroke session state machine.
type sessionState uint8

const (
	stateIdle sessionState = iota
	stateDrawing
	stateDestroyed
)

// Engine is the stroke-rendering engine: it owns the brush configuration,
// the layer pair, and the stroke session state machine that turns pointer
// events into committed strokes.
//
// All methods must be called from a single logical thread of control (the
// host's event loop). See the package documentation for the ordering
// guarantees this buys.
type Engine struct {
	cfg      Config
	comp     *compositor
	onStroke func(StrokeRecord)

	state sessionState

	// cursor is the last pointer position, tracked even while idle so
	// hosts can render a brush outline.
	cursor Point

	// Session state, valid only while drawing.
	strokeID    string
	last        Point
	lastTime    float64
	strokeStart float64
	stamps      int
	minX, minY  float64
	maxX, maxY  float64
}

// NewEngine creates an engine with a persistent layer and an accumulation
// layer of the given dimensions in surface units.
//
// Without WithAllocator the registry's best available backend is used;
// import a backend package (e.g. github.com/gogpu/ink/raster) to make one
// available.
func NewEngine(width, height int, opts ...Option) (*Engine, error) {
	o := defaultEngineOptions()
	for _, opt := range opts {
		opt(&o)
	}

	alloc := o.allocator
	if alloc == nil {
		var err error
		alloc, err = NewAllocator()
		if err != nil {
			return nil, err
		}
	}

	comp, err := newCompositor(alloc, width, height, o.scale)
	if err != nil {
		return nil, err
	}

	Logger().Info("ink: engine created",
		slog.String("backend", alloc.Name()),
		slog.Int("width", width),
		slog.Int("height", height),
		slog.Float64("scale", o.scale))

	return &Engine{
		cfg:      o.config,
		comp:     comp,
		onStroke: o.onStroke,
		state:    stateIdle,
	}, nil
}

// Config returns the current brush configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// SetSize sets the brush diameter in surface units, clamped to
// [MinBrushSize, MaxBrushSize]. Takes effect from the next stamp.
func (e *Engine) SetSize(size float64) {
	e.cfg.Size = clampSize(size)
}

// SetColor sets the brush color. Takes effect from the next stamp.
func (e *Engine) SetColor(c RGBA) {
	e.cfg.Color = c
}

// SetSmoothing enables or disables path smoothing.
func (e *Engine) SetSmoothing(enabled bool) {
	e.cfg.SmoothingEnabled = enabled
}

// SetStrokeCallback sets the function invoked after each stroke commit.
// Pass nil to remove it.
func (e *Engine) SetStrokeCallback(fn func(StrokeRecord)) {
	e.onStroke = fn
}

// Cursor returns the last pointer position seen by the engine, including
// moves received while idle.
func (e *Engine) Cursor() Point {
	return e.cursor
}

// Drawing reports whether a stroke session is active.
func (e *Engine) Drawing() bool {
	return e.state == stateDrawing
}

// PointerDown starts a stroke session at p with the given normalized
// pressure and timestamp in seconds.
//
// Zero or non-finite pressure is replaced by the configured pointer-down
// fallback. Any stamps still pending from an interrupted session are
// flushed to the persistent layer first. The entry point itself is
// stamped immediately, so a tap with no movement still leaves a mark.
func (e *Engine) PointerDown(p Point, pressure, t float64) {
	if e.state == stateDestroyed {
		return
	}
	e.cursor = p

	// Defensive flush: a down without a matching up means pending state
	// from the previous session must not bleed into this one.
	if e.state == stateDrawing {
		e.finishStroke()
	}
	e.comp.Commit()

	if pressure <= 0 || math.IsNaN(pressure) || math.IsInf(pressure, 0) {
		pressure = e.cfg.DownPressure
	}

	e.state = stateDrawing
	e.strokeID = uuid.NewString()
	e.last = p
	e.lastTime = t
	e.strokeStart = t
	e.stamps = 0

	e.comp.Begin()
	e.stampSegment(p, p, pressure)
}

// PointerMove feeds a batch of coalesced samples into the active stroke.
//
// Samples are processed strictly in slice order; each sample's smoothing
// builds on the previous one. A move while idle only updates the cursor.
// An empty batch is a no-op.
func (e *Engine) PointerMove(samples []Sample) {
	if e.state == stateDestroyed || len(samples) == 0 {
		return
	}
	e.cursor = samples[len(samples)-1].Point

	if e.state != stateDrawing {
		return
	}

	smoother := e.cfg.Smoother()
	for _, s := range samples {
		dt := s.Time - e.lastTime

		target := s.Point
		if e.cfg.SmoothingEnabled {
			target = smoother.Smooth(e.last, s.Point, dt)
		}

		pressure := s.Pressure
		if pressure <= 0 || math.IsNaN(pressure) || math.IsInf(pressure, 0) {
			pressure = e.cfg.MovePressure
		}

		e.stampSegment(e.last, target, pressure)
		e.last = target
		e.lastTime = s.Time
	}
}

// PointerUp ends the active stroke and commits it to the persistent
// layer. Safe to call while idle.
func (e *Engine) PointerUp() {
	if e.state != stateDrawing {
		return
	}
	e.finishStroke()
}

// PointerLeave ends the active stroke exactly like PointerUp. Treating
// leave as termination avoids a stray long segment when the pointer
// re-enters elsewhere.
func (e *Engine) PointerLeave() {
	e.PointerUp()
}

// Resize reallocates both layers at the new dimensions. Previously
// committed content is lost (content-preserving resize is out of scope).
// A stroke in progress is discarded, not committed: its stamps no longer
// match the new surface.
func (e *Engine) Resize(width, height int) error {
	if e.state == stateDestroyed {
		return nil
	}
	if e.state == stateDrawing {
		Logger().Warn("ink: resize during active stroke, session discarded",
			slog.String("stroke", e.strokeID),
			slog.Int("stamps", e.stamps))
		e.state = stateIdle
	}
	return e.comp.Resize(width, height)
}

// Snapshot returns the persistent layer (committed strokes only) as an
// RGBA image at device-pixel resolution. Returns nil after Destroy.
func (e *Engine) Snapshot() *image.RGBA {
	if e.state == stateDestroyed {
		return nil
	}
	return e.comp.persistent.Snapshot()
}

// Destroy commits any pending stroke, then releases both layers. Destroy
// is idempotent, and every engine method tolerates being called after it
// as a no-op.
func (e *Engine) Destroy() error {
	if e.state == stateDestroyed {
		return nil
	}
	if e.state == stateDrawing {
		e.finishStroke()
	}
	e.state = stateDestroyed

	Logger().Info("ink: engine destroyed")
	return e.comp.Release()
}

// stampSegment resamples the segment from a to b and accumulates one
// stamp per placement, scaled by pressure.
func (e *Engine) stampSegment(a, b Point, pressure float64) {
	scale := StampScale(pressure, e.cfg.Size, BaseStampDiameter, e.cfg.MovePressure)
	for pt := range Resample(a, b, e.cfg.Size) {
		e.comp.Add(Stamp{Point: pt, Scale: scale, Color: e.cfg.Color})
		if e.stamps == 0 {
			e.minX, e.minY = pt.X, pt.Y
			e.maxX, e.maxY = pt.X, pt.Y
		} else {
			e.minX = math.Min(e.minX, pt.X)
			e.minY = math.Min(e.minY, pt.Y)
			e.maxX = math.Max(e.maxX, pt.X)
			e.maxY = math.Max(e.maxY, pt.Y)
		}
		e.stamps++
	}
}

// finishStroke commits the session and emits its record.
func (e *Engine) finishStroke() {
	n := e.comp.Commit()
	e.state = stateIdle

	rec := StrokeRecord{
		ID:       e.strokeID,
		Stamps:   n,
		Duration: e.lastTime - e.strokeStart,
	}
	if n > 0 {
		rec.MinX, rec.MinY = e.minX, e.minY
		rec.MaxX, rec.MaxY = e.maxX, e.maxY
	}

	Logger().Debug("ink: stroke committed",
		slog.String("stroke", rec.ID),
		slog.Int("stamps", rec.Stamps),
		slog.Float64("duration", rec.Duration))

	if e.onStroke != nil {
		e.onStroke(rec)
	}
}
