package ink

// Sample is one pointer reading in drawing-surface coordinates.
//
// Pressure is normalized to [0, 1]. Devices that do not report pressure
// should pass 0; the engine substitutes its configured fallback. Time is
// the sample timestamp in seconds; only differences between consecutive
// timestamps matter, the epoch is the host's choice.
type Sample struct {
	Point    Point
	Pressure float64
	Time     float64
}

// Stamp is one placement of the brush primitive.
//
// Stamps are transient: the resampler produces them and the compositor
// consumes them immediately. Scale multiplies the backend's base stamp
// diameter (see BaseStampDiameter).
type Stamp struct {
	Point Point
	Scale float64
	Color RGBA
}

// BaseStampDiameter is the diameter, in surface units, of the unscaled
// brush primitive. A stamp with Scale 1 covers this many units.
const BaseStampDiameter = 128.0

// StrokeRecord summarizes one completed stroke. Records are delivered to
// the OnStroke callback after commit and logged at debug level; they carry
// enough for hosts to build history or sync layers on top of the engine.
type StrokeRecord struct {
	// ID uniquely identifies the stroke session.
	ID string

	// Stamps is the number of stamps committed for this stroke.
	Stamps int

	// Bounds is the axis-aligned bounding box of all stamp centers,
	// in surface units. Zero-valued when Stamps is 0.
	MinX, MinY, MaxX, MaxY float64

	// Duration is the elapsed time in seconds between the first and last
	// sample of the stroke.
	Duration float64
}
