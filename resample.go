package ink

import (
	"iter"
	"math"
)

// degenerateDist is the segment length below which resampling collapses to
// a single stamp at the endpoint.
const degenerateDist = 0.01

// StampSpacing returns the distance between consecutive stamps for a brush
// of the given size, in surface units.
//
// Spacing scales with brush size so visual stamp density (stamps per brush
// diameter) stays constant; the floor of 1 unit bounds the stamp count at
// very small sizes.
func StampSpacing(brushSize float64) float64 {
	return math.Max(0.25*brushSize, 1)
}

// Resample walks the segment from a to b and yields stamp placements at
// fixed spacing for the given brush size.
//
// The sequence is lazy, finite, and restartable: ranging over it again
// re-walks the same segment. The endpoint b is always the final point
// yielded, so consecutive segments chain without gaps; a itself is never
// yielded, since it was the last placement of the previous segment.
// A degenerate segment (length < 0.01) yields exactly b.
func Resample(a, b Point, brushSize float64) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		dist := a.Distance(b)
		if dist < degenerateDist {
			yield(b)
			return
		}

		steps := int(math.Ceil(dist / StampSpacing(brushSize)))
		for i := 1; i <= steps; i++ {
			if !yield(a.Lerp(b, float64(i)/float64(steps))) {
				return
			}
		}
	}
}
