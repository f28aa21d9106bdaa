package keyframe

import (
	"sort"

	"github.com/ivlev/screen2video/internal/cursor"
	"github.com/ivlev/screen2video/internal/easing"
	"github.com/ivlev/screen2video/internal/geometry"
)

// CursorState is the interpolated cursor pose at one query timestamp.
type CursorState struct {
	X     float64
	Y     float64
	Scale float64
	Shape cursor.Shape
}

// PositionAt returns the cursor state at time t by blending the bracketing
// keyframe pair with the easing named on the earlier keyframe. At a
// keyframe's own timestamp the keyframe is returned exactly — boundary
// queries never drift. Shape is never blended; it comes from the earlier
// keyframe.
func PositionAt(keyframes []CursorKeyframe, t int64) CursorState {
	if len(keyframes) == 0 {
		return CursorState{Scale: 1.0, Shape: cursor.Arrow}
	}

	// Before the first keyframe (or a single-keyframe track) the first
	// keyframe is returned verbatim.
	if t <= keyframes[0].TimestampMs || len(keyframes) == 1 {
		return stateOf(keyframes[0])
	}
	last := keyframes[len(keyframes)-1]
	if t >= last.TimestampMs {
		return stateOf(last)
	}

	// Binary search for the first keyframe strictly after t; the sequence
	// is non-decreasing in timestamp.
	idx := sort.Search(len(keyframes), func(i int) bool {
		return keyframes[i].TimestampMs > t
	})
	prev := keyframes[idx-1]
	next := keyframes[idx]

	if prev.TimestampMs == next.TimestampMs {
		return stateOf(prev)
	}

	u := float64(t-prev.TimestampMs) / float64(next.TimestampMs-prev.TimestampMs)
	u = easing.Apply(prev.Easing, u)

	shape := prev.Shape
	if shape == "" {
		shape = next.Shape
	}

	return CursorState{
		X:     geometry.Lerp(prev.X, next.X, u),
		Y:     geometry.Lerp(prev.Y, next.Y, u),
		Scale: 1.0,
		Shape: shape,
	}
}

func stateOf(kf CursorKeyframe) CursorState {
	shape := kf.Shape
	if shape == "" {
		shape = cursor.Arrow
	}
	return CursorState{X: kf.X, Y: kf.Y, Scale: 1.0, Shape: shape}
}
