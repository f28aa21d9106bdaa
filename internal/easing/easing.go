// Package easing holds the time-warp curves shared by every blend in the
// pipeline: keyframe interpolation, zoom transitions and the click pulse.
package easing

// Easing names one of the supported curves.
type Easing string

const (
	Linear    Easing = "linear"
	EaseIn    Easing = "easeIn"
	EaseOut   Easing = "easeOut"
	EaseInOut Easing = "easeInOut"
)

// Apply maps linear progress t in [0,1] through the named curve. Unknown
// names fall back to linear. All curves are monotonic with f(0)=0, f(1)=1.
func Apply(e Easing, t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}

	switch e {
	case EaseIn:
		return t * t * t
	case EaseOut:
		inv := 1 - t
		return 1 - inv*inv*inv
	case EaseInOut:
		if t < 0.5 {
			return 4 * t * t * t
		}
		inv := -2*t + 2
		return 1 - inv*inv*inv/2
	default:
		return t
	}
}

// Parse normalizes a config string into an Easing, defaulting to linear.
func Parse(s string) Easing {
	switch Easing(s) {
	case EaseIn, EaseOut, EaseInOut:
		return Easing(s)
	default:
		return Linear
	}
}
