package keyframe

import (
	"github.com/ivlev/screen2video/internal/easing"
	"github.com/ivlev/screen2video/internal/telemetry"
)

// ClickScaleAt computes the cursor scale pulse triggered by the most
// recent button press. The animation squeezes the cursor from 1.0 down to
// minScale over the first half of durationMs (ease-out) and restores it
// over the second half (ease-in). Outside any active pulse the scale is
// 1.0.
func ClickScaleAt(clicks []ClickEvent, t int64, durationMs int64, minScale float64) float64 {
	if durationMs <= 0 || minScale >= 1.0 {
		return 1.0
	}

	// Most recent down within the animation window.
	var active *ClickEvent
	for i := range clicks {
		c := &clicks[i]
		if c.Action != telemetry.ActionDown {
			continue
		}
		delta := t - c.TimestampMs
		if delta >= 0 && delta < durationMs {
			if active == nil || c.TimestampMs > active.TimestampMs {
				active = c
			}
		}
	}
	if active == nil {
		return 1.0
	}

	progress := float64(t-active.TimestampMs) / float64(durationMs)

	if progress < 0.5 {
		// Squeeze: 1.0 -> minScale
		u := easing.Apply(easing.EaseOut, progress*2)
		return 1.0 - (1.0-minScale)*u
	}

	// Release: minScale -> 1.0
	u := easing.Apply(easing.EaseIn, (progress-0.5)*2)
	return minScale + (1.0-minScale)*u
}
