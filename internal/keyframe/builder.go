package keyframe

import (
	"github.com/ivlev/screen2video/internal/cursor"
	"github.com/ivlev/screen2video/internal/easing"
	"github.com/ivlev/screen2video/internal/geometry"
	"github.com/ivlev/screen2video/internal/telemetry"
)

// Builder converts a raw event list into keyframes and clicks. One
// keyframe is emitted per move sample — no downsampling — so the full
// telemetry fidelity survives into interpolation.
type Builder struct {
	Transform  *geometry.Transform
	DurationMs int64

	// StabilizeWindowMs is the shape debounce look-ahead window; <= 0
	// disables stabilization.
	StabilizeWindowMs int64
}

// Build partitions events into move keyframes and click events, maps both
// into video space and guarantees boundary keyframes at t=0 and
// t=duration. The input may be unsorted; output sequences are sorted
// ascending with arrival order preserved for equal timestamps.
func (b *Builder) Build(events []telemetry.RawEvent) ([]CursorKeyframe, []ClickEvent) {
	sorted := make([]telemetry.RawEvent, len(events))
	copy(sorted, events)
	telemetry.SortByTimestamp(sorted)

	var keyframes []CursorKeyframe
	var clicks []ClickEvent

	for _, e := range sorted {
		p := b.Transform.ToVideo(e.X, e.Y)

		switch e.Action {
		case telemetry.ActionDown, telemetry.ActionUp:
			if e.Button == "" {
				continue
			}
			clicks = append(clicks, ClickEvent{
				TimestampMs: e.TimestampMs,
				X:           p.X,
				Y:           p.Y,
				Button:      e.Button,
				Action:      e.Action,
			})
		case telemetry.ActionMove:
			keyframes = append(keyframes, CursorKeyframe{
				TimestampMs: e.TimestampMs,
				X:           p.X,
				Y:           p.Y,
				Shape:       cursor.ParseShape(e.CursorShape),
				Easing:      easing.Linear,
			})
		}
	}

	if b.StabilizeWindowMs > 0 {
		StabilizeShapes(keyframes, b.StabilizeWindowMs)
	}

	keyframes = b.ensureBoundaries(keyframes)
	return keyframes, clicks
}

// ensureBoundaries clones the nearest real sample to anchor the sequence
// at t=0 and t=duration, so interpolation is defined over the whole video.
func (b *Builder) ensureBoundaries(keyframes []CursorKeyframe) []CursorKeyframe {
	if len(keyframes) == 0 {
		return keyframes
	}

	if keyframes[0].TimestampMs > 0 {
		first := keyframes[0]
		first.TimestampMs = 0
		keyframes = append([]CursorKeyframe{first}, keyframes...)
	}

	if b.DurationMs > 0 && keyframes[len(keyframes)-1].TimestampMs < b.DurationMs {
		last := keyframes[len(keyframes)-1]
		last.TimestampMs = b.DurationMs
		keyframes = append(keyframes, last)
	}

	return keyframes
}
