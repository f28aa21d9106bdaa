// Package effects produces the time-bounded parametric overlays derived
// from the click and movement streams: expanding click ripples, a fading
// trail and a pulsing highlight ring. Generators are pure; disabled
// effects contribute zero instances.
package effects

import (
	"math"
	"sort"

	"github.com/ivlev/screen2video/internal/config"
	"github.com/ivlev/screen2video/internal/easing"
	"github.com/ivlev/screen2video/internal/keyframe"
	"github.com/ivlev/screen2video/internal/telemetry"
)

// Kind names an overlay type.
type Kind string

const (
	KindClickCircle Kind = "clickCircle"
	KindTrail       Kind = "trail"
	KindRing        Kind = "highlightRing"
)

// Frame is one overlay instance active at one timestamp.
type Frame struct {
	TimestampMs int64   `json:"timestamp"`
	Kind        Kind    `json:"kind"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Opacity     float64 `json:"opacity"`
	Size        float64 `json:"size"`
	Color       string  `json:"color"`
}

// Generator derives all effect instances for a run up front, one instance
// per (effect, output frame timestamp) pair.
type Generator struct {
	Config          config.MouseEffectsConfig
	FrameIntervalMs float64
}

// Generate walks the output frame timestamps and emits every effect
// instance. The result is sorted by timestamp.
func (g *Generator) Generate(frameTimes []int64, track []keyframe.CursorKeyframe, clicks []keyframe.ClickEvent) []Frame {
	var out []Frame

	out = append(out, g.clickCircles(frameTimes, clicks)...)
	out = append(out, g.trail(frameTimes, track)...)
	out = append(out, g.highlightRing(frameTimes, track)...)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TimestampMs < out[j].TimestampMs
	})
	return out
}

// clickCircles emits an expanding, fading ripple for each button press.
// Size eases 0 -> MaxSize; opacity fades linearly 1 -> 0.
func (g *Generator) clickCircles(frameTimes []int64, clicks []keyframe.ClickEvent) []Frame {
	cfg := g.Config.ClickCircles
	if !cfg.Enabled || cfg.DurationMs <= 0 {
		return nil
	}

	var out []Frame
	for _, c := range clicks {
		if c.Action != telemetry.ActionDown {
			continue
		}
		for _, t := range frameTimes {
			delta := t - c.TimestampMs
			if delta < 0 || delta >= cfg.DurationMs {
				continue
			}
			progress := float64(delta) / float64(cfg.DurationMs)
			out = append(out, Frame{
				TimestampMs: t,
				Kind:        KindClickCircle,
				X:           c.X,
				Y:           c.Y,
				Opacity:     1.0 - progress,
				Size:        cfg.MaxSize * easing.Apply(easing.EaseOut, progress),
				Color:       cfg.Color,
			})
		}
	}
	return out
}

// trail emits up to Length preceding track positions per frame, fading
// with their index.
func (g *Generator) trail(frameTimes []int64, track []keyframe.CursorKeyframe) []Frame {
	cfg := g.Config.Trail
	if !cfg.Enabled || cfg.Length <= 0 || len(track) == 0 {
		return nil
	}

	var out []Frame
	for _, t := range frameTimes {
		// Index of the last sample at or before t.
		idx := sort.Search(len(track), func(i int) bool {
			return track[i].TimestampMs > t
		}) - 1
		if idx < 0 {
			continue
		}

		for i := 0; i < cfg.Length && idx-i >= 0; i++ {
			kf := track[idx-i]
			opacity := (1.0 - float64(i)/float64(cfg.Length)) * (1.0 - cfg.FadeSpeed)
			if opacity <= 0 {
				break
			}
			out = append(out, Frame{
				TimestampMs: t,
				Kind:        KindTrail,
				X:           kf.X,
				Y:           kf.Y,
				Opacity:     opacity,
				Size:        6,
				Color:       cfg.Color,
			})
		}
	}
	return out
}

// highlightRing emits one pulsing ring per frame, tracking the cursor.
// The sinusoid drives both a ±20% size oscillation and a 0.7–1.0 opacity
// oscillation.
func (g *Generator) highlightRing(frameTimes []int64, track []keyframe.CursorKeyframe) []Frame {
	cfg := g.Config.Ring
	if !cfg.Enabled || len(track) == 0 {
		return nil
	}

	var out []Frame
	for _, t := range frameTimes {
		state := keyframe.PositionAt(track, t)

		pulse := math.Sin(float64(t) / 1000.0 * cfg.PulseSpeed * 10)
		unit := (pulse + 1) / 2 // [-1,1] -> [0,1]

		out = append(out, Frame{
			TimestampMs: t,
			Kind:        KindRing,
			X:           state.X,
			Y:           state.Y,
			Opacity:     0.7 + 0.3*unit,
			Size:        cfg.Size * (0.8 + 0.4*unit),
			Color:       cfg.Color,
		})
	}
	return out
}

// ActiveAt filters instances whose timestamp falls within toleranceMs of
// t. Instances are pre-generated per frame timestamp, so the tolerance is
// normally one frame interval.
func ActiveAt(all []Frame, t int64, toleranceMs float64) []Frame {
	var out []Frame
	for _, f := range all {
		if math.Abs(float64(f.TimestampMs-t)) < toleranceMs {
			out = append(out, f)
		}
	}
	return out
}
