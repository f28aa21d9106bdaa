// Package director compiles the keyframe, zoom and effect timelines into
// one immutable FrameRenderSpec per output frame — the single source of
// truth the compositor consumes.
package director

import (
	"math"

	"github.com/ivlev/screen2video/internal/config"
	"github.com/ivlev/screen2video/internal/cursor"
	"github.com/ivlev/screen2video/internal/effects"
	"github.com/ivlev/screen2video/internal/geometry"
	"github.com/ivlev/screen2video/internal/keyframe"
	"github.com/ivlev/screen2video/internal/zoom"
)

// FrameRenderSpec is the fully resolved render instruction set for one
// output frame.
type FrameRenderSpec struct {
	FrameIndex  int
	TimestampMs int64
	CropRect    geometry.Rect
	CursorPos   geometry.Point
	CursorShape cursor.Shape
	CursorScale float64
	HasCursor   bool
	Effects     []effects.Frame
}

// Director resolves the per-frame plan. All inputs are read-only; the zoom
// timeline was produced by the tracker's sequential pre-pass, so BuildPlan
// itself is pure and frames could be resolved in any order.
type Director struct {
	Config     *config.Config
	VideoDims  geometry.Size
	DurationMs int64

	Keyframes    []keyframe.CursorKeyframe
	Clicks       []keyframe.ClickEvent
	ZoomTimeline []zoom.Region
	Effects      []effects.Frame
}

// FrameCount returns the number of output frames for the configured
// duration and frame rate.
func (d *Director) FrameCount() int {
	interval := d.FrameIntervalMs()
	if interval <= 0 || d.DurationMs <= 0 {
		return 0
	}
	return int(math.Ceil(float64(d.DurationMs) / interval))
}

// FrameIntervalMs returns the output frame interval in milliseconds.
func (d *Director) FrameIntervalMs() float64 {
	if d.Config.FPS <= 0 {
		return 0
	}
	return 1000.0 / float64(d.Config.FPS)
}

// FrameTimes returns the timestamp of every output frame, ascending.
func (d *Director) FrameTimes() []int64 {
	count := d.FrameCount()
	interval := d.FrameIntervalMs()
	times := make([]int64, count)
	for i := range times {
		times[i] = int64(float64(i) * interval)
	}
	return times
}

// BuildPlan resolves every frame into a FrameRenderSpec.
func (d *Director) BuildPlan() []FrameRenderSpec {
	count := d.FrameCount()
	interval := d.FrameIntervalMs()
	specs := make([]FrameRenderSpec, count)

	for i := 0; i < count; i++ {
		t := int64(float64(i) * interval)
		specs[i] = d.buildFrame(i, t, interval)
	}
	return specs
}

func (d *Director) buildFrame(index int, t int64, intervalMs float64) FrameRenderSpec {
	spec := FrameRenderSpec{
		FrameIndex:  index,
		TimestampMs: t,
		CropRect:    d.fullFrame(),
		CursorScale: 1.0,
	}

	// Empty telemetry degrades gracefully: frames render without a
	// cursor overlay instead of failing the run.
	if len(d.Keyframes) > 0 {
		state := keyframe.PositionAt(d.Keyframes, t)
		spec.HasCursor = true
		spec.CursorPos = geometry.Point{X: state.X, Y: state.Y}
		spec.CursorShape = state.Shape
		spec.CursorScale = keyframe.ClickScaleAt(
			d.Clicks, t,
			d.Config.Cursor.ClickAnimationMs,
			d.Config.Cursor.ClickMinScale,
		)
	}

	if d.Config.Zoom.Enabled && index < len(d.ZoomTimeline) {
		spec.CropRect = d.ZoomTimeline[index].CropRect()
	}

	// Instances are generated at exact frame timestamps; half an interval
	// matches each one to a single frame.
	spec.Effects = effects.ActiveAt(d.Effects, t, intervalMs/2)
	return spec
}

func (d *Director) fullFrame() geometry.Rect {
	return geometry.Rect{X: 0, Y: 0, W: d.VideoDims.Width, H: d.VideoDims.Height}
}
