// Package zoom implements the speed-adaptive zoom-follow camera. A Tracker
// carries the one piece of cross-frame state in the pipeline and must be
// advanced in strictly increasing timestamp order; Timeline runs that
// sequential pass up front and returns an immutable snapshot list the
// parallel render stage reads.
package zoom

import (
	"math"

	"github.com/ivlev/screen2video/internal/config"
	"github.com/ivlev/screen2video/internal/easing"
	"github.com/ivlev/screen2video/internal/geometry"
	"github.com/ivlev/screen2video/internal/keyframe"
)

// Region is one camera state: the crop rectangle (as center + dimensions)
// and the zoom scale active at an instant. The derived crop rect is always
// fully inside the video bounds.
type Region struct {
	TimestampMs int64          `json:"timestamp"`
	Center      geometry.Point `json:"center"`
	CropW       float64        `json:"cropWidth"`
	CropH       float64        `json:"cropHeight"`
	Scale       float64        `json:"scale"`
}

// CropRect returns the region's crop rectangle in video pixels.
func (r Region) CropRect() geometry.Rect {
	return geometry.Rect{
		X: r.Center.X - r.CropW/2,
		Y: r.Center.Y - r.CropH/2,
		W: r.CropW,
		H: r.CropH,
	}
}

// targetEpsilon is the center movement (video px) below which the target
// is considered unchanged and the running transition keeps its anchor.
const targetEpsilon = 2.0

// Tracker computes the camera region per output-frame timestamp.
type Tracker struct {
	cfg   config.ZoomConfig
	video geometry.Size

	current         Region
	target          Region
	transitionStart int64
	anchor          Region // current state at the moment the target last changed
	initialized     bool
	lastTs          int64
}

// NewTracker creates a tracker over the given video dimensions.
func NewTracker(cfg config.ZoomConfig, video geometry.Size) *Tracker {
	return &Tracker{cfg: cfg, video: video}
}

// Advance computes the region for timestamp t. Calls must use strictly
// non-decreasing timestamps; the tracker carries running state between
// calls.
func (tr *Tracker) Advance(t int64, track []keyframe.CursorKeyframe) Region {
	state := keyframe.PositionAt(track, t)
	cursorPos := geometry.Point{X: state.X, Y: state.Y}

	level := tr.effectiveLevel(t, track)
	target := tr.buildTarget(t, cursorPos, level)

	if !tr.initialized {
		tr.current = target
		tr.target = target
		tr.anchor = target
		tr.transitionStart = t
		tr.initialized = true
		tr.lastTs = t
		return tr.snapshot(t)
	}

	// Restart the transition window when the target materially moves.
	if geometry.Distance(target.Center, tr.target.Center) > targetEpsilon ||
		math.Abs(target.Scale-tr.target.Scale) > 0.01 {
		tr.target = target
		tr.anchor = tr.current
		tr.transitionStart = t
	} else {
		tr.target.TimestampMs = t
	}

	progress := tr.progressAt(t)
	eased := easing.Apply(easing.EaseInOut, progress)

	// Center follows the straight path at constant perceived speed; size
	// and scale blend linearly.
	tr.current = Region{
		TimestampMs: t,
		Center:      geometry.LerpAlongPath(tr.anchor.Center, tr.target.Center, eased),
		CropW:       geometry.Lerp(tr.anchor.CropW, tr.target.CropW, eased),
		CropH:       geometry.Lerp(tr.anchor.CropH, tr.target.CropH, eased),
		Scale:       geometry.Lerp(tr.anchor.Scale, tr.target.Scale, eased),
	}

	if progress >= 1 {
		tr.current = tr.target
		tr.current.TimestampMs = t
		tr.anchor = tr.current
		tr.transitionStart = t
	}

	tr.clampCurrent()
	tr.lastTs = t
	return tr.snapshot(t)
}

// Timeline runs the sequential pre-pass over all frame timestamps and
// returns one immutable region per frame.
func (tr *Tracker) Timeline(frameTimes []int64, track []keyframe.CursorKeyframe) []Region {
	regions := make([]Region, 0, len(frameTimes))
	for _, t := range frameTimes {
		regions = append(regions, tr.Advance(t, track))
	}
	return regions
}

// effectiveLevel reduces the configured zoom level proportionally when the
// instantaneous cursor speed exceeds the threshold — fast motion forces a
// wider view. Never below 1.0.
func (tr *Tracker) effectiveLevel(t int64, track []keyframe.CursorKeyframe) float64 {
	level := tr.cfg.Level
	if level < 1.0 {
		level = 1.0
	}

	speed := cursorSpeed(track, t)
	if tr.cfg.SpeedThreshold > 0 && speed > tr.cfg.SpeedThreshold {
		level *= tr.cfg.SpeedThreshold / speed
		if level < 1.0 {
			level = 1.0
		}
	}
	return level
}

// cursorSpeed estimates speed in video px/ms from the two telemetry
// samples nearest to t.
func cursorSpeed(track []keyframe.CursorKeyframe, t int64) float64 {
	if len(track) < 2 {
		return 0
	}

	// Bracketing pair around t (clamped to the track edges).
	i := 1
	for ; i < len(track)-1; i++ {
		if track[i].TimestampMs >= t {
			break
		}
	}
	prev, next := track[i-1], track[i]

	dt := next.TimestampMs - prev.TimestampMs
	if dt <= 0 {
		return 0
	}
	dist := geometry.Distance(
		geometry.Point{X: prev.X, Y: prev.Y},
		geometry.Point{X: next.X, Y: next.Y},
	)
	return dist / float64(dt)
}

func (tr *Tracker) buildTarget(t int64, cursorPos geometry.Point, level float64) Region {
	cropW := tr.video.Width / level
	cropH := tr.video.Height / level

	// Padding enlarges the view around the cursor.
	if tr.cfg.Padding > 0 {
		cropW = math.Min(cropW*(1+tr.cfg.Padding), tr.video.Width)
		cropH = math.Min(cropH*(1+tr.cfg.Padding), tr.video.Height)
	}

	target := Region{
		TimestampMs: t,
		Center:      cursorPos,
		CropW:       cropW,
		CropH:       cropH,
		Scale:       level,
	}
	return clampRegion(target, tr.video)
}

// progressAt maps elapsed time since the last target change into [0,1].
// FollowSpeed stretches the transition: lower follow speed, longer
// effective transition, smoother camera.
func (tr *Tracker) progressAt(t int64) float64 {
	durMs := float64(tr.cfg.TransitionSpeedMs)
	if durMs <= 0 {
		return 1
	}
	follow := tr.cfg.FollowSpeed
	if follow <= 0 || follow > 1 {
		follow = 1
	}
	durMs /= follow

	return geometry.Clamp(float64(t-tr.transitionStart)/durMs, 0, 1)
}

func (tr *Tracker) clampCurrent() {
	tr.current = clampRegion(tr.current, tr.video)
}

// clampRegion keeps the crop rectangle fully inside the video, shrinking
// it first if it is larger than the frame.
func clampRegion(r Region, video geometry.Size) Region {
	r.CropW = geometry.Clamp(r.CropW, 1, video.Width)
	r.CropH = geometry.Clamp(r.CropH, 1, video.Height)
	r.Center.X = geometry.Clamp(r.Center.X, r.CropW/2, video.Width-r.CropW/2)
	r.Center.Y = geometry.Clamp(r.Center.Y, r.CropH/2, video.Height-r.CropH/2)
	return r
}

func (tr *Tracker) snapshot(t int64) Region {
	out := tr.current
	out.TimestampMs = t
	return out
}
