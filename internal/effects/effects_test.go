package effects

import (
	"math"
	"testing"

	"github.com/ivlev/screen2video/internal/config"
	"github.com/ivlev/screen2video/internal/keyframe"
	"github.com/ivlev/screen2video/internal/telemetry"
)

func frameTimes(count int, intervalMs int64) []int64 {
	out := make([]int64, count)
	for i := range out {
		out[i] = int64(i) * intervalMs
	}
	return out
}

func TestClickCircleLifecycle(t *testing.T) {
	g := &Generator{
		Config: config.MouseEffectsConfig{
			ClickCircles: config.ClickCirclesConfig{
				Enabled:    true,
				DurationMs: 500,
				MaxSize:    48,
				Color:      "#ffcc00",
			},
		},
	}

	clicks := []keyframe.ClickEvent{
		{TimestampMs: 100, X: 10, Y: 20, Action: telemetry.ActionDown},
		{TimestampMs: 130, X: 10, Y: 20, Action: telemetry.ActionUp}, // ignored
	}

	out := g.Generate(frameTimes(30, 33), nil, clicks)

	if len(out) == 0 {
		t.Fatal("expected click circle frames")
	}

	for _, f := range out {
		if f.Kind != KindClickCircle {
			t.Fatalf("unexpected kind %v", f.Kind)
		}
		delta := f.TimestampMs - 100
		if delta < 0 || delta >= 500 {
			t.Errorf("instance outside the active window: t=%d", f.TimestampMs)
		}
		if f.Opacity < 0 || f.Opacity > 1 {
			t.Errorf("opacity out of range: %v", f.Opacity)
		}
		if f.Size < 0 || f.Size > 48 {
			t.Errorf("size out of range: %v", f.Size)
		}
	}

	// Later frames are larger and fainter.
	first, last := out[0], out[len(out)-1]
	if last.Size <= first.Size {
		t.Errorf("ripple should expand: %v -> %v", first.Size, last.Size)
	}
	if last.Opacity >= first.Opacity {
		t.Errorf("ripple should fade: %v -> %v", first.Opacity, last.Opacity)
	}
}

func TestDisabledEffectsProduceNothing(t *testing.T) {
	g := &Generator{Config: config.MouseEffectsConfig{}} // all disabled

	track := []keyframe.CursorKeyframe{{TimestampMs: 0, X: 1, Y: 1}}
	clicks := []keyframe.ClickEvent{{TimestampMs: 0, Action: telemetry.ActionDown}}

	if out := g.Generate(frameTimes(10, 33), track, clicks); len(out) != 0 {
		t.Errorf("disabled generators emitted %d instances", len(out))
	}
}

func TestTrailFadesWithIndex(t *testing.T) {
	g := &Generator{
		Config: config.MouseEffectsConfig{
			Trail: config.TrailConfig{Enabled: true, Length: 4, FadeSpeed: 0.2, Color: "#66aaff"},
		},
	}

	track := []keyframe.CursorKeyframe{
		{TimestampMs: 0, X: 0, Y: 0},
		{TimestampMs: 10, X: 10, Y: 0},
		{TimestampMs: 20, X: 20, Y: 0},
		{TimestampMs: 30, X: 30, Y: 0},
	}

	out := g.Generate([]int64{30}, track, nil)
	if len(out) != 4 {
		t.Fatalf("expected 4 trail instances, got %d", len(out))
	}

	// out is sorted by timestamp (all equal), original order preserved:
	// newest position first, fading toward the tail.
	for i := 1; i < len(out); i++ {
		if out[i].Opacity >= out[i-1].Opacity {
			t.Errorf("trail opacity not decreasing at %d: %v >= %v", i, out[i].Opacity, out[i-1].Opacity)
		}
	}
	if math.Abs(out[0].Opacity-0.8) > 1e-9 {
		t.Errorf("head opacity = %v, want (1-0/4)*(1-0.2) = 0.8", out[0].Opacity)
	}
	if out[0].X != 30 || out[3].X != 0 {
		t.Errorf("trail order wrong: head x=%v tail x=%v", out[0].X, out[3].X)
	}
}

func TestHighlightRingPulses(t *testing.T) {
	g := &Generator{
		Config: config.MouseEffectsConfig{
			Ring: config.HighlightRingConfig{Enabled: true, Size: 40, PulseSpeed: 1.0, Color: "#ff6666"},
		},
	}

	track := []keyframe.CursorKeyframe{
		{TimestampMs: 0, X: 100, Y: 100},
		{TimestampMs: 10000, X: 100, Y: 100},
	}

	out := g.Generate(frameTimes(60, 33), track, nil)
	if len(out) != 60 {
		t.Fatalf("expected one ring per frame, got %d", len(out))
	}

	var minSize, maxSize = math.Inf(1), math.Inf(-1)
	for _, f := range out {
		if f.Opacity < 0.7-1e-9 || f.Opacity > 1.0+1e-9 {
			t.Errorf("ring opacity %v outside [0.7, 1.0]", f.Opacity)
		}
		if f.Size < 40*0.8-1e-9 || f.Size > 40*1.2+1e-9 {
			t.Errorf("ring size %v outside ±20%% band", f.Size)
		}
		minSize = math.Min(minSize, f.Size)
		maxSize = math.Max(maxSize, f.Size)
	}

	// Over two seconds the sinusoid actually oscillates.
	if maxSize-minSize < 1 {
		t.Errorf("ring size barely moves: [%v, %v]", minSize, maxSize)
	}
}

func TestActiveAt(t *testing.T) {
	all := []Frame{
		{TimestampMs: 0},
		{TimestampMs: 33},
		{TimestampMs: 66},
	}

	got := ActiveAt(all, 33, 33)
	if len(got) != 1 || got[0].TimestampMs != 33 {
		t.Errorf("ActiveAt(33) = %+v", got)
	}

	if got := ActiveAt(all, 200, 33); len(got) != 0 {
		t.Errorf("expected no active instances, got %d", len(got))
	}
}
