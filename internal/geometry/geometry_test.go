package geometry

import (
	"math"
	"testing"
)

func TestLerpAlongPath(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		t    float64
		want Point
	}{
		{"midpoint of 3-4-5 path", Point{0, 0}, Point{300, 400}, 0.5, Point{150, 200}},
		{"start", Point{10, 20}, Point{50, 60}, 0.0, Point{10, 20}},
		{"end", Point{10, 20}, Point{50, 60}, 1.0, Point{50, 60}},
		{"axis aligned", Point{0, 0}, Point{100, 0}, 0.25, Point{25, 0}},
		{"degenerate segment", Point{5, 5}, Point{5, 5}, 0.7, Point{5, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LerpAlongPath(tt.a, tt.b, tt.t)
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("LerpAlongPath(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.t, got, tt.want)
			}
		})
	}
}

func TestLerpAlongPathConstantSpeed(t *testing.T) {
	a := Point{0, 0}
	b := Point{300, 400}

	// Equal parameter steps must cover equal path distance.
	prev := a
	step := Distance(a, b) / 10
	for i := 1; i <= 10; i++ {
		p := LerpAlongPath(a, b, float64(i)/10)
		if math.Abs(Distance(prev, p)-step) > 1e-9 {
			t.Fatalf("step %d covered %.4f, want %.4f", i, Distance(prev, p), step)
		}
		prev = p
	}
}

func TestTransformFullScreen(t *testing.T) {
	// Logical 1440x900 screen recorded at 2880x1800 (Retina 2x).
	tr := NewTransform(Size{1440, 900}, Size{2880, 1800})

	p := tr.ToVideo(720, 450)
	if p.X != 1440 || p.Y != 900 {
		t.Errorf("center mapped to (%v, %v), want (1440, 900)", p.X, p.Y)
	}

	p = tr.ToVideo(-50, 2000)
	if p.X != 0 || p.Y != 1800 {
		t.Errorf("out-of-range input not clamped: got (%v, %v)", p.X, p.Y)
	}
}

func TestTransformRegion(t *testing.T) {
	// A 400x300 region at screen offset (100, 50), recorded to 800x600.
	tr := NewRegionTransform(Rect{X: 100, Y: 50, W: 400, H: 300}, Size{800, 600})

	p := tr.ToVideo(100, 50)
	if p.X != 0 || p.Y != 0 {
		t.Errorf("region origin mapped to (%v, %v), want (0, 0)", p.X, p.Y)
	}

	p = tr.ToVideo(300, 200)
	if p.X != 400 || p.Y != 300 {
		t.Errorf("region center mapped to (%v, %v), want (400, 300)", p.X, p.Y)
	}

	// Point left of the region clamps to the video edge.
	p = tr.ToVideo(0, 50)
	if p.X != 0 {
		t.Errorf("point outside region not clamped: got x=%v", p.X)
	}
}
