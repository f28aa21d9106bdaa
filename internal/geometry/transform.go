package geometry

// Transform maps raw logical-screen coordinates into output-video pixel
// coordinates. It is the single place where display scale factors and
// recording-region offsets are applied; no other package re-derives them.
type Transform struct {
	ScreenDims Size
	VideoDims  Size

	// Region describes the sub-rectangle of the screen that was recorded.
	// When nil the whole screen was captured.
	Region *Rect
}

// NewTransform builds a full-screen transform.
func NewTransform(screen, video Size) *Transform {
	return &Transform{ScreenDims: screen, VideoDims: video}
}

// NewRegionTransform builds a transform for a recorded sub-region of the
// screen. Scale factors are derived from the region dimensions, not the
// full screen (a Retina display records a region at a pixel multiple of
// its logical size).
func NewRegionTransform(region Rect, video Size) *Transform {
	return &Transform{
		ScreenDims: Size{Width: region.W, Height: region.H},
		VideoDims:  video,
		Region:     &region,
	}
}

// ToVideo converts one logical-screen coordinate into video pixels.
// The result is clamped into [0, videoDims].
func (t *Transform) ToVideo(screenX, screenY float64) Point {
	x, y := screenX, screenY
	if t.Region != nil {
		x -= t.Region.X
		y -= t.Region.Y
	}

	srcW, srcH := t.ScreenDims.Width, t.ScreenDims.Height
	if srcW <= 0 || srcH <= 0 {
		return Point{}
	}

	x *= t.VideoDims.Width / srcW
	y *= t.VideoDims.Height / srcH

	return Point{
		X: Clamp(x, 0, t.VideoDims.Width),
		Y: Clamp(y, 0, t.VideoDims.Height),
	}
}
