// Package cursor models the closed set of cursor shapes the OS reports and
// maps each one to its glyph sprite and hotspot.
package cursor

import "github.com/ivlev/screen2video/internal/geometry"

// Shape is one of the known cursor glyphs.
type Shape string

const (
	Arrow           Shape = "arrow"
	PointingHand    Shape = "pointingHand"
	IBeam           Shape = "iBeam"
	Crosshair       Shape = "crosshair"
	OpenHand        Shape = "openHand"
	ClosedHand      Shape = "closedHand"
	ResizeLeftRight Shape = "resizeLeftRight"
	ResizeUpDown    Shape = "resizeUpDown"
)

// glyphInfo binds a shape to its sprite file and hotspot. The hotspot is
// the point inside the glyph that sits on the reported cursor coordinate,
// expressed as a fraction of the glyph size.
type glyphInfo struct {
	file    string
	hotspot geometry.Point
}

var glyphs = map[Shape]glyphInfo{
	Arrow:           {file: "arrow.png", hotspot: geometry.Point{X: 0.0, Y: 0.0}},
	PointingHand:    {file: "pointing_hand.png", hotspot: geometry.Point{X: 0.35, Y: 0.0}},
	IBeam:           {file: "ibeam.png", hotspot: geometry.Point{X: 0.5, Y: 0.5}},
	Crosshair:       {file: "crosshair.png", hotspot: geometry.Point{X: 0.5, Y: 0.5}},
	OpenHand:        {file: "open_hand.png", hotspot: geometry.Point{X: 0.5, Y: 0.5}},
	ClosedHand:      {file: "closed_hand.png", hotspot: geometry.Point{X: 0.5, Y: 0.5}},
	ResizeLeftRight: {file: "resize_lr.png", hotspot: geometry.Point{X: 0.5, Y: 0.5}},
	ResizeUpDown:    {file: "resize_ud.png", hotspot: geometry.Point{X: 0.5, Y: 0.5}},
}

// ParseShape maps a raw telemetry shape string onto the closed enum.
// Unknown or empty strings fall back to Arrow.
func ParseShape(s string) Shape {
	shape := Shape(s)
	if _, ok := glyphs[shape]; ok {
		return shape
	}
	return Arrow
}

// Known reports whether the shape is part of the closed set.
func Known(s Shape) bool {
	_, ok := glyphs[s]
	return ok
}
