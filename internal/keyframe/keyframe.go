// Package keyframe turns raw pointer telemetry into the ordered cursor
// keyframe and click sequences the rest of the pipeline interpolates over.
package keyframe

import (
	"github.com/ivlev/screen2video/internal/cursor"
	"github.com/ivlev/screen2video/internal/easing"
	"github.com/ivlev/screen2video/internal/telemetry"
)

// CursorKeyframe is one anchor point of cursor state in video-pixel
// coordinates. The sequence built by Builder is non-decreasing in
// timestamp and immutable once built.
type CursorKeyframe struct {
	TimestampMs int64         `json:"timestamp"`
	X           float64       `json:"x"`
	Y           float64       `json:"y"`
	Shape       cursor.Shape  `json:"shape"`
	Easing      easing.Easing `json:"easing"`
}

// ClickEvent is one transformed button transition.
type ClickEvent struct {
	TimestampMs int64            `json:"timestamp"`
	X           float64          `json:"x"`
	Y           float64          `json:"y"`
	Button      telemetry.Button `json:"button"`
	Action      telemetry.Action `json:"action"`
}
