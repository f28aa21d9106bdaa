// Package telemetry defines the raw pointer samples produced during a
// recording and the ways to obtain them: a pre-recorded list, a JSON events
// file, or a live fixed-interval sampling loop.
package telemetry

import "sort"

// Action classifies a raw sample.
type Action string

const (
	ActionMove Action = "move"
	ActionDown Action = "down"
	ActionUp   Action = "up"
)

// Button identifies which mouse button a down/up sample refers to.
type Button string

const (
	ButtonLeft   Button = "left"
	ButtonRight  Button = "right"
	ButtonMiddle Button = "middle"
)

// RawEvent is one timestamped pointer observation in logical screen
// coordinates. Events arrive in capture order, which is not guaranteed to
// be monotonic in timestamp; consumers must re-sort.
type RawEvent struct {
	TimestampMs int64   `json:"timestamp"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Action      Action  `json:"action"`
	Button      Button  `json:"button,omitempty"`
	CursorShape string  `json:"cursorShape,omitempty"`
}

// SortByTimestamp orders events ascending by timestamp. The sort is stable
// so samples sharing a timestamp keep their arrival order.
func SortByTimestamp(events []RawEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].TimestampMs < events[j].TimestampMs
	})
}
