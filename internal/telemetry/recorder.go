package telemetry

import (
	"context"
	"time"
)

// Sample is one instantaneous pointer observation taken by a Sampler.
type Sample struct {
	X           float64
	Y           float64
	ButtonsDown map[Button]bool
	CursorShape string
}

// Sampler reads the current pointer state. Implementations live outside
// this module (OS hooks); tests supply synthetic ones.
type Sampler interface {
	Sample() (Sample, error)
}

// DefaultSampleInterval is 250 Hz, matching the capture poll rate.
const DefaultSampleInterval = 4 * time.Millisecond

// Recorder polls a Sampler at a fixed interval and accumulates RawEvents
// until the context is cancelled. Button transitions produce down/up
// events; movement produces move events. Identical consecutive positions
// without state change are skipped.
type Recorder struct {
	Sampler  Sampler
	Interval time.Duration

	events  []RawEvent
	started time.Time
	lastX   float64
	lastY   float64
	held    map[Button]bool
	first   bool
}

// NewRecorder creates a recorder with the default 250 Hz interval.
func NewRecorder(s Sampler) *Recorder {
	return &Recorder{Sampler: s, Interval: DefaultSampleInterval}
}

// Run samples until ctx is cancelled and returns the recorded events,
// sorted by timestamp. Sampling errors end the run.
func (r *Recorder) Run(ctx context.Context) ([]RawEvent, error) {
	r.started = time.Now()
	r.held = make(map[Button]bool)
	r.first = true

	ticker := time.NewTicker(r.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			SortByTimestamp(r.events)
			return r.events, nil
		case <-ticker.C:
			s, err := r.Sampler.Sample()
			if err != nil {
				SortByTimestamp(r.events)
				return r.events, err
			}
			r.ingest(s, time.Since(r.started).Milliseconds())
		}
	}
}

func (r *Recorder) ingest(s Sample, ts int64) {
	moved := r.first || s.X != r.lastX || s.Y != r.lastY

	// Button transitions are emitted even when the pointer is still.
	for _, b := range []Button{ButtonLeft, ButtonRight, ButtonMiddle} {
		now := s.ButtonsDown[b]
		was := r.held[b]
		if now == was {
			continue
		}
		action := ActionUp
		if now {
			action = ActionDown
		}
		r.events = append(r.events, RawEvent{
			TimestampMs: ts,
			X:           s.X,
			Y:           s.Y,
			Action:      action,
			Button:      b,
			CursorShape: s.CursorShape,
		})
		r.held[b] = now
	}

	if moved {
		r.events = append(r.events, RawEvent{
			TimestampMs: ts,
			X:           s.X,
			Y:           s.Y,
			Action:      ActionMove,
			CursorShape: s.CursorShape,
		})
		r.lastX, r.lastY = s.X, s.Y
		r.first = false
	}
}
