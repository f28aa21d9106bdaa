package metadata

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ivlev/screen2video/internal/config"
	"github.com/ivlev/screen2video/internal/cursor"
	"github.com/ivlev/screen2video/internal/easing"
	"github.com/ivlev/screen2video/internal/geometry"
	"github.com/ivlev/screen2video/internal/keyframe"
	"github.com/ivlev/screen2video/internal/telemetry"
	"github.com/ivlev/screen2video/internal/zoom"
)

func TestRoundTrip(t *testing.T) {
	cfg := config.Default()
	doc := New(
		VideoInfo{Path: "out.mp4", Width: 1920, Height: 1080, FPS: 30, DurationMs: 5000},
		[]keyframe.CursorKeyframe{
			{TimestampMs: 0, X: 1, Y: 2, Shape: cursor.Arrow, Easing: easing.Linear},
			{TimestampMs: 100, X: 30, Y: 40, Shape: cursor.IBeam, Easing: easing.EaseInOut},
		},
		[]keyframe.ClickEvent{
			{TimestampMs: 50, X: 10, Y: 10, Button: telemetry.ButtonLeft, Action: telemetry.ActionDown},
		},
		[]zoom.Region{
			{TimestampMs: 0, Center: geometry.Point{X: 960, Y: 540}, CropW: 960, CropH: 540, Scale: 2},
		},
		cfg.Cursor, cfg.Zoom, cfg.Effects,
	)

	path := filepath.Join(t.TempDir(), "out.mp4.meta.json")
	if err := Write(doc, path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if got.Version != Version {
		t.Errorf("version = %q", got.Version)
	}
	if !reflect.DeepEqual(got.Cursor.Keyframes, doc.Cursor.Keyframes) {
		t.Errorf("keyframes did not round-trip:\n%+v\n%+v", got.Cursor.Keyframes, doc.Cursor.Keyframes)
	}
	if !reflect.DeepEqual(got.Clicks, doc.Clicks) {
		t.Errorf("clicks did not round-trip")
	}
	if !reflect.DeepEqual(got.Zoom.Sections, doc.Zoom.Sections) {
		t.Errorf("zoom sections did not round-trip")
	}
	if got.Video != doc.Video {
		t.Errorf("video info did not round-trip: %+v", got.Video)
	}
	if !got.CreatedAt.Equal(doc.CreatedAt) {
		t.Errorf("createdAt did not round-trip")
	}
}

func TestReadRejectsUnknownVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meta.json")
	doc := &Document{Version: "99.0"}
	if err := Write(doc, path); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if _, err := Read(path); err == nil {
		t.Error("expected version error, got nil")
	}
}
