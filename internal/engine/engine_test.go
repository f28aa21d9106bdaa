package engine

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ivlev/screen2video/internal/config"
	"github.com/ivlev/screen2video/internal/metadata"
	"github.com/ivlev/screen2video/internal/telemetry"
	"github.com/ivlev/screen2video/internal/video"
)

// fakeCodec synthesizes frames on extraction and records the encode call,
// so the full pipeline runs without external tools.
type fakeCodec struct {
	info       video.Info
	frameCount int

	encodedDir    string
	encodedOutput string
	encodedFrames int
}

func (f *fakeCodec) Probe(ctx context.Context, path string) (video.Info, error) {
	return f.info, nil
}

func (f *fakeCodec) ExtractFrames(ctx context.Context, path, dir string, fps int) (int, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, err
	}
	for i := 0; i < f.frameCount; i++ {
		img := image.NewRGBA(image.Rect(0, 0, f.info.Width, f.info.Height))
		for p := 0; p < len(img.Pix); p += 4 {
			img.Pix[p+2] = 80 // blue-ish background
			img.Pix[p+3] = 255
		}
		if err := writePNG(video.FramePath(dir, i), img); err != nil {
			return 0, err
		}
	}
	return f.frameCount, nil
}

func (f *fakeCodec) EncodeFrames(ctx context.Context, dir, outputPath string, fps, width, height int) error {
	f.encodedDir = dir
	f.encodedOutput = outputPath

	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	f.encodedFrames = len(entries)
	return nil
}

func writeSprite(t *testing.T, dir, name string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	spriteDir := t.TempDir()
	writeSprite(t, spriteDir, "arrow.png")

	cfg := config.Default()
	cfg.InputVideo = "recording.mp4"
	cfg.OutputVideo = filepath.Join(t.TempDir(), "out.mp4")
	cfg.Width = 160
	cfg.Height = 90
	cfg.FPS = 10
	cfg.DurationMs = 1000
	cfg.Workers = 2
	cfg.BatchSize = 4
	cfg.Cursor.SpriteDir = spriteDir
	return cfg
}

func writeEvents(t *testing.T, events []telemetry.RawEvent) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.json")
	if err := telemetry.WriteEvents(events, path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunFullPipeline(t *testing.T) {
	cfg := testConfig(t)
	cfg.EventsPath = writeEvents(t, []telemetry.RawEvent{
		{TimestampMs: 0, X: 10, Y: 10, Action: telemetry.ActionMove},
		{TimestampMs: 400, X: 80, Y: 40, Action: telemetry.ActionDown, Button: telemetry.ButtonLeft},
		{TimestampMs: 450, X: 80, Y: 40, Action: telemetry.ActionUp, Button: telemetry.ButtonLeft},
		{TimestampMs: 1000, X: 150, Y: 80, Action: telemetry.ActionMove},
	})

	codec := &fakeCodec{
		info:       video.Info{Width: 160, Height: 90, DurationMs: 1000},
		frameCount: 10,
	}

	p := NewProject(cfg, codec)
	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if codec.encodedOutput != cfg.OutputVideo {
		t.Errorf("encoded to %q, want %q", codec.encodedOutput, cfg.OutputVideo)
	}
	if codec.encodedFrames != 10 {
		t.Errorf("encoded %d frames, want 10", codec.encodedFrames)
	}
	if _, err := os.Stat(p.tempDir); !os.IsNotExist(err) {
		t.Errorf("temp dir %s not cleaned up", p.tempDir)
	}
}

func TestRunWithoutTelemetry(t *testing.T) {
	cfg := testConfig(t)
	cfg.EventsPath = ""

	codec := &fakeCodec{
		info:       video.Info{Width: 160, Height: 90, DurationMs: 1000},
		frameCount: 10,
	}

	if err := NewProject(cfg, codec).Run(context.Background()); err != nil {
		t.Fatalf("Run without telemetry failed: %v", err)
	}
	if codec.encodedFrames != 10 {
		t.Errorf("encoded %d frames, want 10", codec.encodedFrames)
	}
}

func TestRunPlansNoMoreThanExtracted(t *testing.T) {
	cfg := testConfig(t)

	// Duration says 10 frames; extraction delivers 8.
	codec := &fakeCodec{
		info:       video.Info{Width: 160, Height: 90, DurationMs: 1000},
		frameCount: 8,
	}

	if err := NewProject(cfg, codec).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if codec.encodedFrames != 8 {
		t.Errorf("encoded %d frames, want 8", codec.encodedFrames)
	}
}

func TestRunWritesMetadata(t *testing.T) {
	cfg := testConfig(t)
	cfg.MetadataPath = filepath.Join(t.TempDir(), "meta.json")
	cfg.Zoom.Enabled = true
	cfg.EventsPath = writeEvents(t, []telemetry.RawEvent{
		{TimestampMs: 0, X: 10, Y: 10, Action: telemetry.ActionMove},
		{TimestampMs: 1000, X: 150, Y: 80, Action: telemetry.ActionMove},
	})

	codec := &fakeCodec{
		info:       video.Info{Width: 160, Height: 90, DurationMs: 1000},
		frameCount: 10,
	}

	if err := NewProject(cfg, codec).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	doc, err := metadata.Read(cfg.MetadataPath)
	if err != nil {
		t.Fatalf("metadata unreadable: %v", err)
	}
	if len(doc.Cursor.Keyframes) == 0 {
		t.Error("metadata missing keyframes")
	}
	if len(doc.Zoom.Sections) != 10 {
		t.Errorf("metadata has %d zoom sections, want 10", len(doc.Zoom.Sections))
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	cfg := testConfig(t)

	codec := &fakeCodec{
		info:       video.Info{Width: 160, Height: 90, DurationMs: 1000},
		frameCount: 10,
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := NewProject(cfg, codec).Run(ctx); err == nil {
		t.Error("expected error for cancelled context")
	}
	if codec.encodedOutput != "" {
		t.Error("encode must not run after cancellation")
	}
}

func TestRunReportsProgress(t *testing.T) {
	cfg := testConfig(t)
	cfg.BatchSize = 3

	codec := &fakeCodec{
		info:       video.Info{Width: 160, Height: 90, DurationMs: 1000},
		frameCount: 10,
	}

	var calls []int
	p := NewProject(cfg, codec)
	p.Progress = func(done, total int) {
		if total != 10 {
			t.Errorf("progress total = %d, want 10", total)
		}
		calls = append(calls, done)
	}

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	want := []int{3, 6, 9, 10}
	if len(calls) != len(want) {
		t.Fatalf("progress calls = %v, want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("progress calls = %v, want %v", calls, want)
		}
	}
}
