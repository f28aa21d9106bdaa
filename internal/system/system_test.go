package system

import (
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultWorkersPositive(t *testing.T) {
	if w := DefaultWorkers(); w <= 0 {
		t.Errorf("DefaultWorkers() = %d", w)
	}
}

func TestDefaultBatchSizeBounds(t *testing.T) {
	got := DefaultBatchSize(1920, 1080)
	if got < 2 || got > 32 {
		t.Errorf("DefaultBatchSize(1920,1080) = %d, want within [2,32]", got)
	}

	// Zero dimensions cannot be sized; expect the fallback.
	if got := DefaultBatchSize(0, 0); got != 10 {
		t.Errorf("DefaultBatchSize(0,0) = %d, want 10", got)
	}
}

func TestFindLatestVideo(t *testing.T) {
	dir := t.TempDir()

	older := filepath.Join(dir, "old.mp4")
	newer := filepath.Join(dir, "new.mov")
	ignored := filepath.Join(dir, "notes.txt")

	for _, p := range []string{older, newer, ignored} {
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(older, past, past); err != nil {
		t.Fatal(err)
	}

	got, err := FindLatestVideo(dir)
	if err != nil {
		t.Fatalf("FindLatestVideo failed: %v", err)
	}
	if got != newer {
		t.Errorf("FindLatestVideo = %q, want %q", got, newer)
	}
}

func TestFindLatestVideoEmptyDir(t *testing.T) {
	if _, err := FindLatestVideo(t.TempDir()); err == nil {
		t.Error("expected error for directory without videos")
	}
}

func TestImagePoolZeroesReusedBuffers(t *testing.T) {
	rect := image.Rect(0, 0, 16, 16)

	img := GetImage(rect)
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	PutImage(img)

	img = GetImage(rect)
	for i, v := range img.Pix {
		if v != 0 {
			t.Fatalf("reused buffer not zeroed at %d", i)
		}
	}
}
