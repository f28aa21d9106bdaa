package video

import (
	"strings"
	"testing"
)

func TestFramePathIsOneBasedAndPadded(t *testing.T) {
	got := FramePath("/tmp/frames", 0)
	if !strings.HasSuffix(got, "frame_000001.png") {
		t.Errorf("frame 0 path = %q", got)
	}

	got = FramePath("/tmp/frames", 41)
	if !strings.HasSuffix(got, "frame_000042.png") {
		t.Errorf("frame 41 path = %q", got)
	}
}

func TestQualityArgsPerEncoder(t *testing.T) {
	tests := []struct {
		encoder string
		quality int
		want    []string
	}{
		{"libx264", 0, []string{"-crf", "23", "-preset", "medium"}},
		{"libx264", 18, []string{"-crf", "18", "-preset", "medium"}},
		{"h264_videotoolbox", 0, []string{"-b:v", "7500k"}},
		{"h264_nvenc", 0, []string{"-cq", "28"}},
		{"", 0, []string{"-crf", "23", "-preset", "medium"}},
	}

	for _, tt := range tests {
		c := &FFmpegCodec{Encoder: tt.encoder, Quality: tt.quality}
		got := c.qualityArgs()
		if len(got) != len(tt.want) {
			t.Errorf("%s/%d: args = %v, want %v", tt.encoder, tt.quality, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s/%d: args = %v, want %v", tt.encoder, tt.quality, got, tt.want)
				break
			}
		}
	}
}
