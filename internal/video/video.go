package video

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Codec abstracts the external video tool: probing, splitting a recording
// into per-frame raster files and re-encoding rendered frames.
type Codec interface {
	Probe(ctx context.Context, path string) (Info, error)
	ExtractFrames(ctx context.Context, path, dir string, fps int) (int, error)
	EncodeFrames(ctx context.Context, dir, outputPath string, fps, width, height int) error
}

// Info is the result of a dimension/duration probe.
type Info struct {
	Width      int
	Height     int
	DurationMs int64
}

// FramePattern is the printf pattern for extracted and rendered frame
// files. Frames are addressed by index, never by completion order, so the
// encoded video's frame order always matches the plan.
const FramePattern = "frame_%06d.png"

// FramePath returns the path of frame idx inside dir.
func FramePath(dir string, idx int) string {
	return filepath.Join(dir, fmt.Sprintf(FramePattern, idx+1))
}

// FFmpegCodec shells out to ffmpeg/ffprobe.
type FFmpegCodec struct {
	Encoder string // h264_videotoolbox, h264_nvenc or libx264
	Quality int    // CRF / bitrate knob, 0 = encoder default
}

func (c *FFmpegCodec) Probe(ctx context.Context, path string) (Info, error) {
	out, err := runCommand(ctx, "ffprobe",
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height",
		"-show_entries", "format=duration",
		"-of", "csv=p=0",
		path,
	)
	if err != nil {
		return Info{}, fmt.Errorf("ffprobe error for %s: %w", path, err)
	}

	// Two CSV lines: "width,height" then "duration".
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) < 2 {
		return Info{}, fmt.Errorf("unexpected ffprobe output: %q", out)
	}

	dims := strings.Split(strings.TrimSpace(lines[0]), ",")
	if len(dims) < 2 {
		return Info{}, fmt.Errorf("unexpected ffprobe dimensions: %q", lines[0])
	}

	width, err := strconv.Atoi(dims[0])
	if err != nil {
		return Info{}, fmt.Errorf("bad probe width %q: %w", dims[0], err)
	}
	height, err := strconv.Atoi(dims[1])
	if err != nil {
		return Info{}, fmt.Errorf("bad probe height %q: %w", dims[1], err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(lines[len(lines)-1]), 64)
	if err != nil {
		return Info{}, fmt.Errorf("bad probe duration %q: %w", lines[len(lines)-1], err)
	}

	return Info{
		Width:      width,
		Height:     height,
		DurationMs: int64(seconds * 1000),
	}, nil
}

func (c *FFmpegCodec) ExtractFrames(ctx context.Context, path, dir string, fps int) (int, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, err
	}

	pattern := filepath.Join(dir, FramePattern)
	_, err := runCommand(ctx, "ffmpeg",
		"-y",
		"-i", path,
		"-vf", fmt.Sprintf("fps=%d", fps),
		pattern,
	)
	if err != nil {
		return 0, fmt.Errorf("ffmpeg frame extraction error: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".png") {
			count++
		}
	}
	return count, nil
}

func (c *FFmpegCodec) EncodeFrames(ctx context.Context, dir, outputPath string, fps, width, height int) error {
	// Пишем во временный файл: частичный результат никогда не остается
	// на месте финального видео.
	tmpPath := outputPath + ".partial.mp4"

	args := []string{
		"-y",
		"-framerate", strconv.Itoa(fps),
		"-i", filepath.Join(dir, FramePattern),
		"-s", fmt.Sprintf("%dx%d", width, height),
		"-r", strconv.Itoa(fps),
		"-pix_fmt", "yuv420p",
		"-c:v", c.encoderName(),
	}
	args = append(args, c.qualityArgs()...)
	args = append(args, tmpPath)

	if _, err := runCommand(ctx, "ffmpeg", args...); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("ffmpeg encode error: %w", err)
	}

	if err := os.Rename(tmpPath, outputPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to finalize output video: %w", err)
	}
	return nil
}

func (c *FFmpegCodec) encoderName() string {
	if c.Encoder == "" {
		return "libx264"
	}
	return c.Encoder
}

func (c *FFmpegCodec) qualityArgs() []string {
	quality := c.Quality
	switch c.encoderName() {
	case "h264_videotoolbox":
		// VideoToolbox часто не поддерживает -q:v напрямую. Используем битрейт.
		if quality == 0 {
			quality = 75
		}
		return []string{"-b:v", fmt.Sprintf("%dk", quality*100)}
	case "h264_nvenc":
		if quality == 0 {
			quality = 28
		}
		return []string{"-cq", strconv.Itoa(quality)}
	default: // libx264
		if quality == 0 {
			quality = 23
		}
		return []string{"-crf", strconv.Itoa(quality), "-preset", "medium"}
	}
}
