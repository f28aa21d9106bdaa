package engine

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/screen2video/internal/compositor"
	"github.com/ivlev/screen2video/internal/config"
	"github.com/ivlev/screen2video/internal/cursor"
	"github.com/ivlev/screen2video/internal/director"
	"github.com/ivlev/screen2video/internal/effects"
	"github.com/ivlev/screen2video/internal/geometry"
	"github.com/ivlev/screen2video/internal/keyframe"
	"github.com/ivlev/screen2video/internal/metadata"
	"github.com/ivlev/screen2video/internal/system"
	"github.com/ivlev/screen2video/internal/telemetry"
	"github.com/ivlev/screen2video/internal/video"
	"github.com/ivlev/screen2video/internal/zoom"
)

// Project ties the whole pipeline together: probe, plan, render, encode.
type Project struct {
	Config *config.Config
	Codec  video.Codec

	// Progress, если задан, вызывается после каждого батча.
	Progress func(done, total int)

	tempDir string
}

func NewProject(cfg *config.Config, codec video.Codec) *Project {
	return &Project{Config: cfg, Codec: codec}
}

// Run executes one full processing pass. Cancelling ctx stops the run at
// the next batch boundary; in-flight frames finish first. The temp
// directory is always removed, even on failure.
func (p *Project) Run(ctx context.Context) error {
	startTime := time.Now()
	var renderStart, renderEnd, encodeStart, encodeEnd time.Time

	var err error
	p.tempDir, err = os.MkdirTemp("", "screen2video_"+uuid.NewString()[:8]+"_")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.RemoveAll(p.tempDir); rmErr != nil {
			log.Printf("[!] Не удалось удалить временную директорию %s: %v", p.tempDir, rmErr)
		}
	}()

	cfg := p.Config

	// 1. Probe: выходные размеры и длительность по умолчанию берем из записи.
	info, err := p.Codec.Probe(ctx, cfg.InputVideo)
	if err != nil {
		return fmt.Errorf("ошибка анализа видео: %w", err)
	}
	if cfg.Width == 0 {
		cfg.Width = info.Width
	}
	if cfg.Height == 0 {
		cfg.Height = info.Height
	}
	if cfg.DurationMs == 0 {
		cfg.DurationMs = info.DurationMs
	}
	videoDims := geometry.Size{Width: float64(info.Width), Height: float64(info.Height)}

	// 2. Telemetry.
	var events []telemetry.RawEvent
	if cfg.EventsPath != "" {
		events, err = telemetry.ReadEvents(cfg.EventsPath)
		if err != nil {
			return fmt.Errorf("ошибка чтения телеметрии: %w", err)
		}
	}

	builder := &keyframe.Builder{
		Transform:         p.buildTransform(videoDims),
		DurationMs:        cfg.DurationMs,
		StabilizeWindowMs: cfg.Cursor.StabilizeWindowMs,
	}
	keyframes, clicks := builder.Build(events)

	// 3. Glyphs: загружаем только формы, реально встречающиеся в треке.
	// Отсутствующий спрайт - фатальная ошибка, молча терять курсор нельзя.
	var glyphs map[cursor.Shape]*cursor.Glyph
	if len(keyframes) > 0 {
		glyphs, err = cursor.LoadSet(cfg.Cursor.SpriteDir, keyframe.Shapes(keyframes), cfg.Cursor.Size)
		if err != nil {
			return fmt.Errorf("ошибка загрузки спрайтов курсора: %w", err)
		}
	} else {
		fmt.Println("[!] Телеметрия пуста: видео будет обработано без курсора")
	}

	fmt.Println("--- [PROJECT: SCREEN PIPELINE] ---")
	fmt.Printf("[*] Источник: %s | %dx%d, %.1fs\n", cfg.InputVideo, info.Width, info.Height, float64(info.DurationMs)/1000)
	fmt.Printf("[*] Выход: %dx%d @ %d FPS | Ключевых кадров: %d | Кликов: %d\n",
		cfg.Width, cfg.Height, cfg.FPS, len(keyframes), len(clicks))
	fmt.Println("----------------------------------")

	// 4. Extract.
	framesDir := filepath.Join(p.tempDir, "frames")
	extracted, err := p.Codec.ExtractFrames(ctx, cfg.InputVideo, framesDir, cfg.FPS)
	if err != nil {
		return fmt.Errorf("ошибка извлечения кадров: %w", err)
	}
	if extracted == 0 {
		return fmt.Errorf("из %s не извлечено ни одного кадра", cfg.InputVideo)
	}

	// 5. Plan. Трекер зума работает строго последовательно, поэтому
	// таймлайн считается заранее; параллельный рендер читает готовый срез.
	dir := &director.Director{
		Config:     cfg,
		VideoDims:  videoDims,
		DurationMs: cfg.DurationMs,
		Keyframes:  keyframes,
		Clicks:     clicks,
	}

	frameTimes := dir.FrameTimes()
	if cfg.Zoom.Enabled {
		tracker := zoom.NewTracker(cfg.Zoom, videoDims)
		dir.ZoomTimeline = tracker.Timeline(frameTimes, keyframes)
	}

	gen := &effects.Generator{Config: cfg.Effects, FrameIntervalMs: dir.FrameIntervalMs()}
	dir.Effects = gen.Generate(frameTimes, keyframes, clicks)

	plan := dir.BuildPlan()

	// Планируем не больше кадров, чем реально извлечено. ffmpeg может
	// отдать на кадр меньше из-за округления длительности.
	if extracted < len(plan) {
		plan = plan[:extracted]
	}

	// 6. Render: батчи идут последовательно, кадры внутри батча - параллельно.
	outDir := filepath.Join(p.tempDir, "rendered")
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	comp := &compositor.Compositor{
		OutputWidth:  cfg.Width,
		OutputHeight: cfg.Height,
		Glyphs:       glyphs,
		DebugStamp:   cfg.Debug,
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = system.DefaultWorkers()
	}

	renderStart = time.Now()
	total := len(plan)
	for batchStart := 0; batchStart < total; batchStart += cfg.BatchSize {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("обработка прервана: %w", err)
		}

		batchEnd := batchStart + cfg.BatchSize
		if batchEnd > total {
			batchEnd = total
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for _, spec := range plan[batchStart:batchEnd] {
			spec := spec
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				return p.renderFrame(comp, framesDir, outDir, spec)
			})
		}
		if err := g.Wait(); err != nil {
			return fmt.Errorf("ошибка рендеринга батча %d-%d: %w", batchStart, batchEnd-1, err)
		}

		fmt.Printf("[>] Готово: %d/%d\n", batchEnd, total)
		if p.Progress != nil {
			p.Progress(batchEnd, total)
		}
	}
	renderEnd = time.Now()

	// 7. Encode.
	fmt.Println("[*] Кодирование финального видео...")
	encodeStart = time.Now()
	if err := p.Codec.EncodeFrames(ctx, outDir, cfg.OutputVideo, cfg.FPS, cfg.Width, cfg.Height); err != nil {
		return fmt.Errorf("ошибка кодирования: %w", err)
	}
	encodeEnd = time.Now()

	// 8. Metadata.
	if cfg.MetadataPath != "" {
		doc := metadata.New(
			metadata.VideoInfo{
				Path:       cfg.OutputVideo,
				Width:      cfg.Width,
				Height:     cfg.Height,
				FPS:        cfg.FPS,
				DurationMs: cfg.DurationMs,
			},
			keyframes, clicks, dir.ZoomTimeline,
			cfg.Cursor, cfg.Zoom, cfg.Effects,
		)
		if err := metadata.Write(doc, cfg.MetadataPath); err != nil {
			return fmt.Errorf("ошибка записи метаданных: %w", err)
		}
		fmt.Printf("[*] Метаданные сохранены: %s\n", cfg.MetadataPath)
	}

	if cfg.ShowStats {
		p.reportStats(startTime, renderStart, renderEnd, encodeStart, encodeEnd, total)
	}

	return nil
}

// renderFrame reads one extracted frame, composes it and writes the result
// under the same index. Index-addressed naming keeps the encoded frame
// order independent of worker completion order.
func (p *Project) renderFrame(comp *compositor.Compositor, framesDir, outDir string, spec director.FrameRenderSpec) error {
	src, err := readPNG(video.FramePath(framesDir, spec.FrameIndex))
	if err != nil {
		return fmt.Errorf("кадр %d: %w", spec.FrameIndex, err)
	}

	out, err := comp.Render(src, spec)
	if err != nil {
		return fmt.Errorf("кадр %d: %w", spec.FrameIndex, err)
	}
	defer system.PutImage(out)

	return writePNG(video.FramePath(outDir, spec.FrameIndex), out)
}

// buildTransform maps logical telemetry points into video pixels. With no
// recording geometry configured the video's own dimensions are assumed,
// which makes 1:1 recordings work with zero configuration.
func (p *Project) buildTransform(videoDims geometry.Size) *geometry.Transform {
	cfg := p.Config
	if cfg.Region != nil {
		region := geometry.Rect{X: cfg.Region.X, Y: cfg.Region.Y, W: cfg.Region.W, H: cfg.Region.H}
		return geometry.NewRegionTransform(region, videoDims)
	}

	screen := geometry.Size{Width: cfg.ScreenWidth, Height: cfg.ScreenHeight}
	if screen.Width <= 0 || screen.Height <= 0 {
		screen = videoDims
	}
	return geometry.NewTransform(screen, videoDims)
}

func (p *Project) reportStats(start, renderStart, renderEnd, encodeStart, encodeEnd time.Time, frames int) {
	totalTime := time.Since(start)
	renderTime := renderEnd.Sub(renderStart)
	encodeTime := encodeEnd.Sub(encodeStart)
	fps := float64(frames) / totalTime.Seconds()

	report := fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.2fs\n"+
			"Rendering (CPU): %.2fs\n"+
			"Encoding (GPU/CPU): %.2fs\n"+
			"Effective FPS: %.2f\n"+
			"----------------------------\n",
		p.Config.BuildVersion, totalTime.Seconds(), renderTime.Seconds(), encodeTime.Seconds(), fps,
	)
	fmt.Print(report)

	logEntry := fmt.Sprintf("[%s] Build: %s | Input: %s | Frames: %d | Total: %.2fs | Render: %.2fs | Encode: %.2fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		filepath.Base(p.Config.InputVideo),
		frames,
		totalTime.Seconds(),
		renderTime.Seconds(),
		encodeTime.Seconds(),
		fps,
	)

	f, err := os.OpenFile("benchmark.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		f.WriteString(logEntry)
		f.Close()
	} else {
		fmt.Printf("[!] Не удалось записать benchmark.log: %v\n", err)
	}
}

func readPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
