package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/ivlev/screen2video/internal/config"
	"github.com/ivlev/screen2video/internal/engine"
	"github.com/ivlev/screen2video/internal/system"
	"github.com/ivlev/screen2video/internal/video"
)

var buildVersion = "dev"

func main() {
	// Увеличиваем лимиты системы (для macOS/Linux)
	system.InitResourceLimits()

	// Создаем нужные директории, если их нет
	dirs := []string{"input", "output"}
	for _, d := range dirs {
		os.MkdirAll(d, 0755)
	}

	configPtr := flag.String("config", "", "Путь к YAML конфигурации (флаги имеют приоритет)")
	inputPtr := flag.String("input", "", "Путь к записи экрана (по умолчанию: самое свежее видео в input/)")
	outputPtr := flag.String("output", "", "Путь к видео (если пусто, генерируется автоматически в output/)")
	eventsPtr := flag.String("events", "", "Путь к JSON с событиями мыши (если пусто, курсор не рисуется)")
	widthPtr := flag.Int("width", 0, "Ширина выходного видео (0 - как у источника)")
	heightPtr := flag.Int("height", 0, "Высота выходного видео (0 - как у источника)")
	fpsPtr := flag.Int("fps", 30, "FPS")
	workersPtr := flag.Int("workers", 0, "Потоки рендеринга (0 - по числу физических ядер)")
	batchPtr := flag.Int("batch", 0, "Кадров в батче (0 - авто по объему памяти)")

	screenWPtr := flag.Float64("screen-width", 0, "Логическая ширина экрана записи в точках (0 - как у видео)")
	screenHPtr := flag.Float64("screen-height", 0, "Логическая высота экрана записи в точках")

	cursorSizePtr := flag.Int("cursor-size", 32, "Размер курсора в пикселях")
	spritesPtr := flag.String("cursor-sprites", "assets/cursors", "Директория со спрайтами курсора")
	stabilizePtr := flag.Int64("stabilize", 100, "Окно стабилизации формы курсора (мс, 0 - выкл)")

	zoomPtr := flag.Bool("zoom", false, "Включить следящий зум")
	zoomLevelPtr := flag.Float64("zoom-level", 2.0, "Уровень зума (>= 1.0)")
	zoomTransitionPtr := flag.Int64("zoom-transition", 1000, "Длительность перехода камеры (мс)")
	zoomPaddingPtr := flag.Float64("zoom-padding", 0.1, "Запас вокруг области зума (доля)")
	zoomFollowPtr := flag.Float64("zoom-follow", 0.8, "Скорость следования камеры")
	zoomSpeedPtr := flag.Float64("zoom-speed-threshold", 2.0, "Порог скорости курсора (px/мс) для отдаления")

	circlesPtr := flag.Bool("click-circles", true, "Круги при кликах")
	trailPtr := flag.Bool("trail", false, "След за курсором")
	ringPtr := flag.Bool("ring", false, "Пульсирующее кольцо вокруг курсора")

	qualityPtr := flag.Int("quality", 0, "Качество видео (0 - авто, x264: CRF 1-51, VideoToolbox: битрейт = Q*100кбит/с)")
	encoderPtr := flag.String("encoder", "", "Энкодер (пусто - автоопределение)")
	metadataPtr := flag.String("metadata", "", "Путь для JSON метаданных (пусто - не сохранять)")
	debugPtr := flag.Bool("debug", false, "Отладочный QR-штамп на каждом кадре")
	statsPtr := flag.Bool("stats", false, "Отчет о производительности")

	flag.Parse()

	cfg := config.Default()
	if *configPtr != "" {
		loaded, err := config.Load(*configPtr)
		if err != nil {
			log.Fatalf("[-] Ошибка чтения конфигурации: %v", err)
		}
		cfg = loaded
		fmt.Printf("[*] Конфигурация: %s\n", *configPtr)
	}

	// Явно переданные флаги имеют приоритет над YAML.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.InputVideo = *inputPtr
		case "output":
			cfg.OutputVideo = *outputPtr
		case "events":
			cfg.EventsPath = *eventsPtr
		case "width":
			cfg.Width = *widthPtr
		case "height":
			cfg.Height = *heightPtr
		case "fps":
			cfg.FPS = *fpsPtr
		case "workers":
			cfg.Workers = *workersPtr
		case "batch":
			cfg.BatchSize = *batchPtr
		case "screen-width":
			cfg.ScreenWidth = *screenWPtr
		case "screen-height":
			cfg.ScreenHeight = *screenHPtr
		case "cursor-size":
			cfg.Cursor.Size = *cursorSizePtr
		case "cursor-sprites":
			cfg.Cursor.SpriteDir = *spritesPtr
		case "stabilize":
			cfg.Cursor.StabilizeWindowMs = *stabilizePtr
		case "zoom":
			cfg.Zoom.Enabled = *zoomPtr
		case "zoom-level":
			cfg.Zoom.Level = *zoomLevelPtr
		case "zoom-transition":
			cfg.Zoom.TransitionSpeedMs = *zoomTransitionPtr
		case "zoom-padding":
			cfg.Zoom.Padding = *zoomPaddingPtr
		case "zoom-follow":
			cfg.Zoom.FollowSpeed = *zoomFollowPtr
		case "zoom-speed-threshold":
			cfg.Zoom.SpeedThreshold = *zoomSpeedPtr
		case "click-circles":
			cfg.Effects.ClickCircles.Enabled = *circlesPtr
		case "trail":
			cfg.Effects.Trail.Enabled = *trailPtr
		case "ring":
			cfg.Effects.Ring.Enabled = *ringPtr
		case "quality":
			cfg.Quality = *qualityPtr
		case "encoder":
			cfg.VideoEncoder = *encoderPtr
		case "metadata":
			cfg.MetadataPath = *metadataPtr
		case "debug":
			cfg.Debug = *debugPtr
		case "stats":
			cfg.ShowStats = *statsPtr
		}
	})
	cfg.BuildVersion = buildVersion

	if cfg.InputVideo == "" {
		latest, err := system.FindLatestVideo("input")
		if err != nil {
			log.Fatalf("[-] Ошибка: %v. Положите запись в input/", err)
		}
		cfg.InputVideo = latest
		fmt.Printf("[*] Выбран файл: %s\n", cfg.InputVideo)
	}

	if cfg.OutputVideo == "" {
		baseName := filepath.Base(cfg.InputVideo)
		nameOnly := strings.TrimSuffix(baseName, filepath.Ext(baseName))
		cleanName := strings.ReplaceAll(nameOnly, " ", "_")
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		cfg.OutputVideo = filepath.Join("output", fmt.Sprintf("%s_%s.mp4", cleanName, timestamp))
	}

	if cfg.VideoEncoder == "" {
		encoderName, _ := system.GetBestH264Encoder()
		if encoderName != "libx264" {
			fmt.Printf("[*] Обнаружено аппаратное ускорение: %s\n", encoderName)
		}
		cfg.VideoEncoder = encoderName
	}

	if cfg.Workers <= 0 {
		cfg.Workers = system.DefaultWorkers()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = system.DefaultBatchSize(cfg.Width, cfg.Height)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("[-] Некорректная конфигурация: %v", err)
	}

	// Ctrl+C: заканчиваем текущий батч и убираем временные файлы.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	codec := &video.FFmpegCodec{Encoder: cfg.VideoEncoder, Quality: cfg.Quality}
	project := engine.NewProject(cfg, codec)
	if err := project.Run(ctx); err != nil {
		log.Fatalf("[-] Ошибка проекта: %v", err)
	}

	fmt.Printf("[+++] Успех! Результат: %s\n", cfg.OutputVideo)
}
