package system

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось получить лимит файлов: %v", err)
		return
	}

	// Извлеченные кадры — тысячи PNG-файлов, стандартного лимита мало
	rLimit.Cur = 4096
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось установить лимит файлов: %v", err)
	} else {
		fmt.Printf("[*] Системный лимит открытых файлов увеличен до %d\n", rLimit.Cur)
	}
}

// DefaultWorkers returns the render worker count: physical cores when the
// probe succeeds, GOMAXPROCS otherwise.
func DefaultWorkers() int {
	count, err := cpu.Counts(false)
	if err != nil || count <= 0 {
		return runtime.NumCPU()
	}
	return count
}

// DefaultBatchSize sizes a render batch from available memory. Each frame
// in flight holds roughly two RGBA buffers (source + composited).
func DefaultBatchSize(width, height int) int {
	const fallback = 10

	vm, err := mem.VirtualMemory()
	if err != nil || vm.Available == 0 {
		return fallback
	}

	frameBytes := uint64(width) * uint64(height) * 4 * 2
	if frameBytes == 0 {
		return fallback
	}

	// Не более четверти доступной памяти на кадры в обработке
	budget := vm.Available / 4
	batch := int(budget / frameBytes)
	if batch < 2 {
		batch = 2
	}
	if batch > 32 {
		batch = 32
	}
	return batch
}

// FindLatestVideo returns the most recently modified video file in dir.
func FindLatestVideo(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	extensions := []string{".mp4", ".mov", ".mkv", ".webm"}
	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() {
			continue
		}
		isVideo := false
		for _, ext := range extensions {
			if strings.HasSuffix(strings.ToLower(f.Name()), ext) {
				isVideo = true
				break
			}
		}
		if isVideo {
			info, err := f.Info()
			if err != nil {
				continue
			}
			if info.ModTime().After(latestTime) {
				latestTime = info.ModTime()
				latestFile = filepath.Join(dir, f.Name())
			}
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("в папке %s не найдено видео-файлов", dir)
	}

	return latestFile, nil
}

func GetBestH264Encoder() (string, string) {
	// Приоритеты:
	// 1. MacOS (VideoToolbox)
	// 2. NVIDIA (NVENC)
	// 3. Software (libx264)

	encoders := []struct {
		name string
		args string
	}{
		{"h264_videotoolbox", ""},
		{"h264_nvenc", ""},
	}

	for _, enc := range encoders {
		cmd := exec.Command("ffmpeg", "-encoders")
		out, err := cmd.CombinedOutput()
		if err == nil && strings.Contains(string(out), enc.name) {
			return enc.name, enc.args
		}
	}

	return "libx264", ""
}
