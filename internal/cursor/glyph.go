package cursor

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/ivlev/screen2video/internal/geometry"
	"github.com/ivlev/screen2video/internal/raster"
	"github.com/ivlev/screen2video/internal/system"
)

// Glyph is a prepared, pre-scaled cursor sprite. It is built once per run
// and shared read-only across all render workers.
type Glyph struct {
	Shape   Shape
	Image   *image.RGBA
	Hotspot geometry.Point // in glyph pixels
}

// LoadGlyph reads the sprite for shape from dir and scales it to the
// configured size (height in pixels; width follows the sprite's aspect
// ratio). A missing sprite is a fatal error: there is no safe visual
// fallback for a shape the user configured.
func LoadGlyph(dir string, shape Shape, size int) (*Glyph, error) {
	info, ok := glyphs[shape]
	if !ok {
		return nil, fmt.Errorf("unknown cursor shape %q", shape)
	}

	path := filepath.Join(dir, info.file)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cursor glyph for shape %q not found at %s: %w", shape, path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cursor glyph %s: %w", path, err)
	}

	bounds := src.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, fmt.Errorf("cursor glyph %s is empty", path)
	}

	width := size * bounds.Dx() / bounds.Dy()
	if width < 1 {
		width = 1
	}

	scaled := image.NewRGBA(image.Rect(0, 0, width, size))
	tmp := raster.Resize(src, width, size)
	copy(scaled.Pix, tmp.Pix)
	system.PutImage(tmp)

	return &Glyph{
		Shape: shape,
		Image: scaled,
		Hotspot: geometry.Point{
			X: info.hotspot.X * float64(width),
			Y: info.hotspot.Y * float64(size),
		},
	}, nil
}

// LoadSet loads glyphs for every shape present in the keyframe track plus
// the configured default. Shapes map to the same file set, so duplicates
// are loaded once.
func LoadSet(dir string, shapes []Shape, size int) (map[Shape]*Glyph, error) {
	set := make(map[Shape]*Glyph, len(shapes))
	for _, s := range shapes {
		if _, done := set[s]; done {
			continue
		}
		g, err := LoadGlyph(dir, s, size)
		if err != nil {
			return nil, err
		}
		set[s] = g
	}
	return set, nil
}
