package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// ParseHexColor converts "#rrggbb" (or "#rgb") into an opaque color.
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")

	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}

	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}, nil
}

// FillCircle draws a filled anti-aliased circle centered at (cx, cy).
// Opacity in [0,1] scales the color's alpha.
func FillCircle(dst *image.RGBA, cx, cy, radius float64, c color.RGBA, opacity float64) {
	drawDisc(dst, cx, cy, 0, radius, c, opacity)
}

// StrokeRing draws an anti-aliased ring (annulus) centered at (cx, cy).
func StrokeRing(dst *image.RGBA, cx, cy, radius, thickness float64, c color.RGBA, opacity float64) {
	inner := radius - thickness/2
	if inner < 0 {
		inner = 0
	}
	drawDisc(dst, cx, cy, inner, radius+thickness/2, c, opacity)
}

func drawDisc(dst *image.RGBA, cx, cy, innerR, outerR float64, c color.RGBA, opacity float64) {
	if opacity <= 0 || outerR <= 0 {
		return
	}

	bounds := dst.Bounds()
	minX := int(math.Floor(cx - outerR - 1))
	maxX := int(math.Ceil(cx + outerR + 1))
	minY := int(math.Floor(cy - outerR - 1))
	maxY := int(math.Ceil(cy + outerR + 1))

	if minX < bounds.Min.X {
		minX = bounds.Min.X
	}
	if maxX > bounds.Max.X {
		maxX = bounds.Max.X
	}
	if minY < bounds.Min.Y {
		minY = bounds.Min.Y
	}
	if maxY > bounds.Max.Y {
		maxY = bounds.Max.Y
	}

	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)

			// Single-pixel soft edge on both rims
			cover := coverage(d, innerR, outerR)
			if cover <= 0 {
				continue
			}

			alpha := opacity * cover
			blendPixel(dst, x, y, c, alpha)
		}
	}
}

func coverage(d, innerR, outerR float64) float64 {
	out := outerR + 0.5 - d
	if out <= 0 {
		return 0
	}
	if out > 1 {
		out = 1
	}

	if innerR <= 0 {
		return out
	}

	in := d - (innerR - 0.5)
	if in <= 0 {
		return 0
	}
	if in > 1 {
		in = 1
	}
	return math.Min(out, in)
}

func blendPixel(dst *image.RGBA, x, y int, c color.RGBA, alpha float64) {
	i := dst.PixOffset(x, y)
	a := alpha
	inv := 1 - a
	dst.Pix[i] = uint8(float64(c.R)*a + float64(dst.Pix[i])*inv)
	dst.Pix[i+1] = uint8(float64(c.G)*a + float64(dst.Pix[i+1])*inv)
	dst.Pix[i+2] = uint8(float64(c.B)*a + float64(dst.Pix[i+2])*inv)
	da := float64(dst.Pix[i+3])
	dst.Pix[i+3] = uint8(255*a + da*inv)
}
