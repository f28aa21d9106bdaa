// Package raster implements the pixel-level primitives the compositor
// needs: crop, resize, alpha composite, Gaussian blur and a few procedural
// shapes for the mouse effects.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/ivlev/screen2video/internal/system"
)

// Crop returns the sub-image of src covered by rect, copied into its own
// buffer so the caller may mutate it freely.
func Crop(src image.Image, rect image.Rectangle) *image.RGBA {
	rect = rect.Intersect(src.Bounds())
	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(out, out.Bounds(), src, rect.Min, draw.Src)
	return out
}

// Resize scales src to width x height using a Catmull-Rom kernel. The
// destination buffer comes from the shared image pool; callers return it
// with system.PutImage when done.
func Resize(src image.Image, width, height int) *image.RGBA {
	out := system.GetImage(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(out, out.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return out
}

// Composite alpha-blends overlay onto dst with its top-left corner at
// (x, y). Opacity in [0,1] scales the overlay's own alpha.
func Composite(dst *image.RGBA, overlay image.Image, x, y int, opacity float64) {
	if opacity <= 0 {
		return
	}
	if opacity >= 1 {
		r := overlay.Bounds().Sub(overlay.Bounds().Min).Add(image.Pt(x, y))
		draw.Draw(dst, r, overlay, overlay.Bounds().Min, draw.Over)
		return
	}

	mask := image.NewUniform(color.Alpha{A: uint8(opacity * 255)})
	r := overlay.Bounds().Sub(overlay.Bounds().Min).Add(image.Pt(x, y))
	draw.DrawMask(dst, r, overlay, overlay.Bounds().Min, mask, image.Point{}, draw.Over)
}

// GaussianBlur blurs src in place with the given radius using two
// separable box-approximation passes per axis. Radius <= 0 is a no-op.
func GaussianBlur(img *image.RGBA, radius int) {
	if radius <= 0 {
		return
	}

	kernel := gaussianKernel(radius)
	bounds := img.Bounds()
	tmp := image.NewRGBA(bounds)

	// Horizontal pass
	convolve(img, tmp, kernel, true)
	// Vertical pass
	convolve(tmp, img, kernel, false)
}

func gaussianKernel(radius int) []float64 {
	sigma := float64(radius) / 2.0
	if sigma < 0.5 {
		sigma = 0.5
	}
	size := radius*2 + 1
	kernel := make([]float64, size)
	sum := 0.0
	for i := 0; i < size; i++ {
		x := float64(i - radius)
		kernel[i] = math.Exp(-(x * x) / (2 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

func convolve(src, dst *image.RGBA, kernel []float64, horizontal bool) {
	bounds := src.Bounds()
	radius := len(kernel) / 2

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			var r, g, b, a float64
			for k := -radius; k <= radius; k++ {
				sx, sy := x, y
				if horizontal {
					sx += k
					if sx < bounds.Min.X {
						sx = bounds.Min.X
					}
					if sx >= bounds.Max.X {
						sx = bounds.Max.X - 1
					}
				} else {
					sy += k
					if sy < bounds.Min.Y {
						sy = bounds.Min.Y
					}
					if sy >= bounds.Max.Y {
						sy = bounds.Max.Y - 1
					}
				}
				i := src.PixOffset(sx, sy)
				w := kernel[k+radius]
				r += float64(src.Pix[i]) * w
				g += float64(src.Pix[i+1]) * w
				b += float64(src.Pix[i+2]) * w
				a += float64(src.Pix[i+3]) * w
			}
			o := dst.PixOffset(x, y)
			dst.Pix[o] = uint8(r + 0.5)
			dst.Pix[o+1] = uint8(g + 0.5)
			dst.Pix[o+2] = uint8(b + 0.5)
			dst.Pix[o+3] = uint8(a + 0.5)
		}
	}
}
