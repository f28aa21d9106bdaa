// Package compositor turns one FrameRenderSpec plus one decoded source
// frame into the final output frame: crop, rescale, cursor glyph and
// effect overlays.
package compositor

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ivlev/screen2video/internal/cursor"
	"github.com/ivlev/screen2video/internal/director"
	"github.com/ivlev/screen2video/internal/effects"
	"github.com/ivlev/screen2video/internal/geometry"
	"github.com/ivlev/screen2video/internal/raster"
	"github.com/ivlev/screen2video/internal/system"
)

// Compositor renders frames. The glyph set is loaded once per run and
// read-only; a Compositor is safe for concurrent use across render
// workers.
type Compositor struct {
	OutputWidth  int
	OutputHeight int
	Glyphs       map[cursor.Shape]*cursor.Glyph
	DebugStamp   bool
}

// Render produces the output frame for spec. The returned image comes
// from the shared buffer pool; the caller releases it with
// system.PutImage after encoding.
func (c *Compositor) Render(src image.Image, spec director.FrameRenderSpec) (*image.RGBA, error) {
	crop := spec.CropRect
	cropped := raster.Crop(src, image.Rect(
		int(crop.X), int(crop.Y),
		int(crop.X+crop.W), int(crop.Y+crop.H),
	))

	out := raster.Resize(cropped, c.OutputWidth, c.OutputHeight)

	// Video px -> output px, relative to the crop.
	scaleX := float64(c.OutputWidth) / crop.W
	scaleY := float64(c.OutputHeight) / crop.H
	toOutput := func(p geometry.Point) geometry.Point {
		return geometry.Point{
			X: (p.X - crop.X) * scaleX,
			Y: (p.Y - crop.Y) * scaleY,
		}
	}

	for _, eff := range spec.Effects {
		c.drawEffect(out, eff, toOutput, scaleX)
	}

	if spec.HasCursor {
		if err := c.drawCursor(out, spec, toOutput); err != nil {
			return nil, err
		}
	}

	if c.DebugStamp {
		if err := raster.DebugStamp(out, spec.FrameIndex, spec.TimestampMs); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (c *Compositor) drawCursor(out *image.RGBA, spec director.FrameRenderSpec, toOutput func(geometry.Point) geometry.Point) error {
	glyph, ok := c.Glyphs[spec.CursorShape]
	if !ok {
		return fmt.Errorf("no glyph prepared for cursor shape %q", spec.CursorShape)
	}

	pos := toOutput(spec.CursorPos)

	w := float64(glyph.Image.Bounds().Dx()) * spec.CursorScale
	h := float64(glyph.Image.Bounds().Dy()) * spec.CursorScale

	img := glyph.Image
	hotX, hotY := glyph.Hotspot.X, glyph.Hotspot.Y
	if spec.CursorScale != 1.0 && w >= 1 && h >= 1 {
		img = raster.Resize(glyph.Image, int(w), int(h))
		defer system.PutImage(img)
		hotX *= spec.CursorScale
		hotY *= spec.CursorScale
	}

	// Hotspot on the reported coordinate, clamped so the glyph never
	// leaves the output frame.
	x := geometry.Clamp(pos.X-hotX, 0, float64(c.OutputWidth)-float64(img.Bounds().Dx()))
	y := geometry.Clamp(pos.Y-hotY, 0, float64(c.OutputHeight)-float64(img.Bounds().Dy()))

	raster.Composite(out, img, int(x), int(y), 1.0)
	return nil
}

func (c *Compositor) drawEffect(out *image.RGBA, eff effects.Frame, toOutput func(geometry.Point) geometry.Point, scale float64) {
	col, err := raster.ParseHexColor(eff.Color)
	if err != nil {
		col = color.RGBA{R: 255, G: 204, B: 0, A: 255}
	}

	pos := toOutput(geometry.Point{X: eff.X, Y: eff.Y})
	radius := eff.Size / 2 * scale

	switch eff.Kind {
	case effects.KindClickCircle, effects.KindTrail:
		raster.FillCircle(out, pos.X, pos.Y, radius, col, eff.Opacity)
	case effects.KindRing:
		raster.StrokeRing(out, pos.X, pos.Y, radius, 3*scale, col, eff.Opacity)
	}
}
