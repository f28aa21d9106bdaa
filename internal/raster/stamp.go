package raster

import (
	"fmt"
	"image"

	qrcode "github.com/skip2/go-qrcode"
)

// DebugStampSize is the side length of the QR stamp in output pixels.
const DebugStampSize = 96

// DebugStamp renders a QR code carrying the frame index and timestamp and
// composites it into the bottom-right corner of the frame. Decoding the
// stamp from the encoded video verifies that frame N really received the
// plan computed for frame N.
func DebugStamp(dst *image.RGBA, frameIndex int, timestampMs int64) error {
	payload := fmt.Sprintf("f=%d;t=%d", frameIndex, timestampMs)

	qr, err := qrcode.New(payload, qrcode.Low)
	if err != nil {
		return fmt.Errorf("debug stamp: %w", err)
	}

	stamp := qr.Image(DebugStampSize)
	bounds := dst.Bounds()
	x := bounds.Max.X - DebugStampSize - 8
	y := bounds.Max.Y - DebugStampSize - 8
	if x < bounds.Min.X || y < bounds.Min.Y {
		return nil // frame smaller than the stamp, skip
	}

	Composite(dst, stamp, x, y, 1.0)
	return nil
}
