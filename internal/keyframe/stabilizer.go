package keyframe

import "github.com/ivlev/screen2video/internal/cursor"

// StabilizeShapes suppresses cursor-shape flicker in place. The OS cursor
// probe occasionally reports a different glyph for a few samples
// mid-gesture; rendering those produces a visibly twitching cursor.
//
// The pass holds the committed shape until a candidate change is
// *sustained*: if any sample within windowMs after the candidate reverts
// to the committed shape, the candidate is discarded; otherwise the last
// shape observed inside the window is adopted from the candidate sample
// onward. Single forward pass, no backtracking over committed frames.
func StabilizeShapes(keyframes []CursorKeyframe, windowMs int64) {
	if len(keyframes) == 0 || windowMs <= 0 {
		return
	}

	committed := keyframes[0].Shape

	for i := 0; i < len(keyframes); i++ {
		observed := keyframes[i].Shape
		if observed == committed {
			continue
		}

		// Candidate change at i: look ahead through the window.
		deadline := keyframes[i].TimestampMs + windowMs
		reverts := false
		adopted := observed
		j := i
		for ; j < len(keyframes) && keyframes[j].TimestampMs <= deadline; j++ {
			if keyframes[j].Shape == committed {
				reverts = true
				break
			}
			adopted = keyframes[j].Shape
		}

		if reverts {
			// Transient flicker: overwrite up to the reverting sample.
			for k := i; k < j; k++ {
				keyframes[k].Shape = committed
			}
			i = j - 1
			continue
		}

		// Sustained: commit the last shape seen inside the window and
		// rewrite the window's samples to it, so the transition happens
		// once, at the candidate sample.
		committed = adopted
		for k := i; k < j; k++ {
			keyframes[k].Shape = committed
		}
		i = j - 1
	}
}

// Shapes returns the distinct shapes present in the sequence, in first
// appearance order. Used to decide which glyph sprites to load.
func Shapes(keyframes []CursorKeyframe) []cursor.Shape {
	seen := make(map[cursor.Shape]bool)
	var out []cursor.Shape
	for _, kf := range keyframes {
		if !seen[kf.Shape] {
			seen[kf.Shape] = true
			out = append(out, kf.Shape)
		}
	}
	return out
}
