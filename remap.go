package alphavariant

import (
	"image"

	"github.com/setanarut/alphavariant/utils"
)

// Target is a pair of 8-bit alpha values the two modes are mapped to.
type Target struct {
	Opaque      uint8
	Transparent uint8
}

// Lower is the weaker of the two targets, used when an image has a single
// non-zero alpha level.
func (t Target) Lower() uint8 {
	return min(t.Opaque, t.Transparent)
}

// Remap returns a new image where pixels at the high mode take t.Opaque and
// pixels at the low mode take t.Transparent. With fewer than two modes every
// non-transparent pixel takes t.Lower(). Alpha 0 and any other level (edge
// anti-aliasing) pass through; RGB is always copied as is.
//
// The returned count is the number of pixels rewritten by a mode rule.
func Remap(img *image.NRGBA, m Modes, t Target) (*image.NRGBA, int) {
	out := utils.ToNRGBA(img)
	single := !m.HasLow()
	lower := t.Lower()
	changed := 0

	b := out.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := out.PixOffset(b.Min.X, y)
		row := out.Pix[off : off+b.Dx()*4]
		for i := 3; i < len(row); i += 4 {
			a := row[i]
			switch {
			case single && a > 0:
				row[i] = lower
			case !single && a == m.High:
				row[i] = t.Opaque
			case !single && a == m.Low:
				row[i] = t.Transparent
			default:
				continue
			}
			changed++
		}
	}
	return out, changed
}

// RemapImage converts img to NRGBA, detects its modes and remaps them to t.
func RemapImage(img image.Image, t Target) (*image.NRGBA, Modes, int) {
	src, ok := img.(*image.NRGBA)
	if !ok {
		src = utils.ToNRGBA(img)
	}
	m := Detect(src)
	out, changed := Remap(src, m, t)
	return out, m, changed
}
