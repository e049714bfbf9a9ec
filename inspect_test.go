package alphavariant

import (
	"image"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/setanarut/alphavariant/utils"
)

func TestInspect(t *testing.T) {
	img := alphaImage(3, 102, 102, 102, 38, 0, 0)
	ins := Inspect(img, 0, utils.PaletteMethodDominantColor)

	if ins.Size != (image.Point{X: 3, Y: 2}) {
		t.Errorf("Size = %v, want 3x2", ins.Size)
	}
	if ins.Visible != 4 || ins.Transparent != 2 || ins.Levels != 2 {
		t.Errorf("visible=%d transparent=%d levels=%d, want 4 2 2", ins.Visible, ins.Transparent, ins.Levels)
	}
	if want := (3*102.0 + 38) / 4; math.Abs(ins.AlphaMean-want) > 1e-9 {
		t.Errorf("AlphaMean = %v, want %v", ins.AlphaMean, want)
	}
	if ins.Modes != (Modes{High: 102, Low: 38, N: 2}) {
		t.Errorf("Modes = %v", ins.Modes)
	}
	if ins.Palette != nil {
		t.Errorf("Palette = %v, want none for size 0", ins.Palette)
	}
	if s := ins.String(); !strings.Contains(s, "3x2") || !strings.Contains(s, "high=102 low=38") {
		t.Errorf("String() = %q", s)
	}
}

func TestInspectPalette(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if x < 4 {
				continue
			}
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(128 + x*3), G: uint8(y * 2), B: 40, A: 200})
		}
	}
	ins := Inspect(img, 3, utils.PaletteMethodDominantColor)
	if n := len(ins.Palette); n == 0 || n > 3 {
		t.Fatalf("len(Palette) = %d, want 1..3", n)
	}
	if !strings.Contains(ins.String(), "palette=#") {
		t.Errorf("String() = %q, want hex palette", ins.String())
	}
	if ins.Transparent != 4*32 {
		t.Errorf("Transparent = %d, want %d", ins.Transparent, 4*32)
	}
}
