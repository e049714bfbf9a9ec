package alphavariant

import (
	"fmt"
	"image"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/setanarut/alphavariant/utils"
)

// Inspection summarizes the alpha structure and stroke colors of an asset.
type Inspection struct {
	Size        image.Point
	Transparent int
	Visible     int
	Levels      int
	AlphaMean   float64
	AlphaStdDev float64
	Modes       Modes
	Palette     []colorful.Color
}

// Inspect reports the histogram summary, detected modes and up to
// paletteSize stroke colors of img, ordered dark to bright.
func Inspect(img image.Image, paletteSize int, method utils.PaletteMethod) Inspection {
	src, ok := img.(*image.NRGBA)
	if !ok {
		src = utils.ToNRGBA(img)
	}
	h := Histogram(src)
	size := src.Bounds().Size()
	mean, std := utils.AlphaMeanStdDev(h[:])

	ins := Inspection{
		Size:        size,
		Visible:     h.Total(),
		Levels:      h.Distinct(),
		AlphaMean:   mean,
		AlphaStdDev: std,
		Modes:       DetectModes(h),
	}
	ins.Transparent = size.X*size.Y - ins.Visible
	if paletteSize > 0 {
		ins.Palette = utils.ExtractPalette(src, paletteSize, method)
		utils.SortPaletteByBrightness(ins.Palette)
	}
	return ins
}

func (ins Inspection) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%dx%d transparent=%d visible=%d levels=%d alpha_mean=%.1f alpha_std=%.1f modes %v",
		ins.Size.X, ins.Size.Y, ins.Transparent, ins.Visible, ins.Levels,
		ins.AlphaMean, ins.AlphaStdDev, ins.Modes)
	if len(ins.Palette) > 0 {
		hex := make([]string, len(ins.Palette))
		for i, c := range ins.Palette {
			hex[i] = c.Hex()
		}
		sb.WriteString(" palette=" + strings.Join(hex, ","))
	}
	return sb.String()
}
