package utils

import (
	"cmp"
	"fmt"
	"image"
	"image/color"
	"log"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// PaletteMethod selects how Inspect summarizes stroke colors.
type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

var paletteMethodNames = [...]string{
	PaletteMethodDominantColor: "dominantcolor",
	PaletteMethodKMeans:        "kmeans",
}

func (m PaletteMethod) String() string {
	if m < 0 || int(m) >= len(paletteMethodNames) {
		return fmt.Sprintf("PaletteMethod(%d)", int(m))
	}
	return paletteMethodNames[m]
}

// ParsePaletteMethod accepts the names produced by PaletteMethod.String.
// The empty string selects dominantcolor.
func ParsePaletteMethod(s string) (PaletteMethod, error) {
	if s == "" {
		return PaletteMethodDominantColor, nil
	}
	for m, name := range paletteMethodNames {
		if name == s {
			return PaletteMethod(m), nil
		}
	}
	return 0, fmt.Errorf("unknown palette method %q", s)
}

type weightedColor struct {
	col    colorful.Color
	weight float64
}

// heaviest returns up to k distinct colors, heaviest first.
func heaviest(cands []weightedColor, k int) []colorful.Color {
	slices.SortStableFunc(cands, func(a, b weightedColor) int {
		return cmp.Compare(b.weight, a.weight)
	})
	out := make([]colorful.Color, 0, min(k, len(cands)))
	for _, c := range cands {
		if len(out) == k {
			break
		}
		if !slices.ContainsFunc(out, func(o colorful.Color) bool { return o.Hex() == c.col.Hex() }) {
			out = append(out, c.col)
		}
	}
	return out
}

// SortPaletteByBrightness orders colors by CIE lightness, darkest first.
func SortPaletteByBrightness(palette []colorful.Color) {
	slices.SortStableFunc(palette, func(a, b colorful.Color) int {
		la, _, _ := a.Lab()
		lb, _, _ := b.Lab()
		return cmp.Compare(la, lb)
	})
}

// strokePixels collects the colors of every pixel with alpha > 0.
// Boundary assets are mostly transparent background, which would otherwise
// dominate any palette.
func strokePixels(img image.Image) []color.NRGBA {
	b := img.Bounds()
	out := make([]color.NRGBA, 0, b.Dx()*b.Dy()/4)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A == 0 {
				continue
			}
			out = append(out, c)
		}
	}
	return out
}

// strokeImage packs stroke pixels, made opaque, into a square tile. Trailing
// cells repeat from the start so no background color is introduced.
func strokeImage(stroke []color.NRGBA) *image.NRGBA {
	side := int(math.Ceil(math.Sqrt(float64(len(stroke)))))
	tile := image.NewNRGBA(image.Rect(0, 0, side, side))
	for i := 0; i < side*side; i++ {
		c := stroke[i%len(stroke)]
		c.A = 255
		tile.SetNRGBA(i%side, i/side, c)
	}
	return tile
}

func ExtractDominantPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	stroke := strokePixels(img)
	if len(stroke) == 0 {
		return nil
	}

	candidates := dominantcolor.FindWeight(strokeImage(stroke), k)
	if len(candidates) == 0 {
		c := stroke[0]
		return []colorful.Color{{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}}
	}

	weighted := make([]weightedColor, 0, len(candidates))
	for _, c := range candidates {
		col, _ := colorful.MakeColor(c.RGBA)
		weighted = append(weighted, weightedColor{col: col.Clamped(), weight: c.Weight})
	}
	return heaviest(weighted, k)
}

func ExtractKMeansPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}
	stroke := strokePixels(img)
	if len(stroke) == 0 {
		return nil
	}

	// Subsample to keep kmeans tractable on large sheets.
	maxSamples := 12000
	step := max(1, len(stroke)/maxSamples)
	dataset := make(clusters.Observations, 0, min(len(stroke), maxSamples+1))
	for i := 0; i < len(stroke); i += step {
		c := stroke[i]
		dataset = append(dataset, clusters.Coordinates{
			float64(c.R) / 255.0,
			float64(c.G) / 255.0,
			float64(c.B) / 255.0,
		})
	}

	cc, err := kmeans.New().Partition(dataset, min(k, len(dataset)))
	if err != nil || len(cc) == 0 {
		return nil
	}

	weighted := make([]weightedColor, 0, len(cc))
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		weighted = append(weighted, weightedColor{col: col, weight: float64(len(c.Observations))})
	}
	return heaviest(weighted, k)
}

// ExtractPalette returns up to k stroke colors of img. Fully transparent
// images yield an empty palette.
func ExtractPalette(img image.Image, k int, method PaletteMethod) []colorful.Color {
	switch method {
	case PaletteMethodKMeans:
		p := ExtractKMeansPalette(img, k)
		if len(p) != 0 {
			return p
		}
		log.Println("palette warning: kmeans returned empty palette, falling back to dominantcolor")
		return ExtractDominantPalette(img, k)
	default:
		return ExtractDominantPalette(img, k)
	}
}

// SavePalette writes the palette as a strip of tileSize squares.
func SavePalette(palette []colorful.Color, tileSize int, filename string) error {
	if len(palette) == 0 {
		return fmt.Errorf("empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}

	w := tileSize * len(palette)
	img := image.NewNRGBA(image.Rect(0, 0, w, tileSize))
	for i, c := range palette {
		r, g, b := c.Clamped().RGB255()
		x0 := i * tileSize
		for y := 0; y < tileSize; y++ {
			for x := x0; x < x0+tileSize; x++ {
				img.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: 255})
			}
		}
	}
	return SaveImageAll(img, filename)
}
