// Package svgexport rasterizes an SVG icon sheet to PNG at several DPIs.
//
// 96 DPI renders one SVG user unit per pixel; other DPIs scale linearly.
package svgexport

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/setanarut/alphavariant/utils"
)

const BaseDPI = 96.0

var ErrEmptyViewBox = errors.New("svg has an empty view box")

type Export struct {
	DPI      float64
	Filename string
}

// DefaultExports renders a 64px icon grid at 16, 32 and 64 px.
func DefaultExports() []Export {
	return []Export{
		{DPI: 24, Filename: "icons-16.png"},
		{DPI: 48, Filename: "icons-32.png"},
		{DPI: 96, Filename: "icons-64.png"},
	}
}

// Rasterize renders the SVG read from r at dpi.
func Rasterize(r io.Reader, dpi float64) (*image.NRGBA, error) {
	if dpi <= 0 {
		return nil, fmt.Errorf("dpi %v must be positive", dpi)
	}
	icon, err := oksvg.ReadIconStream(r, oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return nil, ErrEmptyViewBox
	}

	scale := dpi / BaseDPI
	w := max(1, int(math.Round(icon.ViewBox.W*scale)))
	h := max(1, int(math.Round(icon.ViewBox.H*scale)))
	icon.SetTarget(0, 0, float64(w), float64(h))

	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return utils.ToNRGBA(rgba), nil
}

// ExportAll renders svgPath once per export into outDir. A missing or
// unreadable SVG fails immediately; otherwise every export is attempted and
// the number of successful ones is returned with the joined failures.
func ExportAll(svgPath, outDir string, exports []Export) (int, error) {
	data, err := os.ReadFile(svgPath)
	if err != nil {
		return 0, err
	}

	ok := 0
	var errs []error
	for _, e := range exports {
		out := filepath.Join(outDir, e.Filename)
		log.Printf("exporting %s at %v DPI", out, e.DPI)
		img, err := Rasterize(bytes.NewReader(data), e.DPI)
		if err == nil {
			err = utils.SaveImageAll(img, out)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("export %s: %w", out, err))
			log.Printf("error exporting %s: %v", out, err)
			continue
		}
		log.Printf("created %s (%dx%d)", out, img.Rect.Dx(), img.Rect.Dy())
		ok++
	}
	return ok, errors.Join(errs...)
}
