package svgexport

import (
	"errors"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/setanarut/alphavariant/utils"
)

const sheet = `<svg xmlns="http://www.w3.org/2000/svg" width="64" height="32" viewBox="0 0 64 32">
  <rect x="0" y="0" width="64" height="32" fill="#ff0000"/>
</svg>`

func TestRasterize(t *testing.T) {
	tests := []struct {
		dpi  float64
		want image.Rectangle
	}{
		{24, image.Rect(0, 0, 16, 8)},
		{48, image.Rect(0, 0, 32, 16)},
		{96, image.Rect(0, 0, 64, 32)},
		{192, image.Rect(0, 0, 128, 64)},
	}
	for _, tt := range tests {
		img, err := Rasterize(strings.NewReader(sheet), tt.dpi)
		if err != nil {
			t.Fatalf("Rasterize(%v) error = %v", tt.dpi, err)
		}
		if img.Bounds() != tt.want {
			t.Errorf("Rasterize(%v) bounds = %v, want %v", tt.dpi, img.Bounds(), tt.want)
		}
		c := img.NRGBAAt(tt.want.Dx()/2, tt.want.Dy()/2)
		if c.R != 255 || c.G != 0 || c.B != 0 || c.A != 255 {
			t.Errorf("Rasterize(%v) center = %v, want opaque red", tt.dpi, c)
		}
	}
}

func TestRasterizeErrors(t *testing.T) {
	if _, err := Rasterize(strings.NewReader(sheet), 0); err == nil {
		t.Error("zero dpi accepted")
	}
	empty := `<svg xmlns="http://www.w3.org/2000/svg"></svg>`
	if _, err := Rasterize(strings.NewReader(empty), 96); !errors.Is(err, ErrEmptyViewBox) {
		t.Errorf("empty view box error = %v, want ErrEmptyViewBox", err)
	}
}

func TestExportAll(t *testing.T) {
	dir := t.TempDir()
	svgPath := filepath.Join(dir, "icons.svg")
	square := strings.ReplaceAll(sheet, "32", "64")
	if err := os.WriteFile(svgPath, []byte(square), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "out")
	n, err := ExportAll(svgPath, out, DefaultExports())
	if err != nil {
		t.Fatalf("ExportAll() error = %v", err)
	}
	if n != 3 {
		t.Errorf("ExportAll() = %d, want 3", n)
	}
	for _, size := range []int{16, 32, 64} {
		path := filepath.Join(out, "icons-"+strconv.Itoa(size)+".png")
		img, err := utils.ReadNRGBA(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		if img.Bounds() != image.Rect(0, 0, size, size) {
			t.Errorf("%s bounds = %v", path, img.Bounds())
		}
	}
}

func TestExportAllPartialFailure(t *testing.T) {
	dir := t.TempDir()
	svgPath := filepath.Join(dir, "icons.svg")
	if err := os.WriteFile(svgPath, []byte(sheet), 0o644); err != nil {
		t.Fatal(err)
	}
	exports := []Export{{DPI: 96, Filename: "ok.png"}, {DPI: -1, Filename: "bad.png"}}
	n, err := ExportAll(svgPath, dir, exports)
	if err == nil || n != 1 {
		t.Errorf("ExportAll() = %d, %v, want 1 and an error", n, err)
	}
	if _, err := os.Stat(filepath.Join(dir, "ok.png")); err != nil {
		t.Errorf("successful export missing: %v", err)
	}
}

func TestExportAllMissingSVG(t *testing.T) {
	n, err := ExportAll(filepath.Join(t.TempDir(), "icons.svg"), t.TempDir(), DefaultExports())
	if n != 0 || !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ExportAll() = %d, %v, want 0 and ErrNotExist", n, err)
	}
}
