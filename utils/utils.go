package utils

import (
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ReadImage decodes any registered image format (png, jpeg, bmp, tiff, webp).
func ReadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// ReadNRGBA decodes path and converts the result to a fresh *image.NRGBA.
func ReadNRGBA(path string) (*image.NRGBA, error) {
	img, err := ReadImage(path)
	if err != nil {
		return nil, err
	}
	return ToNRGBA(img), nil
}

// ToNRGBA returns a copy of img as 8-bit non-premultiplied RGBA with the same
// bounds. The source is never aliased.
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(b)
	if src, ok := img.(*image.NRGBA); ok {
		rowLen := b.Dx() * 4
		for y := b.Min.Y; y < b.Max.Y; y++ {
			so := src.PixOffset(b.Min.X, y)
			do := dst.PixOffset(b.Min.X, y)
			copy(dst.Pix[do:do+rowLen], src.Pix[so:so+rowLen])
		}
		return dst
	}
	if src, ok := img.(*image.Paletted); ok {
		// Palette entries are converted directly; going through draw would
		// premultiply and lose the color of low-alpha entries.
		nrgba := make([]color.NRGBA, len(src.Palette))
		for i, c := range src.Palette {
			nrgba[i] = color.NRGBAModel.Convert(c).(color.NRGBA)
		}
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				if idx := int(src.ColorIndexAt(x, y)); idx < len(nrgba) {
					dst.SetNRGBA(x, y, nrgba[idx])
				}
			}
		}
		return dst
	}
	draw.Draw(dst, b, img, b.Min, draw.Src)
	return dst
}

// SaveImage writes img as PNG.
func SaveImage(img image.Image, filename string) (err error) {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, img)
}

// SaveImageAll is SaveImage that first creates the parent directory.
func SaveImageAll(img image.Image, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return err
	}
	return SaveImage(img, filename)
}
