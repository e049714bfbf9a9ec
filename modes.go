package alphavariant

import (
	"fmt"
	"image"
)

// AlphaHistogram counts pixels per alpha value. Index 0 is never counted:
// fully transparent background is not a mode.
type AlphaHistogram [256]int

// Histogram builds the alpha histogram of img over its bounds.
func Histogram(img *image.NRGBA) AlphaHistogram {
	var h AlphaHistogram
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		row := img.Pix[off : off+b.Dx()*4]
		for i := 3; i < len(row); i += 4 {
			if a := row[i]; a > 0 {
				h[a]++
			}
		}
	}
	return h
}

// Distinct returns the number of distinct non-zero alpha values.
func (h *AlphaHistogram) Distinct() int {
	n := 0
	for a := 1; a < len(h); a++ {
		if h[a] > 0 {
			n++
		}
	}
	return n
}

// Total returns the number of pixels with alpha > 0.
func (h *AlphaHistogram) Total() int {
	n := 0
	for a := 1; a < len(h); a++ {
		n += h[a]
	}
	return n
}

// Modes holds the (up to) two dominant non-zero alpha levels of an image.
// N is the number of detected modes: High is valid when N >= 1, Low when
// N == 2, and High >= Low always.
type Modes struct {
	High, Low uint8
	N         int
}

func (m Modes) HasHigh() bool { return m.N >= 1 }
func (m Modes) HasLow() bool  { return m.N >= 2 }

func (m Modes) String() string {
	high, low := "none", "none"
	if m.HasHigh() {
		high = fmt.Sprint(m.High)
	}
	if m.HasLow() {
		low = fmt.Sprint(m.Low)
	}
	return "high=" + high + " low=" + low
}

// DetectModes picks the two most frequent alpha levels, breaking count ties
// in favor of the larger alpha, and reports the larger level as High
// regardless of which one is more frequent.
func DetectModes(h AlphaHistogram) Modes {
	first, second := -1, -1
	// Descending scan: on equal counts the larger alpha is seen first and kept.
	for a := 255; a >= 1; a-- {
		c := h[a]
		if c == 0 {
			continue
		}
		switch {
		case first < 0 || c > h[first]:
			second = first
			first = a
		case second < 0 || c > h[second]:
			second = a
		}
	}

	switch {
	case first < 0:
		return Modes{}
	case second < 0:
		return Modes{High: uint8(first), N: 1}
	}
	return Modes{
		High: uint8(max(first, second)),
		Low:  uint8(min(first, second)),
		N:    2,
	}
}

// Detect is DetectModes(Histogram(img)).
func Detect(img *image.NRGBA) Modes {
	return DetectModes(Histogram(img))
}
